package cmd

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/vidshare/internal/db/dbtest"
	"github.com/templui/vidshare/internal/model"
	"github.com/templui/vidshare/internal/repository"
	"github.com/templui/vidshare/internal/service"
)

var checkTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func TestCheckAccount(t *testing.T) {
	accounts := repository.NewAccountRepository(dbtest.New(t))
	admins := service.NewAdminAllowList([]string{"root@example.com"})
	ctx := context.Background()

	account := &model.Account{
		ID:           uuid.NewString(),
		Email:        "alice@example.com",
		PasswordHash: "hash",
		CreatedAt:    checkTime,
		UpdatedAt:    checkTime,
	}
	require.NoError(t, accounts.Create(ctx, account))

	result, err := checkAccount(ctx, accounts, admins, " Alice@Example.com ", checkTime)
	require.NoError(t, err)
	assert.Equal(t, &accountCheck{Email: "alice@example.com", Account: true}, result)

	require.NoError(t, accounts.SetResetToken(ctx, account.ID, "token-1", checkTime.Add(10*time.Minute), checkTime))

	result, err = checkAccount(ctx, accounts, admins, "alice@example.com", checkTime.Add(time.Minute))
	require.NoError(t, err)
	assert.True(t, result.ResetPending)

	// an expired token is not pending even though the row still holds it
	result, err = checkAccount(ctx, accounts, admins, "alice@example.com", checkTime.Add(11*time.Minute))
	require.NoError(t, err)
	assert.False(t, result.ResetPending)

	result, err = checkAccount(ctx, accounts, admins, "root@example.com", checkTime)
	require.NoError(t, err)
	assert.Equal(t, &accountCheck{Email: "root@example.com", Admin: true}, result)
}

func TestAccountCheck_Write(t *testing.T) {
	var out bytes.Buffer
	(&accountCheck{Email: "alice@example.com", Account: true, ResetPending: true}).write(&out)

	assert.Equal(t, "email:   alice@example.com\nadmin:   false\naccount: true\nreset:   pending\n", out.String())
}
