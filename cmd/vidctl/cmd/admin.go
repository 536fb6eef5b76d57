package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/templui/vidshare/internal/repository"
	"github.com/templui/vidshare/internal/service"
	"github.com/templui/vidshare/internal/validation"
)

func AdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Inspect the admin allow-list",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "check <email>",
		Short: "Report whether an email is an admin, has an account and has a pending reset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, database, err := openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			result, err := checkAccount(cmd.Context(),
				repository.NewAccountRepository(database),
				service.NewAdminAllowList(cfg.AdminEmails),
				args[0], time.Now().UTC())
			if err != nil {
				return err
			}

			result.write(cmd.OutOrStdout())
			return nil
		},
	})

	return cmd
}

type accountCheck struct {
	Email        string
	Admin        bool
	Account      bool
	ResetPending bool
}

func checkAccount(ctx context.Context, accounts repository.AccountRepository, admins *service.AdminAllowList, email string, now time.Time) (*accountCheck, error) {
	email = validation.NormalizeEmail(email)
	result := &accountCheck{Email: email, Admin: admins.IsAdmin(email)}

	account, err := accounts.ByEmail(ctx, email)
	if errors.Is(err, repository.ErrAccountNotFound) {
		return result, nil
	}
	if err != nil {
		return nil, err
	}

	result.Account = true
	result.ResetPending = account.HasActiveResetToken(now)
	return result, nil
}

func (c *accountCheck) write(w io.Writer) {
	reset := "none"
	if c.ResetPending {
		reset = "pending"
	}
	_, _ = fmt.Fprintf(w, "email:   %s\nadmin:   %t\naccount: %t\nreset:   %s\n", c.Email, c.Admin, c.Account, reset)
}
