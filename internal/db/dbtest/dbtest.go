// Package dbtest provides migrated in-memory databases for tests.
package dbtest

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"github.com/templui/vidshare/internal/db"
)

// New opens a private in-memory sqlite database with all migrations applied.
func New(t testing.TB) *sqlx.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite", uuid.NewString())
	conn, err := db.Open(context.Background(), "sqlite", dsn)
	require.NoError(t, err)

	// shared-cache memory databases lock per table; one connection keeps writes serial
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, db.RunMigrations(context.Background(), conn.DB, "sqlite"))
	return conn
}
