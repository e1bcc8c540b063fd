// Package dbtest opens a throwaway SQLite database with the application schema.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/offer-fe/offer-be/internal/infrastructure/database/schema"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func Open(t testing.TB) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Open("sqlite", filepath.Join(t.TempDir(), "offer.db"))
	require.NoError(t, err)

	// a single connection keeps transactions and plain reads serialized
	db.SetMaxOpenConns(1)

	require.NoError(t, schema.Migrate(context.Background(), db))

	t.Cleanup(func() {
		db.Close()
	})

	return db
}
