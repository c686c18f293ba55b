// Package storetest opens a migrated sqlite database for store tests.
package storetest

import (
	"path/filepath"
	"testing"

	"github.com/fox-one/pkg/store/db"
	"github.com/stretchr/testify/require"
)

// Open a file backed sqlite db holding every table registered by the
// packages the test imports. One connection: a transaction sees exactly
// what it wrote, like the production databases do.
func Open(t *testing.T) *db.DB {
	t.Helper()

	conn, err := db.Open(db.Config{
		Dialect: "sqlite3",
		Host:    filepath.Join(t.TempDir(), "custody.db"),
	})
	require.NoError(t, err)

	conn.Update().DB().SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = conn.Close()
	})

	require.NoError(t, db.Migrate(conn))
	return conn
}
