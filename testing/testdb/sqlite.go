package testdb

import (
	"context"
	"testing"

	"crew-service/internal/db"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

// NewSQLite returns a private in-memory database with the schema created.
// It is closed when the test finishes.
func NewSQLite(t *testing.T) *bun.DB {
	t.Helper()

	database, err := db.NewSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	require.NoError(t, db.RunMigrations(context.Background(), database, db.Models...))
	return database
}
