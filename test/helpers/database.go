package helpers

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/andrescamacho/manoria-go/internal/infrastructure/database"
)

// NewTestDB opens a migrated in-memory database that is closed when t ends.
// Each call gets its own database, so tests may run in parallel.
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := database.NewTestConnection()
	require.NoError(t, err, "open test database")
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}
