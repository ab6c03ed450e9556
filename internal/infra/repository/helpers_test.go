package repository_test

import (
	"path/filepath"
	"testing"

	"github.com/Lucas16AR/stock-app/internal/infra/db"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// テストごとに空のsqliteを作る
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_foreign_keys=on"
	gdb, err := db.OpenSQLite(dsn)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return gdb
}
