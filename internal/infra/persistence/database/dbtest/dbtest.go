// Package dbtest opens throwaway SQLite stores for tests.
package dbtest

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"nexus/internal/infra/persistence/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostgresDSNEnv names the variable holding the DSN of a scratch PostgreSQL database.
// Tests needing PostgreSQL are skipped when it is unset.
const PostgresDSNEnv = "NEXUS_TEST_POSTGRES_DSN"

var nameReplacer = strings.NewReplacer("/", "_", " ", "_", "#", "_")

// NewDiscardLogger returns a logger that drops every record.
func NewDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Open returns an in-memory shared-cache SQLite store with the full schema applied.
// The pool holds a single connection, so units of work run one after another and
// code inside a unit of work must only use the transaction's repositories.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := "file:" + nameReplacer.Replace(t.Name()) + "-" + uuid.NewString() + "?mode=memory&cache=shared"

	db, err := database.OpenSQLite(dsn, NewDiscardLogger(), false)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	require.NoError(t, database.EnsureSchema(context.Background(), db))

	return db
}

// OpenFile returns a file-backed SQLite store in a temporary directory whose pool holds up
// to maxOpenConns connections, so units of work really run side by side.
func OpenFile(t testing.TB, maxOpenConns int) *gorm.DB {
	t.Helper()

	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "nexus.db"), NewDiscardLogger(), false)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(maxOpenConns)

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	require.NoError(t, database.EnsureSchema(context.Background(), db))

	return db
}

// OpenPostgres returns a PostgreSQL store living in a schema of its own, dropped on cleanup,
// so packages testing in parallel never see each other's rows.
func OpenPostgres(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := os.Getenv(PostgresDSNEnv)
	if dsn == "" {
		t.Skipf("Skipping PostgreSQL test: %s env var not set", PostgresDSNEnv)
	}

	schema := "nexus_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	config := &gorm.Config{SkipDefaultTransaction: true}

	admin, err := gorm.Open(postgres.Open(dsn), config)
	require.NoError(t, err)
	require.NoError(t, admin.Exec("CREATE SCHEMA ?", clause.Table{Name: schema}).Error)

	adminDB, err := admin.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = admin.Exec("DROP SCHEMA ? CASCADE", clause.Table{Name: schema}).Error
		_ = adminDB.Close()
	})

	db, err := gorm.Open(postgres.Open(withSearchPath(dsn, schema)), config)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	require.NoError(t, database.EnsureSchema(context.Background(), db))

	return db
}

// withSearchPath points every connection of dsn (URL or keyword/value form) at schema.
func withSearchPath(dsn, schema string) string {
	if !strings.Contains(dsn, "://") {
		return dsn + " search_path=" + schema
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&search_path=" + schema
	}

	return dsn + "?search_path=" + schema
}

// Count returns the number of rows in table.
func Count(t testing.TB, db *gorm.DB, table string) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Table(table).Count(&count).Error)

	return count
}
