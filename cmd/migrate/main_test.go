package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleMigration = `-- +migrate Up
CREATE TABLE kv_snapshots (
    name TEXT PRIMARY KEY,
    payload BYTEA NOT NULL
);

-- +migrate Down
DROP TABLE kv_snapshots;
`

func TestExtractMigrationPart(t *testing.T) {
	t.Run("Up section", func(t *testing.T) {
		up := extractMigrationPart(sampleMigration, "Up")
		assert.Contains(t, up, "CREATE TABLE kv_snapshots")
		assert.NotContains(t, up, "DROP TABLE")
	})

	t.Run("Down section", func(t *testing.T) {
		down := extractMigrationPart(sampleMigration, "Down")
		assert.Contains(t, down, "DROP TABLE kv_snapshots;")
		assert.NotContains(t, down, "CREATE TABLE")
	})

	t.Run("Missing section", func(t *testing.T) {
		assert.Empty(t, extractMigrationPart("SELECT 1;", "Up"))
	})
}

// The init migration must define the columns internal/kvstore's
// postgres backend reads and writes.
func TestInitMigrationMatchesSnapshotStore(t *testing.T) {
	content, err := os.ReadFile(filepath.Join("..", "..", "migrations", "20240101000000_init.sql"))
	require.NoError(t, err)

	up := extractMigrationPart(string(content), "Up")
	require.Contains(t, up, "CREATE TABLE IF NOT EXISTS kv_snapshots")
	assert.Contains(t, up, "name TEXT PRIMARY KEY")
	assert.Contains(t, up, "value BYTEA NOT NULL")
	assert.Contains(t, up, "updated_at TIMESTAMP")

	down := extractMigrationPart(string(content), "Down")
	assert.Contains(t, down, "DROP TABLE IF EXISTS kv_snapshots;")
}

func writeMigrationFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunMigrationsUp(t *testing.T) {
	dir := t.TempDir()
	file := writeMigrationFile(t, dir, "20240101_init.sql", sampleMigration)
	version := filepath.Base(file)

	t.Run("Applies pending migration", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(version).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectExec("CREATE TABLE kv_snapshots").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("INSERT INTO schema_migrations").
			WithArgs(version).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = runMigrationsUp(db, []string{file})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Skips applied migration", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(version).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		err = runMigrationsUp(db, []string{file})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRunMigrationsDown(t *testing.T) {
	dir := t.TempDir()
	file := writeMigrationFile(t, dir, "20240101_init.sql", sampleMigration)
	version := filepath.Base(file)

	t.Run("Rolls back last migration", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT version FROM schema_migrations").
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(version))
		mock.ExpectExec("DROP TABLE kv_snapshots").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("DELETE FROM schema_migrations").
			WithArgs(version).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = runMigrationsDown(db, []string{file})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Nothing to roll back", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT version FROM schema_migrations").
			WillReturnRows(sqlmock.NewRows([]string{"version"}))

		err = runMigrationsDown(db, []string{file})
		assert.NoError(t, err)
	})
}
