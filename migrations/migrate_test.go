package migrations

import (
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lotrblog/app/logger"
)

func TestMigrate_DBError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	_ = mock // goose talks to the db itself; no expectations means every call fails

	err = Migrate(db, DialectSQLite, logger.Nop())
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "migration error"))
}

func TestMigrate_NilDB(t *testing.T) {
	var db *sql.DB

	err := Migrate(db, DialectSQLite, logger.Nop())
	assert.Error(t, err)
}

func TestMigrate_UnsupportedDialect(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	err = Migrate(db, "mysql", logger.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported dialect")
}

func TestMigrate_SQLite(t *testing.T) {
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "migrate.db3"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(db, DialectSQLite, logger.Nop()))
	// a second run has nothing to apply
	require.NoError(t, Migrate(db, DialectSQLite, logger.Nop()))

	for _, table := range []string{"posts", "comments"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err)
		assert.Equal(t, table, name)
	}
}

func TestMigrations_UnboundedTextColumns(t *testing.T) {
	for _, dir := range []string{"sqlite", "postgres"} {
		t.Run(dir, func(t *testing.T) {
			schema, err := embedMigrations.ReadFile(dir + "/00001_create_posts_and_comments.sql")
			require.NoError(t, err)

			up := strings.ToUpper(string(schema))
			assert.NotContains(t, up, "VARCHAR")
			for _, column := range []string{"TITLE", "CONTENTS", "TEXT"} {
				assert.Regexp(t, `(?m)^\s*`+column+`\s+TEXT NOT NULL`, up)
			}
		})
	}
}
