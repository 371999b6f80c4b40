package sqlitemigrate_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/KirkDiggler/rpg-sheet/internal/pkg/sqlitemigrate"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "migrate.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestExtractUp(t *testing.T) {
	content := "-- +migrate Up\nCREATE TABLE a (id TEXT);\n-- +migrate Down\nDROP TABLE a;\n"
	assert.Equal(t, "\nCREATE TABLE a (id TEXT);\n", sqlitemigrate.ExtractUp(content))
	assert.Equal(t, "SELECT 1;", sqlitemigrate.ExtractUp("SELECT 1;"))
}

func TestApplyRunsEachFileOnce(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	migrations := fstest.MapFS{
		"001_first.sql":  {Data: []byte("-- +migrate Up\nCREATE TABLE first (id TEXT PRIMARY KEY);\n")},
		"002_second.sql": {Data: []byte("-- +migrate Up\nINSERT INTO first (id) VALUES ('row');\n")},
		"README.md":      {Data: []byte("not sql")},
	}

	require.NoError(t, sqlitemigrate.Apply(ctx, db, migrations))
	require.NoError(t, sqlitemigrate.Apply(ctx, db, migrations))

	var rows int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM first").Scan(&rows))
	assert.Equal(t, 1, rows, "second run must not re-insert")

	var applied int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations").Scan(&applied))
	assert.Equal(t, 2, applied)
}

func TestApplyRollsBackFailures(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	migrations := fstest.MapFS{
		"001_broken.sql": {Data: []byte("CREATE TABLE broken (;")},
	}

	require.Error(t, sqlitemigrate.Apply(ctx, db, migrations))

	var applied int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations").Scan(&applied))
	assert.Zero(t, applied)
}

func TestApplyRequiresDB(t *testing.T) {
	assert.Error(t, sqlitemigrate.Apply(context.Background(), nil, fstest.MapFS{}))
}
