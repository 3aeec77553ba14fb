package db

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	// Run migrations a second time, including the ADD COLUMN.
	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesCredentialsTable(t *testing.T) {
	db := openTestDB(t)

	rows, err := db.Query(`PRAGMA table_info(credentials)`)
	require.NoError(t, err)
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var (
			cid     int
			name    string
			typ     string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		require.NoError(t, rows.Scan(&cid, &name, &typ, &notNull, &dflt, &pk))
		cols = append(cols, name)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{"id", "username", "password_hash", "device_json", "updated_at", "session_id"}, cols)
}

func TestMigrate_SingleRowConstraint(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO credentials (id, username, password_hash, device_json, updated_at)
		VALUES (2, 'u', 'h', '{}', 'now')`)
	assert.Error(t, err)
}

func TestOpenDB_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "reschool.db")

	db, err := OpenDB(path)
	require.NoError(t, err)
	defer db.Close()

	assert.FileExists(t, path)
}
