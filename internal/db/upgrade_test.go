package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMigrate_UpgradePath_CoursesWithoutSettings simulates a database created
// before per-course inclusion settings existed. Existing courses keep their
// data and receive the default inclusion mode.
func TestMigrate_UpgradePath_CoursesWithoutSettings(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	legacy := []string{
		`CREATE TABLE courses (
			id         INTEGER PRIMARY KEY,
			short_name TEXT NOT NULL,
			full_name  TEXT NOT NULL DEFAULT ''
		)`,
		`INSERT INTO courses (id, short_name, full_name) VALUES (1, 'CHEM1', 'Chemistry'), (2, 'PHYS1', 'Physics')`,
	}
	for _, stmt := range legacy {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}

	require.NoError(t, Migrate(db))

	var fullName string
	require.NoError(t, db.QueryRow(`SELECT full_name FROM courses WHERE id = 1`).Scan(&fullName))
	assert.Equal(t, "Chemistry", fullName)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM course_settings WHERE inclusion_mode = 'activitycompletion'`).Scan(&count))
	assert.Equal(t, 2, count)
}
