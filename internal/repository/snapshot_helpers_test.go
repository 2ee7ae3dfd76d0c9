package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/alexanderramin/coursepulse/internal/domain"
	"github.com/alexanderramin/coursepulse/internal/testutil"
	"github.com/stretchr/testify/require"
)

func seedSnapshot(t *testing.T, opts ...testutil.SnapshotOption) (*sql.DB, *domain.CourseSnapshot) {
	t.Helper()
	database := testutil.NewTestDB(t)
	snap := testutil.NewTestSnapshot(1, opts...)
	require.NoError(t, NewSQLiteSnapshotRepo(database).Replace(context.Background(), snap))
	return database, snap
}
