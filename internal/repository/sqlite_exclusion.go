package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/coursepulse/internal/db"
	"github.com/alexanderramin/coursepulse/internal/domain"
)

type SQLiteExclusionRepo struct {
	db db.DBTX
}

func NewSQLiteExclusionRepo(conn db.DBTX) *SQLiteExclusionRepo {
	return &SQLiteExclusionRepo{db: conn}
}

func (r *SQLiteExclusionRepo) ListByCourse(ctx context.Context, courseID, userID int64) ([]domain.Exclusion, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT module_type, instance_id, user_id FROM grade_exclusions
		WHERE course_id = ? AND (? = 0 OR user_id = ?)
		ORDER BY user_id, module_type, instance_id`,
		append([]any{courseID}, userFilter(userID)...)...)
	if err != nil {
		return nil, fmt.Errorf("listing exclusions: %w", err)
	}
	defer rows.Close()

	var out []domain.Exclusion
	for rows.Next() {
		var e domain.Exclusion
		var moduleType string
		if err := rows.Scan(&moduleType, &e.InstanceID, &e.UserID); err != nil {
			return nil, fmt.Errorf("scanning exclusion: %w", err)
		}
		e.ModuleType = domain.ModuleType(moduleType)
		out = append(out, e)
	}
	return out, rows.Err()
}

var _ ExclusionRepo = (*SQLiteExclusionRepo)(nil)
