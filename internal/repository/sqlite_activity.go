package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/coursepulse/internal/db"
	"github.com/alexanderramin/coursepulse/internal/domain"
)

// SQLiteActivityRepo implements ActivityRepo and CompletionRepo.
type SQLiteActivityRepo struct {
	db db.DBTX
}

func NewSQLiteActivityRepo(conn db.DBTX) *SQLiteActivityRepo {
	return &SQLiteActivityRepo{db: conn}
}

const activityColumns = `id, course_id, module_type, instance_id, name, expected_at,
	section, position, icon_ref, url, visible, available, available_info, tracking`

// ListByCourse returns every course module in course order. An unknown course
// yields an empty list.
func (r *SQLiteActivityRepo) ListByCourse(ctx context.Context, courseID int64) ([]domain.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM course_modules
		WHERE course_id = ? ORDER BY section, position, id`
	rows, err := r.db.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("listing activities: %w", err)
	}
	defer rows.Close()

	var out []domain.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating activities: %w", err)
	}
	return out, nil
}

func scanActivity(rows *sql.Rows) (domain.Activity, error) {
	var a domain.Activity
	var moduleType string
	var expected sql.NullString
	var visible, available, tracking int
	err := rows.Scan(
		&a.ID, &a.CourseID, &moduleType, &a.InstanceID, &a.Name, &expected,
		&a.Section, &a.Position, &a.IconRef, &a.URL, &visible, &available, &a.AvailableInfo, &tracking,
	)
	if err != nil {
		return a, fmt.Errorf("scanning activity: %w", err)
	}
	a.ModuleType = domain.ModuleType(moduleType)
	a.ExpectedAt = parseNullableTime(expected, time.RFC3339)
	a.Visible = intToBool(visible)
	a.Available = intToBool(available)
	a.Tracking = domain.CompletionTracking(tracking)
	return a, nil
}

// GetInclusion returns the course's inclusion mode and allow-list. Courses
// without settings use the all-tracked mode.
func (r *SQLiteActivityRepo) GetInclusion(ctx context.Context, courseID int64) (domain.InclusionMode, []domain.ActivityRef, error) {
	mode := domain.IncludeAllTracked
	var stored string
	err := r.db.QueryRowContext(ctx,
		`SELECT inclusion_mode FROM course_settings WHERE course_id = ?`, courseID,
	).Scan(&stored)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return mode, nil, fmt.Errorf("loading course settings: %w", err)
	default:
		mode = domain.InclusionMode(stored)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT module_type, instance_id FROM selected_activities
		WHERE course_id = ? ORDER BY module_type, instance_id`, courseID)
	if err != nil {
		return mode, nil, fmt.Errorf("listing selected activities: %w", err)
	}
	defer rows.Close()

	var refs []domain.ActivityRef
	for rows.Next() {
		var ref domain.ActivityRef
		var moduleType string
		if err := rows.Scan(&moduleType, &ref.InstanceID); err != nil {
			return mode, nil, fmt.Errorf("scanning selected activity: %w", err)
		}
		ref.ModuleType = domain.ModuleType(moduleType)
		refs = append(refs, ref)
	}
	return mode, refs, rows.Err()
}

// ListForUser returns the raw completion states recorded for userID across
// the course's activities.
func (r *SQLiteActivityRepo) ListForUser(ctx context.Context, courseID, userID int64) (map[int64]domain.CompletionState, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT cs.activity_id, cs.state FROM completion_states cs
		JOIN course_modules c ON c.id = cs.activity_id
		WHERE c.course_id = ? AND cs.user_id = ?`, courseID, userID)
	if err != nil {
		return nil, fmt.Errorf("listing completion states: %w", err)
	}
	defer rows.Close()

	out := make(map[int64]domain.CompletionState)
	for rows.Next() {
		var activityID int64
		var code int
		if err := rows.Scan(&activityID, &code); err != nil {
			return nil, fmt.Errorf("scanning completion state: %w", err)
		}
		state, err := domain.CompletionFromRaw(code)
		if err != nil {
			return nil, fmt.Errorf("activity %d: %w", activityID, err)
		}
		out[activityID] = state
	}
	return out, rows.Err()
}

var (
	_ ActivityRepo   = (*SQLiteActivityRepo)(nil)
	_ CompletionRepo = (*SQLiteActivityRepo)(nil)
)
