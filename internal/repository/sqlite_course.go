package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/coursepulse/internal/db"
	"github.com/alexanderramin/coursepulse/internal/domain"
)

// SQLiteCourseRepo implements CourseRepo, RoleRepo and GroupRepo over the
// course membership tables.
type SQLiteCourseRepo struct {
	db db.DBTX
}

func NewSQLiteCourseRepo(conn db.DBTX) *SQLiteCourseRepo {
	return &SQLiteCourseRepo{db: conn}
}

func (r *SQLiteCourseRepo) GetByID(ctx context.Context, id int64) (*domain.Course, error) {
	var c domain.Course
	err := r.db.QueryRowContext(ctx,
		`SELECT id, short_name, full_name FROM courses WHERE id = ?`, id,
	).Scan(&c.ID, &c.ShortName, &c.FullName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("course %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning course: %w", err)
	}
	return &c, nil
}

func (r *SQLiteCourseRepo) List(ctx context.Context) ([]*domain.Course, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, short_name, full_name FROM courses ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing courses: %w", err)
	}
	defer rows.Close()

	var courses []*domain.Course
	for rows.Next() {
		var c domain.Course
		if err := rows.Scan(&c.ID, &c.ShortName, &c.FullName); err != nil {
			return nil, fmt.Errorf("scanning course: %w", err)
		}
		courses = append(courses, &c)
	}
	return courses, rows.Err()
}

func (r *SQLiteCourseRepo) ListRoles(ctx context.Context, courseID, userID int64) ([]domain.RoleName, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT role FROM role_assignments WHERE course_id = ? AND user_id = ? ORDER BY role`,
		courseID, userID)
	if err != nil {
		return nil, fmt.Errorf("listing roles: %w", err)
	}
	defer rows.Close()

	var roles []domain.RoleName
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, fmt.Errorf("scanning role: %w", err)
		}
		roles = append(roles, domain.RoleName(role))
	}
	return roles, rows.Err()
}

func (r *SQLiteCourseRepo) ListUsersWithRoles(ctx context.Context, courseID int64, roles ...domain.RoleName) ([]domain.User, error) {
	if len(roles) == 0 {
		return nil, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(roles)), ",")
	args := []any{courseID}
	for _, role := range roles {
		args = append(args, string(role))
	}

	query := `SELECT DISTINCT u.id, u.username, u.first_name, u.last_name, u.email
		FROM users u
		JOIN role_assignments ra ON ra.user_id = u.id
		WHERE ra.course_id = ? AND ra.role IN (` + placeholders + `)
		ORDER BY u.last_name, u.first_name, u.id`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing users with roles: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.Email); err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *SQLiteCourseRepo) ListMemberships(ctx context.Context, courseID, userID int64) ([]int64, []int64, error) {
	groupIDs, err := r.listIDs(ctx, `SELECT g.id FROM course_groups g
		JOIN group_members m ON m.group_id = g.id
		WHERE g.course_id = ? AND m.user_id = ?
		ORDER BY g.id`, courseID, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("listing groups: %w", err)
	}

	groupingIDs, err := r.listIDs(ctx, `SELECT DISTINCT gg.grouping_id FROM grouping_groups gg
		JOIN groupings gp ON gp.id = gg.grouping_id
		JOIN group_members m ON m.group_id = gg.group_id
		WHERE gp.course_id = ? AND m.user_id = ?
		ORDER BY gg.grouping_id`, courseID, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("listing groupings: %w", err)
	}
	return groupIDs, groupingIDs, nil
}

func (r *SQLiteCourseRepo) listIDs(ctx context.Context, query string, args ...any) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

var (
	_ CourseRepo = (*SQLiteCourseRepo)(nil)
	_ RoleRepo   = (*SQLiteCourseRepo)(nil)
	_ GroupRepo  = (*SQLiteCourseRepo)(nil)
)
