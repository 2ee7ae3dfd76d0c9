package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/coursepulse/internal/db"
	"github.com/alexanderramin/coursepulse/internal/domain"
)

// SQLiteSubmissionSourceRepo implements SubmissionSourceRepo. Each query
// returns flat rows; grouping and gradedness reduction happen in the caller.
type SQLiteSubmissionSourceRepo struct {
	db db.DBTX
}

func NewSQLiteSubmissionSourceRepo(conn db.DBTX) *SQLiteSubmissionSourceRepo {
	return &SQLiteSubmissionSourceRepo{db: conn}
}

// gradedExpr is 1 when a grade row exists and holds a real grade.
const gradedExpr = `CASE WHEN ag.grade IS NULL OR ag.grade = -1 THEN 0 ELSE 1 END`

// AssignIndividualRows covers individual submissions, team assignments that
// require every member to submit, and ungrouped users of team assignments that
// allow submitting outside a group.
func (r *SQLiteSubmissionSourceRepo) AssignIndividualRows(ctx context.Context, courseID, userID int64) ([]domain.SubmissionRow, error) {
	query := `SELECT s.user_id, c.id, 0, 0, 0, 0, ` + gradedExpr + `
		FROM assign_submissions s
		JOIN assignments a ON s.assignment_id = a.id
		JOIN course_modules c ON c.module_type = 'assign' AND c.instance_id = a.id
		LEFT JOIN assign_grades ag ON ag.assignment_id = s.assignment_id
			AND ag.attempt_number = s.attempt_number
			AND ag.user_id = s.user_id
		WHERE s.latest = 1
		  AND s.status = 'submitted'
		  AND a.course_id = ?
		  AND (
			a.team_submission = 0 OR
			(a.team_submission <> 0 AND a.require_all_members_submit <> 0 AND s.group_id = 0) OR
			(a.team_submission <> 0 AND a.prevent_submission_not_in_group = 0 AND s.group_id = 0)
		  )
		  AND (? = 0 OR s.user_id = ?)
		ORDER BY s.user_id, c.id`
	return r.query(ctx, "assign individual", query, append([]any{courseID}, userFilter(userID)...)...)
}

// AssignTeamRows expands single-submission team assignments to one row per
// group member. Gradedness is decided over every member of the group for the
// team's attempt, before the user filter narrows the rows, so a learner sees
// the same result whether the course or only that learner is queried.
func (r *SQLiteSubmissionSourceRepo) AssignTeamRows(ctx context.Context, courseID, userID int64) ([]domain.SubmissionRow, error) {
	query := `SELECT m.user_id, c.id, gs.group_id, 0, 0, 0,
			CASE WHEN EXISTS (
				SELECT 1
				FROM group_members tm
				JOIN assign_grades ag ON ag.assignment_id = gs.assignment_id
					AND ag.attempt_number = gs.attempt_number
					AND ag.user_id = tm.user_id
				WHERE tm.group_id = gs.group_id
				  AND ag.grade IS NOT NULL
				  AND ag.grade <> -1
			) THEN 1 ELSE 0 END
		FROM assign_submissions gs
		JOIN assignments a ON gs.assignment_id = a.id
		JOIN course_modules c ON c.module_type = 'assign' AND c.instance_id = a.id
		JOIN group_members m ON m.group_id = gs.group_id
		WHERE gs.latest = 1
		  AND gs.status = 'submitted'
		  AND gs.user_id = 0
		  AND a.course_id = ?
		  AND a.team_submission <> 0
		  AND a.require_all_members_submit = 0
		  AND (? = 0 OR m.user_id = ?)
		ORDER BY m.user_id, c.id, gs.group_id`
	return r.query(ctx, "assign team", query, append([]any{courseID}, userFilter(userID)...)...)
}

func (r *SQLiteSubmissionSourceRepo) WorkshopRows(ctx context.Context, courseID, userID int64) ([]domain.SubmissionRow, error) {
	query := `SELECT s.author_id, c.id, 0, 0, 0, 0, 1
		FROM workshop_submissions s
		JOIN workshops w ON s.workshop_id = w.id
		JOIN course_modules c ON c.module_type = 'workshop' AND c.instance_id = w.id
		WHERE w.course_id = ?
		  AND (? = 0 OR s.author_id = ?)
		ORDER BY s.author_id, c.id`
	return r.query(ctx, "workshop", query, append([]any{courseID}, userFilter(userID)...)...)
}

// QuizSelectedAttemptRows returns every finished attempt of quizzes graded on
// the first or last attempt.
func (r *SQLiteSubmissionSourceRepo) QuizSelectedAttemptRows(ctx context.Context, courseID, userID int64) ([]domain.SubmissionRow, error) {
	return r.quizRows(ctx, "quiz selected attempt", courseID, userID, domain.GradeFirstAttempt, domain.GradeLastAttempt)
}

// QuizAllAttemptRows returns every finished attempt of quizzes graded on the
// highest or average attempt.
func (r *SQLiteSubmissionSourceRepo) QuizAllAttemptRows(ctx context.Context, courseID, userID int64) ([]domain.SubmissionRow, error) {
	return r.quizRows(ctx, "quiz all attempts", courseID, userID, domain.GradeHighest, domain.GradeAverage)
}

func (r *SQLiteSubmissionSourceRepo) quizRows(ctx context.Context, label string, courseID, userID int64, methods ...domain.QuizGradeMethod) ([]domain.SubmissionRow, error) {
	query := `SELECT qa.user_id, c.id, 0, qa.id, qa.attempt, q.grade_method,
			CASE WHEN qa.sum_grades IS NULL THEN 0 ELSE 1 END
		FROM quiz_attempts qa
		JOIN quizzes q ON q.id = qa.quiz_id
		JOIN course_modules c ON c.module_type = 'quiz' AND c.instance_id = q.id
		WHERE qa.state = 'finished'
		  AND q.course_id = ?
		  AND q.grade_method IN (?, ?)
		  AND (? = 0 OR qa.user_id = ?)
		ORDER BY qa.user_id, c.id, qa.attempt`
	args := []any{courseID, int(methods[0]), int(methods[1])}
	return r.query(ctx, label, query, append(args, userFilter(userID)...)...)
}

func (r *SQLiteSubmissionSourceRepo) query(ctx context.Context, label, query string, args ...any) ([]domain.SubmissionRow, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying %s submissions: %w", label, err)
	}
	defer rows.Close()
	return scanSubmissionRows(rows, label)
}

func scanSubmissionRows(rows *sql.Rows, label string) ([]domain.SubmissionRow, error) {
	var out []domain.SubmissionRow
	for rows.Next() {
		var row domain.SubmissionRow
		var method, graded int
		if err := rows.Scan(&row.UserID, &row.ActivityID, &row.GroupID, &row.AttemptID, &row.Attempt, &method, &graded); err != nil {
			return nil, fmt.Errorf("scanning %s submission row: %w", label, err)
		}
		row.GradeMethod = domain.QuizGradeMethod(method)
		row.Graded = intToBool(graded)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s submission rows: %w", label, err)
	}
	return out, nil
}
