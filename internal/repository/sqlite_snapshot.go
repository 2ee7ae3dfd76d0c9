package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/coursepulse/internal/db"
	"github.com/alexanderramin/coursepulse/internal/domain"
)

// SQLiteSnapshotRepo implements SnapshotRepo. Users are shared between
// courses and are upserted; everything else belonging to the course is
// deleted and re-inserted. The notification log is kept.
type SQLiteSnapshotRepo struct {
	db db.DBTX
}

func NewSQLiteSnapshotRepo(conn db.DBTX) *SQLiteSnapshotRepo {
	return &SQLiteSnapshotRepo{db: conn}
}

// courseScopedDeletes clear a course's records. Child rows of modules,
// assignments, quizzes, workshops and groups go with their parents.
var courseScopedDeletes = []string{
	`DELETE FROM course_modules WHERE course_id = ?`,
	`DELETE FROM assignments WHERE course_id = ?`,
	`DELETE FROM workshops WHERE course_id = ?`,
	`DELETE FROM quizzes WHERE course_id = ?`,
	`DELETE FROM groupings WHERE course_id = ?`,
	`DELETE FROM course_groups WHERE course_id = ?`,
	`DELETE FROM role_assignments WHERE course_id = ?`,
	`DELETE FROM grade_exclusions WHERE course_id = ?`,
	`DELETE FROM selected_activities WHERE course_id = ?`,
	`DELETE FROM course_settings WHERE course_id = ?`,
}

func (r *SQLiteSnapshotRepo) Replace(ctx context.Context, snap *domain.CourseSnapshot) error {
	c := snap.Course
	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO courses (id, short_name, full_name) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET short_name = excluded.short_name, full_name = excluded.full_name`,
		c.ID, c.ShortName, c.FullName); err != nil {
		return fmt.Errorf("upserting course: %w", err)
	}

	for _, stmt := range courseScopedDeletes {
		if _, err := r.db.ExecContext(ctx, stmt, c.ID); err != nil {
			return fmt.Errorf("clearing course %d: %w", c.ID, err)
		}
	}

	steps := []struct {
		name string
		fn   func(context.Context, *domain.CourseSnapshot) error
	}{
		{"settings", r.insertSettings},
		{"users", r.insertUsers},
		{"groups", r.insertGroups},
		{"activities", r.insertActivities},
		{"assignments", r.insertAssignments},
		{"workshops", r.insertWorkshops},
		{"quizzes", r.insertQuizzes},
		{"completions", r.insertCompletions},
		{"exclusions", r.insertExclusions},
	}
	for _, step := range steps {
		if err := step.fn(ctx, snap); err != nil {
			return fmt.Errorf("importing %s: %w", step.name, err)
		}
	}
	return nil
}

func (r *SQLiteSnapshotRepo) insertSettings(ctx context.Context, snap *domain.CourseSnapshot) error {
	mode := snap.Inclusion
	if mode == "" {
		mode = domain.IncludeAllTracked
	}
	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO course_settings (course_id, inclusion_mode) VALUES (?, ?)`,
		snap.Course.ID, string(mode)); err != nil {
		return err
	}
	for _, ref := range snap.Selected {
		if _, err := r.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO selected_activities (course_id, module_type, instance_id) VALUES (?, ?, ?)`,
			snap.Course.ID, string(ref.ModuleType), ref.InstanceID); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteSnapshotRepo) insertUsers(ctx context.Context, snap *domain.CourseSnapshot) error {
	for _, u := range snap.Users {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO users (id, username, first_name, last_name, email) VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET username = excluded.username, first_name = excluded.first_name,
				last_name = excluded.last_name, email = excluded.email`,
			u.ID, u.Username, u.FirstName, u.LastName, u.Email); err != nil {
			return fmt.Errorf("user %d: %w", u.ID, err)
		}
	}
	for _, ra := range snap.Roles {
		if _, err := r.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO role_assignments (course_id, user_id, role) VALUES (?, ?, ?)`,
			snap.Course.ID, ra.UserID, string(ra.Role)); err != nil {
			return fmt.Errorf("role for user %d: %w", ra.UserID, err)
		}
	}
	return nil
}

func (r *SQLiteSnapshotRepo) insertGroups(ctx context.Context, snap *domain.CourseSnapshot) error {
	for _, g := range snap.Groups {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO course_groups (id, course_id, name) VALUES (?, ?, ?)`,
			g.ID, snap.Course.ID, g.Name); err != nil {
			return fmt.Errorf("group %d: %w", g.ID, err)
		}
	}
	for _, m := range snap.GroupMembers {
		if _, err := r.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO group_members (group_id, user_id) VALUES (?, ?)`,
			m.GroupID, m.UserID); err != nil {
			return fmt.Errorf("member %d of group %d: %w", m.UserID, m.GroupID, err)
		}
	}
	for _, gp := range snap.Groupings {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO groupings (id, course_id, name) VALUES (?, ?, ?)`,
			gp.ID, snap.Course.ID, gp.Name); err != nil {
			return fmt.Errorf("grouping %d: %w", gp.ID, err)
		}
		for _, gid := range gp.GroupIDs {
			if _, err := r.db.ExecContext(ctx,
				`INSERT OR IGNORE INTO grouping_groups (grouping_id, group_id) VALUES (?, ?)`,
				gp.ID, gid); err != nil {
				return fmt.Errorf("group %d in grouping %d: %w", gid, gp.ID, err)
			}
		}
	}
	return nil
}

func (r *SQLiteSnapshotRepo) insertActivities(ctx context.Context, snap *domain.CourseSnapshot) error {
	for _, a := range snap.Activities {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO course_modules (`+activityColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			a.ID, snap.Course.ID, string(a.ModuleType), a.InstanceID, a.Name,
			nullableTimeToString(a.ExpectedAt, time.RFC3339),
			a.Section, a.Position, a.IconRef, a.URL,
			boolToInt(a.Visible), boolToInt(a.Available), a.AvailableInfo, int(a.Tracking)); err != nil {
			return fmt.Errorf("activity %d: %w", a.ID, err)
		}
	}
	return nil
}

func (r *SQLiteSnapshotRepo) insertAssignments(ctx context.Context, snap *domain.CourseSnapshot) error {
	for _, a := range snap.Assignments {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO assignments (id, course_id, team_submission, require_all_members_submit, prevent_submission_not_in_group)
			VALUES (?, ?, ?, ?, ?)`,
			a.ID, snap.Course.ID, boolToInt(a.TeamSubmission),
			boolToInt(a.RequireAllMembersSubmit), boolToInt(a.PreventSubmissionNotInGroup)); err != nil {
			return fmt.Errorf("assignment %d: %w", a.ID, err)
		}
	}
	for _, s := range snap.AssignSubmissions {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO assign_submissions (id, assignment_id, user_id, group_id, attempt_number, latest, status)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			s.ID, s.AssignmentID, s.UserID, s.GroupID, s.AttemptNumber, boolToInt(s.Latest), s.Status); err != nil {
			return fmt.Errorf("assignment submission %d: %w", s.ID, err)
		}
	}
	for _, g := range snap.AssignGrades {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO assign_grades (id, assignment_id, user_id, attempt_number, grade) VALUES (?, ?, ?, ?, ?)`,
			g.ID, g.AssignmentID, g.UserID, g.AttemptNumber, nullableFloatToValue(g.Grade)); err != nil {
			return fmt.Errorf("assignment grade %d: %w", g.ID, err)
		}
	}
	return nil
}

func (r *SQLiteSnapshotRepo) insertWorkshops(ctx context.Context, snap *domain.CourseSnapshot) error {
	for _, w := range snap.Workshops {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO workshops (id, course_id) VALUES (?, ?)`, w.ID, snap.Course.ID); err != nil {
			return fmt.Errorf("workshop %d: %w", w.ID, err)
		}
	}
	for _, s := range snap.WorkshopSubmissions {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO workshop_submissions (id, workshop_id, author_id) VALUES (?, ?, ?)`,
			s.ID, s.WorkshopID, s.AuthorID); err != nil {
			return fmt.Errorf("workshop submission %d: %w", s.ID, err)
		}
	}
	return nil
}

func (r *SQLiteSnapshotRepo) insertQuizzes(ctx context.Context, snap *domain.CourseSnapshot) error {
	for _, q := range snap.Quizzes {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO quizzes (id, course_id, grade_method) VALUES (?, ?, ?)`,
			q.ID, snap.Course.ID, int(q.GradeMethod)); err != nil {
			return fmt.Errorf("quiz %d: %w", q.ID, err)
		}
	}
	for _, a := range snap.QuizAttempts {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO quiz_attempts (id, quiz_id, user_id, attempt, state, sum_grades) VALUES (?, ?, ?, ?, ?, ?)`,
			a.ID, a.QuizID, a.UserID, a.Attempt, a.State, nullableFloatToValue(a.SumGrades)); err != nil {
			return fmt.Errorf("quiz attempt %d: %w", a.ID, err)
		}
	}
	return nil
}

func (r *SQLiteSnapshotRepo) insertCompletions(ctx context.Context, snap *domain.CourseSnapshot) error {
	for _, c := range snap.Completions {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO completion_states (activity_id, user_id, state) VALUES (?, ?, ?)
			ON CONFLICT(activity_id, user_id) DO UPDATE SET state = excluded.state`,
			c.ActivityID, c.UserID, int(c.State)); err != nil {
			return fmt.Errorf("completion of activity %d for user %d: %w", c.ActivityID, c.UserID, err)
		}
	}
	return nil
}

func (r *SQLiteSnapshotRepo) insertExclusions(ctx context.Context, snap *domain.CourseSnapshot) error {
	for _, e := range snap.Exclusions {
		if _, err := r.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO grade_exclusions (course_id, module_type, instance_id, user_id) VALUES (?, ?, ?, ?)`,
			snap.Course.ID, string(e.ModuleType), e.InstanceID, e.UserID); err != nil {
			return fmt.Errorf("exclusion: %w", err)
		}
	}
	return nil
}

var _ SnapshotRepo = (*SQLiteSnapshotRepo)(nil)
