package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillCourseSettings(db); err != nil {
		return fmt.Errorf("backfilling course settings: %w", err)
	}
	return nil
}

// migrateBackfillCourseSettings gives every course without a settings row the
// default inclusion mode.
func migrateBackfillCourseSettings(db *sql.DB) error {
	_, err := db.Exec(`INSERT INTO course_settings (course_id, inclusion_mode)
		SELECT c.id, 'activitycompletion' FROM courses c
		WHERE NOT EXISTS (SELECT 1 FROM course_settings s WHERE s.course_id = c.id)`)
	return err
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS courses (
		id         INTEGER PRIMARY KEY,
		short_name TEXT NOT NULL,
		full_name  TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS course_settings (
		course_id      INTEGER PRIMARY KEY REFERENCES courses(id) ON DELETE CASCADE,
		inclusion_mode TEXT NOT NULL DEFAULT 'activitycompletion'
		               CHECK(inclusion_mode IN ('activitycompletion','selectedactivities'))
	)`,

	`CREATE TABLE IF NOT EXISTS selected_activities (
		course_id   INTEGER NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
		module_type TEXT NOT NULL,
		instance_id INTEGER NOT NULL,
		PRIMARY KEY (course_id, module_type, instance_id)
	)`,

	`CREATE TABLE IF NOT EXISTS users (
		id         INTEGER PRIMARY KEY,
		username   TEXT NOT NULL UNIQUE,
		first_name TEXT NOT NULL DEFAULT '',
		last_name  TEXT NOT NULL DEFAULT '',
		email      TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS role_assignments (
		course_id INTEGER NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
		user_id   INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		role      TEXT NOT NULL
		          CHECK(role IN ('student','teacher','editingteacher','manager','admin')),
		PRIMARY KEY (course_id, user_id, role)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_role_assignments_user ON role_assignments(user_id)`,

	`CREATE TABLE IF NOT EXISTS course_groups (
		id        INTEGER PRIMARY KEY,
		course_id INTEGER NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
		name      TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS group_members (
		group_id INTEGER NOT NULL REFERENCES course_groups(id) ON DELETE CASCADE,
		user_id  INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		PRIMARY KEY (group_id, user_id)
	)`,

	`CREATE TABLE IF NOT EXISTS groupings (
		id        INTEGER PRIMARY KEY,
		course_id INTEGER NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
		name      TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS grouping_groups (
		grouping_id INTEGER NOT NULL REFERENCES groupings(id) ON DELETE CASCADE,
		group_id    INTEGER NOT NULL REFERENCES course_groups(id) ON DELETE CASCADE,
		PRIMARY KEY (grouping_id, group_id)
	)`,

	`CREATE TABLE IF NOT EXISTS course_modules (
		id             INTEGER PRIMARY KEY,
		course_id      INTEGER NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
		module_type    TEXT NOT NULL,
		instance_id    INTEGER NOT NULL,
		name           TEXT NOT NULL,
		expected_at    TEXT,
		section        INTEGER NOT NULL DEFAULT 0,
		position       INTEGER NOT NULL DEFAULT 0,
		icon_ref       TEXT NOT NULL DEFAULT '',
		url            TEXT NOT NULL DEFAULT '',
		visible        INTEGER NOT NULL DEFAULT 1,
		available      INTEGER NOT NULL DEFAULT 1,
		available_info TEXT NOT NULL DEFAULT '',
		tracking       INTEGER NOT NULL DEFAULT 0 CHECK(tracking IN (0,1,2))
	)`,

	`CREATE INDEX IF NOT EXISTS idx_course_modules_course ON course_modules(course_id)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_course_modules_instance ON course_modules(module_type, instance_id)`,

	`CREATE TABLE IF NOT EXISTS assignments (
		id                              INTEGER PRIMARY KEY,
		course_id                       INTEGER NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
		team_submission                 INTEGER NOT NULL DEFAULT 0,
		require_all_members_submit      INTEGER NOT NULL DEFAULT 0,
		prevent_submission_not_in_group INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS assign_submissions (
		id             INTEGER PRIMARY KEY,
		assignment_id  INTEGER NOT NULL REFERENCES assignments(id) ON DELETE CASCADE,
		user_id        INTEGER NOT NULL DEFAULT 0,
		group_id       INTEGER NOT NULL DEFAULT 0,
		attempt_number INTEGER NOT NULL DEFAULT 0,
		latest         INTEGER NOT NULL DEFAULT 1,
		status         TEXT NOT NULL DEFAULT 'new'
		               CHECK(status IN ('new','draft','submitted'))
	)`,

	`CREATE INDEX IF NOT EXISTS idx_assign_submissions_assignment ON assign_submissions(assignment_id)`,

	`CREATE TABLE IF NOT EXISTS assign_grades (
		id             INTEGER PRIMARY KEY,
		assignment_id  INTEGER NOT NULL REFERENCES assignments(id) ON DELETE CASCADE,
		user_id        INTEGER NOT NULL,
		attempt_number INTEGER NOT NULL DEFAULT 0,
		grade          REAL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_assign_grades_lookup ON assign_grades(assignment_id, user_id, attempt_number)`,

	`CREATE TABLE IF NOT EXISTS workshops (
		id        INTEGER PRIMARY KEY,
		course_id INTEGER NOT NULL REFERENCES courses(id) ON DELETE CASCADE
	)`,

	`CREATE TABLE IF NOT EXISTS workshop_submissions (
		id          INTEGER PRIMARY KEY,
		workshop_id INTEGER NOT NULL REFERENCES workshops(id) ON DELETE CASCADE,
		author_id   INTEGER NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS quizzes (
		id           INTEGER PRIMARY KEY,
		course_id    INTEGER NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
		grade_method INTEGER NOT NULL DEFAULT 1 CHECK(grade_method IN (1,2,3,4))
	)`,

	`CREATE TABLE IF NOT EXISTS quiz_attempts (
		id         INTEGER PRIMARY KEY,
		quiz_id    INTEGER NOT NULL REFERENCES quizzes(id) ON DELETE CASCADE,
		user_id    INTEGER NOT NULL,
		attempt    INTEGER NOT NULL,
		state      TEXT NOT NULL DEFAULT 'inprogress'
		           CHECK(state IN ('inprogress','finished','abandoned')),
		sum_grades REAL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_quiz_attempts_quiz_user ON quiz_attempts(quiz_id, user_id)`,

	`CREATE TABLE IF NOT EXISTS completion_states (
		activity_id INTEGER NOT NULL REFERENCES course_modules(id) ON DELETE CASCADE,
		user_id     INTEGER NOT NULL,
		state       INTEGER NOT NULL CHECK(state IN (0,1,2,3)),
		PRIMARY KEY (activity_id, user_id)
	)`,

	`CREATE TABLE IF NOT EXISTS grade_exclusions (
		course_id   INTEGER NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
		module_type TEXT NOT NULL,
		instance_id INTEGER NOT NULL,
		user_id     INTEGER NOT NULL,
		PRIMARY KEY (course_id, module_type, instance_id, user_id)
	)`,

	`CREATE TABLE IF NOT EXISTS notification_log (
		id           TEXT PRIMARY KEY,
		course_id    INTEGER NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
		student_id   INTEGER NOT NULL,
		sender_id    INTEGER NOT NULL,
		recipient_id INTEGER NOT NULL,
		signal       TEXT NOT NULL
		             CHECK(signal IN ('offer_submit_for_grading','offer_release_result')),
		subject      TEXT NOT NULL,
		created_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_notification_log_course ON notification_log(course_id, student_id)`,
}
