package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/coursepulse/internal/config"
	"github.com/alexanderramin/coursepulse/internal/notify"
	"github.com/alexanderramin/coursepulse/internal/repository"
	"github.com/alexanderramin/coursepulse/internal/service"
	"github.com/alexanderramin/coursepulse/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Alice has submitted both assignments and finished the reading, so she is at
// 100% learner and 33% grader progress. Bob has done nothing.
const cliCourseJSON = `{
	"course": {"id": 1, "short_name": "CHEM1", "full_name": "Chemistry"},
	"users": [
		{"id": 5, "username": "alice", "first_name": "Alice", "last_name": "Atom", "email": "alice@lms.test", "roles": ["student"]},
		{"id": 6, "username": "bob", "first_name": "Bob", "last_name": "Bond", "email": "bob@lms.test", "roles": ["student"]},
		{"id": 9, "username": "tutor", "first_name": "Tom", "last_name": "Tutor", "email": "tutor@lms.test", "roles": ["teacher"]},
		{"id": 10, "username": "admin", "first_name": "Ada", "last_name": "Admin", "email": "admin@lms.test", "roles": ["admin"]},
		{"id": 11, "username": "mgr", "first_name": "Mia", "last_name": "Manager", "email": "mgr@lms.test", "roles": ["manager"]}
	],
	"groups": [{"id": 30, "name": "Lab A", "members": [5]}],
	"activities": [
		{"id": 1, "module": "assign", "instance": 1, "name": "Lab report", "section": 1, "position": 1,
		 "expected": "2026-05-08T00:00:00Z", "url": "https://lms.test/mod/assign/view.php?id=1"},
		{"id": 2, "module": "assign", "instance": 2, "name": "Essay", "section": 1, "position": 2,
		 "expected": "2026-05-09T00:00:00Z", "url": "https://lms.test/mod/assign/view.php?id=2"},
		{"id": 3, "module": "page", "instance": 3, "name": "Reading", "section": 1, "position": 3,
		 "url": "https://lms.test/mod/page/view.php?id=3"}
	],
	"assignments": [
		{"id": 1, "submissions": [{"id": 100, "user_id": 5, "attempt": 0, "status": "submitted"}]},
		{"id": 2, "submissions": [{"id": 101, "user_id": 5, "attempt": 0, "status": "submitted"}]}
	],
	"completions": [{"activity_id": 3, "user_id": 5, "state": 1}]
}`

type cliFixture struct {
	app    *App
	outbox *bytes.Buffer
}

// testApp wires a full App backed by an in-memory DB holding the CLI course.
func testApp(t *testing.T) cliFixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	repos := service.NewSQLiteRepos(database)
	oracle := service.NewRoleCapabilityOracle(repos.Roles)

	cfg := config.DefaultConfig()
	cfg.BaseURL = "https://lms.test"
	settings := cfg.Settings()
	outbox := new(bytes.Buffer)

	a := &App{
		Progress:    service.NewProgressService(repos, oracle, settings),
		Overview:    service.NewOverviewService(repos, oracle, settings),
		Submissions: service.NewSubmissionService(repos),
		Notify: service.NewNotifyService(repos, oracle, repository.NewSQLiteNotificationLogRepo(database),
			notify.NewWriterSender(outbox), uow, settings),
		Import:        service.NewImportService(uow),
		Config:        cfg,
		IsInteractive: func() bool { return false },
	}

	path := filepath.Join(t.TempDir(), "course.json")
	require.NoError(t, os.WriteFile(path, []byte(cliCourseJSON), 0o600))
	out, err := executeCmd(t, a, "import", path)
	require.NoError(t, err)
	require.Contains(t, out, "Imported Chemistry - CHEM1")

	return cliFixture{app: a, outbox: outbox}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, a *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(a)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestImportCmd_ReportsCounts(t *testing.T) {
	f := testApp(t)

	path := filepath.Join(t.TempDir(), "course.json")
	require.NoError(t, os.WriteFile(path, []byte(cliCourseJSON), 0o600))
	out, err := executeCmd(t, f.app, "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "5 users, 3 activities, 2 submissions, 1 completions")
}

func TestImportCmd_RequiresFile(t *testing.T) {
	f := testApp(t)

	_, err := executeCmd(t, f.app, "import")
	require.Error(t, err)
}

func TestBarCmd_OwnBar(t *testing.T) {
	f := testApp(t)

	out, err := executeCmd(t, f.app, "bar", "--course", "1", "--user", "5", "--at", "2026-05-10")
	require.NoError(t, err)

	assert.Contains(t, out, "ALICE ATOM (ALICE)")
	assert.Contains(t, out, "Lab report")
	assert.Contains(t, out, "Reading")
	assert.Contains(t, out, "100%")
	assert.Contains(t, out, " 33%")
	assert.Contains(t, out, "Submit all assessments")
	assert.Contains(t, out, "NOW")
	assert.Contains(t, out, "Not completed (submitted)")
}

func TestBarCmd_TutorSeesGradingLinks(t *testing.T) {
	f := testApp(t)

	out, err := executeCmd(t, f.app, "bar", "--course", "1", "--user", "5", "--viewer", "9", "--at", "2026-05-10")
	require.NoError(t, err)

	assert.Contains(t, out, "action=grade")
	assert.Contains(t, out, "Release result")
}

func TestBarCmd_LayoutFlags(t *testing.T) {
	f := testApp(t)

	out, err := executeCmd(t, f.app, "bar", "--course", "1", "--user", "5",
		"--order", "course", "--mode", "wrap", "--wrap-after", "2", "--at", "2026-05-10")
	require.NoError(t, err)
	assert.NotContains(t, out, "NOW")

	out, err = executeCmd(t, f.app, "bar", "--course", "1", "--user", "5", "--no-now", "--at", "2026-05-10")
	require.NoError(t, err)
	assert.NotContains(t, out, "NOW")
}

func TestBarCmd_InvalidInput(t *testing.T) {
	f := testApp(t)

	_, err := executeCmd(t, f.app, "bar", "--course", "99", "--user", "5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INVALID_COURSE")

	_, err = executeCmd(t, f.app, "bar", "--course", "1", "--user", "5", "--order", "alphabetical")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid order")

	_, err = executeCmd(t, f.app, "bar", "--course", "1", "--user", "5", "--at", "yesterday")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid time")

	_, err = executeCmd(t, f.app, "bar", "--course", "1")
	require.Error(t, err)
}

func TestCoursesCmd(t *testing.T) {
	f := testApp(t)

	out, err := executeCmd(t, f.app, "courses")
	require.NoError(t, err)
	assert.Contains(t, out, "CHEM1")
	assert.Contains(t, out, "Chemistry")
}

func TestOverviewCmd(t *testing.T) {
	f := testApp(t)

	out, err := executeCmd(t, f.app, "overview", "--course", "1", "--viewer", "10", "--at", "2026-05-10")
	require.NoError(t, err)
	assert.Contains(t, out, "Alice Atom (alice)")
	assert.Contains(t, out, "Bob Bond (bob)")
	assert.Contains(t, out, "Submit for grading")
	assert.Contains(t, out, "2 learners")

	out, err = executeCmd(t, f.app, "overview", "--course", "1", "--viewer", "10", "--group", "group-30")
	require.NoError(t, err)
	assert.Contains(t, out, "1 learners")
	assert.NotContains(t, out, "Bob Bond")
}

func TestOverviewCmd_LearnerViewerRejected(t *testing.T) {
	f := testApp(t)

	_, err := executeCmd(t, f.app, "overview", "--course", "1", "--viewer", "6")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INVALID_USER")
}

func TestSubmissionsCmd(t *testing.T) {
	f := testApp(t)

	out, err := executeCmd(t, f.app, "submissions", "--course", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "awaiting grade")
	assert.Contains(t, out, "assign_individual")

	out, err = executeCmd(t, f.app, "submissions", "--course", "1", "--user", "6")
	require.NoError(t, err)
	assert.Contains(t, out, "No submissions.")
}

func TestNotifyCmd_SendsWithYes(t *testing.T) {
	f := testApp(t)

	out, err := executeCmd(t, f.app, "notify", "--course", "1", "--student", "5", "--viewer", "10", "--yes", "--at", "2026-05-10")
	require.NoError(t, err)
	assert.Contains(t, out, "Submit for grading")
	assert.Contains(t, out, "31 May 2026")
	assert.Contains(t, out, "Sent 2 of 2 notifications.")
	assert.Contains(t, f.outbox.String(), "To: Tom Tutor <tutor@lms.test>")
	assert.Contains(t, f.outbox.String(), "To: Mia Manager <mgr@lms.test>")

	out, err = executeCmd(t, f.app, "history", "--course", "1", "--student", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "assessment submission")
}

func TestNotifyCmd_DryRunSendsNothing(t *testing.T) {
	f := testApp(t)

	out, err := executeCmd(t, f.app, "notify", "--course", "1", "--student", "5", "--viewer", "10", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "tutor@lms.test")
	assert.NotContains(t, out, "Sent")
	assert.Empty(t, f.outbox.String())
}

func TestNotifyCmd_NeedsConfirmation(t *testing.T) {
	f := testApp(t)

	_, err := executeCmd(t, f.app, "notify", "--course", "1", "--student", "5", "--viewer", "10")
	require.ErrorIs(t, err, ErrConfirmationRequired)
	assert.Empty(t, f.outbox.String())

	var asked string
	f.app.Confirm = func(title string) (bool, error) {
		asked = title
		return false, nil
	}
	out, err := executeCmd(t, f.app, "notify", "--course", "1", "--student", "5", "--viewer", "10")
	require.NoError(t, err)
	assert.Equal(t, "Send 2 notification(s)?", asked)
	assert.Contains(t, out, "Cancelled.")
	assert.Empty(t, f.outbox.String())
}

func TestNotifyCmd_NoAction(t *testing.T) {
	f := testApp(t)

	_, err := executeCmd(t, f.app, "notify", "--course", "1", "--student", "6", "--viewer", "5", "--yes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NO_ACTION")
}

func TestNotifyCmd_LearnerSubmitsOwnWork(t *testing.T) {
	f := testApp(t)

	out, err := executeCmd(t, f.app, "bar", "--course", "1", "--user", "5", "--at", "2026-05-10")
	require.NoError(t, err)
	assert.Contains(t, out, "Submit all assessments")

	out, err = executeCmd(t, f.app, "notify", "--course", "1", "--student", "5", "--viewer", "5", "--yes", "--at", "2026-05-10")
	require.NoError(t, err)
	assert.Contains(t, out, "Sent 2 of 2 notifications.")
	assert.Contains(t, f.outbox.String(), "To: Tom Tutor <tutor@lms.test>")
	assert.Contains(t, f.outbox.String(), "To: Mia Manager <mgr@lms.test>")
}

func TestHistoryCmd_Empty(t *testing.T) {
	f := testApp(t)

	out, err := executeCmd(t, f.app, "history", "--course", "1", "--student", "6")
	require.NoError(t, err)
	assert.Contains(t, out, "No notifications sent.")
}

func TestBrowseCmd_RequiresTerminal(t *testing.T) {
	f := testApp(t)

	_, err := executeCmd(t, f.app, "browse", "--course", "1", "--viewer", "10")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interactive terminal")
}
