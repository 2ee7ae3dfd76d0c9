package service

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/coursepulse/internal/app"
	"github.com/alexanderramin/coursepulse/internal/db"
	"github.com/alexanderramin/coursepulse/internal/domain"
	"github.com/alexanderramin/coursepulse/internal/notify"
	"github.com/alexanderramin/coursepulse/internal/repository"
	"github.com/alexanderramin/coursepulse/internal/testutil"
	"github.com/stretchr/testify/require"
)

const (
	testCourse  int64 = 1
	userAlice   int64 = 5
	userBob     int64 = 6
	userTutor   int64 = 9
	userAdmin   int64 = 10
	userManager int64 = 11
)

var testNow = time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)

func newRepos(conn db.DBTX) Repos {
	return NewSQLiteRepos(conn)
}

func testSettings() Settings {
	s := DefaultSettings()
	s.BaseURL = "https://lms.test"
	return s
}

// seedCourse stores a course with two learners, a tutor, a manager and an
// administrator. Alice has submitted everything but only the page is
// complete; Bob has done nothing.
//
//	1 assign   (expected now-2d)  alice submitted, ungraded
//	2 quiz     (expected now-1d)  alice graded last attempt 500, raw incomplete
//	3 workshop (expected now+5d)  alice submitted
//	4 page     (no expected)      alice complete
func seedCourse(t *testing.T, extra ...testutil.SnapshotOption) *sql.DB {
	t.Helper()
	day := 24 * time.Hour
	opts := []testutil.SnapshotOption{
		testutil.WithUser(userAlice, "alice", domain.RoleStudent),
		testutil.WithUser(userBob, "bob", domain.RoleStudent),
		testutil.WithUser(userTutor, "tutor", domain.RoleTeacher),
		testutil.WithUser(userAdmin, "admin", domain.RoleAdmin),
		testutil.WithUser(userManager, "mgr", domain.RoleManager),
		testutil.WithActivities(
			testutil.NewTestActivity(1, domain.ModuleAssign, 1, testutil.WithExpected(testNow.Add(-2*day))),
			testutil.NewTestActivity(2, domain.ModuleQuiz, 2, testutil.WithExpected(testNow.Add(-day))),
			testutil.NewTestActivity(3, domain.ModuleWorkshop, 3, testutil.WithExpected(testNow.Add(5*day))),
			testutil.NewTestActivity(4, domain.ModulePage, 4),
		),
		testutil.WithAssignment(domain.Assignment{ID: 1}),
		testutil.WithAssignSubmission(100, 1, userAlice, 0, domain.SubmissionStatusSubmitted),
		testutil.WithQuiz(2, domain.GradeLastAttempt),
		testutil.WithQuizAttempt(500, 2, userAlice, 1, testutil.Grade(8)),
		testutil.WithWorkshopSubmission(300, 3, userAlice),
		testutil.WithCompletion(4, userAlice, domain.CompletionComplete),
	}
	database := testutil.NewTestDB(t)
	snap := testutil.NewTestSnapshot(testCourse, append(opts, extra...)...)
	require.NoError(t, repository.NewSQLiteSnapshotRepo(database).Replace(context.Background(), snap))
	return database
}

func requireRequestError(t *testing.T, err error, code app.RequestErrorCode) {
	t.Helper()
	require.Error(t, err)
	var reqErr *app.RequestError
	require.True(t, errors.As(err, &reqErr), "expected *app.RequestError, got %T: %v", err, err)
	require.Equal(t, code, reqErr.Code)
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
}

func (o *recordingObserver) last() UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.events[len(o.events)-1]
}

type recordingSender struct {
	mu   sync.Mutex
	sent []notify.Message
	// failAfter makes Send fail once this many messages went out; 0 never
	// fails.
	failAfter int
}

func (s *recordingSender) Send(_ context.Context, msg notify.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAfter > 0 && len(s.sent) >= s.failAfter {
		return errors.New("mailbox full")
	}
	s.sent = append(s.sent, msg)
	return nil
}
