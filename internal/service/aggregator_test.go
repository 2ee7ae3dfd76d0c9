package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/alexanderramin/coursepulse/internal/domain"
	"github.com/alexanderramin/coursepulse/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSources serves canned rows per source and can fail one of them.
type stubSources struct {
	rows map[domain.SubmissionSource][]domain.SubmissionRow
	fail domain.SubmissionSource
	err  error
}

func (s *stubSources) serve(ctx context.Context, src domain.SubmissionSource) ([]domain.SubmissionRow, error) {
	if s.err != nil && s.fail == src {
		return nil, s.err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.rows[src], nil
}

func (s *stubSources) AssignIndividualRows(ctx context.Context, _, _ int64) ([]domain.SubmissionRow, error) {
	return s.serve(ctx, domain.SourceAssignIndividual)
}

func (s *stubSources) AssignTeamRows(ctx context.Context, _, _ int64) ([]domain.SubmissionRow, error) {
	return s.serve(ctx, domain.SourceAssignTeam)
}

func (s *stubSources) WorkshopRows(ctx context.Context, _, _ int64) ([]domain.SubmissionRow, error) {
	return s.serve(ctx, domain.SourceWorkshop)
}

func (s *stubSources) QuizSelectedAttemptRows(ctx context.Context, _, _ int64) ([]domain.SubmissionRow, error) {
	return s.serve(ctx, domain.SourceQuizSelectedAttempt)
}

func (s *stubSources) QuizAllAttemptRows(ctx context.Context, _, _ int64) ([]domain.SubmissionRow, error) {
	return s.serve(ctx, domain.SourceQuizAllAttempts)
}

func TestAggregate_MergesAllSources(t *testing.T) {
	src := &stubSources{rows: map[domain.SubmissionSource][]domain.SubmissionRow{
		domain.SourceAssignIndividual: {{UserID: 5, ActivityID: 1}},
		domain.SourceAssignTeam: {
			{UserID: 5, ActivityID: 1, GroupID: 30, Graded: true},
			{UserID: 6, ActivityID: 1, GroupID: 30},
		},
		domain.SourceWorkshop: {{UserID: 6, ActivityID: 3, Graded: true}},
		domain.SourceQuizAllAttempts: {
			{UserID: 5, ActivityID: 2, AttemptID: 70, Attempt: 1, GradeMethod: domain.GradeHighest, Graded: true},
			{UserID: 5, ActivityID: 2, AttemptID: 71, Attempt: 2, GradeMethod: domain.GradeHighest},
		},
	}}

	set, err := NewSubmissionAggregator(src).Aggregate(context.Background(), 1, 0)
	require.NoError(t, err)

	assert.Equal(t, []domain.SubmissionKey{
		{UserID: 5, ActivityID: 1},
		{UserID: 5, ActivityID: 2},
		{UserID: 6, ActivityID: 1},
		{UserID: 6, ActivityID: 3},
	}, set.Keys())

	// The graded team record beats the ungraded individual one.
	rec, ok := set.Lookup(5, 1)
	require.True(t, ok)
	assert.True(t, rec.Graded)
	assert.Equal(t, domain.SourceAssignTeam, rec.Source)

	// The team grade is shared by every member of the group.
	rec, _ = set.Lookup(6, 1)
	assert.True(t, rec.Graded)

	// One ungraded attempt leaves the whole quiz ungraded.
	rec, _ = set.Lookup(5, 2)
	assert.False(t, rec.Graded)
	assert.Equal(t, int64(71), rec.AttemptID)
}

func TestAggregate_SourceFailure(t *testing.T) {
	boom := errors.New("disk gone")
	src := &stubSources{fail: domain.SourceWorkshop, err: boom}

	_, err := NewSubmissionAggregator(src).Aggregate(context.Background(), 1, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "querying workshop submissions")
}

func TestAggregate_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSubmissionAggregator(&stubSources{}).Aggregate(ctx, 1, 0)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAggregate_UnknownCourseIsEmpty(t *testing.T) {
	repos := newRepos(testutil.NewTestDB(t))

	set, err := NewSubmissionAggregator(repos.Submissions).Aggregate(context.Background(), 42, 0)
	require.NoError(t, err)
	assert.Empty(t, set)
}

func TestAggregate_AgainstStore(t *testing.T) {
	repos := newRepos(seedCourse(t))
	agg := NewSubmissionAggregator(repos.Submissions)

	all, err := agg.Aggregate(context.Background(), testCourse, 0)
	require.NoError(t, err)
	alice, err := agg.Aggregate(context.Background(), testCourse, userAlice)
	require.NoError(t, err)

	assert.Equal(t, all, alice)
	assert.Len(t, all, 3)
}

// seedEverySource extends seedCourse so that both learners appear in all five
// sources. On the team assignment only Bob has a grade row.
//
//	5 assign (team, group 70 = alice + bob)  graded through bob
//	6 quiz   (highest)                         bob has one ungraded attempt
//	7 quiz   (first attempt)                   bob graded on attempt 1
func seedEverySource(t *testing.T) *sql.DB {
	t.Helper()
	return seedCourse(t,
		testutil.WithGroup(70, "Red", userAlice, userBob),
		testutil.WithActivities(
			testutil.NewTestActivity(5, domain.ModuleAssign, 5),
			testutil.NewTestActivity(6, domain.ModuleQuiz, 6),
			testutil.NewTestActivity(7, domain.ModuleQuiz, 7),
		),
		testutil.WithAssignment(domain.Assignment{ID: 5, TeamSubmission: true}),
		testutil.WithAssignSubmission(110, 5, 0, 70, domain.SubmissionStatusSubmitted),
		testutil.WithAssignGrade(210, 5, userBob, testutil.Grade(9)),
		testutil.WithWorkshopSubmission(310, 3, userBob),
		testutil.WithQuiz(6, domain.GradeHighest),
		testutil.WithQuizAttempt(600, 6, userAlice, 1, testutil.Grade(5)),
		testutil.WithQuizAttempt(601, 6, userBob, 1, testutil.Grade(6)),
		testutil.WithQuizAttempt(602, 6, userBob, 2, nil),
		testutil.WithQuiz(7, domain.GradeFirstAttempt),
		testutil.WithQuizAttempt(700, 7, userBob, 1, testutil.Grade(4)),
		testutil.WithQuizAttempt(701, 7, userBob, 2, nil),
	)
}

func TestAggregate_TeamGradeSharedWhenFilteredByUser(t *testing.T) {
	agg := NewSubmissionAggregator(newRepos(seedEverySource(t)).Submissions)
	ctx := context.Background()

	all, err := agg.Aggregate(ctx, testCourse, 0)
	require.NoError(t, err)
	alice, err := agg.Aggregate(ctx, testCourse, userAlice)
	require.NoError(t, err)

	fromAll, ok := all.Lookup(userAlice, 5)
	require.True(t, ok)
	fromAlice, ok := alice.Lookup(userAlice, 5)
	require.True(t, ok)

	assert.True(t, fromAll.Graded)
	assert.True(t, fromAlice.Graded, "bob's grade grades alice's team submission")
	assert.Equal(t, domain.SourceAssignTeam, fromAlice.Source)
}

func TestAggregate_PerUserMatchesCourseWide(t *testing.T) {
	agg := NewSubmissionAggregator(newRepos(seedEverySource(t)).Submissions)
	ctx := context.Background()

	all, err := agg.Aggregate(ctx, testCourse, 0)
	require.NoError(t, err)

	sources := make(map[domain.SubmissionSource]bool)
	for _, rec := range all.Records() {
		sources[rec.Source] = true
	}
	require.Len(t, sources, 5, "fixture must reach every source")

	for _, userID := range []int64{userAlice, userBob, userTutor} {
		want := domain.SubmissionSet{}
		for key, rec := range all {
			if key.UserID == userID {
				want[key] = rec
			}
		}

		got, err := agg.Aggregate(ctx, testCourse, userID)
		require.NoError(t, err)
		assert.Equal(t, want, got, "user %d", userID)
	}
}
