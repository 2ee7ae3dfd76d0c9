package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/coursepulse/internal/app"
	"github.com/alexanderramin/coursepulse/internal/domain"
	"github.com/alexanderramin/coursepulse/internal/progress"
	"github.com/alexanderramin/coursepulse/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProgressService(t *testing.T, extra ...testutil.SnapshotOption) (ProgressService, *recordingObserver) {
	t.Helper()
	repos := newRepos(seedCourse(t, extra...))
	obs := &recordingObserver{}
	return NewProgressService(repos, NewRoleCapabilityOracle(repos.Roles), testSettings(), obs), obs
}

func barRequest(userID, viewerID int64) app.BarRequest {
	req := app.NewBarRequest(testCourse, userID)
	req.ViewerID = viewerID
	req.Now = &testNow
	return req
}

func cellLinks(bar progress.ProgressBar) []string {
	out := make([]string, len(bar.Cells))
	for i, c := range bar.Cells {
		out[i] = c.Link
	}
	return out
}

func TestGetBar_LearnerOwnBar(t *testing.T) {
	svc, obs := newProgressService(t)

	resp, err := svc.GetBar(context.Background(), barRequest(userAlice, 0))
	require.NoError(t, err)

	assert.True(t, resp.Own)
	assert.Equal(t, "alice", resp.Learner.Username)
	assert.Equal(t, progress.Percentages{Learner: 100, Grader: 25}, resp.Result.Percentages)
	assert.Equal(t, domain.ActionOfferSubmitForGrading, resp.Action)

	bar := resp.Result.Bar
	require.Len(t, bar.Cells, 4)
	var classes []domain.CellClass
	var order []int64
	for _, c := range bar.Cells {
		classes = append(classes, c.Class)
		order = append(order, c.Activity.ID)
	}
	assert.Equal(t, []int64{1, 2, 3, 4}, order)
	assert.Equal(t, []domain.CellClass{
		domain.CellSubmittedNotComplete,
		domain.CellSubmittedNotComplete,
		domain.CellSubmittedNotComplete,
		domain.CellCompleted,
	}, classes)

	require.NotNil(t, bar.NowMarker)
	assert.Equal(t, 2, bar.NowMarker.StopIndex)
	assert.Equal(t, "https://lms.test/mod/assign/view.php?id=1", bar.Cells[0].Link)

	ev := obs.last()
	assert.Equal(t, "get-bar", ev.Name)
	assert.True(t, ev.Success)
	assert.Equal(t, 4, ev.Fields["activity_count"])
}

func TestGetBar_GraderSeesGradingLinks(t *testing.T) {
	svc, _ := newProgressService(t)

	resp, err := svc.GetBar(context.Background(), barRequest(userAlice, userTutor))
	require.NoError(t, err)

	assert.False(t, resp.Own)
	assert.Equal(t, domain.ActionOfferReleaseResult, resp.Action)
	assert.Equal(t, []string{
		"https://lms.test/mod/assign/view.php?id=1&action=grade&userid=5",
		"https://lms.test/mod/quiz/review.php?attempt=500",
		"https://lms.test/mod/workshop/view.php?id=3",
		"https://lms.test/mod/page/view.php?id=4",
	}, cellLinks(resp.Result.Bar))
}

func TestGetBar_AdministratorOfferedSubmitForGrading(t *testing.T) {
	svc, _ := newProgressService(t)

	resp, err := svc.GetBar(context.Background(), barRequest(userAlice, userAdmin))
	require.NoError(t, err)
	assert.Equal(t, domain.ActionOfferSubmitForGrading, resp.Action)

	resp, err = svc.GetBar(context.Background(), barRequest(userBob, userAdmin))
	require.NoError(t, err)
	assert.Equal(t, progress.Percentages{}, resp.Result.Percentages)
	assert.Equal(t, domain.ActionNone, resp.Action)
}

func TestGetBar_ExcludedActivityDropped(t *testing.T) {
	svc, _ := newProgressService(t, testutil.WithExclusion(domain.ModuleQuiz, 2, userAlice))

	resp, err := svc.GetBar(context.Background(), barRequest(userAlice, 0))
	require.NoError(t, err)
	require.Len(t, resp.Result.Activities, 3)
	for _, a := range resp.Result.Activities {
		assert.NotEqual(t, int64(2), a.ID)
	}
	// assign, workshop submitted and page complete: 3/3 and 1/3.
	assert.Equal(t, progress.Percentages{Learner: 100, Grader: 33}, resp.Result.Percentages)
}

func TestGetBar_SelectedActivitiesOnly(t *testing.T) {
	svc, _ := newProgressService(t, testutil.WithSelectedActivities(
		domain.ActivityRef{ModuleType: domain.ModulePage, InstanceID: 4},
		domain.ActivityRef{ModuleType: domain.ModuleAssign, InstanceID: 1},
	))

	resp, err := svc.GetBar(context.Background(), barRequest(userAlice, 0))
	require.NoError(t, err)
	require.Len(t, resp.Result.Activities, 2)
	assert.Equal(t, int64(1), resp.Result.Activities[0].ID)
	assert.Equal(t, int64(4), resp.Result.Activities[1].ID)
	assert.Equal(t, progress.Percentages{Learner: 100, Grader: 50}, resp.Result.Percentages)
}

func TestGetBar_CourseOrderWithoutMarker(t *testing.T) {
	svc, _ := newProgressService(t)

	req := barRequest(userBob, 0)
	req.Layout.OrderBy = domain.OrderByCourse
	resp, err := svc.GetBar(context.Background(), req)
	require.NoError(t, err)

	assert.Nil(t, resp.Result.Bar.NowMarker)
	for _, c := range resp.Result.Bar.Cells {
		assert.Equal(t, domain.CellFutureNotCompleted, c.Class)
	}
}

func TestGetBar_InvalidRequests(t *testing.T) {
	svc, obs := newProgressService(t)
	ctx := context.Background()

	req := barRequest(userAlice, 0)
	req.CourseID = 0
	_, err := svc.GetBar(ctx, req)
	requireRequestError(t, err, app.RequestErrInvalidCourse)
	assert.False(t, obs.last().Success)

	req.CourseID = 99
	_, err = svc.GetBar(ctx, req)
	requireRequestError(t, err, app.RequestErrInvalidCourse)

	_, err = svc.GetBar(ctx, barRequest(404, 0))
	requireRequestError(t, err, app.RequestErrInvalidUser)

	_, err = svc.GetBar(ctx, barRequest(userAlice, 404))
	requireRequestError(t, err, app.RequestErrInvalidUser)
}

func TestGetBar_Idempotent(t *testing.T) {
	svc, _ := newProgressService(t)

	first, err := svc.GetBar(context.Background(), barRequest(userAlice, userTutor))
	require.NoError(t, err)
	second, err := svc.GetBar(context.Background(), barRequest(userAlice, userTutor))
	require.NoError(t, err)

	assert.Equal(t, first.Result, second.Result)
	assert.Equal(t, first.Action, second.Action)
}
