package progress

import (
	"testing"
	"time"

	"github.com/alexanderramin/coursepulse/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildBar_TimeOrderedScenario(t *testing.T) {
	now := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	day := 24 * time.Hour

	catalog := []domain.Activity{
		makeActivity(1, 0, 0, timePtr(now.Add(-2*day))),
		makeActivity(2, 0, 1, timePtr(now.Add(-day))),
		makeActivity(3, 0, 2, nil),
		makeActivity(4, 0, 3, timePtr(now.Add(5*day))),
	}
	learner := domain.NewViewerContext(5, domain.RoleStudent)

	res := BuildBar(BarInput{
		Catalog:    catalog,
		Inclusion:  AllTracked(),
		Visibility: VisibilityOptions{AvailabilityEnabled: true},
		Subject:    learner,
		Viewer:     learner,
		Layout:     DefaultLayoutConfig(),
	}, now)

	assert.Equal(t, []int64{1, 2, 4, 3}, ids(res.Activities))

	classes := make([]domain.CellClass, len(res.Bar.Cells))
	for i, c := range res.Bar.Cells {
		classes[i] = c.Class
	}
	assert.Equal(t, []domain.CellClass{
		domain.CellNotCompleted,
		domain.CellNotCompleted,
		domain.CellFutureNotCompleted,
		domain.CellFutureNotCompleted,
	}, classes)

	require.NotNil(t, res.Bar.NowMarker)
	assert.Equal(t, 2, res.Bar.NowMarker.StopIndex)
	assert.Equal(t, Percentages{Learner: 0, Grader: 0}, res.Percentages)
}

func TestBuildBar_Idempotent(t *testing.T) {
	now := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	quiz := makeActivity(2, 1, 0, timePtr(now.Add(-time.Hour)))
	quiz.ModuleType = domain.ModuleQuiz
	hidden := makeActivity(3, 1, 1, nil)
	hidden.Visible = false

	in := BarInput{
		Catalog:    []domain.Activity{makeActivity(1, 0, 0, timePtr(now.Add(time.Hour))), quiz, hidden},
		Inclusion:  AllTracked(),
		Visibility: VisibilityOptions{AvailabilityEnabled: true},
		RawStates:  map[int64]domain.CompletionState{1: domain.CompletionCompleteFail},
		Submissions: domain.SubmissionSet{
			{UserID: 5, ActivityID: 1}: {UserID: 5, ActivityID: 1},
			{UserID: 5, ActivityID: 2}: {UserID: 5, ActivityID: 2, AttemptID: 44, Graded: true},
		},
		Subject: domain.NewViewerContext(5, domain.RoleStudent),
		Viewer:  domain.NewViewerContext(6, domain.RoleTeacher),
		BaseURL: "https://lms.test",
		Layout:  DefaultLayoutConfig(),
	}

	first := BuildBar(in, now)
	second := BuildBar(in, now)

	assert.Equal(t, first, second)
	assert.Equal(t, []int64{2, 1}, ids(first.Activities))
	assert.Equal(t, "https://lms.test/mod/quiz/review.php?attempt=44", first.Bar.Cells[0].Link)
	assert.Equal(t, Percentages{Learner: 100, Grader: 0}, first.Percentages)
}
