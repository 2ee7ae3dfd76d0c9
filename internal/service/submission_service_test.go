package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/coursepulse/internal/app"
	"github.com/alexanderramin/coursepulse/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListSubmissions(t *testing.T) {
	repos := newRepos(seedCourse(t))
	svc := NewSubmissionService(repos)
	ctx := context.Background()

	resp, err := svc.ListSubmissions(ctx, app.SubmissionsRequest{CourseID: testCourse})
	require.NoError(t, err)

	assert.Equal(t, []domain.SubmissionRecord{
		{UserID: userAlice, ActivityID: 1, Source: domain.SourceAssignIndividual},
		{UserID: userAlice, ActivityID: 2, Graded: true, AttemptID: 500, Source: domain.SourceQuizSelectedAttempt},
		{UserID: userAlice, ActivityID: 3, Graded: true, Source: domain.SourceWorkshop},
	}, resp.Records)

	resp, err = svc.ListSubmissions(ctx, app.SubmissionsRequest{CourseID: testCourse, UserID: userBob})
	require.NoError(t, err)
	assert.Empty(t, resp.Records)
}

func TestListSubmissions_InvalidRequests(t *testing.T) {
	svc := NewSubmissionService(newRepos(seedCourse(t)))
	ctx := context.Background()

	_, err := svc.ListSubmissions(ctx, app.SubmissionsRequest{CourseID: -1})
	requireRequestError(t, err, app.RequestErrInvalidCourse)

	_, err = svc.ListSubmissions(ctx, app.SubmissionsRequest{CourseID: testCourse, UserID: -3})
	requireRequestError(t, err, app.RequestErrInvalidUser)
}
