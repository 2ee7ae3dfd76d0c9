package service

import (
	"context"
	"time"

	"github.com/alexanderramin/coursepulse/internal/app"
	"github.com/alexanderramin/coursepulse/internal/domain"
)

type submissionService struct {
	loader   courseLoader
	observer UseCaseObserver
}

func NewSubmissionService(repos Repos, observers ...UseCaseObserver) SubmissionService {
	return &submissionService{
		loader:   newCourseLoader(repos, DefaultSettings()),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *submissionService) ListSubmissions(ctx context.Context, req app.SubmissionsRequest) (resp *app.SubmissionsResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"course_id": req.CourseID,
		"user_id":   req.UserID,
	}
	defer func() { observe(ctx, s.observer, "list-submissions", startedAt, fields, err) }()

	if _, err = s.loader.requireCourse(ctx, req.CourseID); err != nil {
		return nil, err
	}
	if req.UserID < 0 {
		return nil, app.NewRequestError(app.RequestErrInvalidUser, "user id must not be negative, got %d", req.UserID)
	}

	var set domain.SubmissionSet
	set, err = s.loader.aggregator.Aggregate(ctx, req.CourseID, req.UserID)
	if err != nil {
		return nil, err
	}
	records := set.Records()
	fields["record_count"] = len(records)

	return &app.SubmissionsResponse{CourseID: req.CourseID, Records: records}, nil
}
