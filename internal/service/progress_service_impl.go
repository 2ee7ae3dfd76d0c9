package service

import (
	"context"
	"time"

	"github.com/alexanderramin/coursepulse/internal/app"
	"github.com/alexanderramin/coursepulse/internal/domain"
	"github.com/alexanderramin/coursepulse/internal/progress"
)

type progressService struct {
	loader   courseLoader
	oracle   CapabilityOracle
	observer UseCaseObserver
}

func NewProgressService(repos Repos, oracle CapabilityOracle, settings Settings, observers ...UseCaseObserver) ProgressService {
	return &progressService{
		loader:   newCourseLoader(repos, settings),
		oracle:   oracle,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *progressService) GetBar(ctx context.Context, req app.BarRequest) (resp *app.BarResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"course_id": req.CourseID,
		"user_id":   req.UserID,
		"viewer_id": req.ViewerID,
	}
	defer func() { observe(ctx, s.observer, "get-bar", startedAt, fields, err) }()

	now := resolveNow(req.Now)

	if _, err = s.loader.requireCourse(ctx, req.CourseID); err != nil {
		return nil, err
	}
	var learner *domain.User
	learner, err = s.loader.requireUser(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	viewerID := req.ViewerID
	if viewerID == 0 {
		viewerID = req.UserID
	}
	own := viewerID == req.UserID

	var subject, viewer domain.ViewerContext
	subject, err = s.oracle.ViewerFor(ctx, req.CourseID, req.UserID)
	if err != nil {
		return nil, err
	}
	viewer = subject
	if !own {
		if _, err = s.loader.requireUser(ctx, viewerID); err != nil {
			return nil, err
		}
		viewer, err = s.oracle.ViewerFor(ctx, req.CourseID, viewerID)
		if err != nil {
			return nil, err
		}
	}

	var data *courseData
	data, err = s.loader.load(ctx, req.CourseID, req.UserID)
	if err != nil {
		return nil, err
	}

	var result progress.BarResult
	result, err = s.loader.buildBar(ctx, data, subject, viewer, req.Layout, now)
	if err != nil {
		return nil, err
	}

	action := progress.DecideAction(result.Percentages, viewer, s.loader.settings.Policy)
	if own {
		action = progress.DecideSelfService(result.Percentages, s.loader.settings.Policy)
	}

	fields["activity_count"] = len(result.Activities)
	fields["learner_pct"] = result.Percentages.Learner
	fields["grader_pct"] = result.Percentages.Grader
	fields["action"] = string(action)

	return &app.BarResponse{
		Course:     *data.course,
		Learner:    *learner,
		Viewer:     viewer,
		Result:     result,
		Own:        own,
		Action:     action,
		ProgressAt: now,
	}, nil
}
