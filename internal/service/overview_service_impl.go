package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/coursepulse/internal/app"
	"github.com/alexanderramin/coursepulse/internal/domain"
	"github.com/alexanderramin/coursepulse/internal/progress"
)

type overviewService struct {
	loader   courseLoader
	oracle   CapabilityOracle
	observer UseCaseObserver
}

func NewOverviewService(repos Repos, oracle CapabilityOracle, settings Settings, observers ...UseCaseObserver) OverviewService {
	return &overviewService{
		loader:   newCourseLoader(repos, settings),
		oracle:   oracle,
		observer: useCaseObserverOrNoop(observers),
	}
}

// ListCourses returns every imported course, ordered by id.
func (s *overviewService) ListCourses(ctx context.Context) (courses []*domain.Course, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() { observe(ctx, s.observer, "list-courses", startedAt, fields, err) }()

	courses, err = s.loader.repos.Courses.List(ctx)
	if err != nil {
		return nil, err
	}
	fields["course_count"] = len(courses)
	return courses, nil
}

// GetOverview builds a reduced bar for every learner of the course that
// matches the group filter. Learners are listed by last name, first name.
func (s *overviewService) GetOverview(ctx context.Context, req app.OverviewRequest) (resp *app.OverviewResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"course_id": req.CourseID,
		"viewer_id": req.ViewerID,
		"group":     req.Group,
	}
	defer func() { observe(ctx, s.observer, "get-overview", startedAt, fields, err) }()

	now := resolveNow(req.Now)

	filter := progress.ParseGroupFilter(req.Group)
	if filter.Kind == progress.GroupFilterInvalid {
		return nil, app.NewRequestError(app.RequestErrInvalidGroup, "invalid group filter %q", req.Group)
	}

	var data *courseData
	data, err = s.loader.load(ctx, req.CourseID, 0)
	if err != nil {
		return nil, err
	}
	if _, err = s.loader.requireUser(ctx, req.ViewerID); err != nil {
		return nil, err
	}

	var viewer domain.ViewerContext
	viewer, err = s.oracle.ViewerFor(ctx, req.CourseID, req.ViewerID)
	if err != nil {
		return nil, err
	}
	if !viewer.IsPrivileged() && !viewer.Has(domain.CapAssignGrade) {
		return nil, app.NewRequestError(app.RequestErrInvalidUser,
			"user %d may not view the overview of course %d", req.ViewerID, req.CourseID)
	}

	var learners []domain.User
	learners, err = s.loader.repos.Roles.ListUsersWithRoles(ctx, req.CourseID, domain.RoleStudent)
	if err != nil {
		return nil, fmt.Errorf("listing learners: %w", err)
	}

	layout := req.Layout
	layout.Simple = true

	rows := make([]app.LearnerRow, 0, len(learners))
	for _, learner := range learners {
		if filter.Kind != progress.GroupFilterNone {
			groupIDs, groupingIDs, mErr := s.loader.repos.Groups.ListMemberships(ctx, req.CourseID, learner.ID)
			if mErr != nil {
				err = fmt.Errorf("loading groups of user %d: %w", learner.ID, mErr)
				return nil, err
			}
			if !filter.Matches(groupIDs, groupingIDs) {
				continue
			}
		}

		var subject domain.ViewerContext
		subject, err = s.oracle.ViewerFor(ctx, req.CourseID, learner.ID)
		if err != nil {
			return nil, err
		}

		var result progress.BarResult
		result, err = s.loader.buildBar(ctx, data, subject, viewer, layout, now)
		if err != nil {
			return nil, err
		}

		rows = append(rows, app.LearnerRow{
			Learner:     learner,
			Percentages: result.Percentages,
			Action:      progress.DecideAction(result.Percentages, viewer, s.loader.settings.Policy),
			Bar:         result.Bar,
		})
	}
	fields["learner_count"] = len(rows)

	return &app.OverviewResponse{
		Course:      *data.course,
		Viewer:      viewer,
		Group:       filter,
		Rows:        rows,
		GeneratedAt: now,
	}, nil
}
