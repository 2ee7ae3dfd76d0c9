package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/coursepulse/internal/app"
	"github.com/alexanderramin/coursepulse/internal/db"
	"github.com/alexanderramin/coursepulse/internal/domain"
	"github.com/alexanderramin/coursepulse/internal/notify"
	"github.com/alexanderramin/coursepulse/internal/progress"
	"github.com/alexanderramin/coursepulse/internal/repository"
)

// Settings are the site-level options shared by the progress use cases.
type Settings struct {
	BaseURL             string
	AvailabilityEnabled bool
	Policy              progress.ActionPolicy
	ReviewDays          int
}

func DefaultSettings() Settings {
	return Settings{
		AvailabilityEnabled: true,
		Policy:              progress.DefaultActionPolicy(),
		ReviewDays:          notify.DefaultReviewDays,
	}
}

// Repos groups the read repositories the progress use cases need.
type Repos struct {
	Courses     repository.CourseRepo
	Users       repository.UserRepo
	Roles       repository.RoleRepo
	Groups      repository.GroupRepo
	Activities  repository.ActivityRepo
	Completions repository.CompletionRepo
	Exclusions  repository.ExclusionRepo
	Submissions repository.SubmissionSourceRepo
}

// NewSQLiteRepos wires the SQLite implementation of every read repository
// against one connection or transaction.
func NewSQLiteRepos(conn db.DBTX) Repos {
	courses := repository.NewSQLiteCourseRepo(conn)
	activities := repository.NewSQLiteActivityRepo(conn)
	return Repos{
		Courses:     courses,
		Users:       repository.NewSQLiteUserRepo(conn),
		Roles:       courses,
		Groups:      courses,
		Activities:  activities,
		Completions: activities,
		Exclusions:  repository.NewSQLiteExclusionRepo(conn),
		Submissions: repository.NewSQLiteSubmissionSourceRepo(conn),
	}
}

// courseData is everything about a course that is shared by all learners in
// one request.
type courseData struct {
	course      *domain.Course
	catalog     []domain.Activity
	inclusion   progress.InclusionPolicy
	submissions domain.SubmissionSet
	exclusions  domain.ExclusionSet
}

// courseLoader reads course-level data once per request.
type courseLoader struct {
	repos      Repos
	aggregator *SubmissionAggregator
	settings   Settings
}

func newCourseLoader(repos Repos, settings Settings) courseLoader {
	return courseLoader{
		repos:      repos,
		aggregator: NewSubmissionAggregator(repos.Submissions),
		settings:   settings,
	}
}

// load reads the catalog, inclusion policy, submissions and exclusions of a
// course, scoped to userID unless it is 0.
func (l courseLoader) load(ctx context.Context, courseID, userID int64) (*courseData, error) {
	course, err := l.requireCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	catalog, err := l.repos.Activities.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("loading activities: %w", err)
	}

	mode, selected, err := l.repos.Activities.GetInclusion(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("loading inclusion policy: %w", err)
	}

	subs, err := l.aggregator.Aggregate(ctx, courseID, userID)
	if err != nil {
		return nil, fmt.Errorf("aggregating submissions: %w", err)
	}

	excl, err := l.repos.Exclusions.ListByCourse(ctx, courseID, userID)
	if err != nil {
		return nil, fmt.Errorf("loading exclusions: %w", err)
	}

	return &courseData{
		course:      course,
		catalog:     catalog,
		inclusion:   progress.InclusionPolicy{Mode: mode, Selected: selected},
		submissions: subs,
		exclusions:  domain.NewExclusionSet(excl...),
	}, nil
}

// requireCourse maps a missing course to a request error.
func (l courseLoader) requireCourse(ctx context.Context, courseID int64) (*domain.Course, error) {
	if courseID <= 0 {
		return nil, app.NewRequestError(app.RequestErrInvalidCourse, "course id must be positive, got %d", courseID)
	}
	course, err := l.repos.Courses.GetByID(ctx, courseID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, app.NewRequestError(app.RequestErrInvalidCourse, "course %d does not exist", courseID)
	}
	if err != nil {
		return nil, fmt.Errorf("loading course: %w", err)
	}
	return course, nil
}

func (l courseLoader) requireUser(ctx context.Context, userID int64) (*domain.User, error) {
	if userID <= 0 {
		return nil, app.NewRequestError(app.RequestErrInvalidUser, "user id must be positive, got %d", userID)
	}
	user, err := l.repos.Users.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, app.NewRequestError(app.RequestErrInvalidUser, "user %d does not exist", userID)
	}
	if err != nil {
		return nil, fmt.Errorf("loading user: %w", err)
	}
	return user, nil
}

// buildBar runs the progress pipeline for one learner against shared course
// data.
func (l courseLoader) buildBar(
	ctx context.Context,
	data *courseData,
	subject, viewer domain.ViewerContext,
	layout progress.LayoutConfig,
	now time.Time,
) (progress.BarResult, error) {
	raw, err := l.repos.Completions.ListForUser(ctx, data.course.ID, subject.UserID)
	if err != nil {
		return progress.BarResult{}, fmt.Errorf("loading completion states: %w", err)
	}

	return progress.BuildBar(progress.BarInput{
		Catalog:     data.catalog,
		Inclusion:   data.inclusion,
		Visibility:  progress.VisibilityOptions{AvailabilityEnabled: l.settings.AvailabilityEnabled},
		Exclusions:  data.exclusions,
		RawStates:   raw,
		Submissions: data.submissions,
		Subject:     subject,
		Viewer:      viewer,
		BaseURL:     l.settings.BaseURL,
		Layout:      layout,
	}, now), nil
}

func resolveNow(now *time.Time) time.Time {
	if now != nil {
		return *now
	}
	return time.Now().UTC()
}
