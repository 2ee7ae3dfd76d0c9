package app

import (
	"time"

	"github.com/alexanderramin/coursepulse/internal/domain"
	"github.com/alexanderramin/coursepulse/internal/progress"
)

type BarRequest struct {
	CourseID int64
	UserID   int64
	// ViewerID is who looks at the bar. Zero means the learner themself.
	ViewerID int64
	Layout   progress.LayoutConfig
	Now      *time.Time
}

func NewBarRequest(courseID, userID int64) BarRequest {
	return BarRequest{
		CourseID: courseID,
		UserID:   userID,
		Layout:   progress.DefaultLayoutConfig(),
	}
}

type BarResponse struct {
	Course  domain.Course
	Learner domain.User
	Viewer  domain.ViewerContext
	Result  progress.BarResult
	// Own is set when the learner looks at their own bar; Action then holds
	// the self-service offer.
	Own    bool
	Action domain.ActionSignal
	// ProgressAt is the reference time the bar was laid out against.
	ProgressAt time.Time
}

type OverviewRequest struct {
	CourseID int64
	ViewerID int64
	// Group is "0", "group-<id>" or "grouping-<id>".
	Group  string
	Layout progress.LayoutConfig
	Now    *time.Time
}

func NewOverviewRequest(courseID, viewerID int64) OverviewRequest {
	layout := progress.DefaultLayoutConfig()
	layout.Simple = true
	return OverviewRequest{
		CourseID: courseID,
		ViewerID: viewerID,
		Group:    "0",
		Layout:   layout,
	}
}

type LearnerRow struct {
	Learner     domain.User
	Percentages progress.Percentages
	Action      domain.ActionSignal
	Bar         progress.ProgressBar
}

type OverviewResponse struct {
	Course      domain.Course
	Viewer      domain.ViewerContext
	Group       progress.GroupFilter
	Rows        []LearnerRow
	GeneratedAt time.Time
}

type SubmissionsRequest struct {
	CourseID int64
	// UserID restricts the listing to one learner; zero lists everyone.
	UserID int64
}

type SubmissionsResponse struct {
	CourseID int64
	Records  []domain.SubmissionRecord
}
