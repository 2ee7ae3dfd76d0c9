package service

import (
	"context"

	"github.com/alexanderramin/coursepulse/internal/app"
	"github.com/alexanderramin/coursepulse/internal/domain"
	"github.com/alexanderramin/coursepulse/internal/importer"
)

type ProgressService interface {
	GetBar(ctx context.Context, req app.BarRequest) (*app.BarResponse, error)
}

type OverviewService interface {
	GetOverview(ctx context.Context, req app.OverviewRequest) (*app.OverviewResponse, error)
	ListCourses(ctx context.Context) ([]*domain.Course, error)
}

type SubmissionService interface {
	ListSubmissions(ctx context.Context, req app.SubmissionsRequest) (*app.SubmissionsResponse, error)
}

type NotifyService interface {
	Notify(ctx context.Context, req app.NotifyRequest) (*app.NotifyResponse, error)
	History(ctx context.Context, courseID, studentID int64) ([]domain.NotificationRecord, error)
}

type ImportService interface {
	ImportCourse(ctx context.Context, filePath string) (*app.ImportResult, error)
	ImportCourseFromSchema(ctx context.Context, schema *importer.CourseSchema) (*app.ImportResult, error)
}

// CapabilityOracle resolves what a user may do in a course.
type CapabilityOracle interface {
	ViewerFor(ctx context.Context, courseID, userID int64) (domain.ViewerContext, error)
}

var (
	_ app.ProgressUseCase     = ProgressService(nil)
	_ app.OverviewUseCase     = OverviewService(nil)
	_ app.SubmissionsUseCase  = SubmissionService(nil)
	_ app.NotifyUseCase       = NotifyService(nil)
	_ app.ImportCourseUseCase = ImportService(nil)
)
