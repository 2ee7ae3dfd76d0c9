package app

import (
	"context"

	"github.com/alexanderramin/coursepulse/internal/domain"
	"github.com/alexanderramin/coursepulse/internal/importer"
)

type ProgressUseCase interface {
	GetBar(ctx context.Context, req BarRequest) (*BarResponse, error)
}

type OverviewUseCase interface {
	GetOverview(ctx context.Context, req OverviewRequest) (*OverviewResponse, error)
	ListCourses(ctx context.Context) ([]*domain.Course, error)
}

type SubmissionsUseCase interface {
	ListSubmissions(ctx context.Context, req SubmissionsRequest) (*SubmissionsResponse, error)
}

type NotifyUseCase interface {
	Notify(ctx context.Context, req NotifyRequest) (*NotifyResponse, error)
}

type ImportCourseUseCase interface {
	ImportCourse(ctx context.Context, filePath string) (*ImportResult, error)
	ImportCourseFromSchema(ctx context.Context, schema *importer.CourseSchema) (*ImportResult, error)
}
