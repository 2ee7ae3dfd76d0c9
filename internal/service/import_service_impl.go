package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/coursepulse/internal/app"
	"github.com/alexanderramin/coursepulse/internal/db"
	"github.com/alexanderramin/coursepulse/internal/domain"
	"github.com/alexanderramin/coursepulse/internal/importer"
	"github.com/alexanderramin/coursepulse/internal/repository"
	"github.com/google/uuid"
)

type importService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *importService) ImportCourse(ctx context.Context, filePath string) (*app.ImportResult, error) {
	schema, err := importer.LoadCourseSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.importSchema(ctx, schema)
}

func (s *importService) ImportCourseFromSchema(ctx context.Context, schema *importer.CourseSchema) (*app.ImportResult, error) {
	return s.importSchema(ctx, schema)
}

// importSchema replaces the course's records in a single transaction; a
// failure leaves the previous snapshot in place.
func (s *importService) importSchema(ctx context.Context, schema *importer.CourseSchema) (result *app.ImportResult, err error) {
	startedAt := time.Now().UTC()
	batchID := uuid.New().String()
	fields := map[string]any{
		"batch_id":  batchID,
		"course_id": schema.Course.ID,
	}
	defer func() { observe(ctx, s.observer, "import-course", startedAt, fields, err) }()

	if errs := importer.ValidateCourseSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	var snap *domain.CourseSnapshot
	snap, err = importer.Convert(schema)
	if err != nil {
		return nil, fmt.Errorf("converting course file: %w", err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteSnapshotRepo(tx).Replace(ctx, snap)
	})
	if err != nil {
		return nil, fmt.Errorf("storing course %d: %w", snap.Course.ID, err)
	}

	result = &app.ImportResult{
		BatchID:         batchID,
		Course:          snap.Course,
		UserCount:       len(snap.Users),
		ActivityCount:   len(snap.Activities),
		SubmissionCount: len(snap.AssignSubmissions) + len(snap.WorkshopSubmissions) + len(snap.QuizAttempts),
		CompletionCount: len(snap.Completions),
	}
	fields["activity_count"] = result.ActivityCount
	fields["user_count"] = result.UserCount
	return result, nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
