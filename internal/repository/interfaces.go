package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/coursepulse/internal/domain"
)

// ErrNotFound is returned (wrapped) by point lookups for a missing record.
// List queries return empty results instead.
var ErrNotFound = errors.New("not found")

type CourseRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Course, error)
	List(ctx context.Context) ([]*domain.Course, error)
}

type UserRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type RoleRepo interface {
	ListRoles(ctx context.Context, courseID, userID int64) ([]domain.RoleName, error)
	// ListUsersWithRoles returns each user holding any of roles once, ordered
	// by last name, first name, id.
	ListUsersWithRoles(ctx context.Context, courseID int64, roles ...domain.RoleName) ([]domain.User, error)
}

type GroupRepo interface {
	// ListMemberships returns the groups and groupings userID belongs to.
	ListMemberships(ctx context.Context, courseID, userID int64) (groupIDs, groupingIDs []int64, err error)
}

type ActivityRepo interface {
	ListByCourse(ctx context.Context, courseID int64) ([]domain.Activity, error)
	GetInclusion(ctx context.Context, courseID int64) (domain.InclusionMode, []domain.ActivityRef, error)
}

type CompletionRepo interface {
	ListForUser(ctx context.Context, courseID, userID int64) (map[int64]domain.CompletionState, error)
}

// SubmissionSourceRepo exposes the five raw submission sources. userID 0
// selects every user in the course.
type SubmissionSourceRepo interface {
	AssignIndividualRows(ctx context.Context, courseID, userID int64) ([]domain.SubmissionRow, error)
	AssignTeamRows(ctx context.Context, courseID, userID int64) ([]domain.SubmissionRow, error)
	WorkshopRows(ctx context.Context, courseID, userID int64) ([]domain.SubmissionRow, error)
	QuizSelectedAttemptRows(ctx context.Context, courseID, userID int64) ([]domain.SubmissionRow, error)
	QuizAllAttemptRows(ctx context.Context, courseID, userID int64) ([]domain.SubmissionRow, error)
}

type ExclusionRepo interface {
	// ListByCourse returns exclusions for the course, restricted to userID
	// unless it is 0.
	ListByCourse(ctx context.Context, courseID, userID int64) ([]domain.Exclusion, error)
}

type NotificationLogRepo interface {
	Create(ctx context.Context, rec *domain.NotificationRecord) error
	ListByStudent(ctx context.Context, courseID, studentID int64) ([]domain.NotificationRecord, error)
}

// SnapshotRepo replaces every host record of one course. Callers run it
// inside a unit of work.
type SnapshotRepo interface {
	Replace(ctx context.Context, snap *domain.CourseSnapshot) error
}
