package app

import (
	"time"

	"github.com/alexanderramin/coursepulse/internal/domain"
	"github.com/alexanderramin/coursepulse/internal/notify"
	"github.com/alexanderramin/coursepulse/internal/progress"
)

type NotifyRequest struct {
	CourseID  int64
	StudentID int64
	ViewerID  int64
	Now       *time.Time
	// DryRun composes the messages without sending or logging them.
	DryRun bool
}

type NotifyResponse struct {
	Signal      domain.ActionSignal
	Percentages progress.Percentages
	Messages    []notify.Message
	Records     []domain.NotificationRecord
	ReviewBy    time.Time
}

type ImportResult struct {
	BatchID         string
	Course          domain.Course
	UserCount       int
	ActivityCount   int
	SubmissionCount int
	CompletionCount int
}
