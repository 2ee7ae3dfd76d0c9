package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/coursepulse/internal/db"
	"github.com/alexanderramin/coursepulse/internal/domain"
)

// SQLiteNotificationLogRepo implements NotificationLogRepo.
type SQLiteNotificationLogRepo struct {
	db db.DBTX
}

func NewSQLiteNotificationLogRepo(conn db.DBTX) *SQLiteNotificationLogRepo {
	return &SQLiteNotificationLogRepo{db: conn}
}

func (r *SQLiteNotificationLogRepo) Create(ctx context.Context, rec *domain.NotificationRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO notification_log (id, course_id, student_id, sender_id, recipient_id, signal, subject, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.CourseID, rec.StudentID, rec.SenderID, rec.RecipientID,
		string(rec.Signal), rec.Subject, rec.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting notification log entry: %w", err)
	}
	return nil
}

func (r *SQLiteNotificationLogRepo) ListByStudent(ctx context.Context, courseID, studentID int64) ([]domain.NotificationRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, course_id, student_id, sender_id, recipient_id, signal, subject, created_at
		FROM notification_log
		WHERE course_id = ? AND student_id = ?
		ORDER BY created_at, recipient_id, id`, courseID, studentID)
	if err != nil {
		return nil, fmt.Errorf("listing notification log: %w", err)
	}
	defer rows.Close()

	var out []domain.NotificationRecord
	for rows.Next() {
		var rec domain.NotificationRecord
		var signal, createdAt string
		if err := rows.Scan(&rec.ID, &rec.CourseID, &rec.StudentID, &rec.SenderID, &rec.RecipientID,
			&signal, &rec.Subject, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning notification log entry: %w", err)
		}
		rec.Signal = domain.ActionSignal(signal)
		rec.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

var _ NotificationLogRepo = (*SQLiteNotificationLogRepo)(nil)
