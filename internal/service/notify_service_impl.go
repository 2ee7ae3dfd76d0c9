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
	"github.com/google/uuid"
)

type notifyService struct {
	loader   courseLoader
	oracle   CapabilityOracle
	log      repository.NotificationLogRepo
	sender   notify.Sender
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewNotifyService(
	repos Repos,
	oracle CapabilityOracle,
	log repository.NotificationLogRepo,
	sender notify.Sender,
	uow db.UnitOfWork,
	settings Settings,
	observers ...UseCaseObserver,
) NotifyService {
	return &notifyService{
		loader:   newCourseLoader(repos, settings),
		oracle:   oracle,
		log:      log,
		sender:   sender,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Notify evaluates the action the viewer is offered for a learner and, when
// there is one, composes, sends and records its messages. Learners notifying
// about themselves get the self-service offer shown on their own bar.
func (s *notifyService) Notify(ctx context.Context, req app.NotifyRequest) (resp *app.NotifyResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"course_id":  req.CourseID,
		"student_id": req.StudentID,
		"viewer_id":  req.ViewerID,
		"dry_run":    req.DryRun,
	}
	defer func() { observe(ctx, s.observer, "notify", startedAt, fields, err) }()

	now := resolveNow(req.Now)

	var data *courseData
	data, err = s.loader.load(ctx, req.CourseID, req.StudentID)
	if err != nil {
		return nil, err
	}
	var student *domain.User
	student, err = s.loader.requireUser(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	if _, err = s.loader.requireUser(ctx, req.ViewerID); err != nil {
		return nil, err
	}

	var subject, viewer domain.ViewerContext
	if subject, err = s.oracle.ViewerFor(ctx, req.CourseID, req.StudentID); err != nil {
		return nil, err
	}
	if viewer, err = s.oracle.ViewerFor(ctx, req.CourseID, req.ViewerID); err != nil {
		return nil, err
	}

	layout := progress.DefaultLayoutConfig()
	layout.Simple = true
	var result progress.BarResult
	result, err = s.loader.buildBar(ctx, data, subject, viewer, layout, now)
	if err != nil {
		return nil, err
	}

	signal := progress.DecideAction(result.Percentages, viewer, s.loader.settings.Policy)
	if req.ViewerID == req.StudentID {
		signal = progress.DecideSelfService(result.Percentages, s.loader.settings.Policy)
	}
	fields["signal"] = string(signal)
	if signal == domain.ActionNone {
		err = app.NewRequestError(app.RequestErrNoAction,
			"no action for user %d at %d%% learner / %d%% grader progress",
			req.StudentID, result.Percentages.Learner, result.Percentages.Grader)
		return nil, err
	}

	reviewBy := now.AddDate(0, 0, s.loader.settings.ReviewDays)
	var msgs []notify.Message
	msgs, err = s.compose(ctx, signal, data.course, student, reviewBy)
	if err != nil {
		return nil, err
	}
	fields["message_count"] = len(msgs)

	resp = &app.NotifyResponse{
		Signal:      signal,
		Percentages: result.Percentages,
		Messages:    msgs,
		ReviewBy:    reviewBy,
	}
	if req.DryRun {
		return resp, nil
	}

	resp.Records, err = s.dispatch(ctx, msgs, req.ViewerID, now)
	return resp, err
}

func (s *notifyService) compose(ctx context.Context, signal domain.ActionSignal, course *domain.Course, student *domain.User, reviewBy time.Time) ([]notify.Message, error) {
	req := notify.Request{
		Signal:   signal,
		Course:   *course,
		Student:  *student,
		ReviewBy: reviewBy,
		BaseURL:  s.loader.settings.BaseURL,
	}
	if signal == domain.ActionOfferSubmitForGrading {
		graders, err := s.loader.repos.Roles.ListUsersWithRoles(ctx, course.ID, domain.RoleTeacher, domain.RoleEditingTeacher)
		if err != nil {
			return nil, fmt.Errorf("listing graders: %w", err)
		}
		managers, err := s.loader.repos.Roles.ListUsersWithRoles(ctx, course.ID, domain.RoleManager)
		if err != nil {
			return nil, fmt.Errorf("listing managers: %w", err)
		}
		req.Graders = graders
		req.Managers = excludeUsers(managers, graders)
	}

	msgs, err := notify.Compose(req)
	if err != nil {
		return nil, fmt.Errorf("composing messages: %w", err)
	}
	return msgs, nil
}

// dispatch sends every message and records the ones that went out. A send
// failure stops the remaining sends; what was sent is still recorded.
func (s *notifyService) dispatch(ctx context.Context, msgs []notify.Message, senderID int64, now time.Time) ([]domain.NotificationRecord, error) {
	var records []domain.NotificationRecord
	var sendErr error
	for _, m := range msgs {
		if err := s.sender.Send(ctx, m); err != nil {
			sendErr = fmt.Errorf("sending to %s: %w", m.To.Username, err)
			break
		}
		records = append(records, domain.NotificationRecord{
			ID:          uuid.New().String(),
			CourseID:    m.CourseID,
			StudentID:   m.StudentID,
			SenderID:    senderID,
			RecipientID: m.To.ID,
			Signal:      m.Signal,
			Subject:     m.Subject,
			CreatedAt:   now.UTC(),
		})
	}
	if len(records) == 0 {
		return nil, sendErr
	}

	logErr := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txLog := repository.NewSQLiteNotificationLogRepo(tx)
		for i := range records {
			if err := txLog.Create(ctx, &records[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if logErr != nil {
		logErr = fmt.Errorf("recording notifications: %w", logErr)
	}
	return records, errors.Join(sendErr, logErr)
}

func (s *notifyService) History(ctx context.Context, courseID, studentID int64) ([]domain.NotificationRecord, error) {
	if _, err := s.loader.requireCourse(ctx, courseID); err != nil {
		return nil, err
	}
	return s.log.ListByStudent(ctx, courseID, studentID)
}

func excludeUsers(users, drop []domain.User) []domain.User {
	skip := make(map[int64]bool, len(drop))
	for _, u := range drop {
		skip[u.ID] = true
	}
	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		if !skip[u.ID] {
			out = append(out, u)
		}
	}
	return out
}
