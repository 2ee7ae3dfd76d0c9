// Package notify builds the messages behind an action signal and hands them
// to a Sender. Delivery itself is outside this module.
package notify

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/coursepulse/internal/domain"
)

var (
	ErrNoMessage    = errors.New("signal has no message")
	ErrNoRecipients = errors.New("no recipients")
)

// DefaultReviewDays is how long graders are given to mark a submission.
const DefaultReviewDays = 21

// DateLayout formats review-by dates in message bodies.
const DateLayout = "2 January 2006"

type Message struct {
	Signal    domain.ActionSignal
	CourseID  int64
	StudentID int64
	To        domain.User
	Subject   string
	Body      string
}

// Request is the input to Compose. Graders and Managers are only used for the
// submit-for-grading signal; managers receive the same text marked FYI.
type Request struct {
	Signal   domain.ActionSignal
	Course   domain.Course
	Student  domain.User
	Graders  []domain.User
	Managers []domain.User
	ReviewBy time.Time
	BaseURL  string
}

// CourseLink is the learner-facing entry point of the course.
func CourseLink(baseURL string, courseID int64) string {
	return fmt.Sprintf("%s/course/view.php?id=%d", strings.TrimRight(baseURL, "/"), courseID)
}

// Compose returns one message per addressee, graders before managers.
func Compose(req Request) ([]Message, error) {
	switch req.Signal {
	case domain.ActionOfferSubmitForGrading:
		return composeSubmit(req)
	case domain.ActionOfferReleaseResult:
		return []Message{composeRelease(req)}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrNoMessage, req.Signal)
	}
}

func composeSubmit(req Request) ([]Message, error) {
	if len(req.Graders)+len(req.Managers) == 0 {
		return nil, fmt.Errorf("submitting %s for grading: %w", req.Student.Username, ErrNoRecipients)
	}

	subject := fmt.Sprintf("NOTIFICATION: %s (%s) assessment submission",
		req.Student.FullName(), req.Student.Username)
	link := CourseLink(req.BaseURL, req.Course.ID)
	due := req.ReviewBy.Format(DateLayout)

	msgs := make([]Message, 0, len(req.Graders)+len(req.Managers))
	add := func(to domain.User, fyi bool) {
		var b strings.Builder
		fmt.Fprintf(&b, "Hi %s,\n\n", to.FullName())
		if fyi {
			b.WriteString("FYI: ")
		}
		fmt.Fprintf(&b, "the assessment submission of %s (%s) for %s is ready for marking.\n",
			req.Student.FullName(), req.Student.Username, req.Course.DisplayName())
		fmt.Fprintf(&b, "Please mark it (%s) before %s.\n\n", link, due)
		b.WriteString("Do not reply to this message.\n")
		msgs = append(msgs, Message{
			Signal:    req.Signal,
			CourseID:  req.Course.ID,
			StudentID: req.Student.ID,
			To:        to,
			Subject:   subject,
			Body:      b.String(),
		})
	}
	for _, u := range req.Graders {
		add(u, false)
	}
	for _, u := range req.Managers {
		add(u, true)
	}
	return msgs, nil
}

func composeRelease(req Request) Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", req.Student.FullName())
	fmt.Fprintf(&b, "your trainer has finished marking your assessments in %s.\n", req.Course.DisplayName())
	fmt.Fprintf(&b, "Please check your grades at %s.\n", CourseLink(req.BaseURL, req.Course.ID))
	b.WriteString("If your result is not satisfactory, contact the student administrator.\n\n")
	b.WriteString("Do not reply to this message.\n")
	return Message{
		Signal:    req.Signal,
		CourseID:  req.Course.ID,
		StudentID: req.Student.ID,
		To:        req.Student,
		Subject:   "NOTIFICATION: Check your assessment result",
		Body:      b.String(),
	}
}
