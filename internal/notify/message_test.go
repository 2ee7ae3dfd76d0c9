package notify

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/coursepulse/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRequest(signal domain.ActionSignal) Request {
	return Request{
		Signal:  signal,
		Course:  domain.Course{ID: 7, ShortName: "BIO101", FullName: "Biology"},
		Student: domain.User{ID: 3, Username: "jdoe", FirstName: "Jane", LastName: "Doe", Email: "jane@example.test"},
		Graders: []domain.User{
			{ID: 10, Username: "tutor", FirstName: "Tom", LastName: "Tutor"},
		},
		Managers: []domain.User{
			{ID: 11, Username: "boss", FirstName: "Mia", LastName: "Manager"},
		},
		ReviewBy: time.Date(2026, 3, 22, 0, 0, 0, 0, time.UTC),
		BaseURL:  "https://lms.test/",
	}
}

func TestCompose_SubmitAddressesGradersThenManagers(t *testing.T) {
	msgs, err := Compose(testRequest(domain.ActionOfferSubmitForGrading))
	require.NoError(t, err)
	require.Len(t, msgs, 2)

	assert.Equal(t, int64(10), msgs[0].To.ID)
	assert.Equal(t, int64(11), msgs[1].To.ID)
	for _, m := range msgs {
		assert.Equal(t, "NOTIFICATION: Jane Doe (jdoe) assessment submission", m.Subject)
		assert.Contains(t, m.Body, "Biology - BIO101")
		assert.Contains(t, m.Body, "https://lms.test/course/view.php?id=7")
		assert.Contains(t, m.Body, "22 March 2026")
		assert.Equal(t, int64(3), m.StudentID)
	}
	assert.NotContains(t, msgs[0].Body, "FYI")
	assert.Contains(t, msgs[1].Body, "FYI")
}

func TestCompose_SubmitWithoutStaffFails(t *testing.T) {
	req := testRequest(domain.ActionOfferSubmitForGrading)
	req.Graders = nil
	req.Managers = nil

	_, err := Compose(req)
	assert.ErrorIs(t, err, ErrNoRecipients)
}

func TestCompose_ReleaseGoesToStudent(t *testing.T) {
	msgs, err := Compose(testRequest(domain.ActionOfferReleaseResult))
	require.NoError(t, err)
	require.Len(t, msgs, 1)

	assert.Equal(t, int64(3), msgs[0].To.ID)
	assert.Equal(t, "NOTIFICATION: Check your assessment result", msgs[0].Subject)
	assert.Contains(t, msgs[0].Body, "Hi Jane Doe")
}

func TestCompose_NoneHasNoMessage(t *testing.T) {
	_, err := Compose(testRequest(domain.ActionNone))
	assert.ErrorIs(t, err, ErrNoMessage)
}

func TestWriterSender_Send(t *testing.T) {
	var buf bytes.Buffer
	s := NewWriterSender(&buf)

	msgs, err := Compose(testRequest(domain.ActionOfferReleaseResult))
	require.NoError(t, err)
	require.NoError(t, s.Send(context.Background(), msgs[0]))

	out := buf.String()
	assert.Contains(t, out, "To: Jane Doe <jane@example.test>\n")
	assert.Contains(t, out, "Subject: NOTIFICATION: Check your assessment result\n")
	assert.Contains(t, out, "---\n")
}

func TestWriterSender_CancelledContext(t *testing.T) {
	var buf bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewWriterSender(&buf).Send(ctx, Message{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, buf.String())
}
