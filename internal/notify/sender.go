package notify

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// Sender delivers composed messages.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// WriterSender prints messages to a writer in a mail-like layout.
type WriterSender struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriterSender(w io.Writer) *WriterSender {
	return &WriterSender{w: w}
}

func (s *WriterSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	to := msg.To.FullName()
	if msg.To.Email != "" {
		to += " <" + msg.To.Email + ">"
	}
	_, err := fmt.Fprintf(s.w, "To: %s\nSubject: %s\n\n%s---\n", to, msg.Subject, msg.Body)
	if err != nil {
		return fmt.Errorf("writing message to %s: %w", msg.To.Username, err)
	}
	return nil
}

var _ Sender = (*WriterSender)(nil)
