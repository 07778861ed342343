// Package devmail provides a log-only EmailSender for local development.
package devmail

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/jobdeck/careers-api/internal/ports"
)

// Sender logs outbound email instead of delivering it.
type Sender struct {
	logger *slog.Logger
}

var _ ports.EmailSender = (*Sender)(nil)

// NewSender constructs a log-only sender.
func NewSender(logger *slog.Logger) *Sender {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sender{logger: logger.With("component", "devmail")}
}

// Send logs the message and returns a synthetic message id.
func (s *Sender) Send(ctx context.Context, msg ports.EmailMessage) (string, error) {
	id := "dev-" + uuid.NewString()
	s.logger.InfoContext(ctx, "email suppressed in dev mode",
		"to", msg.To,
		"subject", msg.Subject,
		"message_id", id)
	return id, nil
}
