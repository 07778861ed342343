package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jobdeck/careers-api/internal/core"
	"github.com/jobdeck/careers-api/internal/domain/model"
	"github.com/jobdeck/careers-api/internal/observability/metrics"
	"github.com/jobdeck/careers-api/internal/ports"
)

const defaultDispatchBatchSize = 25

// NotifierServiceOptions groups dependencies for NotifierService.
type NotifierServiceOptions struct {
	Outbox     core.NotificationRepository  // Required: pending notification claims
	Templates  core.EmailTemplateRepository // Required: status-keyed templates
	Sender     ports.EmailSender            // Required: outbound delivery
	BatchSize  int                          // Optional: rows claimed per tick, default 25
	Logger     *slog.Logger                 // Optional: structured logger
	Collectors *metrics.Collectors          // Optional: Prometheus instruments
}

// NotifierService drains the email outbox. Each tick claims a batch of
// pending rows, resolves the template for each row's application status,
// and sends through the configured sender. A missing template fails the
// row rather than blocking the batch.
type NotifierService struct {
	outbox     core.NotificationRepository
	templates  core.EmailTemplateRepository
	sender     ports.EmailSender
	batchSize  int
	logger     *slog.Logger
	collectors *metrics.Collectors
}

// NewNotifierService constructs a new NotifierService.
func NewNotifierService(opts NotifierServiceOptions) (*NotifierService, error) {
	if opts.Outbox == nil {
		return nil, errors.New("NotificationRepository is required")
	}
	if opts.Templates == nil {
		return nil, errors.New("EmailTemplateRepository is required")
	}
	if opts.Sender == nil {
		return nil, errors.New("EmailSender is required")
	}

	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = defaultDispatchBatchSize
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "notifier_service")
	}

	return &NotifierService{
		outbox:     opts.Outbox,
		templates:  opts.Templates,
		sender:     opts.Sender,
		batchSize:  batchSize,
		logger:     logger,
		collectors: opts.Collectors,
	}, nil
}

// MustNewNotifierService constructs a new NotifierService and panics on error.
func MustNewNotifierService(opts NotifierServiceOptions) *NotifierService {
	svc, err := NewNotifierService(opts)
	if err != nil {
		panic(err) //nolint:forbidigo // Must constructor fails fast when dependencies are invalid during startup
	}
	return svc
}

// Tick processes one batch of pending notifications and returns the number
// of rows handled. Per-row delivery failures are recorded on the rows and
// do not surface as a tick error.
func (s *NotifierService) Tick(ctx context.Context) (int, error) {
	return s.outbox.ProcessPending(ctx, s.batchSize, s.deliver)
}

// deliver resolves the template for one claimed notification and sends it.
// The returned provider message id is recorded on the row.
func (s *NotifierService) deliver(ctx context.Context, n *model.EmailNotification) (string, error) {
	msgID, err := s.deliverOne(ctx, n)
	if s.collectors != nil {
		state := string(model.NotificationStateDelivered)
		if err != nil {
			state = string(model.NotificationStateFailed)
		}
		s.collectors.NotificationsProcessed.WithLabelValues(state).Inc()
	}
	if err != nil {
		return "", err
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "notification delivered",
			"notification_id", n.ID,
			"application_id", n.ApplicationID,
			"status", n.Status,
			"provider_message_id", msgID)
	}
	return msgID, nil
}

func (s *NotifierService) deliverOne(
	ctx context.Context,
	n *model.EmailNotification,
) (string, error) {
	tpl, err := s.templates.GetByStatus(ctx, n.Status)
	if err != nil {
		return "", fmt.Errorf("resolve template for status %s: %w", n.Status, err)
	}

	msgID, err := s.sender.Send(ctx, ports.EmailMessage{
		To:      n.Recipient,
		Subject: tpl.Subject,
		HTML:    tpl.Body,
	})
	if err != nil {
		return "", fmt.Errorf("send notification %s: %w", n.ID, err)
	}
	return msgID, nil
}
