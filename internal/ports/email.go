package ports

import "context"

// EmailMessage is one outbound transactional email.
type EmailMessage struct {
	To      string
	Subject string
	HTML    string
}

// EmailSender delivers a single email and returns the provider's message
// id. Failures map to Upstream errors; the caller decides retry policy.
type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) (string, error)
}
