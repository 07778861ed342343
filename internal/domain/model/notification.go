//revive:disable-next-line:var-naming // legacy package name used across the project
package model

import "time"

// NotificationState is the delivery state of an outbox row.
type NotificationState string

const (
	NotificationStatePending   NotificationState = "pending"
	NotificationStateDelivered NotificationState = "delivered"
	NotificationStateFailed    NotificationState = "failed"
)

// EmailNotification is an outbox row recording one requested status email.
// Rows are inserted in the same transaction as the status write and
// delivered later by the dispatcher; a failed row keeps its error text so
// divergence between recorded status and delivered mail stays visible.
type EmailNotification struct {
	ID                string            `json:"id"                            db:"id"`
	ApplicationID     string            `json:"application_id"                db:"application_id"`
	Recipient         string            `json:"recipient"                     db:"recipient"`
	Status            ApplicationStatus `json:"status"                        db:"status"`
	State             NotificationState `json:"state"                         db:"state"`
	ProviderMessageID *string           `json:"provider_message_id,omitempty" db:"provider_message_id"`
	Error             *string           `json:"error,omitempty"               db:"error"`
	CreatedAt         time.Time         `json:"created_at"                    db:"created_at"`
	DeliveredAt       *time.Time        `json:"delivered_at,omitempty"        db:"delivered_at"`
}
