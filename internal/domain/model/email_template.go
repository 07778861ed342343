//revive:disable-next-line:var-naming // legacy package name used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const maxTemplateSubjectLen = 500

// EmailTemplate is the message sent when an application reaches the
// matching status. One template per status; bodies are already-formed
// HTML with no placeholder interpolation.
type EmailTemplate struct {
	ID        string            `json:"id"         db:"id"`
	Status    ApplicationStatus `json:"status"     db:"status"`
	Subject   string            `json:"subject"    db:"subject"`
	Body      string            `json:"body"       db:"body"`
	CreatedAt time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt time.Time         `json:"updated_at" db:"updated_at"`
}

// CreateEmailTemplateRequest contains fields to create a template.
type CreateEmailTemplateRequest struct {
	Status  string `json:"status"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (r *CreateEmailTemplateRequest) Validate() error {
	if _, err := ParseApplicationStatus(r.Status); err != nil {
		return err
	}
	if strings.TrimSpace(r.Subject) == "" {
		return errors.New("subject is required and cannot be empty")
	}
	if utf8.RuneCountInString(r.Subject) > maxTemplateSubjectLen {
		return errors.New("subject cannot exceed 500 characters")
	}
	if strings.TrimSpace(r.Body) == "" {
		return errors.New("body is required and cannot be empty")
	}
	return nil
}

// UpdateEmailTemplateRequest supports partial updates of subject and body.
// The status key is immutable; delete and recreate to rekey.
type UpdateEmailTemplateRequest struct {
	Subject *string `json:"subject,omitempty"`
	Body    *string `json:"body,omitempty"`
}

func (r *UpdateEmailTemplateRequest) HasUpdates() bool {
	return r.Subject != nil || r.Body != nil
}

func (r *UpdateEmailTemplateRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.Subject != nil {
		if strings.TrimSpace(*r.Subject) == "" {
			return errors.New("subject cannot be empty")
		}
		if utf8.RuneCountInString(*r.Subject) > maxTemplateSubjectLen {
			return errors.New("subject cannot exceed 500 characters")
		}
	}
	if r.Body != nil && strings.TrimSpace(*r.Body) == "" {
		return errors.New("body cannot be empty")
	}
	return nil
}
