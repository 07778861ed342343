//revive:disable-next-line:var-naming // legacy package name used across the project
package model

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"
)

const maxApplicantNameLen = 255

// ApplicationStatus is the workflow state of a job application.
type ApplicationStatus string

const (
	ApplicationStatusApplied     ApplicationStatus = "applied"
	ApplicationStatusUnderReview ApplicationStatus = "under_review"
	ApplicationStatusApproved    ApplicationStatus = "approved"
	ApplicationStatusRejected    ApplicationStatus = "rejected"
)

// ParseApplicationStatus parses a string into an ApplicationStatus.
func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	switch ApplicationStatus(strings.ToLower(strings.TrimSpace(s))) {
	case ApplicationStatusApplied:
		return ApplicationStatusApplied, nil
	case ApplicationStatusUnderReview:
		return ApplicationStatusUnderReview, nil
	case ApplicationStatusApproved:
		return ApplicationStatusApproved, nil
	case ApplicationStatusRejected:
		return ApplicationStatusRejected, nil
	default:
		return "", fmt.Errorf(
			"invalid application status %q (want applied, under_review, approved, or rejected)", s)
	}
}

// Application represents a job application row.
type Application struct {
	ID             string            `json:"id"                   db:"id"`
	JobID          string            `json:"job_id"               db:"job_id"`
	UserID         string            `json:"user_id"              db:"user_id"`
	ApplicantEmail string            `json:"applicant_email"      db:"applicant_email"`
	ApplicantName  string            `json:"applicant_name"       db:"applicant_name"`
	Phone          *string           `json:"phone,omitempty"      db:"phone"`
	ResumeURL      *string           `json:"resume_url,omitempty" db:"resume_url"`
	Status         ApplicationStatus `json:"status"               db:"status"`
	CreatedAt      time.Time         `json:"created_at"           db:"created_at"`
}

// ApplicationSummary is the reduced view returned to applicants listing
// their own applications.
type ApplicationSummary struct {
	ID             string            `json:"id"              db:"id"`
	ApplicantName  string            `json:"applicant_name"  db:"applicant_name"`
	ApplicantEmail string            `json:"applicant_email" db:"applicant_email"`
	Status         ApplicationStatus `json:"status"          db:"status"`
	CreatedAt      time.Time         `json:"created_at"      db:"created_at"`
}

// SubmitApplicationRequest contains the applicant-supplied fields of a
// submission. Resume bytes travel separately as a multipart file part.
type SubmitApplicationRequest struct {
	JobID          string
	UserID         string
	ApplicantEmail string
	ApplicantName  string
	Phone          *string
}

func (r *SubmitApplicationRequest) Validate() error {
	if strings.TrimSpace(r.JobID) == "" {
		return errors.New("job_id is required")
	}
	if strings.TrimSpace(r.ApplicantEmail) == "" {
		return errors.New("applicant_email is required and cannot be empty")
	}
	if _, err := mail.ParseAddress(r.ApplicantEmail); err != nil {
		return errors.New("applicant_email must be a valid email address")
	}
	if strings.TrimSpace(r.ApplicantName) == "" {
		return errors.New("applicant_name is required and cannot be empty")
	}
	if utf8.RuneCountInString(r.ApplicantName) > maxApplicantNameLen {
		return errors.New("applicant_name cannot exceed 255 characters")
	}
	return nil
}
