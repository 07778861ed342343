//revive:disable-next-line:var-naming // legacy package name used across the project
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxJobTitleLen    = 255
	maxJobLocationLen = 255
)

// JobStatus is the lifecycle state of a job posting.
type JobStatus string

const (
	JobStatusDraft  JobStatus = "draft"
	JobStatusLive   JobStatus = "live"
	JobStatusClosed JobStatus = "closed"
)

// ParseJobStatus parses a string into a JobStatus.
func ParseJobStatus(s string) (JobStatus, error) {
	switch JobStatus(strings.ToLower(strings.TrimSpace(s))) {
	case JobStatusDraft:
		return JobStatusDraft, nil
	case JobStatusLive:
		return JobStatusLive, nil
	case JobStatusClosed:
		return JobStatusClosed, nil
	default:
		return "", fmt.Errorf("invalid job status %q (want draft, live, or closed)", s)
	}
}

// CanTransitionTo reports whether the lifecycle allows moving to next.
// The only legal moves are draft→live and live→closed.
func (s JobStatus) CanTransitionTo(next JobStatus) bool {
	switch s {
	case JobStatusDraft:
		return next == JobStatusLive
	case JobStatusLive:
		return next == JobStatusClosed
	default:
		return false
	}
}

// Job represents a job posting.
type Job struct {
	ID             string    `json:"id"              db:"id"`
	Title          string    `json:"title"           db:"title"`
	Department     string    `json:"department"      db:"department"`
	EmploymentType string    `json:"employment_type" db:"employment_type"`
	Description    string    `json:"description"     db:"description"`
	Qualifications string    `json:"qualifications"  db:"qualifications"`
	SalaryRange    string    `json:"salary_range"    db:"salary_range"`
	Location       string    `json:"location"        db:"location"`
	Status         JobStatus `json:"status"          db:"status"`
	CreatedAt      time.Time `json:"created_at"      db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"      db:"updated_at"`
}

// JobsListOptions carries filters, sorting, and pagination for job listing.
type JobsListOptions struct {
	Q      *string    // case-insensitive substring match on title
	Status *JobStatus // filter by lifecycle status
	Sort   string     // "title" or "created_at" (default created_at)
	Dir    string     // "asc" or "desc" (default desc)
	Limit  int
	Offset int
}

// CreateJobRequest contains fields to create a new job posting.
// New jobs always start in draft.
type CreateJobRequest struct {
	Title          string `json:"title"`
	Department     string `json:"department"`
	EmploymentType string `json:"employment_type"`
	Description    string `json:"description"`
	Qualifications string `json:"qualifications"`
	SalaryRange    string `json:"salary_range"`
	Location       string `json:"location"`
}

func (r *CreateJobRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("title is required and cannot be empty")
	}
	if utf8.RuneCountInString(r.Title) > maxJobTitleLen {
		return errors.New("title cannot exceed 255 characters")
	}
	if strings.TrimSpace(r.Description) == "" {
		return errors.New("description is required and cannot be empty")
	}
	if utf8.RuneCountInString(r.Location) > maxJobLocationLen {
		return errors.New("location cannot exceed 255 characters")
	}
	return nil
}

// UpdateJobRequest supports partial updates of the mutable posting fields.
// Status is not updatable here; use the publish and close operations.
type UpdateJobRequest struct {
	Title          *string `json:"title,omitempty"`
	Department     *string `json:"department,omitempty"`
	EmploymentType *string `json:"employment_type,omitempty"`
	Description    *string `json:"description,omitempty"`
	Qualifications *string `json:"qualifications,omitempty"`
	SalaryRange    *string `json:"salary_range,omitempty"`
	Location       *string `json:"location,omitempty"`
}

func (r *UpdateJobRequest) HasUpdates() bool {
	return r.Title != nil || r.Department != nil || r.EmploymentType != nil ||
		r.Description != nil || r.Qualifications != nil ||
		r.SalaryRange != nil || r.Location != nil
}

func (r *UpdateJobRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.Title != nil {
		if strings.TrimSpace(*r.Title) == "" {
			return errors.New("title cannot be empty")
		}
		if utf8.RuneCountInString(*r.Title) > maxJobTitleLen {
			return errors.New("title cannot exceed 255 characters")
		}
	}
	if r.Description != nil && strings.TrimSpace(*r.Description) == "" {
		return errors.New("description cannot be empty")
	}
	if r.Location != nil && utf8.RuneCountInString(*r.Location) > maxJobLocationLen {
		return errors.New("location cannot exceed 255 characters")
	}
	return nil
}
