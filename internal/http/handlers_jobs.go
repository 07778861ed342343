package httpx

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/jobdeck/careers-api/internal/domain/model"
	"github.com/jobdeck/careers-api/internal/service"
)

const (
	maxJobListLimit = 100

	// Resume uploads are bounded to keep multipart parsing cheap.
	maxResumeBytes = 5 << 20
)

// JobHandlers provides HTTP handlers for job posting operations.
type JobHandlers struct {
	Svc          *service.JobService
	Applications *service.ApplicationService
}

// Create handles HTTP requests to create a new job posting. New postings
// always start in draft.
func (h *JobHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateJobRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	job, err := h.Svc.Create(r.Context(), &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, job)
}

// List handles HTTP requests to list job postings. Without an explicit
// status filter only live postings are returned; staff pass ?status=draft
// or ?status=closed to see the rest of the board.
func (h *JobHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, 50, maxJobListLimit)

	opts := model.JobsListOptions{
		Sort:   r.URL.Query().Get("sort"),
		Dir:    r.URL.Query().Get("dir"),
		Limit:  limit,
		Offset: offset,
	}
	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		opts.Q = &q
	}

	var (
		jobs []*model.Job
		err  error
	)
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, parseErr := model.ParseJobStatus(raw)
		if parseErr != nil {
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_status", Err: parseErr})
			return
		}
		opts.Status = &status
		jobs, err = h.Svc.List(r.Context(), opts)
	} else {
		jobs, err = h.Svc.ListLive(r.Context(), opts)
	}
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"jobs":   jobs,
		"limit":  limit,
		"offset": offset,
	})
}

// GetByID handles HTTP requests to get a job posting by ID.
func (h *JobHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("job id is required")},
		)
		return
	}

	job, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, job)
}

// Update handles HTTP requests to update a job posting's mutable fields.
func (h *JobHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("job id is required")},
		)
		return
	}

	var req model.UpdateJobRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	job, err := h.Svc.Update(r.Context(), id, req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, job)
}

// Delete handles HTTP requests to delete a job posting.
func (h *JobHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("job id is required")},
		)
		return
	}

	if err := h.Svc.Delete(r.Context(), id); err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// Publish handles HTTP requests to move a draft posting to live.
func (h *JobHandlers) Publish(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Svc.Publish)
}

// Close handles HTTP requests to move a live posting to closed.
func (h *JobHandlers) Close(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Svc.Close)
}

func (h *JobHandlers) transition(
	w http.ResponseWriter,
	r *http.Request,
	move func(ctx context.Context, id string) (*model.Job, error),
) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("job id is required")},
		)
		return
	}

	job, err := move(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, job)
}

// Apply handles multipart application submissions against a live posting.
// Text fields travel as form values; the resume rides along as an optional
// PDF file part.
func (h *JobHandlers) Apply(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")
	if jobID == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("job id is required")},
		)
		return
	}

	caller, ok := CallerFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("no authenticated caller"),
		})
		return
	}

	if err := r.ParseMultipartForm(maxResumeBytes); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_multipart", Err: err})
		return
	}

	req := model.SubmitApplicationRequest{
		JobID:          jobID,
		UserID:         caller.UserID,
		ApplicantEmail: r.FormValue("email"),
		ApplicantName:  r.FormValue("name"),
	}
	if req.ApplicantEmail == "" {
		req.ApplicantEmail = caller.Email
	}
	if phone := strings.TrimSpace(r.FormValue("phone")); phone != "" {
		req.Phone = &phone
	}

	resume, err := readResumePart(r)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_resume", Err: err})
		return
	}

	app, err := h.Applications.Submit(r.Context(), &req, resume)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, app)
}

// readResumePart reads the optional resume file part. A missing part is
// not an error; an oversized one is.
func readResumePart(r *http.Request) ([]byte, error) {
	file, _, err := r.FormFile("resume")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close() //nolint:errcheck // read-only multipart part

	resume, err := io.ReadAll(io.LimitReader(file, maxResumeBytes+1))
	if err != nil {
		return nil, err
	}
	if len(resume) > maxResumeBytes {
		return nil, errors.New("resume cannot exceed 5 MiB")
	}
	return resume, nil
}

// ApplicantsCount reports the number of distinct applicant emails for a
// posting.
func (h *JobHandlers) ApplicantsCount(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")
	if jobID == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("job id is required")},
		)
		return
	}

	count, err := h.Applications.CountApplicants(r.Context(), jobID)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"job_id": jobID, "applicants": count})
}
