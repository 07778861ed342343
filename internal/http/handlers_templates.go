package httpx

import (
	"errors"
	"net/http"

	"github.com/jobdeck/careers-api/internal/domain/model"
	"github.com/jobdeck/careers-api/internal/service"
)

const maxTemplateListLimit = 50

// EmailTemplateHandlers provides HTTP handlers for the status-keyed
// notification templates.
type EmailTemplateHandlers struct {
	Svc *service.EmailTemplateService
}

// Create handles HTTP requests to create a new template.
func (h *EmailTemplateHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateEmailTemplateRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	tpl, err := h.Svc.Create(r.Context(), req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, tpl)
}

// List handles HTTP requests to list templates.
func (h *EmailTemplateHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, 20, maxTemplateListLimit)

	templates, err := h.Svc.List(r.Context(), limit, offset)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"templates": templates,
		"limit":     limit,
		"offset":    offset,
	})
}

// GetByID handles HTTP requests to get a template by ID.
func (h *EmailTemplateHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("template id is required")},
		)
		return
	}

	tpl, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, tpl)
}

// Update handles HTTP requests to update a template's subject and body.
func (h *EmailTemplateHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("template id is required")},
		)
		return
	}

	var req model.UpdateEmailTemplateRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	tpl, err := h.Svc.Update(r.Context(), id, req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, tpl)
}

// Delete handles HTTP requests to delete a template.
func (h *EmailTemplateHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("template id is required")},
		)
		return
	}

	if err := h.Svc.Delete(r.Context(), id); err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
