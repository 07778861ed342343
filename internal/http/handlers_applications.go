package httpx

import (
	"errors"
	"net/http"

	"github.com/jobdeck/careers-api/internal/service"
)

// ApplicationHandlers provides HTTP handlers for the application ledger.
type ApplicationHandlers struct {
	Svc  *service.ApplicationService
	Auth *service.AuthService
}

// ListMine lists the caller's own applications, keyed by the email on the
// verified token.
func (h *ApplicationHandlers) ListMine(w http.ResponseWriter, r *http.Request) {
	caller, ok := CallerFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("no authenticated caller"),
		})
		return
	}

	apps, err := h.Svc.ListMine(r.Context(), caller.Email)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"applications": apps})
}

type transitionRequest struct {
	Status string `json:"status"`
}

// Transition moves an application to a new workflow status. The status
// write and the outbox insert commit together.
func (h *ApplicationHandlers) Transition(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("application id is required")},
		)
		return
	}

	var req transitionRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	app, err := h.Svc.Transition(r.Context(), id, req.Status)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, app)
}

// Renotify enqueues another notification for the application's current
// status.
func (h *ApplicationHandlers) Renotify(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("application id is required")},
		)
		return
	}

	n, err := h.Svc.Renotify(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusAccepted, n)
}

// Delete removes an application. Elevated callers can remove any row;
// everyone else can only withdraw their own.
func (h *ApplicationHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("application id is required")},
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

	role, err := h.Auth.RoleFor(r.Context(), caller)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	if role.Elevated() {
		err = h.Svc.Remove(r.Context(), id)
	} else {
		err = h.Svc.Withdraw(r.Context(), id, caller.UserID)
	}
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
