// Package httpx provides the HTTP API surface of the careers backend.
package httpx

import (
	"errors"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"

	"github.com/jobdeck/careers-api/internal/service"
)

const minPasswordLen = 8

// AuthHandlers provides HTTP handlers for account and session operations.
type AuthHandlers struct {
	Svc    *service.AuthService
	Logger *slog.Logger
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *credentialsRequest) validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return errors.New("email is required and cannot be empty")
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return errors.New("email must be a valid email address")
	}
	if len(r.Password) < minPasswordLen {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}

// SignUp handles account creation against the identity provider.
func (h *AuthHandlers) SignUp(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := req.validate(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation", Err: err})
		return
	}

	userID, err := h.Svc.SignUp(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, map[string]string{"user_id": userID})
}

// SignIn exchanges email/password credentials for token material.
func (h *AuthHandlers) SignIn(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := req.validate(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation", Err: err})
		return
	}

	creds, err := h.Svc.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, creds)
}

// Status reports the authenticated caller and its recorded role. The route
// sits behind RequireAuth, so a missing caller is a wiring bug rather than
// an expected state.
func (h *AuthHandlers) Status(w http.ResponseWriter, r *http.Request) {
	caller, ok := CallerFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("no authenticated caller"),
		})
		return
	}

	role, err := h.Svc.RoleFor(r.Context(), caller)
	if err != nil {
		if h.Logger != nil {
			h.Logger.ErrorContext(r.Context(), "role lookup failed", "user_id", caller.UserID, "error", err)
		}
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"user_id":  caller.UserID,
		"email":    caller.Email,
		"role":     string(role),
		"elevated": role.Elevated(),
	})
}
