package httpx

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/jobdeck/careers-api/internal/observability/metrics"
	"github.com/jobdeck/careers-api/internal/service"
)

// Logging returns a middleware that logs HTTP requests and responses. When
// collectors is non-nil the request counter and duration histogram are
// recorded per route pattern, not per raw path, to keep label cardinality
// bounded.
func Logging(logger *slog.Logger, collectors *metrics.Collectors) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			elapsed := time.Since(start)

			if collectors != nil {
				route := r.Pattern
				if route == "" {
					route = "unmatched"
				}
				// Pattern includes the method prefix ("POST /api/jobs");
				// strip it so the label is the route alone.
				if _, after, found := strings.Cut(route, " "); found {
					route = after
				}
				collectors.HTTPRequestsTotal.
					WithLabelValues(r.Method, route, strconv.Itoa(ww.status)).Inc()
				collectors.HTTPRequestDuration.
					WithLabelValues(r.Method, route).Observe(elapsed.Seconds())
			}

			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", elapsed),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. Empty string means no usable credential was presented.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// RequireAuth returns a middleware that requires a verified bearer token.
// The authenticated caller is placed in the request context for handlers
// downstream.
func RequireAuth(authSvc *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				WriteError(w, ErrorParams{
					Code:    http.StatusUnauthorized,
					ErrCode: "authentication_required",
					Err:     errors.New("bearer token is required"),
				})
				return
			}

			caller, err := authSvc.VerifyToken(r.Context(), token)
			if err != nil {
				WriteError(w, ErrorParams{
					Code:    http.StatusUnauthorized,
					ErrCode: "invalid_token",
					Err:     errors.New("token verification failed"),
				})
				return
			}

			ctx := SetCallerInContext(r.Context(), caller)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireElevated returns a middleware that requires an admin or subadmin
// caller. It verifies the bearer token and then resolves the caller's
// recorded role; both the caller and the role land in the request context.
func RequireElevated(authSvc *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				WriteError(w, ErrorParams{
					Code:    http.StatusUnauthorized,
					ErrCode: "authentication_required",
					Err:     errors.New("bearer token is required"),
				})
				return
			}

			caller, err := authSvc.VerifyToken(r.Context(), token)
			if err != nil {
				WriteError(w, ErrorParams{
					Code:    http.StatusUnauthorized,
					ErrCode: "invalid_token",
					Err:     errors.New("token verification failed"),
				})
				return
			}

			role, err := authSvc.RequireElevated(r.Context(), caller)
			if err != nil {
				WriteAppError(w, err)
				return
			}

			ctx := SetCallerInContext(r.Context(), caller)
			ctx = SetRoleInContext(ctx, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
