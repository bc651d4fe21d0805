package handlers

import (
	"net/http"
	"runtime/debug"

	"github.com/edgard/happythoughts/internal/health"
)

// RequireConnection creates a middleware that answers 503 without calling the
// next handler while the store is not connected. Requests matching one of the
// exempt routes always pass through.
func RequireConnection(deps HandlerDeps, exempt ...RegisteredRoute) func(http.Handler) http.Handler {
	log := deps.Logger.With("middleware", "RequireConnection")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isExempt(r, exempt) {
				next.ServeHTTP(w, r)
				return
			}

			state := deps.Connection.ConnectionState()
			if state != health.Connected {
				log.WarnContext(r.Context(), "Rejecting request, store unavailable",
					"method", r.Method, "path", r.URL.Path, "state", state.String())
				writeJSON(w, log, http.StatusServiceUnavailable, errorResponse{Error: "Service unavailable"})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func isExempt(r *http.Request, exempt []RegisteredRoute) bool {
	for _, route := range exempt {
		if r.URL.Path != route.Path {
			continue
		}
		if r.Method == route.Method || (route.Method == http.MethodGet && r.Method == http.MethodHead) {
			return true
		}
	}
	return false
}

// Recoverer turns a panicking handler into a 500 JSON response.
func Recoverer(deps HandlerDeps) func(http.Handler) http.Handler {
	log := deps.Logger.With("middleware", "Recoverer")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.ErrorContext(r.Context(), "Recovered from handler panic",
					"method", r.Method, "path", r.URL.Path, "panic", rec, "stack", string(debug.Stack()))
				writeJSON(w, log, http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
			}()

			next.ServeHTTP(w, r)
		})
	}
}
