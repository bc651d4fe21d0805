package handlers

import (
	"net/http"
)

// RecentThoughtsLimit is the number of thoughts returned by GET /thoughts.
const RecentThoughtsLimit = 20

// NewListThoughtsHandler returns a handler for GET /thoughts.
func NewListThoughtsHandler(deps HandlerDeps) http.Handler {
	return listThoughtsHandler{deps}
}

// listThoughtsHandler serves the most recent thoughts, newest first.
type listThoughtsHandler struct {
	deps HandlerDeps
}

func (h listThoughtsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := h.deps.Logger.With("handler", "list_thoughts")

	thoughts, err := h.deps.Store.FindRecentThoughts(ctx, RecentThoughtsLimit)
	if err != nil {
		log.ErrorContext(ctx, "Failed to fetch thoughts", "error", err)
		writeError(w, log, http.StatusBadRequest, "Could not get thoughts", err.Error())
		return
	}

	writeJSON(w, log, http.StatusOK, thoughts)
}
