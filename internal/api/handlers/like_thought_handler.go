package handlers

import (
	"net/http"
)

// NewLikeThoughtHandler returns a handler for POST /thoughts/{id}/like.
func NewLikeThoughtHandler(deps HandlerDeps) http.Handler {
	return likeThoughtHandler{deps}
}

// likeThoughtHandler adds one heart to the thought named in the path.
type likeThoughtHandler struct {
	deps HandlerDeps
}

func (h likeThoughtHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")
	log := h.deps.Logger.With("handler", "like_thought", "thought_id", id)

	if err := h.deps.Store.IncrementHearts(ctx, id); err != nil {
		log.WarnContext(ctx, "Failed to save like", "error", err)
		writeError(w, log, http.StatusNotFound, "Could not save your like to the database", err.Error())
		return
	}

	log.DebugContext(ctx, "Like saved")
	w.WriteHeader(http.StatusCreated)
}
