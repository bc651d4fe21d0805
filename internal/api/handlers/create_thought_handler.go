package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/edgard/happythoughts/internal/database"
)

// maxCreateBodyBytes bounds the request body of POST /thoughts.
const maxCreateBodyBytes = 64 << 10

const createFailedMessage = "Could not save thought to the Database"

type createThoughtRequest struct {
	Message string  `json:"message"`
	Name    *string `json:"name"`
}

// NewCreateThoughtHandler returns a handler for POST /thoughts.
func NewCreateThoughtHandler(deps HandlerDeps) http.Handler {
	return createThoughtHandler{deps}
}

// createThoughtHandler builds a thought from the request body and saves it.
type createThoughtHandler struct {
	deps HandlerDeps
}

func (h createThoughtHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := h.deps.Logger.With("handler", "create_thought")

	var req createThoughtRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxCreateBodyBytes))
	// An empty body is treated like a body without a message.
	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		log.DebugContext(ctx, "Rejected malformed request body", "error", err)
		writeError(w, log, http.StatusBadRequest, createFailedMessage, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		log.DebugContext(ctx, "Rejected request body with trailing data", "error", err)
		writeError(w, log, http.StatusBadRequest, createFailedMessage, "invalid request body: unexpected data after JSON object")
		return
	}

	var name string
	if req.Name != nil {
		name = *req.Name
	}
	thought := database.NewThought(req.Message, name)

	if err := h.deps.Store.CreateThought(ctx, thought); err != nil {
		var verr *database.ValidationError
		if errors.As(err, &verr) {
			log.DebugContext(ctx, "Rejected invalid thought", "error", err)
			writeError(w, log, http.StatusBadRequest, createFailedMessage, verr.Errors)
			return
		}
		log.ErrorContext(ctx, "Failed to save thought", "error", err)
		writeError(w, log, http.StatusBadRequest, createFailedMessage, err.Error())
		return
	}

	log.InfoContext(ctx, "Thought created", "thought_id", thought.ID)
	writeJSON(w, log, http.StatusCreated, thought)
}
