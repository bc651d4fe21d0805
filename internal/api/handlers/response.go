package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// errorResponse is the JSON body of every failed request. Message is omitted
// by the connection guard, which only reports Error.
type errorResponse struct {
	Message string `json:"message,omitempty"`
	Error   any    `json:"error"`
}

func writeJSON(w http.ResponseWriter, log *slog.Logger, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error("Failed to encode response body", "status", status, "error", err)
	}
}

func writeError(w http.ResponseWriter, log *slog.Logger, status int, message string, detail any) {
	writeJSON(w, log, status, errorResponse{Message: message, Error: detail})
}
