package handlers

import "net/http"

// NewRootHandler returns a handler listing the available endpoints.
func NewRootHandler(deps HandlerDeps, endpoints []Endpoint) http.Handler {
	return rootHandler{deps: deps, endpoints: endpoints}
}

type rootHandler struct {
	deps      HandlerDeps
	endpoints []Endpoint
}

func (h rootHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, h.deps.Logger, http.StatusOK, h.endpoints)
}

// NewNotFoundHandler returns the handler for unmatched routes.
func NewNotFoundHandler(deps HandlerDeps) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, deps.Logger, http.StatusNotFound, errorResponse{Error: "Not found"})
	})
}
