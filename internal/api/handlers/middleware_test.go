package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgard/happythoughts/internal/api/handlers"
	"github.com/edgard/happythoughts/internal/health"
)

func TestGuardRejectsWhenNotConnected(t *testing.T) {
	t.Parallel()

	requests := []struct {
		method string
		target string
		body   string
	}{
		{http.MethodGet, "/thoughts", ""},
		{http.MethodPost, "/thoughts", `{"message":"Hello world"}`},
		{http.MethodPost, "/thoughts/0b9f4c02-6c0e-4a8e-9a49-0c1d9c3f8f11/like", ""},
		{http.MethodGet, "/unknown", ""},
	}

	for _, state := range []health.State{health.Disconnected, health.Connecting, health.Disconnecting} {
		store := newMemoryStore()
		router := handlers.NewRouter(testDeps(store, state))

		for _, r := range requests {
			rec := serve(t, router, r.method, r.target, r.body)
			assert.Equal(t, http.StatusServiceUnavailable, rec.Code, "%s %s while %s", r.method, r.target, state)
			assert.JSONEq(t, `{"error":"Service unavailable"}`, rec.Body.String())
		}
		assert.Zero(t, store.callCount(), "no store operation while %s", state)
	}
}

func TestGuardExemptsRoot(t *testing.T) {
	t.Parallel()

	router := handlers.NewRouter(testDeps(newMemoryStore(), health.Disconnected))

	rec := serve(t, router, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Body.String())

	rec = serve(t, router, http.MethodPost, "/", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code, "only GET / is exempt")
}

func TestGuardPassesWhenConnected(t *testing.T) {
	t.Parallel()

	deps := testDeps(newMemoryStore(), health.Connected)
	called := false
	h := handlers.RequireConnection(deps)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/anything", nil))
	assert.True(t, called)
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestRecoverer(t *testing.T) {
	t.Parallel()

	deps := testDeps(newMemoryStore(), health.Connected)
	h := handlers.Recoverer(deps)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/thoughts", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, rec.Body.String())
}
