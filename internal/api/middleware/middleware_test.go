package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/platform/logger"
)

func TestTraceMiddleware(t *testing.T) {
	buf, log := logger.SetupTestLogger(t)

	var seenTraceID string
	handler := NewTraceMiddleware(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenTraceID = shared.GetTraceID(r.Context())
		if l := logger.FromContextOrDefault(r.Context(), nil); l != nil {
			l.Info("inside handler")
		}
	}))

	t.Run("generates an id", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tasks", nil))

		assert.True(t, shared.IsValidTraceID(seenTraceID))
		assert.Equal(t, seenTraceID, w.Header().Get(shared.TraceIDHeader))

		entry := logger.FindLogEntry(t, buf, "inside handler")
		require.NotNil(t, entry, "request context carries a logger")
		assert.Equal(t, seenTraceID, entry["trace_id"])
	})

	t.Run("reuses a well formed header", func(t *testing.T) {
		incoming := shared.NewTraceID()
		req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
		req.Header.Set(shared.TraceIDHeader, incoming)

		handler.ServeHTTP(httptest.NewRecorder(), req)
		assert.Equal(t, incoming, seenTraceID)
	})

	t.Run("replaces a malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
		req.Header.Set(shared.TraceIDHeader, "<script>")

		handler.ServeHTTP(httptest.NewRecorder(), req)
		assert.NotEqual(t, "<script>", seenTraceID)
		assert.True(t, shared.IsValidTraceID(seenTraceID))
	})
}

func TestRequestLogger(t *testing.T) {
	buf, log := logger.SetupTestLogger(t)

	handler := chimiddleware.RequestID(NewTraceMiddleware(log)(RequestLogger(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{}`))
		}),
	)))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/tasks?x=1", nil))
	require.Equal(t, http.StatusCreated, w.Code)

	access := logger.FindLogEntry(t, buf, "POST /tasks?x=1")
	require.NotNil(t, access, "access line uses METHOD URL")
	assert.NotEmpty(t, access["trace_id"])
	assert.NotEmpty(t, access["request_id"])

	done := logger.FindLogEntry(t, buf, "request completed")
	require.NotNil(t, done)
	assert.EqualValues(t, http.StatusCreated, done["status"])
	assert.EqualValues(t, 2, done["bytes"])
}
