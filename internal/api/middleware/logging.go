package middleware

import (
	"log/slog"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/task-api/internal/platform/logger"
)

// RequestLogger logs one line per request with the method and URL, followed
// by the status, size and duration once the handler has finished.
// It must run after NewTraceMiddleware so the entries carry the trace ID.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := logger.FromContextOrDefault(r.Context(), slog.Default())
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		log.Info(r.Method+" "+r.URL.RequestURI(),
			slog.String("method", r.Method),
			slog.String("url", r.URL.RequestURI()),
			slog.String("remote_addr", r.RemoteAddr),
			slog.String("request_id", chimiddleware.GetReqID(r.Context())))

		defer func() {
			log.Debug("request completed",
				slog.String("method", r.Method),
				slog.String("url", r.URL.RequestURI()),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("duration", time.Since(start)))
		}()

		next.ServeHTTP(ww, r)
	})
}
