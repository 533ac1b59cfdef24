package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-geo-sync/internal/logger"
)

const traceIDHeader = "X-Trace-ID"

// withTraceID attaches a child of base carrying trace_id to the request
// context. The caller's X-Trace-ID is reused when present.
func withTraceID(base *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := r.Header.Get(traceIDHeader)
			if traceID == "" {
				traceID = uuid.NewString()
			}

			l := base.GetChildLogger()
			l.UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.Str("trace_id", traceID)
			})

			w.Header().Set(traceIDHeader, traceID)
			next.ServeHTTP(w, r.WithContext(l.WithContext(r.Context())))
		})
	}
}
