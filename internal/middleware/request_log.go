package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"crm-timeline/internal/platform/logger"
	"crm-timeline/internal/platform/metrics"
)

// statusWriter captura el status code de la respuesta.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// RequestLog loguea cada request con correlation id y registra métricas.
func RequestLog(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			correlationID := r.Header.Get("X-Correlation-ID")
			if correlationID == "" {
				correlationID = uuid.NewString()
			}

			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			sw.Header().Set("X-Correlation-ID", correlationID)

			next.ServeHTTP(sw, r)

			elapsed := time.Since(start)
			log.Info("request completed", logger.Fields{
				"method":         r.Method,
				"path":           r.URL.Path,
				"status":         sw.status,
				"duration_ms":    elapsed.Milliseconds(),
				"correlation_id": correlationID,
				"remote_addr":    r.RemoteAddr,
			})

			metrics.RecordRequest(r.Method, r.URL.Path, strconv.Itoa(sw.status), elapsed.Seconds())
		})
	}
}
