package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"proofr-backend/pkg/observability"
)

// Collect records request count and latency per method and status
func Collect(metrics *observability.Metrics) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			dimensions := map[string]string{
				"Method": r.Method,
				"Status": strconv.Itoa(ww.Status()),
			}
			metrics.IncrementCounter("RequestCount", dimensions)
			metrics.RecordLatency("RequestLatency", time.Since(start), dimensions)
		})
	}
}
