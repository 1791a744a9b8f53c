package middleware

import (
	"net/http"

	"proofr-backend/pkg/observability"
)

// Trace wraps each request in an X-Ray segment
func Trace(tracer *observability.Tracer) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, seg := tracer.StartSegment(r.Context(), r.Method+" "+r.URL.Path)
			defer seg.Close(nil)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
