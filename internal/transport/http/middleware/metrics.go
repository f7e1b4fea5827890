package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/glutenpeek/tracker-service/internal/metrics"
)

// Metrics records Prometheus metrics per chi route pattern.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}

		next.ServeHTTP(sw, r)

		routePattern := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && len(rctx.RoutePatterns) > 0 {
			routePattern = rctx.RoutePatterns[len(rctx.RoutePatterns)-1]
		}

		status := sw.status
		if status == 0 {
			status = http.StatusOK
		}
		metrics.RecordHTTPRequest(r.Method, routePattern, status, time.Since(start))
	})
}
