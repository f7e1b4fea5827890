package response

import "net/http"

// RequestIDFromRequest extracts the request id set by the request-id
// middleware (echoed on the response header as well).
func RequestIDFromRequest(r *http.Request) string {
	if v := r.Header.Get("X-Request-Id"); v != "" {
		return v
	}
	return r.Header.Get("X-Request-ID")
}
