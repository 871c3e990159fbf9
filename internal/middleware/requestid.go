package middleware

import (
	"net/http"

	"github.com/google/uuid"
)

// RequestID attaches an X-Request-ID header to every request that arrives
// without one, so error responses can always echo an ID back.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
			r.Header.Set("X-Request-ID", id)
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}
