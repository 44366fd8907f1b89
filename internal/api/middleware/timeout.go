package middleware

import (
	"context"
	"net/http"
	"time"
)

// Deadline bounds every downstream call, including the wait for a pooled
// database connection, to d. Unlike chi's Timeout it writes nothing itself:
// an expired deadline surfaces through the store as an unexpected failure.
func Deadline(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if d <= 0 {
				next.ServeHTTP(w, r)
				return
			}
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
