package middleware

import (
	"net/http"

	"golang.org/x/time/rate"
)

// RateLimit limita el total de requests (un único bucket global).
// rps <= 0 desactiva el limitador; burst <= 0 usa rps.
func RateLimit(rps, burst int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if rps <= 0 {
			return next
		}
		if burst <= 0 {
			burst = rps
		}

		limiter := rate.NewLimiter(rate.Limit(rps), burst)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				Log(r.Context()).Warn("rate limit exceeded", map[string]any{
					"path":        r.URL.Path,
					"remote_addr": r.RemoteAddr,
				})
				http.Error(w, "too many requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
