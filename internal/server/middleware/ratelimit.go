package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"
)

// Rate limit buckets. Each guarded endpoint gets its own per-IP sliding
// window; counters live in process memory and reset on restart.
const (
	// LoginLimit / LoginWindow: 5 attempts per 15 minutes per address.
	LoginLimit  = 5
	LoginWindow = 15 * time.Minute

	// ContactLimit / ContactWindow: 5 submissions per hour per address.
	ContactLimit  = 5
	ContactWindow = 60 * time.Minute
)

// RateLimit returns an HTTP middleware that applies a per-IP sliding-window
// limit of limit requests per window. Exceeding it answers 429 with the
// shared error envelope before validation or business logic runs.
func RateLimit(limit int, window time.Duration) func(http.Handler) http.Handler {
	return httprate.Limit(
		limit,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"success":false,"error":"Trop de requêtes. Réessayez plus tard."}`))
		}),
	)
}
