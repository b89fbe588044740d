package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/aria-creative/vitrine/internal/service"
)

type contextKeyAuth string

// claimsKey is the context key for the verified session claims.
const claimsKey contextKeyAuth = "session_claims"

// Authenticate returns an HTTP middleware enforcing a valid admin bearer
// token. A missing or malformed Authorization header and a bad or expired
// token both end the request with a 401; verified claims are attached to
// the request context for the handlers.
func Authenticate(authSvc *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				writeAuthError(w, "Token d'accès requis")
				return
			}

			token := strings.TrimPrefix(authHeader, "Bearer ")
			claims, err := authSvc.VerifyToken(token)
			if err != nil {
				writeAuthError(w, "Token invalide ou expiré")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetClaims extracts the verified session claims from the context. Returns
// nil on unauthenticated requests.
func GetClaims(ctx context.Context) *service.Claims {
	if c, ok := ctx.Value(claimsKey).(*service.Claims); ok {
		return c
	}
	return nil
}

func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	// Hand-built JSON keeps this package free of a handler import cycle.
	w.Write([]byte(`{"success":false,"error":"` + message + `"}`))
}
