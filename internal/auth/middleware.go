package auth

import (
	"context"
	"net/http"
	"strings"

	"tableside/internal/common/httpx"
)

type contextKey struct{}

// RestaurantID returns the restaurant the request's session belongs to, or
// "" when the request is unauthenticated.
func RestaurantID(ctx context.Context) string {
	v, _ := ctx.Value(contextKey{}).(string)
	return v
}

// Middleware requires a valid `Authorization: Bearer <token>` session and
// injects the owning restaurant id into the request context.
func Middleware(s ServiceInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			restaurantID, err := s.Authenticate(r.Context(), token)
			if err != nil {
				httpx.WriteProblem(w, http.StatusUnauthorized, "unauthorized", "valid session required")
				return
			}
			ctx := context.WithValue(r.Context(), contextKey{}, restaurantID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
