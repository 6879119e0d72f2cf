package middleware

import (
	"context"
	"net/http"

	"github.com/shashiranjanraj/plantnet/pkg/auth"
	"github.com/shashiranjanraj/plantnet/pkg/response"
)

// claimsKey is the unexported context key for the authenticated identity.
type claimsKey struct{}

// Auth is the authorization gate. It requires a valid session cookie and
// attaches the decoded claims to the request context; everything else is
// answered with 401 before the handler runs.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(auth.CookieName)
		if err != nil {
			response.Unauthorized(w)
			return
		}

		claims, err := auth.ValidateToken(cookie.Value)
		if err != nil {
			response.Unauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClaimsFromCtx returns the authenticated claims attached by Auth.
func ClaimsFromCtx(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*auth.Claims)
	return claims, ok
}

// EmailFromCtx returns the authenticated email, empty when unauthenticated.
func EmailFromCtx(ctx context.Context) string {
	if claims, ok := ClaimsFromCtx(ctx); ok {
		return claims.Email
	}
	return ""
}

// RoleFromCtx returns the authenticated role, empty when unauthenticated.
func RoleFromCtx(ctx context.Context) string {
	if claims, ok := ClaimsFromCtx(ctx); ok {
		return claims.Role
	}
	return ""
}
