// Package auth implements the session token service: long-lived signed
// tokens carrying the caller's identity claim, delivered through an
// HTTP-only cookie.
package auth

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/shashiranjanraj/plantnet/config"
)

// CookieName is the session cookie holding the signed token.
const CookieName = "token"

// TokenTTL is the token validity window. Expiry is the only invalidation
// path; there is no server-side revocation list.
const TokenTTL = 365 * 24 * time.Hour

// Claims holds the typed JWT payload.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

func secret() []byte {
	return []byte(config.JWTSecret())
}

// GenerateToken creates a signed JWT embedding the given identity claim.
func GenerateToken(email, role string) (string, error) {
	claims := Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret())
}

// ValidateToken parses and validates a JWT string.
func ValidateToken(t string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(t, &Claims{}, func(tok *jwt.Token) (interface{}, error) {
		return secret(), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}

// cookieAttributes returns the environment-dependent cookie settings.
// Production serves the front-end from a different site, so the cookie must
// be Secure and cross-site-sendable; everywhere else Strict is safer.
func cookieAttributes() (secure bool, sameSite http.SameSite) {
	if config.IsProduction() {
		return true, http.SameSiteNoneMode
	}
	return false, http.SameSiteStrictMode
}

// SetTokenCookie writes the session cookie. The validity window lives inside
// the token itself, not in the cookie's max-age.
func SetTokenCookie(w http.ResponseWriter, token string) {
	secure, sameSite := cookieAttributes()
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
	})
}

// ClearTokenCookie expires the session cookie with matching attributes.
// Idempotent; clearing an absent cookie is fine.
func ClearTokenCookie(w http.ResponseWriter) {
	secure, sameSite := cookieAttributes()
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
	})
}
