package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/mysewa/sewa/pkg/jwtx"
	"github.com/mysewa/sewa/pkg/slogx"
)

// Authenticator resolves a raw session token into claims. Implementations
// are expected to do more than check the signature (e.g. confirm the
// subject still exists).
type Authenticator interface {
	Authenticate(ctx context.Context, raw string) (jwtx.Claims, error)
}

// AuthenticatorFunc adapts a function to Authenticator.
type AuthenticatorFunc func(ctx context.Context, raw string) (jwtx.Claims, error)

func (f AuthenticatorFunc) Authenticate(ctx context.Context, raw string) (jwtx.Claims, error) {
	return f(ctx, raw)
}

// Authn requires a session token, read from the cookie named cookieName or,
// failing that, an "Authorization: Bearer" header. Errors implementing
// ClassifiedError keep their status, so a store outage is not reported as
// a bad token.
func Authn(a Authenticator, cookieName string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			raw := tokenFromRequest(r, cookieName)
			if raw == "" {
				writeBearerError(w, "unauthenticated", "authentication required")
				return
			}

			claims, err := a.Authenticate(ctx, raw)
			if err != nil {
				slogx.FromContext(ctx).Warn("session rejected", "err", err)
				writeAuthError(w, err, http.StatusUnauthorized, "invalid_token", "session is invalid or expired")
				return
			}

			ctx = contextWithAuth(ctx, claims)
			ctx = slogx.With(ctx, "account_id", claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func tokenFromRequest(r *http.Request, cookieName string) string {
	if cookieName != "" {
		if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
			return c.Value
		}
	}

	authz := r.Header.Get("Authorization")
	scheme, raw, ok := strings.Cut(authz, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(raw)
}

// RFC 6750-style error response for bearer auth.
func writeBearerError(w http.ResponseWriter, code, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="`+code+`", error_description="`+desc+`"`)
	WriteError(w, http.StatusUnauthorized, code, desc)
}
