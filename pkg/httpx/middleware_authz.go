package httpx

import (
	"net/http"

	"github.com/mysewa/sewa/pkg/jwtx"
)

// AuthorizeFunc decides whether claims may proceed. A nil error allows the
// request.
type AuthorizeFunc func(jwtx.Claims) error

// Authorize runs check against the claims placed by Authn. Must run after
// Authn; requests without claims are rejected as unauthenticated.
func Authorize(check AuthorizeFunc) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				writeBearerError(w, "unauthenticated", "authentication required")
				return
			}
			if err := check(claims); err != nil {
				writeAuthError(w, err, http.StatusForbidden, "forbidden", "you do not have permission to perform this action")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
