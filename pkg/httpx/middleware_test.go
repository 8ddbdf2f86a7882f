package httpx_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mysewa/sewa/pkg/httpx"
	"github.com/mysewa/sewa/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func staticAuth(sub, role string) httpx.Authenticator {
	return httpx.AuthenticatorFunc(func(ctx context.Context, raw string) (jwtx.Claims, error) {
		if raw == "bad" {
			return jwtx.Claims{}, errors.New("nope")
		}
		return jwtx.Claims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: sub},
			Role:             role,
		}, nil
	})
}

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}), mw("a"), mw("b"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"a", "b", "handler"}, order)
}

func TestAuthn(t *testing.T) {
	var gotID, gotRole string
	h := httpx.Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = httpx.AccountIDFromContext(r.Context())
		gotRole = httpx.RoleFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}), httpx.Authn(staticAuth("acc-1", "TENANT"), "sess"))

	t.Run("missing token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Header().Get("WWW-Authenticate"), "Bearer")

		var body httpx.ErrorBody
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		require.Equal(t, "unauthenticated", body.Error)
	})

	t.Run("rejected token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer bad")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Body.String(), "invalid_token")
	})

	t.Run("cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "sess", Value: "good"})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Equal(t, "acc-1", gotID)
		require.Equal(t, "TENANT", gotRole)
	})

	t.Run("bearer scheme is case-insensitive", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "bearer good")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("non-bearer scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Basic Zm9vOmJhcg==")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

type statusError struct {
	status int
	code   string
}

func (e statusError) Error() string       { return e.code }
func (e statusError) HTTPStatus() int     { return e.status }
func (e statusError) ErrorCode() string   { return e.code }
func (e statusError) Description() string { return "described " + e.code }

func TestAuthnKeepsErrorClassification(t *testing.T) {
	down := httpx.AuthenticatorFunc(func(ctx context.Context, raw string) (jwtx.Claims, error) {
		return jwtx.Claims{}, fmt.Errorf("load account: %w", statusError{http.StatusServiceUnavailable, "temporarily_unavailable"})
	})
	h := httpx.Chain(okHandler(), httpx.Authn(down, ""))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Empty(t, rec.Header().Get("WWW-Authenticate"))

	var body httpx.ErrorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, "temporarily_unavailable", body.Error)
	require.Equal(t, "described temporarily_unavailable", body.ErrorDescription)
}

func TestAuthorize(t *testing.T) {
	landlordOnly := func(c jwtx.Claims) error {
		if c.Role != "LANDLORD" {
			return errors.New("not a landlord")
		}
		return nil
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good")

	t.Run("denied", func(t *testing.T) {
		h := httpx.Chain(okHandler(),
			httpx.Authn(staticAuth("acc-1", "TENANT"), ""),
			httpx.Authorize(landlordOnly),
		)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusForbidden, rec.Code)
		require.Contains(t, rec.Body.String(), `"forbidden"`)
	})

	t.Run("allowed", func(t *testing.T) {
		h := httpx.Chain(okHandler(),
			httpx.Authn(staticAuth("acc-1", "LANDLORD"), ""),
			httpx.Authorize(landlordOnly),
		)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("classified denial", func(t *testing.T) {
		h := httpx.Chain(okHandler(),
			httpx.Authn(staticAuth("acc-1", "TENANT"), ""),
			httpx.Authorize(func(jwtx.Claims) error {
				return statusError{http.StatusForbidden, "role_mismatch"}
			}),
		)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusForbidden, rec.Code)
		require.Contains(t, rec.Body.String(), "role_mismatch")
	})

	t.Run("without authn", func(t *testing.T) {
		h := httpx.Chain(okHandler(), httpx.Authorize(landlordOnly))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Email string `json:"email"`
	}

	cases := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", `{"email":"a@b.co"}`, false},
		{"empty", ``, true},
		{"unknown field", `{"email":"a@b.co","x":1}`, true},
		{"trailing object", `{"email":"a@b.co"}{}`, true},
		{"malformed", `{"email":`, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			var p payload
			err := httpx.DecodeJSON(httptest.NewRecorder(), req, &p)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, "a@b.co", p.Email)
		})
	}
}

func TestSessionCookie(t *testing.T) {
	c := httpx.SessionCookie{Name: "sess", Secure: true}

	rec := httptest.NewRecorder()
	c.Set(rec, "tok", time.Now().Add(time.Hour))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, "tok", cookies[0].Value)
	require.True(t, cookies[0].HttpOnly)
	require.True(t, cookies[0].Secure)
	require.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
	require.Equal(t, "/", cookies[0].Path)

	rec = httptest.NewRecorder()
	c.Clear(rec)
	cookies = rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Empty(t, cookies[0].Value)
	require.Negative(t, cookies[0].MaxAge)
}
