package http

import (
	"net/http"

	"github.com/mysewa/sewa/internal/sewa/service"
	"github.com/mysewa/sewa/pkg/httpx"
	"github.com/mysewa/sewa/pkg/sewasdk"
)

// AuthHandler serves PIN login and the session endpoints.
type AuthHandler struct {
	PinService     *service.PinService
	SessionService *service.SessionService
	Cookie         httpx.SessionCookie
}

// HandleRequestPin handles POST /v1/auth/pin/request
//
//	@Summary		Request Login PIN
//	@Description	Emails a 6-digit PIN valid for 10 minutes. Unknown landlords are registered on the fly; tenants must have been invited first.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		sewasdk.PinRequest		true	"email, role, optional name and password"
//	@Success		202		{object}	sewasdk.StatusResponse	"PIN sent"
//	@Failure		400		{object}	sewasdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	sewasdk.ErrorResponse	"error, error_description"
//	@Failure		403		{object}	sewasdk.ErrorResponse	"error, error_description"
//	@Failure		404		{object}	sewasdk.ErrorResponse	"error, error_description"
//	@Failure		503		{object}	sewasdk.ErrorResponse	"error, error_description"
//	@Router			/v1/auth/pin/request [post].
func (h *AuthHandler) HandleRequestPin(w http.ResponseWriter, r *http.Request) {
	var req sewasdk.PinRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	err := h.PinService.RequestPin(r.Context(), service.PinRequest{
		Email:    req.Email,
		Role:     req.Role,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusAccepted, sewasdk.StatusResponse{Status: "pin_sent"})
}

// HandleVerifyPin handles POST /v1/auth/pin/verify
//
//	@Summary		Verify Login PIN
//	@Description	Exchanges a PIN for a session token, also set as an HttpOnly cookie. A PIN works once.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		sewasdk.VerifyPinRequest	true	"email and pin"
//	@Success		200		{object}	sewasdk.SessionResponse		"token, expires_at, account"
//	@Failure		400		{object}	sewasdk.ErrorResponse		"error, error_description"
//	@Failure		401		{object}	sewasdk.ErrorResponse		"error, error_description"
//	@Failure		404		{object}	sewasdk.ErrorResponse		"error, error_description"
//	@Failure		410		{object}	sewasdk.ErrorResponse		"error, error_description"
//	@Router			/v1/auth/pin/verify [post].
func (h *AuthHandler) HandleVerifyPin(w http.ResponseWriter, r *http.Request) {
	var req sewasdk.VerifyPinRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	sess, err := h.PinService.VerifyPin(r.Context(), req.Email, req.PIN)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.Cookie.Set(w, sess.Token, sess.ExpiresAt)
	httpx.WriteJSON(w, http.StatusOK, sewasdk.SessionResponse{
		Token:     sess.Token,
		TokenType: "Bearer",
		ExpiresAt: sess.ExpiresAt,
		Account:   accountResponse(sess.Account),
	})
}

// HandleLogout handles POST /v1/auth/logout
//
//	@Summary		Log Out
//	@Description	Clears the session cookie. Tokens are stateless and stay valid until they expire.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Success		204
//	@Failure		401	{object}	sewasdk.ErrorResponse	"error, error_description"
//	@Router			/v1/auth/logout [post].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.Cookie.Clear(w)
	w.WriteHeader(http.StatusNoContent)
}

// HandleMe handles GET /v1/auth/me
//
//	@Summary		Current Session
//	@Tags			Auth
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	sewasdk.MeResponse		"account_id, email, role, expires_at"
//	@Failure		401	{object}	sewasdk.ErrorResponse	"error, error_description"
//	@Router			/v1/auth/me [get].
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	claims, _ := httpx.ClaimsFromContext(r.Context())

	resp := sewasdk.MeResponse{
		AccountID: claims.Subject,
		Email:     claims.Email,
		Role:      claims.Role,
	}
	if claims.ExpiresAt != nil {
		resp.ExpiresAt = claims.ExpiresAt.Time
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}
