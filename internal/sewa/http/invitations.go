package http

import (
	"net/http"

	"github.com/mysewa/sewa/internal/sewa/service"
	"github.com/mysewa/sewa/pkg/httpx"
	"github.com/mysewa/sewa/pkg/sewasdk"
)

// InvitationHandler serves the landlord-side invitation management and the
// public link endpoints.
type InvitationHandler struct {
	InvitationService *service.InvitationService
}

func createdResponse(ci service.CreatedInvitation) sewasdk.CreatedInvitationResponse {
	return sewasdk.CreatedInvitationResponse{
		Invitation:      invitationResponse(ci.Invitation),
		Token:           ci.Token,
		URL:             ci.URL,
		ExistingAccount: ci.ExistingAccount,
	}
}

// HandleCreate handles POST /v1/invitations
//
//	@Summary		Create Invitation
//	@Description	Invites a tenant to lease one of the caller's properties and emails them the link. The token is returned only here.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		sewasdk.CreateInvitationRequest		true	"property, tenant and lease terms"
//	@Success		201		{object}	sewasdk.CreatedInvitationResponse	"invitation, token, url"
//	@Failure		400		{object}	sewasdk.ErrorResponse				"error, error_description"
//	@Failure		403		{object}	sewasdk.ErrorResponse				"error, error_description"
//	@Failure		404		{object}	sewasdk.ErrorResponse				"error, error_description"
//	@Failure		409		{object}	sewasdk.ErrorResponse				"error, error_description"
//	@Router			/v1/invitations [post].
func (h *InvitationHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req sewasdk.CreateInvitationRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	terms, err := parseTerms(req.LeaseTerms)
	if err != nil {
		writeError(w, r, err)
		return
	}

	ci, err := h.InvitationService.Create(r.Context(), httpx.AccountIDFromContext(r.Context()), service.CreateInvitationInput{
		PropertyID:  req.PropertyID,
		TenantEmail: req.TenantEmail,
		TenantName:  req.TenantName,
		Terms:       terms,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, createdResponse(ci))
}

// HandleList handles GET /v1/invitations
//
//	@Summary		List Invitations
//	@Description	Returns the caller's invitations, newest first, each with its property's id, title and address.
//	@Tags			Invitations
//	@Produce		json
//	@Security		BearerAuth
//	@Param			limit	query		int	false	"page size (default 50, max 200)"
//	@Param			offset	query		int	false	"rows to skip"
//	@Success		200		{object}	sewasdk.ListInvitationsResponse
//	@Failure		400		{object}	sewasdk.ErrorResponse	"error, error_description"
//	@Router			/v1/invitations [get].
func (h *InvitationHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	page, err := pageFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	list, err := h.InvitationService.ListForLandlord(r.Context(), httpx.AccountIDFromContext(r.Context()), page)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := sewasdk.ListInvitationsResponse{Invitations: make([]sewasdk.InvitationResponse, 0, len(list))}
	for _, item := range list {
		inv := invitationResponse(item.Invitation)
		inv.Property = &sewasdk.InvitationProperty{
			ID:      item.Property.ID,
			Title:   item.Property.Title,
			Address: item.Property.Address,
		}
		resp.Invitations = append(resp.Invitations, inv)
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleGet handles GET /v1/invitations/{token}
//
//	@Summary		Open Invitation Link
//	@Description	Resolves a pending invitation from its link token. An overdue invitation is marked EXPIRED and answered with 410.
//	@Tags			Invitations
//	@Produce		json
//	@Param			token	path		string	true	"invitation token"
//	@Success		200		{object}	sewasdk.InvitationDetailsResponse
//	@Failure		404		{object}	sewasdk.ErrorResponse	"error, error_description"
//	@Failure		409		{object}	sewasdk.ErrorResponse	"error, error_description"
//	@Failure		410		{object}	sewasdk.ErrorResponse	"error, error_description"
//	@Router			/v1/invitations/{token} [get].
func (h *InvitationHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	d, err := h.InvitationService.GetByToken(r.Context(), r.PathValue("token"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, sewasdk.InvitationDetailsResponse{
		Invitation:      invitationResponse(d.Invitation),
		Property:        propertyResponse(d.Property),
		LandlordName:    d.LandlordName,
		LandlordEmail:   d.LandlordEmail,
		ExistingAccount: d.ExistingAccount,
	})
}

// HandleAccept handles POST /v1/invitations/{token}/accept
//
//	@Summary		Accept Invitation
//	@Description	Creates or links the tenant account, creates the lease and marks the property OCCUPIED, all or nothing.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			token	path		string							true	"invitation token"
//	@Param			request	body		sewasdk.AcceptInvitationRequest	true	"password (required for new accounts)"
//	@Success		200		{object}	sewasdk.AcceptInvitationResponse
//	@Failure		400		{object}	sewasdk.ErrorResponse	"error, error_description"
//	@Failure		404		{object}	sewasdk.ErrorResponse	"error, error_description"
//	@Failure		409		{object}	sewasdk.ErrorResponse	"error, error_description"
//	@Failure		410		{object}	sewasdk.ErrorResponse	"error, error_description"
//	@Router			/v1/invitations/{token}/accept [post].
func (h *InvitationHandler) HandleAccept(w http.ResponseWriter, r *http.Request) {
	var req sewasdk.AcceptInvitationRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.InvitationService.Accept(r.Context(), r.PathValue("token"), req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, sewasdk.AcceptInvitationResponse{
		InvitationID:   res.Invitation.ID,
		AccountID:      res.AccountID,
		LeaseID:        res.LeaseID,
		AccountCreated: res.AccountCreated,
	})
}

// HandleCancel handles DELETE /v1/invitations/{id}
//
//	@Summary		Cancel Invitation
//	@Tags			Invitations
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"invitation id"
//	@Success		200	{object}	sewasdk.InvitationResponse
//	@Failure		403	{object}	sewasdk.ErrorResponse	"error, error_description"
//	@Failure		404	{object}	sewasdk.ErrorResponse	"error, error_description"
//	@Failure		409	{object}	sewasdk.ErrorResponse	"error, error_description"
//	@Router			/v1/invitations/{id} [delete].
func (h *InvitationHandler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	inv, err := h.InvitationService.Cancel(r.Context(), httpx.AccountIDFromContext(r.Context()), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, invitationResponse(inv))
}

// HandleResend handles POST /v1/invitations/{id}/resend
//
//	@Summary		Resend Invitation
//	@Description	Issues a fresh token and deadline and re-sends the email. The old link stops working.
//	@Tags			Invitations
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"invitation id"
//	@Success		200	{object}	sewasdk.CreatedInvitationResponse
//	@Failure		403	{object}	sewasdk.ErrorResponse	"error, error_description"
//	@Failure		404	{object}	sewasdk.ErrorResponse	"error, error_description"
//	@Failure		409	{object}	sewasdk.ErrorResponse	"error, error_description"
//	@Router			/v1/invitations/{id}/resend [post].
func (h *InvitationHandler) HandleResend(w http.ResponseWriter, r *http.Request) {
	ci, err := h.InvitationService.Resend(r.Context(), httpx.AccountIDFromContext(r.Context()), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, createdResponse(ci))
}
