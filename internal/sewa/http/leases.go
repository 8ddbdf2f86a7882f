package http

import (
	"net/http"

	"github.com/mysewa/sewa/internal/sewa/domain"
	"github.com/mysewa/sewa/internal/sewa/service"
	"github.com/mysewa/sewa/pkg/httpx"
	"github.com/mysewa/sewa/pkg/sewasdk"
)

type LeaseHandler struct {
	LeaseService *service.LeaseService
}

// HandleAssign handles POST /v1/leases
//
//	@Summary		Assign Lease
//	@Description	Leases a VACANT property straight to an existing tenant account, without an invitation.
//	@Tags			Leases
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		sewasdk.AssignLeaseRequest	true	"property, tenant email and lease terms"
//	@Success		201		{object}	sewasdk.LeaseResponse
//	@Failure		400		{object}	sewasdk.ErrorResponse	"error, error_description"
//	@Failure		403		{object}	sewasdk.ErrorResponse	"error, error_description"
//	@Failure		404		{object}	sewasdk.ErrorResponse	"error, error_description"
//	@Failure		409		{object}	sewasdk.ErrorResponse	"error, error_description"
//	@Router			/v1/leases [post].
func (h *LeaseHandler) HandleAssign(w http.ResponseWriter, r *http.Request) {
	var req sewasdk.AssignLeaseRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	terms, err := parseTerms(req.LeaseTerms)
	if err != nil {
		writeError(w, r, err)
		return
	}

	lease, err := h.LeaseService.Assign(r.Context(), httpx.AccountIDFromContext(r.Context()), service.AssignLeaseInput{
		PropertyID:  req.PropertyID,
		TenantEmail: req.TenantEmail,
		Terms:       terms,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, leaseResponse(lease))
}

// HandleList handles GET /v1/leases
//
//	@Summary		List Leases
//	@Description	Landlords get the leases they granted, tenants the leases they hold.
//	@Tags			Leases
//	@Produce		json
//	@Security		BearerAuth
//	@Param			limit	query		int	false	"page size (default 50, max 200)"
//	@Param			offset	query		int	false	"rows to skip"
//	@Success		200		{object}	sewasdk.ListLeasesResponse
//	@Failure		400		{object}	sewasdk.ErrorResponse	"error, error_description"
//	@Router			/v1/leases [get].
func (h *LeaseHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	page, err := pageFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	accountID := httpx.AccountIDFromContext(ctx)
	var list []domain.Lease
	if domain.Role(httpx.RoleFromContext(ctx)) == domain.RoleLandlord {
		list, err = h.LeaseService.ListForLandlord(ctx, accountID, page)
	} else {
		list, err = h.LeaseService.ListForTenant(ctx, accountID, page)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := sewasdk.ListLeasesResponse{Leases: make([]sewasdk.LeaseResponse, 0, len(list))}
	for _, l := range list {
		resp.Leases = append(resp.Leases, leaseResponse(l))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}
