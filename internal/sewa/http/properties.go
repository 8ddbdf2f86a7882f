package http

import (
	"net/http"

	"github.com/mysewa/sewa/internal/sewa/service"
	"github.com/mysewa/sewa/pkg/httpx"
	"github.com/mysewa/sewa/pkg/sewasdk"
)

type PropertyHandler struct {
	PropertyService *service.PropertyService
}

// HandleRegister handles POST /v1/properties
//
//	@Summary		Register Property
//	@Description	Adds a VACANT property owned by the calling landlord.
//	@Tags			Properties
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		sewasdk.RegisterPropertyRequest	true	"title, address, monthly_rent"
//	@Success		201		{object}	sewasdk.PropertyResponse
//	@Failure		400		{object}	sewasdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	sewasdk.ErrorResponse	"error, error_description"
//	@Failure		403		{object}	sewasdk.ErrorResponse	"error, error_description"
//	@Router			/v1/properties [post].
func (h *PropertyHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req sewasdk.RegisterPropertyRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	p, err := h.PropertyService.Register(r.Context(), httpx.AccountIDFromContext(r.Context()), service.RegisterPropertyInput{
		Title:       req.Title,
		Address:     req.Address,
		MonthlyRent: req.MonthlyRent,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, propertyResponse(p))
}
