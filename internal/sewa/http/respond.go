package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/mysewa/sewa/internal/sewa/domain"
	"github.com/mysewa/sewa/pkg/httpx"
	"github.com/mysewa/sewa/pkg/sewasdk"
	"github.com/mysewa/sewa/pkg/slogx"
	"github.com/mysewa/sewa/pkg/validate"
)

// writeError renders err as an ErrorResponse. Unclassified errors become a
// generic 500 and are logged with their cause.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	e := domain.AsError(err)
	if e.Kind == domain.KindInternal {
		slogx.FromContext(r.Context()).Error("request failed", slog.Any("error", err))
	}
	httpx.WriteError(w, e.Kind.HTTPStatus(), e.Code, e.Message)
}

// decode reads a JSON body into dst and checks its validate tags.
func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	if err := httpx.DecodeJSON(w, r, dst); err != nil {
		return domain.Validation(err.Error())
	}
	if err := validate.Struct(dst); err != nil {
		return domain.Validation(err.Error())
	}
	return nil
}

func pageFromQuery(r *http.Request) (domain.Page, error) {
	var (
		p   domain.Page
		err error
	)
	q := r.URL.Query()
	if v := q.Get("limit"); v != "" {
		if p.Limit, err = strconv.Atoi(v); err != nil || p.Limit < 0 {
			return domain.Page{}, domain.Validation("limit must be a non-negative integer")
		}
	}
	if v := q.Get("offset"); v != "" {
		if p.Offset, err = strconv.Atoi(v); err != nil || p.Offset < 0 {
			return domain.Page{}, domain.Validation("offset must be a non-negative integer")
		}
	}
	return p, nil
}

func parseTerms(t sewasdk.LeaseTerms) (domain.LeaseTerms, error) {
	start, err := time.Parse(sewasdk.DateLayout, t.StartDate)
	if err != nil {
		return domain.LeaseTerms{}, domain.Validation("start_date must be YYYY-MM-DD")
	}
	end, err := time.Parse(sewasdk.DateLayout, t.EndDate)
	if err != nil {
		return domain.LeaseTerms{}, domain.Validation("end_date must be YYYY-MM-DD")
	}
	return domain.LeaseTerms{
		Start:         start,
		End:           end,
		MonthlyRent:   t.MonthlyRent,
		DepositAmount: t.DepositAmount,
	}, nil
}

func termsResponse(start, end time.Time, rent int64, deposit *int64) sewasdk.LeaseTerms {
	return sewasdk.LeaseTerms{
		StartDate:     start.Format(sewasdk.DateLayout),
		EndDate:       end.Format(sewasdk.DateLayout),
		MonthlyRent:   rent,
		DepositAmount: deposit,
	}
}

func accountResponse(a domain.Account) sewasdk.AccountResponse {
	return sewasdk.AccountResponse{
		ID:            a.ID,
		Email:         a.Email,
		Name:          a.Name,
		Role:          string(a.Role),
		EmailVerified: a.EmailVerified,
	}
}

func propertyResponse(p domain.Property) sewasdk.PropertyResponse {
	return sewasdk.PropertyResponse{
		ID:          p.ID,
		Title:       p.Title,
		Address:     p.Address,
		MonthlyRent: p.MonthlyRent,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
	}
}

func invitationResponse(inv domain.Invitation) sewasdk.InvitationResponse {
	return sewasdk.InvitationResponse{
		ID:          inv.ID,
		PropertyID:  inv.PropertyID,
		TenantEmail: inv.TenantEmail,
		TenantName:  inv.TenantName,
		LeaseTerms:  termsResponse(inv.Terms.Start, inv.Terms.End, inv.Terms.MonthlyRent, inv.Terms.DepositAmount),
		Status:      string(inv.Status),
		ExpiresAt:   inv.ExpiresAt,
		AcceptedAt:  inv.AcceptedAt,
		CreatedAt:   inv.CreatedAt,
	}
}

func leaseResponse(l domain.Lease) sewasdk.LeaseResponse {
	return sewasdk.LeaseResponse{
		ID:           l.ID,
		PropertyID:   l.PropertyID,
		TenantID:     l.TenantID,
		LandlordID:   l.LandlordID,
		InvitationID: l.InvitationID,
		LeaseTerms:   termsResponse(l.Start, l.End, l.MonthlyRent, l.DepositAmount),
		CreatedAt:    l.CreatedAt,
	}
}
