package sqlite

import (
	"context"

	"github.com/mysewa/sewa/internal/sewa/domain"
	"github.com/mysewa/sewa/internal/sewa/store"
	"github.com/mysewa/sewa/internal/sewa/store/drivers/sqlite/gen"
)

type leasesRepo struct {
	q *gen.Queries
}

func (r *leasesRepo) CreateLease(ctx context.Context, l domain.Lease) error {
	err := r.q.CreateLease(ctx, gen.CreateLeaseParams{
		ID:            l.ID,
		PropertyID:    l.PropertyID,
		TenantID:      l.TenantID,
		LandlordID:    l.LandlordID,
		StartDate:     l.Start.UTC(),
		EndDate:       l.End.UTC(),
		MonthlyRent:   l.MonthlyRent,
		DepositAmount: mapOptionalInt64(l.DepositAmount),
		InvitationID:  mapStringNull(l.InvitationID),
		CreatedAt:     l.CreatedAt.UTC(),
	})
	return mapConstraint(err)
}

func (r *leasesRepo) ListLeasesByLandlord(
	ctx context.Context,
	landlordID string,
	page domain.Page,
) ([]domain.Lease, error) {
	page = page.Normalize()
	rows, err := r.q.ListLeasesByLandlord(ctx, gen.ListLeasesByLandlordParams{
		LandlordID: landlordID,
		Limit:      int64(page.Limit),
		Offset:     int64(page.Offset),
	})
	if err != nil {
		return nil, err
	}
	return mapLeases(rows), nil
}

func (r *leasesRepo) ListLeasesByTenant(
	ctx context.Context,
	tenantID string,
	page domain.Page,
) ([]domain.Lease, error) {
	page = page.Normalize()
	rows, err := r.q.ListLeasesByTenant(ctx, gen.ListLeasesByTenantParams{
		TenantID: tenantID,
		Limit:    int64(page.Limit),
		Offset:   int64(page.Offset),
	})
	if err != nil {
		return nil, err
	}
	return mapLeases(rows), nil
}

func (r *leasesRepo) CountLeasesByInvitation(ctx context.Context, invitationID string) (int64, error) {
	return r.q.CountLeasesByInvitation(ctx, mapStringNull(invitationID))
}

func mapLeases(rows []gen.Lease) []domain.Lease {
	out := make([]domain.Lease, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapLease(row))
	}
	return out
}

var _ store.Leases = (*leasesRepo)(nil)
