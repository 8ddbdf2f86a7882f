package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/mysewa/sewa/internal/sewa/domain"
)

const leaseColumns = `id, property_id, tenant_id, landlord_id, start_date, end_date, monthly_rent, deposit_amount, invitation_id, created_at`

type leasesRepo struct {
	q querier
}

func scanLease(row pgx.Row) (domain.Lease, error) {
	var (
		l            domain.Lease
		invitationID *string
	)
	err := row.Scan(
		&l.ID,
		&l.PropertyID,
		&l.TenantID,
		&l.LandlordID,
		&l.Start,
		&l.End,
		&l.MonthlyRent,
		&l.DepositAmount,
		&invitationID,
		&l.CreatedAt,
	)
	if err != nil {
		return domain.Lease{}, mapNotFound(err)
	}
	l.InvitationID = derefString(invitationID)
	l.Start = l.Start.UTC()
	l.End = l.End.UTC()
	l.CreatedAt = l.CreatedAt.UTC()
	return l, nil
}

func (r *leasesRepo) CreateLease(ctx context.Context, l domain.Lease) error {
	const q = `
		INSERT INTO leases (
			id, property_id, tenant_id, landlord_id, start_date, end_date,
			monthly_rent, deposit_amount, invitation_id, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.q.Exec(ctx, q,
		l.ID, l.PropertyID, l.TenantID, l.LandlordID, l.Start.UTC(), l.End.UTC(),
		l.MonthlyRent, l.DepositAmount, nullIfEmpty(l.InvitationID), l.CreatedAt.UTC(),
	)
	if err != nil {
		return mapConstraint(err)
	}
	return nil
}

func (r *leasesRepo) list(ctx context.Context, column, id string, page domain.Page) ([]domain.Lease, error) {
	page = page.Normalize()
	rows, err := r.q.Query(ctx, `
		SELECT `+leaseColumns+` FROM leases
		WHERE `+column+` = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`, id, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("list leases: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Lease, 0, page.Limit)
	for rows.Next() {
		l, err := scanLease(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list leases: %w", err)
	}
	return out, nil
}

func (r *leasesRepo) ListLeasesByLandlord(ctx context.Context, landlordID string, page domain.Page) ([]domain.Lease, error) {
	return r.list(ctx, "landlord_id", landlordID, page)
}

func (r *leasesRepo) ListLeasesByTenant(ctx context.Context, tenantID string, page domain.Page) ([]domain.Lease, error) {
	return r.list(ctx, "tenant_id", tenantID, page)
}

func (r *leasesRepo) CountLeasesByInvitation(ctx context.Context, invitationID string) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM leases WHERE invitation_id = $1`, invitationID).Scan(&n)
	return n, err
}
