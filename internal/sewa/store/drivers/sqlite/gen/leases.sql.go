package gen

import (
	"context"
	"database/sql"
	"time"
)

const countLeasesByInvitation = `-- name: CountLeasesByInvitation :one
SELECT COUNT(*) FROM leases WHERE invitation_id = ?
`

func (q *Queries) CountLeasesByInvitation(ctx context.Context, invitationID sql.NullString) (int64, error) {
	row := q.db.QueryRowContext(ctx, countLeasesByInvitation, invitationID)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const createLease = `-- name: CreateLease :exec
INSERT INTO leases (
    id, property_id, tenant_id, landlord_id, start_date, end_date,
    monthly_rent, deposit_amount, invitation_id, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

type CreateLeaseParams struct {
	ID            string
	PropertyID    string
	TenantID      string
	LandlordID    string
	StartDate     time.Time
	EndDate       time.Time
	MonthlyRent   int64
	DepositAmount sql.NullInt64
	InvitationID  sql.NullString
	CreatedAt     time.Time
}

func (q *Queries) CreateLease(ctx context.Context, arg CreateLeaseParams) error {
	_, err := q.db.ExecContext(ctx, createLease,
		arg.ID,
		arg.PropertyID,
		arg.TenantID,
		arg.LandlordID,
		arg.StartDate,
		arg.EndDate,
		arg.MonthlyRent,
		arg.DepositAmount,
		arg.InvitationID,
		arg.CreatedAt,
	)
	return err
}

const listLeasesByLandlord = `-- name: ListLeasesByLandlord :many
SELECT id, property_id, tenant_id, landlord_id, start_date, end_date, monthly_rent, deposit_amount, invitation_id, created_at FROM leases
WHERE landlord_id = ?
ORDER BY created_at DESC, id DESC
LIMIT ? OFFSET ?
`

type ListLeasesByLandlordParams struct {
	LandlordID string
	Limit      int64
	Offset     int64
}

func (q *Queries) ListLeasesByLandlord(ctx context.Context, arg ListLeasesByLandlordParams) ([]Lease, error) {
	rows, err := q.db.QueryContext(ctx, listLeasesByLandlord, arg.LandlordID, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	return scanLeases(rows)
}

const listLeasesByTenant = `-- name: ListLeasesByTenant :many
SELECT id, property_id, tenant_id, landlord_id, start_date, end_date, monthly_rent, deposit_amount, invitation_id, created_at FROM leases
WHERE tenant_id = ?
ORDER BY created_at DESC, id DESC
LIMIT ? OFFSET ?
`

type ListLeasesByTenantParams struct {
	TenantID string
	Limit    int64
	Offset   int64
}

func (q *Queries) ListLeasesByTenant(ctx context.Context, arg ListLeasesByTenantParams) ([]Lease, error) {
	rows, err := q.db.QueryContext(ctx, listLeasesByTenant, arg.TenantID, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	return scanLeases(rows)
}

func scanLeases(rows *sql.Rows) ([]Lease, error) {
	defer rows.Close()
	var items []Lease
	for rows.Next() {
		var i Lease
		if err := rows.Scan(
			&i.ID,
			&i.PropertyID,
			&i.TenantID,
			&i.LandlordID,
			&i.StartDate,
			&i.EndDate,
			&i.MonthlyRent,
			&i.DepositAmount,
			&i.InvitationID,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
