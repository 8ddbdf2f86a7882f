package gen

import (
	"context"
	"database/sql"
	"time"
)

const acceptPendingInvitation = `-- name: AcceptPendingInvitation :execrows
UPDATE invitations
SET status = 'ACCEPTED', accepted_at = ?1, updated_at = ?1
WHERE id = ?2 AND status = 'PENDING'
`

type AcceptPendingInvitationParams struct {
	AcceptedAt sql.NullTime
	ID         string
}

func (q *Queries) AcceptPendingInvitation(ctx context.Context, arg AcceptPendingInvitationParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, acceptPendingInvitation, arg.AcceptedAt, arg.ID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const createInvitation = `-- name: CreateInvitation :exec
INSERT INTO invitations (
    id, token_hash, property_id, landlord_id, tenant_email, tenant_name,
    lease_start, lease_end, monthly_rent, deposit_amount,
    status, expires_at, created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

type CreateInvitationParams struct {
	ID            string
	TokenHash     string
	PropertyID    string
	LandlordID    string
	TenantEmail   string
	TenantName    string
	LeaseStart    time.Time
	LeaseEnd      time.Time
	MonthlyRent   int64
	DepositAmount sql.NullInt64
	Status        string
	ExpiresAt     time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (q *Queries) CreateInvitation(ctx context.Context, arg CreateInvitationParams) error {
	_, err := q.db.ExecContext(ctx, createInvitation,
		arg.ID,
		arg.TokenHash,
		arg.PropertyID,
		arg.LandlordID,
		arg.TenantEmail,
		arg.TenantName,
		arg.LeaseStart,
		arg.LeaseEnd,
		arg.MonthlyRent,
		arg.DepositAmount,
		arg.Status,
		arg.ExpiresAt,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const expireOverdueInvitations = `-- name: ExpireOverdueInvitations :execrows
UPDATE invitations
SET status = 'EXPIRED', updated_at = ?1
WHERE status = 'PENDING' AND expires_at < ?1
`

func (q *Queries) ExpireOverdueInvitations(ctx context.Context, now time.Time) (int64, error) {
	result, err := q.db.ExecContext(ctx, expireOverdueInvitations, now)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const getInvitationByID = `-- name: GetInvitationByID :one
SELECT id, token_hash, property_id, landlord_id, tenant_email, tenant_name, lease_start, lease_end, monthly_rent, deposit_amount, status, expires_at, created_at, updated_at, accepted_at FROM invitations WHERE id = ?
`

func (q *Queries) GetInvitationByID(ctx context.Context, id string) (Invitation, error) {
	row := q.db.QueryRowContext(ctx, getInvitationByID, id)
	var i Invitation
	err := row.Scan(
		&i.ID,
		&i.TokenHash,
		&i.PropertyID,
		&i.LandlordID,
		&i.TenantEmail,
		&i.TenantName,
		&i.LeaseStart,
		&i.LeaseEnd,
		&i.MonthlyRent,
		&i.DepositAmount,
		&i.Status,
		&i.ExpiresAt,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.AcceptedAt,
	)
	return i, err
}

const getInvitationByTokenHash = `-- name: GetInvitationByTokenHash :one
SELECT id, token_hash, property_id, landlord_id, tenant_email, tenant_name, lease_start, lease_end, monthly_rent, deposit_amount, status, expires_at, created_at, updated_at, accepted_at FROM invitations WHERE token_hash = ?
`

func (q *Queries) GetInvitationByTokenHash(ctx context.Context, tokenHash string) (Invitation, error) {
	row := q.db.QueryRowContext(ctx, getInvitationByTokenHash, tokenHash)
	var i Invitation
	err := row.Scan(
		&i.ID,
		&i.TokenHash,
		&i.PropertyID,
		&i.LandlordID,
		&i.TenantEmail,
		&i.TenantName,
		&i.LeaseStart,
		&i.LeaseEnd,
		&i.MonthlyRent,
		&i.DepositAmount,
		&i.Status,
		&i.ExpiresAt,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.AcceptedAt,
	)
	return i, err
}

const listInvitationsByLandlord = `-- name: ListInvitationsByLandlord :many
SELECT id, token_hash, property_id, landlord_id, tenant_email, tenant_name, lease_start, lease_end, monthly_rent, deposit_amount, status, expires_at, created_at, updated_at, accepted_at FROM invitations
WHERE landlord_id = ?
ORDER BY created_at DESC, id DESC
LIMIT ? OFFSET ?
`

type ListInvitationsByLandlordParams struct {
	LandlordID string
	Limit      int64
	Offset     int64
}

func (q *Queries) ListInvitationsByLandlord(ctx context.Context, arg ListInvitationsByLandlordParams) ([]Invitation, error) {
	rows, err := q.db.QueryContext(ctx, listInvitationsByLandlord, arg.LandlordID, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Invitation
	for rows.Next() {
		var i Invitation
		if err := rows.Scan(
			&i.ID,
			&i.TokenHash,
			&i.PropertyID,
			&i.LandlordID,
			&i.TenantEmail,
			&i.TenantName,
			&i.LeaseStart,
			&i.LeaseEnd,
			&i.MonthlyRent,
			&i.DepositAmount,
			&i.Status,
			&i.ExpiresAt,
			&i.CreatedAt,
			&i.UpdatedAt,
			&i.AcceptedAt,
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

const refreshInvitation = `-- name: RefreshInvitation :execrows
UPDATE invitations
SET token_hash = ?, expires_at = ?, status = 'PENDING', updated_at = ?
WHERE id = ? AND status <> 'ACCEPTED'
`

type RefreshInvitationParams struct {
	TokenHash string
	ExpiresAt time.Time
	UpdatedAt time.Time
	ID        string
}

func (q *Queries) RefreshInvitation(ctx context.Context, arg RefreshInvitationParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, refreshInvitation,
		arg.TokenHash,
		arg.ExpiresAt,
		arg.UpdatedAt,
		arg.ID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const transitionInvitationStatus = `-- name: TransitionInvitationStatus :execrows
UPDATE invitations
SET status = ?1, updated_at = ?2
WHERE id = ?3 AND status = ?4
`

type TransitionInvitationStatusParams struct {
	ToStatus   string
	UpdatedAt  time.Time
	ID         string
	FromStatus string
}

func (q *Queries) TransitionInvitationStatus(ctx context.Context, arg TransitionInvitationStatusParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, transitionInvitationStatus,
		arg.ToStatus,
		arg.UpdatedAt,
		arg.ID,
		arg.FromStatus,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
