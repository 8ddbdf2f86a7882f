package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/mysewa/sewa/internal/sewa/domain"
	"github.com/mysewa/sewa/internal/sewa/store"
)

const invitationColumns = `id, token_hash, property_id, landlord_id, tenant_email, tenant_name,
	lease_start, lease_end, monthly_rent, deposit_amount, status, expires_at, created_at, updated_at, accepted_at`

type invitationsRepo struct {
	q querier
}

func scanInvitation(row pgx.Row) (domain.Invitation, error) {
	var (
		inv    domain.Invitation
		status string
	)
	err := row.Scan(
		&inv.ID,
		&inv.TokenHash,
		&inv.PropertyID,
		&inv.LandlordID,
		&inv.TenantEmail,
		&inv.TenantName,
		&inv.Terms.Start,
		&inv.Terms.End,
		&inv.Terms.MonthlyRent,
		&inv.Terms.DepositAmount,
		&status,
		&inv.ExpiresAt,
		&inv.CreatedAt,
		&inv.UpdatedAt,
		&inv.AcceptedAt,
	)
	if err != nil {
		return domain.Invitation{}, mapNotFound(err)
	}
	inv.Status = domain.InvitationStatus(status)
	inv.Terms.Start = inv.Terms.Start.UTC()
	inv.Terms.End = inv.Terms.End.UTC()
	inv.ExpiresAt = inv.ExpiresAt.UTC()
	inv.CreatedAt = inv.CreatedAt.UTC()
	inv.UpdatedAt = inv.UpdatedAt.UTC()
	inv.AcceptedAt = utcPtr(inv.AcceptedAt)
	return inv, nil
}

func (r *invitationsRepo) CreateInvitation(ctx context.Context, inv domain.Invitation) error {
	const q = `
		INSERT INTO invitations (
			id, token_hash, property_id, landlord_id, tenant_email, tenant_name,
			lease_start, lease_end, monthly_rent, deposit_amount,
			status, expires_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := r.q.Exec(ctx, q,
		inv.ID, inv.TokenHash, inv.PropertyID, inv.LandlordID, inv.TenantEmail, inv.TenantName,
		inv.Terms.Start.UTC(), inv.Terms.End.UTC(), inv.Terms.MonthlyRent, inv.Terms.DepositAmount,
		string(inv.Status), inv.ExpiresAt.UTC(), inv.CreatedAt.UTC(), inv.UpdatedAt.UTC(),
	)
	if err != nil {
		return mapConstraint(err)
	}
	return nil
}

func (r *invitationsRepo) GetInvitationByID(ctx context.Context, id string) (domain.Invitation, error) {
	return scanInvitation(r.q.QueryRow(ctx, `SELECT `+invitationColumns+` FROM invitations WHERE id = $1`, id))
}

func (r *invitationsRepo) GetInvitationByTokenHash(ctx context.Context, tokenHash string) (domain.Invitation, error) {
	return scanInvitation(r.q.QueryRow(ctx, `SELECT `+invitationColumns+` FROM invitations WHERE token_hash = $1`, tokenHash))
}

func (r *invitationsRepo) ListInvitationsByLandlord(
	ctx context.Context,
	landlordID string,
	page domain.Page,
) ([]domain.Invitation, error) {
	page = page.Normalize()
	rows, err := r.q.Query(ctx, `
		SELECT `+invitationColumns+` FROM invitations
		WHERE landlord_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`, landlordID, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Invitation, 0, page.Limit)
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}
	return out, nil
}

func (r *invitationsRepo) TransitionInvitation(
	ctx context.Context,
	id string,
	from, to domain.InvitationStatus,
	now time.Time,
) error {
	if to == domain.InvitationAccepted {
		if from != domain.InvitationPending {
			return store.ErrNotFound
		}
		const q = `
			UPDATE invitations
			SET status = 'ACCEPTED', accepted_at = $1, updated_at = $1
			WHERE id = $2 AND status = 'PENDING'
		`
		return mapTag(r.q.Exec(ctx, q, now.UTC(), id))
	}

	const q = `
		UPDATE invitations
		SET status = $1, updated_at = $2
		WHERE id = $3 AND status = $4
	`
	return mapTag(r.q.Exec(ctx, q, string(to), now.UTC(), id, string(from)))
}

func (r *invitationsRepo) RefreshInvitation(
	ctx context.Context,
	id, tokenHash string,
	expiresAt, now time.Time,
) error {
	const q = `
		UPDATE invitations
		SET token_hash = $1, expires_at = $2, status = 'PENDING', updated_at = $3
		WHERE id = $4 AND status <> 'ACCEPTED'
	`
	return mapTag(r.q.Exec(ctx, q, tokenHash, expiresAt.UTC(), now.UTC(), id))
}

func (r *invitationsRepo) ExpireOverdueInvitations(ctx context.Context, now time.Time) (int64, error) {
	const q = `
		UPDATE invitations
		SET status = 'EXPIRED', updated_at = $1
		WHERE status = 'PENDING' AND expires_at < $1
	`
	tag, err := r.q.Exec(ctx, q, now.UTC())
	if err != nil {
		return 0, fmt.Errorf("expire invitations: %w", err)
	}
	return tag.RowsAffected(), nil
}
