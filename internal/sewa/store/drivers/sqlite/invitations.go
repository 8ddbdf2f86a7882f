package sqlite

import (
	"context"
	"time"

	"github.com/mysewa/sewa/internal/sewa/domain"
	"github.com/mysewa/sewa/internal/sewa/store"
	"github.com/mysewa/sewa/internal/sewa/store/drivers/sqlite/gen"
)

type invitationsRepo struct {
	q *gen.Queries
}

func (r *invitationsRepo) CreateInvitation(ctx context.Context, inv domain.Invitation) error {
	err := r.q.CreateInvitation(ctx, gen.CreateInvitationParams{
		ID:            inv.ID,
		TokenHash:     inv.TokenHash,
		PropertyID:    inv.PropertyID,
		LandlordID:    inv.LandlordID,
		TenantEmail:   inv.TenantEmail,
		TenantName:    inv.TenantName,
		LeaseStart:    inv.Terms.Start.UTC(),
		LeaseEnd:      inv.Terms.End.UTC(),
		MonthlyRent:   inv.Terms.MonthlyRent,
		DepositAmount: mapOptionalInt64(inv.Terms.DepositAmount),
		Status:        string(inv.Status),
		ExpiresAt:     inv.ExpiresAt.UTC(),
		CreatedAt:     inv.CreatedAt.UTC(),
		UpdatedAt:     inv.UpdatedAt.UTC(),
	})
	return mapConstraint(err)
}

func (r *invitationsRepo) GetInvitationByID(ctx context.Context, id string) (domain.Invitation, error) {
	row, err := r.q.GetInvitationByID(ctx, id)
	if err != nil {
		return domain.Invitation{}, mapNotFound(err)
	}
	return mapInvitation(row), nil
}

func (r *invitationsRepo) GetInvitationByTokenHash(ctx context.Context, tokenHash string) (domain.Invitation, error) {
	row, err := r.q.GetInvitationByTokenHash(ctx, tokenHash)
	if err != nil {
		return domain.Invitation{}, mapNotFound(err)
	}
	return mapInvitation(row), nil
}

func (r *invitationsRepo) ListInvitationsByLandlord(
	ctx context.Context,
	landlordID string,
	page domain.Page,
) ([]domain.Invitation, error) {
	page = page.Normalize()
	rows, err := r.q.ListInvitationsByLandlord(ctx, gen.ListInvitationsByLandlordParams{
		LandlordID: landlordID,
		Limit:      int64(page.Limit),
		Offset:     int64(page.Offset),
	})
	if err != nil {
		return nil, err
	}

	out := make([]domain.Invitation, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapInvitation(row))
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
		return mapRows(r.q.AcceptPendingInvitation(ctx, gen.AcceptPendingInvitationParams{
			AcceptedAt: mapTimeNull(now),
			ID:         id,
		}))
	}

	n, err := r.q.TransitionInvitationStatus(ctx, gen.TransitionInvitationStatusParams{
		ToStatus:   string(to),
		UpdatedAt:  now.UTC(),
		ID:         id,
		FromStatus: string(from),
	})
	return mapRows(n, mapConstraint(err))
}

func (r *invitationsRepo) RefreshInvitation(
	ctx context.Context,
	id, tokenHash string,
	expiresAt, now time.Time,
) error {
	n, err := r.q.RefreshInvitation(ctx, gen.RefreshInvitationParams{
		TokenHash: tokenHash,
		ExpiresAt: expiresAt.UTC(),
		UpdatedAt: now.UTC(),
		ID:        id,
	})
	return mapRows(n, mapConstraint(err))
}

func (r *invitationsRepo) ExpireOverdueInvitations(ctx context.Context, now time.Time) (int64, error) {
	return r.q.ExpireOverdueInvitations(ctx, now.UTC())
}

var _ store.Invitations = (*invitationsRepo)(nil)
