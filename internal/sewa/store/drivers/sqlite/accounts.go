package sqlite

import (
	"context"
	"time"

	"github.com/mysewa/sewa/internal/sewa/domain"
	"github.com/mysewa/sewa/internal/sewa/store"
	"github.com/mysewa/sewa/internal/sewa/store/drivers/sqlite/gen"
)

type accountsRepo struct {
	q *gen.Queries
}

func (r *accountsRepo) GetAccountByID(ctx context.Context, id string) (domain.Account, error) {
	row, err := r.q.GetAccountByID(ctx, id)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return mapAccount(row), nil
}

func (r *accountsRepo) GetAccountByEmail(ctx context.Context, email string) (domain.Account, error) {
	row, err := r.q.GetAccountByEmail(ctx, email)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return mapAccount(row), nil
}

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) error {
	err := r.q.CreateAccount(ctx, gen.CreateAccountParams{
		ID:            a.ID,
		Email:         a.Email,
		Name:          a.Name,
		Role:          string(a.Role),
		PasswordHash:  mapStringNull(a.PasswordHash),
		EmailVerified: a.EmailVerified,
		CreatedAt:     a.CreatedAt.UTC(),
		UpdatedAt:     a.UpdatedAt.UTC(),
	})
	return mapConstraint(err)
}

func (r *accountsRepo) SetPin(
	ctx context.Context,
	accountID, pinHash string,
	expiresAt, now time.Time,
) error {
	return mapRows(r.q.SetAccountPin(ctx, gen.SetAccountPinParams{
		PinHash:      mapStringNull(pinHash),
		PinExpiresAt: mapTimeNull(expiresAt),
		UpdatedAt:    now.UTC(),
		ID:           accountID,
	}))
}

func (r *accountsRepo) IncrementPinAttempts(
	ctx context.Context,
	accountID, pinHash string,
	now time.Time,
) (int, error) {
	n, err := r.q.IncrementAccountPinAttempts(ctx, gen.IncrementAccountPinAttemptsParams{
		UpdatedAt: now.UTC(),
		ID:        accountID,
		PinHash:   mapStringNull(pinHash),
	})
	if err != nil {
		return 0, mapNotFound(err)
	}
	return int(n), nil
}

func (r *accountsRepo) ClearPin(ctx context.Context, accountID, pinHash string, now time.Time) error {
	return mapRows(r.q.ClearAccountPin(ctx, gen.ClearAccountPinParams{
		UpdatedAt: now.UTC(),
		ID:        accountID,
		PinHash:   mapStringNull(pinHash),
	}))
}

func (r *accountsRepo) ConsumePin(ctx context.Context, accountID, pinHash string, now time.Time) error {
	return mapRows(r.q.ConsumeAccountPin(ctx, gen.ConsumeAccountPinParams{
		UpdatedAt: now.UTC(),
		ID:        accountID,
		PinHash:   mapStringNull(pinHash),
	}))
}

func (r *accountsRepo) SetVerifiedPassword(ctx context.Context, accountID, hash string, now time.Time) error {
	return mapRows(r.q.SetAccountVerifiedPassword(ctx, gen.SetAccountVerifiedPasswordParams{
		PasswordHash: mapStringNull(hash),
		UpdatedAt:    now.UTC(),
		ID:           accountID,
	}))
}

func (r *accountsRepo) DeleteAccount(ctx context.Context, accountID string) error {
	return mapRows(r.q.DeleteAccount(ctx, accountID))
}

func (r *accountsRepo) ClearExpiredPins(ctx context.Context, now time.Time) (int64, error) {
	return r.q.ClearExpiredAccountPins(ctx, gen.ClearExpiredAccountPinsParams{
		UpdatedAt:    now.UTC(),
		PinExpiresAt: mapTimeNull(now),
	})
}

var _ store.Accounts = (*accountsRepo)(nil)
