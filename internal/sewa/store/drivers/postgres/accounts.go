package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/mysewa/sewa/internal/sewa/domain"
)

const accountColumns = `id, email, name, role, password_hash, pin_hash, pin_expires_at, pin_attempts, email_verified, created_at, updated_at`

type accountsRepo struct {
	q querier
}

func scanAccount(row pgx.Row) (domain.Account, error) {
	var (
		a            domain.Account
		role         string
		passwordHash *string
		pinHash      *string
	)
	err := row.Scan(
		&a.ID,
		&a.Email,
		&a.Name,
		&role,
		&passwordHash,
		&pinHash,
		&a.PinExpiresAt,
		&a.PinAttempts,
		&a.EmailVerified,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	a.Role = domain.Role(role)
	a.PasswordHash = derefString(passwordHash)
	a.PinHash = derefString(pinHash)
	a.PinExpiresAt = utcPtr(a.PinExpiresAt)
	a.CreatedAt = a.CreatedAt.UTC()
	a.UpdatedAt = a.UpdatedAt.UTC()
	return a, nil
}

func (r *accountsRepo) GetAccountByID(ctx context.Context, id string) (domain.Account, error) {
	return scanAccount(r.q.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id))
}

func (r *accountsRepo) GetAccountByEmail(ctx context.Context, email string) (domain.Account, error) {
	return scanAccount(r.q.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE email = $1`, email))
}

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) error {
	const q = `
		INSERT INTO accounts (id, email, name, role, password_hash, email_verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.q.Exec(ctx, q,
		a.ID, a.Email, a.Name, string(a.Role), nullIfEmpty(a.PasswordHash),
		a.EmailVerified, a.CreatedAt.UTC(), a.UpdatedAt.UTC(),
	)
	if err != nil {
		return mapConstraint(err)
	}
	return nil
}

func (r *accountsRepo) SetPin(ctx context.Context, accountID, pinHash string, expiresAt, now time.Time) error {
	const q = `
		UPDATE accounts
		SET pin_hash = $1, pin_expires_at = $2, pin_attempts = 0, updated_at = $3
		WHERE id = $4
	`
	return mapTag(r.q.Exec(ctx, q, pinHash, expiresAt.UTC(), now.UTC(), accountID))
}

func (r *accountsRepo) IncrementPinAttempts(ctx context.Context, accountID, pinHash string, now time.Time) (int, error) {
	const q = `
		UPDATE accounts
		SET pin_attempts = pin_attempts + 1, updated_at = $1
		WHERE id = $2 AND pin_hash = $3
		RETURNING pin_attempts
	`
	var n int
	if err := r.q.QueryRow(ctx, q, now.UTC(), accountID, pinHash).Scan(&n); err != nil {
		return 0, mapNotFound(err)
	}
	return n, nil
}

func (r *accountsRepo) ClearPin(ctx context.Context, accountID, pinHash string, now time.Time) error {
	const q = `
		UPDATE accounts
		SET pin_hash = NULL, pin_expires_at = NULL, pin_attempts = 0, updated_at = $1
		WHERE id = $2 AND pin_hash = $3
	`
	return mapTag(r.q.Exec(ctx, q, now.UTC(), accountID, pinHash))
}

func (r *accountsRepo) ConsumePin(ctx context.Context, accountID, pinHash string, now time.Time) error {
	const q = `
		UPDATE accounts
		SET pin_hash = NULL, pin_expires_at = NULL, pin_attempts = 0, email_verified = TRUE, updated_at = $1
		WHERE id = $2 AND pin_hash = $3
	`
	return mapTag(r.q.Exec(ctx, q, now.UTC(), accountID, pinHash))
}

func (r *accountsRepo) SetVerifiedPassword(ctx context.Context, accountID, hash string, now time.Time) error {
	const q = `UPDATE accounts SET password_hash = $1, email_verified = TRUE, updated_at = $2 WHERE id = $3`
	return mapTag(r.q.Exec(ctx, q, nullIfEmpty(hash), now.UTC(), accountID))
}

func (r *accountsRepo) DeleteAccount(ctx context.Context, accountID string) error {
	return mapTag(r.q.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, accountID))
}

func (r *accountsRepo) ClearExpiredPins(ctx context.Context, now time.Time) (int64, error) {
	const q = `
		UPDATE accounts
		SET pin_hash = NULL, pin_expires_at = NULL, pin_attempts = 0, updated_at = $1
		WHERE pin_hash IS NOT NULL AND pin_expires_at < $1
	`
	tag, err := r.q.Exec(ctx, q, now.UTC())
	if err != nil {
		return 0, fmt.Errorf("clear expired pins: %w", err)
	}
	return tag.RowsAffected(), nil
}
