package gen

import (
	"context"
	"database/sql"
	"time"
)

const clearAccountPin = `-- name: ClearAccountPin :execrows
UPDATE accounts
SET pin_hash = NULL, pin_expires_at = NULL, pin_attempts = 0, updated_at = ?
WHERE id = ? AND pin_hash = ?
`

type ClearAccountPinParams struct {
	UpdatedAt time.Time
	ID        string
	PinHash   sql.NullString
}

func (q *Queries) ClearAccountPin(ctx context.Context, arg ClearAccountPinParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, clearAccountPin, arg.UpdatedAt, arg.ID, arg.PinHash)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const clearExpiredAccountPins = `-- name: ClearExpiredAccountPins :execrows
UPDATE accounts
SET pin_hash = NULL, pin_expires_at = NULL, pin_attempts = 0, updated_at = ?
WHERE pin_hash IS NOT NULL AND pin_expires_at < ?
`

type ClearExpiredAccountPinsParams struct {
	UpdatedAt    time.Time
	PinExpiresAt sql.NullTime
}

func (q *Queries) ClearExpiredAccountPins(ctx context.Context, arg ClearExpiredAccountPinsParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, clearExpiredAccountPins, arg.UpdatedAt, arg.PinExpiresAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const consumeAccountPin = `-- name: ConsumeAccountPin :execrows
UPDATE accounts
SET pin_hash = NULL, pin_expires_at = NULL, pin_attempts = 0, email_verified = 1, updated_at = ?
WHERE id = ? AND pin_hash = ?
`

type ConsumeAccountPinParams struct {
	UpdatedAt time.Time
	ID        string
	PinHash   sql.NullString
}

func (q *Queries) ConsumeAccountPin(ctx context.Context, arg ConsumeAccountPinParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, consumeAccountPin, arg.UpdatedAt, arg.ID, arg.PinHash)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const createAccount = `-- name: CreateAccount :exec
INSERT INTO accounts (id, email, name, role, password_hash, email_verified, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`

type CreateAccountParams struct {
	ID            string
	Email         string
	Name          string
	Role          string
	PasswordHash  sql.NullString
	EmailVerified bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (q *Queries) CreateAccount(ctx context.Context, arg CreateAccountParams) error {
	_, err := q.db.ExecContext(ctx, createAccount,
		arg.ID,
		arg.Email,
		arg.Name,
		arg.Role,
		arg.PasswordHash,
		arg.EmailVerified,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const deleteAccount = `-- name: DeleteAccount :execrows
DELETE FROM accounts WHERE id = ?
`

func (q *Queries) DeleteAccount(ctx context.Context, id string) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteAccount, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const getAccountByEmail = `-- name: GetAccountByEmail :one
SELECT id, email, name, role, password_hash, pin_hash, pin_expires_at, pin_attempts, email_verified, created_at, updated_at FROM accounts WHERE email = ?
`

func (q *Queries) GetAccountByEmail(ctx context.Context, email string) (Account, error) {
	row := q.db.QueryRowContext(ctx, getAccountByEmail, email)
	var i Account
	err := row.Scan(
		&i.ID,
		&i.Email,
		&i.Name,
		&i.Role,
		&i.PasswordHash,
		&i.PinHash,
		&i.PinExpiresAt,
		&i.PinAttempts,
		&i.EmailVerified,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getAccountByID = `-- name: GetAccountByID :one
SELECT id, email, name, role, password_hash, pin_hash, pin_expires_at, pin_attempts, email_verified, created_at, updated_at FROM accounts WHERE id = ?
`

func (q *Queries) GetAccountByID(ctx context.Context, id string) (Account, error) {
	row := q.db.QueryRowContext(ctx, getAccountByID, id)
	var i Account
	err := row.Scan(
		&i.ID,
		&i.Email,
		&i.Name,
		&i.Role,
		&i.PasswordHash,
		&i.PinHash,
		&i.PinExpiresAt,
		&i.PinAttempts,
		&i.EmailVerified,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const incrementAccountPinAttempts = `-- name: IncrementAccountPinAttempts :one
UPDATE accounts
SET pin_attempts = pin_attempts + 1, updated_at = ?
WHERE id = ? AND pin_hash = ?
RETURNING pin_attempts
`

type IncrementAccountPinAttemptsParams struct {
	UpdatedAt time.Time
	ID        string
	PinHash   sql.NullString
}

func (q *Queries) IncrementAccountPinAttempts(ctx context.Context, arg IncrementAccountPinAttemptsParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, incrementAccountPinAttempts, arg.UpdatedAt, arg.ID, arg.PinHash)
	var pin_attempts int64
	err := row.Scan(&pin_attempts)
	return pin_attempts, err
}

const setAccountPin = `-- name: SetAccountPin :execrows
UPDATE accounts
SET pin_hash = ?, pin_expires_at = ?, pin_attempts = 0, updated_at = ?
WHERE id = ?
`

type SetAccountPinParams struct {
	PinHash      sql.NullString
	PinExpiresAt sql.NullTime
	UpdatedAt    time.Time
	ID           string
}

func (q *Queries) SetAccountPin(ctx context.Context, arg SetAccountPinParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, setAccountPin,
		arg.PinHash,
		arg.PinExpiresAt,
		arg.UpdatedAt,
		arg.ID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const setAccountVerifiedPassword = `-- name: SetAccountVerifiedPassword :execrows
UPDATE accounts SET password_hash = ?, email_verified = 1, updated_at = ? WHERE id = ?
`

type SetAccountVerifiedPasswordParams struct {
	PasswordHash sql.NullString
	UpdatedAt    time.Time
	ID           string
}

func (q *Queries) SetAccountVerifiedPassword(ctx context.Context, arg SetAccountVerifiedPasswordParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, setAccountVerifiedPassword, arg.PasswordHash, arg.UpdatedAt, arg.ID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
