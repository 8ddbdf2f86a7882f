package gen

import (
	"context"
	"time"
)

const createProperty = `-- name: CreateProperty :exec
INSERT INTO properties (id, landlord_id, title, address, monthly_rent, status, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`

type CreatePropertyParams struct {
	ID          string
	LandlordID  string
	Title       string
	Address     string
	MonthlyRent int64
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (q *Queries) CreateProperty(ctx context.Context, arg CreatePropertyParams) error {
	_, err := q.db.ExecContext(ctx, createProperty,
		arg.ID,
		arg.LandlordID,
		arg.Title,
		arg.Address,
		arg.MonthlyRent,
		arg.Status,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const getPropertyByID = `-- name: GetPropertyByID :one
SELECT id, landlord_id, title, address, monthly_rent, status, created_at, updated_at FROM properties WHERE id = ?
`

func (q *Queries) GetPropertyByID(ctx context.Context, id string) (Property, error) {
	row := q.db.QueryRowContext(ctx, getPropertyByID, id)
	var i Property
	err := row.Scan(
		&i.ID,
		&i.LandlordID,
		&i.Title,
		&i.Address,
		&i.MonthlyRent,
		&i.Status,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const transitionPropertyStatus = `-- name: TransitionPropertyStatus :execrows
UPDATE properties
SET status = ?1, updated_at = ?2
WHERE id = ?3 AND status = ?4
`

type TransitionPropertyStatusParams struct {
	ToStatus   string
	UpdatedAt  time.Time
	ID         string
	FromStatus string
}

func (q *Queries) TransitionPropertyStatus(ctx context.Context, arg TransitionPropertyStatusParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, transitionPropertyStatus,
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

const updatePropertyStatus = `-- name: UpdatePropertyStatus :execrows
UPDATE properties SET status = ?, updated_at = ? WHERE id = ?
`

type UpdatePropertyStatusParams struct {
	Status    string
	UpdatedAt time.Time
	ID        string
}

func (q *Queries) UpdatePropertyStatus(ctx context.Context, arg UpdatePropertyStatusParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updatePropertyStatus, arg.Status, arg.UpdatedAt, arg.ID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
