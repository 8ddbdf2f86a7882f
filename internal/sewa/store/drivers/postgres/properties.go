package postgres

import (
	"context"
	"time"

	"github.com/mysewa/sewa/internal/sewa/domain"
)

type propertiesRepo struct {
	q querier
}

func (r *propertiesRepo) CreateProperty(ctx context.Context, p domain.Property) error {
	const q = `
		INSERT INTO properties (id, landlord_id, title, address, monthly_rent, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.q.Exec(ctx, q,
		p.ID, p.LandlordID, p.Title, p.Address, p.MonthlyRent, string(p.Status),
		p.CreatedAt.UTC(), p.UpdatedAt.UTC(),
	)
	if err != nil {
		return mapConstraint(err)
	}
	return nil
}

func (r *propertiesRepo) GetPropertyByID(ctx context.Context, id string) (domain.Property, error) {
	const q = `
		SELECT id, landlord_id, title, address, monthly_rent, status, created_at, updated_at
		FROM properties WHERE id = $1
	`
	var (
		p      domain.Property
		status string
	)
	err := r.q.QueryRow(ctx, q, id).Scan(
		&p.ID, &p.LandlordID, &p.Title, &p.Address, &p.MonthlyRent, &status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return domain.Property{}, mapNotFound(err)
	}
	p.Status = domain.PropertyStatus(status)
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return p, nil
}

func (r *propertiesRepo) SetPropertyStatus(ctx context.Context, id string, status domain.PropertyStatus, now time.Time) error {
	const q = `UPDATE properties SET status = $1, updated_at = $2 WHERE id = $3`
	return mapTag(r.q.Exec(ctx, q, string(status), now.UTC(), id))
}

func (r *propertiesRepo) TransitionProperty(
	ctx context.Context,
	id string,
	from, to domain.PropertyStatus,
	now time.Time,
) error {
	const q = `UPDATE properties SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`
	return mapTag(r.q.Exec(ctx, q, string(to), now.UTC(), id, string(from)))
}
