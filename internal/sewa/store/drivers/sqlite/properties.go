package sqlite

import (
	"context"
	"time"

	"github.com/mysewa/sewa/internal/sewa/domain"
	"github.com/mysewa/sewa/internal/sewa/store"
	"github.com/mysewa/sewa/internal/sewa/store/drivers/sqlite/gen"
)

type propertiesRepo struct {
	q *gen.Queries
}

func (r *propertiesRepo) CreateProperty(ctx context.Context, p domain.Property) error {
	err := r.q.CreateProperty(ctx, gen.CreatePropertyParams{
		ID:          p.ID,
		LandlordID:  p.LandlordID,
		Title:       p.Title,
		Address:     p.Address,
		MonthlyRent: p.MonthlyRent,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt.UTC(),
		UpdatedAt:   p.UpdatedAt.UTC(),
	})
	return mapConstraint(err)
}

func (r *propertiesRepo) GetPropertyByID(ctx context.Context, id string) (domain.Property, error) {
	row, err := r.q.GetPropertyByID(ctx, id)
	if err != nil {
		return domain.Property{}, mapNotFound(err)
	}
	return mapProperty(row), nil
}

func (r *propertiesRepo) SetPropertyStatus(
	ctx context.Context,
	id string,
	status domain.PropertyStatus,
	now time.Time,
) error {
	return mapRows(r.q.UpdatePropertyStatus(ctx, gen.UpdatePropertyStatusParams{
		Status:    string(status),
		UpdatedAt: now.UTC(),
		ID:        id,
	}))
}

func (r *propertiesRepo) TransitionProperty(
	ctx context.Context,
	id string,
	from, to domain.PropertyStatus,
	now time.Time,
) error {
	return mapRows(r.q.TransitionPropertyStatus(ctx, gen.TransitionPropertyStatusParams{
		ToStatus:   string(to),
		UpdatedAt:  now.UTC(),
		ID:         id,
		FromStatus: string(from),
	}))
}

var _ store.Properties = (*propertiesRepo)(nil)
