package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mysewa/sewa/internal/sewa/domain"
	"github.com/mysewa/sewa/pkg/idx"
	"github.com/mysewa/sewa/pkg/slogx"
)

type RegisterPropertyInput struct {
	Title       string
	Address     string
	MonthlyRent int64
}

// PropertyService registers the properties invitations and leases point at.
// Listing and search live elsewhere.
type PropertyService struct {
	Deps
}

// Register adds a VACANT property owned by landlordID.
func (s *PropertyService) Register(ctx context.Context, landlordID string, in RegisterPropertyInput) (domain.Property, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return domain.Property{}, domain.Validation("title is required")
	}
	if in.MonthlyRent <= 0 {
		return domain.Property{}, domain.Validation("monthly rent must be greater than zero")
	}

	now := s.now()
	p := domain.Property{
		ID:          idx.NewAt(now).String(),
		LandlordID:  landlordID,
		Title:       title,
		Address:     strings.TrimSpace(in.Address),
		MonthlyRent: in.MonthlyRent,
		Status:      domain.PropertyVacant,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	wctx, cancel := s.writeCtx(ctx)
	defer cancel()
	if err := s.Store.Properties().CreateProperty(wctx, p); err != nil {
		return domain.Property{}, dependency(ctx, "failed to register property", err)
	}

	slogx.FromContext(ctx).Info("property registered", slog.String("property_id", p.ID))
	return p, nil
}
