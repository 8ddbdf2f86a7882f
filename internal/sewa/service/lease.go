package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mysewa/sewa/internal/sewa/domain"
	"github.com/mysewa/sewa/internal/sewa/store"
	"github.com/mysewa/sewa/pkg/idx"
	"github.com/mysewa/sewa/pkg/slogx"
)

type AssignLeaseInput struct {
	PropertyID  string
	TenantEmail string
	Terms       domain.LeaseTerms
}

// LeaseService covers leases a landlord creates directly, without an
// invitation.
type LeaseService struct {
	Deps
}

// Assign leases a VACANT property to an existing tenant account.
func (s *LeaseService) Assign(ctx context.Context, landlordID string, in AssignLeaseInput) (domain.Lease, error) {
	if err := in.Terms.Validate(); err != nil {
		return domain.Lease{}, err
	}
	email := domain.NormalizeEmail(in.TenantEmail)
	if email == "" {
		return domain.Lease{}, domain.Validation("tenant email is required")
	}
	if in.PropertyID == "" {
		return domain.Lease{}, domain.Validation("property id is required")
	}

	prop, tenant, err := s.parties(ctx, in.PropertyID, email)
	if err != nil {
		return domain.Lease{}, err
	}
	if prop.LandlordID != landlordID {
		return domain.Lease{}, domain.ErrPropertyNotOwned
	}
	if prop.Status != domain.PropertyVacant {
		return domain.Lease{}, domain.ErrPropertyOccupied
	}

	now := s.now()
	terms := utcTerms(in.Terms)
	lease := domain.Lease{
		ID:            idx.NewAt(now).String(),
		PropertyID:    prop.ID,
		TenantID:      tenant.ID,
		LandlordID:    landlordID,
		Start:         terms.Start,
		End:           terms.End,
		MonthlyRent:   terms.MonthlyRent,
		DepositAmount: terms.DepositAmount,
		CreatedAt:     now,
	}

	wctx, cancel := s.writeCtx(ctx)
	defer cancel()

	err = s.Store.WithTx(wctx, func(tx store.Tx) error {
		err := tx.Properties().TransitionProperty(wctx, prop.ID, domain.PropertyVacant, domain.PropertyOccupied, now)
		if errors.Is(err, store.ErrNotFound) {
			return domain.ErrPropertyOccupied
		}
		if err != nil {
			return err
		}
		return tx.Leases().CreateLease(wctx, lease)
	})
	if err != nil {
		if errors.Is(err, domain.ErrPropertyOccupied) {
			return domain.Lease{}, domain.ErrPropertyOccupied
		}
		return domain.Lease{}, dependency(ctx, "failed to assign lease", err)
	}

	slogx.FromContext(ctx).Info("lease assigned",
		slog.String("lease_id", lease.ID),
		slog.String("property_id", prop.ID),
		slog.String("tenant_id", tenant.ID),
	)
	return lease, nil
}

func (s *LeaseService) parties(ctx context.Context, propertyID, tenantEmail string) (domain.Property, domain.Account, error) {
	rctx, cancel := s.readCtx(ctx)
	defer cancel()

	prop, err := s.Store.Properties().GetPropertyByID(rctx, propertyID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Property{}, domain.Account{}, domain.ErrPropertyNotFound
	}
	if err != nil {
		return domain.Property{}, domain.Account{}, dependency(ctx, "failed to load property", err)
	}

	tenant, err := s.Store.Accounts().GetAccountByEmail(rctx, tenantEmail)
	if errors.Is(err, store.ErrNotFound) || (err == nil && tenant.Role != domain.RoleTenant) {
		return domain.Property{}, domain.Account{}, domain.ErrTenantNotFound
	}
	if err != nil {
		return domain.Property{}, domain.Account{}, dependency(ctx, "failed to load tenant", err)
	}
	return prop, tenant, nil
}

func (s *LeaseService) ListForLandlord(ctx context.Context, landlordID string, page domain.Page) ([]domain.Lease, error) {
	rctx, cancel := s.readCtx(ctx)
	defer cancel()

	out, err := s.Store.Leases().ListLeasesByLandlord(rctx, landlordID, page.Normalize())
	if err != nil {
		return nil, dependency(ctx, "failed to list leases", err)
	}
	return out, nil
}

func (s *LeaseService) ListForTenant(ctx context.Context, tenantID string, page domain.Page) ([]domain.Lease, error) {
	rctx, cancel := s.readCtx(ctx)
	defer cancel()

	out, err := s.Store.Leases().ListLeasesByTenant(rctx, tenantID, page.Normalize())
	if err != nil {
		return nil, dependency(ctx, "failed to list leases", err)
	}
	return out, nil
}
