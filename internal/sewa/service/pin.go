package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/mysewa/sewa/internal/sewa/domain"
	"github.com/mysewa/sewa/internal/sewa/store"
	"github.com/mysewa/sewa/pkg/cryptox"
	"github.com/mysewa/sewa/pkg/idx"
	"github.com/mysewa/sewa/pkg/metrics"
	"github.com/mysewa/sewa/pkg/slogx"
	"github.com/mysewa/sewa/pkg/validate"
)

// PinTTL is how long an emailed PIN stays valid.
const PinTTL = 10 * time.Minute

type PinRequest struct {
	Email string
	Role  string

	// Name is used only when a landlord account is created.
	Name string

	// Password is required for tenants who set one when accepting their
	// invitation.
	Password string
}

// PinService runs passwordless login: a PIN is emailed, then traded for a
// session.
type PinService struct {
	Deps
	Sessions *SessionService
}

// RequestPin issues a new PIN for the account behind req.Email, replacing
// any PIN still pending, and emails it. Unknown landlords are registered on
// the spot; unknown tenants must come in through an invitation.
//
// The PIN is stored before the email is sent and stays stored when sending
// fails, in which case ErrDeliveryFailed is returned.
func (s *PinService) RequestPin(ctx context.Context, req PinRequest) error {
	log := slogx.FromContext(ctx)

	email := domain.NormalizeEmail(req.Email)
	role := domain.Role(strings.ToUpper(strings.TrimSpace(req.Role)))
	switch {
	case email == "":
		return domain.Validation("email is required")
	case validate.Var(email, "email") != nil:
		return domain.Validation("email is not a valid address")
	case role == "":
		return domain.Validation("role is required")
	case !role.Valid():
		return domain.Validation("role must be LANDLORD or TENANT")
	}

	acc, err := s.resolveAccount(ctx, email, role, strings.TrimSpace(req.Name))
	if err != nil {
		metrics.PinRequests.WithLabelValues(string(role), "rejected").Inc()
		return err
	}

	if role == domain.RoleTenant && acc.HasPassword() {
		if req.Password == "" {
			metrics.PinRequests.WithLabelValues(string(role), "rejected").Inc()
			return domain.ErrPasswordRequired
		}
		if !verifySecret(ctx, req.Password, acc.PasswordHash) {
			log.Warn("pin request with wrong password", slog.String("account_id", acc.ID))
			metrics.PinRequests.WithLabelValues(string(role), "rejected").Inc()
			return domain.ErrInvalidCredentials
		}
	}

	pin, err := cryptox.GeneratePIN()
	if err != nil {
		return domain.ErrInternal.Wrap(err)
	}
	pinHash, err := s.Hasher.Hash(pin)
	if err != nil {
		return domain.ErrInternal.Wrap(err)
	}

	now := s.now()
	wctx, cancel := s.writeCtx(ctx)
	err = s.Store.Accounts().SetPin(wctx, acc.ID, pinHash, now.Add(PinTTL), now)
	cancel()
	if err != nil {
		metrics.PinRequests.WithLabelValues(string(role), "error").Inc()
		return dependency(ctx, "failed to store pin", err)
	}

	body, err := renderMail("pin.txt", pinMail{
		App:      AppName,
		Name:     acc.Name,
		PIN:      pin,
		ValidFor: "10 minutes",
	})
	if err != nil {
		return domain.ErrInternal.Wrap(err)
	}
	if err := s.send(ctx, acc.Email, "Your "+AppName+" login PIN", body); err != nil {
		log.Error("failed to send pin email",
			slog.String("account_id", acc.ID),
			slog.Any("error", err),
		)
		metrics.PinRequests.WithLabelValues(string(role), "delivery_failed").Inc()
		return domain.ErrDeliveryFailed.Wrap(err)
	}

	log.Info("pin issued", slog.String("account_id", acc.ID), slog.String("role", string(role)))
	metrics.PinRequests.WithLabelValues(string(role), "sent").Inc()
	return nil
}

func (s *PinService) resolveAccount(ctx context.Context, email string, role domain.Role, name string) (domain.Account, error) {
	rctx, cancel := s.readCtx(ctx)
	acc, err := s.Store.Accounts().GetAccountByEmail(rctx, email)
	cancel()

	switch {
	case err == nil:
		if acc.Role != role {
			return domain.Account{}, domain.ErrRoleMismatch
		}
		return acc, nil
	case !errors.Is(err, store.ErrNotFound):
		return domain.Account{}, dependency(ctx, "failed to load account", err)
	case role == domain.RoleTenant:
		return domain.Account{}, domain.ErrTenantNotRegistered
	}

	now := s.now()
	acc = domain.Account{
		ID:        idx.NewAt(now).String(),
		Email:     email,
		Name:      name,
		Role:      domain.RoleLandlord,
		CreatedAt: now,
		UpdatedAt: now,
	}

	wctx, cancel := s.writeCtx(ctx)
	defer cancel()
	err = s.Store.Accounts().CreateAccount(wctx, acc)
	if errors.Is(err, store.ErrAlreadyExists) {
		// Lost a race with a concurrent first request for the same email.
		return s.resolveExisting(ctx, email, role)
	}
	if err != nil {
		return domain.Account{}, dependency(ctx, "failed to create landlord account", err)
	}

	slogx.FromContext(ctx).Info("landlord account created", slog.String("account_id", acc.ID))
	return acc, nil
}

func (s *PinService) resolveExisting(ctx context.Context, email string, role domain.Role) (domain.Account, error) {
	rctx, cancel := s.readCtx(ctx)
	defer cancel()
	acc, err := s.Store.Accounts().GetAccountByEmail(rctx, email)
	if err != nil {
		return domain.Account{}, dependency(ctx, "failed to load account", err)
	}
	if acc.Role != role {
		return domain.Account{}, domain.ErrRoleMismatch
	}
	return acc, nil
}

// VerifyPin trades a pending PIN for a session. Each PIN is good for one
// successful verify; wrong guesses count towards MaxPinAttempts, after which
// the PIN is discarded.
func (s *PinService) VerifyPin(ctx context.Context, email, pin string) (Session, error) {
	log := slogx.FromContext(ctx)

	email = domain.NormalizeEmail(email)
	if email == "" {
		return Session{}, domain.Validation("email is required")
	}
	if !cryptox.IsPIN(pin) {
		return Session{}, domain.Validation("PIN must be exactly 6 digits")
	}

	rctx, cancel := s.readCtx(ctx)
	acc, err := s.Store.Accounts().GetAccountByEmail(rctx, email)
	cancel()
	if errors.Is(err, store.ErrNotFound) {
		metrics.PinVerifications.WithLabelValues("not_found").Inc()
		return Session{}, domain.ErrPinNotFound
	}
	if err != nil {
		metrics.PinVerifications.WithLabelValues("error").Inc()
		return Session{}, dependency(ctx, "failed to load account", err)
	}
	if !acc.HasPendingPin() {
		metrics.PinVerifications.WithLabelValues("not_found").Inc()
		return Session{}, domain.ErrPinNotFound
	}

	now := s.now()
	accounts := s.Store.Accounts()

	if acc.PinExpired(now) {
		s.clearPin(ctx, acc)
		metrics.PinVerifications.WithLabelValues("expired").Inc()
		return Session{}, domain.ErrPinExpired
	}
	if acc.PinAttempts >= domain.MaxPinAttempts {
		s.clearPin(ctx, acc)
		metrics.PinVerifications.WithLabelValues("locked").Inc()
		return Session{}, domain.ErrTooManyPinAttempts
	}

	if !verifySecret(ctx, pin, acc.PinHash) {
		wctx, cancel := s.writeCtx(ctx)
		attempts, err := accounts.IncrementPinAttempts(wctx, acc.ID, acc.PinHash, now)
		cancel()
		switch {
		case errors.Is(err, store.ErrNotFound):
			// Replaced or consumed since we read it; the guess was against a
			// PIN that no longer exists.
			metrics.PinVerifications.WithLabelValues("not_found").Inc()
			return Session{}, domain.ErrPinNotFound
		case err != nil:
			metrics.PinVerifications.WithLabelValues("error").Inc()
			return Session{}, dependency(ctx, "failed to record pin attempt", err)
		}

		log.Warn("wrong pin", slog.String("account_id", acc.ID), slog.Int("attempts", attempts))
		if attempts >= domain.MaxPinAttempts {
			s.clearPin(ctx, acc)
			metrics.PinVerifications.WithLabelValues("locked").Inc()
			return Session{}, domain.ErrTooManyPinAttempts
		}
		metrics.PinVerifications.WithLabelValues("invalid").Inc()
		return Session{}, domain.ErrPinInvalid
	}

	wctx, cancel := s.writeCtx(ctx)
	err = accounts.ConsumePin(wctx, acc.ID, acc.PinHash, now)
	cancel()
	if errors.Is(err, store.ErrNotFound) {
		metrics.PinVerifications.WithLabelValues("not_found").Inc()
		return Session{}, domain.ErrPinNotFound
	}
	if err != nil {
		metrics.PinVerifications.WithLabelValues("error").Inc()
		return Session{}, dependency(ctx, "failed to consume pin", err)
	}

	acc.PinHash, acc.PinExpiresAt, acc.PinAttempts = "", nil, 0
	acc.EmailVerified = true
	acc.UpdatedAt = now

	sess, err := s.Sessions.Issue(acc)
	if err != nil {
		log.Error("failed to sign session", slog.Any("error", err))
		metrics.PinVerifications.WithLabelValues("error").Inc()
		return Session{}, err
	}

	log.Info("pin verified", slog.String("account_id", acc.ID))
	metrics.PinVerifications.WithLabelValues("success").Inc()
	return sess, nil
}

// clearPin drops the PIN acc was read with. Failure is only logged.
func (s *PinService) clearPin(ctx context.Context, acc domain.Account) {
	wctx, cancel := s.writeCtx(ctx)
	defer cancel()
	err := s.Store.Accounts().ClearPin(wctx, acc.ID, acc.PinHash, s.now())
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		slogx.FromContext(ctx).Error("failed to clear pin",
			slog.String("account_id", acc.ID),
			slog.Any("error", err),
		)
	}
}
