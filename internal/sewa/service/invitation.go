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

const (
	// MinPasswordLength applies to passwords set when accepting an invitation.
	MinPasswordLength = 8

	maxTokenAttempts = 3
)

type CreateInvitationInput struct {
	PropertyID  string
	TenantEmail string
	TenantName  string
	Terms       domain.LeaseTerms
}

// CreatedInvitation is returned from Create and Resend, the only places the
// raw token is ever visible.
type CreatedInvitation struct {
	Invitation      domain.Invitation
	Token           string
	URL             string
	ExistingAccount bool
}

// InvitationDetails is what the invitee sees when opening the link.
type InvitationDetails struct {
	Invitation      domain.Invitation
	Property        domain.Property
	LandlordName    string
	LandlordEmail   string
	ExistingAccount bool
}

// LandlordInvitation is one row of the landlord's invitation list.
type LandlordInvitation struct {
	Invitation domain.Invitation
	Property   domain.Property
}

type AcceptResult struct {
	Invitation     domain.Invitation
	AccountID      string
	LeaseID        string
	AccountCreated bool
}

type InvitationService struct {
	Deps

	// FrontendBaseURL prefixes the link sent to invitees.
	FrontendBaseURL string
}

// InvitationURL is the link an invitee follows to accept.
func (s *InvitationService) InvitationURL(token string) string {
	return strings.TrimRight(s.FrontendBaseURL, "/") + "/invite/" + token
}

// Create records a PENDING invitation for in.TenantEmail to rent one of the
// landlord's properties and emails the link. Email failure is logged and
// does not undo the invitation.
func (s *InvitationService) Create(ctx context.Context, landlordID string, in CreateInvitationInput) (CreatedInvitation, error) {
	log := slogx.FromContext(ctx)

	email := domain.NormalizeEmail(in.TenantEmail)
	if email == "" {
		return CreatedInvitation{}, domain.Validation("tenant email is required")
	}
	if validate.Var(email, "email") != nil {
		return CreatedInvitation{}, domain.Validation("tenant email is not a valid address")
	}
	if err := in.Terms.Validate(); err != nil {
		return CreatedInvitation{}, err
	}

	prop, err := s.ownedProperty(ctx, landlordID, in.PropertyID)
	if err != nil {
		return CreatedInvitation{}, err
	}

	existing, err := s.tenantAccount(ctx, email)
	if err != nil {
		return CreatedInvitation{}, err
	}

	now := s.now()
	inv := domain.Invitation{
		ID:          idx.NewAt(now).String(),
		PropertyID:  prop.ID,
		LandlordID:  landlordID,
		TenantEmail: email,
		TenantName:  strings.TrimSpace(in.TenantName),
		Terms:       utcTerms(in.Terms),
		Status:      domain.InvitationPending,
		ExpiresAt:   now.Add(domain.InvitationTTL),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	var token string
	for attempt := 1; ; attempt++ {
		token, err = cryptox.GenerateToken(cryptox.TokenSize256)
		if err != nil {
			return CreatedInvitation{}, domain.ErrInternal.Wrap(err)
		}
		inv.TokenHash = cryptox.FingerprintToken(token)

		wctx, cancel := s.writeCtx(ctx)
		err = s.Store.Invitations().CreateInvitation(wctx, inv)
		cancel()
		if err == nil {
			break
		}
		if !errors.Is(err, store.ErrAlreadyExists) {
			return CreatedInvitation{}, dependency(ctx, "failed to create invitation", err)
		}
		clash, cerr := s.tokenTaken(ctx, inv.TokenHash)
		if cerr != nil {
			return CreatedInvitation{}, cerr
		}
		if !clash {
			log.Info("duplicate pending invitation",
				slog.String("property_id", prop.ID),
				slog.String("tenant_email", email),
			)
			return CreatedInvitation{}, domain.ErrDuplicatePendingInvitation
		}
		if attempt == maxTokenAttempts {
			return CreatedInvitation{}, domain.ErrInternal.Wrap(errors.New("invitation token collided repeatedly"))
		}
	}

	log.Info("invitation created",
		slog.String("invitation_id", inv.ID),
		slog.String("property_id", prop.ID),
		slog.Bool("existing_account", existing),
	)
	metrics.InvitationTransitions.WithLabelValues("created").Inc()

	out := CreatedInvitation{
		Invitation:      inv,
		Token:           token,
		URL:             s.InvitationURL(token),
		ExistingAccount: existing,
	}
	s.notify(ctx, out, prop)
	return out, nil
}

// GetByToken resolves a PENDING invitation from its link token. A PENDING
// invitation found past its deadline is marked EXPIRED here.
func (s *InvitationService) GetByToken(ctx context.Context, token string) (InvitationDetails, error) {
	inv, err := s.pendingByToken(ctx, token)
	if err != nil {
		return InvitationDetails{}, err
	}

	rctx, cancel := s.readCtx(ctx)
	defer cancel()

	prop, err := s.Store.Properties().GetPropertyByID(rctx, inv.PropertyID)
	if err != nil {
		return InvitationDetails{}, dependency(ctx, "failed to load invited property", err)
	}
	landlord, err := s.Store.Accounts().GetAccountByID(rctx, inv.LandlordID)
	if err != nil {
		return InvitationDetails{}, dependency(ctx, "failed to load inviting landlord", err)
	}

	_, err = s.Store.Accounts().GetAccountByEmail(rctx, inv.TenantEmail)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return InvitationDetails{}, dependency(ctx, "failed to look up invitee", err)
	}

	return InvitationDetails{
		Invitation:      inv,
		Property:        prop,
		LandlordName:    landlord.Name,
		LandlordEmail:   landlord.Email,
		ExistingAccount: err == nil,
	}, nil
}

// Accept turns the invitation into a lease. In one transaction it flips
// the invitation to ACCEPTED, creates or links the tenant account, creates
// the lease and marks the property OCCUPIED. The status flip comes first so
// a concurrent accept of the same token finds nothing to flip.
//
// A new account needs a password. An existing account without a password
// needs one too, and gets it set and its email verified; one with a
// password is linked as is and any supplied password is ignored.
func (s *InvitationService) Accept(ctx context.Context, token, password string) (AcceptResult, error) {
	log := slogx.FromContext(ctx)

	inv, err := s.pendingByToken(ctx, token)
	if err != nil {
		return AcceptResult{}, err
	}

	now := s.now()
	res := AcceptResult{Invitation: inv}

	wctx, cancel := s.writeCtx(ctx)
	defer cancel()

	err = s.Store.WithTx(wctx, func(tx store.Tx) error {
		err := tx.Invitations().TransitionInvitation(wctx, inv.ID, domain.InvitationPending, domain.InvitationAccepted, now)
		if errors.Is(err, store.ErrNotFound) {
			return s.currentStatusConflict(wctx, tx, inv.ID)
		}
		if err != nil {
			return dependency(ctx, "failed to accept invitation", err)
		}

		acc, err := tx.Accounts().GetAccountByEmail(wctx, inv.TenantEmail)
		switch {
		case errors.Is(err, store.ErrNotFound):
			passwordHash, err := s.hashNewPassword(password)
			if err != nil {
				return err
			}
			acc = domain.Account{
				ID:            idx.NewAt(now).String(),
				Email:         inv.TenantEmail,
				Name:          inv.TenantName,
				Role:          domain.RoleTenant,
				PasswordHash:  passwordHash,
				EmailVerified: true,
				CreatedAt:     now,
				UpdatedAt:     now,
			}
			if err := tx.Accounts().CreateAccount(wctx, acc); err != nil {
				return dependency(ctx, "failed to create tenant account", err)
			}
			res.AccountCreated = true
		case err != nil:
			return dependency(ctx, "failed to load invitee account", err)
		case acc.Role != domain.RoleTenant:
			return domain.ErrRoleMismatch
		case !acc.HasPassword():
			passwordHash, err := s.hashNewPassword(password)
			if err != nil {
				return err
			}
			if err := tx.Accounts().SetVerifiedPassword(wctx, acc.ID, passwordHash, now); err != nil {
				return dependency(ctx, "failed to set tenant password", err)
			}
		}
		res.AccountID = acc.ID

		lease := domain.Lease{
			ID:            idx.NewAt(now).String(),
			PropertyID:    inv.PropertyID,
			TenantID:      acc.ID,
			LandlordID:    inv.LandlordID,
			Start:         inv.Terms.Start,
			End:           inv.Terms.End,
			MonthlyRent:   inv.Terms.MonthlyRent,
			DepositAmount: inv.Terms.DepositAmount,
			InvitationID:  inv.ID,
			CreatedAt:     now,
		}
		err = tx.Leases().CreateLease(wctx, lease)
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.ErrInvitationAccepted
		}
		if err != nil {
			return dependency(ctx, "failed to create lease", err)
		}
		res.LeaseID = lease.ID

		if err := tx.Properties().SetPropertyStatus(wctx, inv.PropertyID, domain.PropertyOccupied, now); err != nil {
			return dependency(ctx, "failed to occupy property", err)
		}
		return nil
	})
	if err != nil {
		var de *domain.Error
		if !errors.As(err, &de) {
			err = dependency(ctx, "accept transaction failed", err)
		}
		return AcceptResult{}, err
	}

	res.Invitation.Status = domain.InvitationAccepted
	res.Invitation.AcceptedAt = &now
	res.Invitation.UpdatedAt = now

	log.Info("invitation accepted",
		slog.String("invitation_id", inv.ID),
		slog.String("account_id", res.AccountID),
		slog.String("lease_id", res.LeaseID),
		slog.Bool("account_created", res.AccountCreated),
	)
	metrics.InvitationTransitions.WithLabelValues("accepted").Inc()
	return res, nil
}

// hashNewPassword checks and hashes the password an invitee sets on accept.
func (s *InvitationService) hashNewPassword(password string) (string, error) {
	if password == "" {
		return "", domain.ErrPasswordRequired
	}
	if len(password) < MinPasswordLength {
		return "", domain.Validation("password must be at least 8 characters")
	}
	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return "", domain.ErrInternal.Wrap(err)
	}
	return hash, nil
}

// Cancel withdraws a PENDING invitation.
func (s *InvitationService) Cancel(ctx context.Context, landlordID, invitationID string) (domain.Invitation, error) {
	inv, err := s.ownedInvitation(ctx, landlordID, invitationID)
	if err != nil {
		return domain.Invitation{}, err
	}
	if inv.Status != domain.InvitationPending {
		return domain.Invitation{}, domain.StatusConflict(inv.Status)
	}

	now := s.now()
	wctx, cancel := s.writeCtx(ctx)
	defer cancel()

	err = s.Store.Invitations().TransitionInvitation(wctx, inv.ID, domain.InvitationPending, domain.InvitationCancelled, now)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Invitation{}, s.currentStatusConflict(wctx, s.Store, inv.ID)
	}
	if err != nil {
		return domain.Invitation{}, dependency(ctx, "failed to cancel invitation", err)
	}

	inv.Status = domain.InvitationCancelled
	inv.UpdatedAt = now

	slogx.FromContext(ctx).Info("invitation cancelled", slog.String("invitation_id", inv.ID))
	metrics.InvitationTransitions.WithLabelValues("cancelled").Inc()
	return inv, nil
}

// Resend issues a fresh token and deadline and puts the invitation back to
// PENDING. Expired and cancelled invitations are revived; accepted ones
// are refused.
func (s *InvitationService) Resend(ctx context.Context, landlordID, invitationID string) (CreatedInvitation, error) {
	inv, err := s.ownedInvitation(ctx, landlordID, invitationID)
	if err != nil {
		return CreatedInvitation{}, err
	}
	if inv.Status == domain.InvitationAccepted {
		return CreatedInvitation{}, domain.ErrInvitationAccepted
	}

	existing, err := s.tenantAccount(ctx, inv.TenantEmail)
	if err != nil {
		return CreatedInvitation{}, err
	}

	now := s.now()
	expiresAt := now.Add(domain.InvitationTTL)

	var token string
	for attempt := 1; ; attempt++ {
		token, err = cryptox.GenerateToken(cryptox.TokenSize256)
		if err != nil {
			return CreatedInvitation{}, domain.ErrInternal.Wrap(err)
		}
		tokenHash := cryptox.FingerprintToken(token)

		wctx, cancel := s.writeCtx(ctx)
		err = s.Store.Invitations().RefreshInvitation(wctx, inv.ID, tokenHash, expiresAt, now)
		cancel()
		if err == nil {
			inv.TokenHash = tokenHash
			break
		}
		switch {
		case errors.Is(err, store.ErrNotFound):
			// Accepted in the meantime.
			return CreatedInvitation{}, domain.ErrInvitationAccepted
		case !errors.Is(err, store.ErrAlreadyExists):
			return CreatedInvitation{}, dependency(ctx, "failed to refresh invitation", err)
		}
		clash, cerr := s.tokenTaken(ctx, tokenHash)
		if cerr != nil {
			return CreatedInvitation{}, cerr
		}
		if !clash {
			return CreatedInvitation{}, domain.ErrDuplicatePendingInvitation
		}
		if attempt == maxTokenAttempts {
			return CreatedInvitation{}, domain.ErrInternal.Wrap(errors.New("invitation token collided repeatedly"))
		}
	}

	inv.Status = domain.InvitationPending
	inv.ExpiresAt = expiresAt
	inv.UpdatedAt = now

	slogx.FromContext(ctx).Info("invitation resent", slog.String("invitation_id", inv.ID))
	metrics.InvitationTransitions.WithLabelValues("resent").Inc()

	out := CreatedInvitation{
		Invitation:      inv,
		Token:           token,
		URL:             s.InvitationURL(token),
		ExistingAccount: existing,
	}

	rctx, cancel := s.readCtx(ctx)
	prop, err := s.Store.Properties().GetPropertyByID(rctx, inv.PropertyID)
	cancel()
	if err != nil {
		slogx.FromContext(ctx).Error("failed to load property for invitation email", slog.Any("error", err))
		return out, nil
	}
	s.notify(ctx, out, prop)
	return out, nil
}

// ListForLandlord returns the landlord's invitations, newest first, each
// with the property it is for.
func (s *InvitationService) ListForLandlord(ctx context.Context, landlordID string, page domain.Page) ([]LandlordInvitation, error) {
	rctx, cancel := s.readCtx(ctx)
	defer cancel()

	list, err := s.Store.Invitations().ListInvitationsByLandlord(rctx, landlordID, page.Normalize())
	if err != nil {
		return nil, dependency(ctx, "failed to list invitations", err)
	}

	props := make(map[string]domain.Property)
	out := make([]LandlordInvitation, 0, len(list))
	for _, inv := range list {
		prop, ok := props[inv.PropertyID]
		if !ok {
			prop, err = s.Store.Properties().GetPropertyByID(rctx, inv.PropertyID)
			if err != nil {
				return nil, dependency(ctx, "failed to load invitation property", err)
			}
			props[inv.PropertyID] = prop
		}
		out = append(out, LandlordInvitation{Invitation: inv, Property: prop})
	}
	return out, nil
}

func (s *InvitationService) pendingByToken(ctx context.Context, token string) (domain.Invitation, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.Invitation{}, domain.ErrInvitationNotFound
	}

	rctx, cancel := s.readCtx(ctx)
	inv, err := s.Store.Invitations().GetInvitationByTokenHash(rctx, cryptox.FingerprintToken(token))
	cancel()
	if errors.Is(err, store.ErrNotFound) {
		return domain.Invitation{}, domain.ErrInvitationNotFound
	}
	if err != nil {
		return domain.Invitation{}, dependency(ctx, "failed to load invitation", err)
	}

	if inv.Status != domain.InvitationPending {
		return domain.Invitation{}, domain.StatusConflict(inv.Status)
	}

	now := s.now()
	if inv.IsOverdue(now) {
		wctx, cancel := s.writeCtx(ctx)
		err := s.Store.Invitations().TransitionInvitation(wctx, inv.ID, domain.InvitationPending, domain.InvitationExpired, now)
		cancel()
		switch {
		case err == nil:
			slogx.FromContext(ctx).Info("invitation expired", slog.String("invitation_id", inv.ID))
			metrics.InvitationTransitions.WithLabelValues("expired").Inc()
		case !errors.Is(err, store.ErrNotFound):
			slogx.FromContext(ctx).Error("failed to expire invitation",
				slog.String("invitation_id", inv.ID),
				slog.Any("error", err),
			)
		}
		return domain.Invitation{}, domain.ErrInvitationExpired
	}
	return inv, nil
}

// currentStatusConflict explains why a conditional transition matched no
// row, reading the status through st.
func (s *InvitationService) currentStatusConflict(ctx context.Context, st store.Store, id string) error {
	cur, err := st.Invitations().GetInvitationByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.ErrInvitationNotFound
	}
	if err != nil {
		return dependency(ctx, "failed to reload invitation", err)
	}
	return domain.StatusConflict(cur.Status)
}

func (s *InvitationService) ownedInvitation(ctx context.Context, landlordID, id string) (domain.Invitation, error) {
	rctx, cancel := s.readCtx(ctx)
	defer cancel()

	inv, err := s.Store.Invitations().GetInvitationByID(rctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Invitation{}, domain.ErrInvitationNotFound
	}
	if err != nil {
		return domain.Invitation{}, dependency(ctx, "failed to load invitation", err)
	}
	if inv.LandlordID != landlordID {
		slogx.FromContext(ctx).Warn("invitation access by non-owner",
			slog.String("invitation_id", id),
			slog.String("landlord_id", landlordID),
		)
		return domain.Invitation{}, domain.ErrNotInvitationOwner
	}
	return inv, nil
}

func (s *InvitationService) ownedProperty(ctx context.Context, landlordID, propertyID string) (domain.Property, error) {
	if strings.TrimSpace(propertyID) == "" {
		return domain.Property{}, domain.Validation("property id is required")
	}

	rctx, cancel := s.readCtx(ctx)
	defer cancel()

	prop, err := s.Store.Properties().GetPropertyByID(rctx, propertyID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Property{}, domain.ErrPropertyNotFound
	}
	if err != nil {
		return domain.Property{}, dependency(ctx, "failed to load property", err)
	}
	if prop.LandlordID != landlordID {
		return domain.Property{}, domain.ErrPropertyNotOwned
	}
	return prop, nil
}

// tenantAccount reports whether email already has an account, refusing
// addresses that belong to a landlord.
func (s *InvitationService) tenantAccount(ctx context.Context, email string) (bool, error) {
	rctx, cancel := s.readCtx(ctx)
	defer cancel()

	acc, err := s.Store.Accounts().GetAccountByEmail(rctx, email)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return false, nil
	case err != nil:
		return false, dependency(ctx, "failed to look up invitee", err)
	case acc.Role != domain.RoleTenant:
		return false, domain.ErrRoleMismatch
	}
	return true, nil
}

func (s *InvitationService) tokenTaken(ctx context.Context, tokenHash string) (bool, error) {
	rctx, cancel := s.readCtx(ctx)
	defer cancel()

	_, err := s.Store.Invitations().GetInvitationByTokenHash(rctx, tokenHash)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, store.ErrNotFound):
		return false, nil
	default:
		return false, dependency(ctx, "failed to check invitation token", err)
	}
}

// notify emails the invitation link. Failures are logged and swallowed.
func (s *InvitationService) notify(ctx context.Context, ci CreatedInvitation, prop domain.Property) {
	log := slogx.FromContext(ctx).With(slog.String("invitation_id", ci.Invitation.ID))

	rctx, cancel := s.readCtx(ctx)
	landlord, err := s.Store.Accounts().GetAccountByID(rctx, ci.Invitation.LandlordID)
	cancel()
	if err != nil {
		log.Error("failed to load landlord for invitation email", slog.Any("error", err))
		return
	}
	landlordName := landlord.Name
	if landlordName == "" {
		landlordName = landlord.Email
	}

	inv := ci.Invitation
	body, err := renderMail("invitation.txt", invitationMail{
		App:             AppName,
		TenantName:      inv.TenantName,
		LandlordName:    landlordName,
		PropertyTitle:   prop.Title,
		PropertyAddress: prop.Address,
		Start:           formatDate(inv.Terms.Start),
		End:             formatDate(inv.Terms.End),
		MonthlyRent:     formatMinor(inv.Terms.MonthlyRent),
		URL:             ci.URL,
		ExpiresAt:       inv.ExpiresAt.Format(time.RFC1123),
	})
	if err != nil {
		log.Error("failed to render invitation email", slog.Any("error", err))
		return
	}

	if err := s.send(ctx, inv.TenantEmail, "You're invited to rent "+prop.Title, body); err != nil {
		log.Error("failed to send invitation email", slog.Any("error", err))
		return
	}
	log.Debug("invitation email sent")
}

func utcTerms(t domain.LeaseTerms) domain.LeaseTerms {
	t.Start = t.Start.UTC()
	t.End = t.End.UTC()
	return t
}
