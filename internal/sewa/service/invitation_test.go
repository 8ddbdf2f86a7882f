package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mysewa/sewa/internal/sewa/domain"
	"github.com/mysewa/sewa/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestInvitationScenario(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	landlord := h.landlord(t, "l@x.com")
	prop := h.property(t, landlord.ID)
	require.Equal(t, domain.PropertyVacant, prop.Status)

	ci := h.invite(t, landlord.ID, prop.ID, "T@x.com")
	require.Equal(t, domain.InvitationPending, ci.Invitation.Status)
	require.GreaterOrEqual(t, len(ci.Token), 43)
	require.False(t, ci.ExistingAccount)
	require.Equal(t, "https://app.sewa.test/invite/"+ci.Token, ci.URL)
	require.Equal(t, "t@x.com", ci.Invitation.TenantEmail)
	require.Equal(t, cryptox.FingerprintToken(ci.Token), ci.Invitation.TokenHash)

	msg, ok := h.mail.Last("t@x.com")
	require.True(t, ok)
	require.Contains(t, msg.Body, ci.URL)
	require.Contains(t, msg.Body, "Lana Lord")

	res, err := h.invitations.Accept(ctx, ci.Token, "longenough1")
	require.NoError(t, err)
	require.True(t, res.AccountCreated)
	require.NotEmpty(t, res.LeaseID)

	tenant, err := h.store.Accounts().GetAccountByID(ctx, res.AccountID)
	require.NoError(t, err)
	require.Equal(t, domain.RoleTenant, tenant.Role)
	require.True(t, tenant.EmailVerified)
	require.True(t, tenant.HasPassword())

	got, err := h.store.Properties().GetPropertyByID(ctx, prop.ID)
	require.NoError(t, err)
	require.Equal(t, domain.PropertyOccupied, got.Status)

	inv, err := h.store.Invitations().GetInvitationByID(ctx, ci.Invitation.ID)
	require.NoError(t, err)
	require.Equal(t, domain.InvitationAccepted, inv.Status)
	require.NotNil(t, inv.AcceptedAt)

	_, err = h.invitations.Accept(ctx, ci.Token, "longenough1")
	require.ErrorIs(t, err, domain.ErrInvitationAccepted)
	requireKind(t, err, domain.KindConflict)
	require.Contains(t, domain.AsError(err).Message, "already been accepted")

	leases, err := h.leases.ListForTenant(ctx, res.AccountID, domain.Page{})
	require.NoError(t, err)
	require.Len(t, leases, 1)
	require.Equal(t, ci.Invitation.ID, leases[0].InvitationID)
	require.Equal(t, int64(150000), leases[0].MonthlyRent)
}

func TestInvitationRoundTripAndResend(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	landlord := h.landlord(t, "l@x.com")
	prop := h.property(t, landlord.ID)
	ci := h.invite(t, landlord.ID, prop.ID, "t@x.com")

	details, err := h.invitations.GetByToken(ctx, ci.Token)
	require.NoError(t, err)
	require.Equal(t, prop.ID, details.Invitation.PropertyID)
	require.Equal(t, "t@x.com", details.Invitation.TenantEmail)
	require.True(t, terms().Start.Equal(details.Invitation.Terms.Start))
	require.True(t, terms().End.Equal(details.Invitation.Terms.End))
	require.Equal(t, terms().MonthlyRent, details.Invitation.Terms.MonthlyRent)
	require.Equal(t, "Flat P", details.Property.Title)
	require.Equal(t, "l@x.com", details.LandlordEmail)
	require.False(t, details.ExistingAccount)

	h.clock.Advance(time.Hour)
	resent, err := h.invitations.Resend(ctx, landlord.ID, ci.Invitation.ID)
	require.NoError(t, err)
	require.NotEqual(t, ci.Token, resent.Token)
	require.True(t, resent.Invitation.ExpiresAt.After(ci.Invitation.ExpiresAt))
	require.Equal(t, ci.Invitation.Terms.MonthlyRent, resent.Invitation.Terms.MonthlyRent)

	_, err = h.invitations.GetByToken(ctx, ci.Token)
	require.ErrorIs(t, err, domain.ErrInvitationNotFound)

	details, err = h.invitations.GetByToken(ctx, resent.Token)
	require.NoError(t, err)
	require.True(t, terms().Start.Equal(details.Invitation.Terms.Start))
	require.True(t, resent.Invitation.ExpiresAt.Equal(details.Invitation.ExpiresAt))
}

func TestConcurrentAcceptCreatesOneLease(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	landlord := h.landlord(t, "l@x.com")
	prop := h.property(t, landlord.ID)
	ci := h.invite(t, landlord.ID, prop.ID, "t@x.com")

	const n = 8
	var (
		wg   sync.WaitGroup
		errs = make([]error, n)
	)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = h.invitations.Accept(ctx, ci.Token, "longenough1")
		}()
	}
	wg.Wait()

	var ok int
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		require.ErrorIs(t, err, domain.ErrInvitationAccepted)
	}
	require.Equal(t, 1, ok)

	count, err := h.store.Leases().CountLeasesByInvitation(ctx, ci.Invitation.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}

func TestCancelThenAccept(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	landlord := h.landlord(t, "l@x.com")
	prop := h.property(t, landlord.ID)
	ci := h.invite(t, landlord.ID, prop.ID, "t@x.com")

	cancelled, err := h.invitations.Cancel(ctx, landlord.ID, ci.Invitation.ID)
	require.NoError(t, err)
	require.Equal(t, domain.InvitationCancelled, cancelled.Status)

	_, err = h.invitations.Accept(ctx, ci.Token, "longenough1")
	require.ErrorIs(t, err, domain.ErrInvitationNotPending)
	require.Contains(t, domain.AsError(err).Message, "cancelled")

	count, err := h.store.Leases().CountLeasesByInvitation(ctx, ci.Invitation.ID)
	require.NoError(t, err)
	require.Zero(t, count)

	got, err := h.store.Properties().GetPropertyByID(ctx, prop.ID)
	require.NoError(t, err)
	require.Equal(t, domain.PropertyVacant, got.Status)

	_, err = h.invitations.Cancel(ctx, landlord.ID, ci.Invitation.ID)
	requireKind(t, err, domain.KindConflict)
}

func TestCreateInvitationRules(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	landlord := h.landlord(t, "l@x.com")
	other := h.landlord(t, "o@x.com")
	prop := h.property(t, landlord.ID)

	t.Run("duplicate pending", func(t *testing.T) {
		h.invite(t, landlord.ID, prop.ID, "dup@x.com")
		_, err := h.invitations.Create(ctx, landlord.ID, CreateInvitationInput{
			PropertyID: prop.ID, TenantEmail: "DUP@x.com", Terms: terms(),
		})
		require.ErrorIs(t, err, domain.ErrDuplicatePendingInvitation)
	})

	t.Run("property not owned", func(t *testing.T) {
		_, err := h.invitations.Create(ctx, other.ID, CreateInvitationInput{
			PropertyID: prop.ID, TenantEmail: "x@x.com", Terms: terms(),
		})
		require.ErrorIs(t, err, domain.ErrPropertyNotOwned)
	})

	t.Run("property missing", func(t *testing.T) {
		_, err := h.invitations.Create(ctx, landlord.ID, CreateInvitationInput{
			PropertyID: "nope", TenantEmail: "x@x.com", Terms: terms(),
		})
		require.ErrorIs(t, err, domain.ErrPropertyNotFound)
	})

	t.Run("bad terms", func(t *testing.T) {
		bad := terms()
		bad.End = bad.Start
		_, err := h.invitations.Create(ctx, landlord.ID, CreateInvitationInput{
			PropertyID: prop.ID, TenantEmail: "x@x.com", Terms: bad,
		})
		requireKind(t, err, domain.KindValidation)
	})

	t.Run("landlord email", func(t *testing.T) {
		_, err := h.invitations.Create(ctx, landlord.ID, CreateInvitationInput{
			PropertyID: prop.ID, TenantEmail: "o@x.com", Terms: terms(),
		})
		require.ErrorIs(t, err, domain.ErrRoleMismatch)
	})

	t.Run("mail failure keeps invitation", func(t *testing.T) {
		h.mail.Err = errors.New("smtp down")
		defer func() { h.mail.Err = nil }()

		ci := h.invite(t, landlord.ID, prop.ID, "quiet@x.com")
		_, err := h.invitations.GetByToken(ctx, ci.Token)
		require.NoError(t, err)
	})
}

func TestGetByTokenExpiresLazily(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	landlord := h.landlord(t, "l@x.com")
	prop := h.property(t, landlord.ID)
	ci := h.invite(t, landlord.ID, prop.ID, "t@x.com")

	h.clock.Advance(domain.InvitationTTL + time.Minute)

	_, err := h.invitations.GetByToken(ctx, ci.Token)
	require.ErrorIs(t, err, domain.ErrInvitationExpired)
	requireKind(t, err, domain.KindExpired)

	inv, err := h.store.Invitations().GetInvitationByID(ctx, ci.Invitation.ID)
	require.NoError(t, err)
	require.Equal(t, domain.InvitationExpired, inv.Status)

	// Once stored as EXPIRED it reports the status conflict.
	_, err = h.invitations.Accept(ctx, ci.Token, "longenough1")
	require.ErrorIs(t, err, domain.ErrInvitationNotPending)
	require.Contains(t, domain.AsError(err).Message, "expired")

	// Resend revives it.
	resent, err := h.invitations.Resend(ctx, landlord.ID, ci.Invitation.ID)
	require.NoError(t, err)
	require.Equal(t, domain.InvitationPending, resent.Invitation.Status)
	_, err = h.invitations.Accept(ctx, resent.Token, "longenough1")
	require.NoError(t, err)

	_, err = h.invitations.Resend(ctx, landlord.ID, ci.Invitation.ID)
	require.ErrorIs(t, err, domain.ErrInvitationAccepted)
}

func TestResendAndCancelOwnership(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	landlord := h.landlord(t, "l@x.com")
	other := h.landlord(t, "o@x.com")
	prop := h.property(t, landlord.ID)
	ci := h.invite(t, landlord.ID, prop.ID, "t@x.com")

	_, err := h.invitations.Cancel(ctx, other.ID, ci.Invitation.ID)
	require.ErrorIs(t, err, domain.ErrNotInvitationOwner)
	_, err = h.invitations.Resend(ctx, other.ID, ci.Invitation.ID)
	require.ErrorIs(t, err, domain.ErrNotInvitationOwner)

	_, err = h.invitations.Cancel(ctx, landlord.ID, "missing")
	require.ErrorIs(t, err, domain.ErrInvitationNotFound)
	_, err = h.invitations.Resend(ctx, landlord.ID, "missing")
	require.ErrorIs(t, err, domain.ErrInvitationNotFound)
}

func TestResendRevivalClashesWithNewerPending(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	landlord := h.landlord(t, "l@x.com")
	prop := h.property(t, landlord.ID)
	first := h.invite(t, landlord.ID, prop.ID, "t@x.com")

	_, err := h.invitations.Cancel(ctx, landlord.ID, first.Invitation.ID)
	require.NoError(t, err)
	h.invite(t, landlord.ID, prop.ID, "t@x.com")

	_, err = h.invitations.Resend(ctx, landlord.ID, first.Invitation.ID)
	require.ErrorIs(t, err, domain.ErrDuplicatePendingInvitation)
}

func TestAcceptPasswordRules(t *testing.T) {
	ctx := context.Background()

	t.Run("new account needs a password", func(t *testing.T) {
		h := newHarness(t)
		landlord := h.landlord(t, "l@x.com")
		prop := h.property(t, landlord.ID)
		ci := h.invite(t, landlord.ID, prop.ID, "t@x.com")

		_, err := h.invitations.Accept(ctx, ci.Token, "")
		require.ErrorIs(t, err, domain.ErrPasswordRequired)

		_, err = h.invitations.Accept(ctx, ci.Token, "short")
		requireKind(t, err, domain.KindValidation)

		// Nothing was applied; the invitation is still usable.
		details, err := h.invitations.GetByToken(ctx, ci.Token)
		require.NoError(t, err)
		require.Equal(t, domain.InvitationPending, details.Invitation.Status)
	})

	t.Run("existing account with password is linked", func(t *testing.T) {
		h := newHarness(t)
		landlord := h.landlord(t, "l@x.com")
		first := h.property(t, landlord.ID)
		second := h.property(t, landlord.ID)

		a := h.invite(t, landlord.ID, first.ID, "t@x.com")
		resA, err := h.invitations.Accept(ctx, a.Token, "longenough1")
		require.NoError(t, err)

		b := h.invite(t, landlord.ID, second.ID, "t@x.com")
		require.True(t, b.ExistingAccount)
		resB, err := h.invitations.Accept(ctx, b.Token, "")
		require.NoError(t, err)
		require.False(t, resB.AccountCreated)
		require.Equal(t, resA.AccountID, resB.AccountID)

		leases, err := h.leases.ListForTenant(ctx, resA.AccountID, domain.Page{})
		require.NoError(t, err)
		require.Len(t, leases, 2)
	})

	t.Run("linked account ignores a short password", func(t *testing.T) {
		h := newHarness(t)
		landlord := h.landlord(t, "l@x.com")
		tenantID := h.tenant(t, landlord.ID, "t@x.com")
		prop := h.property(t, landlord.ID)

		ci := h.invite(t, landlord.ID, prop.ID, "t@x.com")
		res, err := h.invitations.Accept(ctx, ci.Token, "short")
		require.NoError(t, err)
		require.Equal(t, tenantID, res.AccountID)
	})

	t.Run("existing account without password sets one", func(t *testing.T) {
		h := newHarness(t)
		landlord := h.landlord(t, "l@x.com")
		prop := h.property(t, landlord.ID)

		now := h.clock.Now()
		require.NoError(t, h.store.Accounts().CreateAccount(ctx, domain.Account{
			ID:        "tenant-without-password",
			Email:     "t@x.com",
			Name:      "Tess",
			Role:      domain.RoleTenant,
			CreatedAt: now,
			UpdatedAt: now,
		}))

		ci := h.invite(t, landlord.ID, prop.ID, "t@x.com")
		require.True(t, ci.ExistingAccount)

		_, err := h.invitations.Accept(ctx, ci.Token, "")
		require.ErrorIs(t, err, domain.ErrPasswordRequired)

		_, err = h.invitations.Accept(ctx, ci.Token, "short")
		requireKind(t, err, domain.KindValidation)

		res, err := h.invitations.Accept(ctx, ci.Token, "longenough1")
		require.NoError(t, err)
		require.False(t, res.AccountCreated)
		require.Equal(t, "tenant-without-password", res.AccountID)

		acc, err := h.store.Accounts().GetAccountByID(ctx, res.AccountID)
		require.NoError(t, err)
		require.True(t, acc.HasPassword())
		require.True(t, acc.EmailVerified)

		ok, err := cryptox.VerifyPassword("longenough1", acc.PasswordHash)
		require.NoError(t, err)
		require.True(t, ok)
	})
}

func TestListForLandlordNewestFirst(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	landlord := h.landlord(t, "l@x.com")
	prop := h.property(t, landlord.ID)

	var ids []string
	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		h.clock.Advance(time.Minute)
		ids = append(ids, h.invite(t, landlord.ID, prop.ID, email).Invitation.ID)
	}

	list, err := h.invitations.ListForLandlord(ctx, landlord.ID, domain.Page{})
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, ids[2], list[0].Invitation.ID)
	require.Equal(t, ids[0], list[2].Invitation.ID)
	for _, item := range list {
		require.Equal(t, prop.ID, item.Property.ID)
		require.Equal(t, "Flat P", item.Property.Title)
		require.Equal(t, "1 High St", item.Property.Address)
	}

	page, err := h.invitations.ListForLandlord(ctx, landlord.ID, domain.Page{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, page, 1)
}

func TestInvitationURLTrimsSlash(t *testing.T) {
	s := &InvitationService{FrontendBaseURL: "https://x.test//"}
	require.True(t, strings.HasSuffix(s.InvitationURL("tok"), "x.test/invite/tok"))
}
