//go:build e2e

package sewa_test

import (
	"net/http"
	"testing"

	"github.com/mysewa/sewa/pkg/sewasdk"
	"github.com/stretchr/testify/require"
)

func TestHealthEndpoints(t *testing.T) {
	c := setupSewaContainer(t, nil)
	client := sewasdk.NewClient(c.BaseURL)

	health, err := client.GetLiveness(t.Context())
	assertHealthy(t, health, err)

	health, err = client.GetReadiness(t.Context())
	assertHealthy(t, health, err)
	require.NotNil(t, health.Checks)
}

// TestInvitationLifecycle walks a landlord from first login to a tenant
// accepting an invitation and then signing in with PIN and password.
func TestInvitationLifecycle(t *testing.T) {
	c := setupSewaContainer(t, nil)
	client := sewasdk.NewClient(c.BaseURL)
	ctx := t.Context()

	landlord := login(t, c, client, sewasdk.PinRequest{
		Email: "owner@example.com",
		Role:  "LANDLORD",
		Name:  "Olive Owner",
	})
	require.Equal(t, "LANDLORD", landlord.Account.Role)

	me, err := landlord.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, "owner@example.com", me.Email)

	property, err := landlord.RegisterProperty(ctx, sewasdk.RegisterPropertyRequest{
		Title:       "Flat 2B",
		Address:     "12 Harbour Rd",
		MonthlyRent: 150000,
	})
	require.NoError(t, err)
	require.Equal(t, "VACANT", property.Status)

	created, err := landlord.CreateInvitation(ctx, sewasdk.CreateInvitationRequest{
		PropertyID:  property.ID,
		TenantEmail: "tenant@example.com",
		TenantName:  "Tia Tenant",
		LeaseTerms:  terms(150000),
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.Token)
	require.Contains(t, created.URL, "https://app.mysewa.test/")
	require.False(t, created.ExistingAccount)

	_, err = landlord.CreateInvitation(ctx, sewasdk.CreateInvitationRequest{
		PropertyID:  property.ID,
		TenantEmail: "tenant@example.com",
		LeaseTerms:  terms(150000),
	})
	require.True(t, sewasdk.IsCode(err, sewasdk.ErrorCodeDuplicateInvitation), "got %v", err)

	details, err := client.GetInvitation(ctx, created.Token)
	require.NoError(t, err)
	require.Equal(t, "Flat 2B", details.Property.Title)
	require.Equal(t, "owner@example.com", details.LandlordEmail)

	// Unknown tenants cannot ask for a PIN before accepting.
	err = client.RequestPin(ctx, sewasdk.PinRequest{Email: "tenant@example.com", Role: "TENANT"})
	require.True(t, sewasdk.IsCode(err, sewasdk.ErrorCodeTenantNotRegistered), "got %v", err)

	accepted, err := client.AcceptInvitation(ctx, created.Token, sewasdk.AcceptInvitationRequest{Password: "correct-horse"})
	require.NoError(t, err)
	require.True(t, accepted.AccountCreated)
	require.NotEmpty(t, accepted.LeaseID)

	_, err = client.AcceptInvitation(ctx, created.Token, sewasdk.AcceptInvitationRequest{Password: "correct-horse"})
	require.True(t, sewasdk.IsCode(err, sewasdk.ErrorCodeInvitationAccepted), "got %v", err)

	err = client.RequestPin(ctx, sewasdk.PinRequest{Email: "tenant@example.com", Role: "TENANT"})
	require.True(t, sewasdk.IsCode(err, sewasdk.ErrorCodePasswordRequired), "got %v", err)

	tenant := login(t, c, client, sewasdk.PinRequest{
		Email:    "tenant@example.com",
		Role:     "TENANT",
		Password: "correct-horse",
	})
	require.Equal(t, accepted.AccountID, tenant.Account.ID)

	leases, err := tenant.ListLeases(ctx, sewasdk.Page{})
	require.NoError(t, err)
	require.Len(t, leases.Leases, 1)
	require.Equal(t, property.ID, leases.Leases[0].PropertyID)

	invitations, err := landlord.ListInvitations(ctx, sewasdk.Page{})
	require.NoError(t, err)
	require.Len(t, invitations.Invitations, 1)
	require.Equal(t, "ACCEPTED", invitations.Invitations[0].Status)
	require.NotNil(t, invitations.Invitations[0].Property)
	require.Equal(t, property.ID, invitations.Invitations[0].Property.ID)

	// Tenants cannot reach landlord routes.
	_, err = tenant.ListInvitations(ctx, sewasdk.Page{})
	var apiErr *sewasdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusForbidden, apiErr.StatusCode)
}

func TestCancelAndResend(t *testing.T) {
	c := setupSewaContainer(t, nil)
	client := sewasdk.NewClient(c.BaseURL)
	ctx := t.Context()

	landlord := login(t, c, client, sewasdk.PinRequest{Email: "cancel@example.com", Role: "LANDLORD"})

	property, err := landlord.RegisterProperty(ctx, sewasdk.RegisterPropertyRequest{Title: "Unit 7", MonthlyRent: 90000})
	require.NoError(t, err)

	created, err := landlord.CreateInvitation(ctx, sewasdk.CreateInvitationRequest{
		PropertyID:  property.ID,
		TenantEmail: "maybe@example.com",
		LeaseTerms:  terms(90000),
	})
	require.NoError(t, err)

	resent, err := landlord.ResendInvitation(ctx, created.Invitation.ID)
	require.NoError(t, err)
	require.NotEqual(t, created.Token, resent.Token)

	_, err = client.GetInvitation(ctx, created.Token)
	require.True(t, sewasdk.IsCode(err, sewasdk.ErrorCodeInvitationNotFound), "got %v", err)

	cancelled, err := landlord.CancelInvitation(ctx, created.Invitation.ID)
	require.NoError(t, err)
	require.Equal(t, "CANCELLED", cancelled.Status)

	_, err = client.AcceptInvitation(ctx, resent.Token, sewasdk.AcceptInvitationRequest{Password: "long-enough"})
	require.True(t, sewasdk.IsCode(err, sewasdk.ErrorCodeInvitationNotPending), "got %v", err)

	require.NoError(t, landlord.Logout(ctx))
}
