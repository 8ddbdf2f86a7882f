package sewasdk

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// Session performs requests as a logged-in account. Tokens are not
// refreshed; request a new PIN once ExpiresAt passes.
type Session struct {
	client    *Client
	token     string
	expiresAt time.Time

	// Account is the account the session was issued to. Empty for sessions
	// built with NewSessionFromToken.
	Account AccountResponse
}

// Token returns the raw session token.
func (s *Session) Token() string { return s.token }

// ExpiresAt is zero for sessions built with NewSessionFromToken.
func (s *Session) ExpiresAt() time.Time { return s.expiresAt }

func (s *Session) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	return s.client.doRequest(ctx, method, path, s.token, body)
}

// Me describes the session as the server sees it.
func (s *Session) Me(ctx context.Context) (*MeResponse, error) {
	resp, err := s.do(ctx, http.MethodGet, "/v1/auth/me", nil)
	if err != nil {
		return nil, err
	}
	var out MeResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout clears the session cookie. Bearer tokens stay valid until they
// expire.
func (s *Session) Logout(ctx context.Context) error {
	resp, err := s.do(ctx, http.MethodPost, "/v1/auth/logout", nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// RegisterProperty adds a property (landlords only).
func (s *Session) RegisterProperty(ctx context.Context, req RegisterPropertyRequest) (*PropertyResponse, error) {
	if err := s.client.check(req); err != nil {
		return nil, err
	}
	resp, err := s.do(ctx, http.MethodPost, "/v1/properties", req)
	if err != nil {
		return nil, err
	}
	var out PropertyResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateInvitation invites a tenant to one of the caller's properties.
func (s *Session) CreateInvitation(ctx context.Context, req CreateInvitationRequest) (*CreatedInvitationResponse, error) {
	if err := s.client.check(req); err != nil {
		return nil, err
	}
	resp, err := s.do(ctx, http.MethodPost, "/v1/invitations", req)
	if err != nil {
		return nil, err
	}
	var out CreatedInvitationResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListInvitations returns the caller's invitations, newest first.
func (s *Session) ListInvitations(ctx context.Context, page Page) (*ListInvitationsResponse, error) {
	resp, err := s.do(ctx, http.MethodGet, pageQuery("/v1/invitations", page), nil)
	if err != nil {
		return nil, err
	}
	var out ListInvitationsResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// CancelInvitation withdraws a pending invitation.
func (s *Session) CancelInvitation(ctx context.Context, id string) (*InvitationResponse, error) {
	resp, err := s.do(ctx, http.MethodDelete, "/v1/invitations/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	var out InvitationResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResendInvitation issues a new link and deadline.
func (s *Session) ResendInvitation(ctx context.Context, id string) (*CreatedInvitationResponse, error) {
	resp, err := s.do(ctx, http.MethodPost, "/v1/invitations/"+url.PathEscape(id)+"/resend", nil)
	if err != nil {
		return nil, err
	}
	var out CreatedInvitationResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// AssignLease leases a vacant property straight to an existing tenant.
func (s *Session) AssignLease(ctx context.Context, req AssignLeaseRequest) (*LeaseResponse, error) {
	if err := s.client.check(req); err != nil {
		return nil, err
	}
	resp, err := s.do(ctx, http.MethodPost, "/v1/leases", req)
	if err != nil {
		return nil, err
	}
	var out LeaseResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListLeases returns the leases the caller holds or grants.
func (s *Session) ListLeases(ctx context.Context, page Page) (*ListLeasesResponse, error) {
	resp, err := s.do(ctx, http.MethodGet, pageQuery("/v1/leases", page), nil)
	if err != nil {
		return nil, err
	}
	var out ListLeasesResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
