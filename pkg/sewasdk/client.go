package sewasdk

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mysewa/sewa/pkg/validate"
)

// Client talks to the public endpoints and opens Sessions.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// SkipValidation disables client-side request validation so tests can
	// exercise the server's own checks.
	SkipValidation bool
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) check(req any) error {
	if c.SkipValidation {
		return nil
	}
	if err := validate.Struct(req); err != nil {
		return &APIError{Code: ErrorCodeInvalidRequest, Description: err.Error()}
	}
	return nil
}

// RequestPin asks for a login PIN to be emailed.
func (c *Client) RequestPin(ctx context.Context, req PinRequest) error {
	if err := c.check(req); err != nil {
		return err
	}
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/auth/pin/request", "", req)
	if err != nil {
		return err
	}
	var out StatusResponse
	return decodeJSON(resp, &out, http.StatusAccepted)
}

// VerifyPin exchanges a PIN for an authenticated Session.
func (c *Client) VerifyPin(ctx context.Context, req VerifyPinRequest) (*Session, error) {
	if err := c.check(req); err != nil {
		return nil, err
	}
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/auth/pin/verify", "", req)
	if err != nil {
		return nil, err
	}
	var out SessionResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &Session{client: c, token: out.Token, expiresAt: out.ExpiresAt, Account: out.Account}, nil
}

// NewSessionFromToken wraps a token obtained earlier.
func (c *Client) NewSessionFromToken(token string) *Session {
	return &Session{client: c, token: token}
}

// GetInvitation loads the invitation behind a link token.
func (c *Client) GetInvitation(ctx context.Context, token string) (*InvitationDetailsResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/invitations/"+url.PathEscape(token), "", nil)
	if err != nil {
		return nil, err
	}
	var out InvitationDetailsResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// AcceptInvitation accepts the invitation behind a link token.
func (c *Client) AcceptInvitation(ctx context.Context, token string, req AcceptInvitationRequest) (*AcceptInvitationResponse, error) {
	if err := c.check(req); err != nil {
		return nil, err
	}
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/invitations/"+url.PathEscape(token)+"/accept", "", req)
	if err != nil {
		return nil, err
	}
	var out AcceptInvitationResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetLiveness checks if the service is alive.
func (c *Client) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/livez", "", nil)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}

	return &health, nil
}

// GetReadiness checks if the service is ready.
func (c *Client) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/readyz", "", nil)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}

	return &health, nil
}
