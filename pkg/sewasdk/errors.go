package sewasdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error codes the SDK callers most often branch on.
const (
	ErrorCodeInvalidRequest         = "invalid_request"
	ErrorCodeUnauthenticated        = "unauthenticated"
	ErrorCodeInvalidToken           = "invalid_token"
	ErrorCodeForbidden              = "forbidden"
	ErrorCodeRateLimited            = "rate_limit_exceeded"
	ErrorCodeServerError            = "server_error"
	ErrorCodeTenantNotRegistered    = "tenant_not_registered"
	ErrorCodePasswordRequired       = "password_required"
	ErrorCodeInvalidCredentials     = "invalid_credentials"
	ErrorCodeRoleMismatch           = "role_mismatch"
	ErrorCodePinNotFound            = "pin_not_found"
	ErrorCodePinExpired             = "pin_expired"
	ErrorCodePinInvalid             = "pin_invalid"
	ErrorCodePinLocked              = "pin_locked"
	ErrorCodeInvitationNotFound     = "invitation_not_found"
	ErrorCodeInvitationExpired      = "invitation_expired"
	ErrorCodeInvitationNotPending   = "invitation_not_pending"
	ErrorCodeInvitationAccepted     = "invitation_accepted"
	ErrorCodeDuplicateInvitation    = "duplicate_invitation"
	ErrorCodePropertyOccupied       = "property_occupied"
	ErrorCodeTemporarilyUnavailable = "temporarily_unavailable"
)

// APIError is a non-2xx response from the service.
type APIError struct {
	// StatusCode is the HTTP status code of the response
	StatusCode int `json:"-"`

	Code        string `json:"error"`
	Description string `json:"error_description"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// IsCode reports whether err is an APIError carrying code.
func IsCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}

// parseErrorResponse turns an error body into an *APIError, falling back to
// the status text when the body is not ours (e.g. a proxy error page).
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
