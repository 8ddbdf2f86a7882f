package domain

import (
	"errors"
	"net/http"
)

// Kind classifies a failure so transports can map it without knowing the
// individual sentinels.
type Kind uint8

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindExpired
	KindUnauthorized
	KindForbidden
	KindDependency
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation_error"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindExpired:
		return "expired"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindDependency:
		return "dependency_error"
	default:
		return "internal_error"
	}
}

// HTTPStatus maps a Kind onto a response status.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindExpired:
		return http.StatusGone
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindDependency:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified failure. Message is safe to show to callers; Err is
// the internal cause and is only ever logged.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// HTTPStatus, ErrorCode and Description let transports render the error
// without importing this package.
func (e *Error) HTTPStatus() int { return e.Kind.HTTPStatus() }

func (e *Error) ErrorCode() string { return e.Code }

func (e *Error) Description() string { return e.Message }

// Is matches sentinels by identity of Kind and Code so that wrapped copies
// produced by Wrap still satisfy errors.Is(err, ErrX).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Code == t.Code && e.Code != ""
}

// Wrap returns a copy of e carrying cause.
func (e *Error) Wrap(cause error) *Error {
	c := *e
	c.Err = cause
	return &c
}

// WithMessage returns a copy of e with a different user-facing message.
func (e *Error) WithMessage(msg string) *Error {
	c := *e
	c.Message = msg
	return &c
}

func newErr(kind Kind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

// Validation builds an ad hoc validation failure.
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Code: "invalid_request", Message: msg}
}

// Dependency wraps a store or mail failure.
func Dependency(cause error) *Error {
	return ErrDependency.Wrap(cause)
}

var (
	ErrInvalidRequest = newErr(KindValidation, "invalid_request", "invalid request")
	ErrDependency     = newErr(KindDependency, "temporarily_unavailable", "service temporarily unavailable, please retry")
	ErrInternal       = newErr(KindInternal, "server_error", "internal server error")

	// Auth.
	ErrTenantNotRegistered = newErr(KindNotFound, "tenant_not_registered", "no tenant account for this email, register via invitation first")
	ErrPasswordRequired    = newErr(KindValidation, "password_required", "password is required")
	ErrInvalidCredentials  = newErr(KindUnauthorized, "invalid_credentials", "invalid email or password")
	ErrRoleMismatch        = newErr(KindForbidden, "role_mismatch", "account is registered with a different role")
	ErrPinNotFound         = newErr(KindNotFound, "pin_not_found", "no pending PIN for this account, request a new one")
	ErrPinExpired          = newErr(KindExpired, "pin_expired", "PIN has expired, request a new one")
	ErrPinInvalid          = newErr(KindUnauthorized, "pin_invalid", "PIN is incorrect")
	ErrTooManyPinAttempts  = newErr(KindUnauthorized, "pin_locked", "too many incorrect attempts, request a new PIN")
	ErrDeliveryFailed      = newErr(KindDependency, "delivery_failed", "could not send email, please retry")

	// Sessions.
	ErrUnauthenticated = newErr(KindUnauthorized, "unauthenticated", "authentication required")
	ErrInvalidToken    = newErr(KindUnauthorized, "invalid_token", "session is invalid or expired")
	ErrForbidden       = newErr(KindForbidden, "forbidden", "you do not have permission to perform this action")

	// Invitations.
	ErrInvitationNotFound         = newErr(KindNotFound, "invitation_not_found", "invitation not found")
	ErrInvitationExpired          = newErr(KindExpired, "invitation_expired", "invitation has expired")
	ErrInvitationNotPending       = newErr(KindConflict, "invitation_not_pending", "invitation is no longer pending")
	ErrInvitationAccepted         = newErr(KindConflict, "invitation_accepted", "invitation has already been accepted")
	ErrDuplicatePendingInvitation = newErr(KindConflict, "duplicate_invitation", "a pending invitation already exists for this email and property")
	ErrNotInvitationOwner         = newErr(KindForbidden, "not_owner", "invitation belongs to another landlord")

	// Properties and leases.
	ErrPropertyNotFound = newErr(KindNotFound, "property_not_found", "property not found")
	ErrPropertyNotOwned = newErr(KindForbidden, "property_not_owned", "property belongs to another landlord")
	ErrPropertyOccupied = newErr(KindConflict, "property_occupied", "property is already occupied")
	ErrTenantNotFound   = newErr(KindNotFound, "tenant_not_found", "tenant account not found")
)

// StatusConflict returns the conflict error describing why an invitation in
// status s cannot be used.
func StatusConflict(s InvitationStatus) *Error {
	switch s {
	case InvitationAccepted:
		return ErrInvitationAccepted
	case InvitationCancelled:
		return ErrInvitationNotPending.WithMessage("invitation has already been cancelled")
	case InvitationExpired:
		return ErrInvitationNotPending.WithMessage("invitation has already been expired")
	default:
		return ErrInvitationNotPending
	}
}

// KindOf returns the Kind of err, or KindInternal for unclassified errors.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// AsError classifies err, folding unclassified errors into ErrInternal.
func AsError(err error) *Error {
	var de *Error
	if errors.As(err, &de) {
		return de
	}
	return ErrInternal.Wrap(err)
}
