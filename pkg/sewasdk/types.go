package sewasdk

import "time"

// DateLayout is the wire format of lease dates.
const DateLayout = time.DateOnly

// ============================================================================
// Common Types
// ============================================================================

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	// Error is a stable machine-readable code (e.g. "pin_expired")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`
}

// StatusResponse acknowledges requests that have nothing else to return.
type StatusResponse struct {
	Status string `json:"status"`
}

// Page bounds list requests. Zero values use the server defaults.
type Page struct {
	Limit  int
	Offset int
}

// ============================================================================
// Auth Types
// ============================================================================

// PinRequest asks the service to email a login PIN.
type PinRequest struct {
	Email string `json:"email"              validate:"required,email"`
	Role  string `json:"role"               validate:"required,oneof=LANDLORD TENANT"`
	Name  string `json:"name,omitempty"     validate:"omitempty,max=200"`

	// Password is required for tenant accounts that have one set.
	Password string `json:"password,omitempty" validate:"omitempty,max=1024"`
}

// VerifyPinRequest exchanges an emailed PIN for a session.
type VerifyPinRequest struct {
	Email string `json:"email" validate:"required,email"`
	PIN   string `json:"pin"   validate:"required,len=6,numeric"`
}

type AccountResponse struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Name          string `json:"name,omitempty"`
	Role          string `json:"role"`
	EmailVerified bool   `json:"email_verified"`
}

// SessionResponse is returned from a successful PIN verification. The same
// token is also set as an HttpOnly cookie.
type SessionResponse struct {
	Token     string          `json:"token"`
	TokenType string          `json:"token_type"`
	ExpiresAt time.Time       `json:"expires_at"`
	Account   AccountResponse `json:"account"`
}

// MeResponse describes the caller's session.
type MeResponse struct {
	AccountID string    `json:"account_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ============================================================================
// Property Types
// ============================================================================

type RegisterPropertyRequest struct {
	Title       string `json:"title"             validate:"required,max=200"`
	Address     string `json:"address,omitempty" validate:"omitempty,max=500"`
	MonthlyRent int64  `json:"monthly_rent"      validate:"gt=0"`
}

type PropertyResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Address     string    `json:"address,omitempty"`
	MonthlyRent int64     `json:"monthly_rent"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// ============================================================================
// Invitation Types
// ============================================================================

// LeaseTerms carries the dates (YYYY-MM-DD) and amounts (minor units) of a
// lease.
type LeaseTerms struct {
	StartDate     string `json:"start_date"               validate:"required,datetime=2006-01-02"`
	EndDate       string `json:"end_date"                 validate:"required,datetime=2006-01-02"`
	MonthlyRent   int64  `json:"monthly_rent"             validate:"gt=0"`
	DepositAmount *int64 `json:"deposit_amount,omitempty" validate:"omitempty,gte=0"`
}

type CreateInvitationRequest struct {
	PropertyID  string `json:"property_id"           validate:"required"`
	TenantEmail string `json:"tenant_email"          validate:"required,email"`
	TenantName  string `json:"tenant_name,omitempty" validate:"omitempty,max=200"`
	LeaseTerms
}

type InvitationResponse struct {
	ID          string `json:"id"`
	PropertyID  string `json:"property_id"`
	TenantEmail string `json:"tenant_email"`
	TenantName  string `json:"tenant_name,omitempty"`
	LeaseTerms
	Status     string     `json:"status"`
	ExpiresAt  time.Time  `json:"expires_at"`
	AcceptedAt *time.Time `json:"accepted_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`

	// Property is set in invitation lists.
	Property *InvitationProperty `json:"property,omitempty"`
}

// InvitationProperty identifies the property an invitation is for.
type InvitationProperty struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Address string `json:"address,omitempty"`
}

// CreatedInvitationResponse is returned from create and resend. Token is
// shown only here; the service keeps a fingerprint of it.
type CreatedInvitationResponse struct {
	Invitation      InvitationResponse `json:"invitation"`
	Token           string             `json:"token"`
	URL             string             `json:"url"`
	ExistingAccount bool               `json:"existing_account"`
}

// InvitationDetailsResponse is what the invitee sees when opening a link.
type InvitationDetailsResponse struct {
	Invitation      InvitationResponse `json:"invitation"`
	Property        PropertyResponse   `json:"property"`
	LandlordName    string             `json:"landlord_name,omitempty"`
	LandlordEmail   string             `json:"landlord_email"`
	ExistingAccount bool               `json:"existing_account"`
}

type AcceptInvitationRequest struct {
	// Password is required unless the invitee already has one, in which
	// case it is ignored. New passwords need at least 8 characters.
	Password string `json:"password,omitempty" validate:"omitempty,max=1024"`
}

type AcceptInvitationResponse struct {
	InvitationID   string `json:"invitation_id"`
	AccountID      string `json:"account_id"`
	LeaseID        string `json:"lease_id"`
	AccountCreated bool   `json:"account_created"`
}

type ListInvitationsResponse struct {
	Invitations []InvitationResponse `json:"invitations"`
}

// ============================================================================
// Lease Types
// ============================================================================

type AssignLeaseRequest struct {
	PropertyID  string `json:"property_id"  validate:"required"`
	TenantEmail string `json:"tenant_email" validate:"required,email"`
	LeaseTerms
}

type LeaseResponse struct {
	ID           string `json:"id"`
	PropertyID   string `json:"property_id"`
	TenantID     string `json:"tenant_id"`
	LandlordID   string `json:"landlord_id"`
	InvitationID string `json:"invitation_id,omitempty"`
	LeaseTerms
	CreatedAt time.Time `json:"created_at"`
}

type ListLeasesResponse struct {
	Leases []LeaseResponse `json:"leases"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	// Status indicates the overall health status (e.g., "ok")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks contains readiness check results for critical dependencies (only for /readyz)
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks represents the status of critical service dependencies.
type HealthChecks struct {
	// Database indicates the database connection status
	Database string `json:"database"`
}
