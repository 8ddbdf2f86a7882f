package domain

import "time"

type InvitationStatus string

const (
	InvitationPending   InvitationStatus = "PENDING"
	InvitationAccepted  InvitationStatus = "ACCEPTED"
	InvitationExpired   InvitationStatus = "EXPIRED"
	InvitationCancelled InvitationStatus = "CANCELLED"
)

// InvitationTTL is how long an invitation link stays valid after it is
// created or resent.
const InvitationTTL = 7 * 24 * time.Hour

// LeaseTerms are copied onto the Lease when an invitation is accepted.
// Amounts are minor currency units.
type LeaseTerms struct {
	Start         time.Time
	End           time.Time
	MonthlyRent   int64
	DepositAmount *int64
}

// Validate checks the terms are internally consistent.
func (t LeaseTerms) Validate() error {
	if t.Start.IsZero() || t.End.IsZero() {
		return Validation("lease start and end dates are required")
	}
	if !t.Start.Before(t.End) {
		return Validation("lease start must be before lease end")
	}
	if t.MonthlyRent <= 0 {
		return Validation("monthly rent must be greater than zero")
	}
	if t.DepositAmount != nil && *t.DepositAmount < 0 {
		return Validation("deposit amount must not be negative")
	}
	return nil
}

type Invitation struct {
	ID          string
	TokenHash   string // fingerprint of the opaque token; the token itself is never stored
	PropertyID  string
	LandlordID  string
	TenantEmail string
	TenantName  string
	Terms       LeaseTerms
	Status      InvitationStatus
	ExpiresAt   time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	AcceptedAt  *time.Time
}

// IsOverdue reports whether a PENDING invitation has passed its deadline.
func (i Invitation) IsOverdue(now time.Time) bool {
	return i.Status == InvitationPending && now.After(i.ExpiresAt)
}
