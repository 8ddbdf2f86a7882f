package domain

import (
	"strings"
	"time"
)

type Role string

const (
	RoleLandlord Role = "LANDLORD"
	RoleTenant   Role = "TENANT"
)

func (r Role) Valid() bool {
	return r == RoleLandlord || r == RoleTenant
}

// MaxPinAttempts is the number of wrong guesses after which a pending PIN
// is discarded.
const MaxPinAttempts = 5

type Account struct {
	ID            string
	Email         string
	Name          string
	Role          Role
	PasswordHash  string     // empty when no password was set
	PinHash       string     // empty when no PIN is pending
	PinExpiresAt  *time.Time // set iff PinHash is set
	PinAttempts   int
	EmailVerified bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (a Account) HasPassword() bool { return a.PasswordHash != "" }

// HasPendingPin reports whether a PIN has been issued and not yet consumed
// or cleared. It says nothing about expiry.
func (a Account) HasPendingPin() bool {
	return a.PinHash != "" && a.PinExpiresAt != nil
}

// PinExpired reports whether the pending PIN is past its deadline at now.
func (a Account) PinExpired(now time.Time) bool {
	return a.PinExpiresAt != nil && now.After(*a.PinExpiresAt)
}

// NormalizeEmail lower-cases and trims an address. All lookups go through it.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
