package store

import (
	"context"
	"errors"
	"time"

	"github.com/mysewa/sewa/internal/sewa/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. Sub-repositories are reached through methods so that code
// running inside WithTx can only touch the tx-bound repos it was handed.
type Store interface {
	Accounts() Accounts
	Invitations() Invitations
	Leases() Leases
	Properties() Properties

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise. fn must use the repos of the tx it is given.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

// All conditional writes below return ErrNotFound when no row matched, which
// callers read as "somebody else got there first".

type Accounts interface {
	GetAccountByID(ctx context.Context, id string) (domain.Account, error)

	// GetAccountByEmail expects a normalised address.
	GetAccountByEmail(ctx context.Context, email string) (domain.Account, error)

	// CreateAccount returns ErrAlreadyExists when the email is taken.
	CreateAccount(ctx context.Context, a domain.Account) error

	// SetPin stores a fresh PIN hash and expiry, resetting the attempt counter.
	// Any previous PIN is overwritten.
	SetPin(ctx context.Context, accountID, pinHash string, expiresAt, now time.Time) error

	// IncrementPinAttempts bumps the counter only while pinHash is still the
	// pending PIN, returning the new count.
	IncrementPinAttempts(ctx context.Context, accountID, pinHash string, now time.Time) (int, error)

	// ClearPin drops the pending PIN only while it still equals pinHash.
	ClearPin(ctx context.Context, accountID, pinHash string, now time.Time) error

	// ConsumePin clears the pending PIN and marks the email verified in one
	// conditional update on pinHash.
	ConsumePin(ctx context.Context, accountID, pinHash string, now time.Time) error

	// SetVerifiedPassword stores a password hash and marks the email
	// verified, for accounts that proved control of their inbox another way.
	SetVerifiedPassword(ctx context.Context, accountID, hash string, now time.Time) error

	// DeleteAccount is administrative; the core never deletes accounts.
	DeleteAccount(ctx context.Context, accountID string) error

	// ClearExpiredPins drops every pending PIN whose expiry is before now.
	ClearExpiredPins(ctx context.Context, now time.Time) (int64, error)
}

type Invitations interface {
	// CreateInvitation returns ErrAlreadyExists when a PENDING invitation for
	// the same property and email exists, or on a token fingerprint clash.
	CreateInvitation(ctx context.Context, inv domain.Invitation) error

	GetInvitationByID(ctx context.Context, id string) (domain.Invitation, error)
	GetInvitationByTokenHash(ctx context.Context, tokenHash string) (domain.Invitation, error)

	// ListInvitationsByLandlord returns newest first.
	ListInvitationsByLandlord(ctx context.Context, landlordID string, page domain.Page) ([]domain.Invitation, error)

	// TransitionInvitation moves an invitation from one status to another.
	// Moving to ACCEPTED also stamps accepted_at.
	TransitionInvitation(ctx context.Context, id string, from, to domain.InvitationStatus, now time.Time) error

	// RefreshInvitation sets a new token and expiry and resets the status to
	// PENDING, unless the invitation was ACCEPTED.
	RefreshInvitation(ctx context.Context, id, tokenHash string, expiresAt, now time.Time) error

	// ExpireOverdueInvitations flips PENDING invitations past their expiry to EXPIRED.
	ExpireOverdueInvitations(ctx context.Context, now time.Time) (int64, error)
}

type Leases interface {
	CreateLease(ctx context.Context, l domain.Lease) error
	ListLeasesByLandlord(ctx context.Context, landlordID string, page domain.Page) ([]domain.Lease, error)
	ListLeasesByTenant(ctx context.Context, tenantID string, page domain.Page) ([]domain.Lease, error)
	CountLeasesByInvitation(ctx context.Context, invitationID string) (int64, error)
}

type Properties interface {
	CreateProperty(ctx context.Context, p domain.Property) error
	GetPropertyByID(ctx context.Context, id string) (domain.Property, error)

	// SetPropertyStatus sets the status unconditionally.
	SetPropertyStatus(ctx context.Context, id string, status domain.PropertyStatus, now time.Time) error

	// TransitionProperty sets the status only while it still equals from.
	TransitionProperty(ctx context.Context, id string, from, to domain.PropertyStatus, now time.Time) error
}
