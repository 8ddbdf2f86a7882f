package gen

import (
	"database/sql"
	"time"
)

type Account struct {
	ID            string
	Email         string
	Name          string
	Role          string
	PasswordHash  sql.NullString
	PinHash       sql.NullString
	PinExpiresAt  sql.NullTime
	PinAttempts   int64
	EmailVerified bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Invitation struct {
	ID            string
	TokenHash     string
	PropertyID    string
	LandlordID    string
	TenantEmail   string
	TenantName    string
	LeaseStart    time.Time
	LeaseEnd      time.Time
	MonthlyRent   int64
	DepositAmount sql.NullInt64
	Status        string
	ExpiresAt     time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
	AcceptedAt    sql.NullTime
}

type Lease struct {
	ID            string
	PropertyID    string
	TenantID      string
	LandlordID    string
	StartDate     time.Time
	EndDate       time.Time
	MonthlyRent   int64
	DepositAmount sql.NullInt64
	InvitationID  sql.NullString
	CreatedAt     time.Time
}

type Property struct {
	ID          string
	LandlordID  string
	Title       string
	Address     string
	MonthlyRent int64
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
