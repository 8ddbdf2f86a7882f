package domain

import "time"

type PropertyStatus string

const (
	PropertyVacant   PropertyStatus = "VACANT"
	PropertyOccupied PropertyStatus = "OCCUPIED"
)

type Property struct {
	ID          string
	LandlordID  string
	Title       string
	Address     string
	MonthlyRent int64
	Status      PropertyStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Lease struct {
	ID            string
	PropertyID    string
	TenantID      string
	LandlordID    string
	Start         time.Time
	End           time.Time
	MonthlyRent   int64
	DepositAmount *int64
	InvitationID  string // empty for direct assignment
	CreatedAt     time.Time
}

// Page bounds list queries.
type Page struct {
	Limit  int
	Offset int
}

const (
	DefaultPageLimit = 50
	MaxPageLimit     = 200
)

// Normalize clamps the page into the supported range.
func (p Page) Normalize() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}
