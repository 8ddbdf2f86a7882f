package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/mysewa/sewa/internal/sewa/domain"
	"github.com/mysewa/sewa/internal/sewa/store"
	"github.com/mysewa/sewa/internal/sewa/store/drivers/sqlite/gen"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type Store struct {
	db  *sql.DB
	q   *gen.Queries
	dsn string
}

// NewStore opens the database at path. ":memory:" gives a private
// in-memory database, which only lives as long as its single connection.
func NewStore(path string) (*Store, error) {
	dsn := buildDSN(path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// SQLite serialises writers anyway; one connection avoids SQLITE_BUSY
	// between pooled connections and keeps :memory: databases alive.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{
		db:  db,
		q:   gen.New(db),
		dsn: dsn,
	}, nil
}

func buildDSN(path string) string {
	params := []string{
		"_pragma=foreign_keys(1)",
		"_pragma=busy_timeout(5000)",
		"_time_format=sqlite",
	}
	if path != ":memory:" {
		params = append(params, "_pragma=journal_mode(WAL)")
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + strings.Join(params, "&")
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return newTx(tx), nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}

	// Rollback after Commit is a harmless sql.ErrTxDone.
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) Accounts() store.Accounts       { return &accountsRepo{q: s.q} }
func (s *Store) Invitations() store.Invitations { return &invitationsRepo{q: s.q} }
func (s *Store) Leases() store.Leases           { return &leasesRepo{q: s.q} }
func (s *Store) Properties() store.Properties   { return &propertiesRepo{q: s.q} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// mapConstraint turns unique/primary key violations into ErrAlreadyExists.
func mapConstraint(err error) error {
	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return store.ErrAlreadyExists
		}
	}
	return err
}

// mapRows reports ErrNotFound for conditional writes that matched nothing.
func mapRows(n int64, err error) error {
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func mapNullString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

func mapStringNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}

func mapNullTimePtr(nt sql.NullTime) *time.Time {
	if nt.Valid {
		val := nt.Time.UTC()
		return &val
	}
	return nil
}

func mapTimeNull(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func mapNullInt64Ptr(ni sql.NullInt64) *int64 {
	if ni.Valid {
		val := ni.Int64
		return &val
	}
	return nil
}

func mapOptionalInt64(i *int64) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{Valid: false}
	}
	return sql.NullInt64{Int64: *i, Valid: true}
}

func mapAccount(row gen.Account) domain.Account {
	return domain.Account{
		ID:            row.ID,
		Email:         row.Email,
		Name:          row.Name,
		Role:          domain.Role(row.Role),
		PasswordHash:  mapNullString(row.PasswordHash),
		PinHash:       mapNullString(row.PinHash),
		PinExpiresAt:  mapNullTimePtr(row.PinExpiresAt),
		PinAttempts:   int(row.PinAttempts),
		EmailVerified: row.EmailVerified,
		CreatedAt:     row.CreatedAt.UTC(),
		UpdatedAt:     row.UpdatedAt.UTC(),
	}
}

func mapInvitation(row gen.Invitation) domain.Invitation {
	return domain.Invitation{
		ID:          row.ID,
		TokenHash:   row.TokenHash,
		PropertyID:  row.PropertyID,
		LandlordID:  row.LandlordID,
		TenantEmail: row.TenantEmail,
		TenantName:  row.TenantName,
		Terms: domain.LeaseTerms{
			Start:         row.LeaseStart.UTC(),
			End:           row.LeaseEnd.UTC(),
			MonthlyRent:   row.MonthlyRent,
			DepositAmount: mapNullInt64Ptr(row.DepositAmount),
		},
		Status:     domain.InvitationStatus(row.Status),
		ExpiresAt:  row.ExpiresAt.UTC(),
		CreatedAt:  row.CreatedAt.UTC(),
		UpdatedAt:  row.UpdatedAt.UTC(),
		AcceptedAt: mapNullTimePtr(row.AcceptedAt),
	}
}

func mapLease(row gen.Lease) domain.Lease {
	return domain.Lease{
		ID:            row.ID,
		PropertyID:    row.PropertyID,
		TenantID:      row.TenantID,
		LandlordID:    row.LandlordID,
		Start:         row.StartDate.UTC(),
		End:           row.EndDate.UTC(),
		MonthlyRent:   row.MonthlyRent,
		DepositAmount: mapNullInt64Ptr(row.DepositAmount),
		InvitationID:  mapNullString(row.InvitationID),
		CreatedAt:     row.CreatedAt.UTC(),
	}
}

func mapProperty(row gen.Property) domain.Property {
	return domain.Property{
		ID:          row.ID,
		LandlordID:  row.LandlordID,
		Title:       row.Title,
		Address:     row.Address,
		MonthlyRent: row.MonthlyRent,
		Status:      domain.PropertyStatus(row.Status),
		CreatedAt:   row.CreatedAt.UTC(),
		UpdatedAt:   row.UpdatedAt.UTC(),
	}
}
