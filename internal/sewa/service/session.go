package service

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"github.com/mysewa/sewa/internal/sewa/domain"
	"github.com/mysewa/sewa/internal/sewa/store"
	"github.com/mysewa/sewa/pkg/jwtx"
	"github.com/mysewa/sewa/pkg/slogx"
)

// Session is a freshly minted login.
type Session struct {
	Token     string
	ExpiresAt time.Time
	Account   domain.Account
}

type SessionService struct {
	Deps

	Signer   jwtx.Signer
	Verifier jwtx.Verifier
	Issuer   string
	TTL      time.Duration
}

func (s *SessionService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return jwtx.DefaultSessionTTL
}

// Issue signs a session token for a.
func (s *SessionService) Issue(a domain.Account) (Session, error) {
	now := s.now()
	claims := jwtx.NewSessionClaims(a.ID, a.Email, string(a.Role), s.Issuer, s.ttl(), now)

	token, err := s.Signer.Sign(claims)
	if err != nil {
		return Session{}, domain.ErrInternal.Wrap(err)
	}
	return Session{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
		Account:   a,
	}, nil
}

// Validate verifies raw and confirms its subject still exists. The role in
// the returned claims is the stored one, not the one signed into the token.
func (s *SessionService) Validate(ctx context.Context, raw string) (jwtx.Claims, error) {
	if raw == "" {
		return jwtx.Claims{}, domain.ErrUnauthenticated
	}

	claims, err := s.Verifier.Verify(raw)
	if err != nil {
		return jwtx.Claims{}, domain.ErrInvalidToken.Wrap(err)
	}

	ctx, cancel := s.readCtx(ctx)
	defer cancel()

	acc, err := s.Store.Accounts().GetAccountByID(ctx, claims.Subject)
	if errors.Is(err, store.ErrNotFound) {
		slogx.FromContext(ctx).Info("session for deleted account rejected",
			slog.String("account_id", claims.Subject),
		)
		return jwtx.Claims{}, domain.ErrInvalidToken.WithMessage("account no longer exists")
	}
	if err != nil {
		return jwtx.Claims{}, dependency(ctx, "failed to load session account", err)
	}

	claims.Role = string(acc.Role)
	claims.Email = acc.Email
	return claims, nil
}

// Authenticate lets SessionService back the HTTP auth middleware.
func (s *SessionService) Authenticate(ctx context.Context, raw string) (jwtx.Claims, error) {
	return s.Validate(ctx, raw)
}

// Authorize fails with ErrForbidden unless the claims carry one of allowed.
func Authorize(claims jwtx.Claims, allowed ...domain.Role) error {
	if slices.Contains(allowed, domain.Role(claims.Role)) {
		return nil
	}
	return domain.ErrForbidden
}
