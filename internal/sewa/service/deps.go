package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/mysewa/sewa/internal/sewa/domain"
	"github.com/mysewa/sewa/internal/sewa/store"
	"github.com/mysewa/sewa/pkg/cryptox"
	"github.com/mysewa/sewa/pkg/mail"
	"github.com/mysewa/sewa/pkg/slogx"
)

const (
	DefaultStoreTimeout = 5 * time.Second
	DefaultMailTimeout  = 10 * time.Second
)

// Deps are the collaborators shared by every service. The zero values of
// Now and the timeouts fall back to the wall clock and the defaults above.
type Deps struct {
	Store  store.Store
	Hasher cryptox.Hasher
	Mailer mail.Mailer

	// MailFrom is the envelope sender for outbound mail.
	MailFrom string

	Now          func() time.Time
	StoreTimeout time.Duration
	MailTimeout  time.Duration
}

func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now().UTC()
	}
	return time.Now().UTC()
}

func (d Deps) storeTimeout() time.Duration {
	if d.StoreTimeout > 0 {
		return d.StoreTimeout
	}
	return DefaultStoreTimeout
}

// readCtx bounds a store read by StoreTimeout.
func (d Deps) readCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, d.storeTimeout())
}

// writeCtx bounds a store write by StoreTimeout but detaches it from the
// caller's cancellation, so a client hanging up cannot abort it halfway.
func (d Deps) writeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), d.storeTimeout())
}

func (d Deps) send(ctx context.Context, to, subject, body string) error {
	timeout := d.MailTimeout
	if timeout <= 0 {
		timeout = DefaultMailTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return d.Mailer.Send(ctx, mail.Message{
		From:    d.MailFrom,
		To:      []string{to},
		Subject: subject,
		Body:    body,
	})
}

// dependency logs a store failure and classifies it.
func dependency(ctx context.Context, msg string, err error) error {
	slogx.FromContext(ctx).Error(msg, slog.Any("error", err))
	return domain.Dependency(err)
}

// verifySecret checks secret against a hash from any supported algorithm.
// A malformed stored hash is treated as a mismatch and logged.
func verifySecret(ctx context.Context, secret, encoded string) bool {
	ok, err := cryptox.VerifyPassword(secret, encoded)
	if err != nil {
		slogx.FromContext(ctx).Error("stored hash is malformed", slog.Any("error", err))
		return false
	}
	return ok
}
