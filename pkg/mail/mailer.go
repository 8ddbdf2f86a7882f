// Package mail sends transactional email (PIN codes, invitations).
package mail

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/mysewa/sewa/pkg/slogx"
)

// ErrDisabled signals that SMTP delivery is disabled via configuration.
var ErrDisabled = errors.New("mail: delivery disabled")

// Message is an outbound plain-text email.
type Message struct {
	From    string
	To      []string
	Subject string
	Body    string
}

// Mailer sends messages. Implementations must honour ctx cancellation.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// LogMailer writes messages to the request logger instead of delivering
// them. Used in dev when SMTP is off; never enable it in prod since it logs
// PIN codes.
type LogMailer struct{}

func (LogMailer) Send(ctx context.Context, msg Message) error {
	slogx.FromContext(ctx).Info("mail (log only)",
		slog.String("to", strings.Join(msg.To, ",")),
		slog.String("subject", msg.Subject),
		slog.String("body", msg.Body),
	)
	return nil
}

// Recorder keeps every message in memory. Err, when set, is returned from
// Send after the message is recorded.
type Recorder struct {
	mu   sync.Mutex
	msgs []Message
	Err  error
}

func (r *Recorder) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
	return r.Err
}

// Messages returns a copy of the recorded messages.
func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Message, len(r.msgs))
	copy(out, r.msgs)
	return out
}

// Last returns the most recent message sent to addr.
func (r *Recorder) Last(addr string) (Message, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.msgs) - 1; i >= 0; i-- {
		for _, to := range r.msgs[i].To {
			if strings.EqualFold(to, addr) {
				return r.msgs[i], true
			}
		}
	}
	return Message{}, false
}
