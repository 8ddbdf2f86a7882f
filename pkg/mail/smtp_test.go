package mail

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/require"
)

type nopWriteCloser struct{ *bytes.Buffer }

func (nopWriteCloser) Close() error { return nil }

type fakeClient struct {
	from   string
	rcpts  []string
	data   bytes.Buffer
	authed bool
	quit   bool
	rcptFn func(string) error
}

func (f *fakeClient) Mail(from string) error { f.from = from; return nil }
func (f *fakeClient) Rcpt(to string) error {
	if f.rcptFn != nil {
		if err := f.rcptFn(to); err != nil {
			return err
		}
	}
	f.rcpts = append(f.rcpts, to)
	return nil
}
func (f *fakeClient) Data() (io.WriteCloser, error) { return nopWriteCloser{&f.data}, nil }
func (f *fakeClient) Quit() error                   { f.quit = true; return nil }
func (f *fakeClient) Close() error                  { return nil }
func (f *fakeClient) Auth(smtp.Auth) error          { f.authed = true; return nil }

func newTestMailer(t *testing.T, fc *fakeClient, s SMTPSettings) *SMTPMailer {
	t.Helper()
	m, err := NewSMTPMailer(s)
	require.NoError(t, err)
	m.dial = func(context.Context, SMTPSettings) (smtpClient, error) { return fc, nil }
	return m
}

var enabled = SMTPSettings{Enabled: true, Host: "smtp.example.com", Port: 587, From: "no-reply@sewa.test"}

func TestNewSMTPMailerValidates(t *testing.T) {
	_, err := NewSMTPMailer(SMTPSettings{Enabled: true})
	require.ErrorContains(t, err, "host is required")

	_, err = NewSMTPMailer(SMTPSettings{Enabled: true, Host: "h", Port: 25, From: "not an address"})
	require.ErrorContains(t, err, "invalid from")

	m, err := NewSMTPMailer(SMTPSettings{})
	require.NoError(t, err)
	require.ErrorIs(t, m.Send(context.Background(), Message{To: []string{"a@b.co"}}), ErrDisabled)
}

func TestSMTPMailerDefaultTimeout(t *testing.T) {
	m, err := NewSMTPMailer(enabled)
	require.NoError(t, err)
	require.Positive(t, m.settings.Timeout)
}

func TestSMTPMailerSend(t *testing.T) {
	fc := &fakeClient{}
	m := newTestMailer(t, fc, enabled)

	err := m.Send(context.Background(), Message{
		To:      []string{"tenant@example.com", "TENANT@example.com", " "},
		Subject: "Your code\r\nBcc: x@evil.test",
		Body:    "123456",
	})
	require.NoError(t, err)

	require.Equal(t, "no-reply@sewa.test", fc.from)
	require.Equal(t, []string{"tenant@example.com"}, fc.rcpts)
	require.False(t, fc.authed)
	require.True(t, fc.quit)

	body := fc.data.String()
	require.Contains(t, body, "Subject: Your code  Bcc: x@evil.test\r\n")
	require.NotContains(t, body, "\r\nBcc:")
	require.Contains(t, body, "\r\n\r\n123456")
}

func TestSMTPMailerAuthAndErrors(t *testing.T) {
	s := enabled
	s.Username = "user"
	s.Password = "pass"

	fc := &fakeClient{rcptFn: func(string) error { return errors.New("550 no such user") }}
	m := newTestMailer(t, fc, s)

	err := m.Send(context.Background(), Message{To: []string{"x@example.com"}})
	require.ErrorContains(t, err, "rcpt to")
	require.True(t, fc.authed)

	err = m.Send(context.Background(), Message{})
	require.ErrorContains(t, err, "at least one recipient")

	err = m.Send(context.Background(), Message{To: []string{"bogus"}})
	require.ErrorContains(t, err, "invalid recipient")
}

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	require.NoError(t, r.Send(context.Background(), Message{To: []string{"a@b.co"}, Subject: "one"}))
	require.NoError(t, r.Send(context.Background(), Message{To: []string{"a@b.co"}, Subject: "two"}))

	last, ok := r.Last("A@b.co")
	require.True(t, ok)
	require.Equal(t, "two", last.Subject)
	require.Len(t, r.Messages(), 2)

	r.Err = errors.New("down")
	require.Error(t, r.Send(context.Background(), Message{To: []string{"c@d.co"}}))
	_, ok = r.Last("c@d.co")
	require.True(t, ok)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, r.Send(ctx, Message{}), context.Canceled)
}
