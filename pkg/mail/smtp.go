package mail

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	netmail "net/mail"
	"net/smtp"
	"strconv"
	"strings"
	"time"
)

// SMTPSettings configure the SMTP mailer.
type SMTPSettings struct {
	Enabled  bool
	Host     string
	Port     int
	Username string
	Password string
	From     string
	// UseTLS dials with implicit TLS (port 465). Otherwise STARTTLS is used
	// when the server offers it.
	UseTLS  bool
	Timeout time.Duration
}

func (s SMTPSettings) validate() error {
	if !s.Enabled {
		return nil
	}
	if strings.TrimSpace(s.Host) == "" {
		return errors.New("smtp: host is required when enabled")
	}
	if s.Port == 0 {
		return errors.New("smtp: port is required when enabled")
	}
	if _, err := netmail.ParseAddress(s.From); err != nil {
		return fmt.Errorf("smtp: invalid from address: %w", err)
	}
	return nil
}

type smtpClient interface {
	Mail(string) error
	Rcpt(string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
	Auth(smtp.Auth) error
}

type dialFunc func(ctx context.Context, s SMTPSettings) (smtpClient, error)

// SMTPMailer delivers over SMTP with PLAIN auth.
type SMTPMailer struct {
	settings SMTPSettings
	dial     dialFunc
}

// NewSMTPMailer validates settings and returns a mailer. Timeout defaults to
// ten seconds.
func NewSMTPMailer(s SMTPSettings) (*SMTPMailer, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	if s.Timeout <= 0 {
		s.Timeout = 10 * time.Second
	}
	return &SMTPMailer{settings: s, dial: dialSMTP}, nil
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if !m.settings.Enabled {
		return ErrDisabled
	}

	from := strings.TrimSpace(msg.From)
	if from == "" {
		from = m.settings.From
	}

	rcpts := dedupe(msg.To)
	if len(rcpts) == 0 {
		return errors.New("smtp: at least one recipient is required")
	}
	for _, rcpt := range rcpts {
		if _, err := netmail.ParseAddress(rcpt); err != nil {
			return fmt.Errorf("smtp: invalid recipient %q: %w", rcpt, err)
		}
	}

	client, err := m.dial(ctx, m.settings)
	if err != nil {
		return err
	}
	defer client.Close()

	if m.settings.Username != "" {
		auth := smtp.PlainAuth("", m.settings.Username, m.settings.Password, m.settings.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp: auth: %w", err)
		}
	}

	if err := client.Mail(from); err != nil {
		return fmt.Errorf("smtp: mail from: %w", err)
	}
	for _, rcpt := range rcpts {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("smtp: rcpt to %s: %w", rcpt, err)
		}
	}

	wc, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp: data: %w", err)
	}
	if _, err := io.WriteString(wc, render(from, rcpts, msg.Subject, msg.Body)); err != nil {
		_ = wc.Close()
		return fmt.Errorf("smtp: write body: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("smtp: close data: %w", err)
	}
	return client.Quit()
}

func dialSMTP(ctx context.Context, s SMTPSettings) (smtpClient, error) {
	addr := net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
	tlsConf := &tls.Config{ServerName: s.Host, MinVersion: tls.VersionTLS12}

	var (
		conn net.Conn
		err  error
	)
	if s.UseTLS {
		d := &tls.Dialer{NetDialer: &net.Dialer{Timeout: s.Timeout}, Config: tlsConf}
		conn, err = d.DialContext(ctx, "tcp", addr)
	} else {
		d := &net.Dialer{Timeout: s.Timeout}
		conn, err = d.DialContext(ctx, "tcp", addr)
	}
	if err != nil {
		return nil, fmt.Errorf("smtp: dial %s: %w", addr, err)
	}

	// net/smtp has no context support; bound the whole exchange instead.
	deadline := time.Now().Add(s.Timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = conn.SetDeadline(deadline)

	c, err := smtp.NewClient(conn, s.Host)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("smtp: handshake: %w", err)
	}

	if !s.UseTLS {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err := c.StartTLS(tlsConf); err != nil {
				_ = c.Close()
				return nil, fmt.Errorf("smtp: starttls: %w", err)
			}
		}
	}
	return c, nil
}

func dedupe(addrs []string) []string {
	seen := make(map[string]struct{}, len(addrs))
	var out []string
	for _, a := range addrs {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		k := strings.ToLower(a)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, a)
	}
	return out
}

func render(from string, to []string, subject, body string) string {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + strings.Join(to, ", ") + "\r\n")
	b.WriteString("Subject: " + headerSafe(subject) + "\r\n")
	b.WriteString("Date: " + time.Now().UTC().Format(time.RFC1123Z) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return b.String()
}

func headerSafe(v string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(v)
}
