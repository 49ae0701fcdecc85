package smtp

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/dmitrymomot/mailgate/core/mail"
)

// Session is one live SMTP connection implementing mail.Transport. A
// session, once open, is never reconfigured; changing the configuration
// requires terminating it and dialing a new one. Headers set via SetHeader
// accumulate until the next SendMail and are written ahead of the body.
type Session struct {
	cfg     Config
	client  *smtp.Client
	headers []string
	closed  bool
}

var _ mail.Transport = (*Session)(nil)

// Dial opens a session using the given configuration: a dedicated TLS
// connection for Secure=ssl, a plain connection otherwise, upgraded via
// STARTTLS for Secure=tls. The HELO hostname is announced when set and
// AUTH LOGIN is performed when Auth is enabled. Any negotiation failure
// closes the socket; no half-open session is ever returned.
func Dial(cfg Config) (*Session, error) {
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client, err := connect(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.HeloHostname != "" {
		if err := client.Hello(cfg.HeloHostname); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("failed to announce HELO hostname: %w", err)
		}
	}

	if cfg.Secure == SecureTLS {
		if err := client.StartTLS(&tls.Config{ServerName: cfg.Host}); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("failed to start TLS: %w", err)
		}
	}

	if cfg.Auth {
		if err := client.Auth(LoginAuth(cfg.Username, cfg.Password)); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("authentication failed: %w", err)
		}
	}

	return &Session{cfg: cfg, client: client}, nil
}

func connect(cfg Config) (*smtp.Client, error) {
	if cfg.Secure == SecureSSL {
		conn, err := tls.Dial("tcp", cfg.Address(), &tls.Config{ServerName: cfg.Host})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to SMTP server with TLS: %w", err)
		}
		client, err := smtp.NewClient(conn, cfg.Host)
		if err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("failed to create SMTP client: %w", err)
		}
		return client, nil
	}

	client, err := smtp.Dial(cfg.Address())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	return client, nil
}

// SetHeader registers a wire-ready header line for the next delivery. The
// body must already be encoded and folded.
func (s *Session) SetHeader(name, foldedBody string) {
	s.headers = append(s.headers, name+": "+foldedBody)
}

// SendMail executes the MAIL/RCPT/DATA sequence, writing the accumulated
// headers, a blank line, and the body. The header accumulator is consumed
// by the attempt regardless of its outcome: a retry registers a fresh
// header set, so stale lines from a failed delivery must never leak into
// the next message.
func (s *Session) SendMail(from string, rcpts []string, body string) error {
	if s.closed || s.client == nil {
		return fmt.Errorf("smtp session is closed")
	}

	headers := s.headers
	s.headers = nil

	if err := s.client.Mail(from); err != nil {
		return s.abort(fmt.Errorf("failed to set sender: %w", err))
	}
	for _, rcpt := range rcpts {
		if err := s.client.Rcpt(rcpt); err != nil {
			return s.abort(fmt.Errorf("failed to set recipient %s: %w", rcpt, err))
		}
	}

	writer, err := s.client.Data()
	if err != nil {
		return s.abort(fmt.Errorf("failed to get data writer: %w", err))
	}

	var wire strings.Builder
	for _, line := range headers {
		wire.WriteString(line)
		wire.WriteString("\r\n")
	}
	wire.WriteString("\r\n")
	wire.WriteString(body)

	if _, err := writer.Write([]byte(wire.String())); err != nil {
		_ = writer.Close()
		return s.abort(fmt.Errorf("failed to write message: %w", err))
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	return nil
}

// abort discards the in-flight MAIL transaction with a best-effort RSET so
// the session stays usable for a retry on servers that reject pipelined
// state from an aborted transaction.
func (s *Session) abort(err error) error {
	_ = s.client.Reset()
	return err
}

// Quit terminates the session politely. The connection is released even
// when the QUIT exchange fails, and calling Quit again is a no-op.
func (s *Session) Quit() error {
	if s.closed {
		return nil
	}
	s.closed = true

	err := s.client.Quit()
	if err != nil {
		_ = s.client.Close()
	}
	s.client = nil
	return err
}
