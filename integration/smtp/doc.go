// Package smtp provides the production transport session for the mail
// gateway: one exclusively-owned SMTP connection over a plain, SSL, or
// STARTTLS channel, optionally authenticated with AUTH LOGIN.
//
// Basic usage:
//
//	import (
//		"context"
//
//		"github.com/dmitrymomot/mailgate/core/config"
//		"github.com/dmitrymomot/mailgate/core/mail"
//		"github.com/dmitrymomot/mailgate/integration/smtp"
//	)
//
//	var cfg smtp.Config
//	config.MustLoad(&cfg)
//
//	gw := smtp.MustNewGateway(cfg, mail.WithKeepAlive(true))
//
//	msg := gw.Message()
//	msg.AddRecipient("Jane Doe", "jane@example.com")
//	msg.Subject = "Welcome!"
//	msg.BodyHTML = "<h1>Welcome to our service</h1>"
//
//	if err := gw.Send(context.Background()); err != nil {
//		// Handle delivery error
//	}
//	gw.CloseConn()
//
// # Configuration
//
// The Config struct maps the flat SMTP settings record:
//
//   - SMTP_HOST: server hostname; an "ssl://" prefix is shorthand for the
//     ssl security mode and is stripped from the stored host (required)
//   - SMTP_PORT: server port; defaults to 465 for ssl, 25 otherwise
//   - SMTP_SECURE: "no", "ssl", or "tls" (STARTTLS); defaults to "no"
//   - SMTP_HELO_HOSTNAME: client identity announced at session start
//   - SMTP_AUTH: enables AUTH LOGIN with SMTP_USERNAME/SMTP_PASSWORD
//   - SMTP_FROM_NAME, SMTP_FROM_ADDRESS: default sender identity
//
// # Session Lifecycle
//
// Dial opens and fully negotiates a session or fails without leaving a
// half-open connection. The gateway reuses one session across sends while
// keep-alive is enabled; otherwise it terminates the session after each
// delivery. Quit is idempotent and always releases the connection, even
// when the QUIT exchange itself fails.
package smtp
