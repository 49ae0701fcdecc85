// Package mail implements an SMTP email gateway: it composes RFC 822/2047
// compliant message headers from abstract composition state and drives a
// delivery through a pluggable transport session, with connection reuse and
// well-defined reset semantics between sends.
//
// The package is transport-agnostic. The Transport interface describes one
// SMTP conversation; the integration/smtp package provides the production
// implementation over plain, SSL, and STARTTLS connections.
//
// Basic usage:
//
//	import (
//		"context"
//		"github.com/dmitrymomot/mailgate/core/mail"
//		"github.com/dmitrymomot/mailgate/integration/smtp"
//	)
//
//	gw, err := smtp.NewGateway(smtp.Config{
//		Host:        "mail.example.com",
//		Secure:      smtp.SecureTLS,
//		FromAddress: "noreply@example.com",
//	})
//	if err != nil {
//		// Handle configuration error
//	}
//
//	msg := gw.Message()
//	msg.AddRecipient("Jane Doe", "jane@example.com")
//	msg.Subject = "Welcome!"
//	msg.BodyPlain = "Hello Jane"
//
//	if err := gw.Send(context.Background()); err != nil {
//		// Composition state is preserved on failure; fix and retry.
//	}
//	// Composition state is cleared after a successful send.
//
// # Session reuse
//
// With WithKeepAlive(true) the gateway holds one transport session open
// across sends. Without it, the session is terminated after each delivery
// and a fresh one is opened on the next. Call CloseConn to tear the session
// down explicitly; teardown failures are always swallowed.
//
// # Error Handling
//
// Validation and configuration errors surface before any network activity.
// Transport failures are caught at the gateway boundary and re-signaled as
// ErrDeliveryFailed joined with the underlying diagnostic:
//
//	err := gw.Send(ctx)
//	switch {
//	case errors.Is(err, mail.ErrInvalidMessage):
//		// Missing sender or recipients
//	case errors.Is(err, mail.ErrDeliveryFailed):
//		// Connection, negotiation, auth, or SMTP rejection
//	}
package mail
