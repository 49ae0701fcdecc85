package mail

import "errors"

// Error variables define mail gateway failures that can be wrapped with
// detailed context using errors.Join() for comprehensive error reporting.
var (
	// ErrInvalidConfig reports a configuration value rejected before any
	// network activity takes place.
	ErrInvalidConfig = errors.New("invalid mail gateway configuration")

	// ErrInvalidMessage reports a message that failed composition validation,
	// such as a missing sender or an empty recipient list.
	ErrInvalidMessage = errors.New("invalid mail message")

	// ErrDeliveryFailed wraps any transport-level failure during connection
	// establishment, negotiation, authentication, or the SMTP transaction.
	ErrDeliveryFailed = errors.New("failed to deliver mail")
)
