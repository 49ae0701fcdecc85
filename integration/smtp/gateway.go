package smtp

import (
	"github.com/dmitrymomot/mailgate/core/mail"
)

// NewGateway binds a flat SMTP configuration onto a mail.Gateway: the
// transport factory dials sessions with cfg, and the gateway's default
// sender identity is taken from the config's from fields. Load cfg from the
// environment with core/config or build it by hand.
func NewGateway(cfg Config, opts ...mail.Option) (*mail.Gateway, error) {
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	factory := func() (mail.Transport, error) {
		return Dial(cfg)
	}

	gw := mail.NewGateway(factory, opts...)
	msg := gw.Message()
	msg.FromName = cfg.FromName
	msg.FromAddress = cfg.FromAddress
	return gw, nil
}

// MustNewGateway is like NewGateway but panics on invalid configuration.
// Follows the fail-fast pattern for dependency injection at startup.
func MustNewGateway(cfg Config, opts ...mail.Option) *mail.Gateway {
	gw, err := NewGateway(cfg, opts...)
	if err != nil {
		panic(err)
	}
	return gw
}
