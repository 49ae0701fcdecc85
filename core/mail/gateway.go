package mail

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/mailgate/core/logger"
)

// Gateway orchestrates SMTP deliveries: it turns the composition state of
// its Message into encoded, folded headers, drives a transport session
// through the delivery, and resets the composition afterwards. One live
// session exists per gateway at most; Send calls on the same instance are
// serialized internally.
type Gateway struct {
	mu        sync.Mutex
	factory   TransportFactory
	transport Transport

	keepAlive bool
	builder   BodyBuilder
	log       *slog.Logger
	hostname  string
	now       func() time.Time

	msg          Message
	envelopeFrom string
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithKeepAlive keeps the transport session open across sends instead of
// terminating it after each delivery.
func WithKeepAlive(keepAlive bool) Option {
	return func(g *Gateway) { g.keepAlive = keepAlive }
}

// WithBodyBuilder replaces the default body builder. Use this to plug in
// MIME multipart or attachment-aware assembly.
func WithBodyBuilder(builder BodyBuilder) Option {
	return func(g *Gateway) { g.builder = builder }
}

// WithLogger sets the logger for delivery outcomes. Defaults to slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(g *Gateway) { g.log = log }
}

// WithHostname overrides the hostname used in generated Message-ID values.
// Defaults to os.Hostname().
func WithHostname(hostname string) Option {
	return func(g *Gateway) { g.hostname = hostname }
}

// NewGateway creates a gateway delivering through sessions opened by factory.
func NewGateway(factory TransportFactory, opts ...Option) *Gateway {
	g := &Gateway{
		factory: factory,
		builder: defaultBodyBuilder{},
		log:     slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.hostname == "" {
		if name, err := os.Hostname(); err == nil {
			g.hostname = name
		} else {
			g.hostname = "localhost"
		}
	}
	return g
}

// Message exposes the composition state populated before each Send.
func (g *Gateway) Message() *Message {
	return &g.msg
}

// SetEnvelopeFrom overrides the envelope sender given to the MAIL command.
// The address must not contain carriage-return or line-feed characters;
// invalid values are rejected without mutating state.
func (g *Gateway) SetEnvelopeFrom(address string) error {
	if strings.ContainsAny(address, "\r\n") {
		return fmt.Errorf("%w: envelope sender must not contain line breaks", ErrInvalidConfig)
	}
	g.envelopeFrom = address
	return nil
}

// EnvelopeFrom returns the current envelope sender override, or "" when the
// sender address is used.
func (g *Gateway) EnvelopeFrom() string {
	return g.envelopeFrom
}

// header is a name/body pair in wire emission order.
type header struct {
	name string
	body string
}

// Send validates the composed message, assembles and encodes the header
// set, and delivers through the transport session, opening one if none is
// live. On success the composition state is cleared; on failure it is
// preserved so the caller can inspect or retry. Transport failures are
// re-signaled as ErrDeliveryFailed carrying the underlying diagnostic.
func (g *Gateway) Send(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return errors.Join(ErrDeliveryFailed, err)
	}
	if err := g.msg.Validate(); err != nil {
		return err
	}

	started := g.now()

	body, contentType, err := g.builder.Build(&g.msg)
	if err != nil {
		return errors.Join(ErrDeliveryFailed, err)
	}
	headers := g.assembleHeaders(contentType)

	if err := g.ensureOpen(); err != nil {
		return errors.Join(ErrDeliveryFailed, err)
	}
	for _, h := range headers {
		g.transport.SetHeader(h.name, Fold(h.body))
	}

	from := g.envelopeFrom
	if from == "" {
		from = g.msg.FromAddress
	}
	rcpts := g.msg.Recipients.Addresses()

	if err := g.transport.SendMail(from, rcpts, body); err != nil {
		g.log.Error("mail delivery failed",
			logger.Component("mail-gateway"),
			logger.Error(err),
		)
		return errors.Join(ErrDeliveryFailed, err)
	}

	if !g.keepAlive {
		g.closeTransport()
	}

	g.log.Info("mail delivered",
		logger.Component("mail-gateway"),
		slog.Int("recipients", len(rcpts)),
		logger.Duration(g.now().Sub(started)),
	)

	g.reset()
	return nil
}

// CloseConn terminates the live transport session, if any. Teardown
// failures are swallowed: a failed goodbye must not mask a completed send
// or block cleanup.
func (g *Gateway) CloseConn() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.closeTransport()
}

// ensureOpen opens a transport session when none is live. A session, once
// open, is reused as-is; configuration changes require closing it first.
func (g *Gateway) ensureOpen() error {
	if g.transport != nil {
		return nil
	}
	transport, err := g.factory()
	if err != nil {
		return err
	}
	g.transport = transport
	return nil
}

func (g *Gateway) closeTransport() {
	if g.transport == nil {
		return
	}
	if err := g.transport.Quit(); err != nil {
		g.log.Debug("smtp session teardown failed",
			logger.Component("mail-gateway"),
			logger.Error(err),
		)
	}
	g.transport = nil
}

func (g *Gateway) reset() {
	g.msg.Reset()
	g.envelopeFrom = ""
}

// assembleHeaders builds the header set fresh for this send: computed
// fields first in a fixed order, then caller-supplied fields sorted by
// name. A caller field is dropped only when a computed field of the same
// name was actually emitted this send; the Bcc field is consumed for
// routing and never emitted.
func (g *Gateway) assembleHeaders(contentType string) []header {
	bcc := g.msg.Header("Bcc")

	from := g.msg.FromAddress
	if g.msg.FromName != "" {
		from = encodeDisplayName(g.msg.FromName) + " <" + g.msg.FromAddress + ">"
	}

	headers := []header{
		{"Message-ID", fmt.Sprintf("<%s@%s>", uuid.NewString(), g.hostname)},
		{"Date", g.now().Format(time.RFC1123Z)},
		{"From", from},
		{"Subject", EncodeWord(g.msg.Subject)},
		{"To", BuildAddressList(g.msg.Recipients, bcc)},
		{"MIME-Version", "1.0"},
	}

	// Keys are canonical header names as stored by Message.SetHeader.
	overridden := map[string]struct{}{
		"Message-Id":   {},
		"Date":         {},
		"From":         {},
		"Subject":      {},
		"To":           {},
		"Mime-Version": {},
		"Bcc":          {},
	}

	if g.msg.ReplyToAddress != "" {
		replyTo := g.msg.ReplyToAddress
		if g.msg.ReplyToName != "" {
			replyTo = encodeDisplayName(g.msg.ReplyToName) + " <" + g.msg.ReplyToAddress + ">"
		}
		headers = append(headers, header{"Reply-To", replyTo})
		overridden["Reply-To"] = struct{}{}
	}
	if contentType != "" {
		headers = append(headers, header{"Content-Type", contentType})
		overridden["Content-Type"] = struct{}{}
	}

	custom := g.msg.Headers()
	names := make([]string, 0, len(custom))
	for name := range custom {
		if _, emitted := overridden[name]; emitted {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		headers = append(headers, header{name, custom[name]})
	}

	return headers
}
