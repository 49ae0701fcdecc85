package mail

// Transport is the SMTP conversation boundary the gateway delivers through.
// Implementations own exactly one network connection. Headers registered via
// SetHeader accumulate until the next SendMail, which writes them ahead of
// the body inside the DATA phase.
type Transport interface {
	// SetHeader registers a wire-ready (encoded and folded) header line for
	// the next delivery.
	SetHeader(name, foldedBody string)

	// SendMail executes the MAIL/RCPT/DATA sequence. from is the envelope
	// sender; rcpts is the full delivery set including any Bcc target.
	SendMail(from string, rcpts []string, body string) error

	// Quit terminates the session politely and releases the connection.
	// Calling Quit on an already-terminated session is a no-op.
	Quit() error
}

// TransportFactory opens a new transport session. The gateway calls it
// lazily on the first send and again whenever the previous session has been
// terminated.
type TransportFactory func() (Transport, error)

// BodyBuilder materializes the final message body from the composition
// state. Implementations decide how plain text, HTML, and attachments are
// assembled; the returned content type, when non-empty, becomes the
// Content-Type header.
type BodyBuilder interface {
	Build(msg *Message) (body, contentType string, err error)
}

// defaultBodyBuilder prefers the HTML body when present and falls back to
// plain text. Attachments require a MIME-aware builder and are ignored here.
type defaultBodyBuilder struct{}

func (defaultBodyBuilder) Build(msg *Message) (string, string, error) {
	if msg.BodyHTML != "" {
		return msg.BodyHTML, `text/html; charset="UTF-8"`, nil
	}
	return msg.BodyPlain, `text/plain; charset="UTF-8"`, nil
}
