package mail

import (
	"fmt"
	"net/textproto"
	"regexp"
)

// Attachment is an opaque file payload handed to the BodyBuilder. The
// gateway never inspects attachment contents; MIME assembly is the
// builder's concern.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Message holds the composition state for one outgoing email. It is
// populated through its setters before each Send and cleared by Reset after
// a successful delivery. A Message is not safe for concurrent mutation.
type Message struct {
	FromName    string
	FromAddress string

	ReplyToName    string
	ReplyToAddress string

	Subject     string
	BodyPlain   string
	BodyHTML    string
	Recipients  Recipients
	Attachments []Attachment

	headers map[string]string
}

// AddRecipient appends a recipient to the message. Numeric labels render as
// bare addresses in the visible recipient list; any other label is treated
// as a display name.
func (m *Message) AddRecipient(label, address string) {
	m.Recipients.Add(label, address)
}

// SetHeader records a custom header field with an unencoded body. The name
// is canonicalized, so "bcc" and "Bcc" address the same field. Computed
// fields (Message-ID, Date, From, Subject, To, MIME-Version) overwrite
// caller-supplied fields of the same name at send time.
func (m *Message) SetHeader(name, body string) {
	if m.headers == nil {
		m.headers = make(map[string]string)
	}
	m.headers[textproto.CanonicalMIMEHeaderKey(name)] = body
}

// Header returns the raw body of a custom header field, or "" when unset.
func (m *Message) Header(name string) string {
	return m.headers[textproto.CanonicalMIMEHeaderKey(name)]
}

// Headers returns a copy of the custom header field set.
func (m *Message) Headers() map[string]string {
	out := make(map[string]string, len(m.headers))
	for name, body := range m.headers {
		out[name] = body
	}
	return out
}

// emailRegex is a simple regex for validating email addresses.
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Validate checks that the message is deliverable: a valid sender address
// and at least one recipient with a valid address. A single malformed
// recipient fails the whole message rather than being skipped silently.
func (m *Message) Validate() error {
	if m.FromAddress == "" || !emailRegex.MatchString(m.FromAddress) {
		return fmt.Errorf("%w: sender must be a valid email address", ErrInvalidMessage)
	}
	if len(m.Recipients) == 0 {
		return fmt.Errorf("%w: at least one recipient is required", ErrInvalidMessage)
	}
	for _, rcpt := range m.Recipients {
		if !emailRegex.MatchString(rcpt.Address) {
			return fmt.Errorf("%w: recipient %q must be a valid email address", ErrInvalidMessage, rcpt.Address)
		}
	}
	return nil
}

// Reset clears the composition state: subject, bodies, recipients,
// attachments, and custom header fields. The sender and reply-to identities
// persist across sends, matching how a configured gateway is reused.
func (m *Message) Reset() {
	m.Subject = ""
	m.BodyPlain = ""
	m.BodyHTML = ""
	m.Recipients = nil
	m.Attachments = nil
	m.headers = nil
}
