package mail_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailgate/core/mail"
)

func TestMessage_Validate(t *testing.T) {
	t.Parallel()

	valid := func() *mail.Message {
		msg := &mail.Message{FromAddress: "sender@example.com"}
		msg.AddRecipient("0", "user@example.com")
		return msg
	}

	tests := []struct {
		name    string
		mutate  func(*mail.Message)
		wantErr string
	}{
		{
			name:   "valid message",
			mutate: func(*mail.Message) {},
		},
		{
			name:    "missing sender",
			mutate:  func(m *mail.Message) { m.FromAddress = "" },
			wantErr: "sender",
		},
		{
			name:    "malformed sender",
			mutate:  func(m *mail.Message) { m.FromAddress = "not-an-address" },
			wantErr: "sender",
		},
		{
			name:    "no recipients",
			mutate:  func(m *mail.Message) { m.Recipients = nil },
			wantErr: "recipient",
		},
		{
			name:    "malformed recipient fails the whole message",
			mutate:  func(m *mail.Message) { m.AddRecipient("Broken", "broken@") },
			wantErr: `"broken@"`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			msg := valid()
			tt.mutate(msg)

			err := msg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, mail.ErrInvalidMessage)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMessage_HeaderCanonicalization(t *testing.T) {
	t.Parallel()

	var msg mail.Message
	msg.SetHeader("bcc", "secret@z.com")

	assert.Equal(t, "secret@z.com", msg.Header("Bcc"))
	assert.Equal(t, "secret@z.com", msg.Header("BCC"))

	msg.SetHeader("X-Custom-Tag", "welcome")
	headers := msg.Headers()
	assert.Equal(t, "welcome", headers["X-Custom-Tag"])
}

func TestMessage_Reset(t *testing.T) {
	t.Parallel()

	msg := &mail.Message{
		FromName:    "Sender",
		FromAddress: "sender@example.com",
		Subject:     "Hello",
		BodyPlain:   "plain",
		BodyHTML:    "<p>html</p>",
		Attachments: []mail.Attachment{{Filename: "a.txt", Data: []byte("x")}},
	}
	msg.AddRecipient("0", "user@example.com")
	msg.SetHeader("X-Tag", "welcome")

	msg.Reset()

	assert.Empty(t, msg.Subject)
	assert.Empty(t, msg.BodyPlain)
	assert.Empty(t, msg.BodyHTML)
	assert.Empty(t, msg.Recipients)
	assert.Empty(t, msg.Attachments)
	assert.Empty(t, msg.Headers())

	// Sender identity persists; a configured gateway stays configured.
	assert.Equal(t, "Sender", msg.FromName)
	assert.Equal(t, "sender@example.com", msg.FromAddress)
}
