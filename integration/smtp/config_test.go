package smtp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailgate/core/config"
	"github.com/dmitrymomot/mailgate/core/mail"
	"github.com/dmitrymomot/mailgate/integration/smtp"
)

func TestConfig_SetHost(t *testing.T) {
	t.Parallel()

	t.Run("plain host", func(t *testing.T) {
		t.Parallel()

		var cfg smtp.Config
		cfg.SetHost("mail.example.com")
		assert.Equal(t, "mail.example.com", cfg.Host)
		assert.Empty(t, cfg.Secure)
	})

	t.Run("ssl prefix forces ssl mode and is stripped", func(t *testing.T) {
		t.Parallel()

		var cfg smtp.Config
		cfg.SetHost("ssl://mail.example.com")
		assert.Equal(t, "mail.example.com", cfg.Host)
		assert.Equal(t, smtp.SecureSSL, cfg.Secure)

		// Default port now follows the ssl mode.
		cfg.SetPort(0)
		assert.Equal(t, 465, cfg.Port)
	})
}

func TestConfig_SetPort(t *testing.T) {
	t.Parallel()

	t.Run("zero defaults to 25", func(t *testing.T) {
		t.Parallel()

		var cfg smtp.Config
		cfg.SetPort(0)
		assert.Equal(t, 25, cfg.Port)
	})

	t.Run("explicit port kept", func(t *testing.T) {
		t.Parallel()

		var cfg smtp.Config
		cfg.SetPort(2525)
		assert.Equal(t, 2525, cfg.Port)
	})
}

func TestConfig_Normalize(t *testing.T) {
	t.Parallel()

	cfg := smtp.Config{Host: "ssl://mail.example.com"}
	cfg.Normalize()

	assert.Equal(t, "mail.example.com", cfg.Host)
	assert.Equal(t, smtp.SecureSSL, cfg.Secure)
	assert.Equal(t, 465, cfg.Port)

	cfg = smtp.Config{Host: "mail.example.com"}
	cfg.Normalize()

	assert.Equal(t, smtp.SecureNone, cfg.Secure)
	assert.Equal(t, 25, cfg.Port)
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	valid := smtp.Config{
		Host:   "mail.example.com",
		Port:   587,
		Secure: smtp.SecureTLS,
	}

	tests := []struct {
		name    string
		mutate  func(*smtp.Config)
		wantErr string
	}{
		{
			name:   "valid config",
			mutate: func(*smtp.Config) {},
		},
		{
			name:    "empty host",
			mutate:  func(c *smtp.Config) { c.Host = "" },
			wantErr: "Host is required",
		},
		{
			name:    "port too high",
			mutate:  func(c *smtp.Config) { c.Port = 70000 },
			wantErr: "Port must be between 1 and 65535",
		},
		{
			name:    "unknown security mode",
			mutate:  func(c *smtp.Config) { c.Secure = "starttls" },
			wantErr: "Secure must be no, ssl, or tls",
		},
		{
			name:    "auth without credentials",
			mutate:  func(c *smtp.Config) { c.Auth = true },
			wantErr: "Username and Password are required",
		},
		{
			name: "auth with credentials",
			mutate: func(c *smtp.Config) {
				c.Auth = true
				c.Username = "user"
				c.Password = "secret"
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, mail.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_Address(t *testing.T) {
	t.Parallel()

	cfg := smtp.Config{Host: "mail.example.com", Port: 587}
	assert.Equal(t, "mail.example.com:587", cfg.Address())
}

func TestConfig_LoadFromEnv(t *testing.T) {
	t.Setenv("SMTP_HOST", "mail.example.com")
	t.Setenv("SMTP_SECURE", "tls")
	t.Setenv("SMTP_AUTH", "1")
	t.Setenv("SMTP_USERNAME", "user@example.com")
	t.Setenv("SMTP_PASSWORD", "secret")
	t.Setenv("SMTP_FROM_ADDRESS", "noreply@example.com")

	var cfg smtp.Config
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "mail.example.com", cfg.Host)
	assert.Equal(t, smtp.SecureTLS, cfg.Secure)
	assert.True(t, cfg.Auth)
	assert.Equal(t, "user@example.com", cfg.Username)
	assert.Equal(t, "noreply@example.com", cfg.FromAddress)

	cfg.Normalize()
	assert.Equal(t, 25, cfg.Port)
}
