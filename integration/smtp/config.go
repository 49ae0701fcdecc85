package smtp

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/dmitrymomot/mailgate/core/mail"
)

// Security modes for the SMTP connection.
const (
	// SecureNone uses a plain TCP connection.
	SecureNone = "no"
	// SecureSSL uses a dedicated TLS connection from the first byte.
	SecureSSL = "ssl"
	// SecureTLS starts plain and upgrades the connection via STARTTLS.
	SecureTLS = "tls"
)

// Default ports per security mode.
const (
	defaultPort    = 25
	defaultPortSSL = 465
)

// Config holds SMTP transport configuration. Only Host is required; every
// other field defaults to a sensible value, so absence of optional settings
// is normal rather than exceptional.
type Config struct {
	Host string `env:"SMTP_HOST,required"`
	Port int    `env:"SMTP_PORT"`
	// Secure is the connection security mode: "no", "ssl", or "tls".
	Secure       string `env:"SMTP_SECURE" envDefault:"no"`
	HeloHostname string `env:"SMTP_HELO_HOSTNAME"`
	Auth         bool   `env:"SMTP_AUTH"`
	Username     string `env:"SMTP_USERNAME"`
	Password     string `env:"SMTP_PASSWORD"`
	FromName     string `env:"SMTP_FROM_NAME"`
	FromAddress  string `env:"SMTP_FROM_ADDRESS"`
}

// SetHost sets the server hostname. An "ssl://" prefix is shorthand for
// Secure=ssl and is stripped from the stored host.
func (c *Config) SetHost(host string) {
	if stripped, ok := strings.CutPrefix(host, "ssl://"); ok {
		c.Secure = SecureSSL
		host = stripped
	}
	c.Host = host
}

// SetPort sets the server port. Zero selects the default for the current
// security mode: 465 for ssl, 25 otherwise.
func (c *Config) SetPort(port int) {
	if port == 0 {
		port = c.securityDefaultPort()
	}
	c.Port = port
}

// Normalize applies the ssl:// host shorthand, the security mode default,
// and the port default. It is called by NewGateway but is safe to call
// directly on hand-built configs.
func (c *Config) Normalize() {
	c.SetHost(c.Host)
	if c.Secure == "" {
		c.Secure = SecureNone
	}
	if c.Port == 0 {
		c.Port = c.securityDefaultPort()
	}
}

// Validate checks the configuration before any connection is attempted.
func (c Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("%w: Host is required", mail.ErrInvalidConfig)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("%w: Port must be between 1 and 65535", mail.ErrInvalidConfig)
	}
	if c.Secure != SecureNone && c.Secure != SecureSSL && c.Secure != SecureTLS {
		return fmt.Errorf("%w: Secure must be no, ssl, or tls", mail.ErrInvalidConfig)
	}
	if c.Auth && (c.Username == "" || c.Password == "") {
		return fmt.Errorf("%w: Username and Password are required when Auth is enabled", mail.ErrInvalidConfig)
	}
	return nil
}

// Address returns the host:port dial target.
func (c Config) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c Config) securityDefaultPort() int {
	if c.Secure == SecureSSL {
		return defaultPortSSL
	}
	return defaultPort
}
