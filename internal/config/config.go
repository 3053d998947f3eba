// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig
	Shop     ShopConfig
	Admin    AdminConfig
	Upload   UploadConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing response (default: 30s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 30s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"30s"`
}

// ShopConfig holds the storefront's initial appearance and payment details.
// Appearance can be changed later from the admin page; these values only
// apply at startup.
type ShopConfig struct {
	Title           string `env:"SHOP_TITLE" default:"Group Buy Helper"`
	Description     string `env:"SHOP_DESCRIPTION"`
	TextColor       string `env:"SHOP_TEXT_COLOR" default:"#1f2933"`
	BackgroundColor string `env:"SHOP_BACKGROUND_COLOR" default:"#ffffff"`

	// BankDetails is shown to customers who pick bank transfer.
	BankDetails string `env:"SHOP_BANK_DETAILS"`

	// LinePayID is shown to customers who pick LINE Pay.
	LinePayID string `env:"SHOP_LINEPAY_ID"`

	// SeedDemo starts the catalog with two sample products (default: false)
	SeedDemo bool `env:"SHOP_SEED_DEMO" default:"false"`
}

// AdminConfig holds the shared admin secret. Exactly one form is needed;
// the bcrypt hash wins when both are set.
type AdminConfig struct {
	Password     string `env:"ADMIN_PASSWORD" envAlt:"ADMIN_SECRET"`
	PasswordHash string `env:"ADMIN_PASSWORD_HASH"`
}

// UploadConfig holds image upload settings.
type UploadConfig struct {
	// MaxImageSize is the maximum accepted image size in bytes (default: 5MB)
	MaxImageSize int64 `env:"UPLOAD_MAX_IMAGE_SIZE" default:"5242880"`

	// ImageMaxWidth downsizes wider PNG/JPEG uploads; 0 keeps them as-is (default: 0)
	ImageMaxWidth int `env:"UPLOAD_IMAGE_MAX_WIDTH" default:"0"`
}

// RateLimitConfig holds rate limiting settings per time window.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the default rate limit per IP (default: 100)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"100"`

	// OrderLimit is order submissions per minute per IP (default: 10)
	OrderLimit int `env:"RATE_LIMIT_ORDER" default:"10"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`

	// EnableCSRF protects form posts with gorilla/csrf (default: true)
	EnableCSRF bool `env:"SECURITY_ENABLE_CSRF" default:"true"`

	// CookieSecure marks session and CSRF cookies Secure; enable behind TLS (default: false)
	CookieSecure bool `env:"COOKIE_SECURE" default:"false"`

	// SessionKey and CSRFKey are base64-encoded keys of at least 32 bytes.
	// When unset a random key is generated, which logs everyone out on restart.
	SessionKey string `env:"SESSION_KEY"`
	CSRFKey    string `env:"CSRF_KEY"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
