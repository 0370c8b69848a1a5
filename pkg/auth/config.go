package auth

import (
	"time"

	"github.com/Goden-Gun/httpcall-lib/pkg/config"
)

const (
	// DefaultKeyPrefix is the key prefix for stored session tokens.
	DefaultKeyPrefix = "httpcall:session:"
	// DefaultSessionName names the session when the caller does not.
	DefaultSessionName = "default"
)

// Options controls how a Session stores and checks its token.
type Options struct {
	Name      string
	KeyPrefix string
	// Leeway treats a token as expired this long before its exp claim.
	Leeway time.Duration
	// TTL bounds how long a stored token is kept; zero keeps it until exp.
	TTL time.Duration
}

// Defaults fills zero values.
func (o *Options) Defaults() {
	if o.Name == "" {
		o.Name = DefaultSessionName
	}
	if o.KeyPrefix == "" {
		o.KeyPrefix = DefaultKeyPrefix
	}
	if o.Leeway < 0 {
		o.Leeway = 0
	}
}

// OptionsFromConfig maps the loaded session config.
func OptionsFromConfig(cfg config.SessionConfig) Options {
	cfg.ApplyDefaults()
	return Options{
		KeyPrefix: cfg.KeyPrefix,
		Leeway:    cfg.RefreshLeeway.Duration(),
		TTL:       cfg.TokenTTL.Duration(),
	}
}
