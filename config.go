package commerce

import (
	"os"
	"time"

	"github.com/goliatone/go-errors"
)

// Access tokens are deliberately short lived; refresh tokens bound the
// window in which a stolen pair stays useful.
const (
	DefaultAccessTokenTTL  = 15 * time.Minute
	DefaultRefreshTokenTTL = 24 * time.Hour
	DefaultContextKey      = "user"
	DefaultIssuer          = "go-commerce"
)

// EnvConfig is an env-var backed Config.
type EnvConfig struct {
	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
	Issuer             string
	ContextKey         string
	Port               string
	DatabaseDSN        string
}

var _ Config = (*EnvConfig)(nil)

// NewEnvConfig loads configuration from the environment and validates it.
// Both token secrets are required and must differ so the two token kinds
// never verify against each other's key.
func NewEnvConfig() (*EnvConfig, error) {
	cfg := &EnvConfig{
		AccessTokenSecret:  os.Getenv("ACCESS_TOKEN_SECRET"),
		RefreshTokenSecret: os.Getenv("REFRESH_TOKEN_SECRET"),
		AccessTokenTTL:     DefaultAccessTokenTTL,
		RefreshTokenTTL:    DefaultRefreshTokenTTL,
		Issuer:             envOr("TOKEN_ISSUER", DefaultIssuer),
		ContextKey:         DefaultContextKey,
		Port:               envOr("PORT", "4000"),
		DatabaseDSN:        envOr("DATABASE_DSN", "file:commerce.db?cache=shared&mode=rwc"),
	}

	if ttl := os.Getenv("ACCESS_TOKEN_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, errors.Wrap(err, errors.CategoryValidation, "invalid ACCESS_TOKEN_TTL")
		}
		cfg.AccessTokenTTL = d
	}

	if ttl := os.Getenv("REFRESH_TOKEN_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, errors.Wrap(err, errors.CategoryValidation, "invalid REFRESH_TOKEN_TTL")
		}
		cfg.RefreshTokenTTL = d
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the invariants the token service relies on.
func (c *EnvConfig) Validate() error {
	if c.AccessTokenSecret == "" {
		return errors.New("ACCESS_TOKEN_SECRET is required", errors.CategoryValidation)
	}

	if c.RefreshTokenSecret == "" {
		return errors.New("REFRESH_TOKEN_SECRET is required", errors.CategoryValidation)
	}

	if c.AccessTokenSecret == c.RefreshTokenSecret {
		return errors.New("access and refresh token secrets must differ", errors.CategoryValidation)
	}

	return nil
}

func (c *EnvConfig) GetAccessTokenSecret() string      { return c.AccessTokenSecret }
func (c *EnvConfig) GetRefreshTokenSecret() string     { return c.RefreshTokenSecret }
func (c *EnvConfig) GetAccessTokenTTL() time.Duration  { return c.AccessTokenTTL }
func (c *EnvConfig) GetRefreshTokenTTL() time.Duration { return c.RefreshTokenTTL }
func (c *EnvConfig) GetIssuer() string                 { return c.Issuer }

func (c *EnvConfig) GetContextKey() string {
	if c.ContextKey == "" {
		return DefaultContextKey
	}
	return c.ContextKey
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
