package commerce

import (
	"fmt"
	"time"
)

// Logger interface we expect from consumers
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// Config carries the knobs the session flow needs. Implementations live with
// the caller; cmd/server provides an env-backed one.
type Config interface {
	// GetAccessTokenSecret returns the symmetric key used for access tokens.
	GetAccessTokenSecret() string
	// GetRefreshTokenSecret returns the symmetric key used for refresh
	// tokens. Must differ from the access secret.
	GetRefreshTokenSecret() string
	GetAccessTokenTTL() time.Duration
	GetRefreshTokenTTL() time.Duration
	GetIssuer() string
	// GetContextKey is the Locals key the auth gate stores claims under.
	GetContextKey() string
}

// DefaultLogger returns the stdout logger used when consumers provide none.
func DefaultLogger() Logger {
	return defLogger{}
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] COMMERCE "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] COMMERCE "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] COMMERCE "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
