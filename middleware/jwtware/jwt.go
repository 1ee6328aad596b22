package jwtware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
)

// Wire contract with existing clients: messages and codes are fixed.
var (
	// ErrMissingHeader is returned when the Authorization header is absent.
	ErrMissingHeader = errors.New("Unauthorized access", errors.CategoryAuth).
		WithTextCode("auth_missing_header").
		WithCode(errors.CodeUnauthorized)

	// ErrPartialHeader is returned when the header is present but does not
	// carry both token slots.
	ErrPartialHeader = errors.New("No header properties were found", errors.CategoryAuth).
		WithTextCode("auth_partial_header").
		WithCode(errors.CodeUnauthorized)
)

// TokenValidator validates access tokens without import cycles.
// This mirrors the TokenService.ValidateAccess method from the commerce package.
type TokenValidator interface {
	ValidateAccess(tokenString string) (AuthClaims, error)
}

// AuthClaims interface for structured claims without import cycles.
// This mirrors the AuthClaims interface from the commerce package.
type AuthClaims interface {
	Subject() string
	UserID() string
}

// Config holds the middleware knobs.
type Config struct {
	// Filter skips the gate for requests it returns true on.
	Filter func(*fiber.Ctx) bool

	// SuccessHandler runs after claims have been stored. Defaults to Next.
	SuccessHandler fiber.Handler

	// ErrorHandler finalizes the response for any gate failure.
	ErrorHandler func(*fiber.Ctx, error) error

	// ContextKey is the Locals key the validated claims are stored under.
	ContextKey string

	// HeaderName defaults to Authorization.
	HeaderName string

	// AuthScheme defaults to Bearer.
	AuthScheme string

	// TokenValidator is required.
	TokenValidator TokenValidator
}

// New returns the auth gate middleware.
//
// The protected surface expects the bespoke header shape
//
//	Authorization: Bearer <accessToken> <refreshToken>
//
// where both slots must be present. Only the access token is validated here;
// the refresh slot exists so clients keep sending the full pair they were
// issued at login.
func New(config ...Config) fiber.Handler {
	cfg := configDefault(config...)

	return func(c *fiber.Ctx) error {
		if cfg.Filter != nil && cfg.Filter(c) {
			return c.Next()
		}

		access, err := extractAccessToken(c, cfg)
		if err != nil {
			return cfg.ErrorHandler(c, err)
		}

		claims, err := cfg.TokenValidator.ValidateAccess(access)
		if err != nil {
			return cfg.ErrorHandler(c, err)
		}

		c.Locals(cfg.ContextKey, claims)

		return cfg.SuccessHandler(c)
	}
}

// extractAccessToken pulls the access token out of the three-part header.
// Absence and partial presence are distinct failures.
func extractAccessToken(c *fiber.Ctx, cfg Config) (string, error) {
	raw := c.Get(cfg.HeaderName)
	if strings.TrimSpace(raw) == "" {
		return "", ErrMissingHeader
	}

	// positional split: scheme, access, refresh
	parts := strings.Split(raw, " ")
	if len(parts) < 3 || parts[1] == "" || parts[2] == "" {
		return "", ErrPartialHeader
	}

	if cfg.AuthScheme != "" && !strings.EqualFold(parts[0], cfg.AuthScheme) {
		return "", ErrPartialHeader
	}

	return parts[1], nil
}

// ClaimsFromContext returns the claims the gate stored, or nil when the
// request never passed through it.
func ClaimsFromContext(c *fiber.Ctx, contextKey string) AuthClaims {
	claims, ok := c.Locals(contextKey).(AuthClaims)
	if !ok {
		return nil
	}
	return claims
}

// UserIDFromContext returns the authenticated user id, or "" when absent.
func UserIDFromContext(c *fiber.Ctx, contextKey string) string {
	claims := ClaimsFromContext(c, contextKey)
	if claims == nil {
		return ""
	}
	return claims.UserID()
}

func configDefault(config ...Config) (cfg Config) {
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.TokenValidator == nil {
		panic("JWT middleware configuration: TokenValidator is required.")
	}

	if cfg.SuccessHandler == nil {
		cfg.SuccessHandler = func(c *fiber.Ctx) error {
			return c.Next()
		}
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = defaultErrorHandler
	}

	if cfg.ContextKey == "" {
		cfg.ContextKey = "user"
	}

	if cfg.HeaderName == "" {
		cfg.HeaderName = fiber.HeaderAuthorization
	}

	if cfg.AuthScheme == "" {
		cfg.AuthScheme = "Bearer"
	}

	return cfg
}

// defaultErrorHandler maps rich errors to their own status, anything else to
// a 401. Claim decode faults keep their 500: a token we signed but cannot
// read is a server problem, not a client one.
func defaultErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusUnauthorized
	message := err.Error()

	var richErr *errors.Error
	if errors.As(err, &richErr) {
		if richErr.Code > 0 {
			status = richErr.Code
		}
		if richErr.Message != "" {
			message = richErr.Message
		}
	}

	return c.Status(status).JSON(fiber.Map{
		"err": message,
	})
}
