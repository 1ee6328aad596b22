package commerce

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-commerce/middleware/jwtware"
)

// gateValidator adapts TokenService to the middleware's validator interface.
type gateValidator struct {
	tokens TokenService
}

var _ jwtware.TokenValidator = (*gateValidator)(nil)

func (g gateValidator) ValidateAccess(tokenString string) (jwtware.AuthClaims, error) {
	claims, err := g.tokens.ValidateAccess(tokenString)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// ProtectedRoute returns the auth gate middleware bound to tokens. Requests
// that pass it carry validated claims in Locals under cfg's context key.
func ProtectedRoute(cfg Config, tokens TokenService) fiber.Handler {
	return jwtware.New(jwtware.Config{
		TokenValidator: gateValidator{tokens: tokens},
		ContextKey:     cfg.GetContextKey(),
	})
}
