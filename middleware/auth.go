package middleware

import (
	"fmt"
	"strings"

	"github.com/biosecret/voice-todo/common"
	"github.com/biosecret/voice-todo/services"
	"github.com/gofiber/fiber/v2"
)

const claimsKey = "claims"

// TokenVerifier decodes bearer tokens into claims.
type TokenVerifier interface {
	Verify(token string) (*services.Claims, error)
}

// JWTMiddleware rejects requests without a valid "Authorization: Bearer"
// token and stores the decoded claims for the route handler.
func JWTMiddleware(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := bearerToken(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return err
		}

		claims, err := verifier.Verify(tokenString)
		if err != nil {
			return err
		}

		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

func bearerToken(header string) (string, error) {
	fields := strings.Fields(header)
	switch {
	case len(fields) == 0:
		return "", common.ErrMissingToken
	case !strings.EqualFold(fields[0], "Bearer"):
		return "", fmt.Errorf("%w: invalid token format", common.ErrInvalidOrExpiredToken)
	case len(fields) == 1:
		return "", common.ErrMissingToken
	case len(fields) > 2:
		return "", fmt.Errorf("%w: invalid token format", common.ErrInvalidOrExpiredToken)
	}
	return fields[1], nil
}

// Claims returns the claims stored by JWTMiddleware, or nil outside the gate.
func Claims(c *fiber.Ctx) *services.Claims {
	claims, _ := c.Locals(claimsKey).(*services.Claims)
	return claims
}

// CallerID returns the account id of the authenticated caller.
func CallerID(c *fiber.Ctx) string {
	if claims := Claims(c); claims != nil {
		return claims.AccountID
	}
	return ""
}
