package middleware

import (
	"context"
	"errors"
	"log"
	"strings"

	"lexconnect-api/internal/core/domain"
	"lexconnect-api/internal/pkg/response"
	"lexconnect-api/internal/pkg/token"

	"github.com/gofiber/fiber/v2"
)

// TokenValidator validates a bearer token against the signing secret and
// the revocation ledger
type TokenValidator interface {
	ValidateToken(ctx context.Context, tokenString string) (*token.Claims, error)
}

// ExtractBearerToken pulls the token out of a bearer Authorization header.
// Anything but the exact bearer scheme yields an empty string.
func ExtractBearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(authHeader, "Bearer ")
}

// AuthRequired is the request gate for protected routes. The flow is:
// no token -> 401; revoked -> 401; bad signature or expired -> 401;
// otherwise the decoded identity is attached to the request context.
// A ledger lookup failure is also a 401: never fail open.
func AuthRequired(validator TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := ExtractBearerToken(c)
		if tokenString == "" {
			return response.Unauthorized(c, "No token, authorization denied")
		}

		claims, err := validator.ValidateToken(c.Context(), tokenString)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrTokenRevoked):
				return response.Unauthorized(c, "You are logged out, please log in again")
			case errors.Is(err, domain.ErrTokenExpired):
				return response.Unauthorized(c, "Token has expired")
			case errors.Is(err, domain.ErrTokenInvalid):
				return response.Unauthorized(c, "Token is not valid")
			default:
				log.Printf("Revocation check failed: %v", err)
				return response.Unauthorized(c, "Authorization denied")
			}
		}

		c.Locals("userID", claims.UserID)
		c.Locals("role", claims.Role)
		c.Locals("token", tokenString)

		return c.Next()
	}
}

// RoleRequired restricts a route to the given roles. It runs after
// AuthRequired; the gate itself stays role-agnostic.
func RoleRequired(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		for _, allowed := range allowedRoles {
			if role == allowed {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}
