package middleware

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"lexconnect-api/internal/core/domain"
	"lexconnect-api/internal/pkg/token"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubValidator struct {
	claims *token.Claims
	err    error
}

func (v *stubValidator) ValidateToken(_ context.Context, _ string) (*token.Claims, error) {
	return v.claims, v.err
}

func newGatedApp(validator TokenValidator) *fiber.App {
	app := fiber.New()
	app.Get("/protected", AuthRequired(validator), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": c.Locals("userID"),
			"role":    c.Locals("role"),
		})
	})
	return app
}

func TestAuthRequiredNoHeader(t *testing.T) {
	app := newGatedApp(&stubValidator{})

	req := httptest.NewRequest("GET", "/protected", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthRequiredWrongScheme(t *testing.T) {
	app := newGatedApp(&stubValidator{})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthRequiredRevokedToken(t *testing.T) {
	app := newGatedApp(&stubValidator{err: domain.ErrTokenRevoked})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer revoked.jwt.token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthRequiredExpiredToken(t *testing.T) {
	app := newGatedApp(&stubValidator{err: domain.ErrTokenExpired})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer expired.jwt.token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthRequiredFailsClosedOnLookupError(t *testing.T) {
	app := newGatedApp(&stubValidator{err: errors.New("ledger unreachable")})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer some.jwt.token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthRequiredValidToken(t *testing.T) {
	app := newGatedApp(&stubValidator{claims: &token.Claims{UserID: 12, Role: string(domain.RoleLawyer)}})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer valid.jwt.token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRoleRequired(t *testing.T) {
	app := fiber.New()
	app.Get("/lawyers-only",
		func(c *fiber.Ctx) error {
			c.Locals("role", string(domain.RoleClient))
			return c.Next()
		},
		RoleRequired(string(domain.RoleLawyer)),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
	)

	req := httptest.NewRequest("GET", "/lawyers-only", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
