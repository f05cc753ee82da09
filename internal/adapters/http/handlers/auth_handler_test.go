package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"lexconnect-api/internal/adapters/http/middleware"
	"lexconnect-api/internal/adapters/persistence/models"
	"lexconnect-api/internal/config"
	"lexconnect-api/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// In-memory stores backing the auth flow tests. The handlers and the
// request gate run against a real AuthService; only the persistence
// layer is swapped out.

type memUserStore struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]*models.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{nextID: 1, users: make(map[uint]*models.User)}
}

func (s *memUserStore) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	user.ID = s.nextID
	s.nextID++
	s.users[user.ID] = user
	return nil
}

func (s *memUserStore) CreateWithProfile(ctx context.Context, user *models.User, profile *models.LawyerProfile) error {
	if err := s.Create(ctx, user); err != nil {
		return err
	}
	profile.UserID = user.ID
	return nil
}

func (s *memUserStore) GetByID(_ context.Context, id uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (s *memUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memUserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := s.GetByEmail(ctx, email)
	if err == nil {
		return true, nil
	}
	return false, nil
}

func (s *memUserStore) Update(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
	return nil
}

type memTokenLedger struct {
	mu      sync.Mutex
	revoked map[string]*models.RevokedToken
}

func newMemTokenLedger() *memTokenLedger {
	return &memTokenLedger{revoked: make(map[string]*models.RevokedToken)}
}

func (l *memTokenLedger) Create(_ context.Context, entry *models.RevokedToken) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.revoked[entry.Token] = entry
	return nil
}

func (l *memTokenLedger) Exists(_ context.Context, token string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.revoked[token]
	return ok, nil
}

func (l *memTokenLedger) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var purged int64
	for token, entry := range l.revoked {
		if entry.ExpiresAt.Before(now) {
			delete(l.revoked, token)
			purged++
		}
	}
	return purged, nil
}

func newAuthApp(t *testing.T) *fiber.App {
	t.Helper()

	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:   "handler-test-secret",
			TokenTTL: time.Hour,
		},
	}

	authService := services.NewAuthService(newMemUserStore(), newMemTokenLedger(), cfg)
	handler := NewAuthHandler(authService)

	app := fiber.New()
	auth := app.Group("/api/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", middleware.AuthRequired(authService), handler.Logout)
	auth.Get("/user", middleware.AuthRequired(authService), handler.Me)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	return resp.StatusCode, decodeBody(t, resp.Body)
}

func decodeBody(t *testing.T, body io.ReadCloser) map[string]interface{} {
	t.Helper()
	defer body.Close()

	var decoded map[string]interface{}
	require.NoError(t, json.NewDecoder(body).Decode(&decoded))
	return decoded
}

func TestRegisterLoginFetchIdentity(t *testing.T) {
	app := newAuthApp(t)

	status, body := postJSON(t, app, "/api/auth/register", fiber.Map{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "secret123",
		"role":     "client",
	})
	require.Equal(t, fiber.StatusOK, status)
	require.True(t, body["success"].(bool))

	status, body = postJSON(t, app, "/api/auth/login", fiber.Map{
		"email":    "alice@example.com",
		"password": "secret123",
	})
	require.Equal(t, fiber.StatusOK, status)

	data := body["data"].(map[string]interface{})
	tokenString := data["token"].(string)
	require.NotEmpty(t, tokenString)

	req := httptest.NewRequest("GET", "/api/auth/user", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body = decodeBody(t, resp.Body)
	user := body["data"].(map[string]interface{})
	assert.Equal(t, "Alice", user["name"])
	assert.Equal(t, "client", user["role"])
	_, leaked := user["password"]
	assert.False(t, leaked, "password must never appear in a response")
}

func TestLogoutRevokesTokenOverHTTP(t *testing.T) {
	app := newAuthApp(t)

	_, _ = postJSON(t, app, "/api/auth/register", fiber.Map{
		"name":     "Bob",
		"email":    "bob@example.com",
		"password": "secret123",
		"role":     "client",
	})
	status, body := postJSON(t, app, "/api/auth/login", fiber.Map{
		"email":    "bob@example.com",
		"password": "secret123",
	})
	require.Equal(t, fiber.StatusOK, status)
	tokenString := body["data"].(map[string]interface{})["token"].(string)

	// Token works before logout.
	req := httptest.NewRequest("GET", "/api/auth/user", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest("POST", "/api/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Same token is rejected afterwards even though its signature and
	// expiry are still valid.
	req = httptest.NewRequest("GET", "/api/auth/user", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRegisterRejectsInvalidPayload(t *testing.T) {
	app := newAuthApp(t)

	status, body := postJSON(t, app, "/api/auth/register", fiber.Map{
		"name":     "A",
		"email":    "not-an-email",
		"password": "123",
		"role":     "admin",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.False(t, body["success"].(bool))
	assert.NotEmpty(t, body["errors"])
}

func TestLoginInvalidCredentials(t *testing.T) {
	app := newAuthApp(t)

	_, _ = postJSON(t, app, "/api/auth/register", fiber.Map{
		"name":     "Carol",
		"email":    "carol@example.com",
		"password": "secret123",
		"role":     "client",
	})

	status, wrongPassword := postJSON(t, app, "/api/auth/login", fiber.Map{
		"email":    "carol@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, noSuchUser := postJSON(t, app, "/api/auth/login", fiber.Map{
		"email":    "nobody@example.com",
		"password": "secret123",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, wrongPassword["error"], noSuchUser["error"])
}
