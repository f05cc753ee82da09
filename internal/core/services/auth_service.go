package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"lexconnect-api/internal/adapters/persistence/models"
	"lexconnect-api/internal/adapters/persistence/repositories"
	"lexconnect-api/internal/config"
	"lexconnect-api/internal/core/domain"
	"lexconnect-api/internal/pkg/password"
	"lexconnect-api/internal/pkg/token"

	"gorm.io/gorm"
)

// AuthService handles credential and session logic
type AuthService struct {
	userRepo         repositories.UserRepository
	revokedTokenRepo repositories.RevokedTokenRepository
	cfg              *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepository,
	revokedTokenRepo repositories.RevokedTokenRepository,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo:         userRepo,
		revokedTokenRepo: revokedTokenRepo,
		cfg:              cfg,
	}
}

// RegisterInput represents client/lawyer registration input
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Age      *int   `json:"age"`
}

// LawyerRegisterInput represents lawyer registration input
type LawyerRegisterInput struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	Specialization  string `json:"specialization"`
	ExperienceYears int    `json:"experience_years"`
	ProBono         bool   `json:"pro_bono"`
	Availability    bool   `json:"availability"`
	City            string `json:"city"`
	State           string `json:"state"`
	Country         string `json:"country"`
	Bio             string `json:"bio"`
	Language        string `json:"language"`
}

// LoginInput represents login input
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User  *models.UserResponse `json:"user"`
	Token string               `json:"token"`
}

// NormalizeEmail lowercases and trims an email address. All stores and
// lookups go through this, making uniqueness case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register registers a new client or lawyer account
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*AuthResponse, error) {
	email := NormalizeEmail(input.Email)

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateEmail
	}

	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     strings.TrimSpace(input.Name),
		Email:    email,
		Password: hashed,
		Role:     input.Role,
		Age:      input.Age,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Concurrent registration of the same email loses the uniqueness
		// race at the store; surface it as the duplicate it is.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, err
	}

	tokenString, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	log.Printf("User registered: %s (role: %s)", user.Email, user.Role)

	return &AuthResponse{User: user.ToResponse(), Token: tokenString}, nil
}

// RegisterLawyer registers a lawyer account with its directory profile
func (s *AuthService) RegisterLawyer(ctx context.Context, input *LawyerRegisterInput) (*AuthResponse, error) {
	email := NormalizeEmail(input.Email)

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateEmail
	}

	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     strings.TrimSpace(input.Name),
		Email:    email,
		Password: hashed,
		Role:     string(domain.RoleLawyer),
	}

	language := input.Language
	if language == "" {
		language = "English"
	}

	profile := &models.LawyerProfile{
		Specialization:  input.Specialization,
		ExperienceYears: input.ExperienceYears,
		ProBono:         input.ProBono,
		Availability:    input.Availability,
		City:            strings.TrimSpace(input.City),
		State:           strings.TrimSpace(input.State),
		Country:         strings.TrimSpace(input.Country),
		Bio:             input.Bio,
		Language:        language,
	}

	if err := s.userRepo.CreateWithProfile(ctx, user, profile); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, err
	}
	user.LawyerProfile = profile

	tokenString, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	log.Printf("Lawyer registered: %s (%s)", user.Email, profile.Specialization)

	return &AuthResponse{User: user.ToResponse(), Token: tokenString}, nil
}

// Login authenticates an identity by email and password. A missing account
// and a wrong password both surface as ErrInvalidCredentials so the
// response leaks nothing about which part failed.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, NormalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(input.Password, user.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	tokenString, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	log.Printf("User logged in: %s", user.Email)

	return &AuthResponse{User: user.ToResponse(), Token: tokenString}, nil
}

// Logout appends the presented token to the revocation ledger. The entry
// mirrors the token's own expiry so the sweeper can purge it once the
// token would be rejected on expiry grounds anyway.
func (s *AuthService) Logout(ctx context.Context, tokenString string) error {
	claims, err := token.Validate(tokenString, s.cfg.JWT.Secret)
	if err != nil {
		return domain.ErrTokenInvalid
	}

	entry := &models.RevokedToken{
		Token:     tokenString,
		JTI:       claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}

	if err := s.revokedTokenRepo.Create(ctx, entry); err != nil {
		return err
	}

	log.Printf("Session revoked for user ID %d", claims.UserID)
	return nil
}

// ValidateToken is the request-gate check: the revocation ledger is
// consulted first, then the signature and expiry. A ledger failure is an
// error, never "not revoked".
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*token.Claims, error) {
	revoked, err := s.revokedTokenRepo.Exists(ctx, tokenString)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, domain.ErrTokenRevoked
	}

	claims, err := token.Validate(tokenString, s.cfg.JWT.Secret)
	if err != nil {
		if errors.Is(err, token.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}

	return claims, nil
}

// IsTokenRevoked reports whether a token is in the revocation ledger
func (s *AuthService) IsTokenRevoked(ctx context.Context, tokenString string) (bool, error) {
	return s.revokedTokenRepo.Exists(ctx, tokenString)
}

// GetUserByID gets a user by ID
func (s *AuthService) GetUserByID(ctx context.Context, userID uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// issueToken signs a session token for the identity. Signing failure is
// returned to the caller and must fail the request.
func (s *AuthService) issueToken(user *models.User) (string, error) {
	return token.Issue(user.ID, user.Role, s.cfg.JWT.Secret, s.cfg.JWT.TokenTTL)
}
