package repositories

import (
	"context"
	"time"

	"lexconnect-api/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	CreateWithProfile(ctx context.Context, user *models.User, profile *models.LawyerProfile) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *models.User) error
}

// LawyerRepository defines lawyer directory repository interface
type LawyerRepository interface {
	GetByUserID(ctx context.Context, userID uint) (*models.LawyerProfile, error)
	Search(ctx context.Context, filter LawyerFilter, offset, limit int) ([]*models.LawyerProfile, int64, error)
	UpdateRating(ctx context.Context, profile *models.LawyerProfile) error
}

// RevokedTokenRepository defines the revocation ledger interface
type RevokedTokenRepository interface {
	Create(ctx context.Context, entry *models.RevokedToken) error
	Exists(ctx context.Context, token string) (bool, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// CaseRepository defines case repository interface
type CaseRepository interface {
	Create(ctx context.Context, c *models.Case) error
	GetByID(ctx context.Context, id uint) (*models.Case, error)
	ListByClient(ctx context.Context, clientID uint) ([]*models.Case, error)
	ListOpen(ctx context.Context, offset, limit int) ([]*models.Case, int64, error)
	Claim(ctx context.Context, caseID, lawyerID uint) error
	UpdateStatus(ctx context.Context, caseID uint, status string) error
}

// LawyerFilter holds directory search filters; zero values mean "any"
type LawyerFilter struct {
	Specialization string
	City           string
	State          string
	Country        string
	ProBono        *bool
	Availability   *bool
}
