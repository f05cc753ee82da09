package repositories

import (
	"context"

	"lexconnect-api/internal/adapters/persistence/models"
	"lexconnect-api/internal/core/domain"

	"gorm.io/gorm"
)

// caseRepository implements CaseRepository interface
type caseRepository struct {
	db *gorm.DB
}

// NewCaseRepository creates a new case repository
func NewCaseRepository(db *gorm.DB) CaseRepository {
	return &caseRepository{db: db}
}

// Create creates a new case
func (r *caseRepository) Create(ctx context.Context, c *models.Case) error {
	return r.db.WithContext(ctx).Create(c).Error
}

// GetByID gets a case by ID with participants and documents
func (r *caseRepository) GetByID(ctx context.Context, id uint) (*models.Case, error) {
	var c models.Case
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Lawyer").
		Preload("Documents").
		Where("id = ?", id).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByClient lists a client's cases, newest first
func (r *caseRepository) ListByClient(ctx context.Context, clientID uint) ([]*models.Case, error) {
	var cases []*models.Case
	err := r.db.WithContext(ctx).
		Preload("Lawyer").
		Preload("Documents").
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&cases).Error
	if err != nil {
		return nil, err
	}
	return cases, nil
}

// ListOpen lists unassigned open cases with pagination, newest first
func (r *caseRepository) ListOpen(ctx context.Context, offset, limit int) ([]*models.Case, int64, error) {
	var cases []*models.Case
	var total int64

	if err := r.db.WithContext(ctx).
		Model(&models.Case{}).
		Where("status = ?", domain.CaseStatusOpen).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("Client").
		Where("status = ?", domain.CaseStatusOpen).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&cases).Error
	if err != nil {
		return nil, 0, err
	}

	return cases, total, nil
}

// Claim assigns a lawyer to a case with a single conditional update: the
// lawyer column is set only while it is still unset. Two lawyers racing on
// the same case cannot both win; the loser sees ErrCaseAlreadyAssigned.
func (r *caseRepository) Claim(ctx context.Context, caseID, lawyerID uint) error {
	result := r.db.WithContext(ctx).
		Model(&models.Case{}).
		Where("id = ?", caseID).
		Where("lawyer_id IS NULL").
		Updates(map[string]interface{}{
			"lawyer_id": lawyerID,
			"status":    domain.CaseStatusAssigned,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Either the case does not exist or it is already claimed.
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&models.Case{}).
			Where("id = ?", caseID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
		return domain.ErrCaseAlreadyAssigned
	}
	return nil
}

// UpdateStatus sets a case status
func (r *caseRepository) UpdateStatus(ctx context.Context, caseID uint, status string) error {
	return r.db.WithContext(ctx).
		Model(&models.Case{}).
		Where("id = ?", caseID).
		Update("status", status).Error
}
