package repositories

import (
	"context"

	"lexconnect-api/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// lawyerRepository implements LawyerRepository interface
type lawyerRepository struct {
	db *gorm.DB
}

// NewLawyerRepository creates a new lawyer directory repository
func NewLawyerRepository(db *gorm.DB) LawyerRepository {
	return &lawyerRepository{db: db}
}

// GetByUserID gets a lawyer profile by its owning user ID
func (r *lawyerRepository) GetByUserID(ctx context.Context, userID uint) (*models.LawyerProfile, error) {
	var profile models.LawyerProfile
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Search lists lawyer profiles matching the filter, with pagination
func (r *lawyerRepository) Search(ctx context.Context, filter LawyerFilter, offset, limit int) ([]*models.LawyerProfile, int64, error) {
	var profiles []*models.LawyerProfile
	var total int64

	if err := applyLawyerFilter(r.db.WithContext(ctx).Model(&models.LawyerProfile{}), filter).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := applyLawyerFilter(r.db.WithContext(ctx), filter).
		Preload("User").
		Order("rating DESC, experience_years DESC").
		Offset(offset).
		Limit(limit).
		Find(&profiles).Error
	if err != nil {
		return nil, 0, err
	}

	return profiles, total, nil
}

func applyLawyerFilter(query *gorm.DB, filter LawyerFilter) *gorm.DB {
	if filter.Specialization != "" {
		query = query.Where("specialization = ?", filter.Specialization)
	}
	if filter.City != "" {
		query = query.Where("city = ?", filter.City)
	}
	if filter.State != "" {
		query = query.Where("state = ?", filter.State)
	}
	if filter.Country != "" {
		query = query.Where("country = ?", filter.Country)
	}
	if filter.ProBono != nil {
		query = query.Where("pro_bono = ?", *filter.ProBono)
	}
	if filter.Availability != nil {
		query = query.Where("availability = ?", *filter.Availability)
	}
	return query
}

// UpdateRating persists a rating change on a lawyer profile
func (r *lawyerRepository) UpdateRating(ctx context.Context, profile *models.LawyerProfile) error {
	return r.db.WithContext(ctx).
		Model(&models.LawyerProfile{}).
		Where("id = ?", profile.ID).
		Updates(map[string]interface{}{
			"rating":       profile.Rating,
			"review_count": profile.ReviewCount,
		}).Error
}
