package services

import (
	"context"
	"errors"

	"lexconnect-api/internal/adapters/persistence/models"
	"lexconnect-api/internal/adapters/persistence/repositories"
	"lexconnect-api/internal/core/domain"

	"gorm.io/gorm"
)

// LawyerService handles the lawyer directory
type LawyerService struct {
	lawyerRepo repositories.LawyerRepository
}

// NewLawyerService creates a new lawyer service
func NewLawyerService(lawyerRepo repositories.LawyerRepository) *LawyerService {
	return &LawyerService{lawyerRepo: lawyerRepo}
}

// Search lists lawyer profiles matching the filter
func (s *LawyerService) Search(ctx context.Context, filter repositories.LawyerFilter, offset, limit int) ([]*models.LawyerProfileResponse, int64, error) {
	profiles, total, err := s.lawyerRepo.Search(ctx, filter, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*models.LawyerProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		responses = append(responses, p.ToResponse())
	}
	return responses, total, nil
}

// GetProfile gets a lawyer profile by the lawyer's user ID
func (s *LawyerService) GetProfile(ctx context.Context, userID uint) (*models.LawyerProfileResponse, error) {
	profile, err := s.lawyerRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return profile.ToResponse(), nil
}

// Rate folds a new rating into the running average on a lawyer profile
func (s *LawyerService) Rate(ctx context.Context, userID uint, rating float64) (*models.LawyerProfileResponse, error) {
	if rating < 0 || rating > 5 {
		return nil, domain.ErrInvalidInput
	}

	profile, err := s.lawyerRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	profile.Rating = (profile.Rating*float64(profile.ReviewCount) + rating) / float64(profile.ReviewCount+1)
	profile.ReviewCount++

	if err := s.lawyerRepo.UpdateRating(ctx, profile); err != nil {
		return nil, err
	}

	return profile.ToResponse(), nil
}
