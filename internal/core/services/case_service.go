package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"lexconnect-api/internal/adapters/persistence/models"
	"lexconnect-api/internal/adapters/persistence/repositories"
	"lexconnect-api/internal/core/domain"

	"gorm.io/gorm"
)

// CaseService handles case posting, assignment and lifecycle
type CaseService struct {
	caseRepo repositories.CaseRepository
	userRepo repositories.UserRepository
}

// NewCaseService creates a new case service
func NewCaseService(caseRepo repositories.CaseRepository, userRepo repositories.UserRepository) *CaseService {
	return &CaseService{
		caseRepo: caseRepo,
		userRepo: userRepo,
	}
}

// CreateCaseInput represents case creation input
type CreateCaseInput struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Type        string  `json:"type"`
	Budget      float64 `json:"budget"`
}

// Create posts a new case for a client. Pro bono cases always carry a
// zero budget regardless of the submitted amount.
func (s *CaseService) Create(ctx context.Context, clientID uint, input *CreateCaseInput) (*models.CaseResponse, error) {
	client, err := s.userRepo.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if client.Role != string(domain.RoleClient) {
		return nil, domain.ErrForbidden
	}

	budget := input.Budget
	if input.Type != domain.CaseTypePaid {
		budget = 0
	}

	c := &models.Case{
		ClientID:    clientID,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Category:    input.Category,
		Type:        input.Type,
		Budget:      budget,
		Status:      domain.CaseStatusOpen,
	}

	if err := s.caseRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	c.Client = client

	log.Printf("Case %d created by client %d (%s)", c.ID, clientID, c.Type)

	return c.ToResponse(), nil
}

// GetByID gets a case by ID
func (s *CaseService) GetByID(ctx context.Context, caseID uint) (*models.CaseResponse, error) {
	c, err := s.caseRepo.GetByID(ctx, caseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCaseNotFound
		}
		return nil, err
	}
	return c.ToResponse(), nil
}

// ListByClient lists a client's cases
func (s *CaseService) ListByClient(ctx context.Context, clientID uint) ([]*models.CaseResponse, error) {
	cases, err := s.caseRepo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.CaseResponse, 0, len(cases))
	for _, c := range cases {
		responses = append(responses, c.ToResponse())
	}
	return responses, nil
}

// ListOpen lists open cases for the lawyer-facing feed
func (s *CaseService) ListOpen(ctx context.Context, offset, limit int) ([]*models.CaseResponse, int64, error) {
	cases, total, err := s.caseRepo.ListOpen(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*models.CaseResponse, 0, len(cases))
	for _, c := range cases {
		responses = append(responses, c.ToResponse())
	}
	return responses, total, nil
}

// Assign claims an open case for a lawyer. The claim is a conditional
// update at the storage layer; when two lawyers race, exactly one wins
// and the other gets ErrCaseAlreadyAssigned.
func (s *CaseService) Assign(ctx context.Context, caseID, lawyerID uint) (*models.CaseResponse, error) {
	lawyer, err := s.userRepo.GetByID(ctx, lawyerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if lawyer.Role != string(domain.RoleLawyer) {
		return nil, domain.ErrForbidden
	}

	if err := s.caseRepo.Claim(ctx, caseID, lawyerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCaseNotFound
		}
		return nil, err
	}

	log.Printf("Case %d assigned to lawyer %d", caseID, lawyerID)

	c, err := s.caseRepo.GetByID(ctx, caseID)
	if err != nil {
		return nil, err
	}
	return c.ToResponse(), nil
}

// UpdateStatus advances a case through its lifecycle. Only the posting
// client or the assigned lawyer may move it, and only along an allowed
// transition.
func (s *CaseService) UpdateStatus(ctx context.Context, caseID, actorID uint, status string) (*models.CaseResponse, error) {
	if !domain.ValidCaseStatus(status) {
		return nil, domain.ErrInvalidInput
	}

	c, err := s.caseRepo.GetByID(ctx, caseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCaseNotFound
		}
		return nil, err
	}

	isClient := c.ClientID == actorID
	isLawyer := c.LawyerID != nil && *c.LawyerID == actorID
	if !isClient && !isLawyer {
		return nil, domain.ErrNotParticipant
	}

	if !domain.CanTransition(c.Status, status) {
		return nil, domain.ErrInvalidCaseStatus
	}

	if err := s.caseRepo.UpdateStatus(ctx, caseID, status); err != nil {
		return nil, err
	}

	log.Printf("Case %d status: %s -> %s (by user %d)", caseID, c.Status, status, actorID)

	c.Status = status
	return c.ToResponse(), nil
}
