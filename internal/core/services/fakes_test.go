package services

import (
	"context"
	"sync"
	"time"

	"lexconnect-api/internal/adapters/persistence/models"
	"lexconnect-api/internal/adapters/persistence/repositories"
	"lexconnect-api/internal/core/domain"

	"gorm.io/gorm"
)

// In-memory repository fakes used across the service tests.

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*models.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	r.nextID++
	user.ID = r.nextID
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) CreateWithProfile(ctx context.Context, user *models.User, profile *models.LawyerProfile) error {
	if err := r.Create(ctx, user); err != nil {
		return err
	}
	profile.UserID = user.ID
	user.LawyerProfile = profile
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

type fakeRevokedTokenRepo struct {
	mu      sync.Mutex
	entries map[string]*models.RevokedToken
	failErr error
}

func newFakeRevokedTokenRepo() *fakeRevokedTokenRepo {
	return &fakeRevokedTokenRepo{entries: make(map[string]*models.RevokedToken)}
}

func (r *fakeRevokedTokenRepo) Create(_ context.Context, entry *models.RevokedToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failErr != nil {
		return r.failErr
	}
	if _, ok := r.entries[entry.Token]; ok {
		return nil
	}
	r.entries[entry.Token] = entry
	return nil
}

func (r *fakeRevokedTokenRepo) Exists(_ context.Context, token string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failErr != nil {
		return false, r.failErr
	}
	_, ok := r.entries[token]
	return ok, nil
}

func (r *fakeRevokedTokenRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failErr != nil {
		return 0, r.failErr
	}
	var purged int64
	for token, entry := range r.entries {
		if entry.ExpiresAt.Before(now) {
			delete(r.entries, token)
			purged++
		}
	}
	return purged, nil
}

type fakeCaseRepo struct {
	mu     sync.Mutex
	nextID uint
	cases  map[uint]*models.Case
}

func newFakeCaseRepo() *fakeCaseRepo {
	return &fakeCaseRepo{cases: make(map[uint]*models.Case)}
}

func (r *fakeCaseRepo) Create(_ context.Context, c *models.Case) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	c.ID = r.nextID
	r.cases[c.ID] = c
	return nil
}

func (r *fakeCaseRepo) GetByID(_ context.Context, id uint) (*models.Case, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cases[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *fakeCaseRepo) ListByClient(_ context.Context, clientID uint) ([]*models.Case, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*models.Case
	for _, c := range r.cases {
		if c.ClientID == clientID {
			result = append(result, c)
		}
	}
	return result, nil
}

func (r *fakeCaseRepo) ListOpen(_ context.Context, offset, limit int) ([]*models.Case, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var open []*models.Case
	for _, c := range r.cases {
		if c.Status == domain.CaseStatusOpen {
			open = append(open, c)
		}
	}
	total := int64(len(open))
	if offset >= len(open) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(open) {
		end = len(open)
	}
	return open[offset:end], total, nil
}

func (r *fakeCaseRepo) Claim(_ context.Context, caseID, lawyerID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cases[caseID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if c.LawyerID != nil {
		return domain.ErrCaseAlreadyAssigned
	}
	id := lawyerID
	c.LawyerID = &id
	c.Status = domain.CaseStatusAssigned
	return nil
}

func (r *fakeCaseRepo) UpdateStatus(_ context.Context, caseID uint, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cases[caseID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Status = status
	return nil
}

type fakeLawyerRepo struct {
	mu       sync.Mutex
	profiles map[uint]*models.LawyerProfile
}

func newFakeLawyerRepo() *fakeLawyerRepo {
	return &fakeLawyerRepo{profiles: make(map[uint]*models.LawyerProfile)}
}

func (r *fakeLawyerRepo) GetByUserID(_ context.Context, userID uint) (*models.LawyerProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	profile, ok := r.profiles[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return profile, nil
}

func (r *fakeLawyerRepo) Search(_ context.Context, filter repositories.LawyerFilter, offset, limit int) ([]*models.LawyerProfile, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*models.LawyerProfile
	for _, p := range r.profiles {
		if filter.Specialization != "" && p.Specialization != filter.Specialization {
			continue
		}
		if filter.City != "" && p.City != filter.City {
			continue
		}
		if filter.ProBono != nil && p.ProBono != *filter.ProBono {
			continue
		}
		matched = append(matched, p)
	}
	return matched, int64(len(matched)), nil
}

func (r *fakeLawyerRepo) UpdateRating(_ context.Context, profile *models.LawyerProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[profile.UserID] = profile
	return nil
}
