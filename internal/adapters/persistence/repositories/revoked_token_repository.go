package repositories

import (
	"context"
	"errors"
	"time"

	"lexconnect-api/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// revokedTokenRepository implements RevokedTokenRepository interface
type revokedTokenRepository struct {
	db *gorm.DB
}

// NewRevokedTokenRepository creates a new revocation ledger repository
func NewRevokedTokenRepository(db *gorm.DB) RevokedTokenRepository {
	return &revokedTokenRepository{db: db}
}

// Create appends a revocation entry. Revoking an already-revoked token is
// a no-op: the unique index violation is swallowed so repeat logout is
// idempotent for the caller.
func (r *revokedTokenRepository) Create(ctx context.Context, entry *models.RevokedToken) error {
	err := r.db.WithContext(ctx).Create(entry).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

// Exists is the point lookup used by the request gate. Any lookup error
// propagates so the caller can fail closed.
func (r *revokedTokenRepository) Exists(ctx context.Context, token string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.RevokedToken{}).
		Where("token = ?", token).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteExpired purges entries whose mirrored expiry has passed. An expired
// token is rejected on expiry grounds alone, so these rows are dead weight.
func (r *revokedTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", now).
		Delete(&models.RevokedToken{})
	return result.RowsAffected, result.Error
}
