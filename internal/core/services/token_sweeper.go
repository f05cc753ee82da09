package services

import (
	"context"
	"log"
	"time"

	"lexconnect-api/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// TokenSweeper purges revocation-ledger entries whose mirrored expiry has
// passed. An expired token is already rejected on expiry grounds, so the
// entry only wastes lookup time once the token itself is dead.
type TokenSweeper struct {
	revokedTokenRepo repositories.RevokedTokenRepository
	cron             *cron.Cron
}

// NewTokenSweeper creates a new token sweeper
func NewTokenSweeper(revokedTokenRepo repositories.RevokedTokenRepository) *TokenSweeper {
	return &TokenSweeper{
		revokedTokenRepo: revokedTokenRepo,
		cron:             cron.New(),
	}
}

// Start schedules the hourly sweep and runs one immediately so a restart
// does not wait an hour to catch up.
func (s *TokenSweeper) Start() {
	s.cron.AddFunc("@hourly", s.Sweep)
	s.cron.Start()
	go s.Sweep()
	log.Println("Token sweeper started (hourly)")
}

// Stop stops the sweeper
func (s *TokenSweeper) Stop() {
	s.cron.Stop()
	log.Println("Token sweeper stopped")
}

// Sweep deletes dead revocation entries
func (s *TokenSweeper) Sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	purged, err := s.revokedTokenRepo.DeleteExpired(ctx, time.Now())
	if err != nil {
		log.Printf("Token sweep error: %v", err)
		return
	}
	if purged > 0 {
		log.Printf("Token sweep purged %d expired revocation entries", purged)
	}
}
