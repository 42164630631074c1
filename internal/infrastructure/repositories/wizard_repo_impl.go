package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"cryptobet.backend/internal/domain/entities"
	domainerrors "cryptobet.backend/internal/domain/errors"
	"cryptobet.backend/pkg/redis"
)

// WizardSessionRepository stores deposit wizard sessions encrypted in Redis.
// The TTL bounds how long an abandoned wizard lingers; cancellation deletes
// the key outright.
type WizardSessionRepository struct {
	store *redis.SecureStore
	ttl   time.Duration
}

// NewWizardSessionRepository creates a new wizard session repository
func NewWizardSessionRepository(store *redis.SecureStore, ttl time.Duration) *WizardSessionRepository {
	return &WizardSessionRepository{store: store, ttl: ttl}
}

// Save stores a session, refreshing its TTL
func (r *WizardSessionRepository) Save(ctx context.Context, session *entities.WizardSession) error {
	return r.store.Put(ctx, session.ID.String(), session, r.ttl)
}

// Get retrieves a session by id
func (r *WizardSessionRepository) Get(ctx context.Context, id uuid.UUID) (*entities.WizardSession, error) {
	var session entities.WizardSession
	if err := r.store.Fetch(ctx, id.String(), &session); err != nil {
		if redis.IsNil(err) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// Delete removes a session
func (r *WizardSessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.store.Remove(ctx, id.String())
}
