package repositories

import (
	"context"

	"github.com/google/uuid"
	"cryptobet.backend/internal/domain/entities"
)

// WizardSessionRepository stores in-progress deposit wizard sessions. Sessions
// are transient: implementations apply a TTL and cancellation is deletion.
type WizardSessionRepository interface {
	Save(ctx context.Context, session *entities.WizardSession) error
	Get(ctx context.Context, id uuid.UUID) (*entities.WizardSession, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
