package repositories

import (
	"context"

	"github.com/google/uuid"
	"cryptobet.backend/internal/domain/entities"
)

// UserRepository defines user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	UpdateRole(ctx context.Context, id uuid.UUID, role entities.UserRole) error
	MarkEmailVerified(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, search string) ([]*entities.User, error)
	Count(ctx context.Context) (int64, error)
}

// EmailVerificationRepository defines verification code operations
type EmailVerificationRepository interface {
	Create(ctx context.Context, verification *entities.EmailVerification) error
	GetLatestByUserID(ctx context.Context, userID uuid.UUID) (*entities.EmailVerification, error)
	MarkConsumed(ctx context.Context, id uuid.UUID) error
	DeleteExpired(ctx context.Context) (int64, error)
}
