package repositories

import (
	"context"

	"github.com/google/uuid"
	"cryptobet.backend/internal/domain/entities"
	"cryptobet.backend/pkg/utils"
)

// InvestmentRepository defines investment request data operations. Records are
// append-only: there is no delete.
type InvestmentRepository interface {
	Create(ctx context.Context, investment *entities.Investment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Investment, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.Investment, error)
	// List returns a page of investment requests plus the total count of
	// records matching the filter.
	List(ctx context.Context, filter entities.InvestmentFilter, pagination utils.PaginationParams) ([]*entities.Investment, int64, error)
	// UpdateStatus transitions a pending record to a terminal status using a
	// compare-and-swap on the current status. Returns ErrNotFound if the id
	// does not exist and ErrInvalidTransition if the record is not pending.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.InvestmentStatus) error
	Stats(ctx context.Context) (*entities.InvestmentStats, error)
}

// AssetRepository defines settlement asset data operations
type AssetRepository interface {
	Create(ctx context.Context, asset *entities.Asset) error
	GetBySymbol(ctx context.Context, symbol entities.Coin) (*entities.Asset, error)
	List(ctx context.Context, activeOnly bool) ([]*entities.Asset, error)
	Update(ctx context.Context, asset *entities.Asset) error
}
