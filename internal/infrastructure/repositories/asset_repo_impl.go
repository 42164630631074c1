package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"cryptobet.backend/internal/domain/entities"
	domainerrors "cryptobet.backend/internal/domain/errors"
	"cryptobet.backend/internal/infrastructure/models"
)

// AssetRepository implements settlement asset data operations
type AssetRepository struct {
	db *gorm.DB
}

// NewAssetRepository creates a new asset repository
func NewAssetRepository(db *gorm.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

// Create creates a new asset
func (r *AssetRepository) Create(ctx context.Context, asset *entities.Asset) error {
	m := &models.Asset{
		ID:             asset.ID,
		Symbol:         string(asset.Symbol),
		Name:           asset.Name,
		UnitPriceUSD:   asset.UnitPriceUSD,
		DepositAddress: asset.DepositAddress,
		IsActive:       asset.IsActive,
		CreatedAt:      asset.CreatedAt,
		UpdatedAt:      asset.UpdatedAt,
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	asset.ID = m.ID
	return nil
}

// GetBySymbol gets an asset by its coin symbol
func (r *AssetRepository) GetBySymbol(ctx context.Context, symbol entities.Coin) (*entities.Asset, error) {
	var m models.Asset
	if err := r.db.WithContext(ctx).Where("symbol = ?", string(symbol)).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return assetToEntity(&m), nil
}

// List lists assets ordered by symbol
func (r *AssetRepository) List(ctx context.Context, activeOnly bool) ([]*entities.Asset, error) {
	var assetModels []models.Asset
	query := r.db.WithContext(ctx).Order("symbol ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&assetModels).Error; err != nil {
		return nil, err
	}

	assets := make([]*entities.Asset, 0, len(assetModels))
	for i := range assetModels {
		assets = append(assets, assetToEntity(&assetModels[i]))
	}
	return assets, nil
}

// Update updates an asset's mutable fields
func (r *AssetRepository) Update(ctx context.Context, asset *entities.Asset) error {
	result := r.db.WithContext(ctx).Model(&models.Asset{}).Where("id = ?", asset.ID).Updates(map[string]interface{}{
		"name":            asset.Name,
		"unit_price_usd":  asset.UnitPriceUSD,
		"deposit_address": asset.DepositAddress,
		"is_active":       asset.IsActive,
		"updated_at":      time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func assetToEntity(m *models.Asset) *entities.Asset {
	return &entities.Asset{
		ID:             m.ID,
		Symbol:         entities.Coin(m.Symbol),
		Name:           m.Name,
		UnitPriceUSD:   m.UnitPriceUSD,
		DepositAddress: m.DepositAddress,
		IsActive:       m.IsActive,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
