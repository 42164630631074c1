package usecases

import (
	"context"
	"errors"
	"strings"

	"cryptobet.backend/internal/domain/entities"
	domainerrors "cryptobet.backend/internal/domain/errors"
	"cryptobet.backend/internal/domain/repositories"
	"cryptobet.backend/pkg/utils"
)

// AssetUsecase manages the settlement asset catalog
type AssetUsecase struct {
	assetRepo repositories.AssetRepository
}

// NewAssetUsecase creates a new asset usecase
func NewAssetUsecase(assetRepo repositories.AssetRepository) *AssetUsecase {
	return &AssetUsecase{
		assetRepo: assetRepo,
	}
}

// ListActive returns assets currently accepted for deposits
func (u *AssetUsecase) ListActive(ctx context.Context) ([]*entities.Asset, error) {
	return u.assetRepo.List(ctx, true)
}

// ListAll returns every asset including deactivated ones (admin view)
func (u *AssetUsecase) ListAll(ctx context.Context) ([]*entities.Asset, error) {
	return u.assetRepo.List(ctx, false)
}

// Create registers a new settlement asset
func (u *AssetUsecase) Create(ctx context.Context, input *entities.CreateAssetInput) (*entities.Asset, error) {
	symbol := entities.Coin(strings.ToUpper(strings.TrimSpace(string(input.Symbol))))
	if input.UnitPriceUSD <= 0 {
		return nil, domainerrors.ErrInvalidInput
	}
	// The coin enum is closed; an asset outside it could never be quoted.
	if !symbol.Valid() {
		return nil, domainerrors.ErrUnsupportedCoin
	}

	if _, err := u.assetRepo.GetBySymbol(ctx, symbol); err == nil {
		return nil, domainerrors.ErrAlreadyExists
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	asset := &entities.Asset{
		ID:             utils.GenerateUUIDv7(),
		Symbol:         symbol,
		Name:           input.Name,
		UnitPriceUSD:   input.UnitPriceUSD,
		DepositAddress: input.DepositAddress,
		IsActive:       true,
	}

	if err := u.assetRepo.Create(ctx, asset); err != nil {
		return nil, err
	}
	return asset, nil
}

// Update applies partial changes to an asset identified by symbol. Only fields
// present in the input are touched.
func (u *AssetUsecase) Update(ctx context.Context, symbol entities.Coin, input *entities.UpdateAssetInput) (*entities.Asset, error) {
	asset, err := u.assetRepo.GetBySymbol(ctx, symbol)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		asset.Name = *input.Name
	}
	if input.UnitPriceUSD != nil {
		if *input.UnitPriceUSD <= 0 {
			return nil, domainerrors.ErrInvalidInput
		}
		asset.UnitPriceUSD = *input.UnitPriceUSD
	}
	if input.DepositAddress != nil {
		asset.DepositAddress = *input.DepositAddress
	}
	if input.IsActive != nil {
		asset.IsActive = *input.IsActive
	}

	if err := u.assetRepo.Update(ctx, asset); err != nil {
		return nil, err
	}
	return asset, nil
}
