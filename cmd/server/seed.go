package main

import (
	"context"
	"errors"

	"cryptobet.backend/internal/domain/entities"
	domainerrors "cryptobet.backend/internal/domain/errors"
	"cryptobet.backend/internal/domain/repositories"
	"cryptobet.backend/pkg/utils"
)

// defaultAssets is the launch catalog. Prices are admin-maintained starting
// points, not a market feed.
var defaultAssets = []entities.Asset{
	{Symbol: entities.CoinBTC, Name: "Bitcoin", UnitPriceUSD: 65432.10, DepositAddress: "bc1qxy2kgdygjrsqtzq2n0yrf2493p83kkfjhx0wlh"},
	{Symbol: entities.CoinETH, Name: "Ethereum", UnitPriceUSD: 3521.45, DepositAddress: "0x71C7656EC7ab88b098defB751B7401B5f6d8976F"},
	{Symbol: entities.CoinSOL, Name: "Solana", UnitPriceUSD: 142.87, DepositAddress: "7dHbWXmci3dT8UFYWYZweBLXgycu7Y3iL6trKn1Y7ARj"},
	{Symbol: entities.CoinUSDT, Name: "Tether", UnitPriceUSD: 1.00, DepositAddress: "0xdAC17F958D2ee523a2206206994597C13D831ec7"},
	{Symbol: entities.CoinUSDC, Name: "USD Coin", UnitPriceUSD: 1.00, DepositAddress: "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"},
}

// seedAssets inserts any missing default assets. Existing rows are never
// touched so admin price edits survive restarts.
func seedAssets(ctx context.Context, repo repositories.AssetRepository) error {
	for i := range defaultAssets {
		asset := defaultAssets[i]
		_, err := repo.GetBySymbol(ctx, asset.Symbol)
		if err == nil {
			continue
		}
		if !errors.Is(err, domainerrors.ErrNotFound) {
			return err
		}

		asset.ID = utils.GenerateUUIDv7()
		asset.IsActive = true
		if err := repo.Create(ctx, &asset); err != nil {
			return err
		}
	}
	return nil
}
