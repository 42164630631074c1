package entities

import (
	"time"

	"github.com/google/uuid"
)

// Coin identifies a supported settlement asset
type Coin string

const (
	CoinBTC  Coin = "BTC"
	CoinETH  Coin = "ETH"
	CoinSOL  Coin = "SOL"
	CoinUSDT Coin = "USDT"
	CoinUSDC Coin = "USDC"
)

// SupportedCoins is the fixed set of settlement assets accepted for deposits.
var SupportedCoins = []Coin{CoinBTC, CoinETH, CoinSOL, CoinUSDT, CoinUSDC}

// Valid reports whether the coin is one of the supported set.
func (c Coin) Valid() bool {
	for _, coin := range SupportedCoins {
		if c == coin {
			return true
		}
	}
	return false
}

// Asset holds the deposit configuration of a settlement asset. Unit prices are
// maintained by admins, not fetched from any market feed.
type Asset struct {
	ID             uuid.UUID  `json:"id"`
	Symbol         Coin       `json:"symbol"`
	Name           string     `json:"name"`
	UnitPriceUSD   float64    `json:"unitPriceUsd"`
	DepositAddress string     `json:"depositAddress"`
	IsActive       bool       `json:"isActive"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	DeletedAt      *time.Time `json:"-"`
}

// CreateAssetInput represents input for creating an asset
type CreateAssetInput struct {
	Symbol         Coin    `json:"symbol" binding:"required"`
	Name           string  `json:"name" binding:"required,min=2,max=100"`
	UnitPriceUSD   float64 `json:"unitPriceUsd" binding:"required,gt=0"`
	DepositAddress string  `json:"depositAddress" binding:"required"`
}

// UpdateAssetInput represents input for updating an asset
type UpdateAssetInput struct {
	Name           *string  `json:"name,omitempty"`
	UnitPriceUSD   *float64 `json:"unitPriceUsd,omitempty"`
	DepositAddress *string  `json:"depositAddress,omitempty"`
	IsActive       *bool    `json:"isActive,omitempty"`
}
