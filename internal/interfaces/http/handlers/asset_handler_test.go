package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"cryptobet.backend/internal/domain/entities"
	"cryptobet.backend/internal/usecases"
)

func newAssetRouter(assetRepo *assetRepoStub) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAssetHandler(usecases.NewAssetUsecase(assetRepo))

	r := gin.New()
	r.GET("/assets", h.List)
	g := r.Group("/admin/assets", asUser(uuid.New(), "admin"))
	g.GET("", h.ListAll)
	g.POST("", h.Create)
	g.PUT("/:symbol", h.Update)
	return r
}

func TestAssetHandler_ListActiveOnly(t *testing.T) {
	assetRepo := &assetRepoStub{
		listFn: func(_ context.Context, activeOnly bool) ([]*entities.Asset, error) {
			require.True(t, activeOnly)
			return []*entities.Asset{
				{ID: uuid.New(), Symbol: entities.CoinBTC, Name: "Bitcoin", UnitPriceUSD: 65432.10, IsActive: true},
			}, nil
		},
	}
	r := newAssetRouter(assetRepo)

	w := doJSON(t, r, http.MethodGet, "/assets", "")
	requireStatus(t, w, http.StatusOK)
	assets := decodeBody(t, w)["assets"].([]interface{})
	require.Len(t, assets, 1)
	require.Equal(t, "BTC", assets[0].(map[string]interface{})["symbol"])
}

func TestAssetHandler_AdminListIncludesInactive(t *testing.T) {
	assetRepo := &assetRepoStub{
		listFn: func(_ context.Context, activeOnly bool) ([]*entities.Asset, error) {
			require.False(t, activeOnly)
			return []*entities.Asset{
				{Symbol: entities.CoinBTC, IsActive: true},
				{Symbol: entities.CoinSOL, IsActive: false},
			}, nil
		},
	}
	r := newAssetRouter(assetRepo)

	w := doJSON(t, r, http.MethodGet, "/admin/assets", "")
	requireStatus(t, w, http.StatusOK)
	require.Len(t, decodeBody(t, w)["assets"].([]interface{}), 2)
}

func TestAssetHandler_Create(t *testing.T) {
	var created *entities.Asset
	assetRepo := &assetRepoStub{
		createFn: func(_ context.Context, asset *entities.Asset) error {
			created = asset
			return nil
		},
	}
	r := newAssetRouter(assetRepo)

	body := `{"symbol":"sol","name":"Solana","unitPriceUsd":142.87,"depositAddress":"So11111111111111111111111111111111111111112"}`
	w := doJSON(t, r, http.MethodPost, "/admin/assets", body)
	requireStatus(t, w, http.StatusCreated)

	require.NotNil(t, created)
	require.Equal(t, entities.CoinSOL, created.Symbol)
	require.True(t, created.IsActive)

	asset := decodeBody(t, w)["asset"].(map[string]interface{})
	require.Equal(t, "SOL", asset["symbol"])
}

func TestAssetHandler_CreateDuplicate(t *testing.T) {
	assetRepo := &assetRepoStub{
		getBySymbolFn: func(context.Context, entities.Coin) (*entities.Asset, error) {
			return &entities.Asset{Symbol: entities.CoinBTC}, nil
		},
	}
	r := newAssetRouter(assetRepo)

	body := `{"symbol":"BTC","name":"Bitcoin","unitPriceUsd":65432.10,"depositAddress":"bc1qexample"}`
	w := doJSON(t, r, http.MethodPost, "/admin/assets", body)
	requireStatus(t, w, http.StatusConflict)
}

func TestAssetHandler_CreateValidation(t *testing.T) {
	r := newAssetRouter(&assetRepoStub{})

	// Missing deposit address.
	w := doJSON(t, r, http.MethodPost, "/admin/assets", `{"symbol":"BTC","name":"Bitcoin","unitPriceUsd":65432.10}`)
	requireStatus(t, w, http.StatusBadRequest)

	// Non-positive price.
	w = doJSON(t, r, http.MethodPost, "/admin/assets", `{"symbol":"BTC","name":"Bitcoin","unitPriceUsd":-1,"depositAddress":"bc1qexample"}`)
	requireStatus(t, w, http.StatusBadRequest)

	// Symbol outside the supported coin set.
	w = doJSON(t, r, http.MethodPost, "/admin/assets", `{"symbol":"DOGE","name":"Dogecoin","unitPriceUsd":0.12,"depositAddress":"DTest"}`)
	requireStatus(t, w, http.StatusBadRequest)
}

func TestAssetHandler_Update(t *testing.T) {
	existing := &entities.Asset{
		ID:             uuid.New(),
		Symbol:         entities.CoinETH,
		Name:           "Ethereum",
		UnitPriceUSD:   3521.45,
		DepositAddress: "0xabc",
		IsActive:       true,
	}
	var updated *entities.Asset
	assetRepo := &assetRepoStub{
		getBySymbolFn: func(_ context.Context, symbol entities.Coin) (*entities.Asset, error) {
			require.Equal(t, entities.CoinETH, symbol)
			return existing, nil
		},
		updateFn: func(_ context.Context, asset *entities.Asset) error {
			updated = asset
			return nil
		},
	}
	r := newAssetRouter(assetRepo)

	w := doJSON(t, r, http.MethodPut, "/admin/assets/eth", `{"unitPriceUsd":3600,"isActive":false}`)
	requireStatus(t, w, http.StatusOK)

	require.NotNil(t, updated)
	require.Equal(t, 3600.0, updated.UnitPriceUSD)
	require.False(t, updated.IsActive)
	// Fields not in the payload are untouched.
	require.Equal(t, "Ethereum", updated.Name)
	require.Equal(t, "0xabc", updated.DepositAddress)
}

func TestAssetHandler_UpdateMissing(t *testing.T) {
	r := newAssetRouter(&assetRepoStub{})

	w := doJSON(t, r, http.MethodPut, "/admin/assets/BTC", `{"unitPriceUsd":70000}`)
	requireStatus(t, w, http.StatusNotFound)
}

func TestAssetHandler_UpdateRejectsNonPositivePrice(t *testing.T) {
	assetRepo := &assetRepoStub{
		getBySymbolFn: func(context.Context, entities.Coin) (*entities.Asset, error) {
			return &entities.Asset{Symbol: entities.CoinBTC, UnitPriceUSD: 65432.10}, nil
		},
	}
	r := newAssetRouter(assetRepo)

	w := doJSON(t, r, http.MethodPut, "/admin/assets/BTC", `{"unitPriceUsd":0}`)
	requireStatus(t, w, http.StatusBadRequest)
}
