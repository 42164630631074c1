package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"cryptobet.backend/internal/domain/entities"
	domainerrors "cryptobet.backend/internal/domain/errors"
	"cryptobet.backend/internal/interfaces/http/response"
	"cryptobet.backend/internal/usecases"
)

// AssetHandler exposes the settlement asset catalog
type AssetHandler struct {
	assetUsecase *usecases.AssetUsecase
}

// NewAssetHandler creates a new asset handler
func NewAssetHandler(assetUsecase *usecases.AssetUsecase) *AssetHandler {
	return &AssetHandler{
		assetUsecase: assetUsecase,
	}
}

// List returns assets currently accepted for deposits
// GET /api/v1/assets
func (h *AssetHandler) List(c *gin.Context) {
	assets, err := h.assetUsecase.ListActive(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"assets": assets})
}

// ListAll returns every configured asset, active or not
// GET /api/v1/admin/assets
func (h *AssetHandler) ListAll(c *gin.Context) {
	assets, err := h.assetUsecase.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"assets": assets})
}

// Create registers a new settlement asset
// POST /api/v1/admin/assets
func (h *AssetHandler) Create(c *gin.Context) {
	var input entities.CreateAssetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	asset, err := h.assetUsecase.Create(c.Request.Context(), &input)
	if err != nil {
		if err == domainerrors.ErrAlreadyExists {
			response.Error(c, domainerrors.Conflict("Asset already exists"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"asset": asset})
}

// Update applies partial changes to an asset
// PUT /api/v1/admin/assets/:symbol
func (h *AssetHandler) Update(c *gin.Context) {
	symbol := entities.Coin(strings.ToUpper(c.Param("symbol")))

	var input entities.UpdateAssetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	asset, err := h.assetUsecase.Update(c.Request.Context(), symbol, &input)
	if err != nil {
		if err == domainerrors.ErrNotFound {
			response.Error(c, domainerrors.NotFound("Asset not found"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"asset": asset})
}
