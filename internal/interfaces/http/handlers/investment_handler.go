package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"cryptobet.backend/internal/domain/entities"
	domainerrors "cryptobet.backend/internal/domain/errors"
	"cryptobet.backend/internal/interfaces/http/middleware"
	"cryptobet.backend/internal/interfaces/http/response"
	"cryptobet.backend/internal/usecases"
	"cryptobet.backend/pkg/utils"
)

// InvestmentHandler handles investment endpoints for authenticated investors
type InvestmentHandler struct {
	investmentUsecase *usecases.InvestmentUsecase
}

// NewInvestmentHandler creates a new investment handler
func NewInvestmentHandler(investmentUsecase *usecases.InvestmentUsecase) *InvestmentHandler {
	return &InvestmentHandler{
		investmentUsecase: investmentUsecase,
	}
}

// Quote returns the coin and token amounts for a prospective investment
// GET /api/v1/investments/quote?amount=500&coin=USDT
func (h *InvestmentHandler) Quote(c *gin.Context) {
	var query struct {
		Amount float64 `form:"amount" binding:"required,gt=0"`
		Coin   string  `form:"coin" binding:"required"`
	}

	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	quote, err := h.investmentUsecase.Quote(c.Request.Context(), query.Amount, entities.Coin(query.Coin))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"quote": quote})
}

// Submit creates a new pending investment for the authenticated user
// POST /api/v1/investments
func (h *InvestmentHandler) Submit(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return
	}

	var input entities.SubmitInvestmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	investment, err := h.investmentUsecase.Submit(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	middleware.CountInvestmentSubmission(string(investment.Coin))

	response.Success(c, http.StatusCreated, gin.H{"investment": investment})
}

// ListMine returns the authenticated user's investments, newest first
// GET /api/v1/investments
func (h *InvestmentHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return
	}

	investments, err := h.investmentUsecase.ListForUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"investments": investments,
		"count":       len(investments),
	})
}

// GetByID returns a single investment. Owners see their own; admins see any.
// GET /api/v1/investments/:id
func (h *InvestmentHandler) GetByID(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return
	}

	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid investment ID"))
		return
	}

	investment, err := h.investmentUsecase.GetByID(c.Request.Context(), id, userID, middleware.IsAdmin(c))
	if err != nil {
		if err == domainerrors.ErrNotFound {
			response.Error(c, domainerrors.NotFound("Investment not found"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"investment": investment})
}
