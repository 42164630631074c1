package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"cryptobet.backend/internal/domain/entities"
	domainerrors "cryptobet.backend/internal/domain/errors"
	"cryptobet.backend/internal/interfaces/http/middleware"
	"cryptobet.backend/internal/interfaces/http/response"
	"cryptobet.backend/internal/usecases"
	"cryptobet.backend/pkg/utils"
)

// WizardHandler drives the step-by-step deposit flow
type WizardHandler struct {
	wizardUsecase *usecases.WizardUsecase
}

// NewWizardHandler creates a new wizard handler
func NewWizardHandler(wizardUsecase *usecases.WizardUsecase) *WizardHandler {
	return &WizardHandler{
		wizardUsecase: wizardUsecase,
	}
}

func wizardSessionResponse(session *entities.WizardSession) gin.H {
	return gin.H{"session": session}
}

// Start creates a fresh deposit session for the authenticated user
// POST /api/v1/wizard
func (h *WizardHandler) Start(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return
	}

	session, err := h.wizardUsecase.Start(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, wizardSessionResponse(session))
}

// Get returns the current state of a deposit session
// GET /api/v1/wizard/:id
func (h *WizardHandler) Get(c *gin.Context) {
	userID, sessionID, ok := h.sessionParams(c)
	if !ok {
		return
	}

	session, err := h.wizardUsecase.Get(c.Request.Context(), sessionID, userID)
	if err != nil {
		h.sessionError(c, err)
		return
	}

	response.Success(c, http.StatusOK, wizardSessionResponse(session))
}

// SelectAsset records the chosen deposit coin
// POST /api/v1/wizard/:id/asset
func (h *WizardHandler) SelectAsset(c *gin.Context) {
	userID, sessionID, ok := h.sessionParams(c)
	if !ok {
		return
	}

	var input struct {
		Coin string `json:"coin" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	session, err := h.wizardUsecase.SelectAsset(c.Request.Context(), sessionID, userID, entities.Coin(input.Coin))
	if err != nil {
		h.sessionError(c, err)
		return
	}

	response.Success(c, http.StatusOK, wizardSessionResponse(session))
}

// EnterAmount records the USD amount and quotes the conversion
// POST /api/v1/wizard/:id/amount
func (h *WizardHandler) EnterAmount(c *gin.Context) {
	userID, sessionID, ok := h.sessionParams(c)
	if !ok {
		return
	}

	var input struct {
		AmountUSD float64 `json:"amountUsd" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	session, err := h.wizardUsecase.EnterAmount(c.Request.Context(), sessionID, userID, input.AmountUSD)
	if err != nil {
		h.sessionError(c, err)
		return
	}

	response.Success(c, http.StatusOK, wizardSessionResponse(session))
}

// Confirm finalizes the deposit, creating a pending investment exactly once
// POST /api/v1/wizard/:id/confirm
func (h *WizardHandler) Confirm(c *gin.Context) {
	userID, sessionID, ok := h.sessionParams(c)
	if !ok {
		return
	}

	var input struct {
		TransactionHash string `json:"transactionHash"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, domainerrors.BadRequest(err.Error()))
			return
		}
	}

	session, err := h.wizardUsecase.Confirm(c.Request.Context(), sessionID, userID, input.TransactionHash)
	if err != nil {
		h.sessionError(c, err)
		return
	}

	response.Success(c, http.StatusOK, wizardSessionResponse(session))
}

// Cancel discards a deposit session
// DELETE /api/v1/wizard/:id
func (h *WizardHandler) Cancel(c *gin.Context) {
	userID, sessionID, ok := h.sessionParams(c)
	if !ok {
		return
	}

	if err := h.wizardUsecase.Cancel(c.Request.Context(), sessionID, userID); err != nil {
		h.sessionError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Deposit session cancelled",
	})
}

func (h *WizardHandler) sessionParams(c *gin.Context) (userID, sessionID uuid.UUID, ok bool) {
	userID, found := middleware.GetUserID(c)
	if !found {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return uuid.Nil, uuid.Nil, false
	}

	sessionID, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid session ID"))
		return uuid.Nil, uuid.Nil, false
	}

	return userID, sessionID, true
}

func (h *WizardHandler) sessionError(c *gin.Context, err error) {
	switch err {
	case domainerrors.ErrNotFound:
		response.Error(c, domainerrors.NotFound("Deposit session not found or expired"))
	case domainerrors.ErrInvalidTransition:
		response.Error(c, domainerrors.InvalidTransition("This step is not available in the session's current state"))
	default:
		response.Error(c, err)
	}
}
