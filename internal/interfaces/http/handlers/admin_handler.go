package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"cryptobet.backend/internal/domain/entities"
	domainerrors "cryptobet.backend/internal/domain/errors"
	"cryptobet.backend/internal/interfaces/http/response"
	"cryptobet.backend/internal/usecases"
	"cryptobet.backend/pkg/utils"
)

// AdminHandler exposes the back-office review endpoints
type AdminHandler struct {
	authUsecase       *usecases.AuthUsecase
	investmentUsecase *usecases.InvestmentUsecase
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(authUsecase *usecases.AuthUsecase, investmentUsecase *usecases.InvestmentUsecase) *AdminHandler {
	return &AdminHandler{
		authUsecase:       authUsecase,
		investmentUsecase: investmentUsecase,
	}
}

// ListUsers returns registered users, optionally filtered by a search term
// GET /api/v1/admin/users?search=jane
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.authUsecase.ListUsers(c.Request.Context(), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]gin.H, 0, len(users))
	for _, user := range users {
		out = append(out, gin.H{
			"id":            user.ID,
			"email":         user.Email,
			"name":          user.Name,
			"role":          user.Role,
			"emailVerified": user.EmailVerified,
			"createdAt":     user.CreatedAt,
		})
	}

	response.Success(c, http.StatusOK, gin.H{
		"users": out,
		"count": len(out),
	})
}

// ChangeRole updates a user's role
// PUT /api/v1/admin/users/:id/role
func (h *AdminHandler) ChangeRole(c *gin.Context) {
	userID, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid user ID"))
		return
	}

	var input entities.ChangeRoleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.authUsecase.ChangeRole(c.Request.Context(), userID, input.Role); err != nil {
		if err == domainerrors.ErrNotFound {
			response.Error(c, domainerrors.NotFound("User not found"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Role updated",
	})
}

// ListInvestments returns investment requests with optional status and search
// filters, newest first
// GET /api/v1/admin/investments?status=pending&search=jane@example.com&page=1&limit=20
func (h *AdminHandler) ListInvestments(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	pagination := utils.GetPaginationParams(page, limit)

	filter := entities.InvestmentFilter{
		Search: c.Query("search"),
	}

	if status := c.Query("status"); status != "" {
		s := entities.InvestmentStatus(status)
		if !s.Valid() {
			response.Error(c, domainerrors.BadRequest("Unknown status filter"))
			return
		}
		filter.Status = s
	}

	investments, total, err := h.investmentUsecase.List(c.Request.Context(), filter, pagination)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"investments": investments,
		"meta":        utils.CalculateMeta(total, pagination.Page, pagination.Limit),
	})
}

// Approve marks a pending investment as approved
// POST /api/v1/admin/investments/:id/approve
func (h *AdminHandler) Approve(c *gin.Context) {
	h.review(c, h.investmentUsecase.Approve, "Investment approved")
}

// Reject marks a pending investment as rejected
// POST /api/v1/admin/investments/:id/reject
func (h *AdminHandler) Reject(c *gin.Context) {
	h.review(c, h.investmentUsecase.Reject, "Investment rejected")
}

// GetStats returns aggregate fundraising numbers
// GET /api/v1/admin/stats
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.investmentUsecase.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"stats": stats})
}

func (h *AdminHandler) review(c *gin.Context, decide func(ctx context.Context, id uuid.UUID) error, message string) {
	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid investment ID"))
		return
	}

	if err := decide(c.Request.Context(), id); err != nil {
		switch err {
		case domainerrors.ErrNotFound:
			response.Error(c, domainerrors.NotFound("Investment not found"))
		case domainerrors.ErrInvalidTransition:
			response.Error(c, domainerrors.InvalidTransition("Investment has already been reviewed"))
		default:
			response.Error(c, err)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": message,
	})
}
