package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	domainerrors "cryptobet.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error sends an error response, translating domain sentinel errors to their
// HTTP status when the caller did not wrap them in an AppError.
func Error(c *gin.Context, err error) {
	var appErr *domainerrors.AppError
	if !errors.As(err, &appErr) {
		appErr = fromSentinel(err)
	}

	c.JSON(appErr.Code, gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
		"error":   appErr.Message, // Backward compatibility
	})
}

func fromSentinel(err error) *domainerrors.AppError {
	switch {
	case errors.Is(err, domainerrors.ErrNotFound):
		return domainerrors.NotFound("Resource not found")
	case errors.Is(err, domainerrors.ErrAlreadyExists):
		return domainerrors.Conflict("Resource already exists")
	case errors.Is(err, domainerrors.ErrInvalidTransition):
		return domainerrors.InvalidTransition("Request is no longer pending")
	case errors.Is(err, domainerrors.ErrInvalidCredentials):
		return domainerrors.NewAppError(http.StatusUnauthorized, "Invalid email or password", err)
	case errors.Is(err, domainerrors.ErrEmailNotVerified):
		return domainerrors.NewAppError(http.StatusUnauthorized, "Email is not verified", err)
	case errors.Is(err, domainerrors.ErrUnauthorized), errors.Is(err, domainerrors.ErrTokenExpired):
		return domainerrors.Unauthorized("Unauthorized")
	case errors.Is(err, domainerrors.ErrForbidden):
		return domainerrors.Forbidden("Insufficient permissions")
	case errors.Is(err, domainerrors.ErrRateLimited):
		return domainerrors.TooManyRequests("Please wait before retrying")
	case errors.Is(err, domainerrors.ErrCodeExpired):
		return domainerrors.NewAppError(http.StatusBadRequest, "Verification code has expired", err)
	case errors.Is(err, domainerrors.ErrCodeInvalid):
		return domainerrors.NewAppError(http.StatusBadRequest, "Verification code is invalid", err)
	case errors.Is(err, domainerrors.ErrUnsupportedCoin):
		return domainerrors.BadRequest("Unsupported settlement asset")
	case errors.Is(err, domainerrors.ErrBelowMinimum):
		return domainerrors.BadRequest("Amount is below the minimum investment")
	case errors.Is(err, domainerrors.ErrInvalidInput):
		return domainerrors.BadRequest("Invalid input")
	default:
		return domainerrors.InternalError(err)
	}
}
