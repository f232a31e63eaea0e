package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"farmhub/internal/auth"
	"farmhub/internal/cart"
	"farmhub/internal/checkout"
	"farmhub/internal/repository"
)

type MessageResponse struct {
	Message string `json:"message"`
}

// respondError maps domain errors to status codes at the boundary.
// Anything unrecognized becomes a 500 carrying the raw message.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrInsufficientStock):
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "Not sufficient quantity available"})
	case errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, repository.ErrReviewExists):
		c.JSON(http.StatusBadRequest, MessageResponse{Message: err.Error()})
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidOTP),
		errors.Is(err, auth.ErrSessionNotFound):
		c.JSON(http.StatusUnauthorized, MessageResponse{Message: err.Error()})
	case errors.Is(err, repository.ErrProductNotFound),
		errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrOrderNotFound),
		errors.Is(err, repository.ErrAddressNotFound),
		errors.Is(err, repository.ErrCartEntryNotFound),
		errors.Is(err, repository.ErrReviewNotFound):
		c.JSON(http.StatusNotFound, MessageResponse{Message: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, MessageResponse{Message: err.Error()})
	}
}
