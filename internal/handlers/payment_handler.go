package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"farmhub/internal/gateway"
)

type PaymentHandler struct {
	Gateway        gateway.PaymentGateway
	PublishableKey string
}

type processPaymentRequest struct {
	Amount int64 `json:"amount" binding:"required,min=1"`
}

type processPaymentResponse struct {
	Success      bool   `json:"success"`
	ClientSecret string `json:"client_secret"`
}

// POST /v1/payment/process
func (h *PaymentHandler) ProcessPayment(c *gin.Context) {
	var req processPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: err.Error()})
		return
	}

	clientSecret, err := h.Gateway.CreateIntent(c.Request.Context(), req.Amount, "inr")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, processPaymentResponse{Success: true, ClientSecret: clientSecret})
}

// GET /v1/payment/key
func (h *PaymentHandler) SendStripeApiKey(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"stripe_api_key": h.PublishableKey})
}
