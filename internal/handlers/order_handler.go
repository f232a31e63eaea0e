package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"farmhub/internal/checkout"
	"farmhub/internal/models"
	"farmhub/internal/repository"
)

type OrderHandler struct {
	Checkout *checkout.Service
	Orders   *repository.OrderRepository
}

type createOrderRequest struct {
	PaymentInfo models.PaymentInfo `json:"payment_info"`
	Address     models.Address     `json:"address" binding:"required"`
}

// POST /v1/users/:userId/orders
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	userID, err := parseObjectID(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "invalid user ID"})
		return
	}

	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: err.Error()})
		return
	}

	orders, err := h.Checkout.CreateOrders(c.Request.Context(), userID, req.PaymentInfo, req.Address)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, orders)
}

// GET /v1/orders/:orderId
func (h *OrderHandler) OrderInfo(c *gin.Context) {
	id, err := parseObjectID(c.Param("orderId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "invalid order ID"})
		return
	}

	order, err := h.Orders.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// GET /v1/orders
func (h *OrderHandler) OrderList(c *gin.Context) {
	orders, err := h.Orders.FindAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GET /v1/users/:userId/orders
func (h *OrderHandler) UserOrders(c *gin.Context) {
	userID, err := parseObjectID(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "invalid user ID"})
		return
	}

	orders, err := h.Orders.FindByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

type updateOrderRequest struct {
	Status string `json:"status" binding:"required"`
}

// PUT /v1/orders/:orderId
func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	id, err := parseObjectID(c.Param("orderId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "invalid order ID"})
		return
	}

	var req updateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: err.Error()})
		return
	}

	order, err := h.Orders.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
