package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"farmhub/internal/cart"
	"farmhub/internal/models"
)

type CartHandler struct {
	Reconciler *cart.Reconciler
}

// CartResponse carries both sides of a reconciled cart mutation.
type CartResponse struct {
	Product *models.Product `json:"product"`
	User    *models.User    `json:"user"`
}

type addToCartRequest struct {
	Product  string `json:"product" binding:"required"`
	Quantity int64  `json:"quantity" binding:"required,min=1"`
}

// POST /v1/users/:userId/cart
func (h *CartHandler) AddToCart(c *gin.Context) {
	userID, err := parseObjectID(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "invalid user ID"})
		return
	}

	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: err.Error()})
		return
	}
	productID, err := parseObjectID(req.Product)
	if err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "invalid product ID"})
		return
	}

	product, user, err := h.Reconciler.Add(c.Request.Context(), userID, productID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, CartResponse{Product: product, User: user})
}

type updateCartRequest struct {
	Quantity int64 `json:"quantity"`
}

// PUT /v1/users/:userId/cart/:productId
//
// A quantity below 1 removes the entry.
func (h *CartHandler) UpdateInCart(c *gin.Context) {
	userID, err := parseObjectID(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "invalid user ID"})
		return
	}
	productID, err := parseObjectID(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "invalid product ID"})
		return
	}

	var req updateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: err.Error()})
		return
	}

	product, user, err := h.Reconciler.UpdateQuantity(c.Request.Context(), userID, productID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, CartResponse{Product: product, User: user})
}

// DELETE /v1/users/:userId/cart/:productId
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	userID, err := parseObjectID(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "invalid user ID"})
		return
	}
	productID, err := parseObjectID(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "invalid product ID"})
		return
	}

	product, user, err := h.Reconciler.Remove(c.Request.Context(), userID, productID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, CartResponse{Product: product, User: user})
}
