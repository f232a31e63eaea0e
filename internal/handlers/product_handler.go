package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"farmhub/internal/auth"
	"farmhub/internal/cache"
	"farmhub/internal/catalog"
	"farmhub/internal/models"
	"farmhub/internal/repository"
)

type ProductHandler struct {
	Products *repository.ProductRepository
	Catalog  *catalog.Service
	Cache    cache.CatalogCache
}

// POST /v1/products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var product models.Product
	product.Name = c.PostForm("name")
	product.Description = c.PostForm("description")
	product.Category = c.PostForm("category")
	product.Brand = c.PostForm("brand")

	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil || price < 0 {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "invalid price"})
		return
	}
	product.Price = price

	quantity, err := strconv.ParseInt(c.DefaultPostForm("quantity", "0"), 10, 64)
	if err != nil || quantity < 0 {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "invalid quantity"})
		return
	}
	product.Quantity = quantity

	if product.Name == "" || product.Category == "" {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "name and category are required"})
		return
	}

	if form, err := c.MultipartForm(); err == nil {
		images, err := readImages(form.File["images"])
		if err != nil {
			c.JSON(http.StatusBadRequest, MessageResponse{Message: err.Error()})
			return
		}
		product.Images = images
	}

	if err := h.Products.Create(c.Request.Context(), &product); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// PUT /v1/products/:productId
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := parseObjectID(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "invalid product ID"})
		return
	}

	update := bson.M{}
	for _, field := range []string{"name", "description", "category", "brand"} {
		if v, ok := c.GetPostForm(field); ok {
			update[field] = v
		}
	}
	if v, ok := c.GetPostForm("price"); ok {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil || price < 0 {
			c.JSON(http.StatusBadRequest, MessageResponse{Message: "invalid price"})
			return
		}
		update["price"] = price
	}
	if v, ok := c.GetPostForm("quantity"); ok {
		quantity, err := strconv.ParseInt(v, 10, 64)
		if err != nil || quantity < 0 {
			c.JSON(http.StatusBadRequest, MessageResponse{Message: "invalid quantity"})
			return
		}
		update["quantity"] = quantity
	}
	if form, err := c.MultipartForm(); err == nil && len(form.File["images"]) > 0 {
		images, err := readImages(form.File["images"])
		if err != nil {
			c.JSON(http.StatusBadRequest, MessageResponse{Message: err.Error()})
			return
		}
		update["images"] = images
	}

	product, err := h.Products.Update(c.Request.Context(), id, update)
	if err != nil {
		respondError(c, err)
		return
	}
	h.invalidateRanking()
	c.JSON(http.StatusOK, product)
}

// DELETE /v1/products/:productId
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := parseObjectID(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "invalid product ID"})
		return
	}

	if err := h.Products.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	h.invalidateRanking()
	c.JSON(http.StatusOK, MessageResponse{Message: "Product deleted successfully"})
}

// GET /v1/products/:productId
func (h *ProductHandler) DisplayProduct(c *gin.Context) {
	id, err := parseObjectID(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "invalid product ID"})
		return
	}

	var viewer *primitive.ObjectID
	if user := auth.CurrentUser(c); user != nil {
		viewer = &user.ID
	}

	product, err := h.Catalog.Display(c.Request.Context(), id, viewer)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// GET /v1/products
func (h *ProductHandler) GetAllProducts(c *gin.Context) {
	products, err := h.Catalog.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// GET /v1/categories/:category/products
func (h *ProductHandler) ProductList(c *gin.Context) {
	listing, err := h.Catalog.ListByCategory(c.Request.Context(), c.Param("category"), c.Query("sort"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

// GET /v1/products/search/:term
func (h *ProductHandler) ProductSearch(c *gin.Context) {
	products, err := h.Catalog.Search(c.Request.Context(), c.Param("term"), c.Query("sort"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// GET /v1/products/top
func (h *ProductHandler) TopProducts(c *gin.Context) {
	products, err := h.Catalog.TopProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// GET /v1/products/:productId/images/:index
func (h *ProductHandler) GetImage(c *gin.Context) {
	id, err := parseObjectID(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "invalid product ID"})
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "invalid image index"})
		return
	}

	product, err := h.Products.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if index >= len(product.Images) {
		c.JSON(http.StatusNotFound, MessageResponse{Message: "image not found"})
		return
	}

	image := product.Images[index]
	c.Data(http.StatusOK, image.ContentType, image.Data)
}

// --- Reviews ---

type reviewRequest struct {
	Rating      int    `json:"rating" binding:"required,min=1,max=5"`
	Description string `json:"description"`
}

// POST /v1/products/:productId/reviews
//
// Insert-if-absent: a second review by the same user updates the
// existing one instead of duplicating it.
func (h *ProductHandler) AddReview(c *gin.Context) {
	id, err := parseObjectID(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "invalid product ID"})
		return
	}

	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: err.Error()})
		return
	}

	user := auth.CurrentUser(c)
	review := models.Review{User: user.ID, Rating: req.Rating, Description: req.Description}

	product, err := h.Products.AddReview(c.Request.Context(), id, review)
	if errors.Is(err, repository.ErrReviewExists) {
		product, err = h.Products.UpdateReview(c.Request.Context(), id, review)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	h.invalidateRanking()
	c.JSON(http.StatusOK, product)
}

// PUT /v1/products/:productId/reviews
func (h *ProductHandler) UpdateReview(c *gin.Context) {
	id, err := parseObjectID(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "invalid product ID"})
		return
	}

	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: err.Error()})
		return
	}

	user := auth.CurrentUser(c)
	review := models.Review{User: user.ID, Rating: req.Rating, Description: req.Description}

	product, err := h.Products.UpdateReview(c.Request.Context(), id, review)
	if err != nil {
		respondError(c, err)
		return
	}
	h.invalidateRanking()
	c.JSON(http.StatusOK, product)
}

// DELETE /v1/products/:productId/reviews
func (h *ProductHandler) DeleteReview(c *gin.Context) {
	id, err := parseObjectID(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "invalid product ID"})
		return
	}

	user := auth.CurrentUser(c)
	product, err := h.Products.DeleteReview(c.Request.Context(), id, user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	h.invalidateRanking()
	c.JSON(http.StatusOK, product)
}

// Review and stock changes feed the top-products ranking, so drop the
// cached copy and let the next read recompute it.
func (h *ProductHandler) invalidateRanking() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := h.Cache.InvalidateTopProducts(ctx); err != nil {
		log.Printf("cache invalidate error: %v", err)
	}
}
