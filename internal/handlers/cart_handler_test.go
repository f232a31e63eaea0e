package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"farmhub/internal/cart"
	"farmhub/internal/models"
	"farmhub/internal/repository"
)

type stubProductStore struct {
	product *models.Product
}

func (s *stubProductStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	if s.product == nil || s.product.ID != id {
		return nil, repository.ErrProductNotFound
	}
	copied := *s.product
	return &copied, nil
}

func (s *stubProductStore) ReserveStock(_ context.Context, id primitive.ObjectID, qty int64) (*models.Product, error) {
	if s.product == nil || s.product.ID != id {
		return nil, repository.ErrProductNotFound
	}
	if s.product.Quantity < qty {
		return nil, repository.ErrInsufficientStock
	}
	s.product.Quantity -= qty
	copied := *s.product
	return &copied, nil
}

func (s *stubProductStore) ReleaseStock(_ context.Context, id primitive.ObjectID, qty int64) (*models.Product, error) {
	s.product.Quantity += qty
	copied := *s.product
	return &copied, nil
}

type stubCartStore struct {
	user *models.User
}

func (s *stubCartStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	if s.user == nil || s.user.ID != id {
		return nil, repository.ErrUserNotFound
	}
	copied := *s.user
	return &copied, nil
}

func (s *stubCartStore) CartUpsert(_ context.Context, id, productID primitive.ObjectID, qty int64) (*models.User, error) {
	for i := range s.user.Cart {
		if s.user.Cart[i].Product == productID {
			s.user.Cart[i].Quantity += qty
			copied := *s.user
			return &copied, nil
		}
	}
	s.user.Cart = append(s.user.Cart, models.CartEntry{Product: productID, Quantity: qty})
	copied := *s.user
	return &copied, nil
}

func (s *stubCartStore) CartSetQuantity(_ context.Context, id, productID primitive.ObjectID, qty int64) (*models.User, error) {
	for i := range s.user.Cart {
		if s.user.Cart[i].Product == productID {
			s.user.Cart[i].Quantity = qty
			copied := *s.user
			return &copied, nil
		}
	}
	return nil, repository.ErrCartEntryNotFound
}

func (s *stubCartStore) CartRemove(_ context.Context, id, productID primitive.ObjectID) (*models.User, error) {
	for i, e := range s.user.Cart {
		if e.Product == productID {
			s.user.Cart = append(s.user.Cart[:i], s.user.Cart[i+1:]...)
			copied := *s.user
			return &copied, nil
		}
	}
	return nil, repository.ErrCartEntryNotFound
}

func cartTestRouter(products *stubProductStore, users *stubCartStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &CartHandler{Reconciler: cart.NewReconciler(products, users)}

	router := gin.New()
	router.POST("/v1/users/:userId/cart", h.AddToCart)
	router.PUT("/v1/users/:userId/cart/:productId", h.UpdateInCart)
	router.DELETE("/v1/users/:userId/cart/:productId", h.RemoveFromCart)
	return router
}

func TestAddToCart(t *testing.T) {
	productID := primitive.NewObjectID()
	userID := primitive.NewObjectID()
	products := &stubProductStore{product: &models.Product{ID: productID, Quantity: 10}}
	users := &stubCartStore{user: &models.User{ID: userID}}
	router := cartTestRouter(products, users)

	body := `{"product": "` + productID.Hex() + `", "quantity": 3}`
	req := httptest.NewRequest(http.MethodPost, "/v1/users/"+userID.Hex()+"/cart", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp CartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.Product.Quantity)
	require.Len(t, resp.User.Cart, 1)
	assert.Equal(t, int64(3), resp.User.Cart[0].Quantity)
}

func TestAddToCartInsufficientStock(t *testing.T) {
	productID := primitive.NewObjectID()
	userID := primitive.NewObjectID()
	products := &stubProductStore{product: &models.Product{ID: productID, Quantity: 2}}
	users := &stubCartStore{user: &models.User{ID: userID}}
	router := cartTestRouter(products, users)

	body := `{"product": "` + productID.Hex() + `", "quantity": 5}`
	req := httptest.NewRequest(http.MethodPost, "/v1/users/"+userID.Hex()+"/cart", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp MessageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Not sufficient quantity available", resp.Message)
	assert.Equal(t, int64(2), products.product.Quantity)
}

func TestAddToCartInvalidProductID(t *testing.T) {
	userID := primitive.NewObjectID()
	router := cartTestRouter(&stubProductStore{}, &stubCartStore{user: &models.User{ID: userID}})

	body := `{"product": "nope", "quantity": 1}`
	req := httptest.NewRequest(http.MethodPost, "/v1/users/"+userID.Hex()+"/cart", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateInCartBelowOneRemoves(t *testing.T) {
	productID := primitive.NewObjectID()
	userID := primitive.NewObjectID()
	products := &stubProductStore{product: &models.Product{ID: productID, Quantity: 6}}
	users := &stubCartStore{user: &models.User{
		ID:   userID,
		Cart: []models.CartEntry{{Product: productID, Quantity: 4}},
	}}
	router := cartTestRouter(products, users)

	req := httptest.NewRequest(http.MethodPut, "/v1/users/"+userID.Hex()+"/cart/"+productID.Hex(), strings.NewReader(`{"quantity": 0}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp CartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.User.Cart)
	assert.Equal(t, int64(10), resp.Product.Quantity)
}

func TestRemoveFromCart(t *testing.T) {
	productID := primitive.NewObjectID()
	userID := primitive.NewObjectID()
	products := &stubProductStore{product: &models.Product{ID: productID, Quantity: 1}}
	users := &stubCartStore{user: &models.User{
		ID:   userID,
		Cart: []models.CartEntry{{Product: productID, Quantity: 2}},
	}}
	router := cartTestRouter(products, users)

	req := httptest.NewRequest(http.MethodDelete, "/v1/users/"+userID.Hex()+"/cart/"+productID.Hex(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp CartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(3), resp.Product.Quantity)
	assert.Empty(t, resp.User.Cart)
}

func TestRemoveFromCartMissingEntry(t *testing.T) {
	productID := primitive.NewObjectID()
	userID := primitive.NewObjectID()
	products := &stubProductStore{product: &models.Product{ID: productID, Quantity: 1}}
	users := &stubCartStore{user: &models.User{ID: userID}}
	router := cartTestRouter(products, users)

	req := httptest.NewRequest(http.MethodDelete, "/v1/users/"+userID.Hex()+"/cart/"+productID.Hex(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
