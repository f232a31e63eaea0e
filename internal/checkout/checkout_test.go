package checkout

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"farmhub/internal/models"
	"farmhub/internal/repository"
)

type mockUserStore struct {
	m       sync.Mutex
	user    *models.User
	cleared bool

	failClear bool
}

func (m *mockUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.user == nil || m.user.ID != id {
		return nil, repository.ErrUserNotFound
	}
	return m.user, nil
}

func (m *mockUserStore) CartClear(_ context.Context, id primitive.ObjectID) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.failClear {
		return errors.New("clear failed")
	}
	m.user.Cart = []models.CartEntry{}
	m.cleared = true
	return nil
}

type mockProductStore struct {
	products map[primitive.ObjectID]*models.Product
}

func (m *mockProductStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return p, nil
}

type mockOrderStore struct {
	inserted []models.Order

	failInsert bool
}

func (m *mockOrderStore) InsertMany(_ context.Context, orders []models.Order) ([]models.Order, error) {
	if m.failInsert {
		return nil, errors.New("insert failed")
	}
	for i := range orders {
		orders[i].ID = primitive.NewObjectID()
	}
	m.inserted = append(m.inserted, orders...)
	return orders, nil
}

func TestPriceLine(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		qty      int64
		subtotal float64
		shipping float64
		tax      float64
		total    float64
	}{
		{"free shipping above threshold", 1000, 2, 2000, 0, 360, 2360},
		{"flat shipping below threshold", 100, 1, 100, 60, 18, 178},
		{"threshold is exclusive", 1500, 1, 1500, 60, 270, 1830},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := PriceLine(tt.price, tt.qty)
			assert.InDelta(t, tt.subtotal, p.Subtotal, 1e-9)
			assert.InDelta(t, tt.shipping, p.ShippingCharges, 1e-9)
			assert.InDelta(t, tt.tax, p.Tax, 1e-9)
			assert.InDelta(t, tt.total, p.Total, 1e-9)
		})
	}
}

func fixtures(t *testing.T) (*Service, *mockUserStore, *mockOrderStore, primitive.ObjectID, []primitive.ObjectID) {
	t.Helper()

	productIDs := []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID()}
	products := &mockProductStore{products: map[primitive.ObjectID]*models.Product{
		productIDs[0]: {ID: productIDs[0], Name: "seeds", Price: 1000},
		productIDs[1]: {ID: productIDs[1], Name: "fertilizer", Price: 100},
	}}

	userID := primitive.NewObjectID()
	users := &mockUserStore{user: &models.User{
		ID: userID,
		Cart: []models.CartEntry{
			{Product: productIDs[0], Quantity: 2},
			{Product: productIDs[1], Quantity: 1},
		},
	}}

	orders := &mockOrderStore{}
	return NewService(users, products, orders), users, orders, userID, productIDs
}

func TestCreateOrders(t *testing.T) {
	s, users, orders, userID, productIDs := fixtures(t)

	address := models.Address{Line1: "1 Farm Road", City: "Pune", State: "MH", Pincode: "411001"}
	payment := models.PaymentInfo{ID: "pi_123", Status: "succeeded"}

	created, err := s.CreateOrders(context.Background(), userID, payment, address)
	require.NoError(t, err)

	// One order per cart line, not one per checkout.
	require.Len(t, created, 2)
	assert.Equal(t, productIDs[0], created[0].Product)
	assert.InDelta(t, 2360.0, created[0].Total, 1e-9)
	assert.Equal(t, productIDs[1], created[1].Product)
	assert.InDelta(t, 178.0, created[1].Total, 1e-9)

	for _, o := range created {
		assert.Equal(t, models.StatusProcessing, o.Status)
		assert.Equal(t, payment, o.PaymentInfo)
		assert.Equal(t, address, o.Address)
		assert.Equal(t, userID, o.User)
	}

	assert.True(t, users.cleared, "cart must be cleared after checkout")
	assert.Len(t, orders.inserted, 2)
}

func TestCreateOrdersEmptyCart(t *testing.T) {
	s, users, orders, userID, _ := fixtures(t)
	users.user.Cart = nil

	_, err := s.CreateOrders(context.Background(), userID, models.PaymentInfo{}, models.Address{})
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, orders.inserted)
}

func TestCreateOrdersInsertFailureKeepsCart(t *testing.T) {
	s, users, orders, userID, _ := fixtures(t)
	orders.failInsert = true

	_, err := s.CreateOrders(context.Background(), userID, models.PaymentInfo{}, models.Address{})
	require.Error(t, err)

	assert.False(t, users.cleared)
	assert.Len(t, users.user.Cart, 2, "failed insert must leave the cart populated")
}

func TestCreateOrdersClearFailureSurfacesError(t *testing.T) {
	s, users, orders, userID, _ := fixtures(t)
	users.failClear = true

	created, err := s.CreateOrders(context.Background(), userID, models.PaymentInfo{}, models.Address{})
	require.Error(t, err)

	// The orders were written before the clear failed.
	assert.Len(t, created, 2)
	assert.Len(t, orders.inserted, 2)
}

func TestCreateOrdersUnknownUser(t *testing.T) {
	s, _, _, _, _ := fixtures(t)

	_, err := s.CreateOrders(context.Background(), primitive.NewObjectID(), models.PaymentInfo{}, models.Address{})
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}
