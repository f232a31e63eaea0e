// Package checkout converts a user's cart into order documents and
// clears the cart. Stock is not touched here: it was already reserved
// when the items entered the cart.
package checkout

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"farmhub/internal/models"
)

var ErrEmptyCart = errors.New("cart is empty, nothing to checkout")

const (
	freeShippingThreshold = 1500
	shippingCharge        = 60
	taxRate               = 0.18
)

type UserStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	CartClear(ctx context.Context, id primitive.ObjectID) error
}

type ProductStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
}

type OrderStore interface {
	InsertMany(ctx context.Context, orders []models.Order) ([]models.Order, error)
}

type Service struct {
	users    UserStore
	products ProductStore
	orders   OrderStore
}

func NewService(users UserStore, products ProductStore, orders OrderStore) *Service {
	return &Service{users: users, products: products, orders: orders}
}

// Pricing is the per-line breakdown of a checkout.
type Pricing struct {
	Subtotal        float64
	ShippingCharges float64
	Tax             float64
	Total           float64
}

// PriceLine computes the breakdown for one cart line. Orders above
// the free-shipping threshold ship at no charge.
func PriceLine(price float64, qty int64) Pricing {
	subtotal := price * float64(qty)
	shipping := float64(shippingCharge)
	if subtotal > freeShippingThreshold {
		shipping = 0
	}
	tax := subtotal * taxRate
	return Pricing{
		Subtotal:        subtotal,
		ShippingCharges: shipping,
		Tax:             tax,
		Total:           subtotal + tax + shipping,
	}
}

// CreateOrders turns every cart line into one order document, inserts
// them all, then clears the cart. A failed insert leaves the cart
// untouched; a failed clear leaves the orders in place and surfaces
// the error.
func (s *Service) CreateOrders(ctx context.Context, userID primitive.ObjectID, paymentInfo models.PaymentInfo, address models.Address) ([]models.Order, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(user.Cart) == 0 {
		return nil, ErrEmptyCart
	}

	orders := make([]models.Order, 0, len(user.Cart))
	for _, entry := range user.Cart {
		product, err := s.products.FindByID(ctx, entry.Product)
		if err != nil {
			return nil, err
		}
		pricing := PriceLine(product.Price, entry.Quantity)
		orders = append(orders, models.Order{
			Product:         product.ID,
			Quantity:        entry.Quantity,
			Subtotal:        pricing.Subtotal,
			ShippingCharges: pricing.ShippingCharges,
			Tax:             pricing.Tax,
			Total:           pricing.Total,
			PaymentInfo:     paymentInfo,
			User:            userID,
			Address:         address,
			Status:          models.StatusProcessing,
		})
	}

	created, err := s.orders.InsertMany(ctx, orders)
	if err != nil {
		return nil, err
	}

	if err := s.users.CartClear(ctx, userID); err != nil {
		return created, err
	}
	return created, nil
}
