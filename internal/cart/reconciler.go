// Package cart keeps product stock and user carts consistent: every
// cart mutation pairs a stock reservation or release on the product
// with a cart write on the user, compensating the stock side when the
// cart write fails.
package cart

import (
	"context"
	"errors"
	"log"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"farmhub/internal/models"
	"farmhub/internal/repository"
)

var ErrInvalidQuantity = errors.New("quantity must be at least 1")

// ProductStore is the slice of the product repository the reconciler
// needs.
type ProductStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	ReserveStock(ctx context.Context, id primitive.ObjectID, qty int64) (*models.Product, error)
	ReleaseStock(ctx context.Context, id primitive.ObjectID, qty int64) (*models.Product, error)
}

// CartStore is the slice of the user repository the reconciler needs.
type CartStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	CartUpsert(ctx context.Context, id, productID primitive.ObjectID, qty int64) (*models.User, error)
	CartSetQuantity(ctx context.Context, id, productID primitive.ObjectID, qty int64) (*models.User, error)
	CartRemove(ctx context.Context, id, productID primitive.ObjectID) (*models.User, error)
}

type Reconciler struct {
	products ProductStore
	users    CartStore
}

func NewReconciler(products ProductStore, users CartStore) *Reconciler {
	return &Reconciler{products: products, users: users}
}

// Add reserves qty units of the product and merges them into the
// user's cart. The reservation is a single conditional decrement, so
// concurrent adds cannot jointly overdraw stock; if the cart write
// fails the reservation is released again.
func (s *Reconciler) Add(ctx context.Context, userID, productID primitive.ObjectID, qty int64) (*models.Product, *models.User, error) {
	if qty < 1 {
		return nil, nil, ErrInvalidQuantity
	}

	product, err := s.products.ReserveStock(ctx, productID, qty)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.users.CartUpsert(ctx, userID, productID, qty)
	if err != nil {
		s.compensateReserve(productID, qty)
		return nil, nil, err
	}
	return product, user, nil
}

// UpdateQuantity sets the cart entry to newQty. A quantity below 1
// removes the entry. Only a growing entry is checked against stock; a
// shrinking one is a pure release.
func (s *Reconciler) UpdateQuantity(ctx context.Context, userID, productID primitive.ObjectID, newQty int64) (*models.Product, *models.User, error) {
	if newQty < 1 {
		return s.Remove(ctx, userID, productID)
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	current := user.CartQuantity(productID)
	if current == 0 {
		return nil, nil, repository.ErrCartEntryNotFound
	}

	delta := newQty - current
	var product *models.Product
	switch {
	case delta > 0:
		product, err = s.products.ReserveStock(ctx, productID, delta)
	case delta < 0:
		product, err = s.products.ReleaseStock(ctx, productID, -delta)
	default:
		product, err = s.products.FindByID(ctx, productID)
	}
	if err != nil {
		return nil, nil, err
	}

	updated, err := s.users.CartSetQuantity(ctx, userID, productID, newQty)
	if err != nil {
		switch {
		case delta > 0:
			s.compensateReserve(productID, delta)
		case delta < 0:
			s.compensateRelease(productID, -delta)
		}
		return nil, nil, err
	}
	return product, updated, nil
}

// Remove returns the entry's reserved quantity to product stock and
// deletes the entry.
func (s *Reconciler) Remove(ctx context.Context, userID, productID primitive.ObjectID) (*models.Product, *models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	qty := user.CartQuantity(productID)
	if qty == 0 {
		return nil, nil, repository.ErrCartEntryNotFound
	}

	product, err := s.products.ReleaseStock(ctx, productID, qty)
	if err != nil {
		return nil, nil, err
	}

	updated, err := s.users.CartRemove(ctx, userID, productID)
	if err != nil {
		s.compensateRelease(productID, qty)
		return nil, nil, err
	}
	return product, updated, nil
}

// compensateReserve undoes a reservation after a failed cart write.
// Best effort: a failure here leaves stock under-counted and is only
// logged.
func (s *Reconciler) compensateReserve(productID primitive.ObjectID, qty int64) {
	ctx, cancel := compensationContext()
	defer cancel()
	if _, err := s.products.ReleaseStock(ctx, productID, qty); err != nil {
		log.Printf("stock compensation failed for product %s (+%d): %v", productID.Hex(), qty, err)
	}
}

func (s *Reconciler) compensateRelease(productID primitive.ObjectID, qty int64) {
	ctx, cancel := compensationContext()
	defer cancel()
	if _, err := s.products.ReserveStock(ctx, productID, qty); err != nil {
		log.Printf("stock compensation failed for product %s (-%d): %v", productID.Hex(), qty, err)
	}
}
