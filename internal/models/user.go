package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Address is embedded in a user with its own identity so individual
// entries can be updated or removed.
type Address struct {
	ID      primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Line1   string             `json:"line1" bson:"line1" binding:"required"`
	Line2   string             `json:"line2,omitempty" bson:"line2,omitempty"`
	City    string             `json:"city" bson:"city" binding:"required"`
	State   string             `json:"state" bson:"state" binding:"required"`
	Pincode string             `json:"pincode" bson:"pincode" binding:"required"`
}

// CartEntry is a pending reservation of stock: the referenced product's
// quantity has already been decremented by Quantity.
type CartEntry struct {
	Product  primitive.ObjectID `json:"product" bson:"product"`
	Quantity int64              `json:"quantity" bson:"quantity"`
}

type User struct {
	ID               primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name             string             `json:"name" bson:"name" binding:"required"`
	Email            string             `json:"email" bson:"email" binding:"required,email"`
	PhoneNumber      string             `json:"phone_number" bson:"phone_number" binding:"required"`
	Password         string             `json:"-" bson:"password"`
	Avatar           *Image             `json:"avatar,omitempty" bson:"avatar,omitempty"`
	Addresses        []Address          `json:"addresses" bson:"addresses"`
	Cart             []CartEntry        `json:"cart" bson:"cart"`
	ResetPasswordOtp string             `json:"-" bson:"reset_password_otp,omitempty"`
	CreatedAt        time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at" bson:"updated_at"`
}

// CartQuantity returns the quantity reserved for product, or 0 when
// the cart has no entry for it.
func (u *User) CartQuantity(product primitive.ObjectID) int64 {
	for _, e := range u.Cart {
		if e.Product == product {
			return e.Quantity
		}
	}
	return 0
}
