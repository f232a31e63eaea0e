package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses. An order is created as Processing and moves to
// Delivered, which stamps DateDelivered.
const (
	StatusProcessing = "Processing"
	StatusShipped    = "Shipped"
	StatusDelivered  = "Delivered"
)

// PaymentInfo is recorded as submitted at checkout time.
type PaymentInfo struct {
	ID     string `json:"id" bson:"id"`
	Status string `json:"status" bson:"status"`
}

// Order is one cart line at checkout time, not one checkout
// transaction. Immutable once created except for status and
// date_delivered.
type Order struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Product         primitive.ObjectID `json:"product" bson:"product"`
	Quantity        int64              `json:"quantity" bson:"quantity"`
	Subtotal        float64            `json:"subtotal" bson:"subtotal"`
	ShippingCharges float64            `json:"shipping_charges" bson:"shipping_charges"`
	Tax             float64            `json:"tax" bson:"tax"`
	Total           float64            `json:"total" bson:"total"`
	PaymentInfo     PaymentInfo        `json:"payment_info" bson:"payment_info"`
	User            primitive.ObjectID `json:"user" bson:"user"`
	Address         Address            `json:"address" bson:"address"`
	Status          string             `json:"status" bson:"status"`
	DateDelivered   *time.Time         `json:"date_delivered,omitempty" bson:"date_delivered,omitempty"`
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
}
