package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Image holds an uploaded binary stored inline in the document.
type Image struct {
	Data        []byte `json:"-" bson:"data"`
	ContentType string `json:"content_type" bson:"content_type"`
}

// Review is embedded in a product; at most one per user.
type Review struct {
	User        primitive.ObjectID `json:"user" bson:"user"`
	Rating      int                `json:"rating" bson:"rating" binding:"required,min=1,max=5"`
	Description string             `json:"description" bson:"description"`
}

type Product struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name" binding:"required"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	Category    string             `json:"category" bson:"category" binding:"required"`
	Brand       string             `json:"brand" bson:"brand"`
	Price       float64            `json:"price" bson:"price" binding:"required"`
	Quantity    int64              `json:"quantity" bson:"quantity"`
	Images      []Image            `json:"images,omitempty" bson:"images,omitempty"`
	Reviews     []Review           `json:"reviews" bson:"reviews"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

// ProductSummary is the projection returned by category and search listings.
type ProductSummary struct {
	ID      primitive.ObjectID `json:"id" bson:"_id"`
	Name    string             `json:"name" bson:"name"`
	Brand   string             `json:"brand" bson:"brand"`
	Price   float64            `json:"price" bson:"price"`
	Images  []Image            `json:"images,omitempty" bson:"images,omitempty"`
	Reviews []Review           `json:"reviews" bson:"reviews"`
}

// RankedProduct is produced by the top-products aggregation.
type RankedProduct struct {
	ID          primitive.ObjectID `json:"id" bson:"_id"`
	Name        string             `json:"name" bson:"name"`
	Brand       string             `json:"brand" bson:"brand"`
	Price       float64            `json:"price" bson:"price"`
	Images      []Image            `json:"images,omitempty" bson:"images,omitempty"`
	AvgRating   float64            `json:"avg_rating" bson:"avg_rating"`
	ReviewCount int64              `json:"review_count" bson:"review_count"`
}
