package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name        string             `bson:"name" json:"name" binding:"required"`
	SKU         string             `bson:"sku" json:"sku" binding:"required"`
	Category    string             `bson:"category" json:"category" binding:"required"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Price       float64            `bson:"price" json:"price"`
	Quantity    float64            `bson:"quantity" json:"quantity"`
	MinQuantity float64            `bson:"minquantity" json:"minQuantity"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	ImageThumb  string             `bson:"image_thumb,omitempty" json:"imageThumb,omitempty"`
	CreatedAt   time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
	UpdatedAt   time.Time          `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// LowStock reports whether the product is at or below its configured minimum.
func (p Product) LowStock() bool {
	return p.Quantity <= p.MinQuantity
}
