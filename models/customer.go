package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Customer struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name        string             `bson:"name" json:"name" binding:"required"`
	Phone       string             `bson:"phone" json:"phone"`
	CreditLimit float64            `bson:"credit_limit" json:"creditLimit"`
	CreatedAt   time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
}

// DeleteInput is the shared body for the pass-gated delete endpoints. The
// password is re-checked against the acting user before anything is removed.
type DeleteInput struct {
	ID   string `json:"id" binding:"required"`
	Pass string `json:"pass" binding:"required"`
}
