package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	SaleStatusActive    = "active"
	SaleStatusCancelled = "cancelled"
)

// SaleItem keeps a snapshot of the product name and price at the time of
// sale; later product edits must not rewrite history.
type SaleItem struct {
	Product  string  `bson:"product" json:"product" binding:"required"`
	Name     string  `bson:"name" json:"name"`
	Quantity float64 `bson:"quantity" json:"quantity" binding:"required"`
	Price    float64 `bson:"price" json:"price"`
}

type Payment struct {
	Amount        float64   `bson:"amount" json:"amount"`
	PaymentMethod string    `bson:"payment_method" json:"paymentMethod"`
	ReceivedBy    string    `bson:"received_by,omitempty" json:"receivedBy,omitempty"`
	Notes         string    `bson:"notes,omitempty" json:"notes,omitempty"`
	PaymentDate   time.Time `bson:"payment_date" json:"paymentDate"`
}

type Sale struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Customer       string             `bson:"customer" json:"customer"`
	Seller         string             `bson:"seller" json:"seller"`
	Items          []SaleItem         `bson:"items" json:"items"`
	IsCredit       bool               `bson:"is_credit" json:"isCredit"`
	PaymentMethod  string             `bson:"payment_method" json:"paymentMethod"`
	PaidAmount     float64            `bson:"paid_amount" json:"paidAmount"`
	Total          float64            `bson:"total" json:"total"`
	Status         string             `bson:"status" json:"status"`
	PaymentHistory []Payment          `bson:"payment_history,omitempty" json:"paymentHistory,omitempty"`
	Notes          string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

type SaleInput struct {
	Customer       string     `json:"customer" binding:"required"`
	Seller         string     `json:"seller"`
	Items          []SaleItem `json:"items" binding:"required,min=1"`
	IsCredit       bool       `json:"isCredit"`
	PaymentMethod  string     `json:"paymentMethod"`
	PaidAmount     float64    `json:"paidAmount"`
	Total          float64    `json:"total"`
	PaymentHistory []Payment  `json:"paymentHistory"`
	Notes          string     `json:"notes"`
}

type SalePaymentInput struct {
	Amount        float64 `json:"amount" binding:"required"`
	PaymentMethod string  `json:"paymentMethod"`
	Notes         string  `json:"notes"`
}

// CancelSaleInput carries the password re-check required for cancelling a
// sale; the id of the acting user comes from the token, not this body.
type CancelSaleInput struct {
	SaleID string `json:"saleId" binding:"required"`
	Pass   string `json:"pass" binding:"required"`
}
