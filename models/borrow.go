package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BorrowItem struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	ItemName   string             `bson:"item_name" json:"itemName" binding:"required"`
	Quantity   float64            `bson:"quantity" json:"quantity" binding:"required"`
	Price      float64            `bson:"price" json:"price"`
	PaidAmount float64            `bson:"paid_amount" json:"paidAmount"`
}

type Borrow struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	LenderName string             `bson:"lender_name" json:"lenderName"`
	BorrowDate time.Time          `bson:"borrow_date" json:"borrowDate"`
	ReturnDate *time.Time         `bson:"return_date,omitempty" json:"returnDate,omitempty"`
	Returned   bool               `bson:"returned" json:"returned"`
	Items      []BorrowItem       `bson:"items" json:"items"`
	PaidAmount float64            `bson:"paid_amount" json:"paidAmount"`
	Payments   []Payment          `bson:"payments,omitempty" json:"payments,omitempty"`
	CreatedAt  time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
}

type BorrowInput struct {
	LenderName string       `json:"lenderName" binding:"required"`
	BorrowDate string       `json:"borrowDate" binding:"required"`
	ReturnDate string       `json:"returnDate"`
	Returned   bool         `json:"returned"`
	Items      []BorrowItem `json:"items" binding:"required,min=1"`
}

type BorrowItemPayment struct {
	ItemID string  `json:"itemId" binding:"required"`
	Amount float64 `json:"amount" binding:"required"`
}

type PartialPaymentInput struct {
	Amount        float64             `json:"amount" binding:"required"`
	Items         []BorrowItemPayment `json:"items"`
	PaymentMethod string              `json:"paymentMethod"`
	PaymentDate   string              `json:"paymentDate"`
}
