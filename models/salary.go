package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EmployeeRef is a snapshot of the employee at payout time, not a live join.
type EmployeeRef struct {
	ID        string `bson:"id" json:"id" binding:"required"`
	FirstName string `bson:"first_name" json:"firstName"`
	Position  string `bson:"position" json:"position"`
}

type Salary struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Employee    EmployeeRef        `bson:"employee" json:"employee"`
	Amount      float64            `bson:"amount" json:"amount"`
	Bonus       float64            `bson:"bonus" json:"bonus"`
	Deductions  float64            `bson:"deductions" json:"deductions"`
	NetSalary   float64            `bson:"net_salary" json:"netSalary"`
	PaymentDate time.Time          `bson:"payment_date" json:"paymentDate"`
	Year        int                `bson:"year" json:"year"`
	Month       int                `bson:"month" json:"month"`
	Notes       string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt   time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
}

type SalaryInput struct {
	Employee    EmployeeRef `json:"employee" binding:"required"`
	Amount      float64     `json:"amount" binding:"required"`
	Bonus       float64     `json:"bonus"`
	Deductions  float64     `json:"deductions"`
	PaymentDate string      `json:"paymentDate" binding:"required"`
	Year        int         `json:"year" binding:"required"`
	Month       int         `json:"month" binding:"required"`
	Notes       string      `json:"notes"`
}
