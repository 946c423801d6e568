package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	EmployeeActive     = "active"
	EmployeeOnLeave    = "on_leave"
	EmployeeTerminated = "terminated"
)

type Employee struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	FirstName  string             `bson:"first_name" json:"firstName" binding:"required"`
	LastName   string             `bson:"last_name" json:"lastName"`
	Position   string             `bson:"position" json:"position"`
	Department string             `bson:"department" json:"department"`
	Phone      string             `bson:"phone" json:"phone"`
	Email      string             `bson:"email" json:"email"`
	Salary     float64            `bson:"salary" json:"salary"`
	Address    string             `bson:"address" json:"address"`
	Status     string             `bson:"status" json:"status"`
	CreatedAt  time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
}
