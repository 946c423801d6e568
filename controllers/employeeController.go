package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"inventory/config"
	"inventory/listkit"
	"inventory/models"
)

var employeeAccessors = []listkit.Accessor[models.Employee]{
	listkit.Field(func(e models.Employee) string { return e.FirstName }),
	listkit.Field(func(e models.Employee) string { return e.LastName }),
	listkit.Field(func(e models.Employee) string { return e.Position }),
	listkit.Field(func(e models.Employee) string { return e.Department }),
	listkit.Field(func(e models.Employee) string { return e.Phone }),
	listkit.Field(func(e models.Employee) string { return e.Email }),
}

func GetAllEmployees(c *gin.Context) {
	ctx, cancel := dbCtx()
	defer cancel()

	opts := options.Find().SetSort(bson.M{"first_name": 1})
	cursor, err := config.EmployeeCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve employees"})
		return
	}
	defer cursor.Close(ctx)

	employees := []models.Employee{}
	if err := cursor.All(ctx, &employees); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error decoding employees"})
		return
	}

	employees = listkit.Filter(employees, c.Query("search"), employeeAccessors...)
	employees = paginate(c, employees)

	c.JSON(http.StatusOK, employees)
}

func employeeStatusValid(status string) bool {
	switch status {
	case models.EmployeeActive, models.EmployeeOnLeave, models.EmployeeTerminated:
		return true
	}
	return false
}

func CreateEmployee(c *gin.Context) {
	var employee models.Employee
	if err := c.ShouldBindJSON(&employee); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if employee.Status == "" {
		employee.Status = models.EmployeeActive
	}
	if !employeeStatusValid(employee.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid employee status"})
		return
	}

	employee.ID = primitive.NewObjectID()
	employee.CreatedAt = time.Now()

	ctx, cancel := dbCtx()
	defer cancel()

	if _, err := config.EmployeeCollection.InsertOne(ctx, employee); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create employee"})
		return
	}

	c.JSON(http.StatusCreated, employee)
}

func UpdateEmployee(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid employee id"})
		return
	}

	var employee models.Employee
	if err := c.ShouldBindJSON(&employee); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if employee.Status != "" && !employeeStatusValid(employee.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid employee status"})
		return
	}

	update := bson.M{"$set": bson.M{
		"first_name": employee.FirstName,
		"last_name":  employee.LastName,
		"position":   employee.Position,
		"department": employee.Department,
		"phone":      employee.Phone,
		"email":      employee.Email,
		"salary":     employee.Salary,
		"address":    employee.Address,
		"status":     employee.Status,
	}}

	ctx, cancel := dbCtx()
	defer cancel()

	res, err := config.EmployeeCollection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update employee"})
		return
	}
	if res.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Employee not found"})
		return
	}

	employee.ID = id
	c.JSON(http.StatusOK, employee)
}

func DeleteEmployee(c *gin.Context) {
	var input models.DeleteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if !requirePass(c, input.Pass) {
		return
	}

	id, err := primitive.ObjectIDFromHex(input.ID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid employee id"})
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	res, err := config.EmployeeCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete employee"})
		return
	}
	if res.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Employee not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Employee deleted"})
}
