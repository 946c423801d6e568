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

var customerAccessors = []listkit.Accessor[models.Customer]{
	listkit.Field(func(c models.Customer) string { return c.Name }),
	listkit.Field(func(c models.Customer) string { return c.Phone }),
}

func GetAllCustomers(c *gin.Context) {
	ctx, cancel := dbCtx()
	defer cancel()

	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := config.CustomerCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve customers"})
		return
	}
	defer cursor.Close(ctx)

	customers := []models.Customer{}
	if err := cursor.All(ctx, &customers); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error decoding customers"})
		return
	}

	customers = listkit.Filter(customers, c.Query("search"), customerAccessors...)
	customers = paginate(c, customers)

	c.JSON(http.StatusOK, customers)
}

func CreateCustomer(c *gin.Context) {
	var customer models.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if customer.CreditLimit < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Credit limit cannot be negative"})
		return
	}

	customer.ID = primitive.NewObjectID()
	customer.CreatedAt = time.Now()

	ctx, cancel := dbCtx()
	defer cancel()

	if _, err := config.CustomerCollection.InsertOne(ctx, customer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create customer"})
		return
	}

	c.JSON(http.StatusCreated, customer)
}

func UpdateCustomer(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid customer id"})
		return
	}

	var customer models.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	update := bson.M{"$set": bson.M{
		"name":         customer.Name,
		"phone":        customer.Phone,
		"credit_limit": customer.CreditLimit,
	}}

	ctx, cancel := dbCtx()
	defer cancel()

	res, err := config.CustomerCollection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update customer"})
		return
	}
	if res.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Customer not found"})
		return
	}

	customer.ID = id
	c.JSON(http.StatusOK, customer)
}

func DeleteCustomer(c *gin.Context) {
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
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid customer id"})
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	res, err := config.CustomerCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete customer"})
		return
	}
	if res.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Customer not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted"})
}
