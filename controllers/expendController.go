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

var expenseAccessors = []listkit.Accessor[models.Expense]{
	listkit.Field(func(e models.Expense) string { return e.Name }),
	listkit.Field(func(e models.Expense) string { return e.Category }),
}

func GetAllExpenses(c *gin.Context) {
	ctx, cancel := dbCtx()
	defer cancel()

	opts := options.Find().SetSort(bson.M{"date": -1})
	cursor, err := config.ExpenseCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve expenses"})
		return
	}
	defer cursor.Close(ctx)

	expenses := []models.Expense{}
	if err := cursor.All(ctx, &expenses); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error decoding expenses"})
		return
	}

	expenses = listkit.Filter(expenses, c.Query("search"), expenseAccessors...)
	expenses = paginate(c, expenses)

	c.JSON(http.StatusOK, expenses)
}

func CreateExpense(c *gin.Context) {
	var expense models.Expense
	if err := c.ShouldBindJSON(&expense); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if expense.Price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Price must be positive"})
		return
	}
	if expense.Date.IsZero() {
		expense.Date = time.Now()
	}

	expense.ID = primitive.NewObjectID()
	expense.CreatedAt = time.Now()

	ctx, cancel := dbCtx()
	defer cancel()

	if _, err := config.ExpenseCollection.InsertOne(ctx, expense); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create expense"})
		return
	}

	c.JSON(http.StatusCreated, expense)
}

func UpdateExpense(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid expense id"})
		return
	}

	var expense models.Expense
	if err := c.ShouldBindJSON(&expense); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	update := bson.M{"$set": bson.M{
		"name":     expense.Name,
		"price":    expense.Price,
		"category": expense.Category,
		"date":     expense.Date,
	}}

	ctx, cancel := dbCtx()
	defer cancel()

	res, err := config.ExpenseCollection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update expense"})
		return
	}
	if res.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Expense not found"})
		return
	}

	expense.ID = id
	c.JSON(http.StatusOK, expense)
}

func DeleteExpense(c *gin.Context) {
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
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid expense id"})
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	res, err := config.ExpenseCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete expense"})
		return
	}
	if res.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Expense not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted"})
}
