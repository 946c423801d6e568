package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"inventory/config"
	"inventory/listkit"
	"inventory/models"
)

// GetAllSalaries filters by year, month and optionally by the calendar month
// of the payment date.
func GetAllSalaries(c *gin.Context) {
	filter := bson.M{}
	if year, err := strconv.Atoi(c.Query("year")); err == nil {
		filter["year"] = year
	}
	if month, err := strconv.Atoi(c.Query("month")); err == nil {
		filter["month"] = month
	}

	ctx, cancel := dbCtx()
	defer cancel()

	opts := options.Find().SetSort(bson.M{"payment_date": -1})
	cursor, err := config.SalaryCollection.Find(ctx, filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve salaries"})
		return
	}
	defer cursor.Close(ctx)

	salaries := []models.Salary{}
	if err := cursor.All(ctx, &salaries); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error decoding salaries"})
		return
	}

	if paymentMonth, err := strconv.Atoi(c.Query("paymentMonth")); err == nil {
		filtered := salaries[:0]
		for _, s := range salaries {
			if int(s.PaymentDate.Month()) == paymentMonth {
				filtered = append(filtered, s)
			}
		}
		salaries = filtered
	}
	salaries = paginate(c, salaries)

	c.JSON(http.StatusOK, salaries)
}

func salaryFromInput(input models.SalaryInput) (models.Salary, error) {
	paymentDate, err := time.Parse("2006-01-02", input.PaymentDate)
	if err != nil {
		return models.Salary{}, err
	}
	return models.Salary{
		Employee:    input.Employee,
		Amount:      input.Amount,
		Bonus:       input.Bonus,
		Deductions:  input.Deductions,
		NetSalary:   listkit.NetSalary(input.Amount, input.Bonus, input.Deductions),
		PaymentDate: paymentDate,
		Year:        input.Year,
		Month:       input.Month,
		Notes:       input.Notes,
	}, nil
}

func CreateSalary(c *gin.Context) {
	var input models.SalaryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	salary, err := salaryFromInput(input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payment date, expected YYYY-MM-DD"})
		return
	}
	salary.ID = primitive.NewObjectID()
	salary.CreatedAt = time.Now()

	ctx, cancel := dbCtx()
	defer cancel()

	if _, err := config.SalaryCollection.InsertOne(ctx, salary); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create salary record"})
		return
	}

	c.JSON(http.StatusCreated, salary)
}

func UpdateSalary(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid salary id"})
		return
	}

	var input models.SalaryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	salary, err := salaryFromInput(input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payment date, expected YYYY-MM-DD"})
		return
	}

	update := bson.M{"$set": bson.M{
		"employee":     salary.Employee,
		"amount":       salary.Amount,
		"bonus":        salary.Bonus,
		"deductions":   salary.Deductions,
		"net_salary":   salary.NetSalary,
		"payment_date": salary.PaymentDate,
		"year":         salary.Year,
		"month":        salary.Month,
		"notes":        salary.Notes,
	}}

	ctx, cancel := dbCtx()
	defer cancel()

	res, err := config.SalaryCollection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update salary record"})
		return
	}
	if res.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Salary record not found"})
		return
	}

	salary.ID = id
	c.JSON(http.StatusOK, salary)
}

func DeleteSalary(c *gin.Context) {
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
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid salary id"})
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	res, err := config.SalaryCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete salary record"})
		return
	}
	if res.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Salary record not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Salary record deleted"})
}
