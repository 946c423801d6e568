package controllers

import (
	"errors"
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

func borrowLines(items []models.BorrowItem) []listkit.Line {
	lines := make([]listkit.Line, len(items))
	for i, item := range items {
		lines[i] = listkit.Line{Price: item.Price, Quantity: item.Quantity}
	}
	return lines
}

func GetAllBorrows(c *gin.Context) {
	ctx, cancel := dbCtx()
	defer cancel()

	opts := options.Find().SetSort(bson.M{"borrow_date": -1})
	cursor, err := config.BorrowCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve borrows"})
		return
	}
	defer cursor.Close(ctx)

	borrows := []models.Borrow{}
	if err := cursor.All(ctx, &borrows); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error decoding borrows"})
		return
	}
	borrows = paginate(c, borrows)

	c.JSON(http.StatusOK, borrows)
}

func borrowFromInput(input models.BorrowInput) (models.Borrow, error) {
	borrowDate, err := time.Parse("2006-01-02", input.BorrowDate)
	if err != nil {
		return models.Borrow{}, err
	}

	borrow := models.Borrow{
		LenderName: input.LenderName,
		BorrowDate: borrowDate,
		Returned:   input.Returned,
		Items:      input.Items,
	}
	if input.ReturnDate != "" {
		returnDate, err := time.Parse("2006-01-02", input.ReturnDate)
		if err != nil {
			return models.Borrow{}, err
		}
		borrow.ReturnDate = &returnDate
	}
	for i := range borrow.Items {
		if borrow.Items[i].ID.IsZero() {
			borrow.Items[i].ID = primitive.NewObjectID()
		}
	}
	return borrow, nil
}

func CreateBorrow(c *gin.Context) {
	var input models.BorrowInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	borrow, err := borrowFromInput(input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid date, expected YYYY-MM-DD"})
		return
	}
	borrow.ID = primitive.NewObjectID()
	borrow.CreatedAt = time.Now()

	ctx, cancel := dbCtx()
	defer cancel()

	if _, err := config.BorrowCollection.InsertOne(ctx, borrow); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create borrow record"})
		return
	}

	c.JSON(http.StatusCreated, borrow)
}

// UpdateBorrow replaces the editable fields. Per-item paid amounts carry over
// for items that keep their id.
func UpdateBorrow(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid borrow id"})
		return
	}

	var input models.BorrowInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	borrow, err := borrowFromInput(input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	var existing models.Borrow
	if err := config.BorrowCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&existing); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Borrow record not found"})
		return
	}

	paidByItem := map[primitive.ObjectID]float64{}
	for _, item := range existing.Items {
		paidByItem[item.ID] = item.PaidAmount
	}
	for i := range borrow.Items {
		if paid, ok := paidByItem[borrow.Items[i].ID]; ok {
			borrow.Items[i].PaidAmount = paid
		}
	}

	update := bson.M{"$set": bson.M{
		"lender_name": borrow.LenderName,
		"borrow_date": borrow.BorrowDate,
		"return_date": borrow.ReturnDate,
		"returned":    borrow.Returned,
		"items":       borrow.Items,
	}}
	if _, err := config.BorrowCollection.UpdateOne(ctx, bson.M{"_id": id}, update); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update borrow record"})
		return
	}

	var updated models.Borrow
	if err := config.BorrowCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&updated); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load updated borrow"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

func MarkBorrowReturned(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid borrow id"})
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	now := time.Now()
	update := bson.M{"$set": bson.M{"returned": true, "return_date": now}}
	res, err := config.BorrowCollection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to mark borrow as returned"})
		return
	}
	if res.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Borrow record not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Borrow marked as returned"})
}

// splitItemPayments resolves how a payment is divided over the borrow's
// items. Explicit per-item amounts must add up to the payment and stay
// within each item's remaining balance, counting repeated entries for the
// same item cumulatively. Without explicit amounts the payment is spread
// sequentially in item list order.
func splitItemPayments(items []models.BorrowItem, remaining []float64, payments []models.BorrowItemPayment, amount float64) ([]float64, error) {
	if len(payments) == 0 {
		perItem, err := listkit.Allocate(amount, remaining)
		if err != nil {
			return nil, errors.New("Payment exceeds remaining balance")
		}
		return perItem, nil
	}

	perItem := make([]float64, len(items))
	var sum float64
	for _, p := range payments {
		itemID, err := primitive.ObjectIDFromHex(p.ItemID)
		if err != nil {
			return nil, errors.New("Invalid item id")
		}
		idx := -1
		for i, item := range items {
			if item.ID == itemID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, errors.New("Unknown borrow item: " + p.ItemID)
		}
		if p.Amount < 0 || perItem[idx]+p.Amount > remaining[idx] {
			return nil, errors.New("Item payment exceeds remaining balance")
		}
		perItem[idx] += p.Amount
		sum += p.Amount
	}
	if sum != amount {
		return nil, errors.New("Item payments do not add up to the payment amount")
	}
	return perItem, nil
}

// ApplyPartialPayment distributes a payment over the borrow's items. When
// the body names per-item amounts those are used as-is; otherwise the total
// is spread sequentially over the items in list order. Payments beyond the
// outstanding balance are rejected.
func ApplyPartialPayment(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid borrow id"})
		return
	}

	var input models.PartialPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if input.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Payment amount must be positive"})
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	var borrow models.Borrow
	if err := config.BorrowCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&borrow); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Borrow record not found"})
		return
	}
	if borrow.Returned {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Borrow is already returned"})
		return
	}

	remaining := make([]float64, len(borrow.Items))
	for i, item := range borrow.Items {
		display, _ := listkit.Remaining(listkit.LineTotal(listkit.Line{Price: item.Price, Quantity: item.Quantity}), item.PaidAmount)
		remaining[i] = display
	}

	perItem, err := splitItemPayments(borrow.Items, remaining, input.Items, input.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	for i := range borrow.Items {
		borrow.Items[i].PaidAmount += perItem[i]
	}
	borrow.PaidAmount += input.Amount

	paymentDate := time.Now()
	if input.PaymentDate != "" {
		if parsed, err := time.Parse("2006-01-02", input.PaymentDate); err == nil {
			paymentDate = parsed
		}
	}
	payment := models.Payment{
		Amount:        input.Amount,
		PaymentMethod: input.PaymentMethod,
		PaymentDate:   paymentDate,
	}

	update := bson.M{
		"$set":  bson.M{"items": borrow.Items, "paid_amount": borrow.PaidAmount},
		"$push": bson.M{"payments": payment},
	}
	if _, err := config.BorrowCollection.UpdateOne(ctx, bson.M{"_id": id}, update); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to apply payment"})
		return
	}
	borrow.Payments = append(borrow.Payments, payment)

	c.JSON(http.StatusOK, borrow)
}

func DeleteBorrow(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid borrow id"})
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	res, err := config.BorrowCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete borrow record"})
		return
	}
	if res.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Borrow record not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Borrow record deleted"})
}
