package controllers

import (
	"context"
	"log"
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

func saleLines(items []models.SaleItem) []listkit.Line {
	lines := make([]listkit.Line, len(items))
	for i, item := range items {
		lines[i] = listkit.Line{Price: item.Price, Quantity: item.Quantity}
	}
	return lines
}

// restockItems undoes stock decrements after a failed sale creation. A failed
// undo is logged; there is nothing further to roll back to.
func restockItems(ctx context.Context, items []models.SaleItem, now time.Time) {
	for _, item := range items {
		productID, err := primitive.ObjectIDFromHex(item.Product)
		if err != nil {
			continue
		}
		if _, err := config.ProductCollection.UpdateOne(ctx,
			bson.M{"_id": productID},
			bson.M{"$inc": bson.M{"quantity": item.Quantity}, "$set": bson.M{"updated_at": now}}); err != nil {
			log.Printf("Restock of product %s failed after aborted sale: %v", item.Product, err)
		}
	}
}

func GetAllSales(c *gin.Context) {
	ctx, cancel := dbCtx()
	defer cancel()

	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := config.SaleCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve sales"})
		return
	}
	defer cursor.Close(ctx)

	sales := []models.Sale{}
	if err := cursor.All(ctx, &sales); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error decoding sales"})
		return
	}
	sales = paginate(c, sales)

	c.JSON(http.StatusOK, sales)
}

func GetRecentSales(c *gin.Context) {
	ctx, cancel := dbCtx()
	defer cancel()

	opts := options.Find().SetSort(bson.M{"created_at": -1}).SetLimit(5)
	cursor, err := config.SaleCollection.Find(ctx, bson.M{"status": models.SaleStatusActive}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve recent sales"})
		return
	}
	defer cursor.Close(ctx)

	sales := []models.Sale{}
	if err := cursor.All(ctx, &sales); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error decoding sales"})
		return
	}

	c.JSON(http.StatusOK, sales)
}

// CreateSale validates stock, recomputes the total server-side and decrements
// product quantities. The client-computed total is a preview only.
func CreateSale(c *gin.Context) {
	var input models.SaleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	for _, item := range input.Items {
		if item.Quantity < 1 || item.Price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Item quantity must be at least 1 and price non-negative"})
			return
		}
	}

	ctx, cancel := dbCtx()
	defer cancel()

	// the item snapshot keeps the submitted name/price; stock is checked
	// against the live product
	for i, item := range input.Items {
		productID, err := primitive.ObjectIDFromHex(item.Product)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product reference"})
			return
		}
		var product models.Product
		if err := config.ProductCollection.FindOne(ctx, bson.M{"_id": productID}).Decode(&product); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Product not found: " + item.Product})
			return
		}
		if product.Quantity < item.Quantity {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Insufficient stock for " + product.Name})
			return
		}
		if input.Items[i].Name == "" {
			input.Items[i].Name = product.Name
		}
	}

	total := listkit.GrandTotal(saleLines(input.Items))

	paid := input.PaidAmount
	if !input.IsCredit {
		paid = total
	}
	if paid > total {
		paid = total
	}

	seller := input.Seller
	if seller == "" {
		userID, _ := c.Get("userID")
		seller = userID.(string)
	}

	now := time.Now()
	sale := models.Sale{
		ID:            primitive.NewObjectID(),
		Customer:      input.Customer,
		Seller:        seller,
		Items:         input.Items,
		IsCredit:      input.IsCredit,
		PaymentMethod: input.PaymentMethod,
		PaidAmount:    paid,
		Total:         total,
		Status:        models.SaleStatusActive,
		Notes:         input.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if paid > 0 {
		sale.PaymentHistory = []models.Payment{{
			Amount:        paid,
			PaymentMethod: input.PaymentMethod,
			ReceivedBy:    seller,
			Notes:         input.Notes,
			PaymentDate:   now,
		}}
	}

	// The decrement filter re-checks stock so a concurrent sale cannot push
	// a quantity below zero between the read above and the write here.
	for i, item := range input.Items {
		productID, _ := primitive.ObjectIDFromHex(item.Product)
		res, err := config.ProductCollection.UpdateOne(ctx,
			bson.M{"_id": productID, "quantity": bson.M{"$gte": item.Quantity}},
			bson.M{"$inc": bson.M{"quantity": -item.Quantity}, "$set": bson.M{"updated_at": now}})
		if err != nil {
			restockItems(ctx, input.Items[:i], now)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update stock"})
			return
		}
		if res.MatchedCount == 0 {
			restockItems(ctx, input.Items[:i], now)
			c.JSON(http.StatusBadRequest, gin.H{"message": "Insufficient stock for " + item.Name})
			return
		}
	}

	if _, err := config.SaleCollection.InsertOne(ctx, sale); err != nil {
		restockItems(ctx, input.Items, now)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create sale"})
		return
	}

	c.JSON(http.StatusCreated, sale)
}

// PaySale applies a payment to a credit sale. The amount must not exceed the
// outstanding balance.
func PaySale(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid sale id"})
		return
	}

	var input models.SalePaymentInput
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

	var sale models.Sale
	if err := config.SaleCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&sale); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Sale not found"})
		return
	}
	if sale.Status == models.SaleStatusCancelled {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Cannot pay a cancelled sale"})
		return
	}

	remaining, _ := listkit.Remaining(sale.Total, sale.PaidAmount)
	if input.Amount > remaining {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Payment exceeds remaining balance"})
		return
	}

	userID, _ := c.Get("userID")
	payment := models.Payment{
		Amount:        input.Amount,
		PaymentMethod: input.PaymentMethod,
		ReceivedBy:    userID.(string),
		Notes:         input.Notes,
		PaymentDate:   time.Now(),
	}

	update := bson.M{
		"$inc":  bson.M{"paid_amount": input.Amount},
		"$push": bson.M{"payment_history": payment},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	if _, err := config.SaleCollection.UpdateOne(ctx, bson.M{"_id": id}, update); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to apply payment"})
		return
	}

	var updated models.Sale
	if err := config.SaleCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&updated); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load updated sale"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// CancelSale marks a sale cancelled and puts its items back into stock. The
// acting user's password is re-checked first.
func CancelSale(c *gin.Context) {
	var input models.CancelSaleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if !requirePass(c, input.Pass) {
		return
	}

	id, err := primitive.ObjectIDFromHex(input.SaleID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid sale id"})
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	var sale models.Sale
	if err := config.SaleCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&sale); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Sale not found"})
		return
	}
	if sale.Status == models.SaleStatusCancelled {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Sale is already cancelled"})
		return
	}

	now := time.Now()
	for _, item := range sale.Items {
		productID, err := primitive.ObjectIDFromHex(item.Product)
		if err != nil {
			continue
		}
		if _, err := config.ProductCollection.UpdateOne(ctx,
			bson.M{"_id": productID},
			bson.M{"$inc": bson.M{"quantity": item.Quantity}, "$set": bson.M{"updated_at": now}}); err != nil {
			log.Printf("Restock of product %s failed while cancelling sale %s: %v", item.Product, input.SaleID, err)
		}
	}

	update := bson.M{"$set": bson.M{"status": models.SaleStatusCancelled, "updated_at": now}}
	if _, err := config.SaleCollection.UpdateOne(ctx, bson.M{"_id": id}, update); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to cancel sale"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Sale cancelled"})
}
