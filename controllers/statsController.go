package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"inventory/config"
	"inventory/listkit"
	"inventory/models"
)

// GetStats returns the headline dashboard numbers.
func GetStats(c *gin.Context) {
	ctx, cancel := dbCtx()
	defer cancel()

	totalProducts, err := config.ProductCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to count products"})
		return
	}

	lowStockItems, err := config.ProductCollection.CountDocuments(ctx, bson.M{
		"$expr": bson.M{"$lte": []string{"$quantity", "$minquantity"}},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to count low stock products"})
		return
	}

	cursor, err := config.SaleCollection.Find(ctx, bson.M{"status": models.SaleStatusActive})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve sales"})
		return
	}
	defer cursor.Close(ctx)

	var totalSales int64
	var totalRevenue float64
	for cursor.Next(ctx) {
		var sale models.Sale
		if err := cursor.Decode(&sale); err != nil {
			continue
		}
		totalSales++
		totalRevenue += sale.PaidAmount
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"totalProducts": totalProducts,
		"totalSales":    totalSales,
		"totalRevenue":  listkit.Round2(totalRevenue),
		"lowStockItems": lowStockItems,
	}})
}

// GetMonthlyStatistic aggregates sales, purchases, salaries, borrows and
// expenses for one calendar month and derives the month's profit.
func GetMonthlyStatistic(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid year"})
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid month"})
		return
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	inMonth := bson.M{"$gte": from, "$lt": to}

	ctx, cancel := dbCtx()
	defer cancel()

	var (
		totalSaleSum     float64
		paidAmountSum    float64
		creditSum        float64
		salesCount       int
		paidSalesCount   int
		creditSalesCount int
	)
	saleCursor, err := config.SaleCollection.Find(ctx, bson.M{
		"created_at": inMonth,
		"status":     models.SaleStatusActive,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve sales"})
		return
	}
	for saleCursor.Next(ctx) {
		var sale models.Sale
		if err := saleCursor.Decode(&sale); err != nil {
			continue
		}
		salesCount++
		totalSaleSum += sale.Total
		paidAmountSum += sale.PaidAmount
		if listkit.StatusOf(sale.PaidAmount, sale.Total) == listkit.Paid {
			paidSalesCount++
		}
		if sale.IsCredit {
			creditSalesCount++
			remaining, _ := listkit.Remaining(sale.Total, sale.PaidAmount)
			creditSum += remaining
		}
	}
	saleCursor.Close(ctx)

	var totalProduct, totalItemsInStock float64
	productCursor, err := config.ProductCollection.Find(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve products"})
		return
	}
	for productCursor.Next(ctx) {
		var product models.Product
		if err := productCursor.Decode(&product); err != nil {
			continue
		}
		totalProduct += product.Price * product.Quantity
		totalItemsInStock += product.Quantity
	}
	productCursor.Close(ctx)

	var totalSalary float64
	salaryCursor, err := config.SalaryCollection.Find(ctx, bson.M{"payment_date": inMonth})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve salaries"})
		return
	}
	for salaryCursor.Next(ctx) {
		var salary models.Salary
		if err := salaryCursor.Decode(&salary); err != nil {
			continue
		}
		totalSalary += salary.NetSalary
	}
	salaryCursor.Close(ctx)

	var totalItemsSum, totalBorrowPaid float64
	var activeBorrowsCount int
	borrowCursor, err := config.BorrowCollection.Find(ctx, bson.M{"borrow_date": inMonth})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve borrows"})
		return
	}
	for borrowCursor.Next(ctx) {
		var borrow models.Borrow
		if err := borrowCursor.Decode(&borrow); err != nil {
			continue
		}
		totalItemsSum += listkit.GrandTotal(borrowLines(borrow.Items))
		totalBorrowPaid += borrow.PaidAmount
		if !borrow.Returned {
			activeBorrowsCount++
		}
	}
	borrowCursor.Close(ctx)

	var totalExpend float64
	expenseCursor, err := config.ExpenseCollection.Find(ctx, bson.M{"date": inMonth})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve expenses"})
		return
	}
	for expenseCursor.Next(ctx) {
		var expense models.Expense
		if err := expenseCursor.Decode(&expense); err != nil {
			continue
		}
		totalExpend += expense.Price
	}
	expenseCursor.Close(ctx)

	employeesCount, err := config.EmployeeCollection.CountDocuments(ctx, bson.M{"status": models.EmployeeActive})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to count employees"})
		return
	}

	profit := listkit.Round2(paidAmountSum - (totalSalary + totalBorrowPaid + totalExpend))

	c.JSON(http.StatusOK, gin.H{
		"year":  year,
		"month": month,
		"sum": gin.H{
			"sale": gin.H{
				"totalSale": gin.H{
					"totalSaleSum":      listkit.Round2(totalSaleSum),
					"paidAmountSaleSum": listkit.Round2(paidAmountSum),
				},
				"credit": listkit.Round2(creditSum),
			},
			"products": gin.H{"totalProduct": listkit.Round2(totalProduct)},
			"salary":   gin.H{"totalSalary": listkit.Round2(totalSalary)},
			"borrow": gin.H{
				"totalItemsSum":         listkit.Round2(totalItemsSum),
				"totalBorrowPaidAmount": listkit.Round2(totalBorrowPaid),
			},
			"expend": gin.H{"totalExpend": listkit.Round2(totalExpend)},
		},
		"counts": gin.H{
			"salesCount":         salesCount,
			"paidSalesCount":     paidSalesCount,
			"creditSalesCount":   creditSalesCount,
			"employeesCount":     employeesCount,
			"activeBorrowsCount": activeBorrowsCount,
			"totalItemsInStock":  totalItemsInStock,
		},
		"profit": profit,
	})
}
