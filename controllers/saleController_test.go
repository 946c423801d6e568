package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"inventory/config"
	"inventory/utils"
)

func productCursor(productID primitive.ObjectID, quantity float64) bson.D {
	return mtest.CreateCursorResponse(0, "inventory.products", mtest.FirstBatch, bson.D{
		{Key: "_id", Value: productID},
		{Key: "name", Value: "Hammer"},
		{Key: "sku", Value: "HAM-1"},
		{Key: "category", Value: "tools"},
		{Key: "price", Value: 5.0},
		{Key: "quantity", Value: quantity},
		{Key: "minquantity", Value: 2.0},
	})
}

func updateResponse(matched int32) bson.D {
	return mtest.CreateSuccessResponse(
		bson.E{Key: "n", Value: matched},
		bson.E{Key: "nModified", Value: matched},
	)
}

func countUpdates(mt *mtest.T) int {
	n := 0
	for _, ev := range mt.GetAllStartedEvents() {
		if ev.CommandName == "update" {
			n++
		}
	}
	return n
}

func postJSON(r *gin.Engine, path string, payload gin.H) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func saleInput(productID primitive.ObjectID) gin.H {
	return gin.H{
		"customer": "walk-in",
		"seller":   "cashier-1",
		"items": []gin.H{
			{"product": productID.Hex(), "name": "Hammer", "quantity": 2, "price": 5},
		},
		"isCredit": false,
	}
}

func TestCreateSaleRestocksWhenInsertFails(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("insert failure", func(mt *mtest.T) {
		config.ProductCollection = mt.Coll
		config.SaleCollection = mt.Coll

		productID := primitive.NewObjectID()
		mt.AddMockResponses(
			productCursor(productID, 10),
			updateResponse(1),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "write failed"}),
			updateResponse(1),
		)

		gin.SetMode(gin.TestMode)
		r := gin.New()
		r.POST("/api/sales", CreateSale)

		w := postJSON(r, "/api/sales", saleInput(productID))
		require.Equal(t, http.StatusInternalServerError, w.Code, w.Body.String())

		// One decrement plus one compensating restock.
		assert.Equal(t, 2, countUpdates(mt))
	})
}

func TestCreateSaleDecrementGuardsStock(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("concurrent depletion", func(mt *mtest.T) {
		config.ProductCollection = mt.Coll
		config.SaleCollection = mt.Coll

		productID := primitive.NewObjectID()
		// The read shows enough stock, but the guarded decrement matches
		// nothing: another sale got there first.
		mt.AddMockResponses(
			productCursor(productID, 10),
			updateResponse(0),
		)

		gin.SetMode(gin.TestMode)
		r := gin.New()
		r.POST("/api/sales", CreateSale)

		w := postJSON(r, "/api/sales", saleInput(productID))
		require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), "Insufficient stock")

		// No sale inserted, nothing to restock.
		assert.Equal(t, 1, countUpdates(mt))
	})
}

func TestCancelSaleSurvivesRestockFailure(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("restock error logged", func(mt *mtest.T) {
		config.UserCollection = mt.Coll
		config.SaleCollection = mt.Coll
		config.ProductCollection = mt.Coll

		userID := primitive.NewObjectID()
		saleID := primitive.NewObjectID()
		productID := primitive.NewObjectID()
		hash, err := utils.HashPassword("pw")
		require.NoError(t, err)

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "inventory.users", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: userID},
				{Key: "name", Value: "Admin"},
				{Key: "email", Value: "admin@example.com"},
				{Key: "password", Value: hash},
				{Key: "role", Value: "admin"},
			}),
			mtest.CreateCursorResponse(0, "inventory.sales", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: saleID},
				{Key: "customer", Value: "walk-in"},
				{Key: "seller", Value: "cashier-1"},
				{Key: "items", Value: bson.A{bson.D{
					{Key: "product", Value: productID.Hex()},
					{Key: "name", Value: "Hammer"},
					{Key: "quantity", Value: 2.0},
					{Key: "price", Value: 5.0},
				}}},
				{Key: "paid_amount", Value: 10.0},
				{Key: "total", Value: 10.0},
				{Key: "status", Value: "active"},
				{Key: "created_at", Value: primitive.NewDateTimeFromTime(time.Now())},
			}),
			mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 11600, Name: "InterruptedAtShutdown", Message: "restock failed"}),
			updateResponse(1),
		)

		gin.SetMode(gin.TestMode)
		r := gin.New()
		r.POST("/api/sales/delete", func(c *gin.Context) {
			c.Set("userID", userID.Hex())
			CancelSale(c)
		})

		w := postJSON(r, "/api/sales/delete", gin.H{"saleId": saleID.Hex(), "pass": "pw"})

		// The failed restock is logged, the cancellation still goes through.
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), "Sale cancelled")
	})
}
