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
	"inventory/models"
)

func borrowFixture() ([]models.BorrowItem, []float64) {
	items := []models.BorrowItem{
		{ID: primitive.NewObjectID(), ItemName: "Cement", Quantity: 10, Price: 3},
		{ID: primitive.NewObjectID(), ItemName: "Sand", Quantity: 4, Price: 5},
	}
	// line totals 30 and 20, nothing paid yet
	return items, []float64{30, 20}
}

func TestSplitItemPaymentsSequentialFallback(t *testing.T) {
	items, remaining := borrowFixture()

	perItem, err := splitItemPayments(items, remaining, nil, 35)
	require.NoError(t, err)
	assert.Equal(t, []float64{30, 5}, perItem)

	_, err = splitItemPayments(items, remaining, nil, 60)
	require.Error(t, err)
}

func TestSplitItemPaymentsExplicit(t *testing.T) {
	items, remaining := borrowFixture()

	perItem, err := splitItemPayments(items, remaining, []models.BorrowItemPayment{
		{ItemID: items[0].ID.Hex(), Amount: 25},
		{ItemID: items[1].ID.Hex(), Amount: 15},
	}, 40)
	require.NoError(t, err)
	assert.Equal(t, []float64{25, 15}, perItem)
}

func TestSplitItemPaymentsDuplicateEntriesCountCumulatively(t *testing.T) {
	items, remaining := borrowFixture()

	// Two entries of 20 against a remaining balance of 30 must be rejected,
	// even though each entry alone fits.
	_, err := splitItemPayments(items, remaining, []models.BorrowItemPayment{
		{ItemID: items[0].ID.Hex(), Amount: 20},
		{ItemID: items[0].ID.Hex(), Amount: 20},
	}, 40)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds remaining balance")

	// Duplicates that stay within the balance are fine.
	perItem, err := splitItemPayments(items, remaining, []models.BorrowItemPayment{
		{ItemID: items[0].ID.Hex(), Amount: 10},
		{ItemID: items[0].ID.Hex(), Amount: 10},
	}, 20)
	require.NoError(t, err)
	assert.Equal(t, []float64{20, 0}, perItem)
}

func TestSplitItemPaymentsValidation(t *testing.T) {
	items, remaining := borrowFixture()

	_, err := splitItemPayments(items, remaining, []models.BorrowItemPayment{
		{ItemID: primitive.NewObjectID().Hex(), Amount: 10},
	}, 10)
	require.Error(t, err, "unknown item id")

	_, err = splitItemPayments(items, remaining, []models.BorrowItemPayment{
		{ItemID: items[0].ID.Hex(), Amount: 10},
	}, 25)
	require.Error(t, err, "item amounts must add up to the payment")

	_, err = splitItemPayments(items, remaining, []models.BorrowItemPayment{
		{ItemID: "not-an-id", Amount: 10},
	}, 10)
	require.Error(t, err)
}

func TestApplyPartialPaymentResponseIncludesPayment(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("sequential payment", func(mt *mtest.T) {
		config.BorrowCollection = mt.Coll

		borrowID := primitive.NewObjectID()
		itemID := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "inventory.borrows", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: borrowID},
				{Key: "lender_name", Value: "Alim"},
				{Key: "borrow_date", Value: primitive.NewDateTimeFromTime(time.Now())},
				{Key: "returned", Value: false},
				{Key: "paid_amount", Value: 0.0},
				{Key: "items", Value: bson.A{bson.D{
					{Key: "_id", Value: itemID},
					{Key: "item_name", Value: "Cement"},
					{Key: "quantity", Value: 10.0},
					{Key: "price", Value: 5.0},
					{Key: "paid_amount", Value: 0.0},
				}}},
			}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
		)

		gin.SetMode(gin.TestMode)
		r := gin.New()
		r.PATCH("/api/borrows/:id/partial-payment", ApplyPartialPayment)

		body, _ := json.Marshal(gin.H{"amount": 20, "paymentMethod": "cash"})
		req := httptest.NewRequest(http.MethodPatch, "/api/borrows/"+borrowID.Hex()+"/partial-payment", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var borrow models.Borrow
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &borrow))
		assert.Equal(t, 20.0, borrow.PaidAmount)
		require.Len(t, borrow.Items, 1)
		assert.Equal(t, 20.0, borrow.Items[0].PaidAmount)
		require.Len(t, borrow.Payments, 1, "recorded payment must be in the response")
		assert.Equal(t, 20.0, borrow.Payments[0].Amount)
		assert.Equal(t, "cash", borrow.Payments[0].PaymentMethod)
	})
}
