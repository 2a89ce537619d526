package controllers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cafe-eden/pos-app/models"
	"github.com/cafe-eden/pos-app/services"
)

func bakongTestRouter(db *gorm.DB, baseURL string) (*gin.Engine, *services.OrderService) {
	orders := newOrderService(db)
	svc := services.NewBakongService(&services.BakongConfig{
		BaseURL:    baseURL,
		Token:      "test-token",
		MerchantID: "merchant@testbank",
		BankBIC:    "CADIKHPP",
	})
	verifier := services.NewBakongVerifier(db, svc, orders)
	ctrl := NewBakongController(db, svc, verifier, orders)

	r := gin.New()
	r.Use(asRole(1, models.RoleStaff))
	r.POST("/bakong/qr", ctrl.GenerateQR)
	r.POST("/bakong/pushback", ctrl.HandlePushback)
	return r, orders
}

func pendingOrder(t *testing.T, db *gorm.DB, orders *services.OrderService) *models.Order {
	t.Helper()
	coffee, _ := seedCoffee(t, db)
	order, err := orders.Create(services.CreateOrderInput{
		Lines: []services.OrderLine{{MenuItemID: coffee.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	return order
}

func TestGenerateQREndpoint(t *testing.T) {
	db := setupTestDB(t)
	r, orders := bakongTestRouter(db, "http://unused")
	order := pendingOrder(t, db, orders)

	w := doJSON(t, r, http.MethodPost, "/bakong/qr", gin.H{
		"amount":   order.TotalAmount,
		"currency": "USD",
		"order_id": order.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var txn models.BakongTransaction
	require.NoError(t, db.First(&txn).Error)
	assert.Equal(t, models.BakongStatusPending, txn.Status)
	assert.Len(t, txn.MD5Hash, 32)
	require.NotNil(t, txn.OrderID)
	assert.Equal(t, order.ID, *txn.OrderID)
}

func TestGenerateQREndpointRejectsBadInput(t *testing.T) {
	db := setupTestDB(t)
	r, _ := bakongTestRouter(db, "http://unused")

	w := doJSON(t, r, http.MethodPost, "/bakong/qr", gin.H{"amount": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/bakong/qr", gin.H{"amount": 5, "order_id": 999})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGenerateQREndpointWithoutMerchant(t *testing.T) {
	db := setupTestDB(t)
	orders := newOrderService(db)
	svc := services.NewBakongService(&services.BakongConfig{BaseURL: "http://unused", Token: "t"})
	verifier := services.NewBakongVerifier(db, svc, orders)
	ctrl := NewBakongController(db, svc, verifier, orders)

	r := gin.New()
	r.POST("/bakong/qr", ctrl.GenerateQR)

	w := doJSON(t, r, http.MethodPost, "/bakong/qr", gin.H{"amount": 5})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestPushbackSettlesTransactionAndOrder(t *testing.T) {
	db := setupTestDB(t)
	r, orders := bakongTestRouter(db, "http://unused")
	order := pendingOrder(t, db, orders)

	txn := models.BakongTransaction{
		BillNumber: "txn_pushback1",
		OrderID:    &order.ID,
		Amount:     order.TotalAmount,
		Currency:   models.CurrencyUSD,
		QRString:   "qr",
		MD5Hash:    "d41d8cd98f00b204e9800998ecf8427e",
		Status:     models.BakongStatusPending,
	}
	require.NoError(t, db.Create(&txn).Error)

	w := doJSON(t, r, http.MethodPost, "/bakong/pushback", gin.H{
		"billNumber": "txn_pushback1",
		"status":     "SUCCESS",
		"sendFrom":   "customer@bank",
		"receiveTo":  "merchant@testbank",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var gotTxn models.BakongTransaction
	require.NoError(t, db.First(&gotTxn, txn.ID).Error)
	assert.Equal(t, models.BakongStatusSuccess, gotTxn.Status)
	require.NotNil(t, gotTxn.CompletedAt)

	var gotOrder models.Order
	require.NoError(t, db.First(&gotOrder, order.ID).Error)
	assert.Equal(t, models.OrderStatusCompleted, gotOrder.Status)
	require.NotNil(t, gotOrder.PaymentMethod)
	assert.Equal(t, models.PaymentMethodKHQR, *gotOrder.PaymentMethod)

	// Replays are acknowledged without side effects.
	w = doJSON(t, r, http.MethodPost, "/bakong/pushback", gin.H{
		"billNumber": "txn_pushback1",
		"status":     "SUCCESS",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPushbackFailedStatus(t *testing.T) {
	db := setupTestDB(t)
	r, _ := bakongTestRouter(db, "http://unused")

	txn := models.BakongTransaction{
		BillNumber: "txn_failme",
		Amount:     5,
		Currency:   models.CurrencyUSD,
		QRString:   "qr",
		MD5Hash:    "abc",
		Status:     models.BakongStatusPending,
	}
	require.NoError(t, db.Create(&txn).Error)

	w := doJSON(t, r, http.MethodPost, "/bakong/pushback", gin.H{
		"billNumber": "txn_failme",
		"status":     "EXPIRED",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var got models.BakongTransaction
	require.NoError(t, db.First(&got, txn.ID).Error)
	assert.Equal(t, models.BakongStatusFailed, got.Status)
}

func TestPushbackUnknownBill(t *testing.T) {
	db := setupTestDB(t)
	r, _ := bakongTestRouter(db, "http://unused")

	w := doJSON(t, r, http.MethodPost, "/bakong/pushback", gin.H{
		"billNumber": "txn_missing",
		"status":     "SUCCESS",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPushbackInvalidPayload(t *testing.T) {
	db := setupTestDB(t)
	r, _ := bakongTestRouter(db, "http://unused")

	w := doJSON(t, r, http.MethodPost, "/bakong/pushback", gin.H{"status": "SUCCESS"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
