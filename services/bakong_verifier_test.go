package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cafe-eden/pos-app/models"
)

func seedPendingBakong(t *testing.T, svc *OrderService) (*models.Order, *models.BakongTransaction) {
	t.Helper()
	db := svc.DB

	coffee, _ := seedCatalog(t, db)
	order, err := svc.Create(CreateOrderInput{
		Lines: []OrderLine{{MenuItemID: coffee.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	txn := &models.BakongTransaction{
		BillNumber: NewBillNumber(),
		OrderID:    &order.ID,
		Amount:     order.TotalAmount,
		Currency:   models.CurrencyUSD,
		QRString:   "qr-payload",
		MD5Hash:    "d41d8cd98f00b204e9800998ecf8427e",
		Status:     models.BakongStatusPending,
	}
	require.NoError(t, db.Create(txn).Error)
	return order, txn
}

func TestVerifyLatestPendingSettles(t *testing.T) {
	db := setupTestDB(t)
	orders := NewOrderService(db, NewStockService(false))
	order, txn := seedPendingBakong(t, orders)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"responseCode": 0,
			"data": map[string]string{
				"fromAccountId": "customer@bank",
				"toAccountId":   "merchant@testbank",
			},
		})
	}))
	defer server.Close()

	verifier := NewBakongVerifier(db, testBakongService(server.URL), orders)
	settled, err := verifier.VerifyLatestPending()
	require.NoError(t, err)
	assert.True(t, settled)

	var gotTxn models.BakongTransaction
	require.NoError(t, db.First(&gotTxn, txn.ID).Error)
	assert.Equal(t, models.BakongStatusSuccess, gotTxn.Status)
	require.NotNil(t, gotTxn.CompletedAt)
	require.NotNil(t, gotTxn.SendFrom)
	assert.Equal(t, "customer@bank", *gotTxn.SendFrom)

	var gotOrder models.Order
	require.NoError(t, db.First(&gotOrder, order.ID).Error)
	assert.Equal(t, models.OrderStatusCompleted, gotOrder.Status)
	require.NotNil(t, gotOrder.PaymentMethod)
	assert.Equal(t, models.PaymentMethodKHQR, *gotOrder.PaymentMethod)

	// Nothing pending remains, so a second pass is a no-op.
	settled, err = verifier.VerifyLatestPending()
	require.NoError(t, err)
	assert.False(t, settled)
}

func TestVerifyLatestPendingStillUnsettled(t *testing.T) {
	db := setupTestDB(t)
	orders := NewOrderService(db, NewStockService(false))
	order, txn := seedPendingBakong(t, orders)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"responseCode": 1,
			"data":         nil,
		})
	}))
	defer server.Close()

	verifier := NewBakongVerifier(db, testBakongService(server.URL), orders)
	settled, err := verifier.VerifyLatestPending()
	require.NoError(t, err)
	assert.False(t, settled)

	var gotTxn models.BakongTransaction
	require.NoError(t, db.First(&gotTxn, txn.ID).Error)
	assert.Equal(t, models.BakongStatusPending, gotTxn.Status)

	var gotOrder models.Order
	require.NoError(t, db.First(&gotOrder, order.ID).Error)
	assert.Equal(t, models.OrderStatusPending, gotOrder.Status)
}

func TestVerifyLatestPendingProviderDown(t *testing.T) {
	db := setupTestDB(t)
	orders := NewOrderService(db, NewStockService(false))
	seedPendingBakong(t, orders)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	verifier := NewBakongVerifier(db, testBakongService(server.URL), orders)
	_, err := verifier.VerifyLatestPending()
	assert.Error(t, err)
}

func TestVerifyLatestPendingNothingToDo(t *testing.T) {
	db := setupTestDB(t)
	orders := NewOrderService(db, NewStockService(false))

	verifier := NewBakongVerifier(db, testBakongService("http://unused"), orders)
	settled, err := verifier.VerifyLatestPending()
	require.NoError(t, err)
	assert.False(t, settled)
}

func TestVerifierSettlesEvenWhenOrderAlreadyPaid(t *testing.T) {
	db := setupTestDB(t)
	orders := NewOrderService(db, NewStockService(false))
	order, txn := seedPendingBakong(t, orders)

	// Cash fallback wins the race.
	_, _, err := orders.PayCash(order.ID, 10.00, models.CurrencyUSD)
	require.NoError(t, err)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"responseCode": 0,
			"data": map[string]string{
				"fromAccountId": "customer@bank",
				"toAccountId":   "merchant@testbank",
			},
		})
	}))
	defer server.Close()

	verifier := NewBakongVerifier(db, testBakongService(server.URL), orders)
	settled, err := verifier.VerifyLatestPending()
	require.NoError(t, err)
	assert.True(t, settled)

	// The transaction settles; the order keeps its cash settlement.
	var gotTxn models.BakongTransaction
	require.NoError(t, db.First(&gotTxn, txn.ID).Error)
	assert.Equal(t, models.BakongStatusSuccess, gotTxn.Status)

	var gotOrder models.Order
	require.NoError(t, db.First(&gotOrder, order.ID).Error)
	require.NotNil(t, gotOrder.PaymentMethod)
	assert.Equal(t, models.PaymentMethodCash, *gotOrder.PaymentMethod)
}
