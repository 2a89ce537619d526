package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cafe-eden/pos-app/models"
	"github.com/cafe-eden/pos-app/services"
)

func orderTestRouter(db *gorm.DB, role string) (*gin.Engine, *services.OrderService) {
	svc := newOrderService(db)
	ctrl := NewOrderController(db, svc)

	r := gin.New()
	r.Use(asRole(1, role))
	r.GET("/orders", ctrl.GetAllOrders)
	r.GET("/orders/:id", ctrl.GetOrderByID)
	r.POST("/orders", ctrl.CreateOrder)
	r.POST("/orders/:id/cancel", ctrl.CancelOrder)
	r.POST("/orders/:id/pay-cash", ctrl.PayCash)
	r.PATCH("/orders/:id/status", ctrl.UpdateOrderStatus)
	return r, svc
}

func TestCreateOrderEndpoint(t *testing.T) {
	db := setupTestDB(t)
	coffee, _ := seedCoffee(t, db)
	r, _ := orderTestRouter(db, models.RoleCustomer)

	w := doJSON(t, r, http.MethodPost, "/orders", gin.H{
		"items": []gin.H{{"menu_item_id": coffee.ID, "quantity": 2}},
	})

	require.Equal(t, http.StatusCreated, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Status)

	var order models.Order
	require.NoError(t, db.Preload("OrderItems").First(&order).Error)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, 5.00, order.TotalAmount)
	assert.Len(t, order.OrderItems, 1)
}

func TestCreateOrderEndpointValidation(t *testing.T) {
	db := setupTestDB(t)
	seedCoffee(t, db)
	r, _ := orderTestRouter(db, models.RoleCustomer)

	// Empty items list fails binding.
	w := doJSON(t, r, http.MethodPost, "/orders", gin.H{"items": []gin.H{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown item is a semantic failure, not a 404.
	w = doJSON(t, r, http.MethodPost, "/orders", gin.H{
		"items": []gin.H{{"menu_item_id": 999, "quantity": 1}},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestCreateOrderEndpointInsufficientStock(t *testing.T) {
	db := setupTestDB(t)
	coffee, beans := seedCoffee(t, db)
	require.NoError(t, db.Model(&models.Stock{}).
		Where("ingredient_id = ?", beans.ID).
		Update("quantity", 0.02).Error)

	r, _ := orderTestRouter(db, models.RoleCustomer)
	w := doJSON(t, r, http.MethodPost, "/orders", gin.H{
		"items": []gin.H{{"menu_item_id": coffee.ID, "quantity": 2}},
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.Contains(t, resp.Message, "Coffee Beans")
}

func TestCreateOrderEndpointInvalidCode(t *testing.T) {
	db := setupTestDB(t)
	coffee, _ := seedCoffee(t, db)
	r, _ := orderTestRouter(db, models.RoleCustomer)

	w := doJSON(t, r, http.MethodPost, "/orders", gin.H{
		"items": []gin.H{{"menu_item_id": coffee.ID, "quantity": 1}},
		"code":  "NOPE",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateOrderEndpointManualDiscountForbidden(t *testing.T) {
	db := setupTestDB(t)
	coffee, _ := seedCoffee(t, db)
	r, _ := orderTestRouter(db, models.RoleCustomer)

	w := doJSON(t, r, http.MethodPost, "/orders", gin.H{
		"items":               []gin.H{{"menu_item_id": coffee.ID, "quantity": 1}},
		"rt_discount_percent": 50,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCancelOrderEndpoint(t *testing.T) {
	db := setupTestDB(t)
	coffee, beans := seedCoffee(t, db)
	r, svc := orderTestRouter(db, models.RoleCustomer)

	order, err := svc.Create(services.CreateOrderInput{
		Lines: []services.OrderLine{{MenuItemID: coffee.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/orders/%d/cancel", order.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stock models.Stock
	require.NoError(t, db.First(&stock, "ingredient_id = ?", beans.ID).Error)
	assert.InDelta(t, 1.0, stock.Quantity, 1e-9)

	// Cancelling again is rejected.
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/orders/%d/cancel", order.ID), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPayCashEndpoint(t *testing.T) {
	db := setupTestDB(t)
	coffee, _ := seedCoffee(t, db)
	r, svc := orderTestRouter(db, models.RoleStaff)

	order, err := svc.Create(services.CreateOrderInput{
		Lines: []services.OrderLine{{MenuItemID: coffee.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/orders/%d/pay-cash", order.ID), gin.H{
		"currency": "USD",
		"tendered": 4.00,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/orders/%d/pay-cash", order.ID), gin.H{
		"currency": "USD",
		"tendered": 10.00,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var paid models.Order
	require.NoError(t, db.First(&paid, order.ID).Error)
	assert.Equal(t, models.OrderStatusCompleted, paid.Status)

	// Already settled.
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/orders/%d/pay-cash", order.ID), gin.H{
		"currency": "USD",
		"tendered": 10.00,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetOrderEndpoints(t *testing.T) {
	db := setupTestDB(t)
	coffee, _ := seedCoffee(t, db)
	r, svc := orderTestRouter(db, models.RoleStaff)

	order, err := svc.Create(services.CreateOrderInput{
		Lines: []services.OrderLine{{MenuItemID: coffee.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodGet, "/orders", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/orders?status=pending", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/orders/%d", order.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/orders/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateOrderStatusEndpoint(t *testing.T) {
	db := setupTestDB(t)
	coffee, _ := seedCoffee(t, db)
	r, svc := orderTestRouter(db, models.RoleAdmin)

	order, err := svc.Create(services.CreateOrderInput{
		Lines: []services.OrderLine{{MenuItemID: coffee.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodPatch, fmt.Sprintf("/orders/%d/status", order.ID), gin.H{
		"status": "completed",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var got models.Order
	require.NoError(t, db.First(&got, order.ID).Error)
	assert.Equal(t, models.OrderStatusCompleted, got.Status)
	assert.NotNil(t, got.PaidAt)

	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/orders/%d/status", order.ID), gin.H{
		"status": "unknown",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
