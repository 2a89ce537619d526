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
)

func menuTestRouter(db *gorm.DB) *gin.Engine {
	ctrl := NewMenuItemController(db)
	stockCtrl := NewStockController(db)

	r := gin.New()
	r.Use(asRole(1, models.RoleAdmin))
	r.GET("/menu-items", ctrl.GetAllMenuItems)
	r.GET("/menu-items/:id", ctrl.GetMenuItemByID)
	r.GET("/menu-items/:id/availability", ctrl.GetAvailability)
	r.POST("/menu-items", ctrl.CreateMenuItem)
	r.PUT("/menu-items/:id", ctrl.UpdateMenuItem)
	r.DELETE("/menu-items/:id", ctrl.DeleteMenuItem)
	r.PUT("/stocks", stockCtrl.UpsertStock)
	r.GET("/stocks/low", stockCtrl.GetLowStocks)
	return r
}

func TestMenuItemCRUD(t *testing.T) {
	db := setupTestDB(t)
	r := menuTestRouter(db)

	w := doJSON(t, r, http.MethodPost, "/menu-items", gin.H{
		"name":  "Latte",
		"price": 3.25,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var item models.MenuItem
	require.NoError(t, db.First(&item, "name = ?", "Latte").Error)

	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/menu-items/%d", item.ID), gin.H{
		"name":  "Latte",
		"price": 3.50,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/menu-items/%d", item.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Soft deleted: gone from normal queries, present unscoped.
	var count int64
	db.Model(&models.MenuItem{}).Count(&count)
	assert.Equal(t, int64(0), count)
	db.Unscoped().Model(&models.MenuItem{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestMenuItemDiscountValidation(t *testing.T) {
	db := setupTestDB(t)
	r := menuTestRouter(db)

	// Percent above 100.
	w := doJSON(t, r, http.MethodPost, "/menu-items", gin.H{
		"name": "Latte", "price": 3.25,
		"discount_type": "percent", "discount_value": 150,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// Fixed discount above the price.
	w = doJSON(t, r, http.MethodPost, "/menu-items", gin.H{
		"name": "Latte", "price": 3.25,
		"discount_type": "fixed", "discount_value": 4.00,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// Type without value.
	w = doJSON(t, r, http.MethodPost, "/menu-items", gin.H{
		"name": "Latte", "price": 3.25,
		"discount_type": "percent",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// Valid scheduled discount.
	w = doJSON(t, r, http.MethodPost, "/menu-items", gin.H{
		"name": "Latte", "price": 3.25,
		"discount_type": "percent", "discount_value": 20,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestAvailabilityEndpoint(t *testing.T) {
	db := setupTestDB(t)
	coffee, beans := seedCoffee(t, db)
	r := menuTestRouter(db)

	// 1kg of beans at 0.02kg per cup covers 50 cups.
	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/menu-items/%d/availability", coffee.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, false, data["unlimited"])
	assert.Equal(t, float64(50), data["available"])

	require.NoError(t, db.Model(&models.Stock{}).
		Where("ingredient_id = ?", beans.ID).
		Update("quantity", 0).Error)
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/menu-items/%d/availability", coffee.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp = decodeResponse(t, w)
	data = resp.Data.(map[string]interface{})
	assert.Equal(t, float64(0), data["available"])

	// No recipe means unlimited.
	plain := models.MenuItem{Name: "Bottled Water", Price: 1.00, Active: true}
	require.NoError(t, db.Create(&plain).Error)
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/menu-items/%d/availability", plain.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp = decodeResponse(t, w)
	data = resp.Data.(map[string]interface{})
	assert.Equal(t, true, data["unlimited"])
}

func TestStockUpsertAndLowReport(t *testing.T) {
	db := setupTestDB(t)
	_, beans := seedCoffee(t, db)
	r := menuTestRouter(db)

	w := doJSON(t, r, http.MethodPut, "/stocks", gin.H{
		"ingredient_id": beans.ID,
		"quantity":      0.05,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var stock models.Stock
	require.NoError(t, db.First(&stock, "ingredient_id = ?", beans.ID).Error)
	assert.InDelta(t, 0.05, stock.Quantity, 1e-9)

	// 0.05 is at or below the 0.1 alert threshold.
	w = doJSON(t, r, http.MethodGet, "/stocks/low", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	rows := resp.Data.([]interface{})
	assert.Len(t, rows, 1)
}
