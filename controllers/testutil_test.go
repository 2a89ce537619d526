package controllers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/cafe-eden/pos-app/models"
	"github.com/cafe-eden/pos-app/services"
	"github.com/cafe-eden/pos-app/utils"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.InitLogger()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.MenuItem{},
		&models.MenuItemVariant{},
		&models.Ingredient{},
		&models.Recipe{},
		&models.Stock{},
		&models.Discount{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
		&models.PaymentLog{},
		&models.BakongTransaction{},
		&models.Setting{},
		&models.Notification{},
		&models.Banner{},
	))
	return db
}

// asRole injects an authenticated identity, standing in for the JWT
// middleware.
func asRole(userID uint, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", role)
		c.Next()
	}
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) utils.JSONResponse {
	t.Helper()
	var resp utils.JSONResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// seedCoffee creates an item that consumes 0.02kg of beans per unit, with
// 1kg in stock.
func seedCoffee(t *testing.T, db *gorm.DB) (models.MenuItem, models.Ingredient) {
	t.Helper()

	beans := models.Ingredient{Name: "Coffee Beans", Unit: "kg", LowAlertQty: 0.1}
	require.NoError(t, db.Create(&beans).Error)
	require.NoError(t, db.Create(&models.Stock{IngredientID: beans.ID, Quantity: 1}).Error)

	coffee := models.MenuItem{Name: "Americano", Price: 2.50, Active: true}
	require.NoError(t, db.Create(&coffee).Error)
	require.NoError(t, db.Create(&models.Recipe{
		MenuItemID:   &coffee.ID,
		IngredientID: beans.ID,
		Quantity:     0.02,
	}).Error)

	return coffee, beans
}

func newOrderService(db *gorm.DB) *services.OrderService {
	return services.NewOrderService(db, services.NewStockService(false))
}
