package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cafe-eden/pos-app/models"
	"github.com/cafe-eden/pos-app/utils"
)

type StockController struct {
	DB *gorm.DB
}

func NewStockController(db *gorm.DB) *StockController {
	return &StockController{DB: db}
}

func (sc *StockController) GetAllStocks(c *gin.Context) {
	var stocks []models.Stock
	if err := sc.DB.Preload("Ingredient").Find(&stocks).Error; err != nil {
		utils.ErrorLogger.Printf("Failed to fetch stocks: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Failed to fetch stocks")
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Stocks fetched successfully", stocks)
}

type stockUpsertRequest struct {
	IngredientID uint    `json:"ingredient_id" binding:"required"`
	Quantity     float64 `json:"quantity"`
}

// UpsertStock sets the absolute stock level for one ingredient.
func (sc *StockController) UpsertStock(c *gin.Context) {
	var req stockUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	stock, err := sc.upsert(sc.DB, req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, "Ingredient not found")
			return
		}
		utils.ErrorLogger.Printf("Failed to upsert stock: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Failed to upsert stock")
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Stock updated successfully", stock)
}

type batchStockRequest struct {
	Stocks []stockUpsertRequest `json:"stocks" binding:"required,min=1,dive"`
}

// BatchUpsertStock applies a stocktake in one transaction: all levels are
// written or none are.
func (sc *StockController) BatchUpsertStock(c *gin.Context) {
	var req batchStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	var stocks []models.Stock
	err := sc.DB.Transaction(func(tx *gorm.DB) error {
		for _, line := range req.Stocks {
			stock, err := sc.upsert(tx, line)
			if err != nil {
				return err
			}
			stocks = append(stocks, *stock)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, "Ingredient not found")
			return
		}
		utils.ErrorLogger.Printf("Failed to batch upsert stock: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Failed to batch upsert stock")
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Stocks updated successfully", stocks)
}

func (sc *StockController) upsert(db *gorm.DB, req stockUpsertRequest) (*models.Stock, error) {
	var ingredient models.Ingredient
	if err := db.First(&ingredient, "id = ?", req.IngredientID).Error; err != nil {
		return nil, err
	}

	stock := models.Stock{IngredientID: req.IngredientID, Quantity: req.Quantity}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "ingredient_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"quantity": req.Quantity}),
	}).Create(&stock).Error
	if err != nil {
		return nil, err
	}

	if err := db.Preload("Ingredient").First(&stock, "ingredient_id = ?", req.IngredientID).Error; err != nil {
		return nil, err
	}
	return &stock, nil
}

// GetLowStocks lists ingredients at or below their alert threshold.
func (sc *StockController) GetLowStocks(c *gin.Context) {
	var stocks []models.Stock
	err := sc.DB.Preload("Ingredient").
		Joins("JOIN ingredients ON ingredients.id = stocks.ingredient_id").
		Where("stocks.quantity <= ingredients.low_alert_qty").
		Find(&stocks).Error
	if err != nil {
		utils.ErrorLogger.Printf("Failed to fetch low stocks: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Failed to fetch low stocks")
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Low stocks fetched successfully", stocks)
}
