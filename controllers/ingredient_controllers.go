package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cafe-eden/pos-app/models"
	"github.com/cafe-eden/pos-app/utils"
)

type IngredientController struct {
	DB *gorm.DB
}

func NewIngredientController(db *gorm.DB) *IngredientController {
	return &IngredientController{DB: db}
}

func (ic *IngredientController) GetAllIngredients(c *gin.Context) {
	var ingredients []models.Ingredient
	if err := ic.DB.Order("name ASC").Find(&ingredients).Error; err != nil {
		utils.ErrorLogger.Printf("Failed to fetch ingredients: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Failed to fetch ingredients")
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Ingredients fetched successfully", ingredients)
}

func (ic *IngredientController) GetIngredientByID(c *gin.Context) {
	var ingredient models.Ingredient
	if err := ic.DB.First(&ingredient, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, "Ingredient not found")
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, "Failed to fetch ingredient")
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Ingredient fetched successfully", ingredient)
}

type ingredientRequest struct {
	Name        string  `json:"name" binding:"required"`
	Unit        string  `json:"unit" binding:"required"`
	LowAlertQty float64 `json:"low_alert_qty" binding:"gte=0"`
}

func (ic *IngredientController) CreateIngredient(c *gin.Context) {
	var req ingredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	ingredient := models.Ingredient{
		Name:        req.Name,
		Unit:        req.Unit,
		LowAlertQty: req.LowAlertQty,
	}
	if err := ic.DB.Create(&ingredient).Error; err != nil {
		utils.ErrorLogger.Printf("Failed to create ingredient: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Failed to create ingredient")
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Ingredient created successfully", ingredient)
}

func (ic *IngredientController) UpdateIngredient(c *gin.Context) {
	var ingredient models.Ingredient
	if err := ic.DB.First(&ingredient, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, "Ingredient not found")
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, "Failed to fetch ingredient")
		return
	}

	var req ingredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	ingredient.Name = req.Name
	ingredient.Unit = req.Unit
	ingredient.LowAlertQty = req.LowAlertQty
	if err := ic.DB.Save(&ingredient).Error; err != nil {
		utils.ErrorLogger.Printf("Failed to update ingredient: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Failed to update ingredient")
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Ingredient updated successfully", ingredient)
}

func (ic *IngredientController) DeleteIngredient(c *gin.Context) {
	var count int64
	ic.DB.Model(&models.Recipe{}).Where("ingredient_id = ?", c.Param("id")).Count(&count)
	if count > 0 {
		utils.RespondError(c, http.StatusConflict, "Ingredient is referenced by recipes")
		return
	}

	res := ic.DB.Delete(&models.Ingredient{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		utils.ErrorLogger.Printf("Failed to delete ingredient: %v", res.Error)
		utils.RespondError(c, http.StatusInternalServerError, "Failed to delete ingredient")
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, "Ingredient not found")
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Ingredient deleted successfully", nil)
}
