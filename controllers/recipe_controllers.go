package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cafe-eden/pos-app/models"
	"github.com/cafe-eden/pos-app/utils"
)

type RecipeController struct {
	DB *gorm.DB
}

func NewRecipeController(db *gorm.DB) *RecipeController {
	return &RecipeController{DB: db}
}

func (rc *RecipeController) GetAllRecipes(c *gin.Context) {
	query := rc.DB.Preload("Ingredient")
	if itemID := c.Query("menu_item_id"); itemID != "" {
		query = query.Where("menu_item_id = ?", itemID)
	}
	if variantID := c.Query("menu_item_variant_id"); variantID != "" {
		query = query.Where("menu_item_variant_id = ?", variantID)
	}

	var recipes []models.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		utils.ErrorLogger.Printf("Failed to fetch recipes: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Failed to fetch recipes")
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Recipes fetched successfully", recipes)
}

type recipeRequest struct {
	MenuItemID        *uint   `json:"menu_item_id"`
	MenuItemVariantID *uint   `json:"menu_item_variant_id"`
	IngredientID      uint    `json:"ingredient_id" binding:"required"`
	Quantity          float64 `json:"quantity" binding:"required,gt=0"`
}

// CreateRecipe sets the consumption of one ingredient for a menu item or a
// variant. A recipe belongs to exactly one owner; writing the same
// owner+ingredient pair again overwrites the quantity.
func (rc *RecipeController) CreateRecipe(c *gin.Context) {
	var req recipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	if (req.MenuItemID == nil) == (req.MenuItemVariantID == nil) {
		utils.RespondError(c, http.StatusUnprocessableEntity,
			"Set exactly one of menu_item_id or menu_item_variant_id")
		return
	}

	if req.MenuItemID != nil {
		var item models.MenuItem
		if err := rc.DB.First(&item, "id = ?", *req.MenuItemID).Error; err != nil {
			utils.RespondError(c, http.StatusNotFound, "Menu item not found")
			return
		}
	} else {
		var variant models.MenuItemVariant
		if err := rc.DB.First(&variant, "id = ?", *req.MenuItemVariantID).Error; err != nil {
			utils.RespondError(c, http.StatusNotFound, "Variant not found")
			return
		}
	}

	var ingredient models.Ingredient
	if err := rc.DB.First(&ingredient, "id = ?", req.IngredientID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, "Ingredient not found")
		return
	}

	owner := rc.DB.Where("ingredient_id = ?", req.IngredientID)
	if req.MenuItemID != nil {
		owner = owner.Where("menu_item_id = ?", *req.MenuItemID)
	} else {
		owner = owner.Where("menu_item_variant_id = ?", *req.MenuItemVariantID)
	}

	var recipe models.Recipe
	err := owner.First(&recipe).Error
	switch {
	case err == nil:
		recipe.Quantity = req.Quantity
		if err := rc.DB.Save(&recipe).Error; err != nil {
			utils.ErrorLogger.Printf("Failed to update recipe: %v", err)
			utils.RespondError(c, http.StatusInternalServerError, "Failed to update recipe")
			return
		}
		utils.RespondJSON(c, http.StatusOK, "Recipe updated successfully", recipe)
	case errors.Is(err, gorm.ErrRecordNotFound):
		recipe = models.Recipe{
			MenuItemID:        req.MenuItemID,
			MenuItemVariantID: req.MenuItemVariantID,
			IngredientID:      req.IngredientID,
			Quantity:          req.Quantity,
		}
		if err := rc.DB.Create(&recipe).Error; err != nil {
			utils.ErrorLogger.Printf("Failed to create recipe: %v", err)
			utils.RespondError(c, http.StatusInternalServerError, "Failed to create recipe")
			return
		}
		utils.RespondJSON(c, http.StatusCreated, "Recipe created successfully", recipe)
	default:
		utils.RespondError(c, http.StatusInternalServerError, "Failed to fetch recipe")
	}
}

func (rc *RecipeController) DeleteRecipe(c *gin.Context) {
	res := rc.DB.Delete(&models.Recipe{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		utils.ErrorLogger.Printf("Failed to delete recipe: %v", res.Error)
		utils.RespondError(c, http.StatusInternalServerError, "Failed to delete recipe")
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, "Recipe not found")
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Recipe deleted successfully", nil)
}
