package controllers

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cafe-eden/pos-app/models"
	"github.com/cafe-eden/pos-app/utils"
)

type MenuItemController struct {
	DB *gorm.DB
}

func NewMenuItemController(db *gorm.DB) *MenuItemController {
	return &MenuItemController{DB: db}
}

// validateDiscount enforces the shape of a scheduled item discount: a percent
// discount stays within 0..100 and a fixed discount never exceeds the price.
func validateDiscount(dtype *string, value *float64, price float64) error {
	if dtype == nil && value == nil {
		return nil
	}
	if dtype == nil || value == nil {
		return fmt.Errorf("discount_type and discount_value must be set together")
	}
	switch *dtype {
	case models.DiscountTypePercent:
		if *value < 0 || *value > 100 {
			return fmt.Errorf("percent discount must be between 0 and 100")
		}
	case models.DiscountTypeFixed:
		if *value < 0 || *value > price {
			return fmt.Errorf("fixed discount cannot exceed the price")
		}
	default:
		return fmt.Errorf("discount_type must be percent or fixed")
	}
	return nil
}

func (mc *MenuItemController) GetAllMenuItems(c *gin.Context) {
	query := mc.DB.Preload("Category").Preload("Variants")
	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	if c.Query("active") == "true" {
		query = query.Where("active = ?", true)
	}

	var items []models.MenuItem
	if err := query.Order("name ASC").Find(&items).Error; err != nil {
		utils.ErrorLogger.Printf("Failed to fetch menu items: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Failed to fetch menu items")
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu items fetched successfully", items)
}

func (mc *MenuItemController) GetMenuItemByID(c *gin.Context) {
	var item models.MenuItem
	err := mc.DB.Preload("Category").Preload("Variants").Preload("Recipes.Ingredient").
		First(&item, "id = ?", c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, "Menu item not found")
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, "Failed to fetch menu item")
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu item fetched successfully", item)
}

type menuItemRequest struct {
	CategoryID       *uint      `json:"category_id"`
	Name             string     `json:"name" binding:"required"`
	Price            float64    `json:"price" binding:"required,gte=0"`
	Description      string     `json:"description"`
	Active           *bool      `json:"active"`
	DiscountType     *string    `json:"discount_type"`
	DiscountValue    *float64   `json:"discount_value"`
	DiscountStartsAt *time.Time `json:"discount_starts_at"`
	DiscountEndsAt   *time.Time `json:"discount_ends_at"`
}

func (mc *MenuItemController) CreateMenuItem(c *gin.Context) {
	var req menuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	if err := validateDiscount(req.DiscountType, req.DiscountValue, req.Price); err != nil {
		utils.RespondError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	item := models.MenuItem{
		CategoryID:       req.CategoryID,
		Name:             req.Name,
		Price:            req.Price,
		Description:      req.Description,
		Active:           true,
		DiscountType:     req.DiscountType,
		DiscountValue:    req.DiscountValue,
		DiscountStartsAt: req.DiscountStartsAt,
		DiscountEndsAt:   req.DiscountEndsAt,
	}
	if req.Active != nil {
		item.Active = *req.Active
	}

	if err := mc.DB.Create(&item).Error; err != nil {
		utils.ErrorLogger.Printf("Failed to create menu item: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Failed to create menu item")
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Menu item created successfully", item)
}

func (mc *MenuItemController) UpdateMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := mc.DB.First(&item, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, "Menu item not found")
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, "Failed to fetch menu item")
		return
	}

	var req menuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	if err := validateDiscount(req.DiscountType, req.DiscountValue, req.Price); err != nil {
		utils.RespondError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	item.CategoryID = req.CategoryID
	item.Name = req.Name
	item.Price = req.Price
	item.Description = req.Description
	item.DiscountType = req.DiscountType
	item.DiscountValue = req.DiscountValue
	item.DiscountStartsAt = req.DiscountStartsAt
	item.DiscountEndsAt = req.DiscountEndsAt
	if req.Active != nil {
		item.Active = *req.Active
	}

	if err := mc.DB.Save(&item).Error; err != nil {
		utils.ErrorLogger.Printf("Failed to update menu item: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Failed to update menu item")
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu item updated successfully", item)
}

// DeleteMenuItem soft deletes so past order items keep their reference.
func (mc *MenuItemController) DeleteMenuItem(c *gin.Context) {
	res := mc.DB.Delete(&models.MenuItem{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		utils.ErrorLogger.Printf("Failed to delete menu item: %v", res.Error)
		utils.RespondError(c, http.StatusInternalServerError, "Failed to delete menu item")
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, "Menu item not found")
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu item deleted successfully", nil)
}

// GetAvailability reports how many units of an item (or one of its variants)
// the current stock can cover, limited by the scarcest recipe ingredient.
// Items with no recipe lines are reported as unlimited.
func (mc *MenuItemController) GetAvailability(c *gin.Context) {
	var item models.MenuItem
	if err := mc.DB.Preload("Recipes").First(&item, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, "Menu item not found")
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, "Failed to fetch menu item")
		return
	}

	recipes := item.Recipes
	if variantID := c.Query("variant_id"); variantID != "" {
		var variant models.MenuItemVariant
		err := mc.DB.Preload("Recipes").
			First(&variant, "id = ? AND menu_item_id = ?", variantID, item.ID).Error
		if err != nil {
			utils.RespondError(c, http.StatusNotFound, "Variant not found")
			return
		}
		if len(variant.Recipes) > 0 {
			recipes = variant.Recipes
		}
	}

	if len(recipes) == 0 {
		utils.RespondJSON(c, http.StatusOK, "Availability fetched successfully", gin.H{
			"menu_item_id": item.ID,
			"unlimited":    true,
		})
		return
	}

	maxQty := math.MaxFloat64
	for _, r := range recipes {
		if r.Quantity <= 0 {
			continue
		}
		var stock models.Stock
		qty := 0.0
		if err := mc.DB.First(&stock, "ingredient_id = ?", r.IngredientID).Error; err == nil {
			qty = stock.Quantity
		}
		if sellable := math.Floor(qty / r.Quantity); sellable < maxQty {
			maxQty = sellable
		}
	}
	if maxQty == math.MaxFloat64 || maxQty < 0 {
		maxQty = 0
	}

	utils.RespondJSON(c, http.StatusOK, "Availability fetched successfully", gin.H{
		"menu_item_id": item.ID,
		"unlimited":    false,
		"available":    int64(maxQty),
	})
}
