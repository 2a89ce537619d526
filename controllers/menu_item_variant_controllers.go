package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cafe-eden/pos-app/models"
	"github.com/cafe-eden/pos-app/utils"
)

type MenuItemVariantController struct {
	DB *gorm.DB
}

func NewMenuItemVariantController(db *gorm.DB) *MenuItemVariantController {
	return &MenuItemVariantController{DB: db}
}

func (vc *MenuItemVariantController) parentItem(c *gin.Context) (*models.MenuItem, bool) {
	var item models.MenuItem
	if err := vc.DB.First(&item, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, "Menu item not found")
			return nil, false
		}
		utils.RespondError(c, http.StatusInternalServerError, "Failed to fetch menu item")
		return nil, false
	}
	return &item, true
}

func (vc *MenuItemVariantController) GetVariants(c *gin.Context) {
	item, ok := vc.parentItem(c)
	if !ok {
		return
	}

	var variants []models.MenuItemVariant
	err := vc.DB.Where("menu_item_id = ?", item.ID).
		Order("position ASC, name ASC").Find(&variants).Error
	if err != nil {
		utils.ErrorLogger.Printf("Failed to fetch variants: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Failed to fetch variants")
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Variants fetched successfully", variants)
}

type variantRequest struct {
	Name             string     `json:"name" binding:"required"`
	Price            float64    `json:"price" binding:"required,gte=0"`
	SKU              string     `json:"sku"`
	Position         int        `json:"position"`
	IsActive         *bool      `json:"is_active"`
	DiscountType     *string    `json:"discount_type"`
	DiscountValue    *float64   `json:"discount_value"`
	DiscountStartsAt *time.Time `json:"discount_starts_at"`
	DiscountEndsAt   *time.Time `json:"discount_ends_at"`
}

func (vc *MenuItemVariantController) CreateVariant(c *gin.Context) {
	item, ok := vc.parentItem(c)
	if !ok {
		return
	}

	var req variantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	if err := validateDiscount(req.DiscountType, req.DiscountValue, req.Price); err != nil {
		utils.RespondError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	variant := models.MenuItemVariant{
		MenuItemID:       item.ID,
		Name:             req.Name,
		Price:            req.Price,
		SKU:              req.SKU,
		Position:         req.Position,
		IsActive:         true,
		DiscountType:     req.DiscountType,
		DiscountValue:    req.DiscountValue,
		DiscountStartsAt: req.DiscountStartsAt,
		DiscountEndsAt:   req.DiscountEndsAt,
	}
	if req.IsActive != nil {
		variant.IsActive = *req.IsActive
	}

	if err := vc.DB.Create(&variant).Error; err != nil {
		utils.ErrorLogger.Printf("Failed to create variant: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Failed to create variant")
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Variant created successfully", variant)
}

func (vc *MenuItemVariantController) UpdateVariant(c *gin.Context) {
	item, ok := vc.parentItem(c)
	if !ok {
		return
	}

	var variant models.MenuItemVariant
	err := vc.DB.First(&variant, "id = ? AND menu_item_id = ?", c.Param("variant_id"), item.ID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, "Variant not found")
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, "Failed to fetch variant")
		return
	}

	var req variantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	if err := validateDiscount(req.DiscountType, req.DiscountValue, req.Price); err != nil {
		utils.RespondError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	variant.Name = req.Name
	variant.Price = req.Price
	variant.SKU = req.SKU
	variant.Position = req.Position
	variant.DiscountType = req.DiscountType
	variant.DiscountValue = req.DiscountValue
	variant.DiscountStartsAt = req.DiscountStartsAt
	variant.DiscountEndsAt = req.DiscountEndsAt
	if req.IsActive != nil {
		variant.IsActive = *req.IsActive
	}

	if err := vc.DB.Save(&variant).Error; err != nil {
		utils.ErrorLogger.Printf("Failed to update variant: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Failed to update variant")
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Variant updated successfully", variant)
}

func (vc *MenuItemVariantController) DeleteVariant(c *gin.Context) {
	item, ok := vc.parentItem(c)
	if !ok {
		return
	}

	res := vc.DB.Where("menu_item_id = ?", item.ID).
		Delete(&models.MenuItemVariant{}, "id = ?", c.Param("variant_id"))
	if res.Error != nil {
		utils.ErrorLogger.Printf("Failed to delete variant: %v", res.Error)
		utils.RespondError(c, http.StatusInternalServerError, "Failed to delete variant")
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, "Variant not found")
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Variant deleted successfully", nil)
}
