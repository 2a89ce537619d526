package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cafe-eden/pos-app/models"
	"github.com/cafe-eden/pos-app/utils"
)

type DiscountController struct {
	DB *gorm.DB
}

func NewDiscountController(db *gorm.DB) *DiscountController {
	return &DiscountController{DB: db}
}

func (dc *DiscountController) GetAllDiscounts(c *gin.Context) {
	var discounts []models.Discount
	if err := dc.DB.Order("created_at DESC").Find(&discounts).Error; err != nil {
		utils.ErrorLogger.Printf("Failed to fetch discounts: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Failed to fetch discounts")
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Discounts fetched successfully", discounts)
}

type discountRequest struct {
	Code       string     `json:"code" binding:"required"`
	Percentage *float64   `json:"percentage"`
	Amount     *float64   `json:"amount"`
	ExpiresAt  *time.Time `json:"expires_at"`
	Active     *bool      `json:"active"`
}

func (dc *DiscountController) validate(req *discountRequest) string {
	if (req.Percentage == nil) == (req.Amount == nil) {
		return "Set exactly one of percentage or amount"
	}
	if req.Percentage != nil && (*req.Percentage <= 0 || *req.Percentage > 100) {
		return "Percentage must be between 0 and 100"
	}
	if req.Amount != nil && *req.Amount <= 0 {
		return "Amount must be positive"
	}
	return ""
}

func (dc *DiscountController) CreateDiscount(c *gin.Context) {
	var req discountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	if msg := dc.validate(&req); msg != "" {
		utils.RespondError(c, http.StatusUnprocessableEntity, msg)
		return
	}

	discount := models.Discount{
		Code:       strings.ToUpper(strings.TrimSpace(req.Code)),
		Percentage: req.Percentage,
		Amount:     req.Amount,
		ExpiresAt:  req.ExpiresAt,
		Active:     true,
	}
	if req.Active != nil {
		discount.Active = *req.Active
	}

	if err := dc.DB.Create(&discount).Error; err != nil {
		utils.ErrorLogger.Printf("Failed to create discount: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Failed to create discount")
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Discount created successfully", discount)
}

func (dc *DiscountController) UpdateDiscount(c *gin.Context) {
	var discount models.Discount
	if err := dc.DB.First(&discount, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, "Discount not found")
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, "Failed to fetch discount")
		return
	}

	var req discountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	if msg := dc.validate(&req); msg != "" {
		utils.RespondError(c, http.StatusUnprocessableEntity, msg)
		return
	}

	discount.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	discount.Percentage = req.Percentage
	discount.Amount = req.Amount
	discount.ExpiresAt = req.ExpiresAt
	if req.Active != nil {
		discount.Active = *req.Active
	}

	if err := dc.DB.Save(&discount).Error; err != nil {
		utils.ErrorLogger.Printf("Failed to update discount: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Failed to update discount")
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Discount updated successfully", discount)
}

func (dc *DiscountController) DeleteDiscount(c *gin.Context) {
	res := dc.DB.Delete(&models.Discount{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		utils.ErrorLogger.Printf("Failed to delete discount: %v", res.Error)
		utils.RespondError(c, http.StatusInternalServerError, "Failed to delete discount")
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, "Discount not found")
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Discount deleted successfully", nil)
}
