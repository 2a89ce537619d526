package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cafe-eden/pos-app/models"
	"github.com/cafe-eden/pos-app/utils"
)

type SettingsController struct {
	DB *gorm.DB
}

func NewSettingsController(db *gorm.DB) *SettingsController {
	return &SettingsController{DB: db}
}

func (sc *SettingsController) GetAllSettings(c *gin.Context) {
	var settings []models.Setting
	if err := sc.DB.Order("`key` ASC").Find(&settings).Error; err != nil {
		utils.ErrorLogger.Printf("Failed to fetch settings: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Failed to fetch settings")
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Settings fetched successfully", settings)
}

func (sc *SettingsController) GetSettingByKey(c *gin.Context) {
	var setting models.Setting
	if err := sc.DB.Where("`key` = ?", c.Param("key")).First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, "Setting not found")
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, "Failed to fetch setting")
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Setting fetched successfully", setting)
}

type settingRequest struct {
	Key   string `json:"key" binding:"required"`
	Value string `json:"value"`
}

// UpsertSetting writes one key. New totals pick the value up on the next
// order; existing orders keep the rates they were priced with.
func (sc *SettingsController) UpsertSetting(c *gin.Context) {
	var req settingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	var setting models.Setting
	err := sc.DB.Where("`key` = ?", req.Key).First(&setting).Error
	switch {
	case err == nil:
		setting.Value = req.Value
		if err := sc.DB.Save(&setting).Error; err != nil {
			utils.ErrorLogger.Printf("Failed to update setting: %v", err)
			utils.RespondError(c, http.StatusInternalServerError, "Failed to update setting")
			return
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		setting = models.Setting{Key: req.Key, Value: req.Value}
		if err := sc.DB.Create(&setting).Error; err != nil {
			utils.ErrorLogger.Printf("Failed to create setting: %v", err)
			utils.RespondError(c, http.StatusInternalServerError, "Failed to create setting")
			return
		}
	default:
		utils.RespondError(c, http.StatusInternalServerError, "Failed to fetch setting")
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Setting saved successfully", setting)
}
