package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cafe-eden/pos-app/models"
	"github.com/cafe-eden/pos-app/utils"
)

type BannerController struct {
	DB *gorm.DB
}

func NewBannerController(db *gorm.DB) *BannerController {
	return &BannerController{DB: db}
}

func (bc *BannerController) GetAllBanners(c *gin.Context) {
	query := bc.DB.Order("position ASC, created_at DESC")
	if c.Query("active") == "true" {
		query = query.Where("active = ?", true)
	}

	var banners []models.Banner
	if err := query.Find(&banners).Error; err != nil {
		utils.ErrorLogger.Printf("Failed to fetch banners: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Failed to fetch banners")
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Banners fetched successfully", banners)
}

type bannerRequest struct {
	Title    string `json:"title" binding:"required"`
	ImageURL string `json:"image_url"`
	LinkURL  string `json:"link_url"`
	Active   *bool  `json:"active"`
	Position int    `json:"position"`
}

func (bc *BannerController) CreateBanner(c *gin.Context) {
	var req bannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	banner := models.Banner{
		Title:    req.Title,
		ImageURL: req.ImageURL,
		LinkURL:  req.LinkURL,
		Active:   true,
		Position: req.Position,
	}
	if req.Active != nil {
		banner.Active = *req.Active
	}

	if err := bc.DB.Create(&banner).Error; err != nil {
		utils.ErrorLogger.Printf("Failed to create banner: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Failed to create banner")
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Banner created successfully", banner)
}

func (bc *BannerController) UpdateBanner(c *gin.Context) {
	var banner models.Banner
	if err := bc.DB.First(&banner, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, "Banner not found")
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, "Failed to fetch banner")
		return
	}

	var req bannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	banner.Title = req.Title
	banner.ImageURL = req.ImageURL
	banner.LinkURL = req.LinkURL
	banner.Position = req.Position
	if req.Active != nil {
		banner.Active = *req.Active
	}

	if err := bc.DB.Save(&banner).Error; err != nil {
		utils.ErrorLogger.Printf("Failed to update banner: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Failed to update banner")
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Banner updated successfully", banner)
}

func (bc *BannerController) DeleteBanner(c *gin.Context) {
	res := bc.DB.Delete(&models.Banner{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		utils.ErrorLogger.Printf("Failed to delete banner: %v", res.Error)
		utils.RespondError(c, http.StatusInternalServerError, "Failed to delete banner")
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, "Banner not found")
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Banner deleted successfully", nil)
}
