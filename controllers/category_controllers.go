package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cafe-eden/pos-app/models"
	"github.com/cafe-eden/pos-app/utils"
)

type CategoryController struct {
	DB *gorm.DB
}

func NewCategoryController(db *gorm.DB) *CategoryController {
	return &CategoryController{DB: db}
}

func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Join(strings.Fields(slug), "-")
	return slug
}

func (cc *CategoryController) GetAllCategories(c *gin.Context) {
	var categories []models.Category
	if err := cc.DB.Order("name ASC").Find(&categories).Error; err != nil {
		utils.ErrorLogger.Printf("Failed to fetch categories: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Failed to fetch categories")
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Categories fetched successfully", categories)
}

func (cc *CategoryController) GetCategoryByID(c *gin.Context) {
	var category models.Category
	if err := cc.DB.First(&category, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, "Category not found")
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, "Failed to fetch category")
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Category fetched successfully", category)
}

type categoryRequest struct {
	Name   string `json:"name" binding:"required"`
	Active *bool  `json:"active"`
}

func (cc *CategoryController) CreateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	category := models.Category{
		Name:   req.Name,
		Slug:   slugify(req.Name),
		Active: true,
	}
	if req.Active != nil {
		category.Active = *req.Active
	}

	if err := cc.DB.Create(&category).Error; err != nil {
		utils.ErrorLogger.Printf("Failed to create category: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Failed to create category")
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Category created successfully", category)
}

func (cc *CategoryController) UpdateCategory(c *gin.Context) {
	var category models.Category
	if err := cc.DB.First(&category, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, "Category not found")
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, "Failed to fetch category")
		return
	}

	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	category.Name = req.Name
	category.Slug = slugify(req.Name)
	if req.Active != nil {
		category.Active = *req.Active
	}

	if err := cc.DB.Save(&category).Error; err != nil {
		utils.ErrorLogger.Printf("Failed to update category: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Failed to update category")
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Category updated successfully", category)
}

func (cc *CategoryController) DeleteCategory(c *gin.Context) {
	res := cc.DB.Delete(&models.Category{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		utils.ErrorLogger.Printf("Failed to delete category: %v", res.Error)
		utils.RespondError(c, http.StatusInternalServerError, "Failed to delete category")
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, "Category not found")
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Category deleted successfully", nil)
}
