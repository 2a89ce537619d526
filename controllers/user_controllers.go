package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/cafe-eden/pos-app/models"
	"github.com/cafe-eden/pos-app/utils"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"omitempty,oneof=admin super_admin staff customer table"`
}

func (uc *UserController) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	var existing models.User
	err := uc.DB.Where("email = ?", strings.ToLower(req.Email)).First(&existing).Error
	if err == nil {
		utils.RespondError(c, http.StatusConflict, "Email is already registered")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondError(c, http.StatusInternalServerError, "Failed to check email")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.ErrorLogger.Printf("Failed to hash password: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Failed to register user")
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleCustomer
	}

	user := models.User{
		Name:     req.Name,
		Email:    strings.ToLower(req.Email),
		Password: string(hash),
		Role:     role,
	}
	if err := uc.DB.Create(&user).Error; err != nil {
		utils.ErrorLogger.Printf("Failed to create user: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Failed to register user")
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "User registered successfully", user)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (uc *UserController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	var user models.User
	err := uc.DB.Where("email = ?", strings.ToLower(req.Email)).First(&user).Error
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		utils.ErrorLogger.Printf("Failed to generate token: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Failed to login")
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
		"user":  user,
	})
}

func (uc *UserController) Logout(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok && token != "" {
		utils.BlacklistToken(token)
	}
	utils.RespondJSON(c, http.StatusOK, "Logged out successfully", nil)
}

func (uc *UserController) GetAllUsers(c *gin.Context) {
	query := uc.DB.Order("created_at DESC")
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		utils.ErrorLogger.Printf("Failed to fetch users: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Failed to fetch users")
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Users fetched successfully", users)
}

func (uc *UserController) GetProfile(c *gin.Context) {
	v, ok := c.Get("user_id")
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var user models.User
	if err := uc.DB.First(&user, "id = ?", v).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, "User not found")
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Profile fetched successfully", user)
}

// DeleteUser soft deletes; past orders keep their user reference via
// unscoped preloads.
func (uc *UserController) DeleteUser(c *gin.Context) {
	res := uc.DB.Delete(&models.User{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		utils.ErrorLogger.Printf("Failed to delete user: %v", res.Error)
		utils.RespondError(c, http.StatusInternalServerError, "Failed to delete user")
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, "User not found")
		return
	}

	utils.RespondJSON(c, http.StatusOK, "User deleted successfully", nil)
}
