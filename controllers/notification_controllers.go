package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cafe-eden/pos-app/models"
	"github.com/cafe-eden/pos-app/services"
	"github.com/cafe-eden/pos-app/utils"
)

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

func (nc *NotificationController) GetAllNotifications(c *gin.Context) {
	query := nc.DB.Order("created_at DESC")
	if c.Query("unread") == "true" {
		query = query.Where("`read` = ?", false)
	}

	var notifications []models.Notification
	if err := query.Find(&notifications).Error; err != nil {
		utils.ErrorLogger.Printf("Failed to fetch notifications: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Failed to fetch notifications")
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Notifications fetched successfully", notifications)
}

type notificationRequest struct {
	Type           string     `json:"type" binding:"required"`
	Title          string     `json:"title" binding:"required"`
	Message        string     `json:"message"`
	ScheduledAt    *time.Time `json:"scheduled_at"`
	Recurring      bool       `json:"recurring"`
	RecurringType  *string    `json:"recurring_type" binding:"omitempty,oneof=daily weekly monthly"`
	RecurringValue *string    `json:"recurring_value"`
}

func (nc *NotificationController) CreateNotification(c *gin.Context) {
	var req notificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	if req.Recurring && req.RecurringType == nil {
		utils.RespondError(c, http.StatusUnprocessableEntity, "recurring_type is required for recurring notifications")
		return
	}

	notification := models.Notification{
		Type:           req.Type,
		Title:          req.Title,
		Message:        req.Message,
		ScheduledAt:    req.ScheduledAt,
		Recurring:      req.Recurring,
		RecurringType:  req.RecurringType,
		RecurringValue: req.RecurringValue,
	}
	if req.Recurring {
		base := time.Now()
		if req.ScheduledAt != nil {
			base = *req.ScheduledAt
		}
		notification.NextRunAt = &base
		notification.NextRunAt = services.NextRunAfter(&notification)
	}

	if err := nc.DB.Create(&notification).Error; err != nil {
		utils.ErrorLogger.Printf("Failed to create notification: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Failed to create notification")
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Notification created successfully", notification)
}

func (nc *NotificationController) MarkAsRead(c *gin.Context) {
	var notification models.Notification
	if err := nc.DB.First(&notification, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, "Notification not found")
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, "Failed to fetch notification")
		return
	}

	if err := nc.DB.Model(&notification).Update("read", true).Error; err != nil {
		utils.ErrorLogger.Printf("Failed to mark notification read: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Failed to mark notification read")
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Notification marked as read", notification)
}

func (nc *NotificationController) DeleteNotification(c *gin.Context) {
	res := nc.DB.Delete(&models.Notification{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		utils.ErrorLogger.Printf("Failed to delete notification: %v", res.Error)
		utils.RespondError(c, http.StatusInternalServerError, "Failed to delete notification")
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, "Notification not found")
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Notification deleted successfully", nil)
}
