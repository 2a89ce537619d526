package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cafe-eden/pos-app/models"
	"github.com/cafe-eden/pos-app/services"
	"github.com/cafe-eden/pos-app/utils"
)

type OrderController struct {
	DB      *gorm.DB
	Service *services.OrderService
}

func NewOrderController(db *gorm.DB, svc *services.OrderService) *OrderController {
	return &OrderController{DB: db, Service: svc}
}

func (oc *OrderController) preloaded() *gorm.DB {
	return oc.DB.
		Preload("User", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Preload("Discount").
		Preload("OrderItems.MenuItem").
		Preload("OrderItems.MenuItemVariant")
}

// GetAllOrders lists orders newest first, optionally filtered by status
// and a created_at date range (?from=2025-01-01&to=2025-01-31).
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	query := oc.preloaded()

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if from := c.Query("from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			query = query.Where("created_at >= ?", t)
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			query = query.Where("created_at < ?", t.AddDate(0, 0, 1))
		}
	}

	var orders []models.Order
	if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
		utils.ErrorLogger.Printf("Failed to fetch orders: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Orders fetched successfully", orders)
}

func (oc *OrderController) GetOrderByID(c *gin.Context) {
	var order models.Order
	if err := oc.preloaded().First(&order, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, "Order not found")
			return
		}
		utils.ErrorLogger.Printf("Failed to fetch order: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Failed to fetch order")
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order fetched successfully", order)
}

type createOrderRequest struct {
	Items             []services.OrderLine `json:"items" binding:"required,min=1,dive"`
	Code              string               `json:"code"`
	RTDiscountPercent *float64             `json:"rt_discount_percent"`
	RTDiscountAmount  *float64             `json:"rt_discount_amount"`
}

func (oc *OrderController) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	input := services.CreateOrderInput{
		Lines:         req.Items,
		Code:          req.Code,
		ManualPercent: req.RTDiscountPercent,
		ManualAmount:  req.RTDiscountAmount,
	}
	if v, ok := c.Get("user_id"); ok {
		if id, ok := v.(uint); ok {
			input.UserID = &id
		}
	}
	if v, ok := c.Get("role"); ok {
		if role, ok := v.(string); ok {
			input.Role = role
		}
	}

	order, err := oc.Service.Create(input)
	if err != nil {
		oc.respondCreateError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Order created successfully", order)
}

func (oc *OrderController) respondCreateError(c *gin.Context, err error) {
	var stockErr *services.InsufficientStockError
	switch {
	case errors.As(err, &stockErr):
		utils.RespondError(c, http.StatusBadRequest, stockErr.Error())
	case errors.Is(err, services.ErrInvalidDiscountCode):
		utils.RespondError(c, http.StatusBadRequest, "Invalid or expired discount code")
	case errors.Is(err, services.ErrManualDiscountForbidden):
		utils.RespondError(c, http.StatusForbidden, "You are not allowed to apply a manual discount")
	case errors.Is(err, services.ErrDiscountConflict):
		utils.RespondError(c, http.StatusBadRequest, "Use either a discount code or a manual discount, not both")
	case errors.Is(err, services.ErrMenuItemNotFound):
		utils.RespondError(c, http.StatusUnprocessableEntity, "One of the menu items does not exist")
	case errors.Is(err, services.ErrVariantNotFound):
		utils.RespondError(c, http.StatusUnprocessableEntity, "One of the variants does not exist")
	case errors.Is(err, services.ErrVariantMismatch):
		utils.RespondError(c, http.StatusUnprocessableEntity, "Variant does not belong to the selected menu item")
	default:
		utils.ErrorLogger.Printf("Failed to create order: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Failed to create order")
	}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return uint(id), true
}

func (oc *OrderController) CancelOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := oc.Service.Cancel(id); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.RespondError(c, http.StatusNotFound, "Order not found")
		case errors.Is(err, services.ErrOrderNotPending):
			utils.RespondError(c, http.StatusBadRequest, "Only pending orders can be cancelled")
		default:
			utils.ErrorLogger.Printf("Failed to cancel order: %v", err)
			utils.RespondError(c, http.StatusInternalServerError, "Failed to cancel order")
		}
		return
	}

	var order models.Order
	if err := oc.preloaded().First(&order, "id = ?", id).Error; err != nil {
		utils.RespondJSON(c, http.StatusOK, "Order cancelled successfully", nil)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order cancelled successfully", order)
}

type payCashRequest struct {
	Currency string  `json:"currency" binding:"required,oneof=USD KHR"`
	Tendered float64 `json:"tendered" binding:"required,gt=0"`
}

func (oc *OrderController) PayCash(c *gin.Context) {
	var req payCashRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}

	order, payment, err := oc.Service.PayCash(id, req.Tendered, req.Currency)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.RespondError(c, http.StatusNotFound, "Order not found")
		case errors.Is(err, services.ErrInsufficientCash):
			utils.RespondError(c, http.StatusUnprocessableEntity, "Cash tendered is less than the amount due")
		case errors.Is(err, services.ErrOrderNotPending):
			utils.RespondError(c, http.StatusBadRequest, "Order is not pending")
		default:
			utils.ErrorLogger.Printf("Failed to process cash payment: %v", err)
			utils.RespondError(c, http.StatusInternalServerError, "Failed to process cash payment")
		}
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Payment received", gin.H{
		"order":   order,
		"payment": payment,
	})
}

type updateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending completed cancelled"`
}

// UpdateOrderStatus is an admin override that bypasses the pending guard.
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	var req updateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	var order models.Order
	if err := oc.DB.First(&order, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, "Order not found")
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, "Failed to fetch order")
		return
	}

	updates := map[string]interface{}{"status": req.Status}
	if req.Status == models.OrderStatusCompleted && order.PaidAt == nil {
		now := time.Now()
		updates["paid_at"] = &now
	}
	if err := oc.DB.Model(&order).Updates(updates).Error; err != nil {
		utils.ErrorLogger.Printf("Failed to update order status: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Failed to update order status")
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order status updated successfully", order)
}

// Reorder rebuilds a new order from the caller's most purchased items.
func (oc *OrderController) Reorder(c *gin.Context) {
	v, ok := c.Get("user_id")
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	userID, _ := v.(uint)

	role := ""
	if r, ok := c.Get("role"); ok {
		role, _ = r.(string)
	}

	order, err := oc.Service.Reorder(userID, role)
	if err != nil {
		if errors.Is(err, services.ErrNoOrderHistory) {
			utils.RespondError(c, http.StatusNotFound, "No previous orders to reorder from")
			return
		}
		oc.respondCreateError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Order created successfully", order)
}
