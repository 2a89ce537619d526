package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cafe-eden/pos-app/models"
	"github.com/cafe-eden/pos-app/services"
	"github.com/cafe-eden/pos-app/utils"
)

type PaymentController struct {
	DB     *gorm.DB
	Orders *services.OrderService
}

func NewPaymentController(db *gorm.DB, orders *services.OrderService) *PaymentController {
	return &PaymentController{DB: db, Orders: orders}
}

func (pc *PaymentController) GetAllPayments(c *gin.Context) {
	query := pc.DB.Preload("Order")
	if method := c.Query("method"); method != "" {
		query = query.Where("method = ?", method)
	}

	var payments []models.Payment
	if err := query.Order("created_at DESC").Find(&payments).Error; err != nil {
		utils.ErrorLogger.Printf("Failed to fetch payments: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Failed to fetch payments")
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Payments fetched successfully", payments)
}

func (pc *PaymentController) GetPaymentByID(c *gin.Context) {
	var payment models.Payment
	err := pc.DB.Preload("Order").Preload("Logs").
		First(&payment, "id = ?", c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, "Payment not found")
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, "Failed to fetch payment")
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Payment fetched successfully", payment)
}

type createPaymentRequest struct {
	OrderID       uint     `json:"order_id" binding:"required"`
	Method        string   `json:"method" binding:"required,oneof=cash static_qr khqr aba card"`
	Amount        float64  `json:"amount" binding:"required,gt=0"`
	TaxAmount     float64  `json:"tax_amount"`
	ExchangeRate  *float64 `json:"exchange_rate"`
	TotalKHR      *int64   `json:"total_khr"`
	TransactionID *string  `json:"transaction_id"`
	Note          *string  `json:"note"`
}

// CreatePayment records a manual settlement (static QR, bank app, card) and
// completes the owning order. The completion is guarded so a second attempt
// against the same order is rejected.
func (pc *PaymentController) CreatePayment(c *gin.Context) {
	var req createPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	var payment models.Payment
	err := pc.DB.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, "id = ?", req.OrderID).Error; err != nil {
			return err
		}

		if err := pc.Orders.MarkCompleted(tx, order.ID, req.Method); err != nil {
			return err
		}

		txnID := uuid.NewString()
		if req.TransactionID != nil && *req.TransactionID != "" {
			txnID = *req.TransactionID
		}

		now := time.Now()
		payment = models.Payment{
			OrderID:       order.ID,
			Method:        req.Method,
			Amount:        req.Amount,
			TaxAmount:     req.TaxAmount,
			ExchangeRate:  req.ExchangeRate,
			TotalKHR:      req.TotalKHR,
			TransactionID: txnID,
			Status:        "approved",
			ConfirmedAt:   &now,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		if req.Note != nil && *req.Note != "" {
			log := models.PaymentLog{
				PaymentID: payment.ID,
				RawData:   *req.Note,
				Source:    "manual",
			}
			if err := tx.Create(&log).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.RespondError(c, http.StatusNotFound, "Order not found")
		case errors.Is(err, services.ErrOrderNotPending):
			utils.RespondError(c, http.StatusBadRequest, "Order has already been paid or cancelled")
		default:
			utils.ErrorLogger.Printf("Failed to record payment: %v", err)
			utils.RespondError(c, http.StatusInternalServerError, "Failed to record payment")
		}
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Payment recorded successfully", payment)
}

type paymentLogRequest struct {
	RawData string `json:"raw_data" binding:"required"`
	Source  string `json:"source" binding:"required"`
}

func (pc *PaymentController) AddPaymentLog(c *gin.Context) {
	var req paymentLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	var payment models.Payment
	if err := pc.DB.First(&payment, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, "Payment not found")
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, "Failed to fetch payment")
		return
	}

	log := models.PaymentLog{
		PaymentID: payment.ID,
		RawData:   req.RawData,
		Source:    req.Source,
	}
	if err := pc.DB.Create(&log).Error; err != nil {
		utils.ErrorLogger.Printf("Failed to add payment log: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Failed to add payment log")
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Payment log added successfully", log)
}
