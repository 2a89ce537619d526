package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cafe-eden/pos-app/models"
	"github.com/cafe-eden/pos-app/services"
	"github.com/cafe-eden/pos-app/utils"
)

type BakongController struct {
	DB       *gorm.DB
	Service  *services.BakongService
	Verifier *services.BakongVerifier
	Orders   *services.OrderService
}

func NewBakongController(db *gorm.DB, svc *services.BakongService, verifier *services.BakongVerifier, orders *services.OrderService) *BakongController {
	return &BakongController{DB: db, Service: svc, Verifier: verifier, Orders: orders}
}

type generateQRRequest struct {
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	Currency string  `json:"currency" binding:"omitempty,oneof=USD KHR"`
	OrderID  *uint   `json:"order_id"`
}

// GenerateQR creates a KHQR payment attempt. The resulting transaction is
// pending until the background verifier or the pushback webhook settles it.
func (bc *BakongController) GenerateQR(c *gin.Context) {
	var req generateQRRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	if req.Currency == "" {
		req.Currency = models.CurrencyKHR
	}

	if req.OrderID != nil {
		var order models.Order
		if err := bc.DB.First(&order, "id = ?", *req.OrderID).Error; err != nil {
			utils.RespondError(c, http.StatusNotFound, "Order not found")
			return
		}
		if order.Status != models.OrderStatusPending {
			utils.RespondError(c, http.StatusBadRequest, "Order is not pending")
			return
		}
	}

	merchantID := models.GetSetting(bc.DB, models.SettingBakongMachineID, "")
	shopName := models.GetSetting(bc.DB, models.SettingShopName, "Cafe Eden")

	qr, err := bc.Service.GenerateQR(req.Amount, req.Currency, merchantID, shopName)
	if err != nil {
		utils.RespondError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	txn := models.BakongTransaction{
		BillNumber: qr.BillNumber,
		OrderID:    req.OrderID,
		Amount:     req.Amount,
		Currency:   req.Currency,
		QRString:   qr.QRString,
		MD5Hash:    qr.MD5,
		Status:     models.BakongStatusPending,
	}
	if err := bc.DB.Create(&txn).Error; err != nil {
		utils.ErrorLogger.Printf("Failed to store bakong transaction: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, "Failed to store transaction")
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "QR generated successfully", gin.H{
		"transaction": txn,
		"qr_string":   qr.QRString,
		"md5":         qr.MD5,
		"bill_number": qr.BillNumber,
	})
}

// VerifyLatest polls the provider for the most recent pending transaction.
// Clients call this while showing the QR; the background verifier covers the
// case where they stop polling.
func (bc *BakongController) VerifyLatest(c *gin.Context) {
	if err := bc.Service.ValidateConfig(); err != nil {
		utils.RespondError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	settled, err := bc.Verifier.VerifyLatestPending()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondJSON(c, http.StatusOK, "No pending transactions", gin.H{"settled": false})
			return
		}
		utils.ErrorLogger.Printf("Verification failed: %v", err)
		utils.RespondError(c, http.StatusBadGateway, "Verification failed, try again")
		return
	}

	message := "Transaction still pending"
	if settled {
		message = "Transaction settled"
	}
	utils.RespondJSON(c, http.StatusOK, message, gin.H{"settled": settled})
}

// CheckStatus asks the provider for the status of one bill number.
func (bc *BakongController) CheckStatus(c *gin.Context) {
	bill := c.Param("bill_number")

	var txn models.BakongTransaction
	if err := bc.DB.First(&txn, "bill_number = ?", bill).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, "Transaction not found")
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, "Failed to fetch transaction")
		return
	}

	status, err := bc.Service.CheckStatusByBill(bill)
	if err != nil {
		utils.ErrorLogger.Printf("Status check failed for %s: %v", bill, err)
		utils.RespondError(c, http.StatusBadGateway, "Status check failed")
		return
	}

	if status == models.BakongStatusSuccess && txn.Status == models.BakongStatusPending {
		if err := bc.settle(&txn, "", ""); err != nil {
			utils.ErrorLogger.Printf("Failed to settle %s: %v", bill, err)
			utils.RespondError(c, http.StatusInternalServerError, "Failed to settle transaction")
			return
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Status fetched successfully", gin.H{
		"bill_number":     bill,
		"provider_status": status,
		"transaction":     txn,
	})
}

type pushbackRequest struct {
	BillNumber string `json:"billNumber" binding:"required"`
	Status     string `json:"status" binding:"required"`
	SendFrom   string `json:"sendFrom"`
	ReceiveTo  string `json:"receiveTo"`
}

// HandlePushback is the provider webhook. Settlement is idempotent: a bill
// already settled by the verifier is acknowledged without side effects.
func (bc *BakongController) HandlePushback(c *gin.Context) {
	var req pushbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusUnprocessableEntity, "Invalid pushback payload: "+err.Error())
		return
	}

	var txn models.BakongTransaction
	if err := bc.DB.First(&txn, "bill_number = ?", req.BillNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, "Unknown bill number")
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, "Failed to fetch transaction")
		return
	}

	status := services.MapProviderStatus(strings.ToLower(req.Status))
	switch status {
	case models.BakongStatusSuccess:
		if err := bc.settle(&txn, req.SendFrom, req.ReceiveTo); err != nil {
			utils.ErrorLogger.Printf("Pushback settlement failed for %s: %v", req.BillNumber, err)
			utils.RespondError(c, http.StatusInternalServerError, "Failed to settle transaction")
			return
		}
	case models.BakongStatusFailed:
		bc.DB.Model(&txn).
			Where("status = ?", models.BakongStatusPending).
			Update("status", models.BakongStatusFailed)
	}

	utils.RespondJSON(c, http.StatusOK, "Pushback processed", gin.H{"bill_number": req.BillNumber})
}

// settle flips the transaction to success and completes the owning order.
// The guarded updates make it safe to race against the background verifier.
func (bc *BakongController) settle(txn *models.BakongTransaction, sendFrom, receiveTo string) error {
	return bc.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		updates := map[string]interface{}{
			"status":       models.BakongStatusSuccess,
			"completed_at": &now,
		}
		if sendFrom != "" {
			updates["send_from"] = sendFrom
		}
		if receiveTo != "" {
			updates["receive_to"] = receiveTo
		}
		res := tx.Model(&models.BakongTransaction{}).
			Where("id = ? AND status = ?", txn.ID, models.BakongStatusPending).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		txn.Status = models.BakongStatusSuccess
		txn.CompletedAt = &now

		if txn.OrderID != nil {
			err := bc.Orders.MarkCompleted(tx, *txn.OrderID, models.PaymentMethodKHQR)
			if err != nil && !errors.Is(err, services.ErrOrderNotPending) {
				return err
			}
		}
		return nil
	})
}
