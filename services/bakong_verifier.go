package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/cafe-eden/pos-app/models"
	"github.com/cafe-eden/pos-app/utils"
)

// BakongVerifier polls the provider for the most recent pending KHQR
// transaction and settles it when confirmed. Provider failures are logged
// and retried on the next cycle; they never fail the order, which stays
// pending until a successful verification or a cash fallback.
type BakongVerifier struct {
	db       *gorm.DB
	svc      *BakongService
	orders   *OrderService
	Interval time.Duration
	stop     chan struct{}
}

func NewBakongVerifier(db *gorm.DB, svc *BakongService, orders *OrderService) *BakongVerifier {
	return &BakongVerifier{
		db:       db,
		svc:      svc,
		orders:   orders,
		Interval: 30 * time.Second,
		stop:     make(chan struct{}),
	}
}

func (bv *BakongVerifier) Start() {
	go bv.run()
	utils.InfoLogger.Println("Bakong verifier started")
}

func (bv *BakongVerifier) Stop() {
	close(bv.stop)
}

func (bv *BakongVerifier) run() {
	ticker := time.NewTicker(bv.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := bv.VerifyLatestPending(); err != nil {
				utils.ErrorLogger.Printf("Bakong verification failed (will retry): %v", err)
			}
		case <-bv.stop:
			return
		}
	}
}

// VerifyLatestPending checks the most recent pending transaction against the
// provider by MD5 hash. Returns true when a transaction was settled.
func (bv *BakongVerifier) VerifyLatestPending() (bool, error) {
	var txn models.BakongTransaction
	err := bv.db.Where("status = ? AND md5_hash <> ''", models.BakongStatusPending).
		Order("created_at DESC").
		First(&txn).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	settlement, err := bv.svc.CheckTransactionByMD5(txn.MD5Hash)
	if err != nil {
		return false, err
	}
	if !settlement.Settled {
		return false, nil
	}

	err = bv.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		res := tx.Model(&models.BakongTransaction{}).
			Where("id = ? AND status = ?", txn.ID, models.BakongStatusPending).
			Updates(map[string]interface{}{
				"status":       models.BakongStatusSuccess,
				"completed_at": now,
				"send_from":    settlement.FromAccountID,
				"receive_to":   settlement.ToAccountID,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Settled concurrently (pushback); nothing left to do.
			return nil
		}

		if txn.OrderID != nil {
			if err := bv.orders.MarkCompleted(tx, *txn.OrderID, models.PaymentMethodKHQR); err != nil {
				// The order may already be completed via cash fallback; the
				// transaction record is still settled.
				if !errors.Is(err, ErrOrderNotPending) {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	shop := models.GetSetting(bv.db, models.SettingShopName, "Cafe Eden")
	amount := utils.FormatUSD(txn.Amount)
	if txn.Currency == models.CurrencyKHR {
		amount = utils.FormatKHR(int64(txn.Amount))
	}
	SendTelegramAlert(fmt.Sprintf(
		"<b>%s Payment Success</b>\nBill No: <code>%s</code>\nAmount: <b>%s</b>\nFrom: <code>%s</code>\nTo: <code>%s</code>\nMD5: <code>%s</code>",
		shop, txn.BillNumber, amount,
		settlement.FromAccountID, settlement.ToAccountID, txn.MD5Hash,
	))

	utils.InfoLogger.Printf("Bakong transaction %s settled", txn.BillNumber)
	return true, nil
}
