package services

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/cafe-eden/pos-app/models"
)

var (
	// ErrMenuItemNotFound and ErrVariantNotFound are validation failures on
	// the order payload, not 404s: the order resource itself was never created.
	ErrMenuItemNotFound = errors.New("menu item not found")
	ErrVariantNotFound  = errors.New("menu item variant not found")
)

// OrderLine is one requested line of an order.
type OrderLine struct {
	MenuItemID        uint                   `json:"menu_item_id" binding:"required"`
	MenuItemVariantID *uint                  `json:"menu_item_variant_id"`
	Quantity          int                    `json:"quantity" binding:"required,min=1"`
	Customizations    map[string]interface{} `json:"customizations"`
	Note              *string                `json:"note"`
}

// CreateOrderInput is the full order request after HTTP binding.
type CreateOrderInput struct {
	UserID        *uint
	Role          string
	Lines         []OrderLine
	Code          string
	ManualPercent *float64
	ManualAmount  *float64
}

// OrderService orchestrates order creation, cancellation and settlement.
// Every mutation is one transaction: catalog validation, pricing, stock
// deduction and persistence commit or roll back together.
type OrderService struct {
	DB    *gorm.DB
	Stock *StockService
}

func NewOrderService(db *gorm.DB, stock *StockService) *OrderService {
	return &OrderService{DB: db, Stock: stock}
}

// Create places a pending order. Any failure (bad ref, invalid code,
// insufficient stock) rolls the whole unit back: no order row, no partial
// stock deduction.
func (s *OrderService) Create(in CreateOrderInput) (*models.Order, error) {
	manual := in.ManualPercent != nil || in.ManualAmount != nil
	if manual {
		if in.Code != "" {
			return nil, ErrDiscountConflict
		}
		if !models.CanApplyManualDiscount(in.Role) {
			return nil, ErrManualDiscountForbidden
		}
	}

	var order models.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		var promo *models.Discount
		if in.Code != "" {
			var d models.Discount
			err := tx.Where("code = ? AND active = ?", strings.ToUpper(in.Code), true).First(&d).Error
			if err != nil || !d.Usable(now) {
				return ErrInvalidDiscountCode
			}
			promo = &d
		}

		taxRate := models.GetSettingFloat(tx, models.SettingTaxRate, 0)
		exchangeRate := models.GetSettingFloat(tx, models.SettingExchangeRate, 4100)

		order = models.Order{
			OrderCode:    GenerateOrderCode(),
			UserID:       in.UserID,
			Status:       models.OrderStatusPending,
			TaxRate:      taxRate,
			ExchangeRate: exchangeRate,
		}
		if promo != nil {
			order.DiscountID = &promo.ID
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		subtotal := decimal.Zero
		for _, line := range in.Lines {
			var item models.MenuItem
			if err := tx.Preload("Recipes").First(&item, line.MenuItemID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: id %d", ErrMenuItemNotFound, line.MenuItemID)
				}
				return err
			}

			var variant *models.MenuItemVariant
			if line.MenuItemVariantID != nil {
				var v models.MenuItemVariant
				if err := tx.Preload("Recipes").Preload("MenuItem").First(&v, *line.MenuItemVariantID).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return fmt.Errorf("%w: id %d", ErrVariantNotFound, *line.MenuItemVariantID)
					}
					return err
				}
				if v.MenuItemID != item.ID {
					return ErrVariantMismatch
				}
				variant = &v
			}

			unitPrice := item.FinalPrice(now)
			if variant != nil {
				unitPrice = variant.FinalPrice(now)
			}
			lineSubtotal := decimal.NewFromFloat(unitPrice).Mul(decimal.NewFromInt(int64(line.Quantity)))
			subtotal = subtotal.Add(lineSubtotal)

			orderItem := models.OrderItem{
				OrderID:           order.ID,
				MenuItemID:        item.ID,
				MenuItemVariantID: line.MenuItemVariantID,
				Quantity:          line.Quantity,
				Price:             unitPrice,
				Subtotal:          f64(lineSubtotal.Round(2)),
				Note:              line.Note,
			}
			if line.Customizations != nil {
				raw, err := json.Marshal(line.Customizations)
				if err != nil {
					return err
				}
				str := string(raw)
				orderItem.Customizations = &str
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return err
			}

			for _, recipe := range RecipeLinesFor(&item, variant) {
				required := recipe.Quantity * float64(line.Quantity)
				if err := s.Stock.Reserve(tx, recipe.IngredientID, required); err != nil {
					return err
				}
			}
		}

		pricing := ComputeTotals(f64(subtotal), DiscountInput{
			Promo:         promo,
			ManualPercent: in.ManualPercent,
			ManualAmount:  in.ManualAmount,
		}, taxRate, exchangeRate)

		updates := map[string]interface{}{
			"total_amount":    pricing.FinalTotal,
			"discount_amount": pricing.DiscountAmount,
			"tax_amount":      pricing.TaxAmount,
			"total_khr":       pricing.TotalKHR,
		}
		if err := tx.Model(&order).Updates(updates).Error; err != nil {
			return err
		}

		return tx.Preload("User", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
			Preload("Discount").
			Preload("OrderItems.MenuItem").
			Preload("OrderItems.MenuItemVariant").
			First(&order, order.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Cancel moves a pending order to cancelled and restores consumed stock
// using the same recipe resolution as deduction. The status flip is a
// conditional update, so a concurrent payment and cancellation cannot both
// win.
func (s *OrderService) Cancel(orderID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		// Catalog rows may have been soft-deleted while the order was
		// pending; the restore must still see their recipes.
		unscoped := func(db *gorm.DB) *gorm.DB { return db.Unscoped() }
		var order models.Order
		err := tx.Preload("OrderItems.MenuItem", unscoped).
			Preload("OrderItems.MenuItem.Recipes").
			Preload("OrderItems.MenuItemVariant", unscoped).
			Preload("OrderItems.MenuItemVariant.Recipes").
			First(&order, orderID).Error
		if err != nil {
			return err
		}

		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", orderID, models.OrderStatusPending).
			Update("status", models.OrderStatusCancelled)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrOrderNotPending
		}

		for _, item := range order.OrderItems {
			for _, recipe := range RecipeLinesFor(item.MenuItem, item.MenuItemVariant) {
				restored := recipe.Quantity * float64(item.Quantity)
				if err := s.Stock.Restore(tx, recipe.IngredientID, restored); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// CashPayment is the result of a cash settlement in both currencies.
type CashPayment struct {
	DueUSD      float64 `json:"due_usd"`
	DueKHR      int64   `json:"due_khr"`
	TenderedUSD float64 `json:"tendered_usd"`
	TenderedKHR int64   `json:"tendered_khr"`
	ChangeUSD   float64 `json:"change_usd"`
	ChangeKHR   int64   `json:"change_khr"`
}

// PayCash settles a pending order with cash in USD or KHR, computing due and
// change in both currencies from the exchange rate captured at order time.
func (s *OrderService) PayCash(orderID uint, tendered float64, currency string) (*models.Order, *CashPayment, error) {
	var order models.Order
	var result CashPayment

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, orderID).Error; err != nil {
			return err
		}

		rate := order.ExchangeRate
		if rate < 1 {
			rate = 1
		}
		dueUSD := order.TotalAmount
		dueKHR := roundToKHR(dueUSD, rate)

		var cashUSD, chgUSD float64
		var cashKHR, chgKHR int64

		switch currency {
		case models.CurrencyUSD:
			cashUSD = tendered
			cashKHR = roundToKHR(cashUSD, rate)
			if cashUSD+1e-9 < dueUSD {
				return ErrInsufficientCash
			}
			chgUSD = round2(cashUSD - dueUSD)
			chgKHR = roundToKHR(chgUSD, rate)
		case models.CurrencyKHR:
			cashKHR = int64(decimal.NewFromFloat(tendered).Round(0).IntPart())
			cashUSD = round2(float64(cashKHR) / rate)
			if cashKHR < dueKHR {
				return ErrInsufficientCash
			}
			chgKHR = cashKHR - dueKHR
			chgUSD = round2(float64(chgKHR) / rate)
		default:
			return fmt.Errorf("unsupported currency: %s", currency)
		}

		now := time.Now()
		method := models.PaymentMethodCash
		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", orderID, models.OrderStatusPending).
			Updates(map[string]interface{}{
				"status":            models.OrderStatusCompleted,
				"payment_method":    method,
				"tendered_currency": currency,
				"cash_tendered_usd": cashUSD,
				"cash_tendered_khr": cashKHR,
				"change_usd":        chgUSD,
				"change_khr":        chgKHR,
				"paid_at":           now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrOrderNotPending
		}

		result = CashPayment{
			DueUSD:      dueUSD,
			DueKHR:      dueKHR,
			TenderedUSD: cashUSD,
			TenderedKHR: cashKHR,
			ChangeUSD:   chgUSD,
			ChangeKHR:   chgKHR,
		}

		return tx.Preload("User", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
			Preload("Discount").
			Preload("OrderItems.MenuItem").
			Preload("OrderItems.MenuItemVariant").
			First(&order, orderID).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return &order, &result, nil
}

// MarkCompleted stamps a pending order completed with the given method.
// Used by manual payment recording and Bakong settlement; the conditional
// update guarantees an order completes exactly once.
func (s *OrderService) MarkCompleted(tx *gorm.DB, orderID uint, method string) error {
	res := tx.Model(&models.Order{}).
		Where("id = ? AND status = ?", orderID, models.OrderStatusPending).
		Updates(map[string]interface{}{
			"status":         models.OrderStatusCompleted,
			"payment_method": method,
			"paid_at":        time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrOrderNotPending
	}
	return nil
}

// Reorder rebuilds a pending order from the user's three most-ordered
// completed items, one of each, through the normal create path.
func (s *OrderService) Reorder(userID uint, role string) (*models.Order, error) {
	var top []struct {
		MenuItemID uint
	}
	err := s.DB.Raw(`
		SELECT oi.menu_item_id
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.user_id = ? AND o.status = ?
		GROUP BY oi.menu_item_id
		ORDER BY COUNT(*) DESC
		LIMIT 3
	`, userID, models.OrderStatusCompleted).Scan(&top).Error
	if err != nil {
		return nil, err
	}
	if len(top) == 0 {
		return nil, ErrNoOrderHistory
	}

	lines := make([]OrderLine, 0, len(top))
	for _, row := range top {
		lines = append(lines, OrderLine{MenuItemID: row.MenuItemID, Quantity: 1})
	}
	return s.Create(CreateOrderInput{UserID: &userID, Role: role, Lines: lines})
}

const orderCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateOrderCode returns a short random human-readable token, e.g.
// ORD-7K2Q9XMB.
func GenerateOrderCode() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand only fails when the OS entropy source is broken.
		panic(err)
	}
	for i, b := range buf {
		buf[i] = orderCodeAlphabet[int(b)%len(orderCodeAlphabet)]
	}
	return "ORD-" + string(buf)
}

func round2(v float64) float64 {
	return f64(decimal.NewFromFloat(v).Round(2))
}

func roundToKHR(usd, rate float64) int64 {
	return decimal.NewFromFloat(usd).Mul(decimal.NewFromFloat(rate)).Round(0).IntPart()
}
