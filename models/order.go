package models

import "time"

// Order lifecycle. pending is the only non-terminal state: payment moves it
// to completed, cancellation (stock restored) to cancelled.
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

const (
	CurrencyUSD = "USD"
	CurrencyKHR = "KHR"
)

type Order struct {
	ID               uint        `gorm:"primaryKey" json:"id"`
	OrderCode        string      `gorm:"type:varchar(20);uniqueIndex;not null" json:"order_code"`
	UserID           *uint       `gorm:"index" json:"user_id,omitempty"`
	User             *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Status           string      `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	TotalAmount      float64     `gorm:"type:decimal(10,2);not null;default:0" json:"total_amount"`
	DiscountID       *uint       `gorm:"index" json:"discount_id,omitempty"`
	Discount         *Discount   `gorm:"foreignKey:DiscountID" json:"discount,omitempty"`
	DiscountAmount   float64     `gorm:"type:decimal(10,2);not null;default:0" json:"discount_amount"`
	TaxRate          float64     `gorm:"type:decimal(5,2);not null;default:0" json:"tax_rate"`
	TaxAmount        float64     `gorm:"type:decimal(10,2);not null;default:0" json:"tax_amount"`
	ExchangeRate     float64     `gorm:"type:decimal(10,2);not null;default:4100" json:"exchange_rate"`
	TotalKHR         int64       `gorm:"not null;default:0" json:"total_khr"`
	PaymentMethod    *string     `gorm:"type:varchar(20)" json:"payment_method,omitempty"`
	TenderedCurrency *string     `gorm:"type:varchar(3)" json:"tendered_currency,omitempty"`
	CashTenderedUSD  *float64    `gorm:"type:decimal(10,2)" json:"cash_tendered_usd,omitempty"`
	CashTenderedKHR  *int64      `json:"cash_tendered_khr,omitempty"`
	ChangeUSD        *float64    `gorm:"type:decimal(10,2)" json:"change_usd,omitempty"`
	ChangeKHR        *int64      `json:"change_khr,omitempty"`
	PaidAt           *time.Time  `json:"paid_at,omitempty"`
	OrderItems       []OrderItem `gorm:"foreignKey:OrderID" json:"order_items,omitempty"`
	CreatedAt        time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time   `gorm:"not null" json:"updated_at"`
}
