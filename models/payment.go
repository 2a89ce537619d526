package models

import "time"

const (
	PaymentMethodCash     = "cash"
	PaymentMethodStaticQR = "static_qr"
	PaymentMethodKHQR     = "khqr"
	PaymentMethodABA      = "aba"
	PaymentMethodCard     = "card"
)

// Payment is one payment attempt against an order; only one ever reaches
// approved because the order completes exactly once.
type Payment struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	OrderID       uint         `gorm:"not null;index" json:"order_id"`
	Order         *Order       `gorm:"foreignKey:OrderID" json:"order,omitempty"`
	Method        string       `gorm:"type:varchar(20);not null" json:"method"`
	Amount        float64      `gorm:"type:decimal(10,2);not null" json:"amount"`
	TaxAmount     float64      `gorm:"type:decimal(10,2);not null;default:0" json:"tax_amount"`
	ExchangeRate  *float64     `gorm:"type:decimal(10,2)" json:"exchange_rate,omitempty"`
	TotalKHR      *int64       `json:"total_khr,omitempty"`
	TransactionID string       `gorm:"type:varchar(64);index" json:"transaction_id"`
	Status        string       `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	ConfirmedAt   *time.Time   `json:"confirmed_at,omitempty"`
	Logs          []PaymentLog `gorm:"foreignKey:PaymentID" json:"logs,omitempty"`
	CreatedAt     time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"not null" json:"updated_at"`
}

// PaymentLog keeps free-text reconciliation notes and raw provider payloads.
type PaymentLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PaymentID uint      `gorm:"not null;index" json:"payment_id"`
	RawData   string    `gorm:"type:text;not null" json:"raw_data"`
	Source    string    `gorm:"type:varchar(50);not null" json:"source"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
