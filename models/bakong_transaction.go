package models

import "time"

const (
	BakongStatusPending = "pending"
	BakongStatusSuccess = "success"
	BakongStatusFailed  = "failed"
)

// BakongTransaction is one KHQR payment attempt. MD5Hash is the digest of
// the QR payload and doubles as the idempotent lookup key against the
// provider; sender/receiver accounts are captured once the provider
// confirms settlement.
type BakongTransaction struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	BillNumber  string     `gorm:"type:varchar(40);uniqueIndex;not null" json:"bill_number"`
	OrderID     *uint      `gorm:"index" json:"order_id,omitempty"`
	Order       *Order     `gorm:"foreignKey:OrderID" json:"order,omitempty"`
	Amount      float64    `gorm:"type:decimal(10,2);not null" json:"amount"`
	Currency    string     `gorm:"type:varchar(3);not null" json:"currency"`
	QRString    string     `gorm:"type:text;not null" json:"qr_string"`
	MD5Hash     string     `gorm:"type:varchar(32);index;not null" json:"md5_hash"`
	Status      string     `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	SendFrom    *string    `gorm:"type:varchar(100)" json:"send_from,omitempty"`
	ReceiveTo   *string    `gorm:"type:varchar(100)" json:"receive_to,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null" json:"updated_at"`
}
