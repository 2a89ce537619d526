package models

import "time"

// Discount is a promo code: percentage XOR fixed amount, optionally
// time-boxed by ExpiresAt.
type Discount struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Code       string     `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	Percentage *float64   `gorm:"type:decimal(5,2)" json:"percentage,omitempty"`
	Amount     *float64   `gorm:"type:decimal(10,2)" json:"amount,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	Active     bool       `gorm:"not null;default:true" json:"active"`
	CreatedAt  time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"not null" json:"updated_at"`
}

// Usable reports whether the code can be applied right now.
func (d *Discount) Usable(now time.Time) bool {
	if !d.Active {
		return false
	}
	if d.ExpiresAt != nil && d.ExpiresAt.Before(now) {
		return false
	}
	return true
}
