package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Discount types shared by MenuItem, MenuItemVariant and Discount.
const (
	DiscountTypePercent = "percent"
	DiscountTypeFixed   = "fixed"
)

type MenuItem struct {
	ID               uint              `gorm:"primaryKey" json:"id"`
	CategoryID       *uint             `gorm:"index" json:"category_id"`
	Category         *Category         `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Name             string            `gorm:"type:varchar(255);not null" json:"name"`
	Price            float64           `gorm:"type:decimal(10,2);not null" json:"price"`
	Description      string            `gorm:"type:text" json:"description"`
	Active           bool              `gorm:"not null;default:true" json:"active"`
	DiscountType     *string           `gorm:"type:varchar(10)" json:"discount_type,omitempty"`
	DiscountValue    *float64          `gorm:"type:decimal(10,2)" json:"discount_value,omitempty"`
	DiscountStartsAt *time.Time        `json:"discount_starts_at,omitempty"`
	DiscountEndsAt   *time.Time        `json:"discount_ends_at,omitempty"`
	Variants         []MenuItemVariant `gorm:"foreignKey:MenuItemID" json:"variants,omitempty"`
	Recipes          []Recipe          `gorm:"foreignKey:MenuItemID" json:"recipes,omitempty"`
	CreatedAt        time.Time         `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time         `gorm:"not null" json:"updated_at"`
	DeletedAt        gorm.DeletedAt    `gorm:"index" json:"deleted_at,omitempty"`
}

// HasActiveDiscount reports whether the item's own discount applies right now.
func (m *MenuItem) HasActiveDiscount(now time.Time) bool {
	return discountActive(m.DiscountType, m.DiscountValue, m.DiscountStartsAt, m.DiscountEndsAt, now)
}

// DiscountAmount is the per-unit reduction from the item's own discount.
func (m *MenuItem) DiscountAmount(now time.Time) float64 {
	if !m.HasActiveDiscount(now) {
		return 0
	}
	return discountOffPrice(*m.DiscountType, *m.DiscountValue, m.Price)
}

// FinalPrice is the unit price after the item's active discount, floored at 0.
func (m *MenuItem) FinalPrice(now time.Time) float64 {
	return finalPrice(m.Price, m.DiscountAmount(now))
}

func discountActive(dtype *string, value *float64, startsAt, endsAt *time.Time, now time.Time) bool {
	if dtype == nil || value == nil || *value <= 0 {
		return false
	}
	if startsAt != nil && now.Before(*startsAt) {
		return false
	}
	if endsAt != nil && now.After(*endsAt) {
		return false
	}
	return true
}

func discountOffPrice(dtype string, value, price float64) float64 {
	p := decimal.NewFromFloat(price)
	if dtype == DiscountTypePercent {
		off := p.Mul(decimal.NewFromFloat(value)).Div(decimal.NewFromInt(100)).Round(2)
		f, _ := off.Float64()
		return f
	}
	if value > price {
		return price
	}
	return value
}

func finalPrice(price, off float64) float64 {
	final := decimal.NewFromFloat(price).Sub(decimal.NewFromFloat(off)).Round(2)
	if final.IsNegative() {
		return 0
	}
	f, _ := final.Float64()
	return f
}
