package models

import (
	"time"

	"gorm.io/gorm"
)

type MenuItemVariant struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	MenuItemID       uint           `gorm:"not null;index" json:"menu_item_id"`
	MenuItem         *MenuItem      `gorm:"foreignKey:MenuItemID" json:"menu_item,omitempty"`
	Name             string         `gorm:"type:varchar(255);not null" json:"name"`
	Price            float64        `gorm:"type:decimal(10,2);not null" json:"price"`
	SKU              string         `gorm:"type:varchar(64)" json:"sku"`
	Position         int            `gorm:"not null;default:0" json:"position"`
	IsActive         bool           `gorm:"not null;default:true" json:"is_active"`
	DiscountType     *string        `gorm:"type:varchar(10)" json:"discount_type,omitempty"`
	DiscountValue    *float64       `gorm:"type:decimal(10,2)" json:"discount_value,omitempty"`
	DiscountStartsAt *time.Time     `json:"discount_starts_at,omitempty"`
	DiscountEndsAt   *time.Time     `json:"discount_ends_at,omitempty"`
	Recipes          []Recipe       `gorm:"foreignKey:MenuItemVariantID" json:"recipes,omitempty"`
	CreatedAt        time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// HasActiveDiscount reports whether the variant's own discount applies right now.
func (v *MenuItemVariant) HasActiveDiscount(now time.Time) bool {
	return discountActive(v.DiscountType, v.DiscountValue, v.DiscountStartsAt, v.DiscountEndsAt, now)
}

// DiscountAmount is the per-unit reduction against the variant price. The
// variant's own discount wins; otherwise the parent item's discount rules
// apply to the variant price. Requires MenuItem to be preloaded for the
// fallback to take effect.
func (v *MenuItemVariant) DiscountAmount(now time.Time) float64 {
	if v.HasActiveDiscount(now) {
		return discountOffPrice(*v.DiscountType, *v.DiscountValue, v.Price)
	}
	if v.MenuItem != nil && v.MenuItem.HasActiveDiscount(now) {
		return discountOffPrice(*v.MenuItem.DiscountType, *v.MenuItem.DiscountValue, v.Price)
	}
	return 0
}

// FinalPrice is the variant unit price after discount, floored at 0.
func (v *MenuItemVariant) FinalPrice(now time.Time) float64 {
	return finalPrice(v.Price, v.DiscountAmount(now))
}
