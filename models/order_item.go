package models

import "time"

// OrderItem captures a price snapshot at order time; Price and Subtotal are
// never recomputed afterwards.
type OrderItem struct {
	ID                uint             `gorm:"primaryKey" json:"id"`
	OrderID           uint             `gorm:"not null;index" json:"order_id"`
	Order             *Order           `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	MenuItemID        uint             `gorm:"not null;index" json:"menu_item_id"`
	MenuItem          *MenuItem        `gorm:"foreignKey:MenuItemID" json:"menu_item,omitempty"`
	MenuItemVariantID *uint            `gorm:"index" json:"menu_item_variant_id,omitempty"`
	MenuItemVariant   *MenuItemVariant `gorm:"foreignKey:MenuItemVariantID" json:"menu_item_variant,omitempty"`
	Quantity          int              `gorm:"not null" json:"quantity"`
	Price             float64          `gorm:"type:decimal(10,2);not null" json:"price"`
	Subtotal          float64          `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	Customizations    *string          `gorm:"type:text" json:"customizations,omitempty"`
	Note              *string          `gorm:"type:text" json:"note,omitempty"`
	CreatedAt         time.Time        `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time        `gorm:"not null" json:"updated_at"`
}
