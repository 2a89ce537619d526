package models

import "time"

// Recipe ties a sellable entity to an ingredient consumption. Exactly one of
// MenuItemID / MenuItemVariantID is set; the write path enforces it.
type Recipe struct {
	ID                uint             `gorm:"primaryKey" json:"id"`
	MenuItemID        *uint            `gorm:"index" json:"menu_item_id,omitempty"`
	MenuItem          *MenuItem        `gorm:"foreignKey:MenuItemID" json:"menu_item,omitempty"`
	MenuItemVariantID *uint            `gorm:"index" json:"menu_item_variant_id,omitempty"`
	MenuItemVariant   *MenuItemVariant `gorm:"foreignKey:MenuItemVariantID" json:"menu_item_variant,omitempty"`
	IngredientID      uint             `gorm:"not null;index" json:"ingredient_id"`
	Ingredient        *Ingredient      `gorm:"foreignKey:IngredientID" json:"ingredient,omitempty"`
	Quantity          float64          `gorm:"type:decimal(10,3);not null" json:"quantity"`
	CreatedAt         time.Time        `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time        `gorm:"not null" json:"updated_at"`
}
