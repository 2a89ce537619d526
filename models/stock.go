package models

import "time"

// Stock holds the current quantity for an ingredient. Rows are created
// lazily on first deduction; quantity goes negative only when overselling
// is enabled.
type Stock struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	IngredientID uint        `gorm:"not null;uniqueIndex" json:"ingredient_id"`
	Ingredient   *Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient,omitempty"`
	Quantity     float64     `gorm:"type:decimal(12,3);not null;default:0" json:"quantity"`
	CreatedAt    time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time   `gorm:"not null" json:"updated_at"`
}
