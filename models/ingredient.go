package models

import "time"

type Ingredient struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Unit        string    `gorm:"type:varchar(50);not null" json:"unit"`
	LowAlertQty float64   `gorm:"type:decimal(10,3);not null;default:0" json:"low_alert_qty"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}
