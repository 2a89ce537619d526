package models

import (
	"errors"
	"strconv"
	"time"

	"gorm.io/gorm"
)

// Setting keys used by the order/payment path.
const (
	SettingTaxRate         = "tax_rate"
	SettingExchangeRate    = "exchange_rate_usd_khr"
	SettingShopName        = "shop_name"
	SettingBakongMachineID = "bakong_machine_id"
)

type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// GetSetting fetches a settings value, falling back to def when the key is
// absent. Settings are read per request; eventual consistency is fine here.
func GetSetting(db *gorm.DB, key, def string) string {
	var s Setting
	if err := db.Where("`key` = ?", key).First(&s).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return def
		}
		return def
	}
	if s.Value == "" {
		return def
	}
	return s.Value
}

// GetSettingFloat is GetSetting for numeric settings (tax rate, exchange rate).
func GetSettingFloat(db *gorm.DB, key string, def float64) float64 {
	raw := GetSetting(db, key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return v
}
