package config

import (
	"fmt"
	"os"
	"strconv"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// InitDB opens the MySQL connection from DB_* environment variables.
func InitDB() (*gorm.DB, error) {
	host := getenv("DB_HOST", "127.0.0.1")
	port := getenv("DB_PORT", "3306")
	user := getenv("DB_USER", "root")
	pass := os.Getenv("DB_PASSWORD")
	name := getenv("DB_NAME", "cafe_eden")

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, name)

	return gorm.Open(mysql.Open(dsn), &gorm.Config{})
}

// AllowOversell reports whether stock may go negative. This is an explicit
// operational choice; it defaults to off.
func AllowOversell() bool {
	v, err := strconv.ParseBool(os.Getenv("POS_ALLOW_OVERSELL"))
	if err != nil {
		return false
	}
	return v
}

// Order rate limiting knobs for low-trust roles.
func OrderRateLimit() (maxAttempts int, windowSec int, cooldownSec int) {
	return getenvInt("ORDER_MAX_IN_WINDOW", 3),
		getenvInt("ORDER_WINDOW_SECONDS", 60),
		getenvInt("ORDER_COOLDOWN_SECONDS", 300)
}

// BakongBaseURL is the payment provider endpoint.
func BakongBaseURL() string {
	return getenv("BAKONG_BASE_URL", "https://api-bakong.nbc.gov.kh")
}

func BakongToken() string {
	return os.Getenv("BAKONG_FIXED_TOKEN")
}

// BakongMerchantID is the env fallback; the settings table value wins.
func BakongMerchantID() string {
	return os.Getenv("BAKONG_MERCHANT_ID")
}

func BakongBankBIC() string {
	return getenv("BAKONG_BANK_BIC", "CADIKHPP")
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return def
	}
	return v
}
