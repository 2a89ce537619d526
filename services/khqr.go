package services

import (
	"fmt"
	"strings"
)

// MerchantInfo describes the KHQR merchant-presented payload fields.
type MerchantInfo struct {
	AccountID     string
	MerchantName  string
	City          string
	MerchantID    string
	AcquiringBIC  string
	Amount        float64
	Currency      string // USD or KHR
	BillNumber    string
	StoreLabel    string
	TerminalLabel string
}

// EMVCo numeric currency codes used by KHQR.
const (
	currencyCodeKHR = "116"
	currencyCodeUSD = "840"
)

// GenerateKHQR builds an EMVCo merchant-presented QR payload (dynamic, with
// amount) and appends the CRC-16/CCITT-FALSE checksum tag.
func GenerateKHQR(info MerchantInfo) string {
	currency := currencyCodeKHR
	if strings.EqualFold(info.Currency, "USD") {
		currency = currencyCodeUSD
	}

	merchantAccount := tlv("00", clip(info.AccountID, 32)) +
		tlv("01", info.MerchantID) +
		tlv("02", info.AcquiringBIC)

	additional := tlv("01", clip(info.BillNumber, 25))
	if info.StoreLabel != "" {
		additional += tlv("03", clip(info.StoreLabel, 25))
	}
	if info.TerminalLabel != "" {
		additional += tlv("07", clip(info.TerminalLabel, 25))
	}

	payload := tlv("00", "01") + // payload format indicator
		tlv("01", "12") + // dynamic QR
		tlv("29", merchantAccount) +
		tlv("52", "5999") + // MCC: merchant, other
		tlv("53", currency) +
		tlv("54", trimAmount(info.Amount)) +
		tlv("58", "KH") +
		tlv("59", clip(info.MerchantName, 25)) +
		tlv("60", clip(info.City, 15)) +
		tlv("62", additional)

	payload += "6304" // CRC tag + length, included in the checksum input
	return payload + fmt.Sprintf("%04X", crc16(payload))
}

// tlv encodes one tag-length-value element. The length field is exactly two
// digits, so values are capped at 99 bytes.
func tlv(tag, value string) string {
	value = clip(value, 99)
	return fmt.Sprintf("%s%02d%s", tag, len(value), value)
}

func clip(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}

func trimAmount(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

// crc16 is CRC-16/CCITT-FALSE (poly 0x1021, init 0xFFFF), per the EMVCo QR
// specification.
func crc16(s string) uint16 {
	crc := uint16(0xFFFF)
	for i := 0; i < len(s); i++ {
		crc ^= uint16(s[i]) << 8
		for bit := 0; bit < 8; bit++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
