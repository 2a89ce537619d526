package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCRC16CCITTFalse(t *testing.T) {
	// Standard check value for "123456789" under CRC-16/CCITT-FALSE.
	assert.Equal(t, uint16(0x29B1), crc16("123456789"))
}

func TestTLVEncoding(t *testing.T) {
	assert.Equal(t, "0002KH", tlv("00", "KH"))
	assert.Equal(t, "540610.5", tlv("54", "10.5"))
}

func TestTLVCapsLengthAtTwoDigits(t *testing.T) {
	long := strings.Repeat("x", 150)
	out := tlv("62", long)
	assert.Equal(t, "6299", out[:4], "length field stays two digits")
	assert.Len(t, out, 4+99)
}

func TestGenerateKHQRClipsSettingsControlledFields(t *testing.T) {
	qr := GenerateKHQR(MerchantInfo{
		AccountID:    strings.Repeat("a", 40) + "@bank",
		MerchantName: "Cafe Eden",
		City:         "Phnom Penh",
		MerchantID:   "merchant@bank",
		AcquiringBIC: "CADIKHPP",
		Amount:       1,
		Currency:     "KHR",
		BillNumber:   "txn_abc123",
		StoreLabel:   strings.Repeat("Cafe Eden ", 5),
	})

	assert.Contains(t, qr, "0032"+strings.Repeat("a", 32), "account id capped at 32")
	assert.Contains(t, qr, "0325"+strings.Repeat("Cafe Eden ", 2)+"Cafe ", "store label capped at 25")
	assert.Equal(t, "6304", qr[len(qr)-8:len(qr)-4])
}

func TestTrimAmount(t *testing.T) {
	assert.Equal(t, "10.5", trimAmount(10.50))
	assert.Equal(t, "10", trimAmount(10.00))
	assert.Equal(t, "0.25", trimAmount(0.25))
}

func TestGenerateKHQRStructure(t *testing.T) {
	qr := GenerateKHQR(MerchantInfo{
		AccountID:     "merchant@bank",
		MerchantName:  "Cafe Eden",
		City:          "Phnom Penh",
		MerchantID:    "merchant@bank",
		AcquiringBIC:  "CADIKHPP",
		Amount:        5.50,
		Currency:      "USD",
		BillNumber:    "txn_abc123",
		StoreLabel:    "Cafe Eden",
		TerminalLabel: "POS-01",
	})

	assert.True(t, strings.HasPrefix(qr, "000201"), "payload format indicator first")
	assert.Contains(t, qr, "010212", "dynamic QR indicator")
	assert.Contains(t, qr, "5303840", "USD numeric currency code")
	assert.Contains(t, qr, "54035.5", "amount tag")
	assert.Contains(t, qr, "5802KH", "country code")
	assert.Contains(t, qr, "txn_abc123")

	// The payload ends in the CRC tag followed by 4 uppercase hex digits.
	assert.Equal(t, "6304", qr[len(qr)-8:len(qr)-4])
	assert.Regexp(t, "^[0-9A-F]{4}$", qr[len(qr)-4:])
}

func TestGenerateKHQRDefaultsToKHR(t *testing.T) {
	qr := GenerateKHQR(MerchantInfo{
		AccountID:    "merchant@bank",
		MerchantName: "Cafe Eden",
		City:         "Phnom Penh",
		MerchantID:   "merchant@bank",
		AcquiringBIC: "CADIKHPP",
		Amount:       4100,
		Currency:     "KHR",
		BillNumber:   "txn_def456",
	})
	assert.Contains(t, qr, "5303116", "KHR numeric currency code")
}

func TestGenerateKHQRClipsLongNames(t *testing.T) {
	qr := GenerateKHQR(MerchantInfo{
		AccountID:    "merchant@bank",
		MerchantName: "A Very Long Merchant Name That Exceeds The Limit",
		City:         "Phnom Penh",
		MerchantID:   "merchant@bank",
		AcquiringBIC: "CADIKHPP",
		Amount:       1,
		Currency:     "KHR",
		BillNumber:   "txn_xyz",
	})
	assert.Contains(t, qr, "5925A Very Long Merchant Name")
}

func TestNewBillNumber(t *testing.T) {
	bill := NewBillNumber()
	assert.True(t, strings.HasPrefix(bill, "txn_"))
	assert.Len(t, bill, 16)
	assert.NotEqual(t, bill, NewBillNumber())
}
