package services

import (
	"bytes"
	"crypto/md5"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/cafe-eden/pos-app/config"
)

// BakongConfig holds the KHQR payment provider configuration.
type BakongConfig struct {
	BaseURL    string
	Token      string
	MerchantID string
	BankBIC    string
}

// BakongService talks to the Bakong open API: QR generation is local (the
// payload is deterministic), settlement checks go over HTTP with a bounded
// timeout so verification can never hang an order.
type BakongService struct {
	config     *BakongConfig
	httpClient *http.Client
}

var (
	bakongService *BakongService
	bakongOnce    sync.Once
)

// GetBakongService returns the process-wide instance configured from the
// environment.
func GetBakongService() *BakongService {
	bakongOnce.Do(func() {
		bakongService = NewBakongService(&BakongConfig{
			BaseURL:    config.BakongBaseURL(),
			Token:      config.BakongToken(),
			MerchantID: config.BakongMerchantID(),
			BankBIC:    config.BakongBankBIC(),
		})
	})
	return bakongService
}

func NewBakongService(cfg *BakongConfig) *BakongService {
	return &BakongService{
		config: cfg,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// ValidateConfig checks the provider credentials needed for verification.
func (bs *BakongService) ValidateConfig() error {
	if bs.config.BaseURL == "" {
		return fmt.Errorf("BAKONG_BASE_URL is not set")
	}
	if bs.config.Token == "" {
		return fmt.Errorf("BAKONG_FIXED_TOKEN is not set")
	}
	return nil
}

// QRResult is a generated payment attempt: the payload to render, its MD5
// digest (the provider's idempotent lookup key) and the unique bill number.
type QRResult struct {
	QRString   string `json:"qr_string"`
	MD5        string `json:"md5"`
	BillNumber string `json:"bill_number"`
}

// GenerateQR builds a merchant KHQR payload for the given amount and returns
// the payload, its content hash and the bill number embedded in it.
func (bs *BakongService) GenerateQR(amount float64, currency, merchantID, shopName string) (*QRResult, error) {
	if merchantID == "" {
		merchantID = bs.config.MerchantID
	}
	if merchantID == "" {
		return nil, fmt.Errorf("merchant ID is not configured")
	}

	bill := NewBillNumber()
	qr := GenerateKHQR(MerchantInfo{
		AccountID:     merchantID,
		MerchantName:  shopName,
		City:          "Phnom Penh",
		MerchantID:    merchantID,
		AcquiringBIC:  bs.config.BankBIC,
		Amount:        amount,
		Currency:      currency,
		BillNumber:    bill,
		StoreLabel:    shopName,
		TerminalLabel: "POS-01",
	})

	sum := md5.Sum([]byte(qr))
	return &QRResult{
		QRString:   qr,
		MD5:        hex.EncodeToString(sum[:]),
		BillNumber: bill,
	}, nil
}

// SettlementResult is the provider's answer to "has this hash settled?".
type SettlementResult struct {
	Settled       bool
	FromAccountID string
	ToAccountID   string
}

// CheckTransactionByMD5 asks the provider whether the transaction identified
// by the payload hash has settled.
func (bs *BakongService) CheckTransactionByMD5(md5Hash string) (*SettlementResult, error) {
	payload, err := json.Marshal(map[string]string{"md5": md5Hash})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost,
		strings.TrimRight(bs.config.BaseURL, "/")+"/v1/check_transaction_by_md5",
		bytes.NewBuffer(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+bs.config.Token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := bs.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bakong md5 check: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bakong API error (%d): %s", resp.StatusCode, string(body))
	}

	var parsed struct {
		ResponseCode int `json:"responseCode"`
		Data         *struct {
			FromAccountID string `json:"fromAccountId"`
			ToAccountID   string `json:"toAccountId"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("bakong md5 check: decoding response: %w", err)
	}

	result := &SettlementResult{}
	if parsed.ResponseCode == 0 && parsed.Data != nil {
		result.Settled = true
		result.FromAccountID = parsed.Data.FromAccountID
		result.ToAccountID = parsed.Data.ToAccountID
	}
	return result, nil
}

// CheckStatusByBill asks the provider for the status of a bill number and
// maps it to an internal transaction status.
func (bs *BakongService) CheckStatusByBill(billNumber string) (string, error) {
	req, err := http.NewRequest(http.MethodGet,
		strings.TrimRight(bs.config.BaseURL, "/")+"/v1/transactions/status/"+billNumber, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+bs.config.Token)
	req.Header.Set("Accept", "application/json")

	resp, err := bs.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("bakong status check: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("bakong API error (%d): %s", resp.StatusCode, string(body))
	}

	var parsed struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", err
	}
	return MapProviderStatus(parsed.Status), nil
}

// MapProviderStatus normalizes provider statuses to the internal set.
func MapProviderStatus(status string) string {
	switch strings.ToLower(status) {
	case "success", "settled", "completed":
		return "success"
	case "pending", "created":
		return "pending"
	case "failed", "expired", "rejected":
		return "failed"
	default:
		return "unknown"
	}
}

// NewBillNumber returns a unique bill identifier, e.g. txn_9f86d081a3b2.
func NewBillNumber() string {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return "txn_" + hex.EncodeToString(buf)
}
