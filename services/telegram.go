package services

import (
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/cafe-eden/pos-app/utils"
)

var telegramClient = &http.Client{Timeout: 10 * time.Second}

// SendTelegramAlert posts an operator notification. Missing credentials or
// delivery failures are non-fatal: alerts are best effort.
func SendTelegramAlert(message string) {
	botToken := os.Getenv("TELEGRAM_BOT_TOKEN")
	chatID := os.Getenv("TELEGRAM_CHAT_ID")
	if botToken == "" || chatID == "" {
		return
	}

	resp, err := telegramClient.PostForm(
		"https://api.telegram.org/bot"+botToken+"/sendMessage",
		url.Values{
			"chat_id":    {chatID},
			"text":       {message},
			"parse_mode": {"HTML"},
		})
	if err != nil {
		utils.ErrorLogger.Printf("Telegram alert failed: %v", err)
		return
	}
	resp.Body.Close()
}
