package api

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// FlashPayload survives exactly one redirect.
type FlashPayload struct {
	AuthError       string              `json:"auth_error,omitempty"`
	LoginValue      string              `json:"login_value,omitempty"`
	UploadError     string              `json:"upload_error,omitempty"`
	UploadDetail    string              `json:"upload_detail,omitempty"`
	UploadSummary   *uploadSummaryFlash `json:"upload_summary,omitempty"`
	SettingsError   string              `json:"settings_error,omitempty"`
	SettingsSuccess string              `json:"settings_success,omitempty"`
}

// uploadSummaryFlash is the part of an import summary shown after redirect.
type uploadSummaryFlash struct {
	TotalRows      int      `json:"total_rows"`
	UniqueProducts int      `json:"unique_products"`
	TotalSales     float64  `json:"total_sales"`
	DateFrom       string   `json:"date_from,omitempty"`
	DateTo         string   `json:"date_to,omitempty"`
	Warnings       []string `json:"warnings,omitempty"`
}

func (payload FlashPayload) normalized() FlashPayload {
	payload.AuthError = strings.TrimSpace(payload.AuthError)
	payload.LoginValue = strings.TrimSpace(payload.LoginValue)
	payload.UploadError = strings.TrimSpace(payload.UploadError)
	payload.UploadDetail = strings.TrimSpace(payload.UploadDetail)
	payload.SettingsError = strings.TrimSpace(payload.SettingsError)
	payload.SettingsSuccess = strings.TrimSpace(payload.SettingsSuccess)
	return payload
}

func (payload FlashPayload) empty() bool {
	return payload.AuthError == "" &&
		payload.LoginValue == "" &&
		payload.UploadError == "" &&
		payload.UploadDetail == "" &&
		payload.UploadSummary == nil &&
		payload.SettingsError == "" &&
		payload.SettingsSuccess == ""
}

func (handler *Handler) setFlashCookie(c *fiber.Ctx, payload FlashPayload) {
	payload = payload.normalized()
	if payload.empty() {
		handler.clearFlashCookie(c)
		return
	}

	serialized, err := json.Marshal(payload)
	if err != nil {
		return
	}

	c.Cookie(&fiber.Cookie{
		Name:     flashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString(serialized),
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  time.Now().Add(5 * time.Minute),
	})
}

func (handler *Handler) popFlashCookie(c *fiber.Ctx) FlashPayload {
	raw := strings.TrimSpace(c.Cookies(flashCookieName))
	if raw == "" {
		return FlashPayload{}
	}
	handler.clearFlashCookie(c)

	decoded, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return FlashPayload{}
	}
	payload := FlashPayload{}
	if err := json.Unmarshal(decoded, &payload); err != nil {
		return FlashPayload{}
	}
	return payload.normalized()
}

func (handler *Handler) clearFlashCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}
