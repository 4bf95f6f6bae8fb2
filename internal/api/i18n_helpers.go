package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

var errorKeys = map[string]string{
	"invalid input":            "auth.error.invalid_input",
	"invalid credentials":      "auth.error.invalid_credentials",
	"user already exists":      "auth.error.user_exists",
	"password mismatch":        "auth.error.password_mismatch",
	"too many login attempts":  "auth.error.too_many_login_attempts",
	"invalid current password": "settings.error.invalid_current_password",
	"file is required":         "upload.error.no_file",
	"unsupported file type":    "upload.error.unsupported",
	"missing required columns": "upload.error.missing_columns",
	"no rows to import":        "upload.error.empty",
	"failed to import file":    "upload.error.generic",
}

var successKeys = map[string]string{
	"password_changed": "settings.success.password_changed",
}

func translateMessage(messages map[string]string, key string) string {
	if key == "" {
		return ""
	}
	if messages != nil {
		if value, ok := messages[key]; ok && strings.TrimSpace(value) != "" {
			return value
		}
	}
	return key
}

func errorTranslationKey(message string) string {
	return errorKeys[strings.ToLower(strings.TrimSpace(message))]
}

// localizedError returns the translated text for a known error message and
// the message itself otherwise.
func localizedError(messages map[string]string, message string) string {
	if message == "" {
		return ""
	}
	key := errorTranslationKey(message)
	if key == "" {
		return message
	}
	return translateMessage(messages, key)
}

func localizedSuccess(messages map[string]string, status string) string {
	key, ok := successKeys[strings.ToLower(strings.TrimSpace(status))]
	if !ok {
		return ""
	}
	return translateMessage(messages, key)
}

func currentLanguage(c *fiber.Ctx) string {
	language, ok := c.Locals(contextLanguageKey).(string)
	if !ok || strings.TrimSpace(language) == "" {
		return ""
	}
	return language
}

func currentMessages(c *fiber.Ctx) map[string]string {
	messages, ok := c.Locals(contextMessagesKey).(map[string]string)
	if !ok || messages == nil {
		return map[string]string{}
	}
	return messages
}

func (handler *Handler) requestLanguage(c *fiber.Ctx) string {
	if language := currentLanguage(c); language != "" {
		return language
	}
	return handler.i18n.DefaultLanguage()
}

func (handler *Handler) withTemplateDefaults(c *fiber.Ctx, data fiber.Map) fiber.Map {
	if data == nil {
		data = fiber.Map{}
	}

	messages := currentMessages(c)
	if _, ok := data["Messages"]; !ok {
		data["Messages"] = messages
	}
	if _, ok := data["Lang"]; !ok {
		data["Lang"] = handler.requestLanguage(c)
	}
	if _, ok := data["Dir"]; !ok {
		direction := "rtl"
		if data["Lang"] != "ar" {
			direction = "ltr"
		}
		data["Dir"] = direction
	}
	if _, ok := data["CurrentPath"]; !ok {
		data["CurrentPath"] = currentPathWithQuery(c)
	}
	if _, ok := data["CSRFToken"]; !ok {
		data["CSRFToken"] = csrfToken(c)
	}
	if _, ok := data["CurrentUser"]; !ok {
		if user, found := currentUser(c); found {
			data["CurrentUser"] = user
		}
	}
	if _, ok := data["NoDataLabel"]; !ok {
		noData := translateMessage(messages, "common.not_available")
		if noData == "common.not_available" {
			noData = "-"
		}
		data["NoDataLabel"] = noData
	}
	return data
}

func currentPathWithQuery(c *fiber.Ctx) string {
	path := string(c.Request().URI().RequestURI())
	if path == "" {
		return c.Path()
	}
	return path
}
