package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/salesboard/internal/services"
)

type changePasswordInput struct {
	CurrentPassword string `json:"current_password" form:"current_password"`
	NewPassword     string `json:"new_password" form:"new_password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}

func (handler *Handler) ShowSettings(c *fiber.Ctx) error {
	messages := currentMessages(c)
	flash := handler.popFlashCookie(c)
	return handler.render(c, "settings", fiber.Map{
		"Title":       localizedPageTitle(messages, "meta.title.settings", "Sales Board | Settings"),
		"ErrorText":   localizedError(messages, flash.SettingsError),
		"SuccessText": localizedSuccess(messages, flash.SettingsSuccess),
	})
}

func (handler *Handler) respondSettingsError(c *fiber.Ctx, status int, message string) error {
	if acceptsJSON(c) || isHTMX(c) {
		return apiError(c, status, message)
	}
	handler.setFlashCookie(c, FlashPayload{SettingsError: message})
	return c.Redirect("/settings", fiber.StatusSeeOther)
}

func (handler *Handler) ChangePassword(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := changePasswordInput{}
	if err := c.BodyParser(&input); err != nil {
		return handler.respondSettingsError(c, fiber.StatusBadRequest, "invalid input")
	}
	if input.CurrentPassword == "" || strings.TrimSpace(input.NewPassword) == "" {
		return handler.respondSettingsError(c, fiber.StatusBadRequest, "invalid input")
	}
	if input.NewPassword != input.ConfirmPassword {
		return handler.respondSettingsError(c, fiber.StatusBadRequest, "password mismatch")
	}

	err := handler.authService.ChangePassword(user.ID, input.CurrentPassword, input.NewPassword)
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		return handler.respondSettingsError(c, fiber.StatusUnauthorized, "invalid current password")
	case errors.Is(err, services.ErrInvalidUserInput):
		return handler.respondSettingsError(c, fiber.StatusBadRequest, "invalid input")
	case err != nil:
		return apiError(c, fiber.StatusInternalServerError, "failed to update password")
	}

	if acceptsJSON(c) {
		return c.JSON(fiber.Map{"ok": true})
	}
	handler.setFlashCookie(c, FlashPayload{SettingsSuccess: "password_changed"})
	return redirectOrJSON(c, "/settings")
}
