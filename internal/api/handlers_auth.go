package api

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/salesboard/internal/services"
)

type loginInput struct {
	Login      string `json:"login" form:"login"`
	Password   string `json:"password" form:"password"`
	RememberMe bool   `json:"remember_me" form:"remember_me"`
}

type registerInput struct {
	Username        string `json:"username" form:"username"`
	Email           string `json:"email" form:"email"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}

func (handler *Handler) redirectAuthenticatedUserIfPresent(c *fiber.Ctx) (bool, error) {
	if _, err := handler.authenticateRequest(c); err == nil {
		return true, c.Redirect("/dashboard", fiber.StatusSeeOther)
	}
	return false, nil
}

func (handler *Handler) ShowLoginPage(c *fiber.Ctx) error {
	if redirected, err := handler.redirectAuthenticatedUserIfPresent(c); redirected {
		return err
	}

	messages := currentMessages(c)
	flash := handler.popFlashCookie(c)
	return handler.render(c, "login", fiber.Map{
		"Title":      localizedPageTitle(messages, "meta.title.login", "Sales Board | Sign in"),
		"ErrorText":  localizedError(messages, flash.AuthError),
		"LoginValue": flash.LoginValue,
	})
}

func (handler *Handler) ShowRegisterPage(c *fiber.Ctx) error {
	if redirected, err := handler.redirectAuthenticatedUserIfPresent(c); redirected {
		return err
	}

	messages := currentMessages(c)
	flash := handler.popFlashCookie(c)
	return handler.render(c, "register", fiber.Map{
		"Title":      localizedPageTitle(messages, "meta.title.register", "Sales Board | Create account"),
		"ErrorText":  localizedError(messages, flash.AuthError),
		"EmailValue": flash.LoginValue,
	})
}

// respondAuthError sends form submissions back to their page with a flash
// message and answers API clients with JSON.
func (handler *Handler) respondAuthError(c *fiber.Ctx, status int, message string, loginValue string) error {
	if acceptsJSON(c) || isHTMX(c) {
		return apiError(c, status, message)
	}

	handler.setFlashCookie(c, FlashPayload{AuthError: message, LoginValue: loginValue})
	if c.Path() == "/api/auth/register" {
		return c.Redirect("/register", fiber.StatusSeeOther)
	}
	return c.Redirect("/login", fiber.StatusSeeOther)
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	input := loginInput{}
	if err := c.BodyParser(&input); err != nil {
		return handler.respondAuthError(c, fiber.StatusBadRequest, "invalid input", "")
	}
	input.Login = strings.TrimSpace(input.Login)
	input.RememberMe = input.RememberMe || parseBoolValue(c.FormValue("remember_me"))
	if input.Login == "" || input.Password == "" {
		return handler.respondAuthError(c, fiber.StatusBadRequest, "invalid input", input.Login)
	}

	now := time.Now()
	limiterKey := loginLimiterKey(c, input.Login)
	if handler.loginLimiter.tooManyRecent(limiterKey, now, loginAttemptsLimit, loginAttemptsWindow) {
		return handler.respondAuthError(c, fiber.StatusTooManyRequests, "too many login attempts", input.Login)
	}

	user, err := handler.authService.Authenticate(input.Login, input.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			handler.loginLimiter.addFailure(limiterKey, now, loginAttemptsWindow)
			return handler.respondAuthError(c, fiber.StatusUnauthorized, "invalid credentials", input.Login)
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to sign in")
	}
	handler.loginLimiter.reset(limiterKey)

	if err := handler.setAuthCookie(c, &user, input.RememberMe); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	return redirectOrJSON(c, "/dashboard")
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	input := registerInput{}
	if err := c.BodyParser(&input); err != nil {
		return handler.respondAuthError(c, fiber.StatusBadRequest, "invalid input", "")
	}
	email := services.NormalizeLogin(input.Email)
	if strings.TrimSpace(input.ConfirmPassword) == "" {
		return handler.respondAuthError(c, fiber.StatusBadRequest, "invalid input", email)
	}

	user, err := handler.authService.Register(services.RegisterInput{
		Username: input.Username,
		Email:    email,
		Password: input.Password,
		Confirm:  input.ConfirmPassword,
	})
	switch {
	case errors.Is(err, services.ErrInvalidUserInput):
		return handler.respondAuthError(c, fiber.StatusBadRequest, "invalid input", email)
	case errors.Is(err, services.ErrPasswordMismatch):
		return handler.respondAuthError(c, fiber.StatusBadRequest, "password mismatch", email)
	case errors.Is(err, services.ErrUserExists):
		return handler.respondAuthError(c, fiber.StatusConflict, "user already exists", email)
	case err != nil:
		return apiError(c, fiber.StatusInternalServerError, "failed to create account")
	}

	if err := handler.setAuthCookie(c, &user, true); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	if acceptsJSON(c) {
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true, "role": user.Role})
	}
	return redirectOrJSON(c, "/upload")
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	if isHTMX(c) {
		c.Set("HX-Redirect", "/login")
		return c.SendStatus(fiber.StatusOK)
	}
	if acceptsJSON(c) {
		return c.JSON(fiber.Map{"ok": true})
	}
	return c.Redirect("/login", fiber.StatusSeeOther)
}
