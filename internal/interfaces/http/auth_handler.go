package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/CRM-api/internal/application/auth"
	"github.com/jhoicas/CRM-api/internal/application/dto"
)

// AuthHandler registro, login y logout con sesión opaca en cookie.
type AuthHandler struct {
	uc         *auth.UseCase
	cookieName string
	cookieTTL  time.Duration
	secure     bool
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.UseCase, cookieName string, cookieTTL time.Duration, secure bool) *AuthHandler {
	return &AuthHandler{uc: uc, cookieName: cookieName, cookieTTL: cookieTTL, secure: secure}
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "cuerpo inválido", Code: "INVALID_BODY",
		})
	}
	if msg := validateBody(in); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: msg, Code: "VALIDATION",
		})
	}
	user, err := h.uc.Register(c.Context(), in)
	if err != nil {
		return replyError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login POST /api/auth/login
// Abre la sesión y deja el token opaco en una cookie HttpOnly. El cuerpo de
// la respuesta lleva solo el usuario sanitizado, nunca el token.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "cuerpo inválido", Code: "INVALID_BODY",
		})
	}
	if msg := validateBody(in); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: msg, Code: "VALIDATION",
		})
	}
	token, user, err := h.uc.Login(c.Context(), in)
	if err != nil {
		return replyError(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Expires:  time.Now().Add(h.cookieTTL),
		HTTPOnly: true,
		Secure:   h.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
	return c.JSON(user)
}

// Logout POST /api/auth/logout
// Revoca la sesión del lado servidor y expira la cookie.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.uc.Logout(c.Context(), GetSessionToken(c)); err != nil {
		return replyError(c, err)
	}
	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   h.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
	return c.SendStatus(fiber.StatusNoContent)
}

// Me GET /api/auth/me
// Devuelve el snapshot de la sesión actual.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := GetSessionUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: "no autenticado", Code: "MISSING_SESSION",
		})
	}
	return c.JSON(user)
}
