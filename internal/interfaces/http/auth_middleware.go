package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/CRM-api/internal/application/authz"
	"github.com/jhoicas/CRM-api/internal/application/dto"
)

// Locals keys para la identidad autenticada en Fiber.
const (
	localSessionUser  = "session_user"
	localSessionToken = "session_token"
)

// sessionResolver es el contrato mínimo que necesita el middleware para
// resolver una sesión. Lo implementa *auth.UseCase; la interfaz permite
// fakes en tests.
type sessionResolver interface {
	Resolve(ctx context.Context, token string) (*dto.SessionUser, error)
}

// SessionMiddleware valida la cookie de sesión opaca y carga el usuario en
// c.Locals. Sin sesión válida responde 401 (distinto del 403 por privilegio
// insuficiente, que es responsabilidad de RequireRole).
func SessionMiddleware(sessions sessionResolver, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(cookieName)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: "no autenticado", Code: "MISSING_SESSION",
			})
		}
		user, err := sessions.Resolve(c.Context(), token)
		if err != nil {
			// Fallo de infraestructura al consultar el store de sesiones.
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Error: "no se pudo verificar la sesión, intente más tarde", Code: "SESSION_CHECK_FAILED",
			})
		}
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: "sesión inválida o expirada", Code: "INVALID_SESSION",
			})
		}
		c.Locals(localSessionUser, user)
		c.Locals(localSessionToken, token)
		return c.Next()
	}
}

// GetSessionUser devuelve el snapshot de sesión (después del middleware).
func GetSessionUser(c *fiber.Ctx) *dto.SessionUser {
	user, _ := c.Locals(localSessionUser).(*dto.SessionUser)
	return user
}

// GetSessionToken devuelve el token de la sesión actual (para logout).
func GetSessionToken(c *fiber.Ctx) string {
	token, _ := c.Locals(localSessionToken).(string)
	return token
}

// GetActor devuelve la identidad para el Authorization Gate.
func GetActor(c *fiber.Ctx) authz.Actor {
	user := GetSessionUser(c)
	if user == nil {
		return authz.Actor{}
	}
	return authz.Actor{ID: user.ID, Role: user.Role}
}
