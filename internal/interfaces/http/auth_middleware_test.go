package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/CRM-api/internal/application/dto"
	"github.com/jhoicas/CRM-api/internal/domain/entity"
	apphttp "github.com/jhoicas/CRM-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testCookie = "crm_session"

// fakeSessions resuelve sesiones desde un mapa en memoria. Con failing en
// true simula un store de sesiones caído.
type fakeSessions struct {
	byToken map[string]dto.SessionUser
	failing bool
}

func (f *fakeSessions) Resolve(_ context.Context, token string) (*dto.SessionUser, error) {
	if f.failing {
		return nil, errors.New("store de sesiones caído")
	}
	user, ok := f.byToken[token]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

// buildTestApp construye una app Fiber mínima con:
//   - SessionMiddleware resolviendo contra el fake
//   - RequireRole opcional
//   - Un handler que devuelve la identidad cargada en locals
func buildTestApp(sessions *fakeSessions, allowedRoles ...string) *fiber.App {
	app := fiber.New()
	handlers := []fiber.Handler{apphttp.SessionMiddleware(sessions, testCookie)}
	if len(allowedRoles) > 0 {
		handlers = append(handlers, apphttp.RequireRole(allowedRoles...))
	}
	handlers = append(handlers, func(c *fiber.Ctx) error {
		actor := apphttp.GetActor(c)
		return c.JSON(fiber.Map{"id": actor.ID, "role": actor.Role})
	})
	app.Get("/protected", handlers...)
	return app
}

func doRequest(t *testing.T, app *fiber.App, cookie string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: testCookie, Value: cookie})
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

// ──────────────────────────────────────────────────────────────────────────────
// SessionMiddleware
// ──────────────────────────────────────────────────────────────────────────────

// Sin cookie no hay sesión: 401, nunca 403.
func TestSessionMiddleware_SinCookie(t *testing.T) {
	app := buildTestApp(&fakeSessions{})

	resp := doRequest(t, app, "")

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "MISSING_SESSION", body["code"])
}

// Cookie presente pero token desconocido o expirado: 401.
func TestSessionMiddleware_SesionInvalida(t *testing.T) {
	app := buildTestApp(&fakeSessions{byToken: map[string]dto.SessionUser{}})

	resp := doRequest(t, app, "token-que-nadie-emitio")

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "INVALID_SESSION", body["code"])
}

// Sesión válida: el handler recibe la identidad en locals.
func TestSessionMiddleware_SesionValida(t *testing.T) {
	app := buildTestApp(&fakeSessions{byToken: map[string]dto.SessionUser{
		"tok-1": {ID: 7, Username: "v1", Role: entity.RoleSalesExecutive},
	}})

	resp := doRequest(t, app, "tok-1")

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, float64(7), body["id"])
	assert.Equal(t, entity.RoleSalesExecutive, body["role"])
}

// Si el store de sesiones no responde, el error es de infraestructura (503),
// no un 401 que invite al cliente a desloguearse.
func TestSessionMiddleware_StoreCaido(t *testing.T) {
	app := buildTestApp(&fakeSessions{failing: true})

	resp := doRequest(t, app, "tok-1")

	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireRole
// ──────────────────────────────────────────────────────────────────────────────

// Usuario autenticado con rol insuficiente: 403 (distinto del 401 sin sesión).
func TestRequireRole_RolInsuficiente(t *testing.T) {
	app := buildTestApp(&fakeSessions{byToken: map[string]dto.SessionUser{
		"tok-seller": {ID: 7, Role: entity.RoleSalesExecutive},
	}}, entity.RoleAdmin, entity.RoleManager)

	resp := doRequest(t, app, "tok-seller")

	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "FORBIDDEN", body["code"])
}

func TestRequireRole_RolPermitido(t *testing.T) {
	app := buildTestApp(&fakeSessions{byToken: map[string]dto.SessionUser{
		"tok-admin": {ID: 1, Role: entity.RoleAdmin},
	}}, entity.RoleAdmin)

	resp := doRequest(t, app, "tok-admin")

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
