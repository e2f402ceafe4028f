package http

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/CRM-api/internal/application/dto"
	"github.com/jhoicas/CRM-api/internal/application/realtime"
	"github.com/jhoicas/CRM-api/pkg/config"
	"github.com/jhoicas/CRM-api/pkg/token"
)

// Locals keys para la identidad del upgrade websocket.
const (
	localWSUserID = "ws_user_id"
	localWSRole   = "ws_role"
)

// RealtimeHandler canal de cambios en tiempo real: emisión de tickets de
// handshake y el endpoint websocket. El canal es best-effort: sin cola, sin
// reintentos, sin garantía de orden entre conexiones.
type RealtimeHandler struct {
	hub      *realtime.Hub
	sessions sessionResolver
	ticket   config.TicketConfig
	log      zerolog.Logger
}

// NewRealtimeHandler construye el handler.
func NewRealtimeHandler(hub *realtime.Hub, sessions sessionResolver, ticket config.TicketConfig, log zerolog.Logger) *RealtimeHandler {
	return &RealtimeHandler{hub: hub, sessions: sessions, ticket: ticket, log: log}
}

// Ticket GET /api/realtime/ticket
// Emite un ticket firmado de corta vida para abrir el websocket desde
// clientes que no adjuntan la cookie en el upgrade. Requiere sesión activa.
func (h *RealtimeHandler) Ticket(c *fiber.Ctx) error {
	user := GetSessionUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: "no autenticado", Code: "MISSING_SESSION",
		})
	}
	ticket, err := token.Generate(h.ticket.Secret, user.ID, user.Role, h.ticket.Issuer, h.ticket.ExpSeconds)
	if err != nil {
		return replyError(c, err)
	}
	return c.JSON(fiber.Map{
		"ticket":    ticket,
		"expiresIn": h.ticket.ExpSeconds,
	})
}

// UpgradeMiddleware valida el upgrade a websocket y autentica la conexión,
// por cookie de sesión o por ticket (?ticket=...). Sin identidad válida el
// upgrade se rechaza con 401.
func (h *RealtimeHandler) UpgradeMiddleware(cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		if t := c.Cookies(cookieName); t != "" {
			user, err := h.sessions.Resolve(c.Context(), t)
			if err == nil && user != nil {
				c.Locals(localWSUserID, user.ID)
				c.Locals(localWSRole, user.Role)
				return c.Next()
			}
		}
		if t := c.Query("ticket"); t != "" {
			userID, role, err := token.Parse(h.ticket.Secret, t)
			if err == nil {
				c.Locals(localWSUserID, userID)
				c.Locals(localWSRole, role)
				return c.Next()
			}
		}
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: "no autenticado", Code: "MISSING_SESSION",
		})
	}
}

// Serve GET /ws
// Registra la conexión en el hub y bombea eventos hasta que el cliente
// cierra. Los mensajes entrantes del cliente se drenan y se ignoran: el
// canal es unidireccional servidor→cliente.
func (h *RealtimeHandler) Serve() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		userID, _ := conn.Locals(localWSUserID).(int64)

		client := h.hub.Register()
		defer func() {
			h.hub.Unregister(client)
			_ = conn.Close()
		}()

		h.log.Debug().Int64("userId", userID).Msg("websocket abierto")

		// Drenaje de lectura: detecta el cierre del lado cliente.
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case ev, ok := <-client.Events():
				if !ok {
					// Expulsado del hub (cliente lento o apagado).
					return
				}
				if err := conn.WriteJSON(ev); err != nil {
					h.log.Debug().Err(err).Int64("userId", userID).Msg("escritura websocket falló")
					return
				}
			case <-done:
				return
			}
		}
	})
}
