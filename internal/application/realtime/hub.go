package realtime

import (
	"sync"

	"github.com/rs/zerolog"
)

// clientBuffer mensajes en vuelo por conexión. Un cliente que no drena su
// buffer se expulsa del registro en lugar de bloquear el broadcast.
const clientBuffer = 32

// Client es una conexión registrada en el hub. El transporte (websocket)
// consume Events() y llama a Unregister al cerrar.
type Client struct {
	send   chan Event
	closed bool // protegido por hub.mu
}

// Events canal de lectura de eventos para la bomba de escritura del transporte.
// Se cierra cuando el cliente sale del registro.
func (c *Client) Events() <-chan Event {
	return c.send
}

// Hub es el registro process-scoped de conexiones en tiempo real. Se inyecta
// en los use cases de mutación; el broadcast es best-effort, at-most-once,
// y nunca falla la mutación que lo origina.
type Hub struct {
	mu      sync.Mutex
	clients map[*Client]struct{}
	log     zerolog.Logger
}

// NewHub construye el hub vacío.
func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		log:     log,
	}
}

// Register incorpora una conexión en estado Open y encola de inmediato el
// acuse "connected" (cabe siempre: el buffer está recién creado).
func (h *Hub) Register() *Client {
	c := &Client{send: make(chan Event, clientBuffer)}
	c.send <- NewConnected("canal en tiempo real conectado")

	h.mu.Lock()
	h.clients[c] = struct{}{}
	total := len(h.clients)
	h.mu.Unlock()

	h.log.Debug().Int("clients", total).Msg("conexión registrada")
	return c
}

// Unregister saca la conexión del registro y cierra su canal. Idempotente:
// el transporte y el propio broadcast pueden llamarlo sin coordinarse.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropLocked(c)
}

// Broadcast envía el evento a todas las conexiones Open en este instante.
// Sin cola para conexiones futuras, sin reintentos, sin acks. El envío por
// cliente es no bloqueante: buffer lleno => cliente expulsado.
func (h *Hub) Broadcast(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		select {
		case c.send <- ev:
		default:
			h.log.Warn().Str("event", string(ev.Type())).Msg("cliente lento, expulsado del registro")
			h.dropLocked(c)
		}
	}
}

// Count número de conexiones registradas (para métricas y tests).
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// dropLocked requiere h.mu tomado.
func (h *Hub) dropLocked(c *Client) {
	if c.closed {
		return
	}
	c.closed = true
	delete(h.clients, c)
	close(c.send)
}
