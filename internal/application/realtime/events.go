// Package realtime implementa el notificador de cambios: un registro
// explícito de conexiones abiertas y un broadcast best-effort de eventos
// tipados que los clientes usan solo como señal de invalidación de caché,
// nunca como fuente de verdad.
package realtime

import (
	"encoding/json"

	"github.com/jhoicas/CRM-api/internal/application/dto"
)

// EventType discrimina el sobre {type, data} que viaja por el websocket.
type EventType string

const (
	EventConnected       EventType = "connected"
	EventLeadCreated     EventType = "lead_created"
	EventLeadUpdated     EventType = "lead_updated"
	EventLeadDeleted     EventType = "lead_deleted"
	EventActivityCreated EventType = "activity_created"
)

// ConnectedPayload payload del acuse inicial de conexión.
type ConnectedPayload struct {
	Message string `json:"message"`
}

// Event es la unión cerrada de eventos del canal. El payload solo se puede
// fijar mediante los constructores de abajo, de modo que cada tag siempre
// lleva la forma de datos que le corresponde.
type Event struct {
	eventType EventType
	data      any
}

// Type devuelve el tag del evento.
func (e Event) Type() EventType { return e.eventType }

// MarshalJSON serializa el sobre {type, data}.
func (e Event) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type EventType `json:"type"`
		Data any       `json:"data,omitempty"`
	}{Type: e.eventType, Data: e.data})
}

// NewConnected acuse que el servidor envía al entrar la conexión en Open.
func NewConnected(message string) Event {
	return Event{eventType: EventConnected, data: ConnectedPayload{Message: message}}
}

// NewLeadCreated evento con el lead creado (dueño incluido, sanitizado).
func NewLeadCreated(lead dto.LeadResponse) Event {
	return Event{eventType: EventLeadCreated, data: lead}
}

// NewLeadUpdated evento con el lead recién leído tras el write.
func NewLeadUpdated(lead dto.LeadResponse) Event {
	return Event{eventType: EventLeadUpdated, data: lead}
}

// NewLeadDeleted evento con solo el id del lead eliminado.
func NewLeadDeleted(id int64) Event {
	return Event{eventType: EventLeadDeleted, data: dto.DeletedLeadResponse{ID: id}}
}

// NewActivityCreated evento con la actividad y su autor sanitizado.
func NewActivityCreated(activity dto.ActivityResponse) Event {
	return Event{eventType: EventActivityCreated, data: activity}
}
