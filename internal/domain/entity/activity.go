package entity

import "time"

// Tipos comunes de Activity. El conjunto es abierto: se aceptan otros tipos
// siempre que no estén vacíos.
const (
	ActivityNote    = "note"
	ActivityCall    = "call"
	ActivityMeeting = "meeting"
	ActivityEmail   = "email"
)

// Activity es un registro inmutable de interacción contra un Lead.
// No existe operación de update ni delete directo; solo desaparece
// cuando se elimina el Lead padre (cascada).
type Activity struct {
	ID        int64
	LeadID    int64
	UserID    int64 // autor de la interacción
	Type      string
	Subject   string
	Notes     string // opcional
	CreatedAt time.Time
}
