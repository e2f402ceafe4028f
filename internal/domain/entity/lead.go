package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados válidos para Lead. No hay grafo de transiciones: cualquier estado
// puede seguir a cualquier otro (p.ej. lost -> won está permitido).
const (
	StatusNew         = "new"
	StatusContacted   = "contacted"
	StatusQualified   = "qualified"
	StatusProposal    = "proposal"
	StatusNegotiation = "negotiation"
	StatusWon         = "won"
	StatusLost        = "lost"
)

// LeadStatuses lista los estados en orden canónico del pipeline.
var LeadStatuses = []string{
	StatusNew, StatusContacted, StatusQualified,
	StatusProposal, StatusNegotiation, StatusWon, StatusLost,
}

// ValidStatus indica si el estado es uno de los del pipeline.
func ValidStatus(status string) bool {
	for _, s := range LeadStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// IsClosed indica si el estado es terminal comercialmente (won o lost).
// Los leads cerrados no cuentan como "activos" en las estadísticas.
func IsClosed(status string) bool {
	return status == StatusWon || status == StatusLost
}

// Lead representa un prospecto de venta. Pertenece a exactamente un User
// (OwnerID); sus actividades se eliminan en cascada junto con él.
type Lead struct {
	ID          int64
	CompanyName string
	ContactName string
	Email       string
	Phone       string // opcional
	Status      string
	Source      string              // canal de origen: website, referral, cold_call, ...
	Value       decimal.NullDecimal // estimación monetaria, opcional
	OwnerID     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
