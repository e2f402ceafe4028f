package repository

import (
	"context"

	"github.com/jhoicas/CRM-api/internal/domain/entity"
)

// Scope es el filtro de visibilidad que el Authorization Gate aplica a las
// lecturas. Se evalúa DENTRO del repositorio (cláusula WHERE), de modo que
// ningún caller pueda saltárselo por omisión.
type Scope struct {
	UserID int64
	Role   string
}

// OwnerOnly indica si el scope restringe las lecturas a los leads propios.
func (s Scope) OwnerOnly() bool {
	return s.Role == entity.RoleSalesExecutive
}

// LeadWithOwner es un Lead junto con su dueño resuelto en la misma consulta
// (LEFT JOIN: si el usuario ya no existe, Owner es nil pero el lead no
// desaparece del resultado).
type LeadWithOwner struct {
	entity.Lead
	Owner *entity.User
}

// LeadRepository define el puerto de persistencia para Lead.
type LeadRepository interface {
	// Create persiste el lead y asigna ID, CreatedAt y UpdatedAt.
	Create(ctx context.Context, lead *entity.Lead) error
	// GetByID devuelve el lead con su dueño, o (nil, nil) si no existe.
	GetByID(ctx context.Context, id int64) (*LeadWithOwner, error)
	// List devuelve los leads visibles para el scope, más recientes primero.
	List(ctx context.Context, scope Scope) ([]*LeadWithOwner, error)
	// Update sobreescribe la fila completa (el merge de campos parciales
	// ocurre en el use case). No toca CreatedAt.
	Update(ctx context.Context, lead *entity.Lead) error
	// Delete elimina solo la fila del lead. El borrado en cascada de sus
	// actividades se orquesta vía TxRunner para que sea atómico.
	Delete(ctx context.Context, id int64) error
}
