package repository

import (
	"context"

	"github.com/jhoicas/CRM-api/internal/domain/entity"
)

// ActivityWithAuthor es una Activity junto con su autor resuelto en la misma
// consulta (LEFT JOIN: autor eliminado => Author nil, la fila se conserva).
type ActivityWithAuthor struct {
	entity.Activity
	Author *entity.User
}

// ActivityRepository define el puerto de persistencia para Activity.
// Las actividades son inmutables: no hay Update ni Delete individual.
type ActivityRepository interface {
	// Create persiste la actividad y asigna ID y CreatedAt.
	Create(ctx context.Context, activity *entity.Activity) error
	// ListByLead devuelve las actividades de un lead con su autor,
	// más recientes primero.
	ListByLead(ctx context.Context, leadID int64) ([]*ActivityWithAuthor, error)
	// ListVisible devuelve las actividades de los leads visibles para el
	// scope (para las estadísticas del dashboard).
	ListVisible(ctx context.Context, scope Scope) ([]*entity.Activity, error)
	// DeleteByLead elimina todas las actividades del lead. Se usa dentro de
	// la transacción de borrado en cascada.
	DeleteByLead(ctx context.Context, leadID int64) error
}
