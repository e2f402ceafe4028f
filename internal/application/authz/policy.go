// Package authz concentra la política de autorización por rol en una sola
// tabla auditable, en lugar de condicionales dispersos por los handlers.
package authz

import (
	"github.com/jhoicas/CRM-api/internal/domain/entity"
	"github.com/jhoicas/CRM-api/internal/domain/repository"
)

// Operation identifica una operación protegida de la API.
type Operation string

const (
	OpListLeads      Operation = "leads:list"
	OpReadLead       Operation = "leads:read"
	OpCreateLead     Operation = "leads:create"
	OpUpdateLead     Operation = "leads:update"
	OpDeleteLead     Operation = "leads:delete"
	OpCreateActivity Operation = "activities:create"
	OpListUsers      Operation = "users:list"
	OpReadStats      Operation = "stats:read"
	OpReadAnalytics  Operation = "analytics:read"
)

// Actor es la identidad autenticada sobre la que se evalúa la política.
type Actor struct {
	ID   int64
	Role string
}

// policy: rol -> operaciones permitidas. Las operaciones de leads ajenos
// para sales_executive se deniegan además por ownership en los use cases
// (existencia primero: 404 antes que 403).
var policy = map[string]map[Operation]struct{}{
	entity.RoleAdmin: allOf(
		OpListLeads, OpReadLead, OpCreateLead, OpUpdateLead, OpDeleteLead,
		OpCreateActivity, OpListUsers, OpReadStats, OpReadAnalytics,
	),
	entity.RoleManager: allOf(
		OpListLeads, OpReadLead, OpCreateLead, OpUpdateLead, OpDeleteLead,
		OpCreateActivity, OpReadStats, OpReadAnalytics,
	),
	entity.RoleSalesExecutive: allOf(
		OpListLeads, OpReadLead, OpCreateLead, OpUpdateLead,
		OpCreateActivity, OpReadStats,
	),
}

func allOf(ops ...Operation) map[Operation]struct{} {
	set := make(map[Operation]struct{}, len(ops))
	for _, op := range ops {
		set[op] = struct{}{}
	}
	return set
}

// Can indica si el rol puede ejecutar la operación.
// Un rol desconocido no puede ejecutar ninguna.
func Can(role string, op Operation) bool {
	ops, ok := policy[role]
	if !ok {
		return false
	}
	_, ok = ops[op]
	return ok
}

// OwnsOnly indica si el rol solo ve y muta sus propios leads.
func OwnsOnly(role string) bool {
	return role == entity.RoleSalesExecutive
}

// CanAssignOwner indica si el rol puede asignar un dueño distinto de sí
// mismo al crear un lead. Para sales_executive el ownerId del request se
// ignora y se fuerza al propio (invariante de servidor, no de UI).
func CanAssignOwner(role string) bool {
	return role == entity.RoleAdmin || role == entity.RoleManager
}

// VisibilityScope construye el filtro de lectura que el repositorio aplica
// en SQL para este actor.
func VisibilityScope(actor Actor) repository.Scope {
	return repository.Scope{UserID: actor.ID, Role: actor.Role}
}

// Roles con permiso para una operación, útil para registrar rutas
// (RequireRole) sin duplicar la tabla.
func RolesAllowed(op Operation) []string {
	var roles []string
	for _, role := range []string{entity.RoleAdmin, entity.RoleManager, entity.RoleSalesExecutive} {
		if Can(role, op) {
			roles = append(roles, role)
		}
	}
	return roles
}
