package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/CRM-api/internal/application/authz"
	"github.com/jhoicas/CRM-api/internal/domain/entity"
)

// La tabla de política completa, caso por caso. Cualquier cambio accidental
// en los permisos por rol debe romper este test.
func TestCan_TablaDePolitica(t *testing.T) {
	cases := []struct {
		role string
		op   authz.Operation
		want bool
	}{
		// admin puede todo
		{entity.RoleAdmin, authz.OpDeleteLead, true},
		{entity.RoleAdmin, authz.OpListUsers, true},
		{entity.RoleAdmin, authz.OpReadAnalytics, true},

		// manager: todo menos listar usuarios
		{entity.RoleManager, authz.OpDeleteLead, true},
		{entity.RoleManager, authz.OpReadAnalytics, true},
		{entity.RoleManager, authz.OpListUsers, false},

		// sales_executive: sin borrar, sin usuarios, sin analytics
		{entity.RoleSalesExecutive, authz.OpListLeads, true},
		{entity.RoleSalesExecutive, authz.OpCreateLead, true},
		{entity.RoleSalesExecutive, authz.OpUpdateLead, true},
		{entity.RoleSalesExecutive, authz.OpCreateActivity, true},
		{entity.RoleSalesExecutive, authz.OpReadStats, true},
		{entity.RoleSalesExecutive, authz.OpDeleteLead, false},
		{entity.RoleSalesExecutive, authz.OpListUsers, false},
		{entity.RoleSalesExecutive, authz.OpReadAnalytics, false},

		// rol desconocido no puede nada
		{"intruso", authz.OpListLeads, false},
		{"", authz.OpReadStats, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, authz.Can(tc.role, tc.op),
			"rol=%s op=%s", tc.role, tc.op)
	}
}

func TestOwnsOnly_SoloSalesExecutive(t *testing.T) {
	assert.True(t, authz.OwnsOnly(entity.RoleSalesExecutive))
	assert.False(t, authz.OwnsOnly(entity.RoleAdmin))
	assert.False(t, authz.OwnsOnly(entity.RoleManager))
}

func TestCanAssignOwner(t *testing.T) {
	assert.True(t, authz.CanAssignOwner(entity.RoleAdmin))
	assert.True(t, authz.CanAssignOwner(entity.RoleManager))
	assert.False(t, authz.CanAssignOwner(entity.RoleSalesExecutive))
}

// El scope de visibilidad restringe por dueño solo para sales_executive.
func TestVisibilityScope(t *testing.T) {
	seller := authz.VisibilityScope(authz.Actor{ID: 7, Role: entity.RoleSalesExecutive})
	assert.True(t, seller.OwnerOnly())
	assert.Equal(t, int64(7), seller.UserID)

	admin := authz.VisibilityScope(authz.Actor{ID: 1, Role: entity.RoleAdmin})
	assert.False(t, admin.OwnerOnly())
}

// RolesAllowed debe ser el reflejo exacto de la tabla, porque las rutas se
// registran a partir de él.
func TestRolesAllowed(t *testing.T) {
	assert.ElementsMatch(t,
		[]string{entity.RoleAdmin, entity.RoleManager},
		authz.RolesAllowed(authz.OpDeleteLead))

	assert.ElementsMatch(t,
		[]string{entity.RoleAdmin},
		authz.RolesAllowed(authz.OpListUsers))

	assert.ElementsMatch(t,
		[]string{entity.RoleAdmin, entity.RoleManager, entity.RoleSalesExecutive},
		authz.RolesAllowed(authz.OpReadStats))
}
