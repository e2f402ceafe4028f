package entity

import "time"

// Roles válidos para User. El rol determina la visibilidad y los permisos
// de mutación sobre leads (ver application/authz).
const (
	RoleAdmin          = "admin"
	RoleManager        = "manager"
	RoleSalesExecutive = "sales_executive"
)

// ValidRole indica si el rol es uno de los conocidos.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleSalesExecutive:
		return true
	}
	return false
}

// User representa un usuario del sistema. Un usuario tiene exactamente un rol
// a la vez y nunca se elimina (los leads conservan la referencia al dueño).
type User struct {
	ID           int64
	Username     string
	Email        string
	FullName     string
	PasswordHash string // bcrypt hash (sal incluida), nunca sale de la capa de persistencia
	Role         string // admin, manager, sales_executive
	CreatedAt    time.Time
}
