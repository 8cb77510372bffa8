package entity

import "time"

// Grupos de rol del sistema.
const (
	GroupAdministrador = "Administrador"
	GroupGestor        = "Gestor de Inventario"
	GroupLogistica     = "Encargado de Logística"
	GroupAuditor       = "Auditor de Inventario"
	GroupComprador     = "Comprador"
	GroupJefeProd      = "Jefe de Producción"
)

// AllGroups devuelve los grupos válidos para registro.
func AllGroups() []string {
	return []string{
		GroupAdministrador, GroupGestor, GroupLogistica,
		GroupAuditor, GroupComprador, GroupJefeProd,
	}
}

// ValidGroup indica si name es uno de los grupos del sistema.
func ValidGroup(name string) bool {
	for _, g := range AllGroups() {
		if g == name {
			return true
		}
	}
	return false
}

// MemberOfAny indica si groups contiene al menos uno de required.
func MemberOfAny(groups, required []string) bool {
	for _, g := range groups {
		for _, r := range required {
			if g == r {
				return true
			}
		}
	}
	return false
}

// User representa un usuario del sistema con sus grupos de rol.
type User struct {
	ID           string
	Username     string // único
	Email        string
	PasswordHash string // bcrypt, nunca plano después de persistir
	Groups       []string
	IsSuperuser  bool
	CreatedAt    time.Time
}
