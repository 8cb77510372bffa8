package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypeEntry      = "ENTRY"       // entrada
	MovementTypeExit       = "EXIT"        // salida
	MovementTypeTransfer   = "TRANSFER"    // transferencia
	MovementTypeProjectUse = "PROJECT_USE" // uso en proyecto
)

// ValidMovementType indica si el tipo pertenece al enum fijo.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeEntry, MovementTypeExit, MovementTypeTransfer, MovementTypeProjectUse:
		return true
	}
	return false
}

// MovementAdds indica si el tipo suma stock (ENTRY y TRANSFER); EXIT y
// PROJECT_USE restan y exigen stock suficiente.
func MovementAdds(t string) bool {
	return t == MovementTypeEntry || t == MovementTypeTransfer
}

// InventoryMovement es un registro inmutable de entrada/salida de stock.
// UserID queda en nil si el usuario que lo registró fue eliminado.
type InventoryMovement struct {
	ID        string
	ProductID string
	Type      string
	Quantity  int64 // siempre positivo; el signo lo da el tipo
	Date      time.Time
	UserID    *string
	Project   string
	Notes     string
}
