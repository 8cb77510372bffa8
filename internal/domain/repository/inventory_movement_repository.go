package repository

import "github.com/jcastellanos/inventario-stock/internal/domain/entity"

// InventoryMovementRepository define el puerto de persistencia para los
// movimientos (registros append-only: sin update ni delete individual).
type InventoryMovementRepository interface {
	Create(movement *entity.InventoryMovement) error
	// List movimientos más recientes primero, con paginación.
	List(limit, offset int) ([]*entity.InventoryMovement, error)
	ListByProduct(productID string, limit, offset int) ([]*entity.InventoryMovement, error)
	// DeleteByProduct elimina el historial al borrar el producto (cascada).
	DeleteByProduct(productID string) error
}
