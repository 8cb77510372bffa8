package inventory

import (
	"context"

	"github.com/jcastellanos/inventario-stock/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para la secuencia
// leer-verificar-escribir del registro de movimientos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movementRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}
