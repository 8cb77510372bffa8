package usecase

import (
	"context"

	"github.com/jcastellanos/inventario-stock/internal/domain/repository"
)

// ProductTxRunner ejecuta una función dentro de una transacción de BD,
// pasando repositorios atados a esa tx. Lo usan la creación/edición de
// productos (producto + categorías en una sola transacción) y el borrado
// (cascada a movimientos e historial de precios).
type ProductTxRunner interface {
	RunProduct(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		categoryRepo repository.CategoryRepository,
		movementRepo repository.InventoryMovementRepository,
		priceRepo repository.PurchasePriceRepository,
	) error) error
}
