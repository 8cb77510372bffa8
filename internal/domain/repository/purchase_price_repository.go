package repository

import "github.com/jcastellanos/inventario-stock/internal/domain/entity"

// PurchasePriceRepository define el puerto para el historial de precios de
// compra (append-only).
type PurchasePriceRepository interface {
	Create(price *entity.PurchasePrice) error
	// ListByProduct historial del producto, más reciente primero.
	ListByProduct(productID string) ([]*entity.PurchasePrice, error)
	// DeleteByProduct elimina el historial al borrar el producto (cascada).
	DeleteByProduct(productID string) error
}
