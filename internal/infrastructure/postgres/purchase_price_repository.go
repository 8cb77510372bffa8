package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jcastellanos/inventario-stock/internal/domain/entity"
	"github.com/jcastellanos/inventario-stock/internal/domain/repository"
)

var _ repository.PurchasePriceRepository = (*PurchasePriceRepo)(nil)

// PurchasePriceRepo implementación sobre PostgreSQL (usable con pool o tx).
type PurchasePriceRepo struct {
	q Querier
}

// NewPurchasePriceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchasePriceRepository(q Querier) *PurchasePriceRepo {
	return &PurchasePriceRepo{q: q}
}

// Create agrega una entrada al historial de precios.
func (r *PurchasePriceRepo) Create(price *entity.PurchasePrice) error {
	if price.ID == "" {
		price.ID = uuid.New().String()
	}
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO purchase_prices (id, product_id, price, purchase_date, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		price.ID, price.ProductID, price.Price, price.PurchaseDate, price.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert purchase price: %w", err)
	}
	return nil
}

// ListByProduct historial del producto, más reciente primero.
func (r *PurchasePriceRepo) ListByProduct(productID string) ([]*entity.PurchasePrice, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, product_id, price, purchase_date, created_at
		FROM purchase_prices WHERE product_id = $1
		ORDER BY purchase_date DESC, created_at DESC`, productID)
	if err != nil {
		return nil, fmt.Errorf("list purchase prices: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchasePrice
	for rows.Next() {
		var p entity.PurchasePrice
		if err := rows.Scan(&p.ID, &p.ProductID, &p.Price, &p.PurchaseDate, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan purchase price: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// DeleteByProduct elimina el historial de un producto (cascada del borrado de
// producto, dentro de la misma transacción).
func (r *PurchasePriceRepo) DeleteByProduct(productID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM purchase_prices WHERE product_id = $1`, productID)
	if err != nil {
		return fmt.Errorf("delete purchase prices by product: %w", err)
	}
	return nil
}
