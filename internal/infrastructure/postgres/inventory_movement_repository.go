package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jcastellanos/inventario-stock/internal/domain/entity"
	"github.com/jcastellanos/inventario-stock/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
// user_id es nullable: se conserva el movimiento con user_id NULL si el
// usuario es eliminado (ON DELETE SET NULL).
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Create persiste un movimiento de inventario.
func (r *InventoryMovementRepo) Create(movement *entity.InventoryMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory_movements (id, product_id, type, quantity, date, user_id, project, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID, movement.Type, movement.Quantity,
		movement.Date, movement.UserID, movement.Project, movement.Notes,
	)
	if err != nil {
		return fmt.Errorf("create inventory movement: %w", err)
	}
	return nil
}

// List movimientos más recientes primero, con paginación.
func (r *InventoryMovementRepo) List(limit, offset int) ([]*entity.InventoryMovement, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, product_id, type, quantity, date, user_id, project, notes
		FROM inventory_movements ORDER BY date DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryMovement
	for rows.Next() {
		var m entity.InventoryMovement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Type, &m.Quantity,
			&m.Date, &m.UserID, &m.Project, &m.Notes); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// ListByProduct movimientos de un producto, más recientes primero.
func (r *InventoryMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, product_id, type, quantity, date, user_id, project, notes
		FROM inventory_movements WHERE product_id = $1
		ORDER BY date DESC LIMIT $2 OFFSET $3`,
		productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements by product: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryMovement
	for rows.Next() {
		var m entity.InventoryMovement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Type, &m.Quantity,
			&m.Date, &m.UserID, &m.Project, &m.Notes); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// DeleteByProduct elimina los movimientos de un producto (cascada del borrado
// de producto, dentro de la misma transacción).
func (r *InventoryMovementRepo) DeleteByProduct(productID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM inventory_movements WHERE product_id = $1`, productID)
	if err != nil {
		return fmt.Errorf("delete movements by product: %w", err)
	}
	return nil
}
