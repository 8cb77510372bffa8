package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jcastellanos/inventario-stock/internal/application/inventory"
	"github.com/jcastellanos/inventario-stock/internal/application/usecase"
	"github.com/jcastellanos/inventario-stock/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner and usecase.ProductTxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ usecase.ProductTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Lo usa el registro de movimientos (FOR UPDATE + check +
// update + insert en una sola transacción).
func (r *TxRunner) Run(ctx context.Context, fn func(
	movementRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewInventoryMovementRepository(tx), NewProductRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunProduct inicia una transacción con los repos que necesita el CRUD de
// productos: alta/edición con categorías y borrado con cascada a movimientos
// y precios.
func (r *TxRunner) RunProduct(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	movementRepo repository.InventoryMovementRepository,
	priceRepo repository.PurchasePriceRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = fn(
		NewProductRepository(tx),
		NewCategoryRepository(tx),
		NewInventoryMovementRepository(tx),
		NewPurchasePriceRepository(tx),
	)
	if err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
