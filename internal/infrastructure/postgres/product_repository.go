package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jcastellanos/inventario-stock/internal/domain"
	"github.com/jcastellanos/inventario-stock/internal/domain/entity"
	"github.com/jcastellanos/inventario-stock/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = "id, code, name, description, quantity, location, expiration_date, low_stock_threshold, created_at, updated_at"

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL
// (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos.
// Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.Code, &p.Name, &p.Description, &p.Quantity,
		&p.Location, &p.ExpirationDate, &p.LowStockThreshold, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, code, name, description, quantity, location, expiration_date, low_stock_threshold, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Code, product.Name, product.Description, product.Quantity,
		product.Location, product.ExpirationDate, product.LowStockThreshold,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(context.Background(),
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetByCode obtiene un producto por su código único.
func (r *ProductRepo) GetByCode(code string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(context.Background(),
		`SELECT `+productColumns+` FROM products WHERE code = $1`, code))
	if err != nil {
		return nil, fmt.Errorf("get product by code: %w", err)
	}
	return p, nil
}

// GetForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE).
// Solo tiene sentido dentro de una transacción.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(context.Background(),
		`SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, fmt.Errorf("get product for update: %w", err)
	}
	return p, nil
}

// Update actualiza un producto existente, incluidos código y cantidad.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET code = $2, name = $3, description = $4, quantity = $5, location = $6, expiration_date = $7, low_stock_threshold = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Code, product.Name, product.Description, product.Quantity,
		product.Location, product.ExpirationDate, product.LowStockThreshold, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateQuantity actualiza solo la cantidad (usado por el motor de movimientos
// dentro de la transacción que bloqueó la fila).
func (r *ProductRepo) UpdateQuantity(id string, quantity int64) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET quantity = $2, updated_at = now() WHERE id = $1`,
		id, quantity,
	)
	if err != nil {
		return fmt.Errorf("update product quantity: %w", err)
	}
	return nil
}

// List lista productos con paginación, por código.
func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+productColumns+` FROM products ORDER BY code LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return collectProducts(rows)
}

// ListLowStock productos con cantidad <= su propio umbral, ascendente por cantidad.
func (r *ProductRepo) ListLowStock() ([]*entity.Product, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+productColumns+` FROM products WHERE quantity <= low_stock_threshold ORDER BY quantity`)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	return collectProducts(rows)
}

// ListExpiring productos con vencimiento no nulo y <= until, ascendente por fecha.
func (r *ProductRepo) ListExpiring(until time.Time) ([]*entity.Product, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+productColumns+` FROM products
		 WHERE expiration_date IS NOT NULL AND expiration_date <= $1
		 ORDER BY expiration_date`, until)
	if err != nil {
		return nil, fmt.Errorf("list expiring: %w", err)
	}
	return collectProducts(rows)
}

// ListForReport aplica los filtros del reporte (AND de los presentes; el de
// categorías es "tiene al menos una", sin duplicar filas) e incluye los
// nombres de categoría de cada producto.
func (r *ProductRepo) ListForReport(filter repository.ReportFilter) ([]*entity.Product, error) {
	query := `
		SELECT p.id, p.code, p.name, p.description, p.quantity, p.location,
		       p.expiration_date, p.low_stock_threshold, p.created_at, p.updated_at,
		       COALESCE(array_agg(c.name ORDER BY c.name) FILTER (WHERE c.name IS NOT NULL), '{}')
		FROM products p
		LEFT JOIN product_categories pc ON pc.product_id = p.id
		LEFT JOIN categories c ON c.id = pc.category_id
		WHERE true`
	args := []any{}
	pos := 1
	if filter.ExpiresFrom != nil {
		query += fmt.Sprintf(" AND p.expiration_date >= $%d", pos)
		args = append(args, *filter.ExpiresFrom)
		pos++
	}
	if filter.ExpiresTo != nil {
		query += fmt.Sprintf(" AND p.expiration_date <= $%d", pos)
		args = append(args, *filter.ExpiresTo)
		pos++
	}
	if len(filter.Categories) > 0 {
		query += fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM product_categories pc2
			JOIN categories c2 ON c2.id = pc2.category_id
			WHERE pc2.product_id = p.id AND c2.name = ANY($%d))`, pos)
		args = append(args, filter.Categories)
		pos++
	}
	query += " GROUP BY p.id ORDER BY p.code"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list for report: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		var catNames []string
		if err := rows.Scan(&p.ID, &p.Code, &p.Name, &p.Description, &p.Quantity,
			&p.Location, &p.ExpirationDate, &p.LowStockThreshold, &p.CreatedAt, &p.UpdatedAt,
			&catNames); err != nil {
			return nil, fmt.Errorf("scan report product: %w", err)
		}
		for _, name := range catNames {
			p.Categories = append(p.Categories, entity.Category{Name: name})
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Delete elimina un producto y sus asociaciones de categoría. Los movimientos
// y precios los borra el caso de uso dentro de la misma transacción.
func (r *ProductRepo) Delete(id string) error {
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM product_categories WHERE product_id = $1`, id); err != nil {
		return fmt.Errorf("delete product categories: %w", err)
	}
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM products WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// AttachCategory asocia una categoría al producto. Idempotente.
func (r *ProductRepo) AttachCategory(productID, categoryID string) error {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO product_categories (product_id, category_id)
		VALUES ($1, $2)
		ON CONFLICT (product_id, category_id) DO NOTHING`,
		productID, categoryID)
	if err != nil {
		return fmt.Errorf("attach category: %w", err)
	}
	return nil
}

// ReplaceCategories reemplaza el conjunto de categorías del producto.
func (r *ProductRepo) ReplaceCategories(productID string, categoryIDs []string) error {
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM product_categories WHERE product_id = $1`, productID); err != nil {
		return fmt.Errorf("clear categories: %w", err)
	}
	for _, id := range categoryIDs {
		if err := r.AttachCategory(productID, id); err != nil {
			return err
		}
	}
	return nil
}

// CategoriesOf categorías del producto, por nombre.
func (r *ProductRepo) CategoriesOf(productID string) ([]entity.Category, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT c.id, c.name FROM categories c
		JOIN product_categories pc ON pc.category_id = c.id
		WHERE pc.product_id = $1 ORDER BY c.name`, productID)
	if err != nil {
		return nil, fmt.Errorf("categories of product: %w", err)
	}
	defer rows.Close()
	var list []entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func collectProducts(rows pgx.Rows) ([]*entity.Product, error) {
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Code, &p.Name, &p.Description, &p.Quantity,
			&p.Location, &p.ExpirationDate, &p.LowStockThreshold, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
