package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jcastellanos/inventario-stock/internal/domain"
	"github.com/jcastellanos/inventario-stock/internal/domain/entity"
	"github.com/jcastellanos/inventario-stock/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación de CategoryRepository sobre PostgreSQL
// (usable con pool o tx).
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste una categoría nueva.
func (r *CategoryRepo) Create(category *entity.Category) error {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO categories (id, name) VALUES ($1, $2)`,
		category.ID, category.Name)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID.
func (r *CategoryRepo) GetByID(id string) (*entity.Category, error) {
	var c entity.Category
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name FROM categories WHERE id = $1`, id).Scan(&c.ID, &c.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

// GetByName obtiene una categoría por su nombre único.
func (r *CategoryRepo) GetByName(name string) (*entity.Category, error) {
	var c entity.Category
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name FROM categories WHERE name = $1`, name).Scan(&c.ID, &c.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category by name: %w", err)
	}
	return &c, nil
}

// GetOrCreateByName busca por nombre y crea si no existe. ON CONFLICT DO
// NOTHING garantiza idempotencia aunque dos requests creen el mismo nombre a
// la vez.
func (r *CategoryRepo) GetOrCreateByName(name string) (*entity.Category, error) {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO categories (id, name) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`,
		uuid.New().String(), name)
	if err != nil {
		return nil, fmt.Errorf("get or create category: %w", err)
	}
	cat, err := r.GetByName(name)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, fmt.Errorf("get or create category: %q no encontrada tras insert", name)
	}
	return cat, nil
}

// List todas las categorías, por nombre.
func (r *CategoryRepo) List() ([]*entity.Category, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, name FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
