package repository

import (
	"time"

	"github.com/jcastellanos/inventario-stock/internal/domain/entity"
)

// ReportFilter filtros opcionales del reporte de inventario. Los filtros
// presentes se combinan con AND; Categories filtra por pertenencia a al menos
// una de las categorías nombradas (sin duplicar productos).
type ReportFilter struct {
	ExpiresFrom *time.Time
	ExpiresTo   *time.Time
	Categories  []string // nombres de categoría
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los métodos que devuelven un solo producto retornan (nil, nil) si no existe.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByCode(code string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) dentro de
	// la transacción actual; serializa las mutaciones de stock concurrentes.
	GetForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	UpdateQuantity(id string, quantity int64) error
	List(limit, offset int) ([]*entity.Product, error)
	// ListLowStock productos con quantity <= su propio umbral, ascendente por quantity.
	ListLowStock() ([]*entity.Product, error)
	// ListExpiring productos con fecha de vencimiento no nula y <= until,
	// ascendente por fecha de vencimiento.
	ListExpiring(until time.Time) ([]*entity.Product, error)
	// ListForReport aplica los filtros del reporte; incluye las categorías de
	// cada producto en el resultado.
	ListForReport(filter ReportFilter) ([]*entity.Product, error)
	Delete(id string) error
	// AttachCategory asocia una categoría al producto (idempotente).
	AttachCategory(productID, categoryID string) error
	ReplaceCategories(productID string, categoryIDs []string) error
	CategoriesOf(productID string) ([]entity.Category, error)
}
