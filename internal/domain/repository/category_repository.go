package repository

import "github.com/jcastellanos/inventario-stock/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	GetByName(name string) (*entity.Category, error)
	// GetOrCreateByName busca la categoría por nombre y la crea si no existe.
	// Idempotente: reenviar el mismo nombre nunca produce duplicados.
	GetOrCreateByName(name string) (*entity.Category, error)
	List() ([]*entity.Category, error)
}
