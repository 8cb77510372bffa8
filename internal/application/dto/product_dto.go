package dto

import "time"

// CreateProductRequest entrada para crear un producto.
// NewCategories es una lista separada por comas; solo se honra si el usuario
// pertenece al grupo Administrador (para el resto se ignora aunque venga).
type CreateProductRequest struct {
	Code              string   `json:"code" validate:"required,min=1,max=20"`
	Name              string   `json:"name" validate:"required,min=1,max=100"`
	Description       string   `json:"description"`
	Quantity          int64    `json:"quantity" validate:"min=0"`
	Location          string   `json:"location"`
	ExpirationDate    *string  `json:"expiration_date"` // YYYY-MM-DD, opcional
	LowStockThreshold *int64   `json:"low_stock_threshold" validate:"omitempty,min=0"`
	CategoryIDs       []string `json:"category_ids"`
	NewCategories     string   `json:"new_categories"`
}

// UpdateProductRequest entrada para editar un producto. Todos los campos son
// opcionales; los ausentes no se tocan. Quantity permite corregir el stock
// registrado (los ajustes operativos siguen siendo movimientos).
type UpdateProductRequest struct {
	Code              *string  `json:"code" validate:"omitempty,min=1,max=20"`
	Name              *string  `json:"name" validate:"omitempty,min=1,max=100"`
	Quantity          *int64   `json:"quantity" validate:"omitempty,min=0"`
	Description       *string  `json:"description"`
	Location          *string  `json:"location"`
	ExpirationDate    *string  `json:"expiration_date"` // YYYY-MM-DD; "" limpia la fecha
	LowStockThreshold *int64   `json:"low_stock_threshold" validate:"omitempty,min=0"`
	CategoryIDs       []string `json:"category_ids"`
	NewCategories     string   `json:"new_categories"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID                string             `json:"id"`
	Code              string             `json:"code"`
	Name              string             `json:"name"`
	Description       string             `json:"description"`
	Quantity          int64              `json:"quantity"`
	Location          string             `json:"location"`
	ExpirationDate    *string            `json:"expiration_date"` // YYYY-MM-DD
	LowStockThreshold int64              `json:"low_stock_threshold"`
	Categories        []CategoryResponse `json:"categories"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ProductFormResponse datos para construir el formulario de producto
// (categorías existentes y, al editar, el producto actual).
type ProductFormResponse struct {
	Categories []CategoryResponse `json:"categories"`
	Product    *ProductResponse   `json:"product,omitempty"`
}
