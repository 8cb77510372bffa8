package dto

import "time"

// RegisterMovementRequest entrada para registrar un movimiento de inventario.
type RegisterMovementRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Type      string `json:"type" validate:"required,oneof=ENTRY EXIT TRANSFER PROJECT_USE"`
	Quantity  int64  `json:"quantity" validate:"required,gt=0"`
	Project   string `json:"project"`
	Notes     string `json:"notes"`
}

// MovementResponse salida de un movimiento.
type MovementResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Type      string    `json:"type"`
	Quantity  int64     `json:"quantity"`
	Date      time.Time `json:"date"`
	UserID    *string   `json:"user_id"`
	Project   string    `json:"project,omitempty"`
	Notes     string    `json:"notes,omitempty"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
