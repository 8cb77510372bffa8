package entity

import "time"

// Product representa un producto del inventario. Quantity es el stock actual
// y solo se modifica vía movimientos (nunca por el update directo del producto).
type Product struct {
	ID                string
	Code              string // código único
	Name              string
	Description       string
	Quantity          int64 // nunca negativo (lo garantizan los casos de uso)
	Location          string
	ExpirationDate    *time.Time // nil si no vence
	LowStockThreshold int64      // umbral para alerta de stock bajo
	Categories        []Category
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// DefaultLowStockThreshold umbral de alerta cuando no se indica uno.
const DefaultLowStockThreshold = 5
