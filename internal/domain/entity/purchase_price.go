package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchasePrice es una entrada del historial de precios de compra de un
// producto. Solo se agrega, nunca se edita ni se borra individualmente.
type PurchasePrice struct {
	ID           string
	ProductID    string
	Price        decimal.Decimal // fijo, 2 decimales
	PurchaseDate time.Time
	CreatedAt    time.Time
}
