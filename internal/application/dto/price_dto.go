package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordPriceRequest entrada para registrar un precio de compra. El producto
// se resuelve desde la ruta (:codigo), nunca desde el cuerpo.
type RecordPriceRequest struct {
	Price        decimal.Decimal `json:"price" validate:"required"`
	PurchaseDate string          `json:"purchase_date" validate:"required"` // YYYY-MM-DD
}

// PriceResponse salida de un precio de compra.
type PriceResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"product_id"`
	Price        decimal.Decimal `json:"price"`
	PurchaseDate string          `json:"purchase_date"` // YYYY-MM-DD
	CreatedAt    time.Time       `json:"created_at"`
}

// ProductDetailResponse detalle del producto con su historial de precios
// (más reciente primero).
type ProductDetailResponse struct {
	Product ProductResponse `json:"product"`
	Prices  []PriceResponse `json:"purchase_prices"`
}
