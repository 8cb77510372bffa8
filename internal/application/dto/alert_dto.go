package dto

// LowStockResponse productos en o por debajo de su umbral, ascendente por cantidad.
type LowStockResponse struct {
	Items []ProductResponse `json:"items"`
}

// ExpirationResponse productos que vencen dentro de la ventana de alerta,
// ascendente por fecha. Today permite distinguir vencidos de próximos a vencer.
type ExpirationResponse struct {
	Today string            `json:"today"` // YYYY-MM-DD
	Items []ProductResponse `json:"items"`
}
