package dto

// ReportRequest filtros del reporte de inventario; todos opcionales y
// combinables (AND entre los presentes).
type ReportRequest struct {
	StartDate  string   `json:"start_date"` // YYYY-MM-DD, cota inferior del vencimiento
	EndDate    string   `json:"end_date"`   // YYYY-MM-DD, cota superior del vencimiento
	Categories []string `json:"categories"` // nombres de categoría
}

// ReportFormResponse datos para construir el formulario del reporte.
type ReportFormResponse struct {
	Categories []CategoryResponse `json:"categories"`
}
