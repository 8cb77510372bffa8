package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jcastellanos/inventario-stock/internal/application/dto"
	"github.com/jcastellanos/inventario-stock/internal/application/report"
)

// MIME de hoja de cálculo Office Open XML.
const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler genera el reporte de inventario descargable.
type ReportHandler struct {
	uc *report.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Form godoc
// @Summary      Datos para el formulario de filtros del reporte
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ReportFormResponse
// @Router       /reportes/inventario/ [get]
func (h *ReportHandler) Form(c *fiber.Ctx) error {
	out, err := h.uc.FormData()
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Generate godoc
// @Summary      Generar y descargar el reporte xlsx
// @Description  Filtros opcionales: rango de fecha de vencimiento y conjunto
//               de categorías (AND de los presentes). No escribe nada.
// @Tags         reportes
// @Security     Bearer
// @Accept       json
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        body  body  dto.ReportRequest  true  "start_date, end_date, categories"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.FieldErrorResponse
// @Router       /reportes/inventario/ [post]
func (h *ReportHandler) Generate(c *fiber.Ctx) error {
	var in dto.ReportRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	filename, content, err := h.uc.Generate(in)
	if err != nil {
		return respondDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, xlsxMIME)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename=`+filename)
	return c.Send(content)
}
