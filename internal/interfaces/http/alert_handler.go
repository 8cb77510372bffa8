package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jcastellanos/inventario-stock/internal/application/usecase"
)

// AlertHandler vistas de solo lectura para las alertas de inventario.
type AlertHandler struct {
	uc *usecase.AlertUseCase
}

// NewAlertHandler construye el handler.
func NewAlertHandler(uc *usecase.AlertUseCase) *AlertHandler {
	return &AlertHandler{uc: uc}
}

// LowStock godoc
// @Summary      Productos en o por debajo de su umbral de stock
// @Tags         alertas
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.LowStockResponse
// @Router       /alertas/stock-bajo/ [get]
func (h *AlertHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.uc.LowStock()
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Expiring godoc
// @Summary      Productos que vencen en los próximos 30 días
// @Tags         alertas
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ExpirationResponse
// @Router       /productos/vencimiento/ [get]
func (h *AlertHandler) Expiring(c *fiber.Ctx) error {
	out, err := h.uc.Expiring()
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}
