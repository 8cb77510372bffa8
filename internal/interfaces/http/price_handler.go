package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jcastellanos/inventario-stock/internal/application/dto"
	"github.com/jcastellanos/inventario-stock/internal/application/usecase"
)

// PriceHandler detalle de producto e historial de precios de compra.
type PriceHandler struct {
	uc *usecase.PriceUseCase
}

// NewPriceHandler construye el handler.
func NewPriceHandler(uc *usecase.PriceUseCase) *PriceHandler {
	return &PriceHandler{uc: uc}
}

// Detail godoc
// @Summary      Detalle del producto con historial de precios (nuevo primero)
// @Tags         productos
// @Security     Bearer
// @Produce      json
// @Param        codigo  path  string  true  "Código del producto"
// @Success      200  {object}  dto.ProductDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /producto/{codigo}/ [get]
func (h *PriceHandler) Detail(c *fiber.Ctx) error {
	out, err := h.uc.Detail(c.Params("codigo"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// PriceForm godoc
// @Summary      Datos para el formulario de precio (el producto de la ruta)
// @Tags         productos
// @Security     Bearer
// @Produce      json
// @Param        codigo  path  string  true  "Código del producto"
// @Success      200  {object}  dto.ProductDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /producto/{codigo}/nuevo-precio/ [get]
func (h *PriceHandler) PriceForm(c *fiber.Ctx) error {
	// El formulario fija el producto desde la ruta; se devuelve su detalle.
	return h.Detail(c)
}

// RecordPrice godoc
// @Summary      Registrar precio de compra (append-only)
// @Description  El producto se resuelve del código en la ruta; cualquier
//               referencia a producto en el cuerpo se ignora.
// @Tags         productos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        codigo  path  string  true  "Código del producto"
// @Param        body    body  dto.RecordPriceRequest  true  "price y purchase_date"
// @Success      201  {object}  dto.PriceResponse
// @Failure      400  {object}  dto.FieldErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /producto/{codigo}/nuevo-precio/ [post]
func (h *PriceHandler) RecordPrice(c *fiber.Ctx) error {
	var in dto.RecordPriceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Record(c.Params("codigo"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
