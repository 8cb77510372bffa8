package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jcastellanos/inventario-stock/internal/application/dto"
	"github.com/jcastellanos/inventario-stock/internal/domain"
)

// respondDomainError traduce los errores de dominio a respuestas HTTP.
// Los errores de validación viajan con detalle por campo para que el
// formulario de origen los pinte campo a campo.
func respondDomainError(c *fiber.Ctx, err error) error {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.FieldErrorResponse{Code: "VALIDATION", Fields: ve.Fields})
	}
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		// Regla de negocio: error a nivel del campo cantidad, sin efectos.
		return c.Status(fiber.StatusConflict).JSON(dto.FieldErrorResponse{
			Code:   "INSUFFICIENT_STOCK",
			Fields: map[string]string{"quantity": "cantidad insuficiente en inventario"},
		})
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrUserAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
