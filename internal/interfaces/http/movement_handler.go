package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jcastellanos/inventario-stock/internal/application/dto"
	"github.com/jcastellanos/inventario-stock/internal/application/inventory"
	"github.com/jcastellanos/inventario-stock/internal/domain/entity"
)

// MovementHandler maneja las peticiones HTTP de movimientos de inventario.
type MovementHandler struct {
	uc *inventory.RegisterMovementUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *inventory.RegisterMovementUseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// List godoc
// @Summary      Listar movimientos (más recientes primero)
// @Description  Los usuarios fuera de los grupos del sistema reciben una
//               página vacía, no un error.
// @Tags         movimientos
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.MovementListResponse
// @Router       /movimientos/ [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	if page.Limit > 100 {
		page.Limit = 100
	}
	out, err := h.uc.List(GetGroups(c), IsSuperuser(c), page.Limit, page.Offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// CreateForm godoc
// @Summary      Datos para el formulario de movimiento (tipos válidos)
// @Tags         movimientos
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string][]string
// @Router       /movimientos/nuevo/ [get]
func (h *MovementHandler) CreateForm(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"types": []string{
			entity.MovementTypeEntry,
			entity.MovementTypeExit,
			entity.MovementTypeTransfer,
			entity.MovementTypeProjectUse,
		},
	})
}

// Create godoc
// @Summary      Registrar movimiento de inventario
// @Description  ENTRY/TRANSFER suman stock; EXIT/PROJECT_USE restan y exigen
//               stock suficiente. La secuencia verificación-actualización corre
//               en una sola transacción con bloqueo de fila.
// @Tags         movimientos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "product_id, type, quantity, project, notes"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.FieldErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.FieldErrorResponse
// @Router       /movimientos/nuevo/ [post]
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	// El dueño del movimiento es siempre el usuario autenticado.
	movement, err := h.uc.RegisterMovement(c.Context(), inventory.MovementInput{
		ProductID: in.ProductID,
		UserID:    GetUserID(c),
		Type:      in.Type,
		Quantity:  in.Quantity,
		Project:   in.Project,
		Notes:     in.Notes,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementResponse{
		ID:        movement.ID,
		ProductID: movement.ProductID,
		Type:      movement.Type,
		Quantity:  movement.Quantity,
		Date:      movement.Date,
		UserID:    movement.UserID,
		Project:   movement.Project,
		Notes:     movement.Notes,
	})
}
