package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jcastellanos/inventario-stock/internal/application/dto"
	"github.com/jcastellanos/inventario-stock/internal/domain"
	"github.com/jcastellanos/inventario-stock/internal/domain/entity"
	"github.com/jcastellanos/inventario-stock/internal/domain/repository"
)

// RegisterMovementUseCase registra movimientos de inventario de forma
// transaccional, con bloqueo de fila sobre el producto (SELECT FOR UPDATE)
// para que dos salidas concurrentes no pasen ambas la verificación de stock.
type RegisterMovementUseCase struct {
	txRunner     TxRunner
	movementRepo repository.InventoryMovementRepository
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(txRunner TxRunner, movementRepo repository.InventoryMovementRepository) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{txRunner: txRunner, movementRepo: movementRepo}
}

// MovementInput entrada para registrar un movimiento. UserID es el usuario
// autenticado; se adjunta como dueño del movimiento, no viene del cliente.
type MovementInput struct {
	ProductID string
	UserID    string
	Type      string
	Quantity  int64
	Project   string
	Notes     string
}

// RegisterMovement valida la entrada y, dentro de una transacción:
// bloquea la fila del producto, aplica la aritmética según el tipo
// (ENTRY/TRANSFER suman; EXIT/PROJECT_USE restan si hay stock suficiente),
// persiste la nueva cantidad y guarda el movimiento con timestamp del server.
// Si el stock es insuficiente no se escribe nada: ni movimiento ni cantidad.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInput) (*entity.InventoryMovement, error) {
	if input.ProductID == "" {
		return nil, domain.NewValidationError("product_id", "el producto es requerido")
	}
	if !entity.ValidMovementType(input.Type) {
		return nil, domain.NewValidationError("type", "tipo de movimiento inválido")
	}
	if input.Quantity <= 0 {
		return nil, domain.NewValidationError("quantity", "la cantidad debe ser positiva")
	}

	now := time.Now()
	var userID *string
	if input.UserID != "" {
		uid := input.UserID
		userID = &uid
	}
	movement := &entity.InventoryMovement{
		ID:        uuid.New().String(),
		ProductID: input.ProductID,
		Type:      input.Type,
		Quantity:  input.Quantity,
		Date:      now,
		UserID:    userID,
		Project:   input.Project,
		Notes:     input.Notes,
	}

	err := uc.txRunner.Run(ctx, func(
		movementRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		// Bloquea la fila del producto hasta el commit.
		product, err := productRepo.GetForUpdate(input.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		newQty := product.Quantity
		if entity.MovementAdds(input.Type) {
			newQty += input.Quantity
		} else {
			if product.Quantity < input.Quantity {
				return domain.ErrInsufficientStock
			}
			newQty -= input.Quantity
		}
		if err := productRepo.UpdateQuantity(product.ID, newQty); err != nil {
			return err
		}
		return movementRepo.Create(movement)
	})
	if err != nil {
		return nil, err
	}
	return movement, nil
}

// List lista movimientos (más reciente primero). Los usuarios fuera de los
// grupos del sistema reciben una página vacía, no un error.
func (uc *RegisterMovementUseCase) List(userGroups []string, isSuperuser bool, limit, offset int) (*dto.MovementListResponse, error) {
	out := &dto.MovementListResponse{
		Items: []dto.MovementResponse{},
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
	if !isSuperuser && !entity.MemberOfAny(userGroups, entity.AllGroups()) {
		return out, nil
	}
	movements, err := uc.movementRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	for _, m := range movements {
		out.Items = append(out.Items, dto.MovementResponse{
			ID:        m.ID,
			ProductID: m.ProductID,
			Type:      m.Type,
			Quantity:  m.Quantity,
			Date:      m.Date,
			UserID:    m.UserID,
			Project:   m.Project,
			Notes:     m.Notes,
		})
	}
	return out, nil
}
