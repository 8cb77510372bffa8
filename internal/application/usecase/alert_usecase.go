package usecase

import (
	"time"

	"github.com/jcastellanos/inventario-stock/internal/application/dto"
	"github.com/jcastellanos/inventario-stock/internal/domain/repository"
)

// Días de anticipación de la alerta de vencimiento.
const expirationWindowDays = 30

// AlertUseCase consultas de solo lectura para las alertas de inventario.
type AlertUseCase struct {
	repo repository.ProductRepository
	now  func() time.Time
}

// NewAlertUseCase construye el caso de uso.
func NewAlertUseCase(repo repository.ProductRepository) *AlertUseCase {
	return &AlertUseCase{repo: repo, now: time.Now}
}

// LowStock productos con cantidad en o por debajo de su propio umbral,
// ascendente por cantidad.
func (uc *AlertUseCase) LowStock() (*dto.LowStockResponse, error) {
	products, err := uc.repo.ListLowStock()
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, *toProductResponse(p))
	}
	return &dto.LowStockResponse{Items: items}, nil
}

// Expiring productos con vencimiento dentro de los próximos 30 días
// (incluidos los ya vencidos), ascendente por fecha. Incluye la fecha de hoy
// para que el caller distinga vencidos de próximos a vencer.
func (uc *AlertUseCase) Expiring() (*dto.ExpirationResponse, error) {
	today := uc.now()
	until := today.AddDate(0, 0, expirationWindowDays)
	products, err := uc.repo.ListExpiring(until)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ExpirationResponse{
		Today: today.Format(dateLayout),
		Items: items,
	}, nil
}
