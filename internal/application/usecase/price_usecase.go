package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jcastellanos/inventario-stock/internal/application/dto"
	"github.com/jcastellanos/inventario-stock/internal/domain"
	"github.com/jcastellanos/inventario-stock/internal/domain/entity"
	"github.com/jcastellanos/inventario-stock/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// PriceUseCase historial de precios de compra (append-only, sin edición).
type PriceUseCase struct {
	priceRepo   repository.PurchasePriceRepository
	productRepo repository.ProductRepository
}

// NewPriceUseCase construye el caso de uso.
func NewPriceUseCase(priceRepo repository.PurchasePriceRepository, productRepo repository.ProductRepository) *PriceUseCase {
	return &PriceUseCase{priceRepo: priceRepo, productRepo: productRepo}
}

// Record registra un precio de compra para el producto resuelto por código
// desde la ruta. Cualquier referencia a producto enviada por el cliente se
// ignora: el producto lo fija el server.
func (uc *PriceUseCase) Record(code string, in dto.RecordPriceRequest) (*dto.PriceResponse, error) {
	product, err := uc.productRepo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Price.LessThan(decimal.Zero) {
		return nil, domain.NewValidationError("price", "el precio no puede ser negativo")
	}
	purchaseDate, err := time.Parse(dateLayout, in.PurchaseDate)
	if err != nil {
		return nil, domain.NewValidationError("purchase_date", "fecha inválida, use YYYY-MM-DD")
	}
	price := &entity.PurchasePrice{
		ID:           uuid.New().String(),
		ProductID:    product.ID,
		Price:        in.Price.Round(2),
		PurchaseDate: purchaseDate,
		CreatedAt:    time.Now(),
	}
	if err := uc.priceRepo.Create(price); err != nil {
		return nil, err
	}
	return toPriceResponse(price), nil
}

// Detail devuelve el producto con su historial de precios, más reciente primero.
func (uc *PriceUseCase) Detail(code string) (*dto.ProductDetailResponse, error) {
	product, err := uc.productRepo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	cats, err := uc.productRepo.CategoriesOf(product.ID)
	if err != nil {
		return nil, err
	}
	product.Categories = cats
	prices, err := uc.priceRepo.ListByProduct(product.ID)
	if err != nil {
		return nil, err
	}
	out := &dto.ProductDetailResponse{
		Product: *toProductResponse(product),
		Prices:  make([]dto.PriceResponse, 0, len(prices)),
	}
	for _, p := range prices {
		out.Prices = append(out.Prices, *toPriceResponse(p))
	}
	return out, nil
}

func toPriceResponse(p *entity.PurchasePrice) *dto.PriceResponse {
	return &dto.PriceResponse{
		ID:           p.ID,
		ProductID:    p.ProductID,
		Price:        p.Price,
		PurchaseDate: p.PurchaseDate.Format(dateLayout),
		CreatedAt:    p.CreatedAt,
	}
}
