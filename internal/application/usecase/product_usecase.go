package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jcastellanos/inventario-stock/internal/application/dto"
	"github.com/jcastellanos/inventario-stock/internal/domain"
	"github.com/jcastellanos/inventario-stock/internal/domain/entity"
	"github.com/jcastellanos/inventario-stock/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// ProductUseCase casos de uso CRUD para productos. El stock inicial se fija al
// crear y puede corregirse al editar; los ajustes operativos van por movimientos.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	txRunner     ProductTxRunner
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categoryRepo repository.CategoryRepository, txRunner ProductTxRunner) *ProductUseCase {
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo, txRunner: txRunner}
}

// ParseCategoryNames divide el texto libre de nuevas categorías por comas,
// recorta espacios y descarta entradas vacías.
func ParseCategoryNames(raw string) []string {
	var names []string
	for _, part := range strings.Split(raw, ",") {
		name := strings.TrimSpace(part)
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

// Create valida y persiste un producto con sus categorías en una sola
// transacción. El campo NewCategories solo se procesa si el usuario pertenece
// al grupo Administrador; para el resto se ignora aunque venga en el request.
func (uc *ProductUseCase) Create(ctx context.Context, userGroups []string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := validateProductCreate(in); err != nil {
		return nil, err
	}
	expiration, err := parseOptionalDate(in.ExpirationDate)
	if err != nil {
		return nil, domain.NewValidationError("expiration_date", "fecha inválida, use YYYY-MM-DD")
	}
	threshold := int64(entity.DefaultLowStockThreshold)
	if in.LowStockThreshold != nil {
		threshold = *in.LowStockThreshold
	}

	now := time.Now()
	product := &entity.Product{
		ID:                uuid.New().String(),
		Code:              strings.TrimSpace(in.Code),
		Name:              in.Name,
		Description:       in.Description,
		Quantity:          in.Quantity,
		Location:          in.Location,
		ExpirationDate:    expiration,
		LowStockThreshold: threshold,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	isAdmin := entity.MemberOfAny(userGroups, []string{entity.GroupAdministrador})

	err = uc.txRunner.RunProduct(ctx, func(
		productRepo repository.ProductRepository,
		categoryRepo repository.CategoryRepository,
		_ repository.InventoryMovementRepository,
		_ repository.PurchasePriceRepository,
	) error {
		existing, err := productRepo.GetByCode(product.Code)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.NewValidationError("code", "ya existe un producto con ese código")
		}
		// Primero el producto (para obtener identidad), luego las categorías.
		if err := productRepo.Create(product); err != nil {
			return err
		}
		if err := attachSelected(productRepo, categoryRepo, product.ID, in.CategoryIDs); err != nil {
			return err
		}
		if isAdmin && in.NewCategories != "" {
			if err := attachNew(productRepo, categoryRepo, product.ID, in.NewCategories); err != nil {
				return err
			}
		}
		cats, err := productRepo.CategoriesOf(product.ID)
		if err != nil {
			return err
		}
		product.Categories = cats
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update edita los campos del producto y reemplaza su conjunto de categorías;
// mismas reglas de admin para NewCategories. La fila se toma con bloqueo para
// que una corrección de cantidad no pise un movimiento concurrente.
func (uc *ProductUseCase) Update(ctx context.Context, userGroups []string, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if in.LowStockThreshold != nil && *in.LowStockThreshold < 0 {
		return nil, domain.NewValidationError("low_stock_threshold", "el umbral no puede ser negativo")
	}
	if in.Quantity != nil && *in.Quantity < 0 {
		return nil, domain.NewValidationError("quantity", "la cantidad no puede ser negativa")
	}
	isAdmin := entity.MemberOfAny(userGroups, []string{entity.GroupAdministrador})

	var product *entity.Product
	err := uc.txRunner.RunProduct(ctx, func(
		productRepo repository.ProductRepository,
		categoryRepo repository.CategoryRepository,
		_ repository.InventoryMovementRepository,
		_ repository.PurchasePriceRepository,
	) error {
		var err error
		product, err = productRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if in.Code != nil {
			code := strings.TrimSpace(*in.Code)
			if code == "" {
				return domain.NewValidationError("code", "el código es requerido")
			}
			existing, err := productRepo.GetByCode(code)
			if err != nil {
				return err
			}
			if existing != nil && existing.ID != product.ID {
				return domain.NewValidationError("code", "ya existe un producto con ese código")
			}
			product.Code = code
		}
		if in.Name != nil {
			if strings.TrimSpace(*in.Name) == "" {
				return domain.NewValidationError("name", "el nombre es requerido")
			}
			product.Name = *in.Name
		}
		if in.Description != nil {
			product.Description = *in.Description
		}
		if in.Location != nil {
			product.Location = *in.Location
		}
		if in.ExpirationDate != nil {
			if *in.ExpirationDate == "" {
				product.ExpirationDate = nil
			} else {
				exp, err := parseOptionalDate(in.ExpirationDate)
				if err != nil {
					return domain.NewValidationError("expiration_date", "fecha inválida, use YYYY-MM-DD")
				}
				product.ExpirationDate = exp
			}
		}
		if in.LowStockThreshold != nil {
			product.LowStockThreshold = *in.LowStockThreshold
		}
		if in.Quantity != nil {
			product.Quantity = *in.Quantity
		}
		product.UpdatedAt = time.Now()
		if err := productRepo.Update(product); err != nil {
			return err
		}
		if in.CategoryIDs != nil {
			if err := validateCategoryIDs(categoryRepo, in.CategoryIDs); err != nil {
				return err
			}
			if err := productRepo.ReplaceCategories(product.ID, in.CategoryIDs); err != nil {
				return err
			}
		}
		if isAdmin && in.NewCategories != "" {
			if err := attachNew(productRepo, categoryRepo, product.ID, in.NewCategories); err != nil {
				return err
			}
		}
		cats, err := productRepo.CategoriesOf(product.ID)
		if err != nil {
			return err
		}
		product.Categories = cats
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete borra el producto y, en cascada dentro de la misma transacción, sus
// movimientos y su historial de precios.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.RunProduct(ctx, func(
		productRepo repository.ProductRepository,
		_ repository.CategoryRepository,
		movementRepo repository.InventoryMovementRepository,
		priceRepo repository.PurchasePriceRepository,
	) error {
		product, err := productRepo.GetByID(id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if err := movementRepo.DeleteByProduct(id); err != nil {
			return err
		}
		if err := priceRepo.DeleteByProduct(id); err != nil {
			return err
		}
		return productRepo.Delete(id)
	})
}

// GetByID obtiene un producto con sus categorías.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	cats, err := uc.repo.CategoriesOf(product.ID)
	if err != nil {
		return nil, err
	}
	product.Categories = cats
	return toProductResponse(product), nil
}

// GetByCode obtiene un producto por su código único.
func (uc *ProductUseCase) GetByCode(code string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	cats, err := uc.repo.CategoriesOf(product.ID)
	if err != nil {
		return nil, err
	}
	product.Categories = cats
	return toProductResponse(product), nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(limit, offset int) (*dto.ProductListResponse, error) {
	products, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		cats, err := uc.repo.CategoriesOf(p.ID)
		if err != nil {
			return nil, err
		}
		p.Categories = cats
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// FormData devuelve las categorías existentes (y el producto al editar) para
// que el renderizador construya el formulario.
func (uc *ProductUseCase) FormData(productID string) (*dto.ProductFormResponse, error) {
	cats, err := uc.categoryRepo.List()
	if err != nil {
		return nil, err
	}
	out := &dto.ProductFormResponse{Categories: toCategoryResponses(cats)}
	if productID != "" {
		product, err := uc.GetByID(productID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		out.Product = product
	}
	return out, nil
}

func validateProductCreate(in dto.CreateProductRequest) error {
	ve := &domain.ValidationError{}
	if strings.TrimSpace(in.Code) == "" {
		ve.Add("code", "el código es requerido")
	}
	if strings.TrimSpace(in.Name) == "" {
		ve.Add("name", "el nombre es requerido")
	}
	if in.Quantity < 0 {
		ve.Add("quantity", "la cantidad no puede ser negativa")
	}
	if in.LowStockThreshold != nil && *in.LowStockThreshold < 0 {
		ve.Add("low_stock_threshold", "el umbral no puede ser negativo")
	}
	if len(ve.Fields) > 0 {
		return ve
	}
	return nil
}

func validateCategoryIDs(categoryRepo repository.CategoryRepository, ids []string) error {
	for _, id := range ids {
		cat, err := categoryRepo.GetByID(id)
		if err != nil {
			return err
		}
		if cat == nil {
			return domain.NewValidationError("category_ids", "categoría inexistente: "+id)
		}
	}
	return nil
}

func attachSelected(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository, productID string, ids []string) error {
	if err := validateCategoryIDs(categoryRepo, ids); err != nil {
		return err
	}
	for _, id := range ids {
		if err := productRepo.AttachCategory(productID, id); err != nil {
			return err
		}
	}
	return nil
}

func attachNew(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository, productID, raw string) error {
	for _, name := range ParseCategoryNames(raw) {
		cat, err := categoryRepo.GetOrCreateByName(name)
		if err != nil {
			return err
		}
		if err := productRepo.AttachCategory(productID, cat.ID); err != nil {
			return err
		}
	}
	return nil
}

func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

func toCategoryResponses(cats []*entity.Category) []dto.CategoryResponse {
	out := make([]dto.CategoryResponse, 0, len(cats))
	for _, c := range cats {
		out = append(out, dto.CategoryResponse{ID: c.ID, Name: c.Name})
	}
	return out
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	cats := make([]dto.CategoryResponse, 0, len(p.Categories))
	for _, c := range p.Categories {
		cats = append(cats, dto.CategoryResponse{ID: c.ID, Name: c.Name})
	}
	return &dto.ProductResponse{
		ID:                p.ID,
		Code:              p.Code,
		Name:              p.Name,
		Description:       p.Description,
		Quantity:          p.Quantity,
		Location:          p.Location,
		ExpirationDate:    formatOptionalDate(p.ExpirationDate),
		LowStockThreshold: p.LowStockThreshold,
		Categories:        cats,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
