package usecase_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcastellanos/inventario-stock/internal/application/dto"
	"github.com/jcastellanos/inventario-stock/internal/application/usecase"
	"github.com/jcastellanos/inventario-stock/internal/domain"
	"github.com/jcastellanos/inventario-stock/internal/domain/entity"
	"github.com/jcastellanos/inventario-stock/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products   map[string]*entity.Product
	categories map[string][]string // productID → categoryIDs
	catRepo    *fakeCategoryRepo
}

func newFakeProductRepo(catRepo *fakeCategoryRepo) *fakeProductRepo {
	return &fakeProductRepo{
		products:   make(map[string]*entity.Product),
		categories: make(map[string][]string),
		catRepo:    catRepo,
	}
}

func (r *fakeProductRepo) Create(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.products[id], nil
}
func (r *fakeProductRepo) GetByCode(code string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.Code == code {
			return p, nil
		}
	}
	return nil, nil
}
func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.products[id], nil
}
func (r *fakeProductRepo) Update(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) UpdateQuantity(id string, quantity int64) error {
	if p, ok := r.products[id]; ok {
		p.Quantity = quantity
	}
	return nil
}
func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, nil
}
func (r *fakeProductRepo) ListLowStock() ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.Quantity <= p.LowStockThreshold {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Quantity < out[j].Quantity })
	return out, nil
}
func (r *fakeProductRepo) ListExpiring(until time.Time) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.ExpirationDate != nil && !p.ExpirationDate.After(until) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExpirationDate.Before(*out[j].ExpirationDate) })
	return out, nil
}
func (r *fakeProductRepo) ListForReport(filter repository.ReportFilter) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) Delete(id string) error {
	delete(r.products, id)
	delete(r.categories, id)
	return nil
}
func (r *fakeProductRepo) AttachCategory(productID, categoryID string) error {
	for _, id := range r.categories[productID] {
		if id == categoryID {
			return nil // idempotente
		}
	}
	r.categories[productID] = append(r.categories[productID], categoryID)
	return nil
}
func (r *fakeProductRepo) ReplaceCategories(productID string, categoryIDs []string) error {
	r.categories[productID] = append([]string(nil), categoryIDs...)
	return nil
}
func (r *fakeProductRepo) CategoriesOf(productID string) ([]entity.Category, error) {
	var out []entity.Category
	for _, id := range r.categories[productID] {
		if c := r.catRepo.byID[id]; c != nil {
			out = append(out, *c)
		}
	}
	return out, nil
}

type fakeCategoryRepo struct {
	byID    map[string]*entity.Category
	creates int // número de categorías creadas (no reutilizadas)
}

func newFakeCategoryRepo(names ...string) *fakeCategoryRepo {
	r := &fakeCategoryRepo{byID: make(map[string]*entity.Category)}
	for _, name := range names {
		c := &entity.Category{ID: uuid.New().String(), Name: name}
		r.byID[c.ID] = c
	}
	return r
}

func (r *fakeCategoryRepo) Create(c *entity.Category) error {
	r.byID[c.ID] = c
	r.creates++
	return nil
}
func (r *fakeCategoryRepo) GetByID(id string) (*entity.Category, error) { return r.byID[id], nil }
func (r *fakeCategoryRepo) GetByName(name string) (*entity.Category, error) {
	for _, c := range r.byID {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, nil
}
func (r *fakeCategoryRepo) GetOrCreateByName(name string) (*entity.Category, error) {
	if c, _ := r.GetByName(name); c != nil {
		return c, nil
	}
	c := &entity.Category{ID: uuid.New().String(), Name: name}
	if err := r.Create(c); err != nil {
		return nil, err
	}
	return c, nil
}
func (r *fakeCategoryRepo) List() ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range r.byID {
		out = append(out, c)
	}
	return out, nil
}

type fakeMovementRepo struct{ deletedFor []string }

func (r *fakeMovementRepo) Create(m *entity.InventoryMovement) error { return nil }
func (r *fakeMovementRepo) List(limit, offset int) ([]*entity.InventoryMovement, error) {
	return nil, nil
}
func (r *fakeMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	return nil, nil
}
func (r *fakeMovementRepo) DeleteByProduct(productID string) error {
	r.deletedFor = append(r.deletedFor, productID)
	return nil
}

type fakePriceRepo struct {
	prices     []*entity.PurchasePrice
	deletedFor []string
}

func (r *fakePriceRepo) Create(p *entity.PurchasePrice) error {
	r.prices = append(r.prices, p)
	return nil
}
func (r *fakePriceRepo) ListByProduct(productID string) ([]*entity.PurchasePrice, error) {
	var out []*entity.PurchasePrice
	for _, p := range r.prices {
		if p.ProductID == productID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PurchaseDate.After(out[j].PurchaseDate) })
	return out, nil
}
func (r *fakePriceRepo) DeleteByProduct(productID string) error {
	r.deletedFor = append(r.deletedFor, productID)
	return nil
}

type fakeProductTxRunner struct {
	productRepo  *fakeProductRepo
	categoryRepo *fakeCategoryRepo
	movementRepo *fakeMovementRepo
	priceRepo    *fakePriceRepo
}

func (f *fakeProductTxRunner) RunProduct(ctx context.Context, fn func(
	repository.ProductRepository,
	repository.CategoryRepository,
	repository.InventoryMovementRepository,
	repository.PurchasePriceRepository,
) error) error {
	return fn(f.productRepo, f.categoryRepo, f.movementRepo, f.priceRepo)
}

type fixture struct {
	uc           *usecase.ProductUseCase
	productRepo  *fakeProductRepo
	categoryRepo *fakeCategoryRepo
	movementRepo *fakeMovementRepo
	priceRepo    *fakePriceRepo
}

func newFixture(categoryNames ...string) *fixture {
	catRepo := newFakeCategoryRepo(categoryNames...)
	productRepo := newFakeProductRepo(catRepo)
	movementRepo := &fakeMovementRepo{}
	priceRepo := &fakePriceRepo{}
	runner := &fakeProductTxRunner{
		productRepo:  productRepo,
		categoryRepo: catRepo,
		movementRepo: movementRepo,
		priceRepo:    priceRepo,
	}
	return &fixture{
		uc:           usecase.NewProductUseCase(productRepo, catRepo, runner),
		productRepo:  productRepo,
		categoryRepo: catRepo,
		movementRepo: movementRepo,
		priceRepo:    priceRepo,
	}
}

var gestorGroups = []string{entity.GroupGestor}
var adminGroups = []string{entity.GroupAdministrador}

// ──────────────────────────────────────────────────────────────────────────────
// ParseCategoryNames
// ──────────────────────────────────────────────────────────────────────────────

func TestParseCategoryNames(t *testing.T) {
	cases := []struct {
		raw  string
		want []string
	}{
		{"Herramientas", []string{"Herramientas"}},
		{" Tornillería , Eléctricos ", []string{"Tornillería", "Eléctricos"}},
		{"a,,b,", []string{"a", "b"}},
		{"", nil},
		{" , , ", nil},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, usecase.ParseCategoryNames(tc.raw), "raw=%q", tc.raw)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestProductCreate_ConCategoriasSeleccionadas(t *testing.T) {
	f := newFixture("Herramientas")
	cat, _ := f.categoryRepo.GetByName("Herramientas")

	resp, err := f.uc.Create(context.Background(), gestorGroups, dto.CreateProductRequest{
		Code:        "TLD-001",
		Name:        "Taladro",
		Quantity:    10,
		Location:    "Bodega A",
		CategoryIDs: []string{cat.ID},
	})
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, "TLD-001", resp.Code)
	assert.Equal(t, int64(10), resp.Quantity)
	assert.Equal(t, int64(entity.DefaultLowStockThreshold), resp.LowStockThreshold,
		"sin umbral explícito debe aplicarse el umbral por defecto")
	require.Len(t, resp.Categories, 1)
	assert.Equal(t, "Herramientas", resp.Categories[0].Name)
}

func TestProductCreate_CodigoDuplicado_RetornaValidacion(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Create(context.Background(), gestorGroups, dto.CreateProductRequest{
		Code: "DUP-01", Name: "Original", Quantity: 1,
	})
	require.NoError(t, err)

	_, err = f.uc.Create(context.Background(), gestorGroups, dto.CreateProductRequest{
		Code: "DUP-01", Name: "Copia", Quantity: 1,
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "code")
}

func TestProductCreate_ValidacionAcumulaCampos(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Create(context.Background(), gestorGroups, dto.CreateProductRequest{
		Code: "  ", Name: "", Quantity: -1,
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "code")
	assert.Contains(t, verr.Fields, "name")
	assert.Contains(t, verr.Fields, "quantity")
}

func TestProductCreate_CategoriaInexistente_RetornaValidacion(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Create(context.Background(), gestorGroups, dto.CreateProductRequest{
		Code: "X-1", Name: "X", CategoryIDs: []string{"no-existe"},
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "category_ids")
}

func TestProductCreate_FechaVencimientoInvalida(t *testing.T) {
	f := newFixture()
	bad := "31/12/2026"
	_, err := f.uc.Create(context.Background(), gestorGroups, dto.CreateProductRequest{
		Code: "X-1", Name: "X", ExpirationDate: &bad,
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "expiration_date")
}

// ──────────────────────────────────────────────────────────────────────────────
// NewCategories — solo Administrador
// ──────────────────────────────────────────────────────────────────────────────

func TestProductCreate_AdminCreaNuevasCategorias(t *testing.T) {
	f := newFixture("Herramientas")

	resp, err := f.uc.Create(context.Background(), adminGroups, dto.CreateProductRequest{
		Code:          "X-1",
		Name:          "X",
		NewCategories: "Herramientas, Tornillería",
	})
	require.NoError(t, err)

	// "Herramientas" ya existía y debe reutilizarse; solo "Tornillería" se crea.
	assert.Equal(t, 1, f.categoryRepo.creates,
		"get-or-create no debe duplicar categorías existentes")
	require.Len(t, resp.Categories, 2)
}

func TestProductCreate_NoAdminIgnoraNuevasCategorias(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Create(context.Background(), gestorGroups, dto.CreateProductRequest{
		Code:          "X-1",
		Name:          "X",
		NewCategories: "Tornillería",
	})
	require.NoError(t, err)

	assert.Equal(t, 0, f.categoryRepo.creates,
		"un usuario sin grupo Administrador no puede crear categorías")
	assert.Empty(t, resp.Categories)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update
// ──────────────────────────────────────────────────────────────────────────────

func TestProductUpdate_ReemplazaCategorias(t *testing.T) {
	f := newFixture("A", "B")
	catA, _ := f.categoryRepo.GetByName("A")
	catB, _ := f.categoryRepo.GetByName("B")

	created, err := f.uc.Create(context.Background(), gestorGroups, dto.CreateProductRequest{
		Code: "X-1", Name: "X", CategoryIDs: []string{catA.ID},
	})
	require.NoError(t, err)

	newName := "X actualizado"
	resp, err := f.uc.Update(context.Background(), gestorGroups, created.ID, dto.UpdateProductRequest{
		Name:        &newName,
		CategoryIDs: []string{catB.ID},
	})
	require.NoError(t, err)

	assert.Equal(t, "X actualizado", resp.Name)
	require.Len(t, resp.Categories, 1)
	assert.Equal(t, "B", resp.Categories[0].Name)
}

func TestProductUpdate_CamposAusentesNoSeTocan(t *testing.T) {
	f := newFixture()
	created, err := f.uc.Create(context.Background(), gestorGroups, dto.CreateProductRequest{
		Code: "X-1", Name: "X", Quantity: 42,
	})
	require.NoError(t, err)

	loc := "Bodega B"
	resp, err := f.uc.Update(context.Background(), gestorGroups, created.ID, dto.UpdateProductRequest{
		Location: &loc,
	})
	require.NoError(t, err)
	assert.Equal(t, "X-1", resp.Code)
	assert.Equal(t, int64(42), resp.Quantity,
		"los campos no enviados conservan su valor")
}

func TestProductUpdate_CorrigeCodigoYCantidad(t *testing.T) {
	f := newFixture()
	created, err := f.uc.Create(context.Background(), gestorGroups, dto.CreateProductRequest{
		Code: "TLD-O01", Name: "Taladro", Quantity: 10,
	})
	require.NoError(t, err)

	// Corrección de un código mal digitado y del stock registrado.
	code := "TLD-001"
	qty := int64(12)
	resp, err := f.uc.Update(context.Background(), gestorGroups, created.ID, dto.UpdateProductRequest{
		Code:     &code,
		Quantity: &qty,
	})
	require.NoError(t, err)
	assert.Equal(t, "TLD-001", resp.Code)
	assert.Equal(t, int64(12), resp.Quantity)
}

func TestProductUpdate_CodigoDuplicado_RetornaValidacion(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Create(context.Background(), gestorGroups, dto.CreateProductRequest{
		Code: "A-1", Name: "A",
	})
	require.NoError(t, err)
	created, err := f.uc.Create(context.Background(), gestorGroups, dto.CreateProductRequest{
		Code: "B-2", Name: "B",
	})
	require.NoError(t, err)

	code := "A-1"
	_, err = f.uc.Update(context.Background(), gestorGroups, created.ID, dto.UpdateProductRequest{
		Code: &code,
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "code")
}

func TestProductUpdate_MismoCodigoPropio_EsValido(t *testing.T) {
	f := newFixture()
	created, err := f.uc.Create(context.Background(), gestorGroups, dto.CreateProductRequest{
		Code: "A-1", Name: "A",
	})
	require.NoError(t, err)

	// Reenviar el código actual del producto no es un duplicado.
	code := "A-1"
	resp, err := f.uc.Update(context.Background(), gestorGroups, created.ID, dto.UpdateProductRequest{
		Code: &code,
	})
	require.NoError(t, err)
	assert.Equal(t, "A-1", resp.Code)
}

func TestProductUpdate_CantidadNegativa_RetornaValidacion(t *testing.T) {
	f := newFixture()
	created, err := f.uc.Create(context.Background(), gestorGroups, dto.CreateProductRequest{
		Code: "A-1", Name: "A", Quantity: 5,
	})
	require.NoError(t, err)

	qty := int64(-1)
	_, err = f.uc.Update(context.Background(), gestorGroups, created.ID, dto.UpdateProductRequest{
		Quantity: &qty,
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "quantity")
}

func TestProductUpdate_Inexistente_RetornaNotFound(t *testing.T) {
	f := newFixture()
	name := "Y"
	_, err := f.uc.Update(context.Background(), gestorGroups, "no-existe", dto.UpdateProductRequest{
		Name: &name,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete — cascada
// ──────────────────────────────────────────────────────────────────────────────

func TestProductDelete_EliminaEnCascada(t *testing.T) {
	f := newFixture()
	created, err := f.uc.Create(context.Background(), gestorGroups, dto.CreateProductRequest{
		Code: "X-1", Name: "X",
	})
	require.NoError(t, err)

	require.NoError(t, f.uc.Delete(context.Background(), created.ID))

	assert.Empty(t, f.productRepo.products, "el producto debe desaparecer")
	assert.Equal(t, []string{created.ID}, f.movementRepo.deletedFor,
		"los movimientos del producto deben eliminarse en cascada")
	assert.Equal(t, []string{created.ID}, f.priceRepo.deletedFor,
		"el historial de precios debe eliminarse en cascada")
}

func TestProductDelete_Inexistente_RetornaNotFound(t *testing.T) {
	f := newFixture()
	err := f.uc.Delete(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, f.movementRepo.deletedFor)
}
