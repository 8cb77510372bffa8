package report_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcastellanos/inventario-stock/internal/application/dto"
	"github.com/jcastellanos/inventario-stock/internal/application/report"
	"github.com/jcastellanos/inventario-stock/internal/domain"
	"github.com/jcastellanos/inventario-stock/internal/domain/entity"
	"github.com/jcastellanos/inventario-stock/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

// fakeReportProductRepo solo implementa ListForReport con un filtro en memoria;
// el resto de los métodos del puerto no se usan en estos tests.
type fakeReportProductRepo struct {
	products   []*entity.Product
	lastFilter repository.ReportFilter
}

func (r *fakeReportProductRepo) ListForReport(filter repository.ReportFilter) ([]*entity.Product, error) {
	r.lastFilter = filter
	var out []*entity.Product
	for _, p := range r.products {
		if filter.ExpiresFrom != nil && (p.ExpirationDate == nil || p.ExpirationDate.Before(*filter.ExpiresFrom)) {
			continue
		}
		if filter.ExpiresTo != nil && (p.ExpirationDate == nil || p.ExpirationDate.After(*filter.ExpiresTo)) {
			continue
		}
		if len(filter.Categories) > 0 && !hasAnyCategory(p, filter.Categories) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func hasAnyCategory(p *entity.Product, names []string) bool {
	for _, c := range p.Categories {
		for _, n := range names {
			if c.Name == n {
				return true
			}
		}
	}
	return false
}

func (r *fakeReportProductRepo) Create(p *entity.Product) error                  { return nil }
func (r *fakeReportProductRepo) GetByID(id string) (*entity.Product, error)      { return nil, nil }
func (r *fakeReportProductRepo) GetByCode(code string) (*entity.Product, error)  { return nil, nil }
func (r *fakeReportProductRepo) GetForUpdate(id string) (*entity.Product, error) { return nil, nil }
func (r *fakeReportProductRepo) Update(p *entity.Product) error                  { return nil }
func (r *fakeReportProductRepo) UpdateQuantity(id string, quantity int64) error  { return nil }
func (r *fakeReportProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeReportProductRepo) ListLowStock() ([]*entity.Product, error) { return nil, nil }
func (r *fakeReportProductRepo) ListExpiring(until time.Time) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeReportProductRepo) Delete(id string) error                            { return nil }
func (r *fakeReportProductRepo) AttachCategory(productID, categoryID string) error { return nil }
func (r *fakeReportProductRepo) ReplaceCategories(productID string, categoryIDs []string) error {
	return nil
}
func (r *fakeReportProductRepo) CategoriesOf(productID string) ([]entity.Category, error) {
	return nil, nil
}

type fakeCategoryRepo struct{ categories []*entity.Category }

func (r *fakeCategoryRepo) Create(c *entity.Category) error                  { return nil }
func (r *fakeCategoryRepo) GetByID(id string) (*entity.Category, error)      { return nil, nil }
func (r *fakeCategoryRepo) GetByName(name string) (*entity.Category, error)  { return nil, nil }
func (r *fakeCategoryRepo) GetOrCreateByName(name string) (*entity.Category, error) {
	return nil, nil
}
func (r *fakeCategoryRepo) List() ([]*entity.Category, error) { return r.categories, nil }

// fakeWriter captura lo que se le pide escribir y devuelve un contenido fijo.
type fakeWriter struct {
	sheet   string
	headers []string
	rows    [][]string
}

func (w *fakeWriter) Write(sheet string, headers []string, rows [][]string) ([]byte, error) {
	w.sheet = sheet
	w.headers = headers
	w.rows = rows
	return []byte("xlsx-bytes"), nil
}

func datePtr(s string) *time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return &t
}

// ──────────────────────────────────────────────────────────────────────────────
// BuildRows / FileName
// ──────────────────────────────────────────────────────────────────────────────

func TestBuildRows_FormateaFilas(t *testing.T) {
	products := []*entity.Product{
		{
			Code:           "TLD-001",
			Name:           "Taladro",
			Quantity:       12,
			Location:       "Bodega A",
			ExpirationDate: datePtr("2026-12-31"),
			Categories: []entity.Category{
				{ID: "c1", Name: "Herramientas"},
				{ID: "c2", Name: "Eléctricos"},
			},
		},
		{
			Code:     "CEM-002",
			Name:     "Cemento",
			Quantity: 0,
			Location: "Patio",
		},
	}

	rows := report.BuildRows(products)
	require.Len(t, rows, 2)

	assert.Equal(t, []string{
		"TLD-001", "Taladro", "12", "Bodega A", "31/12/2026", "Herramientas, Eléctricos",
	}, rows[0], "el vencimiento va en DD/MM/YYYY y las categorías unidas por coma")

	assert.Equal(t, []string{
		"CEM-002", "Cemento", "0", "Patio", "", "",
	}, rows[1], "sin vencimiento ni categorías las celdas quedan vacías")
}

func TestFileName_IncluyeFechaISO(t *testing.T) {
	day := time.Date(2026, 8, 30, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "reporte_inventario_2026-08-30.xlsx", report.FileName(day))
}

func TestHeaders_OrdenDeColumnas(t *testing.T) {
	assert.Equal(t,
		[]string{"Código", "Nombre", "Cantidad", "Ubicación", "Fecha Vencimiento", "Categorías"},
		report.Headers)
}

// ──────────────────────────────────────────────────────────────────────────────
// Generate
// ──────────────────────────────────────────────────────────────────────────────

func buildReportFixture(products ...*entity.Product) (*report.UseCase, *fakeReportProductRepo, *fakeWriter) {
	productRepo := &fakeReportProductRepo{products: products}
	writer := &fakeWriter{}
	uc := report.NewUseCase(productRepo, &fakeCategoryRepo{}, writer)
	return uc, productRepo, writer
}

func TestGenerate_SinFiltros_IncluyeTodo(t *testing.T) {
	uc, _, writer := buildReportFixture(
		&entity.Product{Code: "A-1", Name: "A", Quantity: 1},
		&entity.Product{Code: "B-2", Name: "B", Quantity: 2},
	)

	filename, content, err := uc.Generate(dto.ReportRequest{})
	require.NoError(t, err)

	assert.Equal(t, []byte("xlsx-bytes"), content)
	assert.Contains(t, filename, "reporte_inventario_")
	assert.Contains(t, filename, ".xlsx")
	assert.Equal(t, report.SheetName, writer.sheet)
	assert.Equal(t, report.Headers, writer.headers)
	assert.Len(t, writer.rows, 2)
}

func TestGenerate_FiltraPorCategoria(t *testing.T) {
	uc, productRepo, writer := buildReportFixture(
		&entity.Product{
			Code: "A-1", Name: "A",
			Categories: []entity.Category{{ID: "c1", Name: "Electrónica"}},
		},
		&entity.Product{Code: "B-2", Name: "B"},
	)

	_, _, err := uc.Generate(dto.ReportRequest{Categories: []string{"Electrónica"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"Electrónica"}, productRepo.lastFilter.Categories)
	require.Len(t, writer.rows, 1)
	assert.Equal(t, "A-1", writer.rows[0][0])
}

func TestGenerate_FiltraPorRangoDeVencimiento(t *testing.T) {
	uc, _, writer := buildReportFixture(
		&entity.Product{Code: "A-1", Name: "A", ExpirationDate: datePtr("2026-06-15")},
		&entity.Product{Code: "B-2", Name: "B", ExpirationDate: datePtr("2027-01-10")},
		&entity.Product{Code: "C-3", Name: "C"}, // sin vencimiento: fuera del rango
	)

	_, _, err := uc.Generate(dto.ReportRequest{
		StartDate: "2026-01-01",
		EndDate:   "2026-12-31",
	})
	require.NoError(t, err)

	require.Len(t, writer.rows, 1)
	assert.Equal(t, "A-1", writer.rows[0][0])
}

func TestGenerate_FechaInvalida_RetornaValidacion(t *testing.T) {
	uc, _, _ := buildReportFixture()

	_, _, err := uc.Generate(dto.ReportRequest{StartDate: "15/06/2026"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "start_date")
}
