package report

import (
	"strconv"
	"strings"
	"time"

	"github.com/jcastellanos/inventario-stock/internal/application/dto"
	"github.com/jcastellanos/inventario-stock/internal/domain"
	"github.com/jcastellanos/inventario-stock/internal/domain/entity"
	"github.com/jcastellanos/inventario-stock/internal/domain/repository"
)

// Encabezados del reporte, en el orden de las columnas.
var Headers = []string{"Código", "Nombre", "Cantidad", "Ubicación", "Fecha Vencimiento", "Categorías"}

// SheetName nombre de la hoja del reporte.
const SheetName = "Reporte Inventario"

// Writer emite el archivo de hoja de cálculo a partir de filas ya formateadas.
type Writer interface {
	Write(sheet string, headers []string, rows [][]string) ([]byte, error)
}

// UseCase genera el reporte de inventario filtrado. Solo lectura.
type UseCase struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	writer       Writer
	now          func() time.Time
}

// NewUseCase construye el generador de reportes.
func NewUseCase(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository, writer Writer) *UseCase {
	return &UseCase{productRepo: productRepo, categoryRepo: categoryRepo, writer: writer, now: time.Now}
}

// FormData devuelve las categorías disponibles para el formulario de filtros.
func (uc *UseCase) FormData() (*dto.ReportFormResponse, error) {
	cats, err := uc.categoryRepo.List()
	if err != nil {
		return nil, err
	}
	out := &dto.ReportFormResponse{Categories: make([]dto.CategoryResponse, 0, len(cats))}
	for _, c := range cats {
		out.Categories = append(out.Categories, dto.CategoryResponse{ID: c.ID, Name: c.Name})
	}
	return out, nil
}

// Generate filtra productos por rango de vencimiento y/o categorías (AND de
// los filtros presentes) y emite el xlsx. Devuelve el nombre de archivo con
// la fecha actual y el contenido. No escribe nada en persistencia.
func (uc *UseCase) Generate(in dto.ReportRequest) (filename string, content []byte, err error) {
	filter, err := parseFilter(in)
	if err != nil {
		return "", nil, err
	}
	products, err := uc.productRepo.ListForReport(filter)
	if err != nil {
		return "", nil, err
	}
	content, err = uc.writer.Write(SheetName, Headers, BuildRows(products))
	if err != nil {
		return "", nil, err
	}
	return FileName(uc.now()), content, nil
}

// BuildRows arma una fila por producto: código, nombre, cantidad, ubicación,
// vencimiento DD/MM/YYYY (vacío si no tiene) y categorías unidas por coma.
func BuildRows(products []*entity.Product) [][]string {
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		expiration := ""
		if p.ExpirationDate != nil {
			expiration = p.ExpirationDate.Format("02/01/2006")
		}
		names := make([]string, 0, len(p.Categories))
		for _, c := range p.Categories {
			names = append(names, c.Name)
		}
		rows = append(rows, []string{
			p.Code,
			p.Name,
			strconv.FormatInt(p.Quantity, 10),
			p.Location,
			expiration,
			strings.Join(names, ", "),
		})
	}
	return rows
}

// FileName nombre de descarga con la fecha ISO del día.
func FileName(t time.Time) string {
	return "reporte_inventario_" + t.Format("2006-01-02") + ".xlsx"
}

func parseFilter(in dto.ReportRequest) (repository.ReportFilter, error) {
	var filter repository.ReportFilter
	if in.StartDate != "" {
		from, err := time.Parse("2006-01-02", in.StartDate)
		if err != nil {
			return filter, domain.NewValidationError("start_date", "fecha inválida, use YYYY-MM-DD")
		}
		filter.ExpiresFrom = &from
	}
	if in.EndDate != "" {
		to, err := time.Parse("2006-01-02", in.EndDate)
		if err != nil {
			return filter, domain.NewValidationError("end_date", "fecha inválida, use YYYY-MM-DD")
		}
		filter.ExpiresTo = &to
	}
	filter.Categories = in.Categories
	return filter, nil
}
