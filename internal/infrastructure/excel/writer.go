package excel

import (
	"fmt"

	"github.com/jcastellanos/inventario-stock/internal/application/report"
	"github.com/xuri/excelize/v2"
)

var _ report.Writer = (*Writer)(nil)

// Writer emite hojas de cálculo xlsx (Office Open XML) con excelize.
type Writer struct{}

// NewWriter construye el escritor.
func NewWriter() *Writer {
	return &Writer{}
}

// Write genera un libro con una sola hoja: fila de encabezados y una fila por
// registro. Devuelve el archivo serializado.
func (w *Writer) Write(sheet string, headers []string, rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("renombrar hoja: %w", err)
	}
	if err := setRow(f, sheet, 1, headers); err != nil {
		return nil, err
	}
	for i, row := range rows {
		if err := setRow(f, sheet, i+2, row); err != nil {
			return nil, err
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serializar xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, sheet string, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("celda fila %d: %w", rowNum, err)
	}
	row := make([]any, len(values))
	for i, v := range values {
		row[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &row); err != nil {
		return fmt.Errorf("escribir fila %d: %w", rowNum, err)
	}
	return nil
}
