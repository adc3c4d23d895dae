package export

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ContentTypeXLSX tipo MIME del libro de Excel exportado.
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const defaultSheet = "Datos"

// WriteXLSX escribe la tabla en un libro de una hoja con encabezado en negrita.
// Sin filas devuelve domain.ErrNoData.
func WriteXLSX(w io.Writer, t *Table) error {
	if err := t.check(); err != nil {
		return err
	}
	f := excelize.NewFile()
	defer f.Close()

	sheet := t.Sheet
	if sheet == "" {
		sheet = defaultSheet
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("renombrar hoja: %w", err)
	}

	header := make([]any, len(t.Headers))
	for i, h := range t.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("encabezados: %w", err)
	}
	if len(t.Headers) > 0 {
		style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return err
		}
		last, _ := excelize.CoordinatesToCellName(len(t.Headers), 1)
		if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
			return err
		}
	}

	for i, row := range t.Rows {
		cells := make([]any, len(row))
		for j, v := range row {
			cells[j] = xlsxCell(v)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return fmt.Errorf("fila %d: %w", i+1, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("escribir xlsx: %w", err)
	}
	return nil
}

// xlsxCell deja los montos como número para que la hoja pueda sumarlos.
func xlsxCell(v any) any {
	if d, ok := v.(decimal.Decimal); ok {
		return d.Round(2).InexactFloat64()
	}
	return v
}
