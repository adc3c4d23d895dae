package export

import "github.com/jhoicas/repuestos-api/internal/domain"

// Table datos tabulares listos para exportar: encabezados y filas en el mismo orden.
// Las celdas pueden ser string, enteros, float64, decimal.Decimal o nil.
type Table struct {
	Sheet   string
	Headers []string
	Rows    [][]any
}

// Append agrega una fila.
func (t *Table) Append(cells ...any) {
	t.Rows = append(t.Rows, cells)
}

func (t *Table) check() error {
	if t == nil || len(t.Rows) == 0 {
		return domain.ErrNoData
	}
	return nil
}
