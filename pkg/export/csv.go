package export

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ContentTypeCSV tipo MIME del CSV exportado.
const ContentTypeCSV = "text/csv; charset=utf-8"

// WriteCSV escribe la tabla como CSV: encabezados y textos siempre entre comillas dobles
// (comillas internas duplicadas), números sin comillas y celdas nil vacías.
// Sin filas devuelve domain.ErrNoData y no escribe nada.
func WriteCSV(w io.Writer, t *Table) error {
	if err := t.check(); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	header := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		header[i] = quote(h)
	}
	if _, err := bw.WriteString(strings.Join(header, ",") + "\n"); err != nil {
		return err
	}

	fields := make([]string, 0, len(t.Headers))
	for _, row := range t.Rows {
		fields = fields[:0]
		for i := range t.Headers {
			var cell any
			if i < len(row) {
				cell = row[i]
			}
			fields = append(fields, csvCell(cell))
		}
		if _, err := bw.WriteString(strings.Join(fields, ",") + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func csvCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return quote(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case decimal.Decimal:
		return x.StringFixed(2)
	case bool:
		return strconv.FormatBool(x)
	default:
		return quote(fmt.Sprint(x))
	}
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
