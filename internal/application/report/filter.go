package report

import (
	"strings"
	"time"

	"github.com/jhoicas/repuestos-api/internal/application/dto"
	"github.com/jhoicas/repuestos-api/internal/domain"
	"golang.org/x/text/cases"
)

// AllWarehouses valor del filtro de bodega que incluye todas.
const AllWarehouses = "all"

// Filter criterios comunes de los reportes. Las fechas son inclusivas y un valor cero no limita.
type Filter struct {
	Start       time.Time
	End         time.Time
	Client      string
	WarehouseID string
}

var folder = cases.Fold()

// ParseFilter convierte los parámetros de consulta en un filtro.
func ParseFilter(q dto.ReportQuery) (Filter, error) {
	f := Filter{Client: strings.TrimSpace(q.Client), WarehouseID: q.WarehouseID}
	var err error
	if q.StartDate != "" {
		if f.Start, err = time.Parse(dto.DateLayout, q.StartDate); err != nil {
			return Filter{}, domain.Invalid("Fecha de inicio inválida.")
		}
	}
	if q.EndDate != "" {
		if f.End, err = time.Parse(dto.DateLayout, q.EndDate); err != nil {
			return Filter{}, domain.Invalid("Fecha de fin inválida.")
		}
	}
	if !f.Start.IsZero() && !f.End.IsZero() && f.End.Before(f.Start) {
		return Filter{}, domain.Invalid("La fecha de fin no puede ser anterior a la de inicio.")
	}
	return f, nil
}

// matches aplica rango de fechas y nombre de cliente.
func (f Filter) matches(date time.Time, client string) bool {
	day := truncateDay(date)
	if !f.Start.IsZero() && day.Before(truncateDay(f.Start)) {
		return false
	}
	if !f.End.IsZero() && day.After(truncateDay(f.End)) {
		return false
	}
	if f.Client != "" && !strings.Contains(folder.String(client), folder.String(f.Client)) {
		return false
	}
	return true
}

func (f Filter) matchesWarehouse(id string) bool {
	return f.WarehouseID == "" || f.WarehouseID == AllWarehouses || f.WarehouseID == id
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
