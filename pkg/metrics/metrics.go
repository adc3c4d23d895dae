package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics agrupa los contadores del ciclo cotización → entrega y la latencia HTTP.
// Todos los métodos aceptan receptor nil para que los casos de uso funcionen sin métricas.
type Metrics struct {
	quoteTransitions *prometheus.CounterVec
	stockAdjustments *prometheus.CounterVec
	stockUnits       *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
}

// New registra las métricas en el Registerer indicado. Con reg nil devuelve métricas inertes.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		return &Metrics{}
	}
	quoteTransitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quote_transitions_total",
		Help: "Transiciones de cotizaciones (create, approve, return, delete).",
	}, []string{"transition"})
	stockAdjustments := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_adjustments_total",
		Help: "Ajustes de stock aplicados por dirección y resultado.",
	}, []string{"direction", "result"})
	stockUnits := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_units_total",
		Help: "Unidades movidas por el libro de stock.",
	}, []string{"direction"})
	httpDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duración de las peticiones HTTP en segundos.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
	reg.MustRegister(quoteTransitions, stockAdjustments, stockUnits, httpDuration)
	return &Metrics{
		quoteTransitions: quoteTransitions,
		stockAdjustments: stockAdjustments,
		stockUnits:       stockUnits,
		httpDuration:     httpDuration,
	}
}

// QuoteTransition cuenta una transición de cotización.
func (m *Metrics) QuoteTransition(transition string) {
	if m == nil || m.quoteTransitions == nil {
		return
	}
	m.quoteTransitions.WithLabelValues(normalizeLabel(transition)).Inc()
}

// StockAdjusted cuenta un ajuste de stock completo y las unidades que movió.
func (m *Metrics) StockAdjusted(direction string, units int, err error) {
	if m == nil || m.stockAdjustments == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.stockAdjustments.WithLabelValues(normalizeLabel(direction), result).Inc()
	if err == nil && units > 0 {
		m.stockUnits.WithLabelValues(normalizeLabel(direction)).Add(float64(units))
	}
}

// ObserveHTTP registra la duración de una petición.
func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m == nil || m.httpDuration == nil {
		return
	}
	m.httpDuration.WithLabelValues(method, normalizeLabel(route), strconv.Itoa(status)).Observe(d.Seconds())
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
