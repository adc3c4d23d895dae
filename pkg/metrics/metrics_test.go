package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_CuentaTransicionesYAjustes(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.QuoteTransition("approve")
	m.QuoteTransition("approve")
	m.StockAdjusted("decrease", 3, nil)
	m.StockAdjusted("decrease", 5, errors.New("falló"))
	m.ObserveHTTP("GET", "/api/quotes", 200, 20*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.quoteTransitions.WithLabelValues("approve")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.stockAdjustments.WithLabelValues("decrease", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.stockAdjustments.WithLabelValues("decrease", "error")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.stockUnits.WithLabelValues("decrease")), "las unidades fallidas no se cuentan")

	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, mfs, 4)
}

func TestMetrics_ReceptorNilNoFalla(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.QuoteTransition("create")
		m.StockAdjusted("increase", 1, nil)
		m.ObserveHTTP("GET", "/", 200, time.Millisecond)
	})
	assert.NotPanics(t, func() {
		New(nil).QuoteTransition("create")
	})
}
