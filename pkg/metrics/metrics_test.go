package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, g.Write(&m))
	return m.GetGauge().GetValue()
}

func TestCounters(t *testing.T) {
	before := counterValue(t, OrdersPlacedTotal)
	OrdersPlacedTotal.Inc()
	OrdersPlacedTotal.Inc()
	assert.Equal(t, before+2, counterValue(t, OrdersPlacedTotal))

	rejected := OrdersRejectedTotal.WithLabelValues("price_mismatch")
	before = counterValue(t, rejected)
	rejected.Inc()
	assert.Equal(t, before+1, counterValue(t, rejected))
}

func TestGaugeVec(t *testing.T) {
	g := CircuitBreakerState.WithLabelValues("test")
	g.Set(1)
	assert.Equal(t, float64(1), gaugeValue(t, g))
	g.Set(0)
	assert.Equal(t, float64(0), gaugeValue(t, g))
}

func TestHistogram(t *testing.T) {
	var before, after dto.Metric
	require.NoError(t, OrderPlacementDuration.Write(&before))

	OrderPlacementDuration.Observe(0.02)

	require.NoError(t, OrderPlacementDuration.Write(&after))
	assert.Equal(t, before.GetHistogram().GetSampleCount()+1, after.GetHistogram().GetSampleCount())
}
