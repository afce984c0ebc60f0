package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics(t *testing.T) {
	// 各テストで新しいレジストリを使用
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)

	require.NotNil(t, m)
	assert.NotNil(t, m.HTTPRequestsTotal)
	assert.NotNil(t, m.HTTPRequestDuration)
	assert.NotNil(t, m.PipelineRequestsTotal)
	assert.NotNil(t, m.PipelineRequestDuration)
	assert.NotNil(t, m.ReservationsByStatus)
}

func TestPipelineRequestsTotal(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)

	m.PipelineRequestsTotal.WithLabelValues("CreateReservation", "success").Inc()
	m.PipelineRequestsTotal.WithLabelValues("CreateReservation", "validation").Inc()
	m.PipelineRequestsTotal.WithLabelValues("ConfirmReservation", "not_found").Inc()

	families, err := reg.Gather()
	require.NoError(t, err)

	var found bool
	for _, f := range families {
		if f.GetName() == "pipeline_requests_total" {
			found = true
			assert.Equal(t, 3, len(f.GetMetric()))
		}
	}
	assert.True(t, found, "pipeline_requests_total metric not found")
}

func TestReservationsByStatus(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)

	m.ReservationsByStatus.WithLabelValues("created").Set(5)
	m.ReservationsByStatus.WithLabelValues("confirmed").Set(3)

	families, err := reg.Gather()
	require.NoError(t, err)

	var found bool
	for _, f := range families {
		if f.GetName() == "reservations_by_status" {
			found = true
			assert.Equal(t, 2, len(f.GetMetric()))
		}
	}
	assert.True(t, found)
}
