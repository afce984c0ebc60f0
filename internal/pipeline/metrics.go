package pipeline

import (
	"context"
	"time"

	"github.com/flaviocavalcantet/Reservation-Management-API-sub001/internal/domain/domainerr"
	"github.com/flaviocavalcantet/Reservation-Management-API-sub001/internal/pkg/metrics"
)

// MetricsBehavior はリクエスト名と結果ごとの件数・処理時間を記録する
type MetricsBehavior struct {
	m *metrics.Metrics
}

// NewMetricsBehavior はメトリクス Behavior を作成する
func NewMetricsBehavior(m *metrics.Metrics) *MetricsBehavior {
	return &MetricsBehavior{m: m}
}

func (b *MetricsBehavior) Handle(ctx context.Context, req Request, next Next) (any, error) {
	start := time.Now()

	out, err := next(ctx)

	name := req.RequestName()
	b.m.PipelineRequestDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	b.m.PipelineRequestsTotal.WithLabelValues(name, outcomeLabel(err)).Inc()

	return out, err
}

func outcomeLabel(err error) string {
	if err == nil {
		return "success"
	}
	if kind, ok := domainerr.KindOf(err); ok {
		return string(kind)
	}
	return "fault"
}
