package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics はアプリケーションのメトリクスを管理する
type Metrics struct {
	// HTTPリクエストの総数（method, path, status_code）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPリクエストのレイテンシ（method, path）
	HTTPRequestDuration *prometheus.HistogramVec

	// パイプラインを通過したリクエストの総数（request, outcome）
	// outcome: success / validation / invalid_state / business_rule /
	//          conflict / not_found / fault
	PipelineRequestsTotal *prometheus.CounterVec

	// パイプライン内でのリクエスト処理時間（request）
	PipelineRequestDuration *prometheus.HistogramVec

	// 状態別の予約数（status: created, confirmed, cancelled）
	ReservationsByStatus *prometheus.GaugeVec

	// クリーンアップワーカーがキャンセルした未確定予約の総数
	StaleReservationsCancelled prometheus.Counter
}

// New は新しいMetricsインスタンスを作成し、デフォルトレジストリに登録する
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry は指定したレジストリにメトリクスを登録する
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		PipelineRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pipeline_requests_total",
				Help: "Total number of pipeline requests by outcome",
			},
			[]string{"request", "outcome"},
		),
		PipelineRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pipeline_request_duration_seconds",
				Help:    "Pipeline request processing time in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
			[]string{"request"},
		),
		ReservationsByStatus: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "reservations_by_status",
				Help: "Current number of reservations by status",
			},
			[]string{"status"},
		),
		StaleReservationsCancelled: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "stale_reservations_cancelled_total",
				Help: "Total number of unconfirmed reservations cancelled by the cleanup worker",
			},
		),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.PipelineRequestsTotal,
		m.PipelineRequestDuration,
		m.ReservationsByStatus,
		m.StaleReservationsCancelled,
	)

	return m
}

// デフォルトのメトリクスインスタンス
var defaultMetrics *Metrics

// Init はデフォルトのメトリクスインスタンスを初期化する
func Init() *Metrics {
	defaultMetrics = New()
	return defaultMetrics
}

// Get はデフォルトのメトリクスインスタンスを返す
func Get() *Metrics {
	return defaultMetrics
}
