package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// 目录加载
	catalogFetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rentgazer_catalog_fetch_total",
		Help: "Catalog collection fetches by source, collection and result",
	}, []string{"source", "collection", "result"})

	catalogLoadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "rentgazer_catalog_load_duration_seconds",
		Help:    "Time spent loading both catalog collections",
		Buckets: prometheus.DefBuckets,
	})

	catalogVehicles = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rentgazer_catalog_vehicles",
		Help: "Number of vehicles in the loaded catalog",
	})

	catalogOwners = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rentgazer_catalog_owners",
		Help: "Number of owners in the loaded catalog",
	})

	// 筛选
	filterRecomputeTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rentgazer_filter_recompute_total",
		Help: "Visible-set recomputations by origin (http, session)",
	}, []string{"origin"})

	filterVisibleVehicles = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "rentgazer_filter_visible_vehicles",
		Help:    "Size of the visible set after each recomputation",
		Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
	})

	// WebSocket 会话
	activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rentgazer_ws_sessions_active",
		Help: "Currently connected page-view sessions",
	})
)

// 结果标签
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// RecordFetch 记录一次集合读取
func RecordFetch(source, collection string, err error) {
	result := ResultSuccess
	if err != nil {
		result = ResultFailure
	}
	catalogFetchTotal.WithLabelValues(source, collection, result).Inc()
}

// RecordLoad 记录加载耗时与结果规模
func RecordLoad(seconds float64, vehicles, owners int) {
	catalogLoadDuration.Observe(seconds)
	catalogVehicles.Set(float64(vehicles))
	catalogOwners.Set(float64(owners))
}

// RecordRecompute 记录一次可见集合计算
func RecordRecompute(origin string, visible int) {
	filterRecomputeTotal.WithLabelValues(origin).Inc()
	filterVisibleVehicles.Observe(float64(visible))
}

// SessionOpened 会话建立
func SessionOpened() {
	activeSessions.Inc()
}

// SessionClosed 会话关闭
func SessionClosed() {
	activeSessions.Dec()
}
