// Package metrics 提供基于Prometheus的指标收集
//
// 指标类型：
//   - Counter: 只增不减，如查询总数、错误总数
//   - Histogram: 观测值分布，如查询耗时
//
// 命名规范：Counter以_total结尾，Histogram以单位结尾(_seconds)
//
// 使用示例：
//
//	metrics.InitMetrics()
//	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
//
//	start := time.Now()
//	entries, err := repo.List(ctx, q, today)
//	metrics.ObserveCatalogQuery("list_books", start, err)
package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	initOnce sync.Once

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数
	// 标签：method、path(路由模板，避免高基数)、status
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数
	HTTPRequestsInProgress prometheus.Gauge

	// 目录查询指标

	// CatalogQueriesTotal 目录查询总数
	// 标签：operation(list_books/featured/...)、result(success/invalid/not_found/error)
	CatalogQueriesTotal *prometheus.CounterVec

	// CatalogQueryDuration 目录查询耗时
	CatalogQueryDuration *prometheus.HistogramVec

	// CatalogCacheRequests 目录缓存访问
	// 标签：result(hit/miss/error/bypass)
	CatalogCacheRequests *prometheus.CounterVec

	// 汇率指标

	// CurrencyReloadsTotal 汇率表重载次数
	// 标签：source(file/watch/admin/mq)、result(success/failure)
	CurrencyReloadsTotal *prometheus.CounterVec

	// CurrencyRates 当前快照中的汇率条数
	CurrencyRates prometheus.Gauge
)

// InitMetrics 初始化所有Prometheus指标
// 可重复调用，只注册一次
func InitMetrics() {
	initOnce.Do(register)
}

func register() {
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP请求耗时（秒）",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	CatalogQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_queries_total",
			Help: "目录查询总数",
		},
		[]string{"operation", "result"},
	)

	CatalogQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "catalog_query_duration_seconds",
			Help: "目录查询耗时（秒）",
			// 单条SQL查询，通常在毫秒级
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"operation"},
	)

	CatalogCacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_cache_requests_total",
			Help: "目录缓存访问次数",
		},
		[]string{"result"},
	)

	CurrencyReloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "currency_reloads_total",
			Help: "汇率表重载次数",
		},
		[]string{"source", "result"},
	)

	CurrencyRates = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "currency_rates",
			Help: "当前汇率快照中的条目数",
		},
	)
}

// 查询结果标签
const (
	ResultSuccess  = "success"
	ResultInvalid  = "invalid"
	ResultNotFound = "not_found"
	ResultError    = "error"
)

// ObserveHTTPRequest 记录一次HTTP请求，path使用路由模板
func ObserveHTTPRequest(method, path string, status int, start time.Time) {
	InitMetrics()
	HTTPRequestsTotal.With(prometheus.Labels{
		"method": method,
		"path":   path,
		"status": strconv.Itoa(status),
	}).Inc()
	HTTPRequestDuration.With(prometheus.Labels{"method": method, "path": path}).Observe(time.Since(start).Seconds())
}

// ObserveCatalogQuery 记录一次目录查询的结果与耗时
func ObserveCatalogQuery(operation, result string, start time.Time) {
	InitMetrics()
	CatalogQueriesTotal.With(prometheus.Labels{"operation": operation, "result": result}).Inc()
	CatalogQueryDuration.With(prometheus.Labels{"operation": operation}).Observe(time.Since(start).Seconds())
}

// RecordCacheResult 记录缓存命中情况(hit/miss/error/bypass)
func RecordCacheResult(result string) {
	InitMetrics()
	CatalogCacheRequests.With(prometheus.Labels{"result": result}).Inc()
}

// RecordCurrencyReload 记录汇率表重载
func RecordCurrencyReload(source string, size int, err error) {
	InitMetrics()
	result := "success"
	if err != nil {
		result = "failure"
	}
	CurrencyReloadsTotal.With(prometheus.Labels{"source": source, "result": result}).Inc()
	if err == nil {
		CurrencyRates.Set(float64(size))
	}
}

// IncCounterVec 递增CounterVec（带标签）
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	counter.With(labels).Inc()
}

// ObserveHistogramVec 记录HistogramVec观测值（带标签）
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	histogram.With(labels).Observe(value)
}
