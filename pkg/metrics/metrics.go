// Package metrics 提供基于Prometheus的指标收集框架
//
// # 核心概念
//
// **1. Counter（计数器）**：只增不减的累计值
//   - 示例：HTTP请求总数、借阅总数、错误总数
//
// **2. Gauge（仪表盘）**：可增可减的瞬时值
//   - 示例：正在处理的HTTP请求数
//
// **3. Histogram（直方图）**：观测值的分布
//   - 示例：HTTP请求耗时、借阅事务耗时（自动计算P50、P90、P99）
//
// # 使用示例
//
//	// 1. 初始化Metrics
//	metrics.InitMetrics()
//
//	// 2. 在HTTP服务中暴露/metrics端点
//	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
//
//	// 3. 在业务代码中记录指标
//	metrics.BorrowsCreatedTotal.Inc()
//	metrics.BorrowTxDuration.Observe(time.Since(start).Seconds())
//
// # 标签注意事项
//
// 避免高基数标签：不要用user_id、book_id作为标签（无界），
// 用method、path、status这类有限枚举值
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// initialized 标记是否已初始化（防止重复注册）
	initialized bool

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method（GET/POST）、path（/api/borrows）、status（200/500）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	// 桶设置：1ms、10ms、100ms、500ms、1s、5s、10s
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数（Gauge）
	HTTPRequestsInProgress prometheus.Gauge

	// 借阅业务指标

	// BorrowsCreatedTotal 借阅创建总数（Counter）
	BorrowsCreatedTotal prometheus.Counter

	// BorrowsReturnedTotal 归还总数（Counter）
	BorrowsReturnedTotal prometheus.Counter

	// BorrowsRejectedTotal 因库存不足被拒绝的借阅总数（Counter）
	BorrowsRejectedTotal prometheus.Counter

	// BorrowTxDuration 借阅事务耗时（Histogram）
	// 含行锁等待时间,锁竞争激烈时P99会明显抬高
	BorrowTxDuration prometheus.Histogram

	// 库存业务指标

	// StockInTotal 入库操作总数（Counter）
	StockInTotal prometheus.Counter

	// StockAdjustmentsTotal 库存调整总数（Counter）
	// 标签：kind（borrow/return/stock_in/stock_record_delete/baseline）、result（success/out_of_stock）
	StockAdjustmentsTotal *prometheus.CounterVec

	// 熔断器指标

	// CircuitBreakerState 熔断器状态（Gauge）
	// 0=CLOSED, 1=OPEN, 2=HALF_OPEN
	CircuitBreakerState *prometheus.GaugeVec

	// CircuitBreakerRequests 熔断器请求总数（Counter）
	// 标签：name（熔断器名称）、result（success/failure/rejected）
	CircuitBreakerRequests *prometheus.CounterVec

	// 消息队列指标

	// MessagesPublishedTotal 消息发布总数（Counter）
	// 标签：exchange（交换机）、routing_key（路由键）
	MessagesPublishedTotal *prometheus.CounterVec

	// MessagesConsumedTotal 消息消费总数（Counter）
	// 标签：queue（队列名称）、result（success/failure）
	MessagesConsumedTotal *prometheus.CounterVec
)

// InitMetrics 初始化所有Prometheus指标
//
// 必须在程序启动时调用一次，用于注册所有指标到全局Registry
//
// 设计要点：
// 1. 使用promauto.New*自动注册到默认Registry
// 2. Counter使用*Vec支持标签（多维度统计）
// 3. Histogram的Buckets根据业务场景定制
func InitMetrics() {
	// 防止重复初始化
	if initialized {
		return
	}
	initialized = true

	// HTTP请求指标
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

	// 借阅业务指标
	BorrowsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "borrows_created_total",
			Help: "借阅创建总数",
		},
	)

	BorrowsReturnedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "borrows_returned_total",
			Help: "归还总数",
		},
	)

	BorrowsRejectedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "borrows_rejected_total",
			Help: "因库存不足被拒绝的借阅总数",
		},
	)

	BorrowTxDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "borrow_tx_duration_seconds",
			Help: "借阅事务耗时（秒）",
			// 事务内含行锁等待,桶上限放宽到10s
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		},
	)

	// 库存业务指标
	StockInTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stock_in_total",
			Help: "入库操作总数",
		},
	)

	StockAdjustmentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stock_adjustments_total",
			Help: "库存调整总数",
		},
		[]string{"kind", "result"},
	)

	// 熔断器指标
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "熔断器请求总数",
		},
		[]string{"name", "result"},
	)

	// 消息队列指标
	MessagesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_published_total",
			Help: "消息发布总数",
		},
		[]string{"exchange", "routing_key"},
	)

	MessagesConsumedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_consumed_total",
			Help: "消息消费总数",
		},
		[]string{"queue", "result"},
	)
}

// IncCounterVec 递增CounterVec（带标签）
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	counter.With(labels).Inc()
}

// SetGaugeVec 设置GaugeVec值（带标签）
func SetGaugeVec(gauge *prometheus.GaugeVec, labels map[string]string, value float64) {
	gauge.With(labels).Set(value)
}

// ObserveHistogramVec 记录HistogramVec观测值（带标签）
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	histogram.With(labels).Observe(value)
}
