package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	// HTTP
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// База данных
	dbQueryDuration   *prometheus.HistogramVec
	dbOpenConnections prometheus.Gauge
	dbInUse           prometheus.Gauge
	dbIdle            prometheus.Gauge
	dbWaitCount       prometheus.Gauge

	// Резервирование слотов
	holdsCreated      prometheus.Counter
	holdConflicts     prometheus.Counter
	holdsReleased     prometheus.Counter
	promotions        *prometheus.CounterVec
	holdsExpired      prometheus.Counter
	reaperSweepLength prometheus.Histogram
}

// New создает и регистрирует метрики в переданном registerer
func New(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation", "status"}),
		dbOpenConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}),
		dbInUse: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}),
		dbIdle: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}),
		dbWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}),
		holdsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "slot_holds_created_total",
			Help:        "Holds successfully created",
			ConstLabels: constLabels,
		}),
		holdConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "slot_hold_conflicts_total",
			Help:        "Hold attempts rejected because the slot was taken",
			ConstLabels: constLabels,
		}),
		holdsReleased: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "slot_holds_released_total",
			Help:        "Holds released by customers or replaced by re-selection",
			ConstLabels: constLabels,
		}),
		promotions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "slot_hold_promotions_total",
			Help:        "Hold promotion attempts by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
		holdsExpired: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "slot_holds_expired_total",
			Help:        "Holds transitioned to expired by the reaper",
			ConstLabels: constLabels,
		}),
		reaperSweepLength: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        "slot_reaper_sweep_duration_seconds",
			Help:        "Duration of a single reaper sweep",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .05, .1, .5, 1, 5},
		}),
	}

	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.dbQueryDuration,
		m.dbOpenConnections,
		m.dbInUse,
		m.dbIdle,
		m.dbWaitCount,
		m.holdsCreated,
		m.holdConflicts,
		m.holdsReleased,
		m.promotions,
		m.holdsExpired,
		m.reaperSweepLength,
	)

	return m
}

// ObserveHTTPRequest фиксирует завершенный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует длительность запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, err error, duration time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.dbQueryDuration.WithLabelValues(operation, status).Observe(duration.Seconds())
}

// SetDBPoolStats обновляет gauges пула соединений
func (m *Metrics) SetDBPoolStats(open, inUse, idle int, waitCount int64) {
	m.dbOpenConnections.Set(float64(open))
	m.dbInUse.Set(float64(inUse))
	m.dbIdle.Set(float64(idle))
	m.dbWaitCount.Set(float64(waitCount))
}

func (m *Metrics) HoldCreated() {
	m.holdsCreated.Inc()
}

func (m *Metrics) HoldConflict() {
	m.holdConflicts.Inc()
}

func (m *Metrics) HoldsReleased(n int) {
	m.holdsReleased.Add(float64(n))
}

// PromotionOutcome outcome: promoted, not_found, expired, already_booked, error
func (m *Metrics) PromotionOutcome(outcome string) {
	m.promotions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) HoldsExpired(n int) {
	m.holdsExpired.Add(float64(n))
}

func (m *Metrics) ObserveSweep(duration time.Duration) {
	m.reaperSweepLength.Observe(duration.Seconds())
}
