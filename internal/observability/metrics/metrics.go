package metrics

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

type Outcome string

const (
	Success                  Outcome       = "success"
	Error                    Outcome       = "error"
	MetricRequestTimeout     time.Duration = 5 * time.Second
	MetricRequestIdleTimeout time.Duration = 10 * time.Second
)

func (O Outcome) String() string {
	return string(O)
}

var (
	once                    sync.Once
	metricsRouter           *chi.Mux
	ledgerOpDuration        *prometheus.HistogramVec
	custodyClientLatency    *prometheus.HistogramVec
	rewardClientLatency     *prometheus.HistogramVec
	dbLatency               *prometheus.HistogramVec
	pollerDurationHistogram *prometheus.HistogramVec
	eventsPublishedCounter  *prometheus.CounterVec
	queueSendErrorCounter   prometheus.Counter
	totalActiveStakedGauge  prometheus.Gauge
	indexLastStepGauge      prometheus.Gauge
)

// Init initializes the metrics package.
func Init(metricsPort int) {
	once.Do(func() {
		initMetricsRouter(metricsPort)
		registerMetrics()
	})
}

// initMetricsRouter initializes the metrics router.
func initMetricsRouter(metricsPort int) {
	metricsRouter = chi.NewRouter()
	metricsRouter.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})
	metricsAddr := fmt.Sprintf(":%d", metricsPort)
	server := &http.Server{
		Addr:         metricsAddr,
		Handler:      metricsRouter,
		ReadTimeout:  MetricRequestTimeout,
		WriteTimeout: MetricRequestTimeout,
		IdleTimeout:  MetricRequestIdleTimeout,
	}

	go func() {
		log.Info().Msgf("Starting metrics server on %s", metricsAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msgf("Error starting metrics server on %s", metricsAddr)
		}
	}()
}

// registerMetrics initializes and registers the Prometheus metrics.
func registerMetrics() {
	defaultHistogramBucketsSeconds := []float64{0.1, 0.5, 1, 2.5, 5, 10, 30}

	ledgerOpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ledger_op_duration_seconds",
			Help:    "Histogram of ledger operation durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"op", "status"},
	)

	custodyClientLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "custody_client_latency_seconds",
			Help:    "Histogram of custody registry call durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"method", "status"},
	)

	rewardClientLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reward_client_latency_seconds",
			Help:    "Histogram of reward ledger call durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"method", "status"},
	)

	dbLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "db_latency_seconds",
			Help: "DB latency in seconds splitted by method and execution status",
		},
		[]string{"method", "status"},
	)

	pollerDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "poller_duration_seconds",
			Help:    "Histogram of poller durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"type", "status"},
	)

	eventsPublishedCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_published_count",
			Help: "The total number of events published, by event type",
		},
		[]string{"event_type"},
	)

	queueSendErrorCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "queue_send_error_count",
			Help: "The total number of errors when sending messages to the queue",
		},
	)

	totalActiveStakedGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "total_active_staked",
			Help: "Number of actively staked items across all accounts",
		},
	)

	indexLastStepGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "reward_index_last_updated_step",
			Help: "Step height the global reward index was last advanced to",
		},
	)

	prometheus.MustRegister(
		ledgerOpDuration,
		custodyClientLatency,
		rewardClientLatency,
		dbLatency,
		pollerDurationHistogram,
		eventsPublishedCounter,
		queueSendErrorCounter,
		totalActiveStakedGauge,
		indexLastStepGauge,
	)
}

func statusOf(failure bool) Outcome {
	if failure {
		return Error
	}
	return Success
}

func RecordLedgerOpDuration(d time.Duration, op string, failure bool) {
	if ledgerOpDuration == nil {
		return
	}
	ledgerOpDuration.WithLabelValues(op, statusOf(failure).String()).Observe(d.Seconds())
}

func RecordCustodyClientLatency(d time.Duration, method string, failure bool) {
	if custodyClientLatency == nil {
		return
	}
	custodyClientLatency.WithLabelValues(method, statusOf(failure).String()).Observe(d.Seconds())
}

func RecordRewardClientLatency(d time.Duration, method string, failure bool) {
	if rewardClientLatency == nil {
		return
	}
	rewardClientLatency.WithLabelValues(method, statusOf(failure).String()).Observe(d.Seconds())
}

func RecordDbLatency(d time.Duration, method string, failure bool) {
	if dbLatency == nil {
		return
	}
	dbLatency.WithLabelValues(method, statusOf(failure).String()).Observe(d.Seconds())
}

func RecordPollerDuration(d time.Duration, pollerType string, failure bool) {
	if pollerDurationHistogram == nil {
		return
	}
	pollerDurationHistogram.WithLabelValues(pollerType, statusOf(failure).String()).Observe(d.Seconds())
}

func RecordEventPublished(eventType string) {
	if eventsPublishedCounter == nil {
		return
	}
	eventsPublishedCounter.WithLabelValues(eventType).Inc()
}

func RecordQueueSendError() {
	if queueSendErrorCounter == nil {
		return
	}
	queueSendErrorCounter.Inc()
}

func RecordTotalActiveStaked(count uint64) {
	if totalActiveStakedGauge == nil {
		return
	}
	totalActiveStakedGauge.Set(float64(count))
}

func RecordIndexLastStep(step uint64) {
	if indexLastStepGauge == nil {
		return
	}
	indexLastStepGauge.Set(float64(step))
}
