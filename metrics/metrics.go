package metrics

/**
 * metrics.go - prometheus self metrics and live store statistics
 */

import (
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vtsd/vtsd/config"
	"github.com/vtsd/vtsd/exporter"
	"github.com/vtsd/vtsd/info"
	"github.com/vtsd/vtsd/logging"
	"github.com/vtsd/vtsd/stats"
)

const (
	namespace = "vtsd"
)

var (
	metricsEnabled atomic.Bool
	log            = logging.For("metrics")

	buildInfo *prometheus.GaugeVec

	eventsIngested *prometheus.CounterVec
	statusRenders  *prometheus.CounterVec
	statusCacheHit prometheus.Counter
)

func defineMetrics() {

	buildInfo = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "build_info",
		Help: fmt.Sprintf(
			"A metric with a constant '1' value labeled by version, revision, branch, and goversion from which %s was built.",
			namespace,
		),
	}, []string{"version", "revision", "branch", "goversion"})

	eventsIngested = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "api",
		Name:      "events_total",
		Help:      "Events accepted through the api.",
	}, []string{"kind"})

	statusRenders = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "api",
		Name:      "status_renders_total",
		Help:      "Status documents rendered.",
	}, []string{"format", "result"})

	statusCacheHit = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "api",
		Name:      "status_cache_hits_total",
		Help:      "Status documents served from cache.",
	})
}

/**
 * Builds registry with self metrics and the live collector over source
 */
func NewRegistry(source func() stats.Report) (*prometheus.Registry, error) {

	defineMetrics()

	reg := prometheus.NewRegistry()

	for _, c := range []prometheus.Collector{
		buildInfo,
		eventsIngested,
		statusRenders,
		statusCacheHit,
		exporter.NewCollector(source),
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	buildInfo.WithLabelValues(info.Version, info.Revision, info.Branch, runtime.Version()).Set(1)

	return reg, nil
}

/**
 * /metrics handler of registry
 */
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{
		ErrorHandling: promhttp.ContinueOnError,
	})
}

/**
 * Starts metrics server
 */
func Start(cfg config.MetricsConfig, store *stats.Store) {

	if !cfg.Enabled {
		log.Info("Metrics disabled")
		return
	}

	log.Info("Starting up Metrics server ", cfg.Bind)

	reg, err := NewRegistry(store.ExportSnapshot)
	if err != nil {
		log.Fatal(err)
	}

	metricsEnabled.Store(true)

	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(reg))

	go func() {
		if err := http.ListenAndServe(cfg.Bind, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(err)
		}
	}()
}

func ReportEvents(kind string, n int) {
	if !metricsEnabled.Load() {
		return
	}

	eventsIngested.WithLabelValues(kind).Add(float64(n))
}

func ReportRender(format string, err error) {
	if !metricsEnabled.Load() {
		return
	}

	result := "ok"
	if err != nil {
		result = "error"
	}

	statusRenders.WithLabelValues(format, result).Inc()
}

func ReportCacheHit() {
	if !metricsEnabled.Load() {
		return
	}

	statusCacheHit.Inc()
}
