package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "gitlab_enhancer"

// NewRegistry creates a Prometheus registry with the Go runtime collector.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	return reg
}

// FetchMetrics counts the traffic of the paginated fetcher.
type FetchMetrics struct {
	Requests *prometheus.CounterVec
	Failures *prometheus.CounterVec
	Sessions prometheus.Counter
}

// NewFetchMetrics creates and registers fetch metrics on the given registry.
func NewFetchMetrics(reg prometheus.Registerer) *FetchMetrics {
	m := &FetchMetrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "fetch",
			Name:      "requests_total",
			Help:      "Total number of page requests, by response status code.",
		}, []string{"code"}),
		Failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "fetch",
			Name:      "failures_total",
			Help:      "Total number of failed page fetches, by reason.",
		}, []string{"reason"}),
		Sessions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "fetch",
			Name:      "sessions_total",
			Help:      "Total number of fetch sessions started.",
		}),
	}

	reg.MustRegister(m.Requests, m.Failures, m.Sessions)
	return m
}

// ObserveStatus counts one completed request.
func (m *FetchMetrics) ObserveStatus(statusCode int) {
	m.Requests.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// ObserveFailure counts one failed page fetch.
func (m *FetchMetrics) ObserveFailure(reason string) {
	m.Failures.WithLabelValues(reason).Inc()
}

// LookupMetrics counts remote entity lookups, i.e. entity cache misses.
type LookupMetrics struct {
	Lookups *prometheus.CounterVec
}

// NewLookupMetrics creates and registers lookup metrics on the given registry.
func NewLookupMetrics(reg prometheus.Registerer) *LookupMetrics {
	m := &LookupMetrics{
		Lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "remote",
			Name:      "lookups_total",
			Help:      "Total number of remote entity lookups, by entity kind and outcome.",
		}, []string{"kind", "outcome"}),
	}

	reg.MustRegister(m.Lookups)
	return m
}
