//go:build unit

package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/gitlab-enhancer/internal/infrastructure/metrics"
)

func TestFetchMetrics(t *testing.T) {
	t.Parallel()

	t.Run("should count requests by status code and failures by reason", func(t *testing.T) {
		t.Parallel()

		// given
		m := metrics.NewFetchMetrics(prometheus.NewRegistry())

		// when
		m.ObserveStatus(200)
		m.ObserveStatus(200)
		m.ObserveStatus(404)
		m.ObserveFailure("http")

		// then
		assert.InDelta(t, 2, testutil.ToFloat64(m.Requests.WithLabelValues("200")), 0)
		assert.InDelta(t, 1, testutil.ToFloat64(m.Requests.WithLabelValues("404")), 0)
		assert.InDelta(t, 1, testutil.ToFloat64(m.Failures.WithLabelValues("http")), 0)
	})

	t.Run("should refuse to register twice on one registry", func(t *testing.T) {
		t.Parallel()

		// given
		reg := prometheus.NewRegistry()
		metrics.NewFetchMetrics(reg)

		// when
		register := func() { metrics.NewFetchMetrics(reg) }

		// then
		assert.Panics(t, register)
	})
}

func TestNewRegistry(t *testing.T) {
	t.Parallel()

	t.Run("should expose the runtime collector alongside the lookup counters", func(t *testing.T) {
		t.Parallel()

		// given
		reg := metrics.NewRegistry()
		lookups := metrics.NewLookupMetrics(reg)
		lookups.Lookups.WithLabelValues("project", "found").Inc()

		// when
		families, err := reg.Gather()

		// then
		require.NoError(t, err)
		names := make([]string, 0, len(families))
		for _, family := range families {
			names = append(names, family.GetName())
		}
		assert.Contains(t, names, "go_goroutines")
		assert.Contains(t, names, "gitlab_enhancer_remote_lookups_total")
	})
}
