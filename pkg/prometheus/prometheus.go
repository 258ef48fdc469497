package prometheus

import (
	"net/http"

	"github.com/lorekeeper-lab/backend/internal/common"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewHandler serves the request and permission metrics of the service together with the given
// collectors, typically the runtime and connection pool ones. Each call uses its own registry.
func NewHandler(collectors ...prometheus.Collector) http.Handler {
	registry := prometheus.NewRegistry()

	for _, counter := range common.PromCounters {
		registry.MustRegister(counter)
	}

	for _, histogram := range common.PromHistograms {
		registry.MustRegister(histogram)
	}

	registry.MustRegister(collectors...)

	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})
}
