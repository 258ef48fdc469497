package prometheus

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lorekeeper-lab/backend/internal/common"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, h http.Handler) string {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestNewHandler(t *testing.T) {
	common.PromCounters[common.PermissionDeniedTotal].WithLabelValues("player").Inc()

	body := scrape(t, NewHandler())
	require.Contains(t, body, `permission_denied_total{role="player"}`)
	require.NotContains(t, body, "go_goroutines")

	campaigns := prometheus.NewGauge(prometheus.GaugeOpts{Name: "campaigns_loaded", Help: "test gauge"})
	campaigns.Set(3)

	body = scrape(t, NewHandler(campaigns))
	require.Contains(t, body, "campaigns_loaded 3")
}
