package prometheus

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(RelayDeliveries.WithLabelValues(DeliveryDropped))
	RelayDeliveries.WithLabelValues(DeliveryDropped).Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(RelayDeliveries.WithLabelValues(DeliveryDropped)))
}

func TestHandler_ExposesRegistry(t *testing.T) {
	Initialize(MetricsConfig{EnableLatency: true})
	Initialize(MetricsConfig{EnableLatency: true})
	SessionsCreated.Inc()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "teachme_sessions_created_total"))
	assert.True(t, strings.Contains(body, `service="teachme"`))
}
