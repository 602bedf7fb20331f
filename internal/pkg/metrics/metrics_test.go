package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"parceltrack/internal/pkg/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	t.Run("should expose namespaced collectors", func(t *testing.T) {
		m := metrics.New("parceltrack")
		m.EventsPublished.WithLabelValues("delivery.created", "ok").Inc()
		m.IntegrityFaults.Set(2)

		rec := httptest.NewRecorder()
		m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		body := rec.Body.String()
		assert.Contains(t, body, `parceltrack_events_published_total{result="ok",type="delivery.created"} 1`)
		assert.Contains(t, body, "parceltrack_integrity_faults 2")
	})

	t.Run("should allow independent instances", func(t *testing.T) {
		assert.NotPanics(t, func() {
			metrics.New("a")
			metrics.New("a")
		})
	})
}
