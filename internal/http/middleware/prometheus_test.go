package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMetricsApp(t *testing.T) (*fiber.App, *PrometheusMiddleware, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	m, err := NewPrometheusMiddleware(reg)
	require.NoError(t, err)

	app := fiber.New()
	app.Use(m.Handler())
	return app, m, reg
}

// histogram returns the duration series for method and path, or nil.
func histogram(t *testing.T, reg *prometheus.Registry, method, path string) *dto.Histogram {
	t.Helper()
	mfs, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() != "http_request_duration_seconds" {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, l := range m.GetLabel() {
				labels[l.GetName()] = l.GetValue()
			}
			if labels["method"] == method && labels["path"] == path {
				return m.GetHistogram()
			}
		}
	}
	return nil
}

func TestPrometheusMiddleware_CountsByStatus(t *testing.T) {
	app, m, _ := newMetricsApp(t)
	app.Get("/api/stats", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Delete("/api/assets/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })
	app.Post("/api/assets", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusBadRequest, "name is required")
	})

	tests := []struct {
		method, target string
		labels         []string
	}{
		{"GET", "/api/stats", []string{"GET", "/api/stats", "200"}},
		{"DELETE", "/api/assets/7", []string{"DELETE", "/api/assets/:id", "204"}},
		{"POST", "/api/assets", []string{"POST", "/api/assets", "400"}},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			_, err := app.Test(httptest.NewRequest(tt.method, tt.target, nil))
			require.NoError(t, err)
			assert.Equal(t, 1.0, testutil.ToFloat64(m.requestCount.WithLabelValues(tt.labels...)))
		})
	}
}

func TestPrometheusMiddleware_ExcludeMetrics(t *testing.T) {
	app, m, _ := newMetricsApp(t)
	app.Get("/metrics", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	_, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)

	assert.Zero(t, testutil.CollectAndCount(m.requestCount))
	assert.Zero(t, testutil.CollectAndCount(m.requestDuration))
}

func TestPrometheusMiddleware_DurationHistogram(t *testing.T) {
	app, _, reg := newMetricsApp(t)
	app.Get("/export/pdf", func(c *fiber.Ctx) error {
		time.Sleep(20 * time.Millisecond)
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/api/assets/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	for i := 0; i < 2; i++ {
		_, err := app.Test(httptest.NewRequest("GET", "/export/pdf", nil))
		require.NoError(t, err)
	}
	for _, id := range []string{"1", "2", "3"} {
		_, err := app.Test(httptest.NewRequest("GET", "/api/assets/"+id, nil))
		require.NoError(t, err)
	}

	slow := histogram(t, reg, "GET", "/export/pdf")
	require.NotNil(t, slow)
	assert.Equal(t, uint64(2), slow.GetSampleCount())
	assert.GreaterOrEqual(t, slow.GetSampleSum(), 0.04)

	byRoute := histogram(t, reg, "GET", "/api/assets/:id")
	require.NotNil(t, byRoute)
	assert.Equal(t, uint64(3), byRoute.GetSampleCount())
	assert.Nil(t, histogram(t, reg, "GET", "/api/assets/1"))
}

func TestPrometheusMiddleware_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPrometheusMiddleware(reg)
	require.NoError(t, err)
	_, err = NewPrometheusMiddleware(reg)
	assert.Error(t, err)
}
