package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accountapi/internal/account/domain/validation"
	"accountapi/internal/account/metrics"
)

func counterValue(t *testing.T, m *metrics.Metrics, name string, labels map[string]string) float64 {
	t.Helper()

	families, err := m.Registry().Gather()
	require.NoError(t, err)

	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			matched := 0
			for _, pair := range metric.GetLabel() {
				if labels[pair.GetName()] == pair.GetValue() {
					matched++
				}
			}
			if matched == len(labels) {
				return metric.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func TestMetrics_ObserveRequest(t *testing.T) {
	m := metrics.New()

	m.ObserveRequest(http.MethodPost, "/api/v1/auth/login", 200, 10*time.Millisecond)
	m.ObserveRequest(http.MethodPost, "/api/v1/auth/login", 200, 20*time.Millisecond)
	m.ObserveRequest(http.MethodPost, "/api/v1/auth/login", 401, time.Millisecond)

	assert.InDelta(t, 2, counterValue(t, m, "account_http_requests_total",
		map[string]string{"method": "POST", "route": "/api/v1/auth/login", "status": "200"}), 0)
	assert.InDelta(t, 1, counterValue(t, m, "account_http_requests_total",
		map[string]string{"method": "POST", "route": "/api/v1/auth/login", "status": "401"}), 0)
}

func TestMetrics_RecordRejections(t *testing.T) {
	m := metrics.New()

	m.RecordRejections(validation.Rejections{
		{Field: validation.FieldEmail, Reason: validation.ReasonInvalidDomain},
		{Field: validation.FieldPassword, Reason: validation.ReasonInvalidPassword},
	})
	m.RecordRejections(validation.Rejections{
		{Field: validation.FieldEmail, Reason: validation.ReasonInvalidDomain},
	})

	assert.InDelta(t, 2, counterValue(t, m, "account_validation_rejections_total",
		map[string]string{"field": "email", "reason": "invalid_domain"}), 0)
	assert.InDelta(t, 1, counterValue(t, m, "account_validation_rejections_total",
		map[string]string{"field": "password", "reason": "invalid_password"}), 0)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *metrics.Metrics

	assert.NotPanics(t, func() {
		m.ObserveRequest(http.MethodGet, "/", 200, time.Millisecond)
		m.RecordRejections(validation.Rejections{{Field: validation.FieldName, Reason: validation.ReasonInvalidName}})
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := metrics.New()
	m.ObserveRequest(http.MethodGet, "/api/v1/user/profile", 200, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "account_http_requests_total")
	assert.Contains(t, string(body), "go_goroutines")
}
