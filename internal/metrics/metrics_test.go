package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordWriteCountsByLabel(t *testing.T) {
	m := New()
	m.RecordWrite("invoice", "created")
	m.RecordWrite("invoice", "created")
	m.RecordWrite("domain", "deleted")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RecordWrites.WithLabelValues("invoice", "created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RecordWrites.WithLabelValues("domain", "deleted")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordWrite("customer", "created")
		m.RecordLogin("success")
	})
}

func TestHandlerExposesCounters(t *testing.T) {
	m := New()
	m.RecordLogin("failure")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `reseller_logins_total{outcome="failure"} 1`)
}
