package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_IndependentRegistries(t *testing.T) {
	a := New()
	b := New()

	a.IncAnalysis("success", "")
	a.IncAnalysis("success", "")

	assert.InDelta(t, 2, testutil.ToFloat64(a.AnalysesTotal.WithLabelValues("success", "")), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(b.AnalysesTotal.WithLabelValues("success", "")), 0)
}

func TestHandler_ExposesMetrics(t *testing.T) {
	m := New()
	m.IncRender("content")
	m.CountdownsStarted.Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `seo_report_renders_total{outcome="content"} 1`)
	assert.Contains(t, string(body), "seo_error_countdowns_started_total 1")
}
