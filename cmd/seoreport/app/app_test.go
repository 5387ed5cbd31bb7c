package app

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/seo-report/internal/client"
)

const workedExample = `{
	"success": true,
	"message": "Analysis successful",
	"data": {
		"url": "http://a.com",
		"status_code": 200,
		"links": {"internal": [{"href": "/x"}], "external": []},
		"metadata": {"title": "T"}
	},
	"ai_analysis": {
		"SEO_Analysis_and_Enhancement_Suggestions": {
			"Title_Analysis_and_Suggestions": {"Analysis": "ok", "Suggestions": ["s1"]}
		}
	}
}`

func backend(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			URL string `json:"url"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestAnalyze_PrintsRegions(t *testing.T) {
	srv := backend(t, http.StatusOK, workedExample)

	var stdout, stderr bytes.Buffer
	err := Run([]string{"seoreport", "analyze", "--backend", srv.URL, "http://a.com"}, &stdout, &stderr, srv.Client())
	require.NoError(t, err)

	out := stdout.String()
	assert.Contains(t, out, "state: content\n")
	assert.Contains(t, out, "[internal-link-count-display]\n1\n")
	assert.Contains(t, out, "[external-link-count-display]\n0\n")
	assert.Contains(t, out, "s1")
}

func TestAnalyze_JSONSnapshot(t *testing.T) {
	srv := backend(t, http.StatusOK, workedExample)

	var stdout, stderr bytes.Buffer
	err := Run([]string{"seoreport", "analyze", "--json", "--backend", srv.URL, "http://a.com"}, &stdout, &stderr, srv.Client())
	require.NoError(t, err)

	var snap struct {
		State string `json:"state"`
		URL   string `json:"url"`
	}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &snap))
	assert.Equal(t, "content", snap.State)
	assert.Equal(t, "http://a.com", snap.URL)
}

func TestAnalyze_BackendFailure(t *testing.T) {
	srv := backend(t, http.StatusInternalServerError, `{"success":false,"message":"boom"}`)

	var stdout, stderr bytes.Buffer
	err := Run([]string{"seoreport", "analyze", "--backend", srv.URL, "http://a.com"}, &stdout, &stderr, srv.Client())

	var backendErr *client.BackendError
	require.ErrorAs(t, err, &backendErr)
	assert.Equal(t, http.StatusInternalServerError, backendErr.Status)
	assert.Contains(t, stdout.String(), "state: error\n")
	assert.Contains(t, stdout.String(), "Fetching Error")
	assert.Contains(t, stdout.String(), "boom")
}

func TestAnalyze_RequiresURL(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := Run([]string{"seoreport", "analyze"}, &stdout, &stderr, http.DefaultClient)
	require.ErrorIs(t, err, errMissingURL)
	assert.Contains(t, stdout.String(), "analyze")
}
