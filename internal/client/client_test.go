package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/seo-report/internal/entity"
)

func TestAnalyze_BlankURLNeverSends(t *testing.T) {
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
	}))
	defer ts.Close()

	c := New(ts.URL, ts.Client())
	for _, in := range []string{"", " ", "\t\n  "} {
		_, err := c.Analyze(context.Background(), in)
		require.ErrorIs(t, err, ErrEmptyURL)
	}
	assert.Zero(t, hits.Load())
}

func TestAnalyze_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req entity.AnalyzeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "http://a.com", req.URL)

		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprint(w, `{"success":true,"message":"Analysis successful","data":{"url":"http://a.com","status_code":200},"ai_analysis":{"k":1}}`)
	}))
	defer ts.Close()

	env, err := New(ts.URL, ts.Client()).Analyze(context.Background(), "http://a.com")
	require.NoError(t, err)
	assert.True(t, env.Success)
	require.NotNil(t, env.Data)
	assert.Equal(t, 200, env.Data.StatusCode)
	assert.JSONEq(t, `{"k":1}`, string(env.AIAnalysis))
}

func TestAnalyze_BackendFailurePassesMessageAndStatus(t *testing.T) {
	tests := []struct {
		name       string
		httpStatus int
		body       string
		wantMsg    string
		wantStatus int
	}{
		{"explicit status", http.StatusOK, `{"success":false,"message":"crawl failed","status":418}`, "crawl failed", 418},
		{"status from HTTP", http.StatusBadRequest, `{"success":false,"message":"URL is required"}`, "URL is required", 400},
		{"default 500", http.StatusOK, `{"success":false,"message":"nope"}`, "nope", 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.httpStatus)
				_, _ = fmt.Fprint(w, tt.body)
			}))
			defer ts.Close()

			_, err := New(ts.URL, ts.Client()).Analyze(context.Background(), "http://a.com")
			var be *BackendError
			require.ErrorAs(t, err, &be)
			assert.Equal(t, tt.wantMsg, be.Message)
			assert.Equal(t, tt.wantStatus, be.Status)
		})
	}
}

func TestAnalyze_NonJSONResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = fmt.Fprint(w, "<html>bad gateway</html>")
	}))
	defer ts.Close()

	_, err := New(ts.URL, ts.Client()).Analyze(context.Background(), "http://a.com")
	require.Error(t, err)
	var be *BackendError
	assert.NotErrorAs(t, err, &be)
}

func TestAnalyze_ContextCancelled(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer ts.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := New(ts.URL, ts.Client()).Analyze(ctx, "http://a.com")
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
