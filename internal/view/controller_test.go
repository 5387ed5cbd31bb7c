package view

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/user/seo-report/internal/client"
	"github.com/user/seo-report/internal/entity"
	"github.com/user/seo-report/internal/render"
	"github.com/user/seo-report/internal/report"
	"github.com/user/seo-report/pkg/metrics"
)

type analyzerFunc func(ctx context.Context, url string) (*entity.Envelope, error)

func (f analyzerFunc) Analyze(ctx context.Context, url string) (*entity.Envelope, error) {
	return f(ctx, url)
}

const workedExample = `{
	"success": true,
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

func decodeEnvelope(t *testing.T, raw string) *entity.Envelope {
	t.Helper()
	var env entity.Envelope
	require.NoError(t, json.Unmarshal([]byte(raw), &env))
	return &env
}

func newController(t *testing.T, a Analyzer) *ReportView {
	t.Helper()
	v := New(a, render.MustNewRegistry(), zap.NewNop(), metrics.New(), Options{
		RequestTimeout: time.Second,
		Countdown:      CountdownConfig{Duration: time.Hour, Tick: time.Minute, Fade: time.Second},
	})
	t.Cleanup(v.Close)
	return v
}

func region(v *ReportView, id string) render.RegionView {
	r, _ := v.Page().Region(id)
	return r
}

func TestSubmit_BlankURLSendsNothing(t *testing.T) {
	var calls atomic.Int32
	v := newController(t, analyzerFunc(func(context.Context, string) (*entity.Envelope, error) {
		calls.Add(1)
		return nil, nil
	}))

	err := v.Submit(context.Background(), "   ")
	require.ErrorIs(t, err, client.ErrEmptyURL)
	assert.Zero(t, calls.Load())
	assert.Equal(t, StateError, v.State())
	assert.Contains(t, string(region(v, report.RegionError).HTML), msgEmptyURL)
}

func TestSubmit_WorkedExample(t *testing.T) {
	env := decodeEnvelope(t, workedExample)
	v := newController(t, analyzerFunc(func(_ context.Context, url string) (*entity.Envelope, error) {
		assert.Equal(t, "http://a.com", url)
		return env, nil
	}))

	require.NoError(t, v.Submit(context.Background(), "http://a.com"))

	assert.Equal(t, StateContent, v.State())
	assert.True(t, region(v, report.RegionMain).Visible)
	assert.False(t, region(v, report.RegionLoading).Visible)
	assert.False(t, region(v, report.RegionError).Visible)
	assert.True(t, region(v, report.RegionSEOContent).Visible)

	assert.Equal(t, "1", region(v, report.RegionInternalLinkCount).Text)
	assert.Equal(t, "0", region(v, report.RegionExternalLinkCount).Text)
	assert.Contains(t, string(region(v, report.RegionTitleAnalysis).HTML), "ok")
	assert.Contains(t, string(region(v, report.RegionTitleAnalysis).HTML), "s1")

	snap := v.Snapshot()
	assert.Equal(t, StateContent, snap.State)
	assert.Equal(t, "http://a.com", snap.URL)
	assert.Same(t, env, snap.Envelope)
}

func TestSubmit_BackendErrorReachesBanner(t *testing.T) {
	v := newController(t, analyzerFunc(func(context.Context, string) (*entity.Envelope, error) {
		return nil, &client.BackendError{Message: "site unreachable", Status: 503}
	}))

	err := v.Submit(context.Background(), "http://a.com")
	var be *client.BackendError
	require.ErrorAs(t, err, &be)

	banner := string(region(v, report.RegionError).HTML)
	assert.Contains(t, banner, titleFetchingError)
	assert.Contains(t, banner, "site unreachable")
	assert.Contains(t, banner, "503")
	assert.Equal(t, StateError, v.State())
}

func TestSubmit_TransportErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"unreachable", errors.New("dial tcp: connection refused"), msgUnreachable},
		{"timeout", context.DeadlineExceeded, msgTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newController(t, analyzerFunc(func(context.Context, string) (*entity.Envelope, error) {
				return nil, tt.err
			}))
			require.Error(t, v.Submit(context.Background(), "http://a.com"))
			assert.Contains(t, string(region(v, report.RegionError).HTML), tt.want)
		})
	}
}

func TestSubmit_MissingAnalysisStopsBeforeCrawl(t *testing.T) {
	env := decodeEnvelope(t, `{"success":true,"data":{"url":"http://a.com","links":{"internal":[{"href":"/x"}]}},"ai_analysis":{"other":1}}`)
	v := newController(t, analyzerFunc(func(context.Context, string) (*entity.Envelope, error) {
		return env, nil
	}))

	err := v.Submit(context.Background(), "http://a.com")
	require.ErrorIs(t, err, report.ErrAnalysisMissing)
	assert.Contains(t, string(region(v, report.RegionError).HTML), msgAnalysisMissing)
	assert.Empty(t, region(v, report.RegionInternalLinkCount).Text)
	assert.Equal(t, StateError, v.State())
}

func TestSubmit_StaleResponseIsDiscarded(t *testing.T) {
	firstStarted := make(chan struct{})
	v := newController(t, analyzerFunc(func(ctx context.Context, url string) (*entity.Envelope, error) {
		if url == "http://slow.com" {
			close(firstStarted)
			<-ctx.Done()
			return decodeEnvelope(t, workedExample), nil
		}
		env := decodeEnvelope(t, workedExample)
		env.Data.URL = url
		return env, nil
	}))

	firstErr := make(chan error, 1)
	go func() { firstErr <- v.Submit(context.Background(), "http://slow.com") }()
	<-firstStarted

	require.NoError(t, v.Submit(context.Background(), "http://fast.com"))

	select {
	case err := <-firstErr:
		require.ErrorIs(t, err, ErrSuperseded)
	case <-time.After(time.Second):
		t.Fatal("first submit was not cancelled")
	}

	assert.Contains(t, string(region(v, report.RegionStats).HTML), "http://fast.com")
	assert.Equal(t, StateContent, v.State())
}

func TestSubmit_ShowsLoadingWhileWaiting(t *testing.T) {
	release := make(chan struct{})
	v := newController(t, analyzerFunc(func(context.Context, string) (*entity.Envelope, error) {
		<-release
		return nil, errors.New("down")
	}))

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = v.Submit(context.Background(), "http://a.com")
	}()

	require.Eventually(t, func() bool { return v.State() == StateLoading }, time.Second, time.Millisecond)
	assert.True(t, region(v, report.RegionLoading).Visible)
	close(release)
	<-done
	assert.False(t, region(v, report.RegionLoading).Visible)
}

func TestSessions(t *testing.T) {
	var created int
	s := NewSessions(func() *ReportView {
		created++
		return newController(t, analyzerFunc(func(context.Context, string) (*entity.Envelope, error) { return nil, nil }))
	})
	defer s.Close()

	id, first := s.Get("not-a-uuid")
	assert.NotEqual(t, "not-a-uuid", id)

	again, second := s.Get(id)
	assert.Equal(t, id, again)
	assert.Same(t, first, second)
	assert.Equal(t, 1, created)

	assert.Zero(t, s.Sweep(time.Hour))
	assert.Equal(t, 1, s.Sweep(-time.Second))
	assert.Zero(t, s.Len())
}
