package httpcrawler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/user/seo-report/internal/entity"
)

const page = `<html><head><title>Home</title><meta name="description" content="Desc"></head>
<body><a href="/a">A</a><a href="https://elsewhere.org/">E</a></body></html>`

func TestCrawl_Success(t *testing.T) {
	gotUA := make(chan string, 1)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA <- r.Header.Get("User-Agent")
		_, _ = fmt.Fprint(w, page)
	}))
	defer ts.Close()

	c := New(5*time.Second, NewRotator(nil, []string{"test-agent"}), zap.NewNop())
	data, err := c.Crawl(context.Background(), ts.URL+"/")
	require.NoError(t, err)

	assert.Equal(t, "test-agent", <-gotUA)
	assert.True(t, data.Success)
	assert.Equal(t, http.StatusOK, data.StatusCode)
	assert.Equal(t, "Home", data.Metadata["title"])
	assert.Equal(t, "Desc", data.Metadata["description"])
	require.Len(t, data.InternalLinks(), 1)
	assert.Equal(t, ts.URL+"/a", data.InternalLinks()[0].Href)
	require.Len(t, data.ExternalLinks(), 1)
}

func TestCrawl_NonSuccessStatusStillReturnsData(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = fmt.Fprint(w, `<html><head><title>Missing</title></head></html>`)
	}))
	defer ts.Close()

	c := New(5*time.Second, NewRotator(nil, nil), zap.NewNop())
	data, err := c.Crawl(context.Background(), ts.URL)
	require.NoError(t, err)

	assert.False(t, data.Success)
	assert.Equal(t, http.StatusNotFound, data.StatusCode)
	assert.Contains(t, data.ErrorMessage, "404")
	assert.Equal(t, "Missing", data.Metadata["title"])
}

func TestCrawl_DecodesDeclaredCharset(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=windows-1252")
		_, _ = w.Write([]byte("<html><head><title>Caf\xe9</title></head></html>"))
	}))
	defer ts.Close()

	c := New(5*time.Second, NewRotator(nil, nil), zap.NewNop())
	data, err := c.Crawl(context.Background(), ts.URL)
	require.NoError(t, err)

	assert.Equal(t, "Café", data.Metadata["title"])
}

func TestCrawl_Unreachable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	addr := ts.URL
	ts.Close()

	c := New(time.Second, NewRotator(nil, nil), zap.NewNop())
	_, err := c.Crawl(context.Background(), addr)

	var appErr *entity.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, entity.Unreachable, appErr.Kind)
}

func TestCrawl_Timeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer ts.Close()

	c := New(50*time.Millisecond, NewRotator(nil, nil), zap.NewNop())
	_, err := c.Crawl(context.Background(), ts.URL)

	var appErr *entity.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, entity.Timeout, appErr.Kind)
}

func TestRotator(t *testing.T) {
	r := NewRotator([]string{"http://p1:1", "http://p2:2"}, nil)
	assert.Equal(t, "http://p1:1", r.Proxy())
	assert.Equal(t, "http://p2:2", r.Proxy())
	assert.Equal(t, "http://p1:1", r.Proxy())
	assert.Contains(t, DefaultUserAgents, r.UserAgent())

	assert.Empty(t, NewRotator(nil, nil).Proxy())
}
