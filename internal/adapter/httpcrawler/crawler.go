// Package httpcrawler fetches pages with a plain HTTP client.
package httpcrawler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/html/charset"

	"github.com/user/seo-report/internal/entity"
	"github.com/user/seo-report/internal/extractor"
)

// MaxBodySize caps how much of a page is read.
const MaxBodySize = 10 << 20

// Crawler implements repository.CrawlerRepository over net/http.
type Crawler struct {
	client  *http.Client
	rotator *Rotator
	logger  *zap.Logger
}

func New(timeout time.Duration, rotator *Rotator, logger *zap.Logger) *Crawler {
	transport := &http.Transport{
		Proxy: func(req *http.Request) (*url.URL, error) {
			if p := rotator.Proxy(); p != "" {
				return url.Parse(p)
			}
			return http.ProxyFromEnvironment(req)
		},
		MaxIdleConns:    20,
		IdleConnTimeout: 30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &Crawler{
		client:  &http.Client{Transport: transport, Timeout: timeout},
		rotator: rotator,
		logger:  logger,
	}
}

// Crawl fetches rawURL and extracts its metadata and links.
func (c *Crawler) Crawl(ctx context.Context, rawURL string) (*entity.CrawlData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &entity.AppError{Kind: entity.InvalidInput, Message: "invalid URL", Cause: err}
	}
	req.Header.Set("User-Agent", c.rotator.UserAgent())
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, classifyFetchError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	data := &entity.CrawlData{
		URL:        rawURL,
		StatusCode: resp.StatusCode,
		Success:    resp.StatusCode >= 200 && resp.StatusCode < 300,
	}
	if !data.Success {
		data.ErrorMessage = fmt.Sprintf("page returned HTTP %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	var body io.Reader = io.LimitReader(resp.Body, MaxBodySize)
	if decoded, err := charset.NewReader(body, resp.Header.Get("Content-Type")); err == nil {
		body = decoded
	} else {
		c.logger.Warn("unknown page charset, reading as UTF-8", zap.String("url", rawURL), zap.Error(err))
	}

	res, err := extractor.Extract(resp.Request.URL, body)
	if err != nil {
		return nil, &entity.AppError{Kind: entity.ParsingFailed, UpstreamStatus: resp.StatusCode, Message: "could not parse page", Cause: err}
	}
	data.Metadata = res.Metadata
	data.Links = res.Links

	c.logger.Info("crawled page",
		zap.String("url", rawURL),
		zap.Int("status", resp.StatusCode),
		zap.Int("internal_links", len(res.Links.Internal)),
		zap.Int("external_links", len(res.Links.External)),
		zap.Duration("duration", time.Since(start)),
	)
	return data, nil
}

func classifyFetchError(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &entity.AppError{Kind: entity.Timeout, Message: "timed out fetching page", Cause: err}
	}
	return &entity.AppError{Kind: entity.Unreachable, Message: "could not fetch page", Cause: err}
}
