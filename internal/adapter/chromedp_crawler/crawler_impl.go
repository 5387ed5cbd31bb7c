// Package chromedp_crawler renders pages in headless Chrome before extracting
// crawl data, for sites that build their markup with JavaScript.
package chromedp_crawler

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/user/seo-report/internal/entity"
	"github.com/user/seo-report/internal/extractor"
)

// ChromedpCrawler implements repository.CrawlerRepository with a shared
// browser allocator. Each crawl gets its own tab.
type ChromedpCrawler struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
	sem         *semaphore.Weighted
	timeout     time.Duration
	logger      *zap.Logger
}

// NewChromedpCrawler creates a crawler allowing maxConcurrency open tabs.
func NewChromedpCrawler(maxConcurrency int, pageLoadTimeout time.Duration, userAgent string, logger *zap.Logger) *ChromedpCrawler {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if userAgent != "" {
		opts = append(opts, chromedp.UserAgent(userAgent))
	}
	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)

	return &ChromedpCrawler{
		allocCtx:    allocCtx,
		allocCancel: cancel,
		sem:         semaphore.NewWeighted(int64(max(maxConcurrency, 1))),
		timeout:     pageLoadTimeout,
		logger:      logger,
	}
}

// Crawl navigates to rawURL, waits for the body and extracts the rendered HTML.
func (c *ChromedpCrawler) Crawl(ctx context.Context, rawURL string) (*entity.CrawlData, error) {
	page, err := url.Parse(rawURL)
	if err != nil {
		return nil, &entity.AppError{Kind: entity.InvalidInput, Message: "invalid URL", Cause: err}
	}

	if err := c.sem.Acquire(ctx, 1); err != nil {
		return nil, &entity.AppError{Kind: entity.Timeout, Message: "no browser tab available", Cause: err}
	}
	defer c.sem.Release(1)

	taskCtx, cancel := chromedp.NewContext(c.allocCtx)
	defer cancel()
	taskCtx, cancelTimeout := context.WithTimeout(taskCtx, c.timeout)
	defer cancelTimeout()
	stop := context.AfterFunc(ctx, cancelTimeout)
	defer stop()

	var (
		mu         sync.Mutex
		statusCode int
	)
	chromedp.ListenTarget(taskCtx, func(ev any) {
		resp, ok := ev.(*network.EventResponseReceived)
		if !ok || resp.Type != network.ResourceTypeDocument {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		if statusCode == 0 {
			statusCode = int(resp.Response.Status)
		}
	})

	start := time.Now()
	var html, location string
	err = chromedp.Run(taskCtx,
		network.Enable(),
		chromedp.Navigate(rawURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Location(&location),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		c.logger.Warn("failed to render page", zap.String("url", rawURL), zap.Error(err))
		if taskCtx.Err() != nil {
			return nil, &entity.AppError{Kind: entity.Timeout, Message: "timed out rendering page", Cause: err}
		}
		return nil, &entity.AppError{Kind: entity.Unreachable, Message: "could not render page", Cause: err}
	}

	if final, err := url.Parse(location); err == nil && final.Host != "" {
		page = final
	}
	res, err := extractor.Extract(page, strings.NewReader(html))
	if err != nil {
		return nil, &entity.AppError{Kind: entity.ParsingFailed, Message: "could not parse page", Cause: err}
	}

	mu.Lock()
	code := statusCode
	mu.Unlock()

	data := &entity.CrawlData{
		URL:        rawURL,
		StatusCode: code,
		Success:    code >= 200 && code < 300,
		Metadata:   res.Metadata,
		Links:      res.Links,
	}
	if !data.Success {
		data.ErrorMessage = fmt.Sprintf("page returned HTTP %d", code)
	}

	c.logger.Info("rendered page",
		zap.String("url", rawURL),
		zap.Int("status", code),
		zap.Duration("duration", time.Since(start)),
	)
	return data, nil
}

// Close shuts the browser down.
func (c *ChromedpCrawler) Close() {
	c.allocCancel()
}
