package repository

import (
	"context"

	"github.com/user/seo-report/internal/entity"
)

// CrawlerRepository fetches a page and reports its metadata and links.
type CrawlerRepository interface {
	// Crawl returns crawl data for url. A page answering with a non-2xx
	// status is not an error: the data carries success=false instead.
	Crawl(ctx context.Context, url string) (*entity.CrawlData, error)
}

// AnalystRepository produces the AI analysis document for a crawl.
type AnalystRepository interface {
	// Analyze returns the analysis as a JSON object keyed by
	// entity.AnalysisRootKey.
	Analyze(ctx context.Context, data *entity.CrawlData) ([]byte, error)
}
