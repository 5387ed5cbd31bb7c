package repository

import (
	"context"
	"time"

	"github.com/user/seo-report/internal/entity"
)

// ReportCache holds recent envelopes per URL.
type ReportCache interface {
	// Get returns the cached envelope, or nil without error on a miss.
	Get(ctx context.Context, url string) (*entity.Envelope, error)
	// Set caches env for url until ttl elapses.
	Set(ctx context.Context, url string, env *entity.Envelope, ttl time.Duration) error
	// Delete drops the cached envelope, used when a fresh analysis is forced.
	Delete(ctx context.Context, url string) error
}
