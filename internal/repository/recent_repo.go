package repository

import "context"

// RecentRepository remembers the most recently analysed URLs, newest first.
type RecentRepository interface {
	// Push records url as the newest entry, removing older duplicates.
	Push(ctx context.Context, url string) error
	// List returns at most limit URLs.
	List(ctx context.Context, limit int64) ([]string, error)
}
