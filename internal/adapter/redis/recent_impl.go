package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const (
	recentKey    = "seo:recent"
	recentMaxLen = 100
)

// RecentRepoImpl implements repository.RecentRepository using a Redis list.
type RecentRepoImpl struct {
	client *redis.Client
}

func NewRecentRepo(client *redis.Client) *RecentRepoImpl {
	return &RecentRepoImpl{client: client}
}

// Push moves url to the head of the list and trims it to its maximum length.
func (r *RecentRepoImpl) Push(ctx context.Context, url string) error {
	pipe := r.client.TxPipeline()
	pipe.LRem(ctx, recentKey, 0, url)
	pipe.LPush(ctx, recentKey, url)
	pipe.LTrim(ctx, recentKey, 0, recentMaxLen-1)
	_, err := pipe.Exec(ctx)
	return err
}

func (r *RecentRepoImpl) List(ctx context.Context, limit int64) ([]string, error) {
	if limit <= 0 {
		return []string{}, nil
	}
	return r.client.LRange(ctx, recentKey, 0, limit-1).Result()
}
