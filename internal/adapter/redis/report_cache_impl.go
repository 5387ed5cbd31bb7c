package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/user/seo-report/internal/entity"
	"github.com/user/seo-report/pkg/utils"
)

const reportKeyPrefix = "seo:report:"

// ReportCacheImpl implements repository.ReportCache with one JSON string per URL.
type ReportCacheImpl struct {
	client *redis.Client
}

func NewReportCache(client *redis.Client) *ReportCacheImpl {
	return &ReportCacheImpl{client: client}
}

// generateKey creates a consistent Redis key for a given URL by hashing it.
func (r *ReportCacheImpl) generateKey(url string) string {
	return reportKeyPrefix + utils.HashURL(url)
}

func (r *ReportCacheImpl) Get(ctx context.Context, url string) (*entity.Envelope, error) {
	raw, err := r.client.Get(ctx, r.generateKey(url)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var env entity.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode cached envelope: %w", err)
	}
	return &env, nil
}

func (r *ReportCacheImpl) Set(ctx context.Context, url string, env *entity.Envelope, ttl time.Duration) error {
	raw, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}
	return r.client.Set(ctx, r.generateKey(url), raw, ttl).Err()
}

func (r *ReportCacheImpl) Delete(ctx context.Context, url string) error {
	return r.client.Del(ctx, r.generateKey(url)).Err()
}
