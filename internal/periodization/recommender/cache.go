package recommender

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/mesoplan/internal/telemetry/tracing"
)

// Cache keeps the latest recommendation per user in redis.
type Cache struct {
	redisClient *redis.Client
	ttl         time.Duration
}

func NewCache(redisClient *redis.Client, ttl time.Duration) *Cache {
	return &Cache{
		redisClient: redisClient,
		ttl:         ttl,
	}
}

func cacheKey(userID int) string {
	return fmt.Sprintf("mesoplan:recommendation:%d", userID)
}

func (c *Cache) Get(ctx context.Context, userID int) (_ *Recommendation, _ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "cache.recommender.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	payload, err := c.redisClient.Get(ctx, cacheKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	rec := &Recommendation{}
	if err := json.Unmarshal(payload, rec); err != nil {
		log.Errorf("user %d: drop unreadable cached recommendation: %s", userID, err)
		return nil, false, nil
	}
	return rec, true, nil
}

func (c *Cache) Set(ctx context.Context, rec *Recommendation) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "cache.recommender.set")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal recommendation: %w", err)
	}
	if err := c.redisClient.Set(ctx, cacheKey(rec.UserID), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *Cache) Invalidate(ctx context.Context, userID int) error {
	if err := c.redisClient.Del(ctx, cacheKey(userID)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
