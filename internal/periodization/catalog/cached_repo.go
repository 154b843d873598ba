package catalog

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=catalog_mocks_test.go -package=catalog_test

type exerciseSource interface {
	Get(ctx context.Context, id string) (*Exercise, error)
	List(ctx context.Context, params ListParams) ([]*Exercise, error)
	ListMuscleGroups(ctx context.Context) ([]*MuscleGroup, error)
}

const muscleGroupsCacheKey = "muscle-groups"

// CachedRepo is a read-through cache in front of the catalog. The catalog
// is reference data, so entries only leave the cache by expiring.
type CachedRepo struct {
	source     exerciseSource
	cache      *freecache.Cache
	ttlSeconds int
}

func NewCachedRepo(source exerciseSource, cacheSizeMB, ttlSeconds int) *CachedRepo {
	return &CachedRepo{
		source:     source,
		cache:      freecache.NewCache(cacheSizeMB * 1024 * 1024),
		ttlSeconds: ttlSeconds,
	}
}

func exerciseCacheKey(id string) []byte {
	return []byte("exercise:" + id)
}

func (c *CachedRepo) Get(ctx context.Context, id string) (*Exercise, error) {
	if cached, err := c.cache.Get(exerciseCacheKey(id)); err == nil {
		var e Exercise
		if err := json.Unmarshal(cached, &e); err == nil {
			return &e, nil
		}
		log.Warnf("catalog cache: corrupt entry for exercise %s", id)
	} else if !errors.Is(err, freecache.ErrNotFound) {
		log.Warnf("catalog cache get %s: %s", id, err)
	}

	e, err := c.source.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	c.set(exerciseCacheKey(id), e)
	return e, nil
}

func (c *CachedRepo) List(ctx context.Context, params ListParams) ([]*Exercise, error) {
	return c.source.List(ctx, params)
}

func (c *CachedRepo) ListMuscleGroups(ctx context.Context) ([]*MuscleGroup, error) {
	if cached, err := c.cache.Get([]byte(muscleGroupsCacheKey)); err == nil {
		var groups []*MuscleGroup
		if err := json.Unmarshal(cached, &groups); err == nil {
			return groups, nil
		}
	}

	groups, err := c.source.ListMuscleGroups(ctx)
	if err != nil {
		return nil, err
	}

	c.set([]byte(muscleGroupsCacheKey), groups)
	return groups, nil
}

func (c *CachedRepo) set(key []byte, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		log.Errorf("catalog cache marshal %s: %s", key, err)
		return
	}
	if err := c.cache.Set(key, payload, c.ttlSeconds); err != nil {
		log.Warnf("catalog cache set %s: %s", key, err)
	}
}

// EntryCount is the number of live cache entries.
func (c *CachedRepo) EntryCount() int64 {
	return c.cache.EntryCount()
}
