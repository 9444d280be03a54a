// Package directory resolves user display profiles through a redis
// read-through cache in front of the profiles table.
package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/blog-engine/internal/model"
	"github.com/d60-Lab/blog-engine/internal/repository"
	"github.com/d60-Lab/blog-engine/pkg/logger"
)

// ErrNotFound is returned when no profile exists for the requested key.
var ErrNotFound = repository.ErrNotFound

// Directory serves profile lookups. A nil cache client disables caching.
type Directory struct {
	repo  repository.ProfileRepository
	cache *redis.Client
	ttl   time.Duration

	dbLoads atomic.Int64
}

func New(repo repository.ProfileRepository, cache *redis.Client, ttl time.Duration) *Directory {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Directory{repo: repo, cache: cache, ttl: ttl}
}

func cacheKey(id string) string { return fmt.Sprintf("profile:%s", id) }

// ByID returns the profile for id, reading through the cache.
func (d *Directory) ByID(ctx context.Context, id string) (*model.Profile, error) {
	if p, ok := d.cached(ctx, id); ok {
		return p, nil
	}
	d.dbLoads.Add(1)
	p, err := d.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d.store(ctx, p)
	return p, nil
}

// ByIDs resolves a batch of ids with one MGET and at most one database query
// for the misses. Unknown ids are absent from the returned map.
func (d *Directory) ByIDs(ctx context.Context, ids []string) (map[string]*model.Profile, error) {
	out := make(map[string]*model.Profile, len(ids))
	ids = dedupe(ids)
	if len(ids) == 0 {
		return out, nil
	}

	if d.cache != nil {
		keys := make([]string, len(ids))
		for i, id := range ids {
			keys[i] = cacheKey(id)
		}
		vals, err := d.cache.MGet(ctx, keys...).Result()
		if err != nil {
			logger.Warn("profile cache mget failed", zap.Int("keys", len(keys)), zap.Error(err))
		}
		for i, v := range vals {
			str, ok := v.(string)
			if !ok {
				continue
			}
			var p model.Profile
			if uErr := json.Unmarshal([]byte(str), &p); uErr == nil {
				out[ids[i]] = &p
			}
		}
	}

	missing := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := out[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return out, nil
	}

	d.dbLoads.Add(1)
	profiles, err := d.repo.ListByIDs(ctx, missing)
	if err != nil {
		return nil, err
	}
	for _, p := range profiles {
		out[p.ID] = p
		d.store(ctx, p)
	}
	return out, nil
}

// ByUsername always hits the database; usernames are not cached because they
// can change underneath a cached id.
func (d *Directory) ByUsername(ctx context.Context, username string) (*model.Profile, error) {
	d.dbLoads.Add(1)
	return d.repo.GetByUsername(ctx, username)
}

// Upsert writes the profile and drops its cache entry.
func (d *Directory) Upsert(ctx context.Context, p *model.Profile) error {
	if err := d.repo.Upsert(ctx, p); err != nil {
		return err
	}
	d.Invalidate(ctx, p.ID)
	return nil
}

func (d *Directory) Invalidate(ctx context.Context, id string) {
	if d.cache == nil {
		return
	}
	if err := d.cache.Del(ctx, cacheKey(id)).Err(); err != nil {
		logger.Warn("profile cache delete failed", zap.String("profile_id", id), zap.Error(err))
	}
}

// DBLoads reports how many times the directory fell through to the database.
func (d *Directory) DBLoads() int64 { return d.dbLoads.Load() }

func (d *Directory) cached(ctx context.Context, id string) (*model.Profile, bool) {
	if d.cache == nil {
		return nil, false
	}
	data, err := d.cache.Get(ctx, cacheKey(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Warn("profile cache get failed", zap.String("profile_id", id), zap.Error(err))
		}
		return nil, false
	}
	var p model.Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, false
	}
	return &p, true
}

func (d *Directory) store(ctx context.Context, p *model.Profile) {
	if d.cache == nil {
		return
	}
	payload, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := d.cache.Set(ctx, cacheKey(p.ID), payload, d.ttl).Err(); err != nil {
		logger.Warn("profile cache set failed", zap.String("profile_id", p.ID), zap.Error(err))
	}
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	res := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		res = append(res, id)
	}
	return res
}
