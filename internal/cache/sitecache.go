// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// sitecache.go provides a Valkey-backed fallback store for saved site
// records. It is consulted when the primary Postgres write or read fails,
// so a flaky database never loses a customer's generated site. The store
// is quota-bounded: when full, the oldest records are evicted first.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"siteforge/internal/models"
)

const (
	// siteKeyPrefix is the Valkey key prefix for fallback site records.
	siteKeyPrefix = "site:"

	// siteIndexKey is the sorted set tracking record age for eviction.
	siteIndexKey = "site:_index"

	// DefaultSiteQuota bounds the total bytes of fallback site records.
	DefaultSiteQuota = 8 * 1024 * 1024 // 8 MB
)

// SiteCache is a quota-bounded fallback store for site records.
type SiteCache struct {
	client *redis.Client
	quota  int64
}

// NewSiteCache creates a site fallback store with the given byte quota.
func NewSiteCache(client *redis.Client, quota int64) *SiteCache {
	if quota <= 0 {
		quota = DefaultSiteQuota
	}
	return &SiteCache{client: client, quota: quota}
}

// Save stores a site record, evicting the oldest records first when the
// quota would be exceeded. Save never returns an error to the caller;
// fallback persistence is best-effort by contract.
func (sc *SiteCache) Save(ctx context.Context, site *models.Website) {
	payload, err := json.Marshal(site)
	if err != nil {
		slog.Warn("site cache encode error", "id", site.ID, "error", err)
		return
	}

	if int64(len(payload)) > sc.quota {
		slog.Warn("site record exceeds fallback quota, skipping", "id", site.ID, "size", len(payload))
		return
	}

	// Evict oldest records until the new payload fits.
	for {
		used, err := sc.usedBytes(ctx)
		if err != nil {
			slog.Warn("site cache usage scan error", "error", err)
			return
		}
		if used+int64(len(payload)) <= sc.quota {
			break
		}

		oldest, err := sc.client.ZRange(ctx, siteIndexKey, 0, 0).Result()
		if err != nil || len(oldest) == 0 {
			slog.Warn("site cache full and nothing to evict", "id", site.ID)
			return
		}
		sc.evict(ctx, oldest[0])
		slog.Info("site cache evicted oldest record", "evicted", oldest[0], "for", site.ID)
	}

	if err := sc.client.Set(ctx, siteKeyPrefix+site.ID, payload, 0).Err(); err != nil {
		slog.Warn("site cache set error", "id", site.ID, "error", err)
		return
	}
	if err := sc.client.ZAdd(ctx, siteIndexKey, redis.Z{
		Score:  float64(time.Now().UnixNano()),
		Member: site.ID,
	}).Err(); err != nil {
		slog.Warn("site cache index error", "id", site.ID, "error", err)
	}
}

// Get retrieves a fallback site record. Returns nil on miss or error.
func (sc *SiteCache) Get(ctx context.Context, id string) *models.Website {
	payload, err := sc.client.Get(ctx, siteKeyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		slog.Warn("site cache get error", "id", id, "error", err)
		return nil
	}

	var site models.Website
	if err := json.Unmarshal(payload, &site); err != nil {
		slog.Warn("site cache decode error", "id", id, "error", err)
		return nil
	}
	return &site
}

// usedBytes sums the sizes of all fallback records.
func (sc *SiteCache) usedBytes(ctx context.Context) (int64, error) {
	ids, err := sc.client.ZRange(ctx, siteIndexKey, 0, -1).Result()
	if err != nil {
		return 0, fmt.Errorf("site cache index range: %w", err)
	}

	var total int64
	for _, id := range ids {
		size, err := sc.client.StrLen(ctx, siteKeyPrefix+id).Result()
		if err != nil {
			continue
		}
		total += size
	}
	return total, nil
}

// evict removes one record and its index entry.
func (sc *SiteCache) evict(ctx context.Context, id string) {
	sc.client.Del(ctx, siteKeyPrefix+id)
	sc.client.ZRem(ctx, siteIndexKey, id)
}
