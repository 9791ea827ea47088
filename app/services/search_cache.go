package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/propmitra/propmitra-backend/app/models"
	"github.com/propmitra/propmitra-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// searchCacheTTL bounds staleness of the public search read path.
const searchCacheTTL = 60 * time.Second

// SearchCache memoizes search results in redis keyed by the normalized
// filter. Every failure degrades silently to the database.
type SearchCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSearchCache(rdb *redis.Client) *SearchCache {
	return &SearchCache{rdb: rdb, ttl: searchCacheTTL}
}

func fmtBound(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%g", *v)
}

// Key derives a deterministic cache key from the filter. Pointer bounds
// are folded in as "-" when absent so nil and zero stay distinct.
func (c *SearchCache) Key(f models.SearchFilter) string {
	bedrooms := "-"
	if f.Bedrooms != nil {
		bedrooms = fmt.Sprintf("%d", *f.Bedrooms)
	}
	raw := fmt.Sprintf("%s|%s|%s|%s|%s|%s|%s|%s",
		f.City, f.PropertyType, bedrooms,
		fmtBound(f.MinPrice), fmtBound(f.MaxPrice),
		fmtBound(f.MinPricePerSqft), fmtBound(f.MaxPricePerSqft),
		f.Sort,
	)
	sum := sha256.Sum256([]byte(raw))
	return "search:live:" + hex.EncodeToString(sum[:16])
}

func (c *SearchCache) Get(ctx context.Context, key string) ([]models.Listing, bool) {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.L().Debug("search cache get failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	var listings []models.Listing
	if err := json.Unmarshal(data, &listings); err != nil {
		logger.L().Debug("search cache decode failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return listings, true
}

func (c *SearchCache) Set(ctx context.Context, key string, listings []models.Listing) {
	data, err := json.Marshal(listings)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		logger.L().Debug("search cache set failed", zap.String("key", key), zap.Error(err))
	}
}
