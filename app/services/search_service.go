package services

import (
	"context"

	"github.com/propmitra/propmitra-backend/app/models"
)

// SearchStore is the persistence port for the public read path. The
// implementation must restrict results to LIVE listings; nothing a caller
// supplies can widen that.
type SearchStore interface {
	SearchListings(ctx context.Context, f models.SearchFilter) ([]models.Listing, error)
}

// SearchService serves the public listing search, fronted by an optional
// short-TTL cache. Cache staleness only delays visibility of freshly
// approved listings, which the read path tolerates.
type SearchService struct {
	Store SearchStore
	Cache *SearchCache
}

func NewSearchService(store SearchStore, cache *SearchCache) *SearchService {
	return &SearchService{Store: store, Cache: cache}
}

// Search returns LIVE listings matching the filter, at most
// models.SearchLimit of them. An unknown sort key falls back to newest
// first.
func (s *SearchService) Search(ctx context.Context, f models.SearchFilter) ([]models.Listing, error) {
	switch f.Sort {
	case models.SortPriceAsc, models.SortPriceDesc, models.SortPricePerSqftAsc, models.SortPricePerSqftDesc:
	default:
		f.Sort = models.SortNewest
	}

	var key string
	if s.Cache != nil {
		key = s.Cache.Key(f)
		if listings, ok := s.Cache.Get(ctx, key); ok {
			return listings, nil
		}
	}

	listings, err := s.Store.SearchListings(ctx, f)
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		s.Cache.Set(ctx, key, listings)
	}
	return listings, nil
}
