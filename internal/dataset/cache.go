package dataset

import (
	"context"
	"time"

	"github.com/bluele/gcache"

	"disruption-stats-go/internal/types"
)

const tracksKey = "tracks"

// CachedSource keeps recently fetched files in an LRU with expiry. Failed
// fetches are not cached. Callers must not modify returned slices.
type CachedSource struct {
	next  Source
	cache gcache.Cache
}

// NewCachedSource wraps next. A size of zero disables caching and returns
// next unchanged.
func NewCachedSource(next Source, size int, ttl time.Duration) Source {
	if size <= 0 {
		return next
	}
	return &CachedSource{
		next:  next,
		cache: gcache.New(size).LRU().Expiration(ttl).Build(),
	}
}

func (s *CachedSource) Records(ctx context.Context, year string) ([]types.DisruptionRecord, error) {
	if v, err := s.cache.Get("year:" + year); err == nil {
		return v.([]types.DisruptionRecord), nil
	}
	recs, err := s.next.Records(ctx, year)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set("year:"+year, recs)
	return recs, nil
}

func (s *CachedSource) Tracks(ctx context.Context) ([]types.Track, error) {
	if v, err := s.cache.Get(tracksKey); err == nil {
		return v.([]types.Track), nil
	}
	tracks, err := s.next.Tracks(ctx)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(tracksKey, tracks)
	return tracks, nil
}
