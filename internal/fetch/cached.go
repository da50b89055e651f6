package fetch

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// DefaultCacheTTL is how long a fetched report is reused within one process.
const DefaultCacheTTL = 10 * time.Minute

// CachedFetcher wraps URL fetching with an in-memory cache. Concurrent
// requests for the same URL share one HTTP request.
type CachedFetcher struct {
	options   *Options
	cacheTTL  time.Duration
	skipCache bool // For testing or forcing fresh fetches
	now       func() time.Time

	mu    sync.Mutex
	cache map[string]cacheEntry
	group singleflight.Group
}

type cacheEntry struct {
	result    *Result
	fetchedAt time.Time
}

// CachedFetcherConfig holds configuration for the cached fetcher.
type CachedFetcherConfig struct {
	CacheTTL  time.Duration
	SkipCache bool
	Options   *Options
}

// DefaultCachedFetcherConfig returns sensible defaults.
func DefaultCachedFetcherConfig() *CachedFetcherConfig {
	return &CachedFetcherConfig{
		CacheTTL:  DefaultCacheTTL,
		SkipCache: false,
		Options:   DefaultOptions(),
	}
}

// NewCachedFetcher creates a new cached fetcher.
func NewCachedFetcher(config *CachedFetcherConfig) *CachedFetcher {
	if config == nil {
		config = DefaultCachedFetcherConfig()
	}
	if config.Options == nil {
		config.Options = DefaultOptions()
	}
	if config.CacheTTL == 0 {
		config.CacheTTL = DefaultCacheTTL
	}
	return &CachedFetcher{
		options:   config.Options,
		cacheTTL:  config.CacheTTL,
		skipCache: config.SkipCache,
		now:       time.Now,
		cache:     make(map[string]cacheEntry),
	}
}

// CachedResult extends Result with cache metadata.
type CachedResult struct {
	*Result
	FromCache bool // Whether this result came from cache
}

// Fetch retrieves a URL, using the cache if the entry is within TTL.
// Failed fetches are never cached.
func (f *CachedFetcher) Fetch(ctx context.Context, urlStr string) (*CachedResult, error) {
	if !f.skipCache {
		if result, ok := f.lookup(urlStr); ok {
			return &CachedResult{Result: result, FromCache: true}, nil
		}
	}

	v, err, _ := f.group.Do(urlStr, func() (interface{}, error) {
		result, err := URL(ctx, urlStr, f.options)
		if err != nil {
			return nil, err
		}
		if !f.skipCache {
			f.store(urlStr, result)
		}
		return result, nil
	})
	if err != nil {
		return nil, err
	}

	return &CachedResult{Result: v.(*Result), FromCache: false}, nil
}

// FetchAll fetches urls concurrently and returns results in input order.
// The first failure cancels the remaining requests and is returned; no
// partial results are returned on error.
func (f *CachedFetcher) FetchAll(ctx context.Context, urls []string) ([]*CachedResult, error) {
	results := make([]*CachedResult, len(urls))

	g, gCtx := errgroup.WithContext(ctx)
	for i, u := range urls {
		g.Go(func() error {
			result, err := f.Fetch(gCtx, u)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// InvalidateCache drops a cached URL, forcing a re-fetch on next request.
func (f *CachedFetcher) InvalidateCache(urlStr string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.cache, urlStr)
}

func (f *CachedFetcher) lookup(urlStr string) (*Result, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entry, ok := f.cache[urlStr]
	if !ok {
		return nil, false
	}
	if f.now().Sub(entry.fetchedAt) > f.cacheTTL {
		delete(f.cache, urlStr)
		return nil, false
	}
	return entry.result, true
}

func (f *CachedFetcher) store(urlStr string, result *Result) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cache[urlStr] = cacheEntry{result: result, fetchedAt: f.now()}
}
