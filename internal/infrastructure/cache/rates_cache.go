package cache

import (
	"fmt"
	"time"

	"fxrates-console/internal/application"
	"fxrates-console/internal/domain"

	"github.com/dgraph-io/ristretto"
)

// RatesCache keeps recent latest-rate lookups per pair with a TTL, so
// repeated reads of the same pair skip the remote round trip.
type RatesCache struct {
	cache *ristretto.Cache
	ttl   time.Duration
}

var _ application.RateCache = (*RatesCache)(nil)

func NewRatesCache(maxItems int64, ttl time.Duration) (*RatesCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10 * maxItems,
		MaxCost:     maxItems,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create rates cache failed: %w", err)
	}
	return &RatesCache{cache: c, ttl: ttl}, nil
}

func (c *RatesCache) Get(base, quote string) (domain.Rate, bool) {
	v, ok := c.cache.Get(base + ":" + quote)
	if !ok {
		return domain.Rate{}, false
	}
	rate, ok := v.(domain.Rate)
	return rate, ok
}

func (c *RatesCache) Set(rate domain.Rate) {
	c.cache.SetWithTTL(rate.Base+":"+rate.Quote, rate, 1, c.ttl)
}

// Wait flushes pending writes; used by tests.
func (c *RatesCache) Wait() { c.cache.Wait() }

func (c *RatesCache) Close() { c.cache.Close() }
