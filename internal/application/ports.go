package application

import (
	"context"
	"time"

	"fxrates-console/internal/domain"
)

// RateService is the narrow surface of the remote fx-rates service this
// client depends on. Transport concerns (retries, timeouts) live behind it.
type RateService interface {
	SupportedCurrencies(ctx context.Context) ([]string, error)
	LatestRate(ctx context.Context, base, quote string) (domain.Rate, error)
	ScheduleUpdate(ctx context.Context, base, quote string) (string, error)
	UpdateStatus(ctx context.Context, updateID string) (domain.RateUpdate, error)
}

// RateCache caches one-shot latest-rate lookups per pair.
type RateCache interface {
	Get(base, quote string) (domain.Rate, bool)
	Set(rate domain.Rate)
}

// NoopRateCache never hits; useful for tests/dev when caching is disabled.
type NoopRateCache struct{}

func (NoopRateCache) Get(string, string) (domain.Rate, bool) { return domain.Rate{}, false }
func (NoopRateCache) Set(domain.Rate)                        {}

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }
