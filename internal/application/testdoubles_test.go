package application

import (
	"context"
	"sync"
	"time"

	"fxrates-console/internal/domain"
)

type fakeClock struct{ t time.Time }

func (f fakeClock) Now() time.Time { return f.t }

// fakeRateService scripts the remote service per call. Block channels, when
// set, hold the call open until closed so tests can overlap operations.
type fakeRateService struct {
	mu sync.Mutex

	codes    []string
	codesErr error

	rates   map[string]domain.Rate
	rateErr error

	scheduleID    string
	scheduleErr   error
	scheduleCalls int
	scheduleBlock chan struct{}

	statuses    map[string]domain.RateUpdate
	statusErr   map[string]error
	statusCalls int
	statusBlock chan struct{}
}

var _ RateService = (*fakeRateService)(nil)

func (f *fakeRateService) SupportedCurrencies(context.Context) ([]string, error) {
	if f.codesErr != nil {
		return nil, f.codesErr
	}
	return f.codes, nil
}

func (f *fakeRateService) LatestRate(_ context.Context, base, quote string) (domain.Rate, error) {
	if f.rateErr != nil {
		return domain.Rate{}, f.rateErr
	}
	r, ok := f.rates[base+"/"+quote]
	if !ok {
		return domain.Rate{}, domain.ErrNotFound
	}
	return r, nil
}

func (f *fakeRateService) ScheduleUpdate(ctx context.Context, base, quote string) (string, error) {
	f.mu.Lock()
	f.scheduleCalls++
	block := f.scheduleBlock
	f.mu.Unlock()
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if f.scheduleErr != nil {
		return "", f.scheduleErr
	}
	return f.scheduleID, nil
}

func (f *fakeRateService) UpdateStatus(ctx context.Context, updateID string) (domain.RateUpdate, error) {
	f.mu.Lock()
	f.statusCalls++
	block := f.statusBlock
	f.mu.Unlock()
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return domain.RateUpdate{}, ctx.Err()
		}
	}
	if err := f.statusErr[updateID]; err != nil {
		return domain.RateUpdate{}, err
	}
	upd, ok := f.statuses[updateID]
	if !ok {
		return domain.RateUpdate{}, domain.ErrNotFound
	}
	return upd, nil
}

type countingCache struct {
	mu     sync.Mutex
	store  map[string]domain.Rate
	hits   int
	misses int
	sets   int
}

var _ RateCache = (*countingCache)(nil)

func (c *countingCache) Get(base, quote string) (domain.Rate, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.store[base+"/"+quote]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return r, ok
}

func (c *countingCache) Set(r domain.Rate) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store == nil {
		c.store = map[string]domain.Rate{}
	}
	c.store[r.PairKey()] = r
	c.sets++
}

func pendingUpdate(id, base, quote string) domain.RateUpdate {
	return domain.RateUpdate{
		UpdateID: id,
		Base:     base,
		Quote:    quote,
		Status:   domain.UpdateStatusPending,
	}
}

func appliedUpdate(id, base, quote string, value float64, at time.Time) domain.RateUpdate {
	return domain.RateUpdate{
		UpdateID:  id,
		Base:      base,
		Quote:     quote,
		Status:    domain.UpdateStatusApplied,
		Value:     &value,
		UpdatedAt: &at,
	}
}

func strPtr(s string) *string { return &s }
