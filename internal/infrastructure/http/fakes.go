package httpserver

import (
	"context"
	"sync"

	"fxrates-console/internal/application"
	"fxrates-console/internal/domain"
)

// fakeRemote scripts the remote rate service for handler tests.
type fakeRemote struct {
	mu sync.Mutex

	codes       []string
	rates       map[string]domain.Rate
	scheduleID  string
	scheduleErr error
	statuses    map[string]domain.RateUpdate
	statusErr   map[string]error
}

var _ application.RateService = (*fakeRemote)(nil)

func (f *fakeRemote) SupportedCurrencies(context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.codes, nil
}

func (f *fakeRemote) LatestRate(_ context.Context, base, quote string) (domain.Rate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rates[base+"/"+quote]
	if !ok {
		return domain.Rate{}, domain.ErrNotFound
	}
	return r, nil
}

func (f *fakeRemote) ScheduleUpdate(context.Context, string, string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.scheduleErr != nil {
		return "", f.scheduleErr
	}
	return f.scheduleID, nil
}

func (f *fakeRemote) UpdateStatus(_ context.Context, updateID string) (domain.RateUpdate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.statusErr[updateID]; err != nil {
		return domain.RateUpdate{}, err
	}
	upd, ok := f.statuses[updateID]
	if !ok {
		return domain.RateUpdate{}, domain.ErrNotFound
	}
	return upd, nil
}

func (f *fakeRemote) setStatus(upd domain.RateUpdate) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.statuses == nil {
		f.statuses = map[string]domain.RateUpdate{}
	}
	f.statuses[upd.UpdateID] = upd
}

// NewInMemoryTracker builds a tracker wired to a scripted remote, for tests
// and local development without a running rate service.
func NewInMemoryTracker() (*application.Tracker, *fakeRemote) {
	remote := &fakeRemote{
		codes:      []string{"EUR", "MXN", "USD"},
		scheduleID: "update-1",
		statuses: map[string]domain.RateUpdate{
			"update-1": {UpdateID: "update-1", Base: "USD", Quote: "EUR", Status: domain.UpdateStatusPending},
		},
		rates: map[string]domain.Rate{},
	}
	return application.NewTracker(remote), remote
}
