package application

import (
	"context"
	"sync"
	"sync/atomic"

	"fxrates-console/internal/domain"
)

// Tracker drives the user-facing actions against the remote rate service
// and owns the session state: the update registry, the transient
// notifications, the loaded currency set and the global action error.
type Tracker struct {
	remote   RateService
	registry *UpdateRegistry
	notifier *TransientNotifier
	cache    RateCache
	clock    Clock

	ctx    context.Context
	cancel context.CancelFunc

	scheduling atomic.Bool

	mu         sync.Mutex
	currencies domain.CurrencySet
	actionErr  string
}

type Option func(*Tracker)

func WithClock(c Clock) Option                 { return func(t *Tracker) { t.clock = c } }
func WithRateCache(c RateCache) Option         { return func(t *Tracker) { t.cache = c } }
func WithNotifier(n *TransientNotifier) Option { return func(t *Tracker) { t.notifier = n } }

func NewTracker(remote RateService, opts ...Option) *Tracker {
	t := &Tracker{remote: remote}
	for _, opt := range opts {
		opt(t)
	}
	if t.clock == nil {
		t.clock = realClock{}
	}
	if t.cache == nil {
		t.cache = NoopRateCache{}
	}
	if t.notifier == nil {
		t.notifier = NewTransientNotifier(DefaultStillPendingTTL, DefaultRowHighlightTTL)
	}
	t.registry = NewUpdateRegistry(t.clock)
	t.ctx, t.cancel = context.WithCancel(context.Background())
	return t
}

// Close cancels every in-flight remote call started by this tracker.
func (t *Tracker) Close() { t.cancel() }

// opContext scopes a remote call to both the caller and the tracker
// lifetime, so teardown aborts work that no longer has an owner.
func (t *Tracker) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(t.ctx, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

// LoadCurrencies fetches the supported currency codes and arms pair
// validation. A failed reload keeps the previously loaded set.
func (t *Tracker) LoadCurrencies(ctx context.Context) ([]string, error) {
	ctx, cancel := t.opContext(ctx)
	defer cancel()

	codes, err := t.remote.SupportedCurrencies(ctx)
	if err != nil {
		return nil, err
	}
	set := domain.NewCurrencySet(codes)
	t.mu.Lock()
	t.currencies = set
	t.mu.Unlock()
	return set.Codes(), nil
}

func (t *Tracker) Currencies() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.currencies.Codes()
}

// LatestRate performs the one-shot rate lookup for a pair, serving from the
// cache when a fresh value is available.
func (t *Tracker) LatestRate(ctx context.Context, base, quote string) (domain.Rate, error) {
	base, quote = domain.NormalizeCode(base), domain.NormalizeCode(quote)
	if err := t.validatePair(base, quote); err != nil {
		return domain.Rate{}, err
	}
	t.setActionError("")

	if rate, ok := t.cache.Get(base, quote); ok {
		return rate, nil
	}

	ctx, cancel := t.opContext(ctx)
	defer cancel()

	rate, err := t.remote.LatestRate(ctx, base, quote)
	if err != nil {
		t.setActionError(err.Error())
		return domain.Rate{}, err
	}
	t.cache.Set(rate)
	return rate, nil
}

// ScheduleUpdate asks the remote service to schedule a rate update for the
// pair and immediately reads back the current status of the returned id.
//
// The remote service coalesces repeat requests for a pair that already has
// a pending job by returning the same id. That case is detected by checking
// registry membership before the merge; when the coalesced job is still
// pending, the global "still pending" notification fires instead of a new
// row appearing.
func (t *Tracker) ScheduleUpdate(ctx context.Context, base, quote string) (domain.UpdateRecord, error) {
	base, quote = domain.NormalizeCode(base), domain.NormalizeCode(quote)
	if err := t.validatePair(base, quote); err != nil {
		return domain.UpdateRecord{}, err
	}
	if !t.scheduling.CompareAndSwap(false, true) {
		return domain.UpdateRecord{}, ErrScheduleInFlight
	}
	defer t.scheduling.Store(false)
	t.setActionError("")

	ctx, cancel := t.opContext(ctx)
	defer cancel()

	id, err := t.remote.ScheduleUpdate(ctx, base, quote)
	if err != nil {
		t.setActionError(err.Error())
		return domain.UpdateRecord{}, err
	}

	_, existedBefore := t.registry.Find(id)

	ticket := t.registry.NextTicket()
	latest, err := t.remote.UpdateStatus(ctx, id)
	if err != nil {
		// No partial record: the registry is only touched on success.
		t.setActionError(err.Error())
		return domain.UpdateRecord{}, err
	}
	if latest.Base == "" {
		latest.Base = base
	}
	if latest.Quote == "" {
		latest.Quote = quote
	}

	rec := t.registry.Upsert(id, latest, ticket)
	if existedBefore && rec.Status.Pending() {
		t.notifier.TriggerStillPending()
	}
	return rec, nil
}

// CheckStatus polls the remote status of one tracked update. Failures are
// scoped to that row and leave its last known status untouched.
func (t *Tracker) CheckStatus(ctx context.Context, updateID string) (domain.UpdateRecord, error) {
	rec, ok := t.registry.Find(updateID)
	if !ok {
		return domain.UpdateRecord{}, domain.ErrNotFound
	}
	if !rec.Status.Pending() {
		return domain.UpdateRecord{}, domain.ErrUpdateNotPending
	}

	if _, err := t.registry.BeginCheck(updateID); err != nil {
		return domain.UpdateRecord{}, err
	}

	ticket := t.registry.NextTicket()
	ctx, cancel := t.opContext(ctx)
	defer cancel()

	latest, err := t.remote.UpdateStatus(ctx, updateID)
	if err != nil {
		_, _ = t.registry.FailCheck(updateID, err.Error())
		return domain.UpdateRecord{}, err
	}

	merged := t.registry.ResolveCheck(updateID, latest, ticket)
	if merged.Status.Pending() {
		t.notifier.TriggerRowHighlight(updateID)
	}
	return merged, nil
}

func (t *Tracker) Updates() []domain.UpdateRecord { return t.registry.List() }

func (t *Tracker) Update(id string) (domain.UpdateRecord, bool) { return t.registry.Find(id) }

func (t *Tracker) Notifications() NotificationState { return t.notifier.Snapshot() }

func (t *Tracker) ActionError() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.actionErr
}

func (t *Tracker) setActionError(msg string) {
	t.mu.Lock()
	t.actionErr = msg
	t.mu.Unlock()
}

func (t *Tracker) validatePair(base, quote string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.currencies.ValidatePair(base, quote)
}
