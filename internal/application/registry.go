package application

import (
	"slices"
	"sync"

	"fxrates-console/internal/domain"
)

// UpdateRegistry is the in-memory collection of tracked rate updates,
// ordered most-recently-scheduled first. Records are created on the first
// merge for an id and live for the session; repeat merges update in place.
//
// Every merge carries a ticket from NextTicket, taken when the status fetch
// is issued. A merge whose ticket is older than the last one applied for the
// same id is discarded, so a slow response resuming late cannot regress a
// record that a faster, newer response already advanced.
type UpdateRegistry struct {
	mu      sync.Mutex
	order   []string
	records map[string]*domain.UpdateRecord
	merged  map[string]uint64
	ticket  uint64
	clock   Clock
}

func NewUpdateRegistry(clock Clock) *UpdateRegistry {
	if clock == nil {
		clock = realClock{}
	}
	return &UpdateRegistry{
		records: map[string]*domain.UpdateRecord{},
		merged:  map[string]uint64{},
		clock:   clock,
	}
}

// NextTicket issues a merge ticket. Call it before starting the status
// fetch whose result will be merged with it.
func (r *UpdateRegistry) NextTicket() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ticket++
	return r.ticket
}

// Upsert merges a status response into the record for id, creating and
// prepending a new record when none exists. Existing records keep their
// position, pair and RequestedAt; Value and UpdatedAt are only overwritten
// when the response carries them. Returns the record after the merge.
func (r *UpdateRegistry) Upsert(id string, upd domain.RateUpdate, ticket uint64) domain.UpdateRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return *r.mergeLocked(id, upd, ticket)
}

func (r *UpdateRegistry) mergeLocked(id string, upd domain.RateUpdate, ticket uint64) *domain.UpdateRecord {
	rec, ok := r.records[id]
	if !ok {
		rec = &domain.UpdateRecord{
			UpdateID:    id,
			Base:        upd.Base,
			Quote:       upd.Quote,
			Status:      upd.Status,
			RequestedAt: r.clock.Now(),
			Value:       upd.Value,
			UpdatedAt:   upd.UpdatedAt,
		}
		r.records[id] = rec
		r.order = slices.Insert(r.order, 0, id)
		r.merged[id] = ticket
		return rec
	}
	if ticket < r.merged[id] {
		// Stale response; a newer merge already landed.
		return rec
	}
	r.merged[id] = ticket
	rec.Status = upd.Status
	if upd.Value != nil {
		rec.Value = upd.Value
	}
	if upd.UpdatedAt != nil {
		rec.UpdatedAt = upd.UpdatedAt
	}
	return rec
}

// BeginCheck marks a row as having a status fetch in flight and clears its
// previous row-scoped error.
func (r *UpdateRegistry) BeginCheck(id string) (domain.UpdateRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok {
		return domain.UpdateRecord{}, domain.ErrNotFound
	}
	rec.Checking = true
	rec.Error = nil
	return *rec, nil
}

// ResolveCheck merges a successful status fetch and clears the transient
// row flags. A stale ticket still clears the flags: the fetch did finish.
func (r *UpdateRegistry) ResolveCheck(id string, upd domain.RateUpdate, ticket uint64) domain.UpdateRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec := r.mergeLocked(id, upd, ticket)
	rec.Checking = false
	rec.Error = nil
	return *rec
}

// FailCheck records a row-scoped failure, leaving status, value and
// updatedAt at their last known good state.
func (r *UpdateRegistry) FailCheck(id, msg string) (domain.UpdateRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok {
		return domain.UpdateRecord{}, domain.ErrNotFound
	}
	rec.Checking = false
	rec.Error = &msg
	return *rec, nil
}

func (r *UpdateRegistry) Find(id string) (domain.UpdateRecord, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok {
		return domain.UpdateRecord{}, false
	}
	return *rec, true
}

// List returns a snapshot of all records, most recently scheduled first.
func (r *UpdateRegistry) List() []domain.UpdateRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.UpdateRecord, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.records[id])
	}
	return out
}

func (r *UpdateRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.order)
}
