package application

import (
	"sync"
	"time"
)

const (
	DefaultStillPendingTTL = 800 * time.Millisecond
	DefaultRowHighlightTTL = 400 * time.Millisecond
)

// NotificationState is a snapshot of the transient signals for rendering.
type NotificationState struct {
	StillPending  bool
	HighlightedID string
}

// TransientNotifier manages two auto-expiring signals: a single global
// "still pending" flag and a single highlighted-row slot. Re-triggering
// restarts the relevant timer; triggering the row slot for another id
// replaces the previous highlight immediately.
//
// Each trigger takes a fresh token and expiry only clears the signal when
// its token is still current, so a stale timer firing after a re-trigger
// never clears the newer signal.
type TransientNotifier struct {
	mu sync.Mutex

	stillPendingTTL time.Duration
	rowHighlightTTL time.Duration

	stillPending bool
	pendingToken uint64

	highlightedID string
	rowToken      uint64
}

func NewTransientNotifier(stillPendingTTL, rowHighlightTTL time.Duration) *TransientNotifier {
	if stillPendingTTL <= 0 {
		stillPendingTTL = DefaultStillPendingTTL
	}
	if rowHighlightTTL <= 0 {
		rowHighlightTTL = DefaultRowHighlightTTL
	}
	return &TransientNotifier{
		stillPendingTTL: stillPendingTTL,
		rowHighlightTTL: rowHighlightTTL,
	}
}

// TriggerStillPending shows the global banner and restarts its expiry.
func (n *TransientNotifier) TriggerStillPending() {
	n.mu.Lock()
	n.pendingToken++
	token := n.pendingToken
	n.stillPending = true
	n.mu.Unlock()

	time.AfterFunc(n.stillPendingTTL, func() { n.expireStillPending(token) })
}

func (n *TransientNotifier) expireStillPending(token uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if token != n.pendingToken {
		return
	}
	n.stillPending = false
}

// TriggerRowHighlight highlights one row, replacing any current highlight.
func (n *TransientNotifier) TriggerRowHighlight(id string) {
	n.mu.Lock()
	n.rowToken++
	token := n.rowToken
	n.highlightedID = id
	n.mu.Unlock()

	time.AfterFunc(n.rowHighlightTTL, func() { n.expireRowHighlight(token) })
}

func (n *TransientNotifier) expireRowHighlight(token uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if token != n.rowToken {
		return
	}
	n.highlightedID = ""
}

func (n *TransientNotifier) Snapshot() NotificationState {
	n.mu.Lock()
	defer n.mu.Unlock()
	return NotificationState{
		StillPending:  n.stillPending,
		HighlightedID: n.highlightedID,
	}
}
