package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_Notifier_StillPendingExpires(t *testing.T) {
	t.Parallel()
	n := NewTransientNotifier(20*time.Millisecond, 20*time.Millisecond)

	n.TriggerStillPending()
	require.True(t, n.Snapshot().StillPending)

	require.Eventually(t, func() bool {
		return !n.Snapshot().StillPending
	}, time.Second, 5*time.Millisecond)
}

func Test_Notifier_RowHighlightExpires(t *testing.T) {
	t.Parallel()
	n := NewTransientNotifier(20*time.Millisecond, 20*time.Millisecond)

	n.TriggerRowHighlight("U1")
	require.Equal(t, "U1", n.Snapshot().HighlightedID)

	require.Eventually(t, func() bool {
		return n.Snapshot().HighlightedID == ""
	}, time.Second, 5*time.Millisecond)
}

func Test_Notifier_RowRetriggerReplacesImmediately(t *testing.T) {
	t.Parallel()
	n := NewTransientNotifier(time.Minute, time.Minute)

	n.TriggerRowHighlight("U1")
	n.TriggerRowHighlight("U2")
	require.Equal(t, "U2", n.Snapshot().HighlightedID)
}

func Test_Notifier_StaleExpiryDoesNotClearNewerTrigger(t *testing.T) {
	t.Parallel()
	n := NewTransientNotifier(time.Minute, time.Minute)

	n.TriggerRowHighlight("U1")
	staleToken := n.rowToken
	n.TriggerRowHighlight("U2")

	n.expireRowHighlight(staleToken)
	require.Equal(t, "U2", n.Snapshot().HighlightedID)

	n.expireRowHighlight(n.rowToken)
	require.Equal(t, "", n.Snapshot().HighlightedID)
}

func Test_Notifier_StaleGlobalExpiryKeepsBanner(t *testing.T) {
	t.Parallel()
	n := NewTransientNotifier(time.Minute, time.Minute)

	n.TriggerStillPending()
	staleToken := n.pendingToken
	n.TriggerStillPending()

	n.expireStillPending(staleToken)
	require.True(t, n.Snapshot().StillPending)

	n.expireStillPending(n.pendingToken)
	require.False(t, n.Snapshot().StillPending)
}

func Test_Notifier_DefaultsApplied(t *testing.T) {
	t.Parallel()
	n := NewTransientNotifier(0, -1)
	require.Equal(t, DefaultStillPendingTTL, n.stillPendingTTL)
	require.Equal(t, DefaultRowHighlightTTL, n.rowHighlightTTL)
}
