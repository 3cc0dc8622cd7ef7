package cache

import (
	"testing"
	"time"

	"fxrates-console/internal/domain"

	"github.com/stretchr/testify/require"
)

func Test_RatesCache_SetGet(t *testing.T) {
	t.Parallel()
	c, err := NewRatesCache(100, time.Minute)
	require.NoError(t, err)
	defer c.Close()

	rate := domain.Rate{Base: "USD", Quote: "EUR", Value: 0.92, UpdatedAt: time.Now().UTC()}
	c.Set(rate)
	c.Wait()

	got, ok := c.Get("USD", "EUR")
	require.True(t, ok)
	require.Equal(t, rate, got)
}

func Test_RatesCache_MissOnUnknownPair(t *testing.T) {
	t.Parallel()
	c, err := NewRatesCache(100, time.Minute)
	require.NoError(t, err)
	defer c.Close()

	_, ok := c.Get("USD", "MXN")
	require.False(t, ok)
}

func Test_RatesCache_ExpiresAfterTTL(t *testing.T) {
	t.Parallel()
	c, err := NewRatesCache(100, 20*time.Millisecond)
	require.NoError(t, err)
	defer c.Close()

	c.Set(domain.Rate{Base: "USD", Quote: "EUR", Value: 0.92})
	c.Wait()

	require.Eventually(t, func() bool {
		_, ok := c.Get("USD", "EUR")
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func Test_RatesCache_DistinguishesDirection(t *testing.T) {
	t.Parallel()
	c, err := NewRatesCache(100, time.Minute)
	require.NoError(t, err)
	defer c.Close()

	c.Set(domain.Rate{Base: "USD", Quote: "EUR", Value: 0.92})
	c.Set(domain.Rate{Base: "EUR", Quote: "USD", Value: 1.09})
	c.Wait()

	fwd, ok := c.Get("USD", "EUR")
	require.True(t, ok)
	require.InDelta(t, 0.92, fwd.Value, 1e-9)

	rev, ok := c.Get("EUR", "USD")
	require.True(t, ok)
	require.InDelta(t, 1.09, rev.Value, 1e-9)
}
