package bootstrap

import (
	"net/http"

	"fxrates-console/internal/application"
	"fxrates-console/internal/config"
	"fxrates-console/internal/infrastructure/cache"
	"fxrates-console/internal/infrastructure/logx"
	"fxrates-console/internal/infrastructure/ratesapi"
)

// BuildTracker wires the remote client, the latest-rate cache and the
// notifier into a Tracker. The returned cleanup tears all of it down.
func BuildTracker(cfg config.Config) (*application.Tracker, func(), error) {
	log := logx.L()

	remote := ratesapi.New(cfg.RatesAPIBase, &http.Client{Timeout: cfg.RequestTimeout})

	rateCache, err := cache.NewRatesCache(int64(cfg.RateCacheSize), cfg.RateCacheTTL)
	if err != nil {
		return nil, func() {}, err
	}

	notifier := application.NewTransientNotifier(cfg.StillPendingTTL, cfg.RowHighlightTTL)

	tracker := application.NewTracker(remote,
		application.WithRateCache(rateCache),
		application.WithNotifier(notifier),
	)
	cleanup := func() {
		log.Info("closing tracker")
		tracker.Close()
		rateCache.Close()
	}
	return tracker, cleanup, nil
}
