package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Common
	Env      string
	LogLevel string
	// Gateway
	Port string
	// Remote rate service
	RatesAPIBase   string
	RequestTimeout time.Duration
	// Transient notifications
	StillPendingTTL time.Duration
	RowHighlightTTL time.Duration
	// Latest-rate cache
	RateCacheSize int
	RateCacheTTL  time.Duration
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoiDef(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func durMS(key string, defMS int) time.Duration {
	return time.Duration(atoiDef(getEnv(key, strconv.Itoa(defMS)), defMS)) * time.Millisecond
}

// Load reads environment variables and applies defaults.
func Load() Config {
	return Config{
		Env:             getEnv("ENV", "local"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		Port:            getEnv("PORT", "8080"),
		RatesAPIBase:    getEnv("RATES_API_BASE", "http://localhost:8090"),
		RequestTimeout:  durMS("REQUEST_TIMEOUT_MS", 3000),
		StillPendingTTL: durMS("PENDING_POPUP_MS", 800),
		RowHighlightTTL: durMS("CHECK_POPUP_MS", 400),
		RateCacheSize:   atoiDef(getEnv("RATE_CACHE_SIZE", "1024"), 1024),
		RateCacheTTL:    durMS("RATE_CACHE_TTL_MS", 30000),
	}
}
