package domain

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrUpdateNotPending    = errors.New("update is not pending")
	ErrCurrenciesNotLoaded = errors.New("supported currencies not loaded")
	ErrBaseRequired        = errors.New("base currency is required")
	ErrQuoteRequired       = errors.New("quote currency is required")
	ErrSameCodes           = errors.New("base and quote must be different")
	ErrBaseUnsupported     = errors.New("base currency not supported")
	ErrQuoteUnsupported    = errors.New("quote currency not supported")
)
