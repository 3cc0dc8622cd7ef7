package domain

import "time"

// Rate is a point-in-time exchange rate for one currency pair.
type Rate struct {
	Base      string
	Quote     string
	Value     float64
	UpdatedAt time.Time
}

func (r Rate) PairKey() string { return r.Base + "/" + r.Quote }
