package domain

import (
	"slices"
	"strings"
)

// CurrencySet holds the supported currency codes loaded from the remote
// service. The zero value is an empty, not-yet-loaded set.
type CurrencySet struct {
	codes map[string]struct{}
	list  []string
}

func NewCurrencySet(codes []string) CurrencySet {
	set := make(map[string]struct{}, len(codes))
	list := make([]string, 0, len(codes))
	for _, c := range codes {
		c = NormalizeCode(c)
		if c == "" {
			continue
		}
		if _, ok := set[c]; ok {
			continue
		}
		set[c] = struct{}{}
		list = append(list, c)
	}
	slices.Sort(list)
	return CurrencySet{codes: set, list: list}
}

func (s CurrencySet) Loaded() bool { return len(s.codes) > 0 }

func (s CurrencySet) Codes() []string { return slices.Clone(s.list) }

// ValidatePair checks a base/quote pair against the loaded set.
func (s CurrencySet) ValidatePair(base, quote string) error {
	if !s.Loaded() {
		return ErrCurrenciesNotLoaded
	}
	if base == "" {
		return ErrBaseRequired
	}
	if quote == "" {
		return ErrQuoteRequired
	}
	if base == quote {
		return ErrSameCodes
	}
	if _, ok := s.codes[base]; !ok {
		return ErrBaseUnsupported
	}
	if _, ok := s.codes[quote]; !ok {
		return ErrQuoteUnsupported
	}
	return nil
}

func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
