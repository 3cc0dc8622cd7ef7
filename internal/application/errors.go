package application

import "errors"

// ErrScheduleInFlight rejects a second schedule attempt while one is
// outstanding. Checks are not single-flight; only scheduling is.
var ErrScheduleInFlight = errors.New("schedule request already in flight")
