package domain

import "time"

// UpdateRecord is the client-side view of one scheduled rate-update job.
// Value and UpdatedAt stay nil until the remote service applies the update;
// Checking and Error are transient per-row flags owned by the status poller.
type UpdateRecord struct {
	UpdateID    string
	Base        string
	Quote       string
	Status      UpdateStatus
	RequestedAt time.Time
	Value       *float64
	UpdatedAt   *time.Time
	Checking    bool
	Error       *string
}

// RateUpdate is one status response for a scheduled update. Value and
// UpdatedAt are present only once the update has been applied; Base and
// Quote may be empty on the first pending response.
type RateUpdate struct {
	UpdateID  string
	Base      string
	Quote     string
	Status    UpdateStatus
	Value     *float64
	UpdatedAt *time.Time
}
