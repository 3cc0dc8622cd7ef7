package domain

// UpdateStatus is an open enum: the remote service is the source of truth
// and may return statuses this client does not know about.
type UpdateStatus string

const (
	UpdateStatusPending UpdateStatus = "pending"
	UpdateStatusApplied UpdateStatus = "applied"
)

func (s UpdateStatus) Pending() bool { return s == UpdateStatusPending }
func (s UpdateStatus) Applied() bool { return s == UpdateStatusApplied }
