package model

import "time"

// RunStatus tracks the lifecycle of a stored verification run.
type RunStatus string

const (
	RunComplete   RunStatus = "complete"
	RunReconciled RunStatus = "reconciled"
	RunFailed     RunStatus = "failed"
)

// Run is the persisted record of one verification pass over a
// (copy document, artwork) pair.
type Run struct {
	ID        string    `json:"id"`
	CopyDoc   string    `json:"copy_doc"`
	Artwork   string    `json:"artwork"`
	Status    RunStatus `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
