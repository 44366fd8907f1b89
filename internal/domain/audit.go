package domain

import "time"

// Audit is the bookkeeping shared by every resource.
type Audit struct {
	CreatedBy     string    `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
	LastChangedBy string    `json:"last_changed_by"`
	LastUpdate    time.Time `json:"last_update"`
}
