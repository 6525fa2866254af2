package model

import "time"

// Snapshot is one end-of-day record of total portfolio value. One row exists
// per calendar date; re-running the snapshot job on the same date overwrites
// the existing row.
type Snapshot struct {
	ID            string    `json:"id"`
	SnapshotDate  time.Time `json:"-"`
	TotalValueTWD float64   `json:"total_value_twd"`
	ExchangeRate  float64   `json:"exchange_rate"`
	CreatedAt     time.Time `json:"created_at,omitempty"`
}
