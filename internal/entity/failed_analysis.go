package entity

import "time"

// FailedAnalysis mirrors the `failed_analyses` PostgreSQL table.
type FailedAnalysis struct {
	ID            int64     `json:"id"`
	URL           string    `json:"url"`
	Kind          string    `json:"kind"`
	Reason        string    `json:"reason"`
	StatusCode    int       `json:"status_code,omitempty"`
	Attempts      int       `json:"attempts"`
	LastAttemptAt time.Time `json:"last_attempt_at"`
}
