package entity

import "time"

// Report mirrors the `seo_reports` PostgreSQL table.
type Report struct {
	ID        string
	URL       string
	Envelope  *Envelope
	CreatedAt time.Time
}
