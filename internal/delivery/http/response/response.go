package response

import (
	"time"

	"github.com/user/seo-report/internal/entity"
)

// ErrorResponse is the failure shape of the backend envelope.
type ErrorResponse struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
	Status  int    `json:"status,omitempty"`
}

// HealthResponse lists the state of each dependency.
type HealthResponse struct {
	Status       string            `json:"status"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}

// ReportResponse is a stored report, mirroring entity.Report.
type ReportResponse struct {
	ID        string           `json:"id"`
	URL       string           `json:"url"`
	CreatedAt time.Time        `json:"created_at"`
	Report    *entity.Envelope `json:"report"`
}

// RecentResponse lists recently analysed URLs, newest first.
type RecentResponse struct {
	URLs []string `json:"urls"`
}
