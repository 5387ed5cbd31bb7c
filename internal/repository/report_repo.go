package repository

import (
	"context"
	"errors"

	"github.com/user/seo-report/internal/entity"
)

// ErrNotFound is returned when no stored report matches.
var ErrNotFound = errors.New("not found")

// ReportRepository stores successful analyses.
type ReportRepository interface {
	// Save inserts a new report row.
	Save(ctx context.Context, report *entity.Report) error
	// FindLatestByURL returns the newest report for url or ErrNotFound.
	FindLatestByURL(ctx context.Context, url string) (*entity.Report, error)
}

// FailedAnalysisRepository keeps the last failure per URL.
type FailedAnalysisRepository interface {
	// SaveOrUpdate records a failure, incrementing the attempt count.
	SaveOrUpdate(ctx context.Context, failed *entity.FailedAnalysis) error
	// Delete clears the record after a successful analysis.
	Delete(ctx context.Context, url string) error
}
