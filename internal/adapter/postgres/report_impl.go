package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/user/seo-report/internal/entity"
	"github.com/user/seo-report/internal/repository"
)

// ReportRepoImpl implements repository.ReportRepository on PostgreSQL.
type ReportRepoImpl struct {
	db DB
}

func NewReportRepo(db DB) *ReportRepoImpl {
	return &ReportRepoImpl{db: db}
}

// Save inserts the report. Reports are append-only; every analysis is kept.
func (r *ReportRepoImpl) Save(ctx context.Context, report *entity.Report) error {
	envelopeJSON, err := json.Marshal(report.Envelope)
	if err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}

	query := `
		INSERT INTO seo_reports (id, url, envelope, created_at)
		VALUES ($1, $2, $3, $4);
	`
	_, err = r.db.Exec(ctx, query, report.ID, report.URL, envelopeJSON, report.CreatedAt)
	return err
}

// FindLatestByURL retrieves the newest report for url.
func (r *ReportRepoImpl) FindLatestByURL(ctx context.Context, url string) (*entity.Report, error) {
	query := `
		SELECT id, url, envelope, created_at
		FROM seo_reports
		WHERE url = $1
		ORDER BY created_at DESC
		LIMIT 1;
	`
	row := r.db.QueryRow(ctx, query, url)

	var (
		report       entity.Report
		envelopeJSON []byte
	)
	err := row.Scan(&report.ID, &report.URL, &envelopeJSON, &report.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	report.Envelope = &entity.Envelope{}
	if err := json.Unmarshal(envelopeJSON, report.Envelope); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	return &report, nil
}
