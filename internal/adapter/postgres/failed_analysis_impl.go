package postgres

import (
	"context"

	"github.com/user/seo-report/internal/entity"
)

// FailedAnalysisRepoImpl implements repository.FailedAnalysisRepository on PostgreSQL.
type FailedAnalysisRepoImpl struct {
	db DB
}

func NewFailedAnalysisRepo(db DB) *FailedAnalysisRepoImpl {
	return &FailedAnalysisRepoImpl{db: db}
}

// SaveOrUpdate creates or updates the failure record for a URL.
// It increments attempts on conflict.
func (r *FailedAnalysisRepoImpl) SaveOrUpdate(ctx context.Context, failed *entity.FailedAnalysis) error {
	query := `
		INSERT INTO failed_analyses (url, kind, reason, status_code, last_attempt_at, attempts)
		VALUES ($1, $2, $3, $4, $5, 1)
		ON CONFLICT (url) DO UPDATE SET
			kind = EXCLUDED.kind,
			reason = EXCLUDED.reason,
			status_code = EXCLUDED.status_code,
			last_attempt_at = EXCLUDED.last_attempt_at,
			attempts = failed_analyses.attempts + 1;
	`
	_, err := r.db.Exec(ctx, query,
		failed.URL,
		failed.Kind,
		failed.Reason,
		failed.StatusCode,
		failed.LastAttemptAt,
	)
	return err
}

// Delete removes the failure record, typically after a successful analysis.
func (r *FailedAnalysisRepoImpl) Delete(ctx context.Context, url string) error {
	query := `DELETE FROM failed_analyses WHERE url = $1;`
	_, err := r.db.Exec(ctx, query, url)
	return err
}
