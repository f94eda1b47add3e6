package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"careerpath/internal/models"
	"careerpath/internal/storage"

	"github.com/jackc/pgx/v5"
)

const recommendationCols = "id, user_id, title, description, category, saved, sort_order, created_at"

func (r *PostgresRepo) SaveAssessment(ctx context.Context, userID int64, answers, summary *string, now time.Time) (models.Assessment, error) {
	const op = "storage.postgres.SaveAssessment"

	query := `
		INSERT INTO assessments (user_id, answers_json, result_summary, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, answers_json, result_summary, created_at;
	`

	a, err := scanAssessment(r.db.QueryRow(ctx, query, userID, answers, summary, now))
	if err != nil {
		return models.Assessment{}, fmt.Errorf("%s: %w", op, err)
	}

	return a, nil
}

func (r *PostgresRepo) LatestAssessment(ctx context.Context, userID int64) (models.Assessment, error) {
	const op = "storage.postgres.LatestAssessment"

	query := `
		SELECT id, user_id, answers_json, result_summary, created_at
		FROM assessments
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1;
	`

	a, err := scanAssessment(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, storage.ErrAssessmentNotFound) {
			return models.Assessment{}, err
		}

		return models.Assessment{}, fmt.Errorf("%s: %w", op, err)
	}

	return a, nil
}

// ReplaceRecommendations drops the user's previous list and stores drafts in
// one transaction, so readers see either the old list or the new one.
func (r *PostgresRepo) ReplaceRecommendations(
	ctx context.Context,
	userID int64,
	drafts []models.Recommendation,
	now time.Time,
) ([]models.Recommendation, error) {
	const op = "storage.postgres.ReplaceRecommendations"

	insert := `
		INSERT INTO career_recommendations (user_id, title, description, category, saved, sort_order, created_at)
		VALUES ($1, $2, $3, $4, FALSE, $5, $6)
		RETURNING ` + recommendationCols + `;
	`

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to begin tx: %w", op, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM career_recommendations WHERE user_id = $1`, userID); err != nil {
		_ = tx.Rollback(ctx)

		return nil, fmt.Errorf("%s: failed to clear: %w", op, err)
	}

	out := make([]models.Recommendation, 0, len(drafts))

	for _, d := range drafts {
		rec, err := scanRecommendation(tx.QueryRow(ctx, insert, userID, d.Title, d.Description, d.Category, d.SortOrder, now))
		if err != nil {
			_ = tx.Rollback(ctx)

			return nil, fmt.Errorf("%s: failed to insert %q: %w", op, d.Title, err)
		}

		out = append(out, rec)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: failed to commit: %w", op, err)
	}

	return out, nil
}

func (r *PostgresRepo) Recommendations(ctx context.Context, userID int64) ([]models.Recommendation, error) {
	const op = "storage.postgres.Recommendations"

	query := `SELECT ` + recommendationCols + ` FROM career_recommendations WHERE user_id = $1 ORDER BY sort_order, id;`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Recommendation, error) {
		return scanRecommendation(row)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// SetRecommendationSaved only touches rows owned by userID.
func (r *PostgresRepo) SetRecommendationSaved(ctx context.Context, userID, id int64, saved bool) (models.Recommendation, error) {
	const op = "storage.postgres.SetRecommendationSaved"

	query := `
		UPDATE career_recommendations
		SET saved = $3
		WHERE user_id = $1 AND id = $2
		RETURNING ` + recommendationCols + `;
	`

	rec, err := scanRecommendation(r.db.QueryRow(ctx, query, userID, id, saved))
	if err != nil {
		if errors.Is(err, storage.ErrRecommendationNotFound) {
			return models.Recommendation{}, err
		}

		return models.Recommendation{}, fmt.Errorf("%s: %w", op, err)
	}

	return rec, nil
}

func (r *PostgresRepo) SaveJob(ctx context.Context, userID int64, job models.Job) (models.Job, error) {
	const op = "storage.postgres.SaveJob"

	query := `
		INSERT INTO saved_jobs (user_id, title, company, location, url, description, saved_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, saved_at;
	`

	err := r.db.QueryRow(ctx, query,
		userID, job.Title, job.Company, job.Location, job.URL, job.Description, job.SavedAt,
	).Scan(&job.ID, &job.SavedAt)
	if err != nil {
		return models.Job{}, fmt.Errorf("%s: %w", op, err)
	}

	return job, nil
}

func (r *PostgresRepo) SavedJobs(ctx context.Context, userID int64) ([]models.Job, error) {
	const op = "storage.postgres.SavedJobs"

	query := `
		SELECT id, title, company, location, url, description, saved_at
		FROM saved_jobs
		WHERE user_id = $1
		ORDER BY saved_at DESC, id DESC;
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Job, error) {
		var j models.Job
		err := row.Scan(&j.ID, &j.Title, &j.Company, &j.Location, &j.URL, &j.Description, &j.SavedAt)

		return j, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

func (r *PostgresRepo) MarketTrends(ctx context.Context) ([]models.MarketTrend, error) {
	const op = "storage.postgres.MarketTrends"

	query := `
		SELECT id, category, title, description, trend_data_json, updated_at
		FROM market_trends
		ORDER BY category, id;
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.MarketTrend, error) {
		var t models.MarketTrend
		err := row.Scan(&t.ID, &t.Category, &t.Title, &t.Description, &t.TrendData, &t.UpdatedAt)

		return t, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// SeedMarketTrends inserts trends that are not stored yet. Rows are keyed by
// (category, title); existing rows are left as they are.
func (r *PostgresRepo) SeedMarketTrends(ctx context.Context, trends []models.MarketTrend) error {
	const op = "storage.postgres.SeedMarketTrends"

	query := `
		INSERT INTO market_trends (category, title, description, trend_data_json, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (category, title) DO NOTHING;
	`

	for _, t := range trends {
		if _, err := r.db.Exec(ctx, query, t.Category, t.Title, t.Description, t.TrendData, t.UpdatedAt); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	return nil
}

func scanAssessment(row pgx.Row) (models.Assessment, error) {
	var a models.Assessment

	err := row.Scan(&a.ID, &a.UserID, &a.AnswersJSON, &a.ResultSummary, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Assessment{}, storage.ErrAssessmentNotFound
		}

		return models.Assessment{}, err
	}

	return a, nil
}

func scanRecommendation(row pgx.Row) (models.Recommendation, error) {
	var rec models.Recommendation

	err := row.Scan(
		&rec.ID,
		&rec.UserID,
		&rec.Title,
		&rec.Description,
		&rec.Category,
		&rec.Saved,
		&rec.SortOrder,
		&rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Recommendation{}, storage.ErrRecommendationNotFound
		}

		return models.Recommendation{}, err
	}

	return rec, nil
}
