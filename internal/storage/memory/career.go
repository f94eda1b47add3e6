package memory

import (
	"context"
	"slices"
	"time"

	"careerpath/internal/models"
	"careerpath/internal/storage"
)

func (r *Repo) SaveAssessment(_ context.Context, userID int64, answers, summary *string, now time.Time) (models.Assessment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a := models.Assessment{
		ID:            int64(len(r.assessments) + 1),
		UserID:        userID,
		AnswersJSON:   answers,
		ResultSummary: summary,
		CreatedAt:     now,
	}
	r.assessments = append(r.assessments, a)

	return a, nil
}

// LatestAssessment breaks created_at ties by the later insert.
func (r *Repo) LatestAssessment(_ context.Context, userID int64) (models.Assessment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var (
		latest models.Assessment
		found  bool
	)

	for _, a := range r.assessments {
		if a.UserID != userID {
			continue
		}
		if !found || !a.CreatedAt.Before(latest.CreatedAt) {
			latest, found = a, true
		}
	}

	if !found {
		return models.Assessment{}, storage.ErrAssessmentNotFound
	}

	return latest, nil
}

func (r *Repo) ReplaceRecommendations(
	_ context.Context,
	userID int64,
	drafts []models.Recommendation,
	now time.Time,
) ([]models.Recommendation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := make([]models.Recommendation, 0, len(drafts))

	for _, d := range drafts {
		r.nextRecID++

		d.ID = r.nextRecID
		d.UserID = userID
		d.Saved = false
		d.CreatedAt = now
		list = append(list, d)
	}

	r.recommendations[userID] = list

	return slices.Clone(list), nil
}

func (r *Repo) Recommendations(_ context.Context, userID int64) ([]models.Recommendation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := slices.Clone(r.recommendations[userID])
	slices.SortStableFunc(list, func(a, b models.Recommendation) int {
		return a.SortOrder - b.SortOrder
	})

	return list, nil
}

func (r *Repo) SetRecommendationSaved(_ context.Context, userID, id int64, saved bool) (models.Recommendation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.recommendations[userID]
	for i := range list {
		if list[i].ID == id {
			list[i].Saved = saved

			return list[i], nil
		}
	}

	return models.Recommendation{}, storage.ErrRecommendationNotFound
}

func (r *Repo) SaveJob(_ context.Context, userID int64, job models.Job) (models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextJobID++
	job.ID = r.nextJobID
	r.jobs[userID] = append(r.jobs[userID], job)

	return job, nil
}

// SavedJobs lists the newest first.
func (r *Repo) SavedJobs(_ context.Context, userID int64) ([]models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := slices.Clone(r.jobs[userID])
	slices.Reverse(list)
	slices.SortStableFunc(list, func(a, b models.Job) int {
		return b.SavedAt.Compare(a.SavedAt)
	})

	return list, nil
}

func (r *Repo) MarketTrends(context.Context) ([]models.MarketTrend, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := slices.Clone(r.trends)
	slices.SortStableFunc(list, func(a, b models.MarketTrend) int {
		switch {
		case a.Category < b.Category:
			return -1
		case a.Category > b.Category:
			return 1
		}

		return 0
	})

	return list, nil
}

func (r *Repo) SeedMarketTrends(_ context.Context, trends []models.MarketTrend) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range trends {
		exists := slices.ContainsFunc(r.trends, func(have models.MarketTrend) bool {
			return have.Category == t.Category && have.Title == t.Title
		})
		if exists {
			continue
		}

		t.ID = int64(len(r.trends) + 1)
		r.trends = append(r.trends, t)
	}

	return nil
}
