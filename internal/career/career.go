// Package career holds the built-in catalogs behind recommendations, job
// search and market trends. They are fixed lists until an external job or
// labour-market source is wired in.
package career

import (
	"strings"
	"time"

	"careerpath/internal/models"
)

type recommendation struct {
	title, description, category string
}

var recommendations = []recommendation{
	{"Software Developer", "Build applications and systems. Strong fit if you like problem-solving and coding.", "Technology"},
	{"Data Analyst", "Analyze data to drive decisions. Good fit for analytical and detail-oriented people.", "Data"},
	{"Product Manager", "Define product vision and work with engineering and design.", "Product"},
	{"UX Designer", "Design user experiences and interfaces. Ideal for creative and user-focused individuals.", "Design"},
	{"DevOps Engineer", "Bridge development and operations; focus on CI/CD and cloud infrastructure.", "Technology"},
}

// Recommendations returns unsaved drafts for uid in display order.
// ID and CreatedAt are left for the store to assign.
func Recommendations(uid int64) []models.Recommendation {
	out := make([]models.Recommendation, 0, len(recommendations))

	for i, rec := range recommendations {
		out = append(out, models.Recommendation{
			UserID:      uid,
			Title:       rec.title,
			Description: ptr(rec.description),
			Category:    ptr(rec.category),
			SortOrder:   i,
		})
	}

	return out
}

type job struct {
	title, company, location, url, description string
}

var jobs = []job{
	{"Software Engineer", "Tech Corp", "Remote", "https://example.com/job/1", "Build scalable systems."},
	{"Data Scientist", "Data Inc", "New York", "https://example.com/job/2", "Analyze and model data."},
	{"Frontend Developer", "Web Co", "London", "https://example.com/job/3", "Create beautiful UIs."},
}

// JobQuery filters the job catalog. Empty fields match everything.
type JobQuery struct {
	Query    string
	Location string
	Category string
}

// SearchJobs matches Query against titles and Location against locations,
// both case-insensitive substrings. The catalog carries no categories, so
// Category does not narrow the result.
func SearchJobs(q JobQuery, now time.Time) []models.Job {
	query := strings.ToLower(strings.TrimSpace(q.Query))
	location := strings.ToLower(strings.TrimSpace(q.Location))

	out := make([]models.Job, 0, len(jobs))

	for _, j := range jobs {
		if query != "" && !strings.Contains(strings.ToLower(j.title), query) {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(j.location), location) {
			continue
		}

		out = append(out, models.Job{
			Title:       j.title,
			Company:     ptr(j.company),
			Location:    ptr(j.location),
			URL:         ptr(j.url),
			Description: ptr(j.description),
			SavedAt:     now,
		})
	}

	return out
}

type trend struct {
	category, title, description, data string
}

var trends = []trend{
	{"Data", "Data roles keep growing", "Demand for analysts and data scientists continues to rise across industries.", `{"2020":100,"2021":112,"2022":127,"2023":139,"2024":151,"2025":164}`},
	{"Design", "Product design stabilises", "UX hiring has levelled off after rapid growth; portfolios matter more than titles.", `{"2020":100,"2021":118,"2022":124,"2023":121,"2024":123,"2025":126}`},
	{"Product", "Product management favours domain depth", "Openings concentrate in fintech and health, with a premium on technical fluency.", `{"2020":100,"2021":109,"2022":117,"2023":115,"2024":120,"2025":125}`},
	{"Technology", "Cloud and platform engineering lead demand", "DevOps and backend roles post the strongest growth in job listings.", `{"2020":100,"2021":121,"2022":138,"2023":142,"2024":156,"2025":171}`},
}

// MarketTrends returns the rows seeded into an empty store, ordered by category.
func MarketTrends(now time.Time) []models.MarketTrend {
	out := make([]models.MarketTrend, 0, len(trends))

	for _, t := range trends {
		out = append(out, models.MarketTrend{
			Category:    t.category,
			Title:       t.title,
			Description: ptr(t.description),
			TrendData:   ptr(t.data),
			UpdatedAt:   now,
		})
	}

	return out
}

func ptr(s string) *string { return &s }
