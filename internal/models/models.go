package models

import "time"

// Account is the persisted identity record. PassHash never leaves the server.
type Account struct {
	ID        int64
	Name      string
	Email     string
	PassHash  []byte
	CreatedAt time.Time
}

// PublicAccount is the client-safe view of an Account.
type PublicAccount struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func (a Account) Public() PublicAccount {
	return PublicAccount{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		CreatedAt: a.CreatedAt,
	}
}

// Identity is what a verified token asserts about its bearer.
type Identity struct {
	UserID    int64
	Email     string
	Name      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type SignIn struct {
	ID         int64
	UserID     int64
	Email      string
	SignedInAt time.Time
}

type Profile struct {
	ID                  int64      `json:"id"`
	UserID              int64      `json:"user_id"`
	Skills              *string    `json:"skills"`
	Interests           *string    `json:"interests"`
	ExperienceLevel     *string    `json:"experience_level"`
	Education           *string    `json:"education"`
	PreferredIndustries *string    `json:"preferred_industries"`
	UpdatedAt           *time.Time `json:"updated_at"`
}

// ProfileFields carries a create or partial update. Nil fields are left untouched on update.
type ProfileFields struct {
	Skills              *string
	Interests           *string
	ExperienceLevel     *string
	Education           *string
	PreferredIndustries *string
}

// * Merge overlays the non-nil fields of f and stamps UpdatedAt.
func (p Profile) Merge(f ProfileFields, now time.Time) Profile {
	if f.Skills != nil {
		p.Skills = f.Skills
	}
	if f.Interests != nil {
		p.Interests = f.Interests
	}
	if f.ExperienceLevel != nil {
		p.ExperienceLevel = f.ExperienceLevel
	}
	if f.Education != nil {
		p.Education = f.Education
	}
	if f.PreferredIndustries != nil {
		p.PreferredIndustries = f.PreferredIndustries
	}
	p.UpdatedAt = &now

	return p
}

// Assessment is one completed self-assessment. AnswersJSON is stored as the
// client sent it.
type Assessment struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	AnswersJSON   *string   `json:"answers_json"`
	ResultSummary *string   `json:"result_summary"`
	CreatedAt     time.Time `json:"created_at"`
}

type Recommendation struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Saved       bool      `json:"saved"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
}

// Job is a search hit or a job the user saved. Search hits have ID 0.
type Job struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Company     *string   `json:"company"`
	Location    *string   `json:"location"`
	URL         *string   `json:"url"`
	Description *string   `json:"description"`
	SavedAt     time.Time `json:"saved_at"`
}

type MarketTrend struct {
	ID          int64     `json:"id"`
	Category    string    `json:"category"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	TrendData   *string   `json:"trend_data_json"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Message struct {
	Email   string `json:"to"`
	Name    string `json:"name"`
	Subject string `json:"subject"`
	Purpose string `json:"purpose"`
}
