// Package memory is a process-local store for local runs and tests.
// A single mutex plays the role of the database's unique indexes.
package memory

import (
	"context"
	"sync"
	"time"

	"careerpath/internal/models"
	"careerpath/internal/storage"
)

type Repo struct {
	mu       sync.Mutex
	nextID   int64
	accounts map[int64]models.Account
	byEmail  map[string]int64
	profiles map[int64]models.Profile
	signIns  []models.SignIn
	now      func() time.Time

	assessments     []models.Assessment
	recommendations map[int64][]models.Recommendation
	nextRecID       int64
	jobs            map[int64][]models.Job
	nextJobID       int64
	trends          []models.MarketTrend
}

func New() *Repo {
	return &Repo{
		accounts: make(map[int64]models.Account),
		byEmail:  make(map[string]int64),
		profiles: make(map[int64]models.Profile),
		now:      time.Now,

		recommendations: make(map[int64][]models.Recommendation),
		jobs:            make(map[int64][]models.Job),
	}
}

// SaveAccount holds the lock across confirm so that a failed confirm leaves no trace.
func (r *Repo) SaveAccount(
	_ context.Context,
	name, email string,
	passHash []byte,
	confirm func(models.Account) error,
) (models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[email]; ok {
		return models.Account{}, storage.ErrAccountExists
	}

	acc := models.Account{
		ID:        r.nextID + 1,
		Name:      name,
		Email:     email,
		PassHash:  append([]byte(nil), passHash...),
		CreatedAt: r.now().UTC(),
	}

	if confirm != nil {
		if err := confirm(clone(acc)); err != nil {
			return models.Account{}, err
		}
	}

	r.nextID = acc.ID
	r.accounts[acc.ID] = acc
	r.byEmail[email] = acc.ID

	return clone(acc), nil
}

func (r *Repo) AccountByEmail(_ context.Context, email string) (models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byEmail[email]
	if !ok {
		return models.Account{}, storage.ErrAccountNotFound
	}

	return clone(r.accounts[id]), nil
}

func (r *Repo) AccountByID(_ context.Context, id int64) (models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	acc, ok := r.accounts[id]
	if !ok {
		return models.Account{}, storage.ErrAccountNotFound
	}

	return clone(acc), nil
}

func (r *Repo) SaveSignIn(_ context.Context, userID int64, email string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.signIns = append(r.signIns, models.SignIn{
		ID:         int64(len(r.signIns) + 1),
		UserID:     userID,
		Email:      email,
		SignedInAt: at,
	})

	return nil
}

// SignIns returns a copy of the recorded sign-ins for userID.
func (r *Repo) SignIns(userID int64) []models.SignIn {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.SignIn
	for _, s := range r.signIns {
		if s.UserID == userID {
			out = append(out, s)
		}
	}

	return out
}

func (r *Repo) Profile(_ context.Context, userID int64) (models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.profiles[userID]
	if !ok {
		return models.Profile{}, storage.ErrProfileNotFound
	}

	return p, nil
}

func (r *Repo) SaveProfile(_ context.Context, userID int64, f models.ProfileFields, now time.Time) (models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.profiles[userID]; ok {
		return models.Profile{}, storage.ErrProfileExists
	}

	p := models.Profile{ID: int64(len(r.profiles) + 1), UserID: userID}.Merge(f, now)
	r.profiles[userID] = p

	return p, nil
}

func (r *Repo) UpdateProfile(_ context.Context, userID int64, f models.ProfileFields, now time.Time) (models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.profiles[userID]
	if !ok {
		return models.Profile{}, storage.ErrProfileNotFound
	}

	p = p.Merge(f, now)
	r.profiles[userID] = p

	return p, nil
}

// clone keeps callers from writing through to the stored hash.
func clone(acc models.Account) models.Account {
	acc.PassHash = append([]byte(nil), acc.PassHash...)

	return acc
}

func (r *Repo) Ping(context.Context) error {
	return nil
}

func (r *Repo) Close() {}
