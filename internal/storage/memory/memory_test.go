package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"careerpath/internal/models"
	"careerpath/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAccount_UniqueEmail(t *testing.T) {
	repo := New()
	ctx := context.Background()

	first, err := repo.SaveAccount(ctx, "Ana", "ana@x.com", []byte("h1"), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.ID)

	_, err = repo.SaveAccount(ctx, "Other", "ana@x.com", []byte("h2"), nil)
	assert.ErrorIs(t, err, storage.ErrAccountExists)

	got, err := repo.AccountByEmail(ctx, "ana@x.com")
	require.NoError(t, err)
	assert.Equal(t, first, got)
}

func TestSaveAccount_ConfirmFailureLeavesNothing(t *testing.T) {
	repo := New()
	ctx := context.Background()

	_, err := repo.SaveAccount(ctx, "Ana", "ana@x.com", []byte("h"), func(models.Account) error {
		return errors.New("nope")
	})
	require.Error(t, err)

	_, err = repo.AccountByEmail(ctx, "ana@x.com")
	assert.ErrorIs(t, err, storage.ErrAccountNotFound)

	acc, err := repo.SaveAccount(ctx, "Ana", "ana@x.com", []byte("h"), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), acc.ID)
}

func TestSaveAccount_ConcurrentSameEmail(t *testing.T) {
	repo := New()
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		created atomic.Int32
	)

	for i := range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := repo.SaveAccount(ctx, fmt.Sprintf("user-%d", i), "race@x.com", []byte("h"), nil)
			if err == nil {
				created.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), created.Load())
}

func TestAccountByID_NotFound(t *testing.T) {
	_, err := New().AccountByID(context.Background(), 1)
	assert.ErrorIs(t, err, storage.ErrAccountNotFound)
}

func TestProfiles(t *testing.T) {
	repo := New()
	ctx := context.Background()
	now := time.Date(2025, 2, 21, 12, 0, 0, 0, time.UTC)
	skills := "go"

	_, err := repo.UpdateProfile(ctx, 1, models.ProfileFields{Skills: &skills}, now)
	assert.ErrorIs(t, err, storage.ErrProfileNotFound)

	p, err := repo.SaveProfile(ctx, 1, models.ProfileFields{Skills: &skills}, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.UserID)

	_, err = repo.SaveProfile(ctx, 1, models.ProfileFields{}, now)
	assert.ErrorIs(t, err, storage.ErrProfileExists)

	edu := "MSc"
	p, err = repo.UpdateProfile(ctx, 1, models.ProfileFields{Education: &edu}, now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "go", *p.Skills)
	assert.Equal(t, "MSc", *p.Education)

	got, err := repo.Profile(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestSignIns(t *testing.T) {
	repo := New()
	now := time.Now()

	require.NoError(t, repo.SaveSignIn(context.Background(), 1, "ana@x.com", now))
	require.NoError(t, repo.SaveSignIn(context.Background(), 2, "bob@x.com", now))

	got := repo.SignIns(1)
	require.Len(t, got, 1)
	assert.Equal(t, "ana@x.com", got[0].Email)
}

func TestAccounts_ReturnCopiesOfHash(t *testing.T) {
	repo := New()
	ctx := context.Background()

	saved, err := repo.SaveAccount(ctx, "Ana", "ana@x.com", []byte("hash"), nil)
	require.NoError(t, err)
	saved.PassHash[0] = 'X'

	byEmail, err := repo.AccountByEmail(ctx, "ana@x.com")
	require.NoError(t, err)
	assert.Equal(t, []byte("hash"), byEmail.PassHash)
	byEmail.PassHash[0] = 'Y'

	byID, err := repo.AccountByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("hash"), byID.PassHash)
	byID.PassHash[0] = 'Z'

	again, err := repo.AccountByEmail(ctx, "ana@x.com")
	require.NoError(t, err)
	assert.Equal(t, []byte("hash"), again.PassHash)
}
