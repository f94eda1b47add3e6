package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestAccountPublic_OmitsHash(t *testing.T) {
	acc := Account{ID: 7, Name: "Ana", Email: "ana@x.com", PassHash: []byte("$2a$10$secret"), CreatedAt: time.Unix(100, 0).UTC()}

	raw, err := json.Marshal(acc.Public())
	require.NoError(t, err)

	assert.NotContains(t, string(raw), "secret")
	assert.NotContains(t, string(raw), "pass")
	assert.JSONEq(t, `{"id":7,"name":"Ana","email":"ana@x.com","created_at":"1970-01-01T00:01:40Z"}`, string(raw))
}

func TestProfileMerge(t *testing.T) {
	now := time.Date(2025, 2, 21, 12, 0, 0, 0, time.UTC)
	p := Profile{ID: 1, UserID: 2, Skills: strPtr("go"), Education: strPtr("BSc")}

	got := p.Merge(ProfileFields{Skills: strPtr("go, sql"), Interests: strPtr("backend")}, now)

	assert.Equal(t, "go, sql", *got.Skills)
	assert.Equal(t, "backend", *got.Interests)
	assert.Equal(t, "BSc", *got.Education)
	assert.Nil(t, got.ExperienceLevel)
	require.NotNil(t, got.UpdatedAt)
	assert.Equal(t, now, *got.UpdatedAt)
	assert.Equal(t, "go", *p.Skills)
}
