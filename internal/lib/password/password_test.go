package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestHasher(t *testing.T) *Hasher {
	t.Helper()

	h, err := New(bcrypt.MinCost)
	require.NoError(t, err)

	return h
}

func TestHash_SaltedAndVerifiable(t *testing.T) {
	h := newTestHasher(t)

	first, err := h.Hash("secret123")
	require.NoError(t, err)
	second, err := h.Hash("secret123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, h.Verify("secret123", first))
	assert.True(t, h.Verify("secret123", second))
	assert.False(t, h.Verify("secret124", first))
	assert.NotContains(t, string(first), "secret123")
}

func TestHash_EmbedsCost(t *testing.T) {
	h := newTestHasher(t)

	hash, err := h.Hash("secret123")
	require.NoError(t, err)

	cost, err := bcrypt.Cost(hash)
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}

func TestHash_TooLong(t *testing.T) {
	h := newTestHasher(t)

	long := make([]byte, 73)
	for i := range long {
		long[i] = 'a'
	}

	_, err := h.Hash(string(long))
	assert.ErrorIs(t, err, bcrypt.ErrPasswordTooLong)
}

func TestVerify_GarbageHash(t *testing.T) {
	h := newTestHasher(t)

	assert.False(t, h.Verify("secret123", []byte("not-a-hash")))
	assert.False(t, h.Verify("secret123", nil))
}

func TestNew_Cost(t *testing.T) {
	h, err := New(0)
	require.NoError(t, err)
	assert.Equal(t, DefaultCost, h.cost)

	_, err = New(3)
	assert.ErrorIs(t, err, ErrCostOutOfRange)

	_, err = New(32)
	assert.ErrorIs(t, err, ErrCostOutOfRange)
}
