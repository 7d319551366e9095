package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_RoundTrip(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("admin123")
	require.NoError(t, err)
	assert.NotEqual(t, "admin123", hash)

	ok, err := h.Compare(hash, "admin123")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Compare(hash, "admin124")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBcryptHasher_MalformedHash(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	ok, err := h.Compare("not-a-bcrypt-hash", "secret")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestNewBcryptHasher_CostOutOfRange(t *testing.T) {
	assert.Equal(t, DefaultCost, NewBcryptHasher(99).cost)
	assert.Equal(t, DefaultCost, NewBcryptHasher(0).cost)
}
