package commerce_test

import (
	"testing"

	commerce "github.com/goliatone/go-commerce"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	t.Run("hashes and verifies", func(t *testing.T) {
		hash, err := commerce.HashPassword("super-secret-password")
		require.NoError(t, err)
		assert.NotEmpty(t, hash)
		assert.NotEqual(t, "super-secret-password", hash)

		assert.NoError(t, commerce.ComparePasswordAndHash("super-secret-password", hash))
	})

	t.Run("rejects empty password", func(t *testing.T) {
		_, err := commerce.HashPassword("")
		assert.ErrorIs(t, err, commerce.ErrNoEmptyString)
	})

	t.Run("two hashes of the same password differ", func(t *testing.T) {
		h1, err := commerce.HashPassword("same-password")
		require.NoError(t, err)
		h2, err := commerce.HashPassword("same-password")
		require.NoError(t, err)
		assert.NotEqual(t, h1, h2)
	})
}

func TestComparePasswordAndHash(t *testing.T) {
	hash, err := commerce.HashPassword("correct-password")
	require.NoError(t, err)

	t.Run("mismatch is normalized", func(t *testing.T) {
		err := commerce.ComparePasswordAndHash("wrong-password", hash)
		assert.ErrorIs(t, err, commerce.ErrMismatchedHashAndPassword)
	})

	t.Run("garbage hash errors", func(t *testing.T) {
		err := commerce.ComparePasswordAndHash("whatever", "not-a-bcrypt-hash")
		assert.Error(t, err)
	})
}

func TestRandomPasswordHash(t *testing.T) {
	hash := commerce.RandomPasswordHash()
	assert.NotEmpty(t, hash)

	// random, so nothing should verify against it with a known input
	assert.Error(t, commerce.ComparePasswordAndHash("guess", hash))
}
