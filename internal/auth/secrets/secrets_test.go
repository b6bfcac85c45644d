package secrets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "leavehub/pkg/domain-errors"
)

func TestHashAndVerify(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		hash, err := Hash("secret1")
		require.NoError(t, err)
		assert.NotEqual(t, "secret1", hash)
		assert.NoError(t, Verify("secret1", hash))
	})

	t.Run("mismatch returns ErrMismatch", func(t *testing.T) {
		hash, err := Hash("secret1")
		require.NoError(t, err)
		assert.ErrorIs(t, Verify("wrong", hash), ErrMismatch)
	})

	t.Run("empty password rejected", func(t *testing.T) {
		_, err := Hash("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("two hashes of the same password differ", func(t *testing.T) {
		first, err := Hash("secret1")
		require.NoError(t, err)
		second, err := Hash("secret1")
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})
}
