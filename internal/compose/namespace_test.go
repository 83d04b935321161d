package compose

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveNamespace(t *testing.T) {
	t.Run("deterministic for the same chain id", func(t *testing.T) {
		assert.Equal(t, DeriveNamespace(13371), DeriveNamespace(13371))
	})

	t.Run("always 20 lowercase hex characters", func(t *testing.T) {
		for _, chainID := range []uint64{1, 13370, 424242, 1<<63 + 7} {
			ns := DeriveNamespace(chainID)
			require.Len(t, ns, 20)
			for _, r := range ns {
				assert.Contains(t, "0123456789abcdef", string(r))
			}
		}
	})

	t.Run("distinct chains get distinct namespaces", func(t *testing.T) {
		assert.NotEqual(t, DeriveNamespace(13370), DeriveNamespace(13371))
	})
}
