package record

import (
	"os"
	"testing"
	"time"

	fsjson "github.com/compose-network/orbit-testnet/internal/infra/filesystem/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(t.TempDir(), fsjson.NewReader(), fsjson.NewWriter())
}

func testRecord(chainID uint64) *DeploymentRecord {
	return &DeploymentRecord{
		ChainID:         chainID,
		ChainName:       "test-orbit-chain",
		ParentChainID:   421614,
		ParentChainName: "arbitrum-sepolia",
		Deployer:        "0x742d35Cc6634C0532925a3b844Bc9e7595f0bEb0",
		DeployedAt:      time.Now().UTC().Format(time.RFC3339),
		TransactionHash: "0xabcdef1234567890abcdef1234567890abcdef1234567890abcdef1234567890",
		Validators:      []string{"0x742d35Cc6634C0532925a3b844Bc9e7595f0bEb0"},
		BatchPoster:     "0x742d35Cc6634C0532925a3b844Bc9e7595f0bEb0",
		NativeToken:     "0x0000000000000000000000000000000000000000",
		Contracts:       map[string]string{},
	}
}

func TestPersistAndLoadLatest(t *testing.T) {
	t.Run("returns later timestamp regardless of chain id ordering", func(t *testing.T) {
		store := testStore(t)

		base := time.Now()
		store.now = func() time.Time { return base }
		_, err := store.Persist(testRecord(200))
		require.NoError(t, err)

		store.now = func() time.Time { return base.Add(5 * time.Millisecond) }
		_, err = store.Persist(testRecord(100))
		require.NoError(t, err)

		latest, _, err := store.LoadLatest()
		require.NoError(t, err)
		assert.Equal(t, uint64(100), latest.ChainID)
	})

	t.Run("persist never overwrites a prior record", func(t *testing.T) {
		store := testStore(t)

		fixed := time.Now()
		store.now = func() time.Time { return fixed }

		first, err := store.Persist(testRecord(100))
		require.NoError(t, err)
		second, err := store.Persist(testRecord(100))
		require.NoError(t, err)

		assert.NotEqual(t, first, second)

		entries, err := os.ReadDir(store.dir)
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("empty directory reports no deployments", func(t *testing.T) {
		store := testStore(t)

		_, _, err := store.LoadLatest()
		assert.ErrorIs(t, err, ErrNoDeployments)
	})

	t.Run("missing directory reports no deployments", func(t *testing.T) {
		store := NewStore("does-not-exist", fsjson.NewReader(), fsjson.NewWriter())

		_, _, err := store.LoadLatest()
		assert.ErrorIs(t, err, ErrNoDeployments)
	})
}

func TestRewriteContracts(t *testing.T) {
	contracts := map[string]string{
		"rollup":          "0x1234567890123456789012345678901234567890",
		"inbox":           "0x2345678901234567890123456789012345678901",
		"sequencer-inbox": "0x5678901234567890123456789012345678901234",
	}

	t.Run("rewrites the same file in place", func(t *testing.T) {
		store := testStore(t)

		path, err := store.Persist(testRecord(100))
		require.NoError(t, err)

		require.NoError(t, store.RewriteContracts(path, contracts, 4242, nil))

		latest, latestPath, err := store.LoadLatest()
		require.NoError(t, err)
		assert.Equal(t, path, latestPath)
		assert.Equal(t, contracts, latest.Contracts)
		assert.Equal(t, uint64(4242), latest.BlockNumber)

		entries, err := os.ReadDir(store.dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("rewriting twice yields identical content", func(t *testing.T) {
		store := testStore(t)

		path, err := store.Persist(testRecord(100))
		require.NoError(t, err)

		require.NoError(t, store.RewriteContracts(path, contracts, 4242, nil))
		first, err := os.ReadFile(path)
		require.NoError(t, err)

		require.NoError(t, store.RewriteContracts(path, contracts, 4242, nil))
		second, err := os.ReadFile(path)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("preserves chain metadata", func(t *testing.T) {
		store := testStore(t)

		original := testRecord(100)
		path, err := store.Persist(original)
		require.NoError(t, err)

		require.NoError(t, store.RewriteContracts(path, contracts, 0, nil))

		updated, _, err := store.LoadLatest()
		require.NoError(t, err)
		assert.Equal(t, original.ChainName, updated.ChainName)
		assert.Equal(t, original.TransactionHash, updated.TransactionHash)
		assert.Equal(t, original.Validators, updated.Validators)
	})
}

func TestNativeTokenDisplay(t *testing.T) {
	rec := testRecord(100)
	assert.Equal(t, "parent chain native currency", rec.NativeTokenDisplay())
	assert.NotContains(t, rec.NativeTokenDisplay(), "0x0000")

	rec.NativeToken = "0x7b79995e5f793A07Bc00c21412e50Ecae098E7f9"
	assert.Equal(t, rec.NativeToken, rec.NativeTokenDisplay())
}
