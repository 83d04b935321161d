package nodeconfig

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compose-network/orbit-testnet/configs"
	"github.com/compose-network/orbit-testnet/internal/deploy/record"
	jsonfs "github.com/compose-network/orbit-testnet/internal/infra/filesystem/json"
)

func testRecord() *record.DeploymentRecord {
	return &record.DeploymentRecord{
		ChainID:         13371,
		ChainName:       "orbit-chain-13371",
		ParentChainID:   421614,
		ParentChainName: "arbitrum-sepolia",
		Deployer:        "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266",
		TransactionHash: "0x" + "11" + "223344556677889900aabbccddeeff00112233445566778899aabbccddee",
		BlockNumber:     123456,
		Contracts: map[string]string{
			"rollup":                   "0x1000000000000000000000000000000000000001",
			"inbox":                    "0x1000000000000000000000000000000000000002",
			"sequencer-inbox":          "0x1000000000000000000000000000000000000003",
			"bridge":                   "0x1000000000000000000000000000000000000004",
			"upgrade-executor":         "0x1000000000000000000000000000000000000005",
			"validator-wallet-creator": "0x1000000000000000000000000000000000000006",
		},
	}
}

func newTestGenerator() *Generator {
	return NewGenerator(jsonfs.NewWriter(), slog.Default())
}

func TestGenerate(t *testing.T) {
	generator := newTestGenerator()

	t.Run("da defaults applied when unset", func(t *testing.T) {
		cfg := generator.Generate(testRecord(), configs.DA{Endpoint: "http://celestia-server:26657"})

		require.NotNil(t, cfg.Node.DA)
		rpc := cfg.Node.DA.ExternalProvider.RPC
		assert.Equal(t, "http://celestia-server:26657", rpc.URL)
		assert.Equal(t, 3, rpc.Retries)
		assert.Equal(t, "websocket: close 1006|dial tcp|i/o timeout|connection reset by peer|connection refused", rpc.RetryErrors)
		assert.Equal(t, 2048, rpc.ArgLogLimit)
		assert.Equal(t, int64(268435456), rpc.WebsocketMessageSizeLimit)
		assert.True(t, cfg.Node.DA.ExternalProvider.Enable)
		assert.True(t, cfg.Node.DA.ExternalProvider.WithWriter)
	})

	t.Run("configured da values win over defaults", func(t *testing.T) {
		cfg := generator.Generate(testRecord(), configs.DA{
			Endpoint:         "http://celestia-server:26657",
			Retries:          9,
			RetryableErrors:  "custom error",
			ArgLogLimit:      64,
			MessageSizeLimit: 1024,
		})

		rpc := cfg.Node.DA.ExternalProvider.RPC
		assert.Equal(t, 9, rpc.Retries)
		assert.Equal(t, "custom error", rpc.RetryErrors)
		assert.Equal(t, 64, rpc.ArgLogLimit)
		assert.Equal(t, int64(1024), rpc.WebsocketMessageSizeLimit)
	})

	t.Run("empty endpoint falls back to the compose sidecar", func(t *testing.T) {
		cfg := generator.Generate(testRecord(), configs.DA{})

		assert.Equal(t, DefaultDAEndpoint, cfg.Node.DA.ExternalProvider.RPC.URL)
	})

	t.Run("built-in availability mechanisms forced off", func(t *testing.T) {
		cfg := generator.Generate(testRecord(), configs.DA{})

		require.NotNil(t, cfg.Node.DataAvailability)
		assert.False(t, cfg.Node.DataAvailability.Enable)
		require.NotNil(t, cfg.Node.BlobReader)
		assert.False(t, cfg.Node.BlobReader.Enable)
	})

	t.Run("chain identity taken from the record", func(t *testing.T) {
		cfg := generator.Generate(testRecord(), configs.DA{})

		assert.Equal(t, uint64(13371), cfg.Chain.ID)
		assert.Equal(t, "orbit-chain-13371", cfg.Chain.Name)
		assert.Equal(t, []string{"/config/chain-info-13371.json"}, cfg.Chain.InfoFiles)
		assert.Equal(t, "0.0.0.0", cfg.HTTP.Addr)
		assert.Equal(t, 8547, cfg.HTTP.Port)
	})
}

func TestOverrideParentChain(t *testing.T) {
	generator := newTestGenerator()

	t.Run("template target needs no override", func(t *testing.T) {
		cfg := generator.Generate(testRecord(), configs.DA{})

		changed := OverrideParentChain(cfg, 421614, "https://sepolia-rollup.arbitrum.io/rpc", slog.Default())
		assert.False(t, changed)
		assert.Equal(t, uint64(421614), cfg.ParentChain.ID)
	})

	t.Run("different parent chain rewrites id and url", func(t *testing.T) {
		cfg := generator.Generate(testRecord(), configs.DA{})

		changed := OverrideParentChain(cfg, 11155111, "https://rpc.sepolia.org", slog.Default())
		assert.True(t, changed)
		assert.Equal(t, uint64(11155111), cfg.ParentChain.ID)
		assert.Equal(t, "https://rpc.sepolia.org", cfg.ParentChain.Connection.URL)
	})

	t.Run("zero values leave the template untouched", func(t *testing.T) {
		cfg := generator.Generate(testRecord(), configs.DA{})

		changed := OverrideParentChain(cfg, 0, "", slog.Default())
		assert.False(t, changed)
	})
}

func TestWrite(t *testing.T) {
	generator := newTestGenerator()
	dir := t.TempDir()

	cfg := generator.Generate(testRecord(), configs.DA{Endpoint: "http://celestia-server:26657"})
	path, err := generator.Write(cfg, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "node-config-13371.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var roundTrip NodeRunConfig
	require.NoError(t, json.Unmarshal(data, &roundTrip))
	assert.Equal(t, cfg.Chain.ID, roundTrip.Chain.ID)
	assert.Equal(t, cfg.Node.DA.ExternalProvider.RPC.RetryErrors, roundTrip.Node.DA.ExternalProvider.RPC.RetryErrors)
}

func TestChainInfoFromRecord(t *testing.T) {
	t.Run("contracts mapped into rollup addresses", func(t *testing.T) {
		info, err := ChainInfoFromRecord(testRecord())
		require.NoError(t, err)

		assert.Equal(t, "orbit-chain-13371", info.ChainName)
		assert.Equal(t, uint64(421614), info.ParentChainID)
		assert.True(t, info.ParentChainIsArbitrum)
		assert.Equal(t, "0x1000000000000000000000000000000000000001", info.Rollup.Rollup)
		assert.Equal(t, "0x1000000000000000000000000000000000000003", info.Rollup.SequencerInbox)
		assert.Equal(t, uint64(123456), info.Rollup.DeployedAt)
		assert.Equal(t, uint64(13371), info.ChainConfig.ChainID)
	})

	t.Run("unreconciled record is rejected", func(t *testing.T) {
		rec := testRecord()
		rec.Contracts = map[string]string{}

		_, err := ChainInfoFromRecord(rec)
		require.Error(t, err)
	})
}

func TestChainInfoPathMatchesRunConfig(t *testing.T) {
	generator := newTestGenerator()
	dir := t.TempDir()
	rec := testRecord()

	cfg := generator.Generate(rec, configs.DA{})
	info, err := ChainInfoFromRecord(rec)
	require.NoError(t, err)

	path, err := generator.WriteChainInfo(info, rec.ChainID, dir)
	require.NoError(t, err)

	require.Len(t, cfg.Chain.InfoFiles, 1)
	assert.Equal(t, filepath.Base(path), filepath.Base(cfg.Chain.InfoFiles[0]))
	assert.Equal(t, containerConfigDir, filepath.Dir(cfg.Chain.InfoFiles[0]))

	_, err = os.Stat(filepath.Join(dir, filepath.Base(cfg.Chain.InfoFiles[0])))
	require.NoError(t, err)
}
