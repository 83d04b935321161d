package compose

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/compose-network/orbit-testnet/configs"
	"github.com/compose-network/orbit-testnet/internal/infra/filesystem/json"
	"github.com/compose-network/orbit-testnet/internal/nodeconfig"
)

func writeNodeConfig(t *testing.T, chainID uint64, httpPort int) string {
	t.Helper()

	cfg := &nodeconfig.NodeRunConfig{}
	cfg.Chain.ID = chainID
	cfg.Chain.Name = "test-chain"
	cfg.HTTP.Port = httpPort

	path := filepath.Join(t.TempDir(), "node-config.json")
	require.NoError(t, json.NewWriter().WriteJSON(path, cfg))

	return path
}

func composeConfig(t *testing.T, chainID uint64) configs.Compose {
	t.Helper()

	return configs.Compose{
		ConfigPath:    writeNodeConfig(t, chainID, 8547),
		OutputPath:    filepath.Join(t.TempDir(), "docker-compose.yml"),
		CelestiaRPC:   "https://rpc-mocha.pops.one",
		CoreNetwork:   "mocha-4",
		EnableTLS:     true,
		NodeImage:     "ghcr.io/celestiaorg/nitro:v3.2.1",
		ServerImage:   "ghcr.io/celestiaorg/nitro-das-celestia:v0.4.2",
		ContainerName: "nitro-celestia-node",
	}
}

func TestGenerate(t *testing.T) {
	generator := NewGenerator(json.NewReader())

	t.Run("renders both services", func(t *testing.T) {
		model, err := generator.Generate(composeConfig(t, 13371))
		require.NoError(t, err)

		require.Contains(t, model.Services, NodeServiceName)
		require.Contains(t, model.Services, ServerServiceName)

		node := model.Services[NodeServiceName]
		assert.Equal(t, "ghcr.io/celestiaorg/nitro:v3.2.1", node.Image)
		assert.Equal(t, "nitro-celestia-node", node.ContainerName)
		assert.Contains(t, node.Command, "/config/node-config-13371.json")
		assert.Equal(t, []string{ServerServiceName}, node.DependsOn)
		assert.Contains(t, node.Ports, "8547:8547")
	})

	t.Run("derived namespace lands in the server command", func(t *testing.T) {
		model, err := generator.Generate(composeConfig(t, 13371))
		require.NoError(t, err)

		assert.Contains(t, model.Services[ServerServiceName].Command, DeriveNamespace(13371))
	})

	t.Run("explicit namespace wins over derivation", func(t *testing.T) {
		cfg := composeConfig(t, 13371)
		cfg.Namespace = "deadbeefdeadbeefdead"

		model, err := generator.Generate(cfg)
		require.NoError(t, err)

		server := model.Services[ServerServiceName]
		assert.Contains(t, server.Command, "deadbeefdeadbeefdead")
		assert.NotContains(t, server.Command, DeriveNamespace(13371))
	})

	t.Run("named keys volume without a host key path", func(t *testing.T) {
		model, err := generator.Generate(composeConfig(t, 13371))
		require.NoError(t, err)

		require.Contains(t, model.Volumes, "celestia-keys")
		assert.Contains(t, model.Services[ServerServiceName].Volumes, "celestia-keys:/home/celestia/keys")
	})

	t.Run("host key path becomes a bind mount", func(t *testing.T) {
		cfg := composeConfig(t, 13371)
		cfg.KeyPath = "/srv/celestia/keys"

		model, err := generator.Generate(cfg)
		require.NoError(t, err)

		assert.NotContains(t, model.Volumes, "celestia-keys")
		assert.Contains(t, model.Services[ServerServiceName].Volumes, "/srv/celestia/keys:/home/celestia/keys")
	})

	t.Run("relative config path stays a bind mount", func(t *testing.T) {
		t.Chdir(t.TempDir())
		require.NoError(t, os.Mkdir("config", 0755))

		nodeCfg := &nodeconfig.NodeRunConfig{}
		nodeCfg.Chain.ID = 13371
		require.NoError(t, json.NewWriter().WriteJSON(filepath.Join("config", "node-config-13371.json"), nodeCfg))

		cfg := composeConfig(t, 13371)
		cfg.ConfigPath = filepath.Join("config", "node-config-13371.json")

		model, err := generator.Generate(cfg)
		require.NoError(t, err)

		node := model.Services[NodeServiceName]
		assert.Contains(t, node.Volumes, "./config:/config")
		assert.NotContains(t, model.Volumes, "config")
	})

	t.Run("missing node config fails", func(t *testing.T) {
		cfg := composeConfig(t, 13371)
		cfg.ConfigPath = filepath.Join(t.TempDir(), "nope.json")

		_, err := generator.Generate(cfg)
		require.Error(t, err)
	})
}

func TestWrite(t *testing.T) {
	generator := NewGenerator(json.NewReader())
	cfg := composeConfig(t, 424242)

	model, err := generator.Generate(cfg)
	require.NoError(t, err)
	require.NoError(t, generator.Write(model, cfg.OutputPath))

	data, err := os.ReadFile(cfg.OutputPath)
	require.NoError(t, err)

	var roundTrip Model
	require.NoError(t, yaml.Unmarshal(data, &roundTrip))
	assert.Contains(t, roundTrip.Services, NodeServiceName)
	assert.Contains(t, roundTrip.Services, ServerServiceName)
	assert.Contains(t, roundTrip.Volumes, "node-data")
}
