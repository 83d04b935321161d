package nodeconfig

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/compose-network/orbit-testnet/configs"
	"github.com/compose-network/orbit-testnet/internal/deploy/record"
	"github.com/compose-network/orbit-testnet/internal/infra/filesystem"
)

const (
	// DefaultRetryableErrors is the pipe-separated pattern of transient
	// transport failures the node retries against the DA provider.
	DefaultRetryableErrors = "websocket: close 1006|dial tcp|i/o timeout|connection reset by peer|connection refused"

	DefaultDARetries        = 3
	DefaultArgLogLimit      = 2048
	DefaultMessageSizeLimit = int64(268435456)

	defaultHTTPPort       = 8547
	defaultBatchMaxSize   = 90000
	defaultStakerStrategy = "MakeNodes"

	templateParentChainID  = uint64(421614)
	templateParentChainRPC = "https://sepolia-rollup.arbitrum.io/rpc"

	// containerConfigDir is where the compose stack mounts the generated
	// config directory inside the node container.
	containerConfigDir = "/config"

	// DefaultDAEndpoint is the celestia-server service of the generated
	// compose stack, resolvable from inside the node container.
	DefaultDAEndpoint = "http://celestia-server:26657"
)

// Generator materializes the node run configuration for a deployed chain.
type Generator struct {
	writer filesystem.Writer
	logger *slog.Logger
}

func NewGenerator(writer filesystem.Writer, logger *slog.Logger) *Generator {
	return &Generator{writer: writer, logger: logger}
}

// Generate derives a run configuration from a deployment record and the
// configured DA provider endpoint. Unset DA tuning knobs fall back to
// defaults compatible with the provider sidecar.
func (g *Generator) Generate(rec *record.DeploymentRecord, da configs.DA) *NodeRunConfig {
	endpoint := da.Endpoint
	if endpoint == "" {
		endpoint = DefaultDAEndpoint
	}
	retries := da.Retries
	if retries == 0 {
		retries = DefaultDARetries
	}
	retryErrors := da.RetryableErrors
	if retryErrors == "" {
		retryErrors = DefaultRetryableErrors
	}
	argLogLimit := da.ArgLogLimit
	if argLogLimit == 0 {
		argLogLimit = DefaultArgLogLimit
	}
	messageSizeLimit := da.MessageSizeLimit
	if messageSizeLimit == 0 {
		messageSizeLimit = DefaultMessageSizeLimit
	}

	cfg := &NodeRunConfig{
		Chain: ChainConfig{
			InfoFiles: []string{containerChainInfoPath(rec.ChainID)},
			Name:      rec.ChainName,
			ID:        rec.ChainID,
		},
		ParentChain: ParentChainConfig{
			ID:         templateParentChainID,
			Connection: ConnectionConfig{URL: templateParentChainRPC},
		},
		HTTP: HTTPConfig{
			Addr:       "0.0.0.0",
			Port:       defaultHTTPPort,
			VHosts:     "*",
			CORSDomain: "*",
			API:        []string{"eth", "net", "web3", "arb", "debug"},
		},
		Node: NodeSettings{
			Sequencer:        ToggleConfig{Enable: true},
			DelayedSequencer: ToggleConfig{Enable: true},
			BatchPoster:      BatchPosterConfig{Enable: true, MaxSize: defaultBatchMaxSize},
			Staker:           StakerConfig{Enable: true, Strategy: defaultStakerStrategy},
			DataAvailability: &ToggleConfig{Enable: false},
			BlobReader:       &ToggleConfig{Enable: false},
			DA: &DAConfig{
				ExternalProvider: ExternalProviderConfig{
					Enable:     true,
					WithWriter: true,
					RPC: ProviderRPCConfig{
						URL:                       endpoint,
						Retries:                   retries,
						RetryErrors:               retryErrors,
						ArgLogLimit:               argLogLimit,
						WebsocketMessageSizeLimit: messageSizeLimit,
					},
				},
			},
		},
	}

	return cfg
}

// Write persists the run configuration under dir as node-config-<chainID>.json
// and returns the path it wrote.
func (g *Generator) Write(cfg *NodeRunConfig, dir string) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("node-config-%d.json", cfg.Chain.ID))
	if err := g.writer.WriteJSON(path, cfg); err != nil {
		return "", fmt.Errorf("writing node config: %w", err)
	}

	g.logger.Info("node config written", "path", path, "chain_id", cfg.Chain.ID)

	return path, nil
}
