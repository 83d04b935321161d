package compose

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/compose-network/orbit-testnet/configs"
	"github.com/compose-network/orbit-testnet/internal/infra/filesystem"
	"github.com/compose-network/orbit-testnet/internal/logger"
	"github.com/compose-network/orbit-testnet/internal/nodeconfig"
)

const (
	NodeServiceName   = "nitro-celestia-node"
	ServerServiceName = "celestia-server"

	nodeDataVolume     = "node-data"
	celestiaKeysVolume = "celestia-keys"

	containerConfigDir = "/config"
	containerKeysDir   = "/home/celestia/keys"
	containerDataDir   = "/home/user/.arbitrum"

	serverRPCPort = 26657
)

// Port surface of the two services. The node side is the chain's public
// face; the server side mirrors the DA provider's own listeners.
var (
	nodePorts   = []string{"8547:8547", "8548:8548", "9642:9642", "6070:6070"}
	serverPorts = []string{"1317:1317", "9090:9090", "26657:26657", "1095:1095", "8080:8080"}
)

// Generator renders a two-service docker compose stack for a deployed chain:
// the Nitro node plus its Celestia DA provider sidecar.
type Generator struct {
	reader filesystem.Reader
	logger *slog.Logger
}

func NewGenerator(reader filesystem.Reader) *Generator {
	return &Generator{reader: reader, logger: logger.Named("compose")}
}

// Generate builds the compose model from the node run configuration the
// deploy step wrote. The blob namespace falls back to one derived from the
// chain id so repeated generations of the same chain agree.
func (g *Generator) Generate(cfg configs.Compose) (*Model, error) {
	var nodeCfg nodeconfig.NodeRunConfig
	if err := g.reader.ReadJSON(cfg.ConfigPath, &nodeCfg); err != nil {
		return nil, fmt.Errorf("reading node config %s: %w", cfg.ConfigPath, err)
	}
	if nodeCfg.Chain.ID == 0 {
		return nil, fmt.Errorf("node config %s carries no chain id", cfg.ConfigPath)
	}

	namespace := cfg.Namespace
	if namespace == "" {
		namespace = DeriveNamespace(nodeCfg.Chain.ID)
		g.logger.With("namespace", namespace).Info("derived blob namespace from chain id")
	}

	httpPort := nodeCfg.HTTP.Port
	if httpPort == 0 {
		httpPort = 8547
	}

	model := &Model{
		Services: map[string]Service{
			ServerServiceName: g.serverService(cfg, namespace),
			NodeServiceName:   g.nodeService(cfg, nodeCfg.Chain.ID, httpPort),
		},
		Volumes: map[string]*VolumeSpec{
			nodeDataVolume: nil,
		},
	}

	// Without a host key path the keys live in a named volume so regenerated
	// stacks keep the same DA signing identity.
	if cfg.KeyPath == "" {
		model.Volumes[celestiaKeysVolume] = nil
	}

	return model, nil
}

func (g *Generator) serverService(cfg configs.Compose, namespace string) Service {
	command := []string{
		"--celestia.namespace-id", namespace,
		"--celestia.rpc", cfg.CelestiaRPC,
		"--rpc-address", "0.0.0.0",
		"--rpc-port", strconv.Itoa(serverRPCPort),
	}
	if cfg.AuthToken != "" {
		command = append(command, "--celestia.auth-token", cfg.AuthToken)
	}
	if cfg.CoreNetwork != "" {
		command = append(command, "--p2p.network", cfg.CoreNetwork)
	}
	if cfg.CoreURL != "" {
		command = append(command, "--core.grpc.addr", cfg.CoreURL)
	}
	if cfg.CoreToken != "" {
		command = append(command, "--core.grpc.token", cfg.CoreToken)
	}
	if cfg.EnableTLS {
		command = append(command, "--core.grpc.tls")
	}

	keysMount := celestiaKeysVolume + ":" + containerKeysDir
	if cfg.KeyPath != "" {
		keysMount = hostBindPath(cfg.KeyPath) + ":" + containerKeysDir
	}

	return Service{
		Image:   cfg.ServerImage,
		Restart: "unless-stopped",
		Command: command,
		Ports:   serverPorts,
		Volumes: []string{keysMount},
	}
}

func (g *Generator) nodeService(cfg configs.Compose, chainID uint64, httpPort int) Service {
	ports := nodePorts
	if httpPort != 8547 {
		ports = append([]string{fmt.Sprintf("%d:%d", httpPort, httpPort)}, nodePorts[1:]...)
	}

	configMount := hostBindPath(filepath.Dir(cfg.ConfigPath)) + ":" + containerConfigDir

	return Service{
		Image:         cfg.NodeImage,
		ContainerName: cfg.ContainerName,
		Restart:       "unless-stopped",
		Command: []string{
			"--conf.file", fmt.Sprintf("%s/node-config-%d.json", containerConfigDir, chainID),
		},
		Ports: ports,
		Volumes: []string{
			configMount,
			nodeDataVolume + ":" + containerDataDir,
		},
		DependsOn: []string{ServerServiceName},
	}
}

// hostBindPath makes a host path usable as the source of a compose bind
// mount. Compose treats a bare relative name as a named volume reference, so
// relative paths get a ./ prefix.
func hostBindPath(path string) string {
	if filepath.IsAbs(path) || strings.HasPrefix(path, ".") {
		return path
	}

	return "./" + filepath.ToSlash(path)
}

// Write marshals the model and writes it to path.
func (g *Generator) Write(model *Model, path string) error {
	data, err := yaml.Marshal(model)
	if err != nil {
		return fmt.Errorf("could not marshal compose model. Err: '%w'", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("could not write compose file. Err: '%w'", err)
	}

	g.logger.With("path", path).Info("compose file written")

	return nil
}
