package compose

import (
	"github.com/spf13/viper"
)

// flagDef defines a command-line flag with its configuration.
type (
	flagType interface {
		string | int | bool
	}

	flagDef[T flagType] struct {
		name         string
		viperKey     string
		defaultValue T
		description  string
	}
)

var (
	stringFlags = []flagDef[string]{
		{"config-path", "compose.config-path", "", "Path to the generated node config JSON"},
		{"output-path", "compose.output-path", "./docker-compose.yml", "Path for the generated compose file"},
		{"namespace", "compose.namespace", "", "Celestia blob namespace (default: derived from chain id)"},
		{"celestia-rpc", "compose.celestia-rpc", "https://rpc-mocha.pops.one", "Celestia RPC endpoint for the DA server"},
		{"auth-token", "compose.auth-token", "", "Celestia RPC auth token"},
		{"core-network", "compose.core-network", "mocha-4", "Celestia core network name"},
		{"core-token", "compose.core-token", "", "Celestia core gRPC token"},
		{"core-url", "compose.core-url", "", "Celestia core gRPC address"},
		{"key-path", "compose.key-path", "", "Host path for Celestia keys (default: named volume)"},
		{"node-image", "compose.node-image", "ghcr.io/celestiaorg/nitro:v3.2.1", "Nitro node image"},
		{"server-image", "compose.server-image", "ghcr.io/celestiaorg/nitro-das-celestia:v0.4.2", "DA provider server image"},
		{"container-name", "compose.container-name", "nitro-celestia-node", "Container name for the node service"},
	}

	boolFlags = []flagDef[bool]{
		{"enable-tls", "compose.enable-tls", true, "Use TLS for the Celestia core gRPC connection"},
	}
)

func init() {
	if err := declareFlags(stringFlags); err != nil {
		panic(err)
	}
	if err := declareFlags(boolFlags); err != nil {
		panic(err)
	}

	downCmd.Flags().Bool("volumes", false, "Also remove named volumes")

	CMD.AddCommand(upCmd)
	CMD.AddCommand(downCmd)
	CMD.AddCommand(showCmd)
}

// declareFlags declares multiple flags and binds them to viper configuration keys.
func declareFlags[T flagType](flags []flagDef[T]) error {
	for _, flag := range flags {
		if err := declareFlag(flag.name, flag.viperKey, flag.defaultValue, flag.description); err != nil {
			return err
		}
	}
	return nil
}

// declareFlag declares a single flag and binds it to a viper configuration key.
// The type parameter T determines the flag type (string, int, or bool).
func declareFlag[T flagType](flagName, viperKey string, defaultValue T, description string) error {
	var zero T
	switch any(zero).(type) {
	case string:
		CMD.PersistentFlags().String(flagName, any(defaultValue).(string), description)
	case int:
		CMD.PersistentFlags().Int(flagName, any(defaultValue).(int), description)
	case bool:
		CMD.PersistentFlags().Bool(flagName, any(defaultValue).(bool), description)
	}
	return viper.BindPFlag(viperKey, CMD.PersistentFlags().Lookup(flagName))
}
