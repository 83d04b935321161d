package deploy

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
		// Parent chain connection and signing
		{"private-key", "deploy.private-key", "", "Deployer private key (hex, 0x prefix optional)"},
		{"parent-chain-rpc", "deploy.parent-chain-rpc", "", "Parent chain RPC URL"},

		// Chain identity
		{"chain-name", "deploy.chain-name", "", "Chain name (default: orbit-chain-<id>)"},
		{"wasm-module-root", "deploy.wasm-module-root", "", "WASM module root hash of the node image"},

		// Roles
		{"validators", "deploy.validators", "", "Comma-separated validator addresses (default: deployer)"},
		{"batch-poster", "deploy.batch-poster", "", "Batch poster address (default: deployer)"},
		{"native-token", "deploy.native-token", "", "Custom fee token address (default: parent chain currency)"},

		// Factory
		{"rollup-creator", "deploy.rollup-creator", "", "RollupCreator factory address override"},
		{"max-fee-per-gas-for-retryables", "deploy.max-fee-per-gas-for-retryables", "", "Max fee per gas for retryable tickets in wei"},

		// DA provider
		{"da-endpoint", "deploy.da.endpoint", "", "DA provider RPC endpoint the node connects to"},
		{"da-retryable-errors", "deploy.da.retryable-errors", "", "Pipe-separated retryable DA error patterns"},

		// Output
		{"deployments-dir", "deploy.deployments-dir", "deployments", "Directory for deployment records"},
		{"config-dir", "deploy.config-dir", "config", "Directory for generated node configuration"},
	}

	intFlags = []flagDef[int]{
		{"parent-chain-id", "deploy.parent-chain-id", 0, "Parent chain id (default: 421614, Arbitrum Sepolia)"},
		{"chain-id", "deploy.chain-id", 0, "Chain id for the new rollup (default: random)"},
		{"max-data-size", "deploy.max-data-size", 0, "Max data size for the sequencer inbox in bytes"},
		{"da-retries", "deploy.da.retries", 0, "DA provider RPC retry count"},
		{"da-arg-log-limit", "deploy.da.arg-log-limit", 0, "Max logged argument length for DA RPC calls"},
	}
)

func init() {
	if err := declareFlags(stringFlags); err != nil {
		panic(err)
	}
	if err := declareFlags(intFlags); err != nil {
		panic(err)
	}
	CMD.AddCommand(reconcileCmd)
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
