package configs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

var Values Config

type (
	Config struct {
		Deploy  Deploy  `mapstructure:"deploy"`
		Compose Compose `mapstructure:"compose"`
		Verify  Verify  `mapstructure:"verify"`
	}

	Deploy struct {
		PrivateKey     string `mapstructure:"private-key"`
		ParentChainRPC string `mapstructure:"parent-chain-rpc"`
		ParentChainID  uint64 `mapstructure:"parent-chain-id"`
		ChainID        uint64 `mapstructure:"chain-id"`
		ChainName      string `mapstructure:"chain-name"`
		WasmModuleRoot string `mapstructure:"wasm-module-root"`

		// Comma-separated validator addresses. Empty means the deployer
		// account becomes the sole validator.
		Validators  string `mapstructure:"validators"`
		BatchPoster string `mapstructure:"batch-poster"`
		NativeToken string `mapstructure:"native-token"`

		// RollupCreator factory override. Empty selects the canonical
		// factory for the parent chain.
		RollupCreator string `mapstructure:"rollup-creator"`

		MaxDataSize               int64  `mapstructure:"max-data-size"`
		MaxFeePerGasForRetryables string `mapstructure:"max-fee-per-gas-for-retryables"`

		DA DA `mapstructure:"da"`

		DeploymentsDir string `mapstructure:"deployments-dir"`
		ConfigDir      string `mapstructure:"config-dir"`
	}

	DA struct {
		Endpoint         string `mapstructure:"endpoint"`
		Retries          int    `mapstructure:"retries"`
		RetryableErrors  string `mapstructure:"retryable-errors"`
		ArgLogLimit      int    `mapstructure:"arg-log-limit"`
		MessageSizeLimit int64  `mapstructure:"message-size-limit"`
	}

	Compose struct {
		ConfigPath    string `mapstructure:"config-path"`
		OutputPath    string `mapstructure:"output-path"`
		Namespace     string `mapstructure:"namespace"`
		CelestiaRPC   string `mapstructure:"celestia-rpc"`
		AuthToken     string `mapstructure:"auth-token"`
		CoreNetwork   string `mapstructure:"core-network"`
		CoreToken     string `mapstructure:"core-token"`
		CoreURL       string `mapstructure:"core-url"`
		EnableTLS     bool   `mapstructure:"enable-tls"`
		KeyPath       string `mapstructure:"key-path"`
		NodeImage     string `mapstructure:"node-image"`
		ServerImage   string `mapstructure:"server-image"`
		ContainerName string `mapstructure:"container-name"`
	}

	Verify struct {
		APIKey string `mapstructure:"api-key"`
		APIURL string `mapstructure:"api-url"`
	}
)

func (c *Deploy) Validate() error {
	var errs []error

	if c.PrivateKey == "" {
		errs = append(errs, errors.New("deploy.private-key is required (ORBIT_DEPLOY_PRIVATE_KEY)"))
	}
	if c.ParentChainRPC == "" {
		errs = append(errs, errors.New("deploy.parent-chain-rpc is required (ORBIT_DEPLOY_PARENT_CHAIN_RPC)"))
	}
	if c.WasmModuleRoot == "" {
		errs = append(errs, errors.New("deploy.wasm-module-root is required (ORBIT_DEPLOY_WASM_MODULE_ROOT)"))
	} else if !isHexHash(c.WasmModuleRoot) {
		errs = append(errs, fmt.Errorf("deploy.wasm-module-root %q is not a 32-byte hex hash", c.WasmModuleRoot))
	}

	for _, v := range c.ValidatorList() {
		if !common.IsHexAddress(v) {
			errs = append(errs, fmt.Errorf("deploy.validators entry %q is not a valid address", v))
		}
	}
	if c.BatchPoster != "" && !common.IsHexAddress(c.BatchPoster) {
		errs = append(errs, fmt.Errorf("deploy.batch-poster %q is not a valid address", c.BatchPoster))
	}
	if c.NativeToken != "" && !common.IsHexAddress(c.NativeToken) {
		errs = append(errs, fmt.Errorf("deploy.native-token %q is not a valid address", c.NativeToken))
	}
	if c.RollupCreator != "" && !common.IsHexAddress(c.RollupCreator) {
		errs = append(errs, fmt.Errorf("deploy.rollup-creator %q is not a valid address", c.RollupCreator))
	}

	if len(errs) > 0 {
		return fmt.Errorf("deploy configuration validation failed: %w", errors.Join(errs...))
	}

	return nil
}

// ValidatorList splits the comma-separated validators value, dropping empties.
func (c *Deploy) ValidatorList() []string {
	if c.Validators == "" {
		return nil
	}

	var out []string
	for _, v := range strings.Split(c.Validators, ",") {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (c *Compose) Validate() error {
	var errs []error

	if c.ConfigPath == "" {
		errs = append(errs, errors.New("compose.config-path is required, run 'orbit-testnet deploy' first or pass --config-path"))
	}
	if c.OutputPath == "" {
		errs = append(errs, errors.New("compose.output-path is required"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("compose configuration validation failed: %w", errors.Join(errs...))
	}

	return nil
}

func isHexHash(s string) bool {
	s = strings.TrimPrefix(s, "0x")
	if len(s) != 64 {
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return true
}
