package deploy

import (
	"crypto/ecdsa"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/compose-network/orbit-testnet/configs"
	"github.com/compose-network/orbit-testnet/internal/crypto"
	"github.com/ethereum/go-ethereum/common"
)

const (
	// DefaultParentChainID is Arbitrum Sepolia.
	DefaultParentChainID = 421614

	// Random chain ids are drawn from [chainIDBase, chainIDBase+chainIDRange).
	chainIDBase  = 13370
	chainIDRange = 1 << 20
)

// Canonical RollupCreator factory deployments per parent chain, overridable
// through deploy.rollup-creator.
var rollupCreators = map[uint64]common.Address{
	421614:   common.HexToAddress("0x06E341073b2749e0Bb9912461351f716DeCDa9b0"), // arbitrum sepolia
	11155111: common.HexToAddress("0xfBD0B034e6305788007f6e0123cc5EaE701a5751"), // sepolia
	17000:    common.HexToAddress("0xB512078282F462Ba104231ad856464Ceb0a7747e"), // holesky
}

var parentChainNames = map[uint64]string{
	421614:   "arbitrum-sepolia",
	11155111: "sepolia",
	17000:    "holesky",
}

// Params is the fully resolved parameter set one deployment attempt runs
// with. Resolution happens once, before any network call, so every later
// step works from explicit values instead of ambient configuration.
type Params struct {
	ChainID        uint64
	ChainName      string
	ParentChainID  uint64
	ParentChainRPC string

	Deployer   common.Address
	PrivateKey *ecdsa.PrivateKey

	Validators  []common.Address
	BatchPoster common.Address
	NativeToken common.Address

	WasmModuleRoot common.Hash
	RollupCreator  common.Address

	MaxDataSize               *big.Int
	MaxFeePerGasForRetryables *big.Int

	DA configs.DA

	DeploymentsDir string
	ConfigDir      string
}

// ResolveParams validates the deploy configuration and folds in defaults:
// the validator set falls back to the deployer, as does the batch poster,
// and a missing chain id is drawn at random so repeated attempts do not
// collide with a previously created chain.
func ResolveParams(cfg configs.Deploy, logger *slog.Logger) (*Params, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	privateKey, err := crypto.ParsePrivateKey(cfg.PrivateKey)
	if err != nil {
		return nil, err
	}
	deployer, err := crypto.AddressFromPrivateKey(cfg.PrivateKey)
	if err != nil {
		return nil, err
	}

	params := &Params{
		ParentChainRPC: cfg.ParentChainRPC,
		ParentChainID:  cfg.ParentChainID,
		Deployer:       deployer,
		PrivateKey:     privateKey,
		WasmModuleRoot: common.HexToHash(cfg.WasmModuleRoot),
		DA:             cfg.DA,
		DeploymentsDir: cfg.DeploymentsDir,
		ConfigDir:      cfg.ConfigDir,
	}

	if params.ParentChainID == 0 {
		params.ParentChainID = DefaultParentChainID
	}
	if params.DeploymentsDir == "" {
		params.DeploymentsDir = "deployments"
	}
	if params.ConfigDir == "" {
		params.ConfigDir = "config"
	}

	params.ChainID = cfg.ChainID
	if params.ChainID == 0 {
		params.ChainID, err = randomChainID()
		if err != nil {
			return nil, fmt.Errorf("failed to generate chain id: %w", err)
		}
		logger.With("chain_id", params.ChainID).Info("no chain id configured, generated a random one")
	}

	params.ChainName = cfg.ChainName
	if params.ChainName == "" {
		params.ChainName = fmt.Sprintf("orbit-chain-%d", params.ChainID)
	}

	for _, v := range cfg.ValidatorList() {
		params.Validators = append(params.Validators, common.HexToAddress(v))
	}
	if len(params.Validators) == 0 {
		params.Validators = []common.Address{deployer}
	}

	params.BatchPoster = deployer
	if cfg.BatchPoster != "" {
		params.BatchPoster = common.HexToAddress(cfg.BatchPoster)
	}

	if cfg.NativeToken != "" {
		params.NativeToken = common.HexToAddress(cfg.NativeToken)
	}

	if cfg.RollupCreator != "" {
		params.RollupCreator = common.HexToAddress(cfg.RollupCreator)
	} else {
		creator, ok := rollupCreators[params.ParentChainID]
		if !ok {
			return nil, fmt.Errorf("no canonical RollupCreator known for parent chain %d, set deploy.rollup-creator", params.ParentChainID)
		}
		params.RollupCreator = creator
	}

	if cfg.MaxDataSize > 0 {
		params.MaxDataSize = big.NewInt(cfg.MaxDataSize)
	}
	if cfg.MaxFeePerGasForRetryables != "" {
		fee, ok := new(big.Int).SetString(cfg.MaxFeePerGasForRetryables, 10)
		if !ok {
			return nil, fmt.Errorf("deploy.max-fee-per-gas-for-retryables %q is not a decimal integer", cfg.MaxFeePerGasForRetryables)
		}
		params.MaxFeePerGasForRetryables = fee
	}

	return params, nil
}

// ParentChainName returns a human-readable parent chain name for the record.
func (p *Params) ParentChainName() string {
	if name, ok := parentChainNames[p.ParentChainID]; ok {
		return name
	}
	return fmt.Sprintf("chain-%d", p.ParentChainID)
}

// NativeTokenDisplay renders the native token for summaries; the zero
// address means the parent chain's own currency.
func (p *Params) NativeTokenDisplay() string {
	if p.NativeToken == (common.Address{}) {
		return "parent chain native currency"
	}
	return p.NativeToken.Hex()
}

func randomChainID() (uint64, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(chainIDRange))
	if err != nil {
		return 0, err
	}
	return chainIDBase + n.Uint64(), nil
}
