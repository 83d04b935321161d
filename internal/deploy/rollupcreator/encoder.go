package rollupcreator

import (
	"fmt"
	"log/slog"
	"math/big"
	"strings"

	"github.com/compose-network/orbit-testnet/internal/logger"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// BOLD protocol parameters (nitro-contracts v3.2 defaults).
const (
	DefaultConfirmPeriodBlocks        = 45818  // ~1 week on Ethereum
	DefaultMaxDataSize                = 117964 // ~115KB max batch size
	DefaultMinimumAssertionPeriod     = 75
	DefaultValidatorAfkBlocks         = 201600
	DefaultLayerZeroBlockEdgeHeight   = 1 << 25
	DefaultLayerZeroBigStepHeight     = 1 << 19
	DefaultLayerZeroSmallStepHeight   = 1 << 23
	DefaultNumBigStepLevel            = 3
	DefaultChallengeGracePeriodBlocks = 14400
)

// defaultBaseStake is 0.1 ETH, the stake required from the first validator.
var defaultBaseStake = big.NewInt(100000000000000000)

// sepoliaWETH is used as the BOLD stake token when none is configured; the
// protocol rejects a zero stake token address.
var sepoliaWETH = common.HexToAddress("0x7b79995e5f793A07Bc00c21412e50Ecae098E7f9")

// createRollupABIJSON covers the single factory function this tool calls.
const createRollupABIJSON = `[{
	"inputs": [{
		"name": "deployParams",
		"type": "tuple",
		"components": [
			{"name": "config", "type": "tuple", "components": [
				{"name": "confirmPeriodBlocks", "type": "uint64"},
				{"name": "stakeToken", "type": "address"},
				{"name": "baseStake", "type": "uint256"},
				{"name": "wasmModuleRoot", "type": "bytes32"},
				{"name": "owner", "type": "address"},
				{"name": "loserStakeEscrow", "type": "address"},
				{"name": "chainId", "type": "uint256"},
				{"name": "chainConfig", "type": "string"},
				{"name": "minimumAssertionPeriod", "type": "uint256"},
				{"name": "validatorAfkBlocks", "type": "uint64"},
				{"name": "miniStakeValues", "type": "uint256[]"},
				{"name": "sequencerInboxMaxTimeVariation", "type": "tuple", "components": [
					{"name": "delayBlocks", "type": "uint256"},
					{"name": "futureBlocks", "type": "uint256"},
					{"name": "delaySeconds", "type": "uint256"},
					{"name": "futureSeconds", "type": "uint256"}
				]},
				{"name": "layerZeroBlockEdgeHeight", "type": "uint256"},
				{"name": "layerZeroBigStepEdgeHeight", "type": "uint256"},
				{"name": "layerZeroSmallStepEdgeHeight", "type": "uint256"},
				{"name": "genesisAssertionState", "type": "tuple", "components": [
					{"name": "globalState", "type": "tuple", "components": [
						{"name": "bytes32Vals", "type": "bytes32[2]"},
						{"name": "u64Vals", "type": "uint64[2]"}
					]},
					{"name": "machineStatus", "type": "uint8"},
					{"name": "endHistoryRoot", "type": "bytes32"}
				]},
				{"name": "genesisInboxCount", "type": "uint256"},
				{"name": "anyTrustFastConfirmer", "type": "address"},
				{"name": "numBigStepLevel", "type": "uint8"},
				{"name": "challengeGracePeriodBlocks", "type": "uint64"},
				{"name": "bufferConfig", "type": "tuple", "components": [
					{"name": "threshold", "type": "uint64"},
					{"name": "max", "type": "uint64"},
					{"name": "replenishRateInBasis", "type": "uint64"}
				]},
				{"name": "dataCostEstimate", "type": "uint256"}
			]},
			{"name": "validators", "type": "address[]"},
			{"name": "maxDataSize", "type": "uint256"},
			{"name": "nativeToken", "type": "address"},
			{"name": "deployFactoriesToL2", "type": "bool"},
			{"name": "maxFeePerGasForRetryables", "type": "uint256"},
			{"name": "batchPosters", "type": "address[]"},
			{"name": "batchPosterManager", "type": "address"},
			{"name": "feeTokenPricer", "type": "address"},
			{"name": "customOsp", "type": "address"}
		]
	}],
	"name": "createRollup",
	"outputs": [{"name": "", "type": "address"}],
	"stateMutability": "payable",
	"type": "function"
}]`

// CreateRollupInput carries the resolved operator parameters the encoder
// folds into the factory calldata.
type CreateRollupInput struct {
	ChainID                   uint64
	Owner                     common.Address
	WasmModuleRoot            common.Hash
	Validators                []common.Address
	BatchPoster               common.Address
	NativeToken               common.Address
	MaxDataSize               *big.Int
	MaxFeePerGasForRetryables *big.Int
	ChainConfigJSON           string
}

// Encoder builds createRollup calldata for the RollupCreator factory.
type Encoder struct {
	abi    abi.ABI
	logger *slog.Logger
}

func NewEncoder() (*Encoder, error) {
	parsed, err := abi.JSON(strings.NewReader(createRollupABIJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to parse RollupCreator ABI: %w", err)
	}

	return &Encoder{abi: parsed, logger: logger.Named("rollup_encoder")}, nil
}

// EncodeCreateRollup packs the full RollupDeploymentParams tuple.
func (e *Encoder) EncodeCreateRollup(in CreateRollupInput) ([]byte, error) {
	if len(in.Validators) == 0 {
		return nil, fmt.Errorf("validator set must not be empty")
	}

	maxDataSize := in.MaxDataSize
	if maxDataSize == nil || maxDataSize.Sign() == 0 {
		maxDataSize = big.NewInt(DefaultMaxDataSize)
	}
	maxRetryableFee := in.MaxFeePerGasForRetryables
	if maxRetryableFee == nil || maxRetryableFee.Sign() == 0 {
		maxRetryableFee = big.NewInt(100000000) // 0.1 gwei
	}

	// The EdgeChallengeManager expects numBigStepLevel+2 stake amounts.
	miniStake := new(big.Int).Div(defaultBaseStake, big.NewInt(10))
	miniStakeValues := make([]*big.Int, DefaultNumBigStepLevel+2)
	for i := range miniStakeValues {
		miniStakeValues[i] = miniStake
	}

	params := DeploymentParams{
		Config: CreatorConfig{
			ConfirmPeriodBlocks:    DefaultConfirmPeriodBlocks,
			StakeToken:             sepoliaWETH,
			BaseStake:              defaultBaseStake,
			WasmModuleRoot:         in.WasmModuleRoot,
			Owner:                  in.Owner,
			LoserStakeEscrow:       in.Owner,
			ChainId:                new(big.Int).SetUint64(in.ChainID),
			ChainConfig:            in.ChainConfigJSON,
			MinimumAssertionPeriod: big.NewInt(DefaultMinimumAssertionPeriod),
			ValidatorAfkBlocks:     DefaultValidatorAfkBlocks,
			MiniStakeValues:        miniStakeValues,
			SequencerInboxMaxTimeVariation: MaxTimeVariation{
				DelayBlocks:   big.NewInt(5760),
				FutureBlocks:  big.NewInt(64),
				DelaySeconds:  big.NewInt(86400),
				FutureSeconds: big.NewInt(3600),
			},
			LayerZeroBlockEdgeHeight:     big.NewInt(DefaultLayerZeroBlockEdgeHeight),
			LayerZeroBigStepEdgeHeight:   big.NewInt(DefaultLayerZeroBigStepHeight),
			LayerZeroSmallStepEdgeHeight: big.NewInt(DefaultLayerZeroSmallStepHeight),
			GenesisAssertionState: AssertionState{
				GlobalState:    GlobalState{},
				MachineStatus:  1, // FINISHED
				EndHistoryRoot: [32]byte{},
			},
			GenesisInboxCount:          big.NewInt(1),
			AnyTrustFastConfirmer:      common.Address{},
			NumBigStepLevel:            DefaultNumBigStepLevel,
			ChallengeGracePeriodBlocks: DefaultChallengeGracePeriodBlocks,
			BufferConfig: BufferConfig{
				Threshold:            600,
				Max:                  14400,
				ReplenishRateInBasis: 500,
			},
			DataCostEstimate: big.NewInt(0),
		},
		Validators:                in.Validators,
		MaxDataSize:               maxDataSize,
		NativeToken:               in.NativeToken,
		DeployFactoriesToL2:       false,
		MaxFeePerGasForRetryables: maxRetryableFee,
		BatchPosters:              []common.Address{in.BatchPoster},
		BatchPosterManager:        in.Owner,
		FeeTokenPricer:            common.Address{},
		CustomOsp:                 common.Address{},
	}

	e.logger.
		With("chain_id", in.ChainID).
		With("owner", in.Owner.Hex()).
		With("validators", len(in.Validators)).
		Debug("encoding createRollup calldata")

	return e.abi.Pack("createRollup", params)
}
