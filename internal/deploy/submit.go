package deploy

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/compose-network/orbit-testnet/internal/deploy/rollupcreator"
	"github.com/compose-network/orbit-testnet/internal/logger"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// MinDeployerBalanceWei is the funding floor for an attempt: 0.5 units of the
// parent chain's native currency.
var MinDeployerBalanceWei = big.NewInt(500000000000000000)

const (
	// createRollup deploys a dozen contracts in one transaction; cap the
	// limit to stay under testnet block gas limits.
	maxCreateRollupGas     = 15_000_000
	defaultCreateRollupGas = 15_000_000
)

// ParentChainClient is the slice of ethclient.Client the submission path
// touches, kept narrow so tests can substitute a fake.
type ParentChainClient interface {
	ChainID(ctx context.Context) (*big.Int, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
}

// Submitter builds and broadcasts the factory-creation transaction.
type Submitter struct {
	client  ParentChainClient
	encoder *rollupcreator.Encoder
	logger  *slog.Logger
}

func NewSubmitter(client ParentChainClient) (*Submitter, error) {
	encoder, err := rollupcreator.NewEncoder()
	if err != nil {
		return nil, err
	}

	return &Submitter{
		client:  client,
		encoder: encoder,
		logger:  logger.Named("submitter"),
	}, nil
}

// EnsureFunds aborts the pipeline before any transaction is built when the
// deployer balance sits below the threshold.
func (s *Submitter) EnsureFunds(ctx context.Context, params *Params) error {
	balance, err := s.client.BalanceAt(ctx, params.Deployer, nil)
	if err != nil {
		return fmt.Errorf("failed to read deployer balance: %w", err)
	}

	s.logger.
		With("deployer", params.Deployer.Hex()).
		With("balance_wei", balance.String()).
		Info("deployer balance")

	if balance.Cmp(MinDeployerBalanceWei) < 0 {
		return fmt.Errorf(
			"deployer %s holds %s wei, below the required %s wei (0.5); fund it on %s first, e.g. via https://faucet.quicknode.com/arbitrum/sepolia",
			params.Deployer.Hex(), balance.String(), MinDeployerBalanceWei.String(), params.ParentChainName(),
		)
	}

	return nil
}

// Submit verifies the parent chain id, encodes createRollup and broadcasts
// the signed transaction. It returns right after broadcast without waiting
// for a confirmation.
func (s *Submitter) Submit(ctx context.Context, params *Params) (*types.Transaction, error) {
	chainID, err := s.client.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get parent chain id: %w", err)
	}
	if chainID.Uint64() != params.ParentChainID {
		return nil, fmt.Errorf("parent chain id mismatch: configured %d, RPC reports %d", params.ParentChainID, chainID.Uint64())
	}

	chainConfigJSON, err := rollupcreator.NewChainConfig(params.ChainID, params.Deployer).JSON()
	if err != nil {
		return nil, err
	}

	callData, err := s.encoder.EncodeCreateRollup(rollupcreator.CreateRollupInput{
		ChainID:                   params.ChainID,
		Owner:                     params.Deployer,
		WasmModuleRoot:            params.WasmModuleRoot,
		Validators:                params.Validators,
		BatchPoster:               params.BatchPoster,
		NativeToken:               params.NativeToken,
		MaxDataSize:               params.MaxDataSize,
		MaxFeePerGasForRetryables: params.MaxFeePerGasForRetryables,
		ChainConfigJSON:           chainConfigJSON,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode createRollup: %w", err)
	}

	nonce, err := s.client.PendingNonceAt(ctx, params.Deployer)
	if err != nil {
		return nil, fmt.Errorf("failed to get nonce: %w", err)
	}

	gasPrice, err := s.gasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get gas price: %w", err)
	}

	gasLimit, err := s.client.EstimateGas(ctx, ethereum.CallMsg{
		From:     params.Deployer,
		To:       &params.RollupCreator,
		GasPrice: gasPrice,
		Value:    big.NewInt(0),
		Data:     callData,
	})
	if err != nil {
		gasLimit = defaultCreateRollupGas
		s.logger.
			With("gas_limit", gasLimit).
			With("err", err.Error()).
			Warn("gas estimation failed, using default")
	}
	gasLimit = gasLimit * 120 / 100
	if gasLimit > maxCreateRollupGas {
		gasLimit = maxCreateRollupGas
	}

	tx := types.NewTransaction(nonce, params.RollupCreator, big.NewInt(0), gasLimit, gasPrice, callData)

	signedTx, err := types.SignTx(tx, types.LatestSignerForChainID(chainID), params.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := s.client.SendTransaction(ctx, signedTx); err != nil {
		return nil, fmt.Errorf("failed to send createRollup transaction: %w", err)
	}

	s.logger.
		With("tx_hash", signedTx.Hash().Hex()).
		With("rollup_creator", params.RollupCreator.Hex()).
		With("gas_limit", gasLimit).
		Info("createRollup transaction submitted")

	return signedTx, nil
}

// gasPrice boosts the suggested price by 50% for faster inclusion, with a
// 2 gwei floor.
func (s *Submitter) gasPrice(ctx context.Context) (*big.Int, error) {
	suggested, err := s.client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, err
	}

	boosted := new(big.Int).Mul(suggested, big.NewInt(150))
	boosted.Div(boosted, big.NewInt(100))

	minPrice := big.NewInt(2_000_000_000)
	if boosted.Cmp(minPrice) < 0 {
		boosted = minPrice
	}

	return boosted, nil
}
