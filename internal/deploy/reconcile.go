package deploy

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"

	"github.com/compose-network/orbit-testnet/internal/deploy/record"
	"github.com/compose-network/orbit-testnet/internal/deploy/rollupcreator"
	"github.com/compose-network/orbit-testnet/internal/logger"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// ErrEventNotFound reports that no log in the receipt decoded under the
// RollupCreated schema. The deployment record is still persisted with empty
// contracts so reconciliation can be re-run against the stored hash.
var ErrEventNotFound = errors.New("RollupCreated event not found in receipt logs, re-run with 'orbit-testnet deploy reconcile'")

// ReconcileResult is the outcome of one reconciliation pass over a receipt.
type ReconcileResult struct {
	Receipt   *types.Receipt
	Contracts rollupcreator.CoreContracts
	Found     bool
}

// Reconciler recovers the created contract addresses from a factory
// transaction's receipt.
type Reconciler struct {
	backend bind.DeployBackend
	logger  *slog.Logger
}

func NewReconciler(backend bind.DeployBackend) *Reconciler {
	return &Reconciler{backend: backend, logger: logger.Named("reconciler")}
}

// WaitAndReconcile blocks until the transaction is mined, then scans the
// receipt. A reverted transaction is fatal; a missing event is not.
func (r *Reconciler) WaitAndReconcile(ctx context.Context, tx *types.Transaction) (*ReconcileResult, error) {
	r.logger.With("tx_hash", tx.Hash().Hex()).Info("waiting for confirmation")

	receipt, err := bind.WaitMined(ctx, r.backend, tx)
	if err != nil {
		return nil, fmt.Errorf("failed waiting for receipt of %s: %w", tx.Hash().Hex(), err)
	}

	return r.reconcileReceipt(receipt)
}

// ReconcileHash re-runs reconciliation against an already submitted
// transaction, the manual retry path after a reconciliation miss.
func (r *Reconciler) ReconcileHash(ctx context.Context, txHash common.Hash) (*ReconcileResult, error) {
	receipt, err := r.backend.TransactionReceipt(ctx, txHash)
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return nil, fmt.Errorf("no receipt found for %s, the transaction may still be pending", txHash.Hex())
		}
		return nil, fmt.Errorf("failed to fetch receipt for %s: %w", txHash.Hex(), err)
	}

	return r.reconcileReceipt(receipt)
}

func (r *Reconciler) reconcileReceipt(receipt *types.Receipt) (*ReconcileResult, error) {
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf(
			"createRollup transaction %s reverted at block %d; a chain id or name collision is the usual cause, retry with different parameters",
			receipt.TxHash.Hex(), receipt.BlockNumber.Uint64(),
		)
	}

	r.logger.
		With("block_number", receipt.BlockNumber.Uint64()).
		With("num_logs", len(receipt.Logs)).
		Info("transaction confirmed, scanning logs")

	contracts, found := rollupcreator.FindRollupCreated(receipt)
	if !found {
		r.logger.With("num_logs", len(receipt.Logs)).Warn("no log decoded under the RollupCreated schema")
	} else {
		r.logger.
			With("rollup", contracts.Rollup.Hex()).
			With("sequencer_inbox", contracts.SequencerInbox.Hex()).
			Info("RollupCreated event decoded")
	}

	return &ReconcileResult{Receipt: receipt, Contracts: contracts, Found: found}, nil
}

// rawLogs converts receipt logs into the record's fallback representation.
func rawLogs(receipt *types.Receipt) []record.RawLog {
	if receipt == nil || len(receipt.Logs) == 0 {
		return nil
	}

	out := make([]record.RawLog, 0, len(receipt.Logs))
	for _, l := range receipt.Logs {
		topics := make([]string, 0, len(l.Topics))
		for _, t := range l.Topics {
			topics = append(topics, t.Hex())
		}
		out = append(out, record.RawLog{
			Address: l.Address.Hex(),
			Topics:  topics,
			Data:    "0x" + hex.EncodeToString(l.Data),
		})
	}
	return out
}
