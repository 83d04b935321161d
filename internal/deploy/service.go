package deploy

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/compose-network/orbit-testnet/internal/deploy/record"
	"github.com/compose-network/orbit-testnet/internal/logger"
)

// Service runs the deployment pipeline end to end: funding gate, factory
// submission, record persistence, and receipt reconciliation.
type Service struct {
	submitter  *Submitter
	reconciler *Reconciler
	store      *record.Store
	logger     *slog.Logger
	now        func() time.Time
}

func NewService(submitter *Submitter, reconciler *Reconciler, store *record.Store) *Service {
	return &Service{
		submitter:  submitter,
		reconciler: reconciler,
		store:      store,
		logger:     logger.Named("deploy"),
		now:        time.Now,
	}
}

// Deploy executes one rollup creation attempt. The deployment record is
// persisted immediately after broadcast with an empty contracts mapping, so
// a crash or reconciliation miss never loses the transaction hash; the same
// file is rewritten in place once the event is decoded.
func (s *Service) Deploy(ctx context.Context, params *Params) (*record.DeploymentRecord, string, error) {
	if err := s.submitter.EnsureFunds(ctx, params); err != nil {
		return nil, "", err
	}

	tx, err := s.submitter.Submit(ctx, params)
	if err != nil {
		return nil, "", err
	}

	rec := s.newRecord(params, tx.Hash())
	path, err := s.store.Persist(rec)
	if err != nil {
		return nil, "", fmt.Errorf("persisting deployment record: %w", err)
	}
	s.logger.With("path", path).Info("deployment record written")

	result, err := s.reconciler.WaitAndReconcile(ctx, tx)
	if err != nil {
		return rec, path, err
	}

	if err := s.applyResult(rec, path, result); err != nil {
		return rec, path, err
	}

	return rec, path, nil
}

// Reconcile retries event decoding for the most recent deployment, working
// from the transaction hash the stored record carries.
func (s *Service) Reconcile(ctx context.Context) (*record.DeploymentRecord, string, error) {
	rec, path, err := s.store.LoadLatest()
	if err != nil {
		return nil, "", err
	}

	if rec.HasContracts() {
		s.logger.With("path", path).Info("record already carries contract addresses, nothing to reconcile")
		return rec, path, nil
	}

	result, err := s.reconciler.ReconcileHash(ctx, common.HexToHash(rec.TransactionHash))
	if err != nil {
		return rec, path, err
	}

	if err := s.applyResult(rec, path, result); err != nil {
		return rec, path, err
	}

	return rec, path, nil
}

func (s *Service) newRecord(params *Params, txHash common.Hash) *record.DeploymentRecord {
	validators := make([]string, 0, len(params.Validators))
	for _, v := range params.Validators {
		validators = append(validators, v.Hex())
	}

	return &record.DeploymentRecord{
		ChainID:         params.ChainID,
		ChainName:       params.ChainName,
		ParentChainID:   params.ParentChainID,
		ParentChainName: params.ParentChainName(),
		Deployer:        params.Deployer.Hex(),
		DeployedAt:      s.now().UTC().Format(time.RFC3339),
		TransactionHash: txHash.Hex(),
		Validators:      validators,
		BatchPoster:     params.BatchPoster.Hex(),
		NativeToken:     params.NativeToken.Hex(),
		Contracts:       map[string]string{},
	}
}

// applyResult rewrites the persisted record with the reconciliation outcome.
// A decoded event fills the contracts mapping; a miss stores the raw logs
// instead and surfaces ErrEventNotFound.
func (s *Service) applyResult(rec *record.DeploymentRecord, path string, result *ReconcileResult) error {
	blockNumber := result.Receipt.BlockNumber.Uint64()

	if !result.Found {
		logs := rawLogs(result.Receipt)
		if err := s.store.RewriteContracts(path, map[string]string{}, blockNumber, logs); err != nil {
			return fmt.Errorf("rewriting deployment record: %w", err)
		}
		rec.BlockNumber = blockNumber
		rec.RawLogs = logs
		return ErrEventNotFound
	}

	contracts := result.Contracts.RoleMap()
	if err := s.store.RewriteContracts(path, contracts, blockNumber, nil); err != nil {
		return fmt.Errorf("rewriting deployment record: %w", err)
	}
	rec.BlockNumber = blockNumber
	rec.Contracts = contracts

	s.logger.
		With("chain_id", rec.ChainID).
		With("rollup", contracts["rollup"]).
		Info("deployment reconciled")

	return nil
}
