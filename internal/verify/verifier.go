package verify

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/compose-network/orbit-testnet/internal/deploy/record"
	"github.com/compose-network/orbit-testnet/internal/logger"
)

// VerificationStatus is the terminal state of one contract's verification
// attempt within a run.
type VerificationStatus int

const (
	StatusVerified VerificationStatus = iota
	StatusPending
	StatusFailed
)

// checkDelay gives the explorer time to pick the submission up before the
// single status poll of this run.
const checkDelay = 5 * time.Second

// Verifier walks the contracts of a deployment record and submits each
// unverified one to the block explorer. Contracts still pending at the end
// of a run are retried by simply running the command again.
type Verifier struct {
	etherscan *EtherscanClient
	logger    *slog.Logger

	delay func(context.Context, time.Duration) error

	numVerified int
	numSkipped  int
	numPending  int
	numFailed   int
}

func NewVerifier(etherscan *EtherscanClient) *Verifier {
	return &Verifier{
		etherscan: etherscan,
		logger:    logger.Named("verify"),
		delay:     sleepContext,
	}
}

// VerifyDeployment runs one verification pass over the record's contracts,
// in deterministic role order. Individual failures are counted, not fatal.
func (v *Verifier) VerifyDeployment(ctx context.Context, rec *record.DeploymentRecord) error {
	roles := make([]string, 0, len(rec.Contracts))
	for role := range rec.Contracts {
		roles = append(roles, role)
	}
	sort.Strings(roles)

	for _, role := range roles {
		address := rec.Contracts[role]
		if address == "" || common.HexToAddress(address) == (common.Address{}) {
			// The zero address marks an absent contract, most commonly the
			// native token of an ETH-fee chain. Nothing to verify there.
			v.logger.With("role", role).Debug("no contract deployed for role, skipping")
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		v.verifyContract(ctx, role, address)
	}

	v.logger.
		With("verified", v.numVerified).
		With("skipped", v.numSkipped).
		With("pending", v.numPending).
		With("failed", v.numFailed).
		Info("verification pass finished")

	return nil
}

func (v *Verifier) verifyContract(ctx context.Context, role, address string) {
	log := v.logger.With("role", role).With("address", address)

	verified, err := v.etherscan.IsVerified(ctx, address)
	if err != nil {
		log.With("err", err.Error()).Warn("verification status check failed")
		v.numFailed++
		return
	}
	if verified {
		log.Info("already verified, skipping")
		v.numSkipped++
		return
	}

	guid, err := v.etherscan.MarkProxy(ctx, address)
	if err != nil {
		log.With("err", err.Error()).Warn("verification submission failed")
		v.numFailed++
		return
	}

	if err := v.delay(ctx, checkDelay); err != nil {
		v.numPending++
		return
	}

	status, err := v.etherscan.CheckProxy(ctx, guid)
	switch status {
	case StatusVerified:
		log.Info("contract verified")
		v.numVerified++
	case StatusPending:
		log.Info("verification still pending, re-run later to confirm")
		v.numPending++
	default:
		log.With("err", err.Error()).Warn("verification failed")
		v.numFailed++
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
