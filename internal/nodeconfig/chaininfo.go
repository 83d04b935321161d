package nodeconfig

import (
	"fmt"
	"path/filepath"

	"github.com/ethereum/go-ethereum/common"

	"github.com/compose-network/orbit-testnet/internal/deploy/record"
	"github.com/compose-network/orbit-testnet/internal/deploy/rollupcreator"
)

// ChainInfo is one entry of the chain info file the node reads to locate
// the rollup contracts on the parent chain.
type ChainInfo struct {
	ChainName             string                    `json:"chain-name"`
	ParentChainID         uint64                    `json:"parent-chain-id"`
	ParentChainIsArbitrum bool                      `json:"parent-chain-is-arbitrum"`
	ChainConfig           rollupcreator.ChainConfig `json:"chain-config"`
	Rollup                RollupAddresses           `json:"rollup"`
}

type RollupAddresses struct {
	Bridge                 string `json:"bridge"`
	Inbox                  string `json:"inbox"`
	SequencerInbox         string `json:"sequencer-inbox"`
	Rollup                 string `json:"rollup"`
	UpgradeExecutor        string `json:"upgrade-executor"`
	ValidatorWalletCreator string `json:"validator-wallet-creator"`
	DeployedAt             uint64 `json:"deployed-at"`
}

// ChainInfoFromRecord rebuilds the chain info entry from a completed
// deployment record. The record must carry reconciled contract addresses.
func ChainInfoFromRecord(rec *record.DeploymentRecord) (*ChainInfo, error) {
	if !rec.HasContracts() {
		return nil, fmt.Errorf("deployment record for chain %d has no contract addresses, reconcile it first", rec.ChainID)
	}

	chainConfig := rollupcreator.NewChainConfig(rec.ChainID, common.HexToAddress(rec.Deployer))

	return &ChainInfo{
		ChainName:             rec.ChainName,
		ParentChainID:         rec.ParentChainID,
		ParentChainIsArbitrum: true,
		ChainConfig:           chainConfig,
		Rollup: RollupAddresses{
			Bridge:                 rec.Contracts["bridge"],
			Inbox:                  rec.Contracts["inbox"],
			SequencerInbox:         rec.Contracts["sequencer-inbox"],
			Rollup:                 rec.Contracts["rollup"],
			UpgradeExecutor:        rec.Contracts["upgrade-executor"],
			ValidatorWalletCreator: rec.Contracts["validator-wallet-creator"],
			DeployedAt:             rec.BlockNumber,
		},
	}, nil
}

// chainInfoFileName is shared with the run config's chain.info-files entry;
// the node resolves the same name under the container config mount.
func chainInfoFileName(chainID uint64) string {
	return fmt.Sprintf("chain-info-%d.json", chainID)
}

func containerChainInfoPath(chainID uint64) string {
	return containerConfigDir + "/" + chainInfoFileName(chainID)
}

// WriteChainInfo persists the single-entry chain info array under dir as
// chain-info-<chainID>.json and returns the path it wrote.
func (g *Generator) WriteChainInfo(info *ChainInfo, chainID uint64, dir string) (string, error) {
	path := filepath.Join(dir, chainInfoFileName(chainID))
	if err := g.writer.WriteJSON(path, []*ChainInfo{info}); err != nil {
		return "", fmt.Errorf("writing chain info: %w", err)
	}

	return path, nil
}
