package record

import (
	"github.com/ethereum/go-ethereum/common"
)

// DeploymentRecord is the durable artifact of one rollup creation attempt.
// It is written once at creation time; reconciliation may later rewrite the
// contracts mapping of the same file, and nothing else ever mutates it.
type DeploymentRecord struct {
	ChainID         uint64            `json:"chainId"`
	ChainName       string            `json:"chainName"`
	ParentChainID   uint64            `json:"parentChainId"`
	ParentChainName string            `json:"parentChainName"`
	Deployer        string            `json:"deployer"`
	DeployedAt      string            `json:"deployedAt"`
	TransactionHash string            `json:"transactionHash"`
	BlockNumber     uint64            `json:"blockNumber,omitempty"`
	Validators      []string          `json:"validators"`
	BatchPoster     string            `json:"batchPoster"`
	NativeToken     string            `json:"nativeToken"`
	Contracts       map[string]string `json:"contracts"`

	// RawLogs retains the receipt logs when structured decoding fails so a
	// later reconcile run has something to work from.
	RawLogs []RawLog `json:"rawLogs,omitempty"`
}

// RawLog is the undecoded form of one receipt log entry.
type RawLog struct {
	Address string   `json:"address"`
	Topics  []string `json:"topics"`
	Data    string   `json:"data"`
}

// NativeTokenDisplay renders the native token for user-facing summaries. The
// zero address is the sentinel for the parent chain's own currency and is
// never printed raw.
func (r *DeploymentRecord) NativeTokenDisplay() string {
	if r.NativeToken == "" || common.HexToAddress(r.NativeToken) == (common.Address{}) {
		return "parent chain native currency"
	}
	return r.NativeToken
}

// HasContracts reports whether reconciliation has populated the contracts
// mapping.
func (r *DeploymentRecord) HasContracts() bool {
	return len(r.Contracts) > 0
}
