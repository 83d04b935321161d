package rollupcreator

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// DefaultArbOSVersion is the ArbOS version the chain boots with.
const DefaultArbOSVersion = 32

// ChainConfig is the genesis chain configuration embedded as a JSON string
// into the createRollup calldata and reused verbatim in the chain-info file.
type ChainConfig struct {
	ChainID             uint64         `json:"chainId"`
	HomesteadBlock      int            `json:"homesteadBlock"`
	DAOForkBlock        *int           `json:"daoForkBlock"`
	DAOForkSupport      bool           `json:"daoForkSupport"`
	EIP150Block         int            `json:"eip150Block"`
	EIP155Block         int            `json:"eip155Block"`
	EIP158Block         int            `json:"eip158Block"`
	ByzantiumBlock      int            `json:"byzantiumBlock"`
	ConstantinopleBlock int            `json:"constantinopleBlock"`
	PetersburgBlock     int            `json:"petersburgBlock"`
	IstanbulBlock       int            `json:"istanbulBlock"`
	MuirGlacierBlock    int            `json:"muirGlacierBlock"`
	BerlinBlock         int            `json:"berlinBlock"`
	LondonBlock         int            `json:"londonBlock"`
	Clique              CliqueConfig   `json:"clique"`
	Arbitrum            ArbitrumParams `json:"arbitrum"`
}

type CliqueConfig struct {
	Period int `json:"period"`
	Epoch  int `json:"epoch"`
}

type ArbitrumParams struct {
	EnableArbOS               bool   `json:"EnableArbOS"`
	AllowDebugPrecompiles     bool   `json:"AllowDebugPrecompiles"`
	DataAvailabilityCommittee bool   `json:"DataAvailabilityCommittee"`
	InitialArbOSVersion       int    `json:"InitialArbOSVersion"`
	InitialChainOwner         string `json:"InitialChainOwner"`
	GenesisBlockNum           int    `json:"GenesisBlockNum"`
	MaxCodeSize               int    `json:"MaxCodeSize"`
	MaxInitCodeSize           int    `json:"MaxInitCodeSize"`
}

// NewChainConfig builds the genesis configuration for a new Orbit chain. The
// DataAvailabilityCommittee flag stays false: external DA provider chains do
// not run an AnyTrust committee.
func NewChainConfig(chainID uint64, owner common.Address) ChainConfig {
	return ChainConfig{
		ChainID:        chainID,
		DAOForkSupport: true,
		Clique:         CliqueConfig{Period: 0, Epoch: 0},
		Arbitrum: ArbitrumParams{
			EnableArbOS:               true,
			AllowDebugPrecompiles:     false,
			DataAvailabilityCommittee: false,
			InitialArbOSVersion:       DefaultArbOSVersion,
			InitialChainOwner:         owner.Hex(),
			GenesisBlockNum:           0,
			MaxCodeSize:               24576,
			MaxInitCodeSize:           49152,
		},
	}
}

// JSON serializes the chain config to the compact string form the factory
// contract stores on-chain.
func (c ChainConfig) JSON() (string, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal chain config: %w", err)
	}
	return string(data), nil
}
