package rollupcreator

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// RollupCreatedTopic is the signature hash of
//
//	RollupCreated(address indexed rollupAddress, address indexed nativeToken,
//	  address inboxAddress, address outbox, address rollupEventInbox,
//	  address challengeManager, address adminProxy, address sequencerInbox,
//	  address bridge, address upgradeExecutor, address validatorWalletCreator)
var RollupCreatedTopic = common.HexToHash("0xd9bfd3bb3012f0caa103d1ba172692464d2de5c7b75877ce255c72147086a79d")

// positionalFields is the count of non-indexed addresses in the event data.
const positionalFields = 9

// CoreContracts holds the contract addresses recovered from a single
// RollupCreated event.
type CoreContracts struct {
	Rollup                 common.Address
	NativeToken            common.Address
	Inbox                  common.Address
	Outbox                 common.Address
	RollupEventInbox       common.Address
	ChallengeManager       common.Address
	AdminProxy             common.Address
	SequencerInbox         common.Address
	Bridge                 common.Address
	UpgradeExecutor        common.Address
	ValidatorWalletCreator common.Address
}

// RoleMap projects the contracts into role-name keyed addresses, the shape
// persisted in deployment records.
func (c CoreContracts) RoleMap() map[string]string {
	return map[string]string{
		"rollup":                   c.Rollup.Hex(),
		"native-token":             c.NativeToken.Hex(),
		"inbox":                    c.Inbox.Hex(),
		"outbox":                   c.Outbox.Hex(),
		"rollup-event-inbox":       c.RollupEventInbox.Hex(),
		"challenge-manager":        c.ChallengeManager.Hex(),
		"admin-proxy":              c.AdminProxy.Hex(),
		"sequencer-inbox":          c.SequencerInbox.Hex(),
		"bridge":                   c.Bridge.Hex(),
		"upgrade-executor":         c.UpgradeExecutor.Hex(),
		"validator-wallet-creator": c.ValidatorWalletCreator.Hex(),
	}
}

// DecodeRollupCreated attempts to decode a single log entry against the
// RollupCreated schema. The boolean result reports whether the log matched;
// a non-matching log is expected and is not an error.
func DecodeRollupCreated(log *types.Log) (CoreContracts, bool) {
	if len(log.Topics) < 3 || log.Topics[0] != RollupCreatedTopic {
		return CoreContracts{}, false
	}
	if len(log.Data) < 32*positionalFields {
		return CoreContracts{}, false
	}

	return CoreContracts{
		Rollup:                 common.BytesToAddress(log.Topics[1].Bytes()),
		NativeToken:            common.BytesToAddress(log.Topics[2].Bytes()),
		Inbox:                  common.BytesToAddress(log.Data[0:32]),
		Outbox:                 common.BytesToAddress(log.Data[32:64]),
		RollupEventInbox:       common.BytesToAddress(log.Data[64:96]),
		ChallengeManager:       common.BytesToAddress(log.Data[96:128]),
		AdminProxy:             common.BytesToAddress(log.Data[128:160]),
		SequencerInbox:         common.BytesToAddress(log.Data[160:192]),
		Bridge:                 common.BytesToAddress(log.Data[192:224]),
		UpgradeExecutor:        common.BytesToAddress(log.Data[224:256]),
		ValidatorWalletCreator: common.BytesToAddress(log.Data[256:288]),
	}, true
}

// FindRollupCreated scans receipt logs in order and returns the first one
// that decodes under the RollupCreated schema.
func FindRollupCreated(receipt *types.Receipt) (CoreContracts, bool) {
	for _, log := range receipt.Logs {
		if contracts, ok := DecodeRollupCreated(log); ok {
			return contracts, true
		}
	}
	return CoreContracts{}, false
}
