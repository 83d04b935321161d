package rollupcreator

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAddresses() []common.Address {
	addrs := make([]common.Address, 11)
	for i := range addrs {
		addrs[i] = common.BytesToAddress([]byte{byte(i + 1)})
	}
	return addrs
}

func rollupCreatedLog(addrs []common.Address) *types.Log {
	data := make([]byte, 0, 32*9)
	for _, a := range addrs[2:] {
		data = append(data, common.LeftPadBytes(a.Bytes(), 32)...)
	}

	return &types.Log{
		Topics: []common.Hash{
			RollupCreatedTopic,
			common.BytesToHash(addrs[0].Bytes()),
			common.BytesToHash(addrs[1].Bytes()),
		},
		Data: data,
	}
}

func unrelatedLog() *types.Log {
	return &types.Log{
		Topics: []common.Hash{common.HexToHash("0xdeadbeef")},
		Data:   make([]byte, 64),
	}
}

func TestDecodeRollupCreated(t *testing.T) {
	t.Run("decodes all eleven fields", func(t *testing.T) {
		addrs := testAddresses()
		contracts, ok := DecodeRollupCreated(rollupCreatedLog(addrs))
		require.True(t, ok)

		assert.Equal(t, addrs[0], contracts.Rollup)
		assert.Equal(t, addrs[1], contracts.NativeToken)
		assert.Equal(t, addrs[2], contracts.Inbox)
		assert.Equal(t, addrs[3], contracts.Outbox)
		assert.Equal(t, addrs[4], contracts.RollupEventInbox)
		assert.Equal(t, addrs[5], contracts.ChallengeManager)
		assert.Equal(t, addrs[6], contracts.AdminProxy)
		assert.Equal(t, addrs[7], contracts.SequencerInbox)
		assert.Equal(t, addrs[8], contracts.Bridge)
		assert.Equal(t, addrs[9], contracts.UpgradeExecutor)
		assert.Equal(t, addrs[10], contracts.ValidatorWalletCreator)
	})

	t.Run("rejects wrong topic", func(t *testing.T) {
		_, ok := DecodeRollupCreated(unrelatedLog())
		assert.False(t, ok)
	})

	t.Run("rejects short data", func(t *testing.T) {
		log := rollupCreatedLog(testAddresses())
		log.Data = log.Data[:32*8]
		_, ok := DecodeRollupCreated(log)
		assert.False(t, ok)
	})

	t.Run("rejects missing indexed topics", func(t *testing.T) {
		log := rollupCreatedLog(testAddresses())
		log.Topics = log.Topics[:2]
		_, ok := DecodeRollupCreated(log)
		assert.False(t, ok)
	})
}

func TestFindRollupCreated(t *testing.T) {
	t.Run("finds event surrounded by unrelated logs", func(t *testing.T) {
		addrs := testAddresses()
		receipt := &types.Receipt{
			Logs: []*types.Log{unrelatedLog(), rollupCreatedLog(addrs), unrelatedLog()},
		}

		contracts, ok := FindRollupCreated(receipt)
		require.True(t, ok)
		assert.Equal(t, addrs[0], contracts.Rollup)
		assert.Equal(t, addrs[7], contracts.SequencerInbox)
	})

	t.Run("no match leaves contracts empty", func(t *testing.T) {
		receipt := &types.Receipt{Logs: []*types.Log{unrelatedLog(), unrelatedLog()}}

		contracts, ok := FindRollupCreated(receipt)
		assert.False(t, ok)
		assert.Equal(t, CoreContracts{}, contracts)
	})

	t.Run("decoding is deterministic across runs", func(t *testing.T) {
		addrs := testAddresses()
		receipt := &types.Receipt{Logs: []*types.Log{rollupCreatedLog(addrs)}}

		first, ok := FindRollupCreated(receipt)
		require.True(t, ok)
		second, ok := FindRollupCreated(receipt)
		require.True(t, ok)

		assert.Equal(t, first.RoleMap(), second.RoleMap())
	})
}

func TestRoleMap(t *testing.T) {
	addrs := testAddresses()
	contracts, ok := DecodeRollupCreated(rollupCreatedLog(addrs))
	require.True(t, ok)

	roles := contracts.RoleMap()
	assert.Len(t, roles, 11)
	assert.Equal(t, addrs[0].Hex(), roles["rollup"])
	assert.Equal(t, addrs[7].Hex(), roles["sequencer-inbox"])
	assert.Equal(t, addrs[10].Hex(), roles["validator-wallet-creator"])
}
