package crypto

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	wellKnownKey     = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	wellKnownAddress = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
)

func TestParsePrivateKey(t *testing.T) {
	t.Run("accepts key without prefix", func(t *testing.T) {
		_, err := ParsePrivateKey(wellKnownKey)
		require.NoError(t, err)
	})

	t.Run("accepts key with 0x prefix", func(t *testing.T) {
		_, err := ParsePrivateKey("0x" + wellKnownKey)
		require.NoError(t, err)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := ParsePrivateKey("not-a-key")
		require.Error(t, err)
	})
}

func TestAddressFromPrivateKey(t *testing.T) {
	address, err := AddressFromPrivateKey(wellKnownKey)
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(wellKnownAddress), address)

	prefixed, err := AddressFromPrivateKey("0x" + wellKnownKey)
	require.NoError(t, err)
	assert.Equal(t, address, prefixed)
}
