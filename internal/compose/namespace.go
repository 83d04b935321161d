package compose

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

const (
	namespacePrefix = "orbit-celestia-"
	namespaceLength = 20
)

// DeriveNamespace maps a chain id to its Celestia blob namespace: the first
// 20 hex characters of sha256 over a prefixed decimal rendering. The same
// chain id always lands in the same namespace, so a restarted stack keeps
// reading the blobs it posted before.
func DeriveNamespace(chainID uint64) string {
	sum := sha256.Sum256([]byte(namespacePrefix + strconv.FormatUint(chainID, 10)))
	return hex.EncodeToString(sum[:])[:namespaceLength]
}
