package nodeconfig

import "log/slog"

// OverrideParentChain rewrites the parent chain connection after generation
// when the operator deploys against a parent other than the template target.
// It reports whether anything changed.
func OverrideParentChain(cfg *NodeRunConfig, parentChainID uint64, parentChainRPC string, logger *slog.Logger) bool {
	changed := false

	if parentChainID != 0 && parentChainID != cfg.ParentChain.ID {
		logger.Info("overriding parent chain id", "from", cfg.ParentChain.ID, "to", parentChainID)
		cfg.ParentChain.ID = parentChainID
		changed = true
	}

	if parentChainRPC != "" && parentChainRPC != cfg.ParentChain.Connection.URL {
		logger.Info("overriding parent chain rpc", "to", parentChainRPC)
		cfg.ParentChain.Connection.URL = parentChainRPC
		changed = true
	}

	return changed
}
