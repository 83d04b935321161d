package nodeconfig

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/compose-network/orbit-testnet/configs"
	"github.com/compose-network/orbit-testnet/internal/deploy/record"
	"github.com/compose-network/orbit-testnet/internal/infra/filesystem/json"
)

var CMD = &cobra.Command{
	Use:   "node-config",
	Short: "Regenerate node configuration from the most recent deployment",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := configs.Values.Deploy

		deploymentsDir := cfg.DeploymentsDir
		if deploymentsDir == "" {
			deploymentsDir = "deployments"
		}
		configDir := cfg.ConfigDir
		if configDir == "" {
			configDir = "config"
		}

		store := record.NewStore(deploymentsDir, json.NewReader(), json.NewWriter())
		rec, _, err := store.LoadLatest()
		if err != nil {
			return err
		}

		generator := NewGenerator(json.NewWriter(), slog.Default())

		runConfig := generator.Generate(rec, cfg.DA)

		parentChainID := cfg.ParentChainID
		if parentChainID == 0 {
			parentChainID = rec.ParentChainID
		}
		OverrideParentChain(runConfig, parentChainID, cfg.ParentChainRPC, slog.Default())

		path, err := generator.Write(runConfig, configDir)
		if err != nil {
			return err
		}

		info, err := ChainInfoFromRecord(rec)
		if err != nil {
			return err
		}
		infoPath, err := generator.WriteChainInfo(info, rec.ChainID, configDir)
		if err != nil {
			return err
		}

		slog.Info("node configuration regenerated",
			slog.Uint64("chain_id", rec.ChainID),
			slog.String("node_config", path),
			slog.String("chain_info", infoPath),
		)

		return nil
	},
}
