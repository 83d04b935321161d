package deploy

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/spf13/cobra"

	"github.com/compose-network/orbit-testnet/configs"
	"github.com/compose-network/orbit-testnet/internal/deploy/record"
	"github.com/compose-network/orbit-testnet/internal/infra/filesystem/json"
	"github.com/compose-network/orbit-testnet/internal/nodeconfig"
)

var CMD = &cobra.Command{
	Use:   "deploy",
	Short: "Deploy a new Orbit rollup through the RollupCreator factory",
	RunE: func(cmd *cobra.Command, args []string) error {
		slog.Info("starting deploy command. Resolving parameters")

		params, err := ResolveParams(configs.Values.Deploy, slog.Default())
		if err != nil {
			return err
		}

		client, err := ethclient.DialContext(cmd.Context(), params.ParentChainRPC)
		if err != nil {
			return fmt.Errorf("failed to connect to parent chain rpc %s: %w", params.ParentChainRPC, err)
		}
		defer client.Close()

		submitter, err := NewSubmitter(client)
		if err != nil {
			return err
		}

		store := record.NewStore(params.DeploymentsDir, json.NewReader(), json.NewWriter())
		service := NewService(submitter, NewReconciler(client), store)

		rec, path, err := service.Deploy(cmd.Context(), params)
		if err != nil {
			if errors.Is(err, ErrEventNotFound) {
				slog.Warn("deployment submitted but not reconciled", slog.String("record", path))
			}
			return err
		}

		if err := writeNodeArtifacts(rec, params.DA, params.ParentChainID, params.ParentChainRPC, params.ConfigDir); err != nil {
			return err
		}

		slog.Info("deployment completed successfully",
			slog.Uint64("chain_id", rec.ChainID),
			slog.String("chain_name", rec.ChainName),
			slog.String("rollup", rec.Contracts["rollup"]),
			slog.String("record", path),
		)

		return nil
	},
}

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Re-run event decoding for the most recent deployment",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := configs.Values.Deploy
		if cfg.ParentChainRPC == "" {
			return errors.New("deploy.parent-chain-rpc is required (ORBIT_DEPLOY_PARENT_CHAIN_RPC)")
		}

		client, err := ethclient.DialContext(cmd.Context(), cfg.ParentChainRPC)
		if err != nil {
			return fmt.Errorf("failed to connect to parent chain rpc %s: %w", cfg.ParentChainRPC, err)
		}
		defer client.Close()

		deploymentsDir := cfg.DeploymentsDir
		if deploymentsDir == "" {
			deploymentsDir = "deployments"
		}
		configDir := cfg.ConfigDir
		if configDir == "" {
			configDir = "config"
		}

		store := record.NewStore(deploymentsDir, json.NewReader(), json.NewWriter())
		service := NewService(nil, NewReconciler(client), store)

		rec, path, err := service.Reconcile(cmd.Context())
		if err != nil {
			return err
		}

		if err := writeNodeArtifacts(rec, cfg.DA, cfg.ParentChainID, cfg.ParentChainRPC, configDir); err != nil {
			return err
		}

		slog.Info("reconciliation completed successfully",
			slog.Uint64("chain_id", rec.ChainID),
			slog.String("rollup", rec.Contracts["rollup"]),
			slog.String("record", path),
		)

		return nil
	},
}

// writeNodeArtifacts regenerates the node run configuration and chain info
// for a reconciled deployment.
func writeNodeArtifacts(rec *record.DeploymentRecord, da configs.DA, parentChainID uint64, parentChainRPC string, configDir string) error {
	generator := nodeconfig.NewGenerator(json.NewWriter(), slog.Default())

	if parentChainID == 0 {
		parentChainID = rec.ParentChainID
	}

	runConfig := generator.Generate(rec, da)
	nodeconfig.OverrideParentChain(runConfig, parentChainID, parentChainRPC, slog.Default())

	if _, err := generator.Write(runConfig, configDir); err != nil {
		return err
	}

	info, err := nodeconfig.ChainInfoFromRecord(rec)
	if err != nil {
		return err
	}
	if _, err := generator.WriteChainInfo(info, rec.ChainID, configDir); err != nil {
		return err
	}

	return nil
}
