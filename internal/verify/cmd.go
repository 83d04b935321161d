package verify

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/time/rate"

	"github.com/compose-network/orbit-testnet/configs"
	"github.com/compose-network/orbit-testnet/internal/deploy/record"
	"github.com/compose-network/orbit-testnet/internal/infra/filesystem/json"
)

var CMD = &cobra.Command{
	Use:   "verify",
	Short: "Verify the deployed contracts on the parent chain's block explorer",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := configs.Values.Verify

		deploymentsDir := configs.Values.Deploy.DeploymentsDir
		if deploymentsDir == "" {
			deploymentsDir = "deployments"
		}

		store := record.NewStore(deploymentsDir, json.NewReader(), json.NewWriter())
		rec, path, err := store.LoadLatest()
		if err != nil {
			return err
		}
		if !rec.HasContracts() {
			slog.Warn("latest deployment record carries no contract addresses, run 'orbit-testnet deploy reconcile' first",
				slog.String("record", path))
			return nil
		}

		if cfg.APIKey == "" {
			for role, address := range rec.Contracts {
				slog.Info("skipping verification, no explorer api key configured (ORBIT_VERIFY_API_KEY)",
					slog.String("role", role), slog.String("address", address))
			}
			return nil
		}

		slog.Info("verifying deployment contracts",
			slog.Uint64("chain_id", rec.ChainID),
			slog.Int("contracts", len(rec.Contracts)),
		)

		// Free explorer tiers allow a handful of calls per second.
		limiter := rate.NewLimiter(rate.Every(250*time.Millisecond), 1)
		verifier := NewVerifier(NewEtherscanClient(cfg.APIKey, cfg.APIURL, limiter))

		return verifier.VerifyDeployment(cmd.Context(), rec)
	},
}

func init() {
	CMD.Flags().String("api-key", "", "Block explorer API key (empty skips verification)")
	CMD.Flags().String("api-url", "https://api-sepolia.arbiscan.io/api", "Block explorer API URL")

	if err := viper.BindPFlag("verify.api-key", CMD.Flags().Lookup("api-key")); err != nil {
		panic(err)
	}
	if err := viper.BindPFlag("verify.api-url", CMD.Flags().Lookup("api-url")); err != nil {
		panic(err)
	}
}
