package main

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/compose-network/orbit-testnet/configs"
	"github.com/compose-network/orbit-testnet/internal/compose"
	"github.com/compose-network/orbit-testnet/internal/deploy"
	"github.com/compose-network/orbit-testnet/internal/logger"
	"github.com/compose-network/orbit-testnet/internal/nodeconfig"
	"github.com/compose-network/orbit-testnet/internal/verify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const appName = "orbit-testnet"

var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "CLI for deploying Orbit rollup chains with Celestia DA",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.Initialize(slog.LevelDebug)

		viper.SetConfigName("config")
		viper.SetConfigType("yaml")

		if execPath, err := os.Executable(); err == nil {
			execDir := filepath.Dir(execPath)
			viper.AddConfigPath(execDir)
		}
		viper.AddConfigPath(".")
		viper.AddConfigPath("./configs")

		viper.SetEnvPrefix("ORBIT")
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
		viper.AutomaticEnv()

		if err := configs.SetViperDefaults(viper.GetViper()); err != nil {
			const errMsg = "unable to seed configuration defaults"
			slog.With("err", err.Error()).Error(errMsg)
			return errors.Join(err, errors.New(errMsg))
		}

		// Try to read config file, but don't fail if it doesn't exist.
		// Flags and environment variables can provide all necessary configuration.
		if err := viper.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok {
				slog.Debug("no config file found, will rely on flags, env and defaults")
			} else {
				const errMsg = "error reading config file"
				slog.With("err", err.Error()).Error(errMsg)
				return errors.Join(err, errors.New(errMsg))
			}
		} else {
			slog.With("config_file", viper.ConfigFileUsed()).Debug("config file loaded")
		}

		if err := viper.Unmarshal(&configs.Values); err != nil {
			const errMsg = "unable to decode application config"
			slog.With("err", err.Error()).Error(errMsg)
			return errors.Join(err, errors.New(errMsg))
		}

		return nil
	},
}

func main() {
	rootCmd.AddCommand(deploy.CMD)
	rootCmd.AddCommand(nodeconfig.CMD)
	rootCmd.AddCommand(compose.CMD)
	rootCmd.AddCommand(verify.CMD)

	if err := rootCmd.Execute(); err != nil {
		slog.With("err", err.Error()).Error("failed to execute root command")
		os.Exit(1)
	}
}
