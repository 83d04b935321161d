package compose

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/compose-network/orbit-testnet/configs"
	"github.com/compose-network/orbit-testnet/internal/infra/docker"
	"github.com/compose-network/orbit-testnet/internal/infra/filesystem/json"
)

var CMD = &cobra.Command{
	Use:   "compose",
	Short: "Generate and manage the docker compose stack for a deployed chain",
	RunE: func(cmd *cobra.Command, args []string) error {
		slog.Info("starting compose command. Validating config", slog.Any("config", configs.Values.Compose))

		if err := configs.Values.Compose.Validate(); err != nil {
			return err
		}

		generator := NewGenerator(json.NewReader())

		model, err := generator.Generate(configs.Values.Compose)
		if err != nil {
			return fmt.Errorf("compose generation failed: %w", err)
		}

		if err := generator.Write(model, configs.Values.Compose.OutputPath); err != nil {
			return err
		}

		slog.Info("compose file generated successfully", slog.String("path", configs.Values.Compose.OutputPath))

		return nil
	},
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Pull images and start the stack",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := configs.Values.Compose

		client, err := docker.New()
		if err != nil {
			return err
		}
		defer client.Close()

		for _, image := range []string{cfg.NodeImage, cfg.ServerImage} {
			if err := client.EnsureImage(cmd.Context(), image); err != nil {
				return fmt.Errorf("failed to ensure image %s: %w", image, err)
			}
		}

		if err := docker.ComposeUp(cmd.Context(), cfg.OutputPath); err != nil {
			return fmt.Errorf("compose up failed: %w", err)
		}

		slog.Info("stack started", slog.String("compose_file", cfg.OutputPath))

		return nil
	},
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Stop the stack",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := configs.Values.Compose

		removeVolumes, err := cmd.Flags().GetBool("volumes")
		if err != nil {
			return err
		}

		if err := docker.ComposeDown(cmd.Context(), cfg.OutputPath, removeVolumes); err != nil {
			return fmt.Errorf("compose down failed: %w", err)
		}

		slog.Info("stack stopped", slog.String("compose_file", cfg.OutputPath))

		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stack's container status",
	RunE: func(cmd *cobra.Command, args []string) error {
		return docker.ComposePS(cmd.Context(), configs.Values.Compose.OutputPath)
	},
}
