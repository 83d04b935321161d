package docker

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ComposeUp starts docker compose services in detached mode.
func ComposeUp(ctx context.Context, composeFilePath string, services ...string) error {
	args := append([]string{"up", "-d", "--remove-orphans"}, services...)
	return composeRun(ctx, composeFilePath, args...)
}

// ComposeDown stops docker compose services.
func ComposeDown(ctx context.Context, composeFilePath string, removeVolumes bool) error {
	args := []string{"down"}
	if removeVolumes {
		args = append(args, "-v")
	}
	return composeRun(ctx, composeFilePath, args...)
}

// ComposePS lists docker compose services.
func ComposePS(ctx context.Context, composeFilePath string) error {
	return composeRun(ctx, composeFilePath, "ps", "-a")
}

// composeRun executes a docker compose command against the given file.
func composeRun(ctx context.Context, composeFilePath string, args ...string) error {
	fullArgs := append([]string{"compose", "-f", composeFilePath}, args...)
	cmd := exec.CommandContext(ctx, "docker", fullArgs...)
	cmd.Dir = filepath.Dir(composeFilePath)

	cmd.Env = os.Environ()
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("docker compose %s failed: %w", strings.Join(args, " "), err)
	}

	return nil
}
