// Package installer implements the DependencyInstaller interface by running
// each dependency's installer command through the shell.
package installer

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/arclabs/arcnode/internal/provisioning"
)

// lookPath reports whether a binary is on PATH. Swapped in tests.
var lookPath = exec.LookPath

// runShell executes an installer command line. Swapped in tests.
var runShell = func(ctx context.Context, command string) error {
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Shell installs dependencies with their published installer commands.
type Shell struct{}

// NewShell creates a shell-backed dependency installer.
func NewShell() *Shell {
	return &Shell{}
}

// Installed implements provisioning.DependencyInstaller.
func (s *Shell) Installed(_ context.Context, dep provisioning.Dependency) (bool, error) {
	if _, err := lookPath(dep.Name); err != nil {
		return false, nil
	}
	return true, nil
}

// Install implements provisioning.DependencyInstaller. Installer output goes
// straight to the operator's terminal.
func (s *Shell) Install(ctx context.Context, dep provisioning.Dependency) error {
	if dep.InstallHint == "" {
		return fmt.Errorf("no installer command known for %s", dep.Name)
	}
	if err := runShell(ctx, dep.InstallHint); err != nil {
		return fmt.Errorf("installer for %s exited with error: %w", dep.Name, err)
	}

	if _, err := lookPath(dep.Name); err != nil {
		return fmt.Errorf("%s still not on PATH after install", dep.Name)
	}
	return nil
}
