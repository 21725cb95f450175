// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command definitions
// in the commands package. Handlers are framework-agnostic and can be tested
// independently of the CLI framework; external collaborators are created
// through factory function variables that tests replace with fakes.
package handlers

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/arclabs/arcnode/internal/config/wizard"
	"github.com/arclabs/arcnode/internal/platform/chain"
	"github.com/arclabs/arcnode/internal/platform/docker"
	"github.com/arclabs/arcnode/internal/platform/installer"
	"github.com/arclabs/arcnode/internal/provisioning"
	"github.com/arclabs/arcnode/internal/util/prerequisites"
	"github.com/arclabs/arcnode/internal/util/sysinfo"
	"github.com/arclabs/arcnode/internal/workspace"
)

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// resolveWorkspace locates the workspace directory.
	resolveWorkspace = workspace.Resolve

	// newChainClient creates a CLI-backed chain client.
	newChainClient = func(rpcURL string) provisioning.ChainClient {
		return chain.NewClient(rpcURL)
	}

	// newContainerRuntime creates a docker-backed container runtime.
	newContainerRuntime = func() provisioning.ContainerRuntime {
		return docker.NewRuntime()
	}

	// newDependencyInstaller creates a shell-backed dependency installer.
	newDependencyInstaller = func() provisioning.DependencyInstaller {
		return installer.NewShell()
	}

	// checkDefaultPrereqs runs prerequisite checks.
	checkDefaultPrereqs = prerequisites.CheckDefault

	// probeResources reads host RAM and disk.
	probeResources = sysinfo.Probe

	// runInstallWizard asks the environment questions.
	runInstallWizard = wizard.RunInstallWizard

	// confirmResume asks resume-vs-restart after a failed run.
	confirmResume = wizard.ConfirmResume

	// confirmResourceOverride asks whether to proceed on a weak host.
	confirmResourceOverride = wizard.ConfirmResourceOverride

	// isInteractiveTTY reports whether stdout is a terminal.
	isInteractiveTTY = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}
)

// openInstalledWorkspace resolves the workspace and fails with an explicit
// message when no completed installation is present.
func openInstalledWorkspace(dir string) (*workspace.Workspace, error) {
	ws, err := resolveWorkspace(dir)
	if err != nil {
		return nil, err
	}
	if !ws.Installed() {
		return nil, fmt.Errorf("node is not installed in %s; run 'arcnode install' first", ws.Dir)
	}
	return ws, nil
}

// loadEnvironment reads the persisted environment config of a workspace.
func loadEnvironment(ws *workspace.Workspace) (rpcURL string, offset uint64, offsetFound bool, err error) {
	rpcURL, err = ws.LoadRPCURL()
	if err != nil {
		return "", 0, false, err
	}
	offset, offsetFound, err = ws.LoadOffset()
	if err != nil {
		return "", 0, false, err
	}
	return rpcURL, offset, offsetFound, nil
}
