// Package steps contains the leaf executors of the installation pipeline.
// Every step checks whether its effect already exists before acting, so
// re-running the whole pipeline after a partial failure is safe.
package steps

import (
	"fmt"

	"github.com/arclabs/arcnode/internal/provisioning"
)

// DefaultDependencies returns the external tools the node host requires.
func DefaultDependencies() []provisioning.Dependency {
	return []provisioning.Dependency{
		{
			Name:        "docker",
			Description: "Runs the node container",
			InstallHint: "curl -fsSL https://get.docker.com | sh",
		},
		{
			Name:        "solana",
			Description: "Solana CLI for balances and airdrops",
			InstallHint: "sh -c \"$(curl -sSfL https://release.anza.xyz/stable/install)\"",
		},
		{
			Name:        "arcium",
			Description: "Arcium CLI for on-chain node registration",
			InstallHint: "curl -fsSL https://arcium.com/install | sh",
		},
	}
}

// Dependencies installs the required host tools. A failure here is fatal and
// not checkpointed: nothing stateful has happened yet.
type Dependencies struct {
	Deps []provisioning.Dependency
}

// NewDependencies creates the dependency step with the default tool set.
func NewDependencies() *Dependencies {
	return &Dependencies{Deps: DefaultDependencies()}
}

// Phase implements provisioning.Step.
func (s *Dependencies) Phase() provisioning.Phase { return provisioning.PhaseDependencies }

// Run implements provisioning.Step.
func (s *Dependencies) Run(ctx *provisioning.Context) error {
	for _, dep := range s.Deps {
		installed, err := ctx.Installer.Installed(ctx, dep)
		if err != nil {
			return fmt.Errorf("failed to check %s: %w", dep.Name, err)
		}
		if installed {
			provisioning.LogStepSkipped(ctx.Observer, s.Phase(), dep.Name+" already installed")
			continue
		}

		ctx.Observer.Printf("Installing %s (%s)...", dep.Name, dep.Description)
		if err := ctx.Installer.Install(ctx, dep); err != nil {
			return fmt.Errorf("failed to install %s: %w", dep.Name, err)
		}
	}
	return nil
}

// Recovery implements provisioning.Step.
func (s *Dependencies) Recovery(_ *provisioning.Context) []string {
	commands := make([]string, 0, len(s.Deps))
	for _, dep := range s.Deps {
		commands = append(commands, dep.InstallHint)
	}
	return commands
}
