package commands

import (
	"github.com/spf13/cobra"

	"github.com/arclabs/arcnode/cmd/arcnode/handlers"
)

// Install returns the command that runs the installation workflow.
//
// The workflow is resumable: each step persists a progress marker, and a
// failed run offers to resume from the failed step on the next invocation.
//
// Flags:
//
//	--config, -c: Path to a YAML install profile for non-interactive installs
//	--yes, -y: Assume the default answer for every prompt
func Install() *cobra.Command {
	var (
		profilePath string
		assumeYes   bool
	)

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install and deploy the node (default command)",
		Long: `Install and deploy an Arcium node.

The installation runs these steps in order:

  1. dependencies - install docker, solana and arcium CLIs
  2. keygen       - generate node and callback keypairs and the node offset
  3. funding      - airdrop SOL to the node account
  4. init         - register the node accounts on-chain
  5. config       - render node-config.toml
  6. deploy       - pull the node image and start the container
  7. verify       - check the container is healthy

Progress is checkpointed in the workspace after every step. If a step
fails, fix the cause (the failure message includes the manual commands)
and re-run install: it resumes at the failed step without repeating
completed ones, and without regenerating the node identity.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Install(cmd.Context(), handlers.InstallOptions{
				Workspace: workspaceFlag(cmd),
				Profile:   profilePath,
				AssumeYes: assumeYes,
			})
		},
	}

	cmd.Flags().StringVarP(&profilePath, "config", "c", "", "YAML install profile for non-interactive installs")
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Assume the default answer for every prompt")

	return cmd
}
