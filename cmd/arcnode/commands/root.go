// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/arclabs/arcnode/cmd/arcnode/handlers"
)

// Root returns the root command for the arcnode CLI.
//
// Running arcnode without a subcommand is equivalent to `arcnode install`.
func Root() *cobra.Command {
	var workspaceDir string

	cmd := &cobra.Command{
		Use:   "arcnode",
		Short: "Provision and manage an Arcium node",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Install(cmd.Context(), handlers.InstallOptions{
				Workspace: workspaceDir,
			})
		},
	}

	cmd.PersistentFlags().StringVarP(&workspaceDir, "workspace", "w", "",
		"Workspace directory (default: $ARCNODE_HOME or ~/.arcnode)")

	// Core commands
	cmd.AddCommand(Install())
	cmd.AddCommand(Start())
	cmd.AddCommand(Stop())
	cmd.AddCommand(Restart())
	cmd.AddCommand(Status())
	cmd.AddCommand(Info())
	cmd.AddCommand(Active())
	cmd.AddCommand(Logs())

	// Utility commands
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}

// workspaceFlag reads the persistent --workspace flag from any command.
func workspaceFlag(cmd *cobra.Command) string {
	value, _ := cmd.Flags().GetString("workspace")
	return value
}
