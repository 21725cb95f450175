package commands

import (
	"github.com/spf13/cobra"

	"github.com/arclabs/arcnode/cmd/arcnode/handlers"
)

// Status returns the command that shows the node's installation and runtime
// state.
//
// Flags:
//
//	--json: Machine-readable output
//	--watch: Refresh continuously (interactive terminals get a live view)
func Status() *cobra.Command {
	var (
		jsonOutput bool
		watch      bool
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show node installation and container status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Status(cmd.Context(), handlers.StatusOptions{
				Workspace: workspaceFlag(cmd),
				JSON:      jsonOutput,
				Watch:     watch,
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output status as JSON")
	cmd.Flags().BoolVar(&watch, "watch", false, "Refresh status continuously")

	return cmd
}

// Info returns the command that prints the node's persisted configuration.
func Info() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the node's persisted configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Info(cmd.Context(), workspaceFlag(cmd))
		},
	}
}

// Active returns the command that checks whether the node is active in the
// current epoch. Exit code 0 means active.
func Active() *cobra.Command {
	return &cobra.Command{
		Use:   "active",
		Short: "Check whether the node is active on-chain",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Active(cmd.Context(), workspaceFlag(cmd))
		},
	}
}
