package commands

import (
	"github.com/spf13/cobra"

	"github.com/arclabs/arcnode/cmd/arcnode/handlers"
)

// Start returns the command that starts the node container.
func Start() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the node container",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Start(cmd.Context(), workspaceFlag(cmd))
		},
	}
}

// Stop returns the command that stops the node container.
func Stop() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the node container",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Stop(cmd.Context(), workspaceFlag(cmd))
		},
	}
}

// Restart returns the command that restarts the node container.
func Restart() *cobra.Command {
	return &cobra.Command{
		Use:   "restart",
		Short: "Restart the node container",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Restart(cmd.Context(), workspaceFlag(cmd))
		},
	}
}

// Logs returns the command that shows node container logs.
//
// Flags:
//
//	--follow, -f: Stream logs until interrupted
//	--tail, -n: Number of trailing lines to show (default 100)
func Logs() *cobra.Command {
	var (
		follow bool
		tail   int
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show node container logs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Logs(cmd.Context(), handlers.LogsOptions{
				Workspace: workspaceFlag(cmd),
				Follow:    follow,
				Tail:      tail,
			})
		},
	}

	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Stream logs until interrupted")
	cmd.Flags().IntVarP(&tail, "tail", "n", 100, "Number of trailing lines to show")

	return cmd
}
