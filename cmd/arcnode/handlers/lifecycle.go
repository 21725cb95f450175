package handlers

import (
	"context"
	"fmt"

	"github.com/arclabs/arcnode/internal/config"
)

// Start starts the node container of an installed workspace.
func Start(ctx context.Context, dir string) error {
	if _, err := openInstalledWorkspace(dir); err != nil {
		return err
	}

	runtime := newContainerRuntime()

	exists, err := runtime.Exists(ctx, config.ContainerName)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("container %s does not exist; run 'arcnode install'", config.ContainerName)
	}

	state, err := runtime.State(ctx, config.ContainerName)
	if err != nil {
		return err
	}
	if state == "running" {
		fmt.Printf("Node container %s is already running\n", config.ContainerName)
		return nil
	}

	if err := runtime.Start(ctx, config.ContainerName); err != nil {
		return err
	}
	fmt.Printf("Node container %s started\n", config.ContainerName)
	return nil
}

// Stop stops the node container.
func Stop(ctx context.Context, dir string) error {
	if _, err := openInstalledWorkspace(dir); err != nil {
		return err
	}

	runtime := newContainerRuntime()

	state, err := runtime.State(ctx, config.ContainerName)
	if err != nil {
		return err
	}
	if state != "running" {
		fmt.Printf("Node container %s is not running (state: %s)\n", config.ContainerName, state)
		return nil
	}

	if err := runtime.Stop(ctx, config.ContainerName); err != nil {
		return err
	}
	fmt.Printf("Node container %s stopped\n", config.ContainerName)
	return nil
}

// Restart restarts the node container.
func Restart(ctx context.Context, dir string) error {
	if _, err := openInstalledWorkspace(dir); err != nil {
		return err
	}

	runtime := newContainerRuntime()
	if err := runtime.Restart(ctx, config.ContainerName); err != nil {
		return err
	}
	fmt.Printf("Node container %s restarted\n", config.ContainerName)
	return nil
}

// LogsOptions configures the logs handler.
type LogsOptions struct {
	Workspace string
	Follow    bool
	Tail      int
}

// Logs streams node container logs to the terminal.
func Logs(ctx context.Context, opts LogsOptions) error {
	if _, err := openInstalledWorkspace(opts.Workspace); err != nil {
		return err
	}

	runtime := newContainerRuntime()
	return runtime.Logs(ctx, config.ContainerName, opts.Follow, opts.Tail)
}
