package steps

import (
	"fmt"

	"github.com/arclabs/arcnode/internal/config"
	"github.com/arclabs/arcnode/internal/provisioning"
)

// Deploy pulls the node image and starts the container. An existing container
// is reused: stopped containers are started, running ones are left alone.
type Deploy struct {
	Image string
}

// NewDeploy creates the deploy step.
func NewDeploy(image string) *Deploy {
	if image == "" {
		image = config.DefaultImage
	}
	return &Deploy{Image: image}
}

// Phase implements provisioning.Step.
func (s *Deploy) Phase() provisioning.Phase { return provisioning.PhaseDeploy }

// Run implements provisioning.Step.
func (s *Deploy) Run(ctx *provisioning.Context) error {
	exists, err := ctx.Containers.Exists(ctx, config.ContainerName)
	if err != nil {
		return fmt.Errorf("failed to inspect container: %w", err)
	}

	if exists {
		state, err := ctx.Containers.State(ctx, config.ContainerName)
		if err != nil {
			return fmt.Errorf("failed to read container state: %w", err)
		}
		if state == "running" {
			provisioning.LogStepSkipped(ctx.Observer, s.Phase(), "container already running")
			return nil
		}
		ctx.Observer.Printf("Starting existing container %s...", config.ContainerName)
		if err := ctx.Containers.Start(ctx, config.ContainerName); err != nil {
			return fmt.Errorf("failed to start container: %w", err)
		}
		return nil
	}

	ctx.Observer.Printf("Pulling image %s...", s.Image)
	if err := ctx.Containers.Pull(ctx, s.Image); err != nil {
		return fmt.Errorf("failed to pull image %s: %w", s.Image, err)
	}

	spec := provisioning.ContainerSpec{
		Name:       config.ContainerName,
		Image:      s.Image,
		ConfigPath: ctx.Workspace.NodeConfigPath(),
		KeyPaths: []string{
			ctx.Workspace.NodeKeypairPath(),
			ctx.Workspace.CallbackKeypairPath(),
		},
		Port: config.DefaultListenPort,
	}

	ctx.Observer.Printf("Creating container %s...", config.ContainerName)
	if err := ctx.Containers.Run(ctx, spec); err != nil {
		return fmt.Errorf("failed to start container: %w", err)
	}
	return nil
}

// Recovery implements provisioning.Step.
func (s *Deploy) Recovery(_ *provisioning.Context) []string {
	return []string{
		fmt.Sprintf("docker pull %s", s.Image),
		fmt.Sprintf("docker start %s  # if the container already exists", config.ContainerName),
		fmt.Sprintf("docker rm %s     # to recreate it from scratch", config.ContainerName),
	}
}
