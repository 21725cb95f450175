package steps

import (
	"fmt"
	"time"

	"github.com/arclabs/arcnode/internal/config"
	"github.com/arclabs/arcnode/internal/provisioning"
	"github.com/arclabs/arcnode/internal/util/retry"
)

// startupGrace is the fixed delay between container start and the first
// health inspection; the container needs a moment to settle.
const startupGrace = 5 * time.Second

// Verify waits briefly for the deployed container to settle, then checks that
// it is running. The deploy checkpoint is already persisted when this runs,
// so a verification failure is resumable.
type Verify struct {
	// Grace overrides startupGrace; used by tests.
	Grace time.Duration
}

// NewVerify creates the verification step.
func NewVerify() *Verify { return &Verify{Grace: startupGrace} }

// Phase implements provisioning.Step.
func (s *Verify) Phase() provisioning.Phase { return provisioning.PhaseVerify }

// Run implements provisioning.Step.
func (s *Verify) Run(ctx *provisioning.Context) error {
	ctx.Observer.Printf("Waiting %v for the container to settle...", s.Grace)
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(s.Grace):
	}

	err := retry.Until(ctx, func() error {
		state, err := ctx.Containers.State(ctx, config.ContainerName)
		if err != nil {
			return err
		}
		if state != "running" {
			return fmt.Errorf("container state is %q", state)
		}
		return nil
	}, retry.WithMaxAttempts(5), retry.WithInitialDelay(2*time.Second))
	if err != nil {
		return fmt.Errorf("node container is not healthy: %w", err)
	}

	ctx.Observer.Printf("Node container %s is running", config.ContainerName)
	return nil
}

// Recovery implements provisioning.Step.
func (s *Verify) Recovery(_ *provisioning.Context) []string {
	return []string{
		fmt.Sprintf("docker ps -a --filter name=%s", config.ContainerName),
		fmt.Sprintf("docker logs --tail 100 %s  # inspect why the node did not come up", config.ContainerName),
	}
}
