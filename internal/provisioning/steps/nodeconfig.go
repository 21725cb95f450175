package steps

import (
	"fmt"
	"os"

	"github.com/arclabs/arcnode/internal/config"
	"github.com/arclabs/arcnode/internal/provisioning"
)

// NodeConfig renders the node's TOML configuration into the workspace.
// An existing rendered config is kept as-is so a resume cannot drift from
// what an already-running container was deployed with.
type NodeConfig struct {
	Profile *config.InstallProfile
}

// NewNodeConfig creates the config-rendering step.
func NewNodeConfig(profile *config.InstallProfile) *NodeConfig {
	return &NodeConfig{Profile: profile}
}

// Phase implements provisioning.Step.
func (s *NodeConfig) Phase() provisioning.Phase { return provisioning.PhaseConfig }

// Run implements provisioning.Step.
func (s *NodeConfig) Run(ctx *provisioning.Context) error {
	path := ctx.Workspace.NodeConfigPath()
	if _, err := os.Stat(path); err == nil {
		provisioning.LogStepSkipped(ctx.Observer, s.Phase(), "node config already rendered")
		return nil
	}

	if ctx.Env.Offset == 0 {
		return fmt.Errorf("no node offset available; keygen step must run first")
	}

	cfg := &config.NodeConfig{
		Node: config.NodeSection{
			Offset:        ctx.Env.Offset,
			HardwareClaim: s.Profile.HardwareClaim,
			StartingEpoch: s.Profile.StartingEpoch,
			EndingEpoch:   s.Profile.EndingEpoch,
		},
		Network: config.NetworkSection{
			ListenAddress: s.Profile.ListenAddress,
		},
		Solana: config.SolanaSection{
			RPCURL:     ctx.Env.RPCURL,
			WSSURL:     ctx.Env.WSSURL,
			Cluster:    ctx.Env.Cluster,
			Commitment: s.Profile.Commitment,
		},
	}

	ctx.Observer.Printf("Rendering node config to %s...", path)
	if err := config.WriteNodeConfig(cfg, path); err != nil {
		return err
	}
	return nil
}

// Recovery implements provisioning.Step.
func (s *NodeConfig) Recovery(ctx *provisioning.Context) []string {
	return []string{
		"# Inspect or hand-edit the rendered config:",
		"cat " + ctx.Workspace.NodeConfigPath(),
	}
}
