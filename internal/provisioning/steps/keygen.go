package steps

import (
	"fmt"
	"os"

	"github.com/arclabs/arcnode/internal/provisioning"
	"github.com/arclabs/arcnode/internal/workspace"
)

// Keygen generates the node and callback keypairs and the node offset.
// Existing key material is never overwritten; the persisted offset is
// reloaded instead of regenerated so resumed runs keep the identifier used
// in any earlier on-chain submission.
type Keygen struct{}

// NewKeygen creates the keygen step.
func NewKeygen() *Keygen { return &Keygen{} }

// Phase implements provisioning.Step.
func (s *Keygen) Phase() provisioning.Phase { return provisioning.PhaseKeygen }

// Run implements provisioning.Step.
func (s *Keygen) Run(ctx *provisioning.Context) error {
	for _, path := range []string{ctx.Workspace.NodeKeypairPath(), ctx.Workspace.CallbackKeypairPath()} {
		if _, err := os.Stat(path); err == nil {
			provisioning.LogStepSkipped(ctx.Observer, s.Phase(), path+" already present")
			continue
		}
		ctx.Observer.Printf("Generating keypair %s...", path)
		if err := ctx.Chain.GenerateKeypair(ctx, path); err != nil {
			return fmt.Errorf("failed to generate keypair %s: %w", path, err)
		}
	}

	offset, found, err := ctx.Workspace.LoadOffset()
	if err != nil {
		return err
	}
	if !found {
		offset, err = workspace.GenerateOffset()
		if err != nil {
			return err
		}
		if err := ctx.Workspace.SaveOffset(offset); err != nil {
			return err
		}
		ctx.Observer.Printf("Generated node offset %d", offset)
	} else {
		provisioning.LogStepSkipped(ctx.Observer, s.Phase(), "node offset already generated")
	}
	ctx.Env.Offset = offset

	return nil
}

// Recovery implements provisioning.Step.
func (s *Keygen) Recovery(ctx *provisioning.Context) []string {
	return []string{
		"solana-keygen new --no-bip39-passphrase -o " + ctx.Workspace.NodeKeypairPath(),
		"solana-keygen new --no-bip39-passphrase -o " + ctx.Workspace.CallbackKeypairPath(),
	}
}
