package steps

import (
	"fmt"

	"github.com/arclabs/arcnode/internal/provisioning"
	"github.com/arclabs/arcnode/internal/workspace"
)

// Register creates the node's on-chain accounts under the persisted offset.
// If accounts for the offset already exist (a resumed run), the step skips.
// An offset collision with a foreign node surfaces as a registration error;
// resolving it is left to the operator, who removes the workspace offset and
// restarts. The step never regenerates the identifier on its own.
type Register struct{}

// NewRegister creates the registration step.
func NewRegister() *Register { return &Register{} }

// Phase implements provisioning.Step.
func (s *Register) Phase() provisioning.Phase { return provisioning.PhaseInit }

// Run implements provisioning.Step.
func (s *Register) Run(ctx *provisioning.Context) error {
	if ctx.Env.Offset == 0 {
		return fmt.Errorf("no node offset available; keygen step must run first")
	}

	registered, err := ctx.Chain.NodeRegistered(ctx, ctx.Env.Offset)
	if err != nil {
		return fmt.Errorf("failed to check registration for offset %d: %w", ctx.Env.Offset, err)
	}
	if registered {
		provisioning.LogStepSkipped(ctx.Observer, s.Phase(),
			fmt.Sprintf("offset %d already registered", ctx.Env.Offset))
		return nil
	}

	ctx.Observer.Printf("Registering node accounts for offset %d...", ctx.Env.Offset)
	reg := provisioning.NodeRegistration{
		Offset:          ctx.Env.Offset,
		NodeKeypair:     ctx.Workspace.NodeKeypairPath(),
		CallbackKeypair: ctx.Workspace.CallbackKeypairPath(),
		RPCURL:          ctx.Env.RPCURL,
	}
	if err := ctx.Chain.RegisterNode(ctx, reg); err != nil {
		return fmt.Errorf("on-chain registration failed for offset %d: %w", ctx.Env.Offset, err)
	}

	return nil
}

// Recovery implements provisioning.Step.
func (s *Register) Recovery(ctx *provisioning.Context) []string {
	offsetFile := ctx.Workspace.Path(workspace.OffsetFile)
	rpcFile := ctx.Workspace.Path(workspace.RPCFile)
	return []string{
		"arcium init-arx-accs --keypair-path " + ctx.Workspace.NodeKeypairPath() + " \\",
		"  --callback-keypair-path " + ctx.Workspace.CallbackKeypairPath() + " \\",
		fmt.Sprintf("  --node-offset $(cat %s) --rpc-url $(cat %s)", offsetFile, rpcFile),
		"# If the offset is already taken by another node, remove",
		"# " + offsetFile + " and restart the install to get a fresh one.",
	}
}
