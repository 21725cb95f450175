package steps

import (
	"fmt"

	"github.com/arclabs/arcnode/internal/provisioning"
)

// Funding thresholds in SOL. Registration plus fees comfortably fit inside
// one devnet airdrop.
const (
	MinBalanceSOL = 1.0
	AirdropSOL    = 2.0
)

// Funding ensures the node account holds enough SOL to pay for registration.
// An account that is already funded is left untouched. Airdrop failures
// (faucet rate limits, RPC unavailability) are recoverable: the operator
// funds the account manually and resumes.
type Funding struct{}

// NewFunding creates the funding step.
func NewFunding() *Funding { return &Funding{} }

// Phase implements provisioning.Step.
func (s *Funding) Phase() provisioning.Phase { return provisioning.PhaseFunding }

// Run implements provisioning.Step.
func (s *Funding) Run(ctx *provisioning.Context) error {
	keypair := ctx.Workspace.NodeKeypairPath()

	balance, err := ctx.Chain.Balance(ctx, keypair)
	if err != nil {
		return fmt.Errorf("failed to query balance: %w", err)
	}
	if balance >= MinBalanceSOL {
		provisioning.LogStepSkipped(ctx.Observer, s.Phase(),
			fmt.Sprintf("balance %.2f SOL already sufficient", balance))
		return nil
	}

	ctx.Observer.Printf("Requesting %.0f SOL airdrop (balance %.2f SOL)...", AirdropSOL, balance)
	if err := ctx.Chain.Airdrop(ctx, keypair, AirdropSOL); err != nil {
		return fmt.Errorf("airdrop failed: %w", err)
	}

	balance, err = ctx.Chain.Balance(ctx, keypair)
	if err != nil {
		return fmt.Errorf("failed to verify balance after airdrop: %w", err)
	}
	if balance < MinBalanceSOL {
		return fmt.Errorf("balance %.2f SOL still below required %.2f SOL after airdrop",
			balance, MinBalanceSOL)
	}

	return nil
}

// Recovery implements provisioning.Step.
func (s *Funding) Recovery(ctx *provisioning.Context) []string {
	keypair := ctx.Workspace.NodeKeypairPath()
	return []string{
		fmt.Sprintf("solana airdrop %.0f --keypair %s", AirdropSOL, keypair),
		"solana balance --keypair " + keypair,
	}
}
