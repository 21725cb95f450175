// Package wizard provides the interactive prompts of the install workflow.
// Every prompt has a documented default so non-interactive runs (no TTY)
// can proceed without it.
package wizard

import (
	"context"
	"fmt"
)

// InstallAnswers holds the operator's choices from the install prompts.
type InstallAnswers struct {
	// RPCURL is the chosen Solana RPC endpoint.
	RPCURL string
}

// RunInstallWizard asks the environment questions of a fresh install.
// The context is used for cancellation support (Ctrl+C).
func RunInstallWizard(ctx context.Context) (*InstallAnswers, error) {
	answers := &InstallAnswers{}

	if err := runEndpointGroup(ctx, answers); err != nil {
		return nil, fmt.Errorf("rpc endpoint: %w", err)
	}

	return answers, nil
}
