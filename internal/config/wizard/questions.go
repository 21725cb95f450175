package wizard

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/arclabs/arcnode/internal/config"
)

const endpointCustom = "custom"

// runEndpointGroup prompts for the RPC endpoint. Default: the public devnet
// endpoint.
func runEndpointGroup(ctx context.Context, answers *InstallAnswers) error {
	choice := config.DefaultRPCURL

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("RPC Endpoint").
				Description("Solana RPC endpoint the node will use").
				Options(
					huh.NewOption("Solana Devnet (default)", config.DefaultRPCURL),
					huh.NewOption("Custom endpoint", endpointCustom),
				).
				Value(&choice),
		).Title("Environment"),
	).RunWithContext(ctx)
	if err != nil {
		return err
	}

	if choice != endpointCustom {
		answers.RPCURL = choice
		return nil
	}

	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Custom RPC URL").
				Placeholder("https://my-rpc.example.com").
				Value(&answers.RPCURL).
				Validate(validateRPCURL),
		).Title("Environment"),
	).RunWithContext(ctx)
	if err != nil {
		return err
	}

	answers.RPCURL = strings.TrimSpace(answers.RPCURL)
	return nil
}

// ConfirmResume asks whether to resume a previously failed install from the
// recorded step or discard progress and restart. Default: resume.
func ConfirmResume(ctx context.Context, failedPhase string) (bool, error) {
	resume := true

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("A previous install failed at the %s step", failedPhase)).
				Description("Resume from there? Choosing no discards progress and restarts from the beginning.").
				Affirmative("Resume").
				Negative("Restart").
				Value(&resume),
		).Title("Resume"),
	).RunWithContext(ctx)
	if err != nil {
		return false, err
	}
	return resume, nil
}

// ConfirmResourceOverride asks whether to continue on a host below the
// recommended RAM/disk minimums. Default: abort.
func ConfirmResourceOverride(ctx context.Context, summary string) (bool, error) {
	proceed := false

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Host below recommended resources").
				Description(summary + "\nContinue anyway?").
				Affirmative("Continue").
				Negative("Abort").
				Value(&proceed),
		).Title("Resources"),
	).RunWithContext(ctx)
	if err != nil {
		return false, err
	}
	return proceed, nil
}

// validateRPCURL validates a custom RPC endpoint.
func validateRPCURL(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errRPCURLRequired
	}
	u, err := url.Parse(s)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return errRPCURLInvalid
	}
	return nil
}
