package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/arclabs/arcnode/internal/config"
	"github.com/arclabs/arcnode/internal/provisioning"
	"github.com/arclabs/arcnode/internal/provisioning/steps"
	"github.com/arclabs/arcnode/internal/util/sysinfo"
	"github.com/arclabs/arcnode/internal/workspace"
)

// InstallOptions configures the install handler.
type InstallOptions struct {
	// Workspace overrides the workspace directory.
	Workspace string

	// Profile is an optional YAML install profile for non-interactive runs.
	Profile string

	// AssumeYes takes the documented default for every prompt.
	AssumeYes bool
}

// newInstallPipeline assembles the installation pipeline - replaced in tests.
var newInstallPipeline = steps.NewInstallPipeline

// Install runs the resumable installation workflow.
//
// The workflow:
//  1. Checks prerequisite tools and host resources (fatal on failure; nothing
//     stateful has happened yet, so no checkpoint is written).
//  2. Loads persisted progress; a failed marker offers resume-vs-restart.
//  3. Establishes the environment config (RPC endpoint, node offset),
//     reusing persisted values so resumed runs never re-prompt and never
//     regenerate an identifier already used on-chain.
//  4. Runs the step pipeline from the planned starting point. Each step
//     checkpoint is persisted; a failure prints manual recovery commands and
//     exits non-zero.
func Install(ctx context.Context, opts InstallOptions) error {
	ws, err := resolveWorkspace(opts.Workspace)
	if err != nil {
		return err
	}
	if err := ws.Ensure(); err != nil {
		return err
	}

	profile, err := loadInstallProfile(opts.Profile)
	if err != nil {
		return err
	}

	if err := checkPrerequisites(); err != nil {
		return err
	}

	if err := checkResources(ctx, ws, profile, opts.AssumeYes); err != nil {
		return err
	}

	marker, err := ws.LoadProgress()
	if err != nil {
		return err
	}
	marker, err = resolveResume(ctx, ws, marker, opts.AssumeYes)
	if err != nil {
		return err
	}

	env, err := establishEnvironment(ctx, ws, profile, opts)
	if err != nil {
		return err
	}

	pipeline := newInstallPipeline(profile)
	startAt, err := pipeline.Plan(marker)
	if err != nil {
		return err
	}

	pctx := provisioning.NewContext(ctx, ws, env,
		newDependencyInstaller(), newChainClient(env.RPCURL), newContainerRuntime())

	if err := pipeline.Run(pctx, startAt); err != nil {
		var stepErr *provisioning.StepError
		if errors.As(err, &stepErr) {
			fmt.Println()
			fmt.Print(provisioning.FormatRecovery(stepErr.Phase, stepErr.Recovery))
		}
		return err
	}

	printInstallSuccess(ws, env)
	return nil
}

// loadInstallProfile loads the profile file, or the defaults when none given.
func loadInstallProfile(path string) (*config.InstallProfile, error) {
	if path == "" {
		return config.DefaultProfile(), nil
	}
	profile, err := config.LoadProfile(path)
	if err != nil {
		return nil, err
	}
	log.Printf("Using install profile: %s", path)
	return profile, nil
}

// checkPrerequisites verifies required client tools are available. Tools the
// pipeline can install itself are only reported, not required.
func checkPrerequisites() error {
	log.Println("Checking prerequisites...")
	results := checkDefaultPrereqs()

	for _, r := range results.Results {
		if r.Found {
			version := r.Version
			if version == "" {
				version = "unknown version"
			}
			log.Printf("  Found %s (%s)", r.Tool.Name, version)
		}
	}

	if err := results.Error(); err != nil {
		return fmt.Errorf("prerequisites check failed: %w", err)
	}
	return nil
}

// checkResources probes host RAM/disk and asks for an override below the
// recommended minimums. Default answer: abort.
func checkResources(ctx context.Context, ws *workspace.Workspace, profile *config.InstallProfile, assumeYes bool) error {
	if profile.SkipResourceCheck {
		return nil
	}

	res, err := probeResources(ws.Dir)
	if err != nil {
		log.Printf("Could not probe host resources (%v); continuing", err)
		return nil
	}
	if res.Sufficient() {
		return nil
	}

	summary := fmt.Sprintf("Host has %.0f GiB RAM and %.0f GiB free disk; recommended minimums are %d GiB RAM and %d GiB disk.",
		res.RAMGiB, res.DiskGiB, sysinfo.MinRAMGiB, sysinfo.MinDiskGiB)

	if assumeYes || !isInteractiveTTY() {
		return fmt.Errorf("%s Aborting; set skipResourceCheck in the install profile to override", summary)
	}

	proceed, err := confirmResourceOverride(ctx, summary)
	if err != nil {
		return fmt.Errorf("failed to prompt for resource override: %w", err)
	}
	if !proceed {
		return fmt.Errorf("aborted: %s", summary)
	}
	return nil
}

// resolveResume handles a leftover failure marker: interactive runs choose
// between resuming at the failed step and restarting from scratch (default:
// resume); non-interactive runs always resume. Restart discards the progress
// marker only - the environment config is preserved.
func resolveResume(ctx context.Context, ws *workspace.Workspace, marker string, assumeYes bool) (string, error) {
	cp, err := provisioning.ParseMarker(marker)
	if err != nil {
		return "", err
	}
	if cp == nil {
		return marker, nil
	}

	if !cp.Failed {
		log.Printf("Resuming after completed %s step", cp.Phase)
		return marker, nil
	}

	resume := true
	if !assumeYes && isInteractiveTTY() {
		resume, err = confirmResume(ctx, cp.Phase.String())
		if err != nil {
			return "", fmt.Errorf("failed to prompt for resume: %w", err)
		}
	}

	if !resume {
		if err := ws.ClearProgress(); err != nil {
			return "", err
		}
		log.Println("Discarded previous progress; restarting from the beginning")
		return workspace.ProgressStart, nil
	}

	log.Printf("Resuming at the failed %s step", cp.Phase)
	return marker, nil
}

// establishEnvironment loads or chooses the environment config. Persisted
// values always win so a resumed run never re-prompts and the node offset is
// never regenerated after it has been used on-chain.
func establishEnvironment(ctx context.Context, ws *workspace.Workspace, profile *config.InstallProfile, opts InstallOptions) (*provisioning.Environment, error) {
	rpcURL, err := chooseRPCURL(ctx, ws, profile, opts)
	if err != nil {
		return nil, err
	}

	offset, _, err := ws.LoadOffset()
	if err != nil {
		return nil, err
	}

	return &provisioning.Environment{
		RPCURL:  rpcURL,
		WSSURL:  config.DeriveWSSURL(rpcURL),
		Offset:  offset,
		Cluster: profile.Cluster,
	}, nil
}

// chooseRPCURL returns the persisted endpoint if one exists; otherwise it
// takes the profile value, or prompts, or falls back to the default, and
// persists the choice.
func chooseRPCURL(ctx context.Context, ws *workspace.Workspace, profile *config.InstallProfile, opts InstallOptions) (string, error) {
	if fileExists(ws.Path(workspace.RPCFile)) {
		return ws.LoadRPCURL()
	}

	rpcURL := config.DefaultRPCURL
	switch {
	case opts.Profile != "":
		rpcURL = profile.RPCURL
	case !opts.AssumeYes && isInteractiveTTY():
		answers, err := runInstallWizard(ctx)
		if err != nil {
			return "", fmt.Errorf("wizard canceled: %w", err)
		}
		rpcURL = answers.RPCURL
	}

	if err := ws.SaveRPCURL(rpcURL); err != nil {
		return "", err
	}
	return rpcURL, nil
}

// printInstallSuccess outputs completion message and next steps for the operator.
func printInstallSuccess(ws *workspace.Workspace, env *provisioning.Environment) {
	fmt.Println()
	fmt.Println("Node installed and running!")
	fmt.Println()
	fmt.Printf("  Workspace: %s\n", ws.Dir)
	fmt.Printf("  Offset:    %d\n", env.Offset)
	fmt.Printf("  RPC:       %s\n", env.RPCURL)
	fmt.Println()
	fmt.Println("Next Steps")
	fmt.Println("----------")
	fmt.Println("  arcnode status   # installation and container state")
	fmt.Println("  arcnode active   # on-chain activation check")
	fmt.Println("  arcnode logs -f  # follow node logs")
	fmt.Println()
}

// fileExists checks if a file exists - replaced in tests.
var fileExists = func(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
