package handlers

import (
	"bytes"
	"context"
	"io"
	"os"
	"testing"
	"time"

	"github.com/arclabs/arcnode/internal/config"
	"github.com/arclabs/arcnode/internal/provisioning"
	"github.com/arclabs/arcnode/internal/provisioning/steps"
	"github.com/arclabs/arcnode/internal/util/prerequisites"
	"github.com/arclabs/arcnode/internal/util/sysinfo"
)

// saveAndRestoreFactories saves and restores the handler factory functions.
func saveAndRestoreFactories(t *testing.T) {
	origResolveWorkspace := resolveWorkspace
	origNewChainClient := newChainClient
	origNewContainerRuntime := newContainerRuntime
	origNewDependencyInstaller := newDependencyInstaller
	origCheckDefaultPrereqs := checkDefaultPrereqs
	origProbeResources := probeResources
	origRunInstallWizard := runInstallWizard
	origConfirmResume := confirmResume
	origConfirmResourceOverride := confirmResourceOverride
	origIsInteractiveTTY := isInteractiveTTY
	origNewInstallPipeline := newInstallPipeline
	origFileExists := fileExists

	t.Cleanup(func() {
		resolveWorkspace = origResolveWorkspace
		newChainClient = origNewChainClient
		newContainerRuntime = origNewContainerRuntime
		newDependencyInstaller = origNewDependencyInstaller
		checkDefaultPrereqs = origCheckDefaultPrereqs
		probeResources = origProbeResources
		runInstallWizard = origRunInstallWizard
		confirmResume = origConfirmResume
		confirmResourceOverride = origConfirmResourceOverride
		isInteractiveTTY = origIsInteractiveTTY
		newInstallPipeline = origNewInstallPipeline
		fileExists = origFileExists
	})
}

// captureOutput captures stdout during function execution.
func captureOutput(f func()) string {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	f()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

// fakeInstaller implements provisioning.DependencyInstaller.
type fakeInstaller struct {
	present map[string]bool
}

func (f *fakeInstaller) Installed(_ context.Context, dep provisioning.Dependency) (bool, error) {
	if f.present == nil {
		return true, nil
	}
	return f.present[dep.Name], nil
}

func (f *fakeInstaller) Install(_ context.Context, _ provisioning.Dependency) error {
	return nil
}

// fakeChain implements provisioning.ChainClient.
type fakeChain struct {
	balance    float64
	generated  []string
	airdropErr error
	registered bool
	active     bool
	activeErr  error
}

func (f *fakeChain) GenerateKeypair(_ context.Context, path string) error {
	f.generated = append(f.generated, path)
	return os.WriteFile(path, []byte("[0]"), 0600)
}

func (f *fakeChain) Balance(_ context.Context, _ string) (float64, error) {
	return f.balance, nil
}

func (f *fakeChain) Airdrop(_ context.Context, _ string, sol float64) error {
	if f.airdropErr != nil {
		return f.airdropErr
	}
	f.balance += sol
	return nil
}

func (f *fakeChain) NodeRegistered(_ context.Context, _ uint64) (bool, error) {
	return f.registered, nil
}

func (f *fakeChain) RegisterNode(_ context.Context, _ provisioning.NodeRegistration) error {
	f.registered = true
	return nil
}

func (f *fakeChain) NodeActive(_ context.Context, _ uint64) (bool, error) {
	return f.active, f.activeErr
}

// fakeRuntime implements provisioning.ContainerRuntime.
type fakeRuntime struct {
	exists     bool
	existsErr  error
	state      string
	stateErr   error
	started    []string
	stopped    []string
	restarted  []string
	logsArgs   []interface{}
	startErr   error
	stopErr    error
	restartErr error
}

func (f *fakeRuntime) Pull(_ context.Context, _ string) error { return nil }

func (f *fakeRuntime) Exists(_ context.Context, _ string) (bool, error) {
	return f.exists, f.existsErr
}

func (f *fakeRuntime) Run(_ context.Context, _ provisioning.ContainerSpec) error {
	f.exists = true
	f.state = "running"
	return nil
}

func (f *fakeRuntime) Start(_ context.Context, name string) error {
	if f.startErr != nil {
		return f.startErr
	}
	f.started = append(f.started, name)
	f.state = "running"
	return nil
}

func (f *fakeRuntime) Stop(_ context.Context, name string) error {
	if f.stopErr != nil {
		return f.stopErr
	}
	f.stopped = append(f.stopped, name)
	f.state = "exited"
	return nil
}

func (f *fakeRuntime) Restart(_ context.Context, name string) error {
	if f.restartErr != nil {
		return f.restartErr
	}
	f.restarted = append(f.restarted, name)
	f.state = "running"
	return nil
}

func (f *fakeRuntime) State(_ context.Context, _ string) (string, error) {
	return f.state, f.stateErr
}

func (f *fakeRuntime) Logs(_ context.Context, name string, follow bool, tail int) error {
	f.logsArgs = []interface{}{name, follow, tail}
	return nil
}

// installFakes wires all factories to succeed against the given fakes.
func installFakes(t *testing.T, chain *fakeChain, runtime *fakeRuntime) {
	t.Helper()
	saveAndRestoreFactories(t)

	newChainClient = func(string) provisioning.ChainClient { return chain }
	newContainerRuntime = func() provisioning.ContainerRuntime { return runtime }
	newDependencyInstaller = func() provisioning.DependencyInstaller { return &fakeInstaller{} }
	checkDefaultPrereqs = func() *prerequisites.CheckResults {
		return &prerequisites.CheckResults{}
	}
	probeResources = func(string) (sysinfo.Resources, error) {
		return sysinfo.Resources{RAMGiB: 64, DiskGiB: 500}, nil
	}
	isInteractiveTTY = func() bool { return false }
	newInstallPipeline = func(profile *config.InstallProfile) *provisioning.Pipeline {
		return provisioning.NewPipeline(
			steps.NewDependencies(),
			steps.NewKeygen(),
			steps.NewFunding(),
			steps.NewRegister(),
			steps.NewNodeConfig(profile),
			steps.NewDeploy(""),
			&steps.Verify{Grace: time.Millisecond},
		)
	}
}
