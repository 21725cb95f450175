package steps

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/arclabs/arcnode/internal/provisioning"
	"github.com/arclabs/arcnode/internal/workspace"
)

// testObserver records events and messages for assertions.
type testObserver struct {
	messages []string
	events   []provisioning.Event
}

func (o *testObserver) Printf(format string, v ...interface{}) {
	o.messages = append(o.messages, fmt.Sprintf(format, v...))
}

func (o *testObserver) Event(event provisioning.Event) {
	o.events = append(o.events, event)
}

func (o *testObserver) skipped() int {
	n := 0
	for _, e := range o.events {
		if e.Type == provisioning.EventStepSkipped {
			n++
		}
	}
	return n
}

// fakeInstaller implements provisioning.DependencyInstaller.
type fakeInstaller struct {
	present    map[string]bool
	installed  []string
	installErr error
	checkErr   error
}

func (f *fakeInstaller) Installed(_ context.Context, dep provisioning.Dependency) (bool, error) {
	if f.checkErr != nil {
		return false, f.checkErr
	}
	return f.present[dep.Name], nil
}

func (f *fakeInstaller) Install(_ context.Context, dep provisioning.Dependency) error {
	if f.installErr != nil {
		return f.installErr
	}
	f.installed = append(f.installed, dep.Name)
	return nil
}

// fakeChain implements provisioning.ChainClient.
type fakeChain struct {
	balances     []float64 // consumed per Balance call; last value repeats
	balanceErr   error
	airdropCalls int
	airdropErr   error
	generated    []string
	generateErr  error
	registered   bool
	registerErr  error
	checkRegErr  error
	registration *provisioning.NodeRegistration
	active       bool
	activeErr    error
}

func (f *fakeChain) GenerateKeypair(_ context.Context, path string) error {
	if f.generateErr != nil {
		return f.generateErr
	}
	f.generated = append(f.generated, path)
	return os.WriteFile(path, []byte("[0]"), 0600)
}

func (f *fakeChain) Balance(_ context.Context, _ string) (float64, error) {
	if f.balanceErr != nil {
		return 0, f.balanceErr
	}
	if len(f.balances) == 0 {
		return 0, nil
	}
	balance := f.balances[0]
	if len(f.balances) > 1 {
		f.balances = f.balances[1:]
	}
	return balance, nil
}

func (f *fakeChain) Airdrop(_ context.Context, _ string, _ float64) error {
	f.airdropCalls++
	return f.airdropErr
}

func (f *fakeChain) NodeRegistered(_ context.Context, _ uint64) (bool, error) {
	if f.checkRegErr != nil {
		return false, f.checkRegErr
	}
	return f.registered, nil
}

func (f *fakeChain) RegisterNode(_ context.Context, reg provisioning.NodeRegistration) error {
	if f.registerErr != nil {
		return f.registerErr
	}
	f.registration = &reg
	f.registered = true
	return nil
}

func (f *fakeChain) NodeActive(_ context.Context, _ uint64) (bool, error) {
	if f.activeErr != nil {
		return false, f.activeErr
	}
	return f.active, nil
}

// fakeRuntime implements provisioning.ContainerRuntime.
type fakeRuntime struct {
	exists     bool
	existsErr  error
	state      string
	stateErr   error
	pulled     []string
	pullErr    error
	ran        *provisioning.ContainerSpec
	runErr     error
	started    []string
	startErr   error
	stopped    []string
	restarted  []string
	logsCalled bool
}

func (f *fakeRuntime) Pull(_ context.Context, image string) error {
	if f.pullErr != nil {
		return f.pullErr
	}
	f.pulled = append(f.pulled, image)
	return nil
}

func (f *fakeRuntime) Exists(_ context.Context, _ string) (bool, error) {
	return f.exists, f.existsErr
}

func (f *fakeRuntime) Run(_ context.Context, spec provisioning.ContainerSpec) error {
	if f.runErr != nil {
		return f.runErr
	}
	f.ran = &spec
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
	f.stopped = append(f.stopped, name)
	f.state = "exited"
	return nil
}

func (f *fakeRuntime) Restart(_ context.Context, name string) error {
	f.restarted = append(f.restarted, name)
	f.state = "running"
	return nil
}

func (f *fakeRuntime) State(_ context.Context, _ string) (string, error) {
	return f.state, f.stateErr
}

func (f *fakeRuntime) Logs(_ context.Context, _ string, _ bool, _ int) error {
	f.logsCalled = true
	return nil
}

// stepContext builds a pipeline context around fakes and a temp workspace.
func stepContext(t *testing.T, chain *fakeChain, runtime *fakeRuntime) (*provisioning.Context, *testObserver) {
	t.Helper()
	observer := &testObserver{}
	return &provisioning.Context{
		Context:    context.Background(),
		Workspace:  &workspace.Workspace{Dir: t.TempDir()},
		Env:        &provisioning.Environment{RPCURL: "https://api.devnet.solana.com", Cluster: "devnet"},
		Chain:      chain,
		Containers: runtime,
		Observer:   observer,
	}, observer
}
