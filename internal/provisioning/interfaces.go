// Package provisioning implements the resumable installation pipeline for an
// Arcium node.
//
// The pipeline is a fixed, strictly sequential list of steps. After every
// successful step a completion marker is persisted; a failed step persists a
// failure marker so the next invocation can resume at the failed step instead
// of starting over. Leaf actions (package installs, chain calls, container
// operations) sit behind small interfaces so the sequencing logic is testable
// with fakes.
package provisioning

import "context"

// Step is one phase of the installation pipeline.
type Step interface {
	// Phase returns the pipeline phase this step implements.
	Phase() Phase

	// Run executes the step. Steps are idempotent by inspection: they check
	// whether their effect already exists and skip without change if so.
	Run(ctx *Context) error

	// Recovery returns the manual CLI-equivalent commands an operator can run
	// to perform or repair this step by hand after a failure. Commands name
	// the actual workspace paths, so the context is required.
	Recovery(ctx *Context) []string
}

// Dependency describes an external tool the node host requires.
type Dependency struct {
	// Name is the binary name to look for in PATH.
	Name string

	// Description explains what the tool is used for.
	Description string

	// InstallHint is the manual installation command or URL.
	InstallHint string
}

// DependencyInstaller installs host dependencies.
// Implemented by internal/platform/installer.
type DependencyInstaller interface {
	// Installed reports whether the dependency is already present.
	Installed(ctx context.Context, dep Dependency) (bool, error)

	// Install installs the dependency. Non-zero installer exit is an error.
	Install(ctx context.Context, dep Dependency) error
}

// NodeRegistration carries everything the on-chain registration needs.
type NodeRegistration struct {
	Offset          uint64
	NodeKeypair     string // path to the node identity keypair
	CallbackKeypair string // path to the callback authority keypair
	RPCURL          string
}

// ChainClient performs Solana and Arcium operations.
// Implemented by internal/platform/chain.
type ChainClient interface {
	// GenerateKeypair writes a fresh keypair to path.
	GenerateKeypair(ctx context.Context, path string) error

	// Balance returns the SOL balance of the keypair's account.
	Balance(ctx context.Context, keypairPath string) (float64, error)

	// Airdrop requests devnet funds for the keypair's account. Faucet
	// rate-limiting surfaces as an error; the caller checkpoints and the
	// operator funds manually.
	Airdrop(ctx context.Context, keypairPath string, sol float64) error

	// NodeRegistered reports whether accounts for the offset already exist.
	NodeRegistered(ctx context.Context, offset uint64) (bool, error)

	// RegisterNode creates the node's on-chain accounts.
	RegisterNode(ctx context.Context, reg NodeRegistration) error

	// NodeActive reports whether the node is active in the current epoch.
	NodeActive(ctx context.Context, offset uint64) (bool, error)
}

// ContainerSpec describes the node container to deploy.
type ContainerSpec struct {
	Name       string
	Image      string
	ConfigPath string   // host path of the rendered node config
	KeyPaths   []string // host paths of keypair files mounted read-only
	Port       int      // published listen port
}

// ContainerRuntime manages the node container.
// Implemented by internal/platform/docker.
type ContainerRuntime interface {
	// Pull fetches the image.
	Pull(ctx context.Context, image string) error

	// Exists reports whether a container with the given name exists,
	// running or not.
	Exists(ctx context.Context, name string) (bool, error)

	// Run creates and starts the container.
	Run(ctx context.Context, spec ContainerSpec) error

	// Start starts an existing stopped container.
	Start(ctx context.Context, name string) error

	// Stop stops a running container.
	Stop(ctx context.Context, name string) error

	// Restart restarts a container.
	Restart(ctx context.Context, name string) error

	// State returns the container state ("running", "exited", ...).
	State(ctx context.Context, name string) (string, error)

	// Logs streams container logs to stdout.
	Logs(ctx context.Context, name string, follow bool, tail int) error
}
