package provisioning

import (
	"context"

	"github.com/arclabs/arcnode/internal/workspace"
)

// Environment holds the operator-chosen parameters and generated identifiers
// shared by the pipeline steps. It is populated once and must remain stable
// across resumed runs: regenerating the offset after a partial run would
// desynchronize local state from accounts already registered on-chain.
type Environment struct {
	// RPCURL is the Solana RPC endpoint chosen during install.
	RPCURL string

	// WSSURL is the websocket endpoint derived from RPCURL.
	WSSURL string

	// Offset is the node's 10-digit on-chain identifier. Zero until the
	// keygen step has generated and persisted it.
	Offset uint64

	// Cluster is the target network name (e.g. "devnet").
	Cluster string
}

// Context wraps all dependencies and state needed by pipeline steps.
// It is threaded explicitly through each step; there is no ambient state.
type Context struct {
	context.Context

	Workspace *workspace.Workspace
	Env       *Environment

	Installer  DependencyInstaller
	Chain      ChainClient
	Containers ContainerRuntime

	Observer Observer
}

// NewContext creates a pipeline context with a console observer.
func NewContext(
	ctx context.Context,
	ws *workspace.Workspace,
	env *Environment,
	installer DependencyInstaller,
	chain ChainClient,
	containers ContainerRuntime,
) *Context {
	return &Context{
		Context:    ctx,
		Workspace:  ws,
		Env:        env,
		Installer:  installer,
		Chain:      chain,
		Containers: containers,
		Observer:   NewConsoleObserver(),
	}
}
