// Package main is the entry point for the arcnode CLI.
//
// arcnode provisions and manages an Arcium MPC node: it installs host
// dependencies, generates keypairs, funds and registers the node on-chain,
// renders the node configuration, and deploys the node container. The
// installation is resumable: progress is checkpointed to the workspace and
// a failed run picks up at the failed step.
//
// Commands: install (default), start, stop, restart, status, info, active, logs.
//
// For detailed usage information, run:
//
//	arcnode --help
package main

import (
	"fmt"
	"os"

	"github.com/arclabs/arcnode/cmd/arcnode/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
