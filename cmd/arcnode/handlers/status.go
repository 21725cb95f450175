package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/arclabs/arcnode/internal/config"
	"github.com/arclabs/arcnode/internal/ui/tui"
	"github.com/arclabs/arcnode/internal/workspace"
)

// StatusOptions configures the status handler.
type StatusOptions struct {
	Workspace string
	JSON      bool
	Watch     bool
}

// NodeStatus is the machine-readable status document.
type NodeStatus struct {
	Workspace      string `json:"workspace"`
	Installed      bool   `json:"installed"`
	Offset         uint64 `json:"offset,omitempty"`
	RPCURL         string `json:"rpcURL"`
	Cluster        string `json:"cluster,omitempty"`
	ContainerState string `json:"containerState,omitempty"`
	Active         *bool  `json:"active,omitempty"`
}

// Status shows the node's installation and runtime state. On a workspace
// without a completed installation it exits non-zero with an explicit
// message.
func Status(ctx context.Context, opts StatusOptions) error {
	ws, err := openInstalledWorkspace(opts.Workspace)
	if err != nil {
		return err
	}

	fetch := func(ctx context.Context) tui.StatusSnapshot {
		return gatherStatus(ctx, ws)
	}

	if opts.Watch {
		if !opts.JSON && isInteractiveTTY() {
			return tui.RunStatusWatch(ctx, fetch)
		}
		return statusWatchPlain(ctx, fetch, opts.JSON)
	}

	snapshot := fetch(ctx)
	if opts.JSON {
		return printStatusJSON(snapshot)
	}
	if isInteractiveTTY() {
		fmt.Println(tui.RenderStatus(snapshot))
		return nil
	}
	printStatusPlain(snapshot)
	return nil
}

// gatherStatus assembles one status observation. Chain and container probes
// are best effort: their failure is reported inside the snapshot, not as a
// handler error.
func gatherStatus(ctx context.Context, ws *workspace.Workspace) tui.StatusSnapshot {
	snapshot := tui.StatusSnapshot{
		Workspace: ws.Dir,
		Installed: ws.Installed(),
	}

	rpcURL, offset, offsetFound, err := loadEnvironment(ws)
	if err != nil {
		snapshot.Err = err
		return snapshot
	}
	snapshot.RPCURL = rpcURL
	if offsetFound {
		snapshot.Offset = offset
	}

	if cfg, err := config.LoadNodeConfig(ws.NodeConfigPath()); err == nil {
		snapshot.Cluster = cfg.Solana.Cluster
	}

	runtime := newContainerRuntime()
	if state, err := runtime.State(ctx, config.ContainerName); err == nil {
		snapshot.ContainerState = state
	} else {
		snapshot.ContainerState = "unknown"
	}

	if offsetFound {
		chainClient := newChainClient(rpcURL)
		if active, err := chainClient.NodeActive(ctx, offset); err == nil {
			snapshot.Active = active
			snapshot.ActiveKnown = true
		}
	}

	return snapshot
}

// statusWatchPlain re-prints status on a fixed interval for non-interactive
// terminals.
func statusWatchPlain(ctx context.Context, fetch tui.SnapshotFunc, jsonOutput bool) error {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	print := func() error {
		snapshot := fetch(ctx)
		if jsonOutput {
			return printStatusJSON(snapshot)
		}
		printStatusPlain(snapshot)
		return nil
	}

	if err := print(); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := print(); err != nil {
				return err
			}
		}
	}
}

func printStatusJSON(s tui.StatusSnapshot) error {
	status := NodeStatus{
		Workspace:      s.Workspace,
		Installed:      s.Installed,
		Offset:         s.Offset,
		RPCURL:         s.RPCURL,
		Cluster:        s.Cluster,
		ContainerState: s.ContainerState,
	}
	if s.ActiveKnown {
		active := s.Active
		status.Active = &active
	}

	data, err := json.MarshalIndent(status, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal status: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func printStatusPlain(s tui.StatusSnapshot) {
	fmt.Printf("workspace: %s\n", s.Workspace)
	fmt.Printf("installed: %t\n", s.Installed)
	fmt.Printf("container: %s\n", s.ContainerState)
	if s.Offset != 0 {
		fmt.Printf("offset:    %d\n", s.Offset)
	}
	fmt.Printf("rpc:       %s\n", s.RPCURL)
	if s.Cluster != "" {
		fmt.Printf("cluster:   %s\n", s.Cluster)
	}
	if s.ActiveKnown {
		fmt.Printf("active:    %t\n", s.Active)
	}
	if s.Err != nil {
		fmt.Printf("error:     %v\n", s.Err)
	}
}
