package handlers

import (
	"context"
	"fmt"
)

// Active checks whether the node is active in the current epoch. Exit code 0
// means active; an inactive node or a failed probe exits non-zero.
func Active(ctx context.Context, dir string) error {
	ws, err := openInstalledWorkspace(dir)
	if err != nil {
		return err
	}

	rpcURL, offset, offsetFound, err := loadEnvironment(ws)
	if err != nil {
		return err
	}
	if !offsetFound {
		return fmt.Errorf("no node offset in %s; installation did not reach keygen", ws.Dir)
	}

	chainClient := newChainClient(rpcURL)
	active, err := chainClient.NodeActive(ctx, offset)
	if err != nil {
		return fmt.Errorf("failed to check node activation: %w", err)
	}
	if !active {
		return fmt.Errorf("node %d is not active in the current epoch", offset)
	}

	fmt.Printf("Node %d is active\n", offset)
	return nil
}
