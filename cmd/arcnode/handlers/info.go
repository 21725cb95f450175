package handlers

import (
	"context"
	"fmt"

	"github.com/arclabs/arcnode/internal/config"
)

// Info prints the node's persisted configuration: the environment config
// files and the rendered node config.
func Info(_ context.Context, dir string) error {
	ws, err := openInstalledWorkspace(dir)
	if err != nil {
		return err
	}

	rpcURL, offset, offsetFound, err := loadEnvironment(ws)
	if err != nil {
		return err
	}

	cfg, err := config.LoadNodeConfig(ws.NodeConfigPath())
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Node Information")
	fmt.Println("----------------")
	fmt.Printf("  Workspace:      %s\n", ws.Dir)
	if offsetFound {
		fmt.Printf("  Offset:         %d\n", offset)
	}
	fmt.Printf("  RPC URL:        %s\n", rpcURL)
	fmt.Printf("  WSS URL:        %s\n", cfg.Solana.WSSURL)
	fmt.Printf("  Cluster:        %s\n", cfg.Solana.Cluster)
	fmt.Printf("  Commitment:     %s\n", cfg.Solana.Commitment)
	fmt.Printf("  Listen address: %s\n", cfg.Network.ListenAddress)
	fmt.Printf("  Hardware claim: %s\n", cfg.Node.HardwareClaim)
	fmt.Printf("  Epoch window:   %d - %d\n", cfg.Node.StartingEpoch, cfg.Node.EndingEpoch)
	fmt.Println()
	fmt.Printf("  Node keypair:     %s\n", ws.NodeKeypairPath())
	fmt.Printf("  Callback keypair: %s\n", ws.CallbackKeypairPath())
	fmt.Printf("  Node config:      %s\n", ws.NodeConfigPath())
	fmt.Println()

	return nil
}
