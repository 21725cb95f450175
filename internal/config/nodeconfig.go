// Package config defines the node configuration formats: the rendered TOML
// file the node container consumes and the optional YAML install profile for
// non-interactive installs.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Defaults for operator-tunable values.
const (
	DefaultRPCURL        = "https://api.devnet.solana.com"
	DefaultCluster       = "devnet"
	DefaultCommitment    = "confirmed"
	DefaultListenAddress = "0.0.0.0:8080"
	DefaultHardwareClaim = "standard"

	// DefaultEndingEpoch keeps the node enrolled indefinitely.
	DefaultEndingEpoch = uint64(9223372036854775807)

	// DefaultImage is the node container image.
	DefaultImage = "ghcr.io/arcium-hq/arx-node:latest"

	// ContainerName is the fixed name of the deployed node container.
	ContainerName = "arx-node"

	// DefaultListenPort is the published container port.
	DefaultListenPort = 8080
)

// NodeConfig is the structured configuration rendered into the workspace and
// mounted into the node container.
type NodeConfig struct {
	Node    NodeSection    `toml:"node"`
	Network NetworkSection `toml:"network"`
	Solana  SolanaSection  `toml:"solana"`
}

// NodeSection describes the node's on-chain identity and enrollment window.
type NodeSection struct {
	Offset        uint64 `toml:"offset"`
	HardwareClaim string `toml:"hardware_claim"`
	StartingEpoch uint64 `toml:"starting_epoch"`
	EndingEpoch   uint64 `toml:"ending_epoch"`
}

// NetworkSection describes the node's local listener.
type NetworkSection struct {
	ListenAddress string `toml:"listen_address"`
}

// SolanaSection describes the chain endpoints the node talks to.
type SolanaSection struct {
	RPCURL     string `toml:"rpc_url"`
	WSSURL     string `toml:"wss_url"`
	Cluster    string `toml:"cluster"`
	Commitment string `toml:"commitment"`
}

// WriteNodeConfig renders the config as TOML at path.
func WriteNodeConfig(cfg *NodeConfig, path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create node config: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("failed to render node config: %w", err)
	}
	return nil
}

// LoadNodeConfig parses a rendered node config.
func LoadNodeConfig(path string) (*NodeConfig, error) {
	cfg := &NodeConfig{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to load node config: %w", err)
	}
	return cfg, nil
}

// DeriveWSSURL converts an RPC endpoint to its websocket counterpart.
func DeriveWSSURL(rpcURL string) string {
	switch {
	case strings.HasPrefix(rpcURL, "https://"):
		return "wss://" + strings.TrimPrefix(rpcURL, "https://")
	case strings.HasPrefix(rpcURL, "http://"):
		return "ws://" + strings.TrimPrefix(rpcURL, "http://")
	default:
		return rpcURL
	}
}
