package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arclabs/arcnode/internal/config"
	"github.com/arclabs/arcnode/internal/workspace"
)

func TestInfo(t *testing.T) {
	installFakes(t, &fakeChain{}, &fakeRuntime{})

	dir := installedWorkspace(t)
	ws := &workspace.Workspace{Dir: dir}
	require.NoError(t, ws.SaveRPCURL("https://rpc.example.com"))
	require.NoError(t, ws.SaveOffset(1234567890))
	require.NoError(t, config.WriteNodeConfig(&config.NodeConfig{
		Node: config.NodeSection{
			Offset:        1234567890,
			HardwareClaim: "standard",
			EndingEpoch:   config.DefaultEndingEpoch,
		},
		Network: config.NetworkSection{ListenAddress: "0.0.0.0:8080"},
		Solana: config.SolanaSection{
			RPCURL:     "https://rpc.example.com",
			WSSURL:     "wss://rpc.example.com",
			Cluster:    "devnet",
			Commitment: "confirmed",
		},
	}, ws.NodeConfigPath()))

	output := captureOutput(func() {
		require.NoError(t, Info(context.Background(), dir))
	})

	assert.Contains(t, output, "Node Information")
	assert.Contains(t, output, dir)
	assert.Contains(t, output, "1234567890")
	assert.Contains(t, output, "https://rpc.example.com")
	assert.Contains(t, output, "wss://rpc.example.com")
	assert.Contains(t, output, "devnet")
	assert.Contains(t, output, "confirmed")
	assert.Contains(t, output, "0.0.0.0:8080")
	assert.Contains(t, output, ws.NodeKeypairPath())
	assert.Contains(t, output, ws.NodeConfigPath())
}

func TestInfo_NotInstalled(t *testing.T) {
	installFakes(t, &fakeChain{}, &fakeRuntime{})

	err := Info(context.Background(), t.TempDir())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not installed")
}
