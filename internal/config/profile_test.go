package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultProfile(t *testing.T) {
	t.Parallel()
	p := DefaultProfile()

	assert.Equal(t, DefaultRPCURL, p.RPCURL)
	assert.Equal(t, DefaultCluster, p.Cluster)
	assert.Equal(t, DefaultCommitment, p.Commitment)
	assert.Equal(t, DefaultListenAddress, p.ListenAddress)
	assert.Equal(t, DefaultHardwareClaim, p.HardwareClaim)
	assert.Zero(t, p.StartingEpoch)
	assert.Equal(t, DefaultEndingEpoch, p.EndingEpoch)
	assert.False(t, p.SkipResourceCheck)
}

func TestLoadProfile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "profile.yaml")
	raw := `
rpcURL: https://rpc.example.com
listenAddress: "0.0.0.0:9000"
skipResourceCheck: true
`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0600))

	p, err := LoadProfile(path)
	require.NoError(t, err)

	assert.Equal(t, "https://rpc.example.com", p.RPCURL)
	assert.Equal(t, "0.0.0.0:9000", p.ListenAddress)
	assert.True(t, p.SkipResourceCheck)

	// Absent fields take the defaults.
	assert.Equal(t, DefaultCluster, p.Cluster)
	assert.Equal(t, DefaultCommitment, p.Commitment)
	assert.Equal(t, DefaultHardwareClaim, p.HardwareClaim)
	assert.Equal(t, DefaultEndingEpoch, p.EndingEpoch)
}

func TestLoadProfile_MissingFile(t *testing.T) {
	t.Parallel()
	_, err := LoadProfile(filepath.Join(t.TempDir(), "absent.yaml"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read install profile")
}

func TestLoadProfile_InvalidYAML(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rpcURL: [not: valid"), 0600))

	_, err := LoadProfile(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse install profile")
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	t.Parallel()
	p := &InstallProfile{
		RPCURL:      "https://rpc.example.com",
		EndingEpoch: 500,
	}
	p.ApplyDefaults()

	assert.Equal(t, "https://rpc.example.com", p.RPCURL)
	assert.Equal(t, uint64(500), p.EndingEpoch)
	assert.Equal(t, DefaultCluster, p.Cluster)
}
