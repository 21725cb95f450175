package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_ExplicitDir(t *testing.T) {
	ws, err := Resolve("/opt/arcnode")

	require.NoError(t, err)
	assert.Equal(t, "/opt/arcnode", ws.Dir)
}

func TestResolve_EnvVar(t *testing.T) {
	t.Setenv("ARCNODE_HOME", "/var/lib/arcnode")

	ws, err := Resolve("")

	require.NoError(t, err)
	assert.Equal(t, "/var/lib/arcnode", ws.Dir)
}

func TestResolve_ExplicitDirWinsOverEnv(t *testing.T) {
	t.Setenv("ARCNODE_HOME", "/var/lib/arcnode")

	ws, err := Resolve("/opt/arcnode")

	require.NoError(t, err)
	assert.Equal(t, "/opt/arcnode", ws.Dir)
}

func TestResolve_DefaultsToHome(t *testing.T) {
	t.Setenv("ARCNODE_HOME", "")

	ws, err := Resolve("")

	require.NoError(t, err)
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".arcnode"), ws.Dir)
}

func TestEnsure_CreatesDirectory(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "nested", "workspace")
	ws := &Workspace{Dir: dir}

	require.NoError(t, ws.Ensure())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestEnsure_Idempotent(t *testing.T) {
	t.Parallel()
	ws := &Workspace{Dir: t.TempDir()}

	require.NoError(t, ws.Ensure())
	require.NoError(t, ws.Ensure())
}

func TestPath(t *testing.T) {
	t.Parallel()
	ws := &Workspace{Dir: "/opt/arcnode"}

	assert.Equal(t, "/opt/arcnode/rpc-url", ws.Path(RPCFile))
	assert.Equal(t, "/opt/arcnode/node-keypair.json", ws.NodeKeypairPath())
	assert.Equal(t, "/opt/arcnode/callback-keypair.json", ws.CallbackKeypairPath())
	assert.Equal(t, "/opt/arcnode/node-config.toml", ws.NodeConfigPath())
}

func TestInstalled(t *testing.T) {
	t.Parallel()
	ws := &Workspace{Dir: t.TempDir()}

	assert.False(t, ws.Installed(), "empty workspace is not installed")

	for _, name := range []string{NodeKeypairFile, CallbackKeyFile} {
		require.NoError(t, os.WriteFile(ws.Path(name), []byte("{}"), 0600))
	}
	assert.False(t, ws.Installed(), "missing node config means not installed")

	require.NoError(t, os.WriteFile(ws.Path(NodeConfigFile), []byte("[node]\n"), 0600))
	assert.True(t, ws.Installed())
}
