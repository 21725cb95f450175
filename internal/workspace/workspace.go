// Package workspace manages the local directory holding all generated keys,
// configuration, and progress state for one node instance.
//
// Exactly one operator is assumed to run one workflow against one workspace
// at a time; no file locking is performed.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
)

// File names inside the workspace directory.
const (
	ProgressFile      = "install-progress"
	RPCFile           = "rpc-url"
	OffsetFile        = "node-offset"
	NodeKeypairFile   = "node-keypair.json"
	CallbackKeyFile   = "callback-keypair.json"
	NodeConfigFile    = "node-config.toml"
	defaultDirName    = ".arcnode"
	workspaceEnvVar   = "ARCNODE_HOME"
	workspaceDirPerm  = 0700
	workspaceFilePerm = 0600
)

// Workspace provides access to the files of a single node installation.
type Workspace struct {
	Dir string
}

// Resolve determines the workspace directory. An explicit dir wins, then the
// ARCNODE_HOME environment variable, then ~/.arcnode.
func Resolve(dir string) (*Workspace, error) {
	if dir == "" {
		dir = os.Getenv(workspaceEnvVar)
	}
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to determine home directory: %w", err)
		}
		dir = filepath.Join(home, defaultDirName)
	}
	return &Workspace{Dir: dir}, nil
}

// Ensure creates the workspace directory if it does not exist.
func (w *Workspace) Ensure() error {
	if err := os.MkdirAll(w.Dir, workspaceDirPerm); err != nil {
		return fmt.Errorf("failed to create workspace %s: %w", w.Dir, err)
	}
	return nil
}

// Path returns the absolute path of a file inside the workspace.
func (w *Workspace) Path(name string) string {
	return filepath.Join(w.Dir, name)
}

// NodeKeypairPath returns the path of the node identity keypair.
func (w *Workspace) NodeKeypairPath() string { return w.Path(NodeKeypairFile) }

// CallbackKeypairPath returns the path of the callback authority keypair.
func (w *Workspace) CallbackKeypairPath() string { return w.Path(CallbackKeyFile) }

// NodeConfigPath returns the path of the rendered node configuration.
func (w *Workspace) NodeConfigPath() string { return w.Path(NodeConfigFile) }

// Installed reports whether the workspace holds a completed installation:
// keypairs and a rendered node config must all be present.
func (w *Workspace) Installed() bool {
	for _, name := range []string{NodeKeypairFile, CallbackKeyFile, NodeConfigFile} {
		if _, err := os.Stat(w.Path(name)); err != nil {
			return false
		}
	}
	return true
}
