package workspace

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/arclabs/arcnode/internal/config"
)

// ProgressStart is the sentinel marker of a fresh installation.
const ProgressStart = "start"

// offset identifiers are 10-digit decimals: [1_000_000_000, 10_000_000_000).
const (
	offsetMin  = 1_000_000_000
	offsetSpan = 9_000_000_000
)

// SaveProgress overwrites the progress marker. At most one marker exists at
// a time; every transition replaces the previous value.
func (w *Workspace) SaveProgress(marker string) error {
	return w.writeLine(ProgressFile, marker)
}

// LoadProgress returns the persisted progress marker, or the start sentinel
// if no marker file exists. A missing file is the fresh-install default, not
// an error.
func (w *Workspace) LoadProgress() (string, error) {
	value, err := w.readLine(ProgressFile)
	if os.IsNotExist(err) {
		return ProgressStart, nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// ClearProgress removes the progress marker. Called once the whole pipeline
// has completed, or when the operator discards a failed run.
func (w *Workspace) ClearProgress() error {
	if err := os.Remove(w.Path(ProgressFile)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear progress marker: %w", err)
	}
	return nil
}

// SaveRPCURL persists the chosen RPC endpoint.
func (w *Workspace) SaveRPCURL(url string) error {
	return w.writeLine(RPCFile, url)
}

// LoadRPCURL returns the persisted RPC endpoint, falling back to the
// hardcoded default when none was chosen yet.
func (w *Workspace) LoadRPCURL() (string, error) {
	value, err := w.readLine(RPCFile)
	if os.IsNotExist(err) {
		return config.DefaultRPCURL, nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// SaveOffset persists the node offset. The offset must never be silently
// regenerated once it has been used in an on-chain registration; callers
// write it exactly once.
func (w *Workspace) SaveOffset(offset uint64) error {
	return w.writeLine(OffsetFile, fmt.Sprintf("%d", offset))
}

// LoadOffset returns the persisted node offset. The boolean distinguishes
// "no identifier generated yet" from a present identifier.
func (w *Workspace) LoadOffset() (uint64, bool, error) {
	value, err := w.readLine(OffsetFile)
	if os.IsNotExist(err) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	var offset uint64
	if _, err := fmt.Sscanf(value, "%d", &offset); err != nil {
		return 0, false, fmt.Errorf("corrupt node offset %q: %w", value, err)
	}
	return offset, true, nil
}

// GenerateOffset produces a fresh 10-digit node offset.
func GenerateOffset() (uint64, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(offsetSpan))
	if err != nil {
		return 0, fmt.Errorf("failed to generate node offset: %w", err)
	}
	return uint64(n.Int64()) + offsetMin, nil
}

func (w *Workspace) writeLine(name, value string) error {
	if err := w.Ensure(); err != nil {
		return err
	}
	if err := os.WriteFile(w.Path(name), []byte(value+"\n"), workspaceFilePerm); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

func (w *Workspace) readLine(name string) (string, error) {
	data, err := os.ReadFile(w.Path(name))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
