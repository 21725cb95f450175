// Package chain implements the ChainClient interface by shelling out to the
// solana and arcium CLIs. All protocol-level work (signing, confirmation,
// account layout) is the CLIs' responsibility; this package only builds
// invocations and interprets exit status and output.
package chain

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/arclabs/arcnode/internal/provisioning"
)

// CLI binary names.
const (
	solanaBin       = "solana"
	solanaKeygenBin = "solana-keygen"
	arciumBin       = "arcium"
)

// runCommand executes a CLI and returns its combined output.
// Swapped in tests.
var runCommand = func(ctx context.Context, name string, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	return string(out), err
}

// Client talks to Solana and Arcium via their CLIs.
type Client struct {
	RPCURL string
}

// NewClient creates a CLI-backed chain client for the given RPC endpoint.
func NewClient(rpcURL string) *Client {
	return &Client{RPCURL: rpcURL}
}

// GenerateKeypair writes a fresh keypair to path via solana-keygen.
func (c *Client) GenerateKeypair(ctx context.Context, path string) error {
	out, err := runCommand(ctx, solanaKeygenBin,
		"new", "--no-bip39-passphrase", "--silent", "--outfile", path)
	if err != nil {
		return fmt.Errorf("solana-keygen failed: %w: %s", err, strings.TrimSpace(out))
	}
	return nil
}

// Balance returns the SOL balance of the keypair's account.
func (c *Client) Balance(ctx context.Context, keypairPath string) (float64, error) {
	out, err := runCommand(ctx, solanaBin,
		"balance", "--keypair", keypairPath, "--url", c.RPCURL)
	if err != nil {
		return 0, fmt.Errorf("solana balance failed: %w: %s", err, strings.TrimSpace(out))
	}
	return parseBalance(out)
}

// Airdrop requests devnet funds for the keypair's account.
func (c *Client) Airdrop(ctx context.Context, keypairPath string, sol float64) error {
	out, err := runCommand(ctx, solanaBin,
		"airdrop", strconv.FormatFloat(sol, 'f', -1, 64),
		"--keypair", keypairPath, "--url", c.RPCURL)
	if err != nil {
		return fmt.Errorf("solana airdrop failed: %w: %s", err, strings.TrimSpace(out))
	}
	return nil
}

// NodeRegistered reports whether on-chain accounts exist for the offset.
func (c *Client) NodeRegistered(ctx context.Context, offset uint64) (bool, error) {
	out, err := runCommand(ctx, arciumBin,
		"arx-info", strconv.FormatUint(offset, 10), "--rpc-url", c.RPCURL)
	if err != nil {
		if isNotFound(out) {
			return false, nil
		}
		return false, fmt.Errorf("arcium arx-info failed: %w: %s", err, strings.TrimSpace(out))
	}
	return true, nil
}

// RegisterNode creates the node's on-chain accounts.
func (c *Client) RegisterNode(ctx context.Context, reg provisioning.NodeRegistration) error {
	out, err := runCommand(ctx, arciumBin,
		"init-arx-accs",
		"--keypair-path", reg.NodeKeypair,
		"--callback-keypair-path", reg.CallbackKeypair,
		"--node-offset", strconv.FormatUint(reg.Offset, 10),
		"--rpc-url", reg.RPCURL)
	if err != nil {
		return fmt.Errorf("arcium init-arx-accs failed: %w: %s", err, strings.TrimSpace(out))
	}
	return nil
}

// NodeActive reports whether the node is active in the current epoch.
func (c *Client) NodeActive(ctx context.Context, offset uint64) (bool, error) {
	out, err := runCommand(ctx, arciumBin,
		"arx-active", strconv.FormatUint(offset, 10), "--rpc-url", c.RPCURL)
	if err != nil {
		return false, fmt.Errorf("arcium arx-active failed: %w: %s", err, strings.TrimSpace(out))
	}
	return parseActive(out), nil
}

// parseBalance extracts the numeric part of "2.5 SOL".
func parseBalance(out string) (float64, error) {
	fields := strings.Fields(strings.TrimSpace(out))
	if len(fields) == 0 {
		return 0, fmt.Errorf("empty balance output")
	}
	balance, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable balance output %q: %w", strings.TrimSpace(out), err)
	}
	return balance, nil
}

// parseActive interprets arx-active output. Negative phrasings are checked
// first so "inactive" or "not active" is never misread as an active node;
// only then does an exact "active" or "true" token count as a positive answer.
func parseActive(out string) bool {
	lower := strings.ToLower(out)
	for _, negative := range []string{"inactive", "not active", "false"} {
		if strings.Contains(lower, negative) {
			return false
		}
	}
	for _, field := range strings.Fields(lower) {
		word := strings.Trim(field, ".,:;")
		if word == "active" || word == "true" {
			return true
		}
	}
	return false
}

func isNotFound(out string) bool {
	lower := strings.ToLower(out)
	return strings.Contains(lower, "not found") ||
		strings.Contains(lower, "does not exist") ||
		strings.Contains(lower, "accountnotfound")
}
