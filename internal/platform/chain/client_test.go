package chain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arclabs/arcnode/internal/provisioning"
)

// fakeCommand records invocations and plays back canned output.
type fakeCommand struct {
	name string
	args []string
	out  string
	err  error
}

func injectCommand(t *testing.T, f *fakeCommand) {
	t.Helper()
	orig := runCommand
	t.Cleanup(func() { runCommand = orig })
	runCommand = func(_ context.Context, name string, args ...string) (string, error) {
		f.name = name
		f.args = args
		return f.out, f.err
	}
}

func TestGenerateKeypair(t *testing.T) {
	fake := &fakeCommand{}
	injectCommand(t, fake)

	c := NewClient("https://rpc.example.com")
	require.NoError(t, c.GenerateKeypair(context.Background(), "/tmp/key.json"))

	assert.Equal(t, "solana-keygen", fake.name)
	assert.Equal(t, []string{"new", "--no-bip39-passphrase", "--silent", "--outfile", "/tmp/key.json"}, fake.args)
}

func TestGenerateKeypair_Failure(t *testing.T) {
	fake := &fakeCommand{out: "error: refusing to overwrite", err: errors.New("exit status 1")}
	injectCommand(t, fake)

	c := NewClient("https://rpc.example.com")
	err := c.GenerateKeypair(context.Background(), "/tmp/key.json")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "solana-keygen failed")
	assert.Contains(t, err.Error(), "refusing to overwrite")
}

func TestBalance(t *testing.T) {
	fake := &fakeCommand{out: "2.5 SOL\n"}
	injectCommand(t, fake)

	c := NewClient("https://rpc.example.com")
	balance, err := c.Balance(context.Background(), "/tmp/key.json")

	require.NoError(t, err)
	assert.InDelta(t, 2.5, balance, 1e-9)
	assert.Equal(t, "solana", fake.name)
	assert.Equal(t, []string{"balance", "--keypair", "/tmp/key.json", "--url", "https://rpc.example.com"}, fake.args)
}

func TestAirdrop(t *testing.T) {
	fake := &fakeCommand{out: "Signature: 5j7s...\n2 SOL\n"}
	injectCommand(t, fake)

	c := NewClient("https://rpc.example.com")
	require.NoError(t, c.Airdrop(context.Background(), "/tmp/key.json", 2))

	assert.Equal(t, "solana", fake.name)
	assert.Equal(t, []string{"airdrop", "2", "--keypair", "/tmp/key.json", "--url", "https://rpc.example.com"}, fake.args)
}

func TestAirdrop_RateLimited(t *testing.T) {
	fake := &fakeCommand{out: "Error: airdrop request failed: rate limit reached", err: errors.New("exit status 1")}
	injectCommand(t, fake)

	c := NewClient("https://rpc.example.com")
	err := c.Airdrop(context.Background(), "/tmp/key.json", 2)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit")
}

func TestNodeRegistered(t *testing.T) {
	t.Run("registered", func(t *testing.T) {
		fake := &fakeCommand{out: "ArxNode { offset: 1234567890, ... }"}
		injectCommand(t, fake)

		c := NewClient("https://rpc.example.com")
		registered, err := c.NodeRegistered(context.Background(), 1234567890)

		require.NoError(t, err)
		assert.True(t, registered)
		assert.Equal(t, "arcium", fake.name)
		assert.Equal(t, []string{"arx-info", "1234567890", "--rpc-url", "https://rpc.example.com"}, fake.args)
	})

	t.Run("not registered", func(t *testing.T) {
		fake := &fakeCommand{out: "Error: AccountNotFound", err: errors.New("exit status 1")}
		injectCommand(t, fake)

		c := NewClient("https://rpc.example.com")
		registered, err := c.NodeRegistered(context.Background(), 1234567890)

		require.NoError(t, err, "a missing account is a negative answer, not an error")
		assert.False(t, registered)
	})

	t.Run("rpc failure", func(t *testing.T) {
		fake := &fakeCommand{out: "Error: connection refused", err: errors.New("exit status 1")}
		injectCommand(t, fake)

		c := NewClient("https://rpc.example.com")
		_, err := c.NodeRegistered(context.Background(), 1234567890)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "arx-info failed")
	})
}

func TestRegisterNode(t *testing.T) {
	fake := &fakeCommand{}
	injectCommand(t, fake)

	c := NewClient("https://rpc.example.com")
	err := c.RegisterNode(context.Background(), provisioning.NodeRegistration{
		Offset:          1234567890,
		NodeKeypair:     "/ws/node-keypair.json",
		CallbackKeypair: "/ws/callback-keypair.json",
		RPCURL:          "https://rpc.example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, "arcium", fake.name)
	assert.Equal(t, []string{
		"init-arx-accs",
		"--keypair-path", "/ws/node-keypair.json",
		"--callback-keypair-path", "/ws/callback-keypair.json",
		"--node-offset", "1234567890",
		"--rpc-url", "https://rpc.example.com",
	}, fake.args)
}

func TestNodeActive(t *testing.T) {
	tests := []struct {
		name   string
		out    string
		active bool
	}{
		{name: "boolean true", out: "true\n", active: true},
		{name: "active keyword", out: "Node is ACTIVE in epoch 120\n", active: true},
		{name: "boolean false", out: "false\n", active: false},
		{name: "not in committee", out: "node not in current epoch committee\n", active: false},
		{name: "inactive keyword", out: "node 1234567890 is inactive in the current epoch\n", active: false},
		{name: "not active phrasing", out: "node is not active\n", active: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeCommand{out: tt.out}
			injectCommand(t, fake)

			c := NewClient("https://rpc.example.com")
			active, err := c.NodeActive(context.Background(), 1234567890)

			require.NoError(t, err)
			assert.Equal(t, tt.active, active)
		})
	}
}

func TestParseBalance(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		out     string
		want    float64
		wantErr bool
	}{
		{name: "typical", out: "2.5 SOL\n", want: 2.5},
		{name: "integer", out: "2 SOL", want: 2},
		{name: "zero", out: "0 SOL", want: 0},
		{name: "no unit", out: "1.25", want: 1.25},
		{name: "empty", out: "", wantErr: true},
		{name: "garbage", out: "Error: unreachable", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := parseBalance(tt.out)

			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestParseActive(t *testing.T) {
	t.Parallel()
	assert.True(t, parseActive("true"))
	assert.True(t, parseActive("Node is ACTIVE in epoch 120"))
	assert.True(t, parseActive("status: active."))
	assert.False(t, parseActive("inactive"))
	assert.False(t, parseActive("node 1234567890 is inactive in the current epoch"))
	assert.False(t, parseActive("node is not active"))
	assert.False(t, parseActive("false"))
	assert.False(t, parseActive(""))
	assert.False(t, parseActive("interactive session required"),
		"substrings of longer words are not positive answers")
}

func TestIsNotFound(t *testing.T) {
	t.Parallel()
	assert.True(t, isNotFound("Error: AccountNotFound"))
	assert.True(t, isNotFound("account does not exist"))
	assert.True(t, isNotFound("arx account not found for offset"))
	assert.False(t, isNotFound("Error: connection refused"))
	assert.False(t, isNotFound(""))
}
