// Package docker implements the ContainerRuntime interface on top of the
// docker CLI.
package docker

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/arclabs/arcnode/internal/provisioning"
)

const dockerBin = "docker"

// containerConfigPath is where the node expects its config inside the container.
const containerConfigPath = "/usr/arx-node/node-config.toml"

// containerKeysDir is where keypairs are mounted inside the container.
const containerKeysDir = "/usr/arx-node/keys"

// runCommand executes docker and returns its combined output.
// Swapped in tests.
var runCommand = func(ctx context.Context, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, dockerBin, args...).CombinedOutput()
	return string(out), err
}

// Runtime manages containers via the docker CLI.
type Runtime struct{}

// NewRuntime creates a docker-CLI-backed container runtime.
func NewRuntime() *Runtime {
	return &Runtime{}
}

// Pull implements provisioning.ContainerRuntime.
func (r *Runtime) Pull(ctx context.Context, image string) error {
	out, err := runCommand(ctx, "pull", image)
	if err != nil {
		return fmt.Errorf("docker pull failed: %w: %s", err, strings.TrimSpace(out))
	}
	return nil
}

// Exists implements provisioning.ContainerRuntime.
func (r *Runtime) Exists(ctx context.Context, name string) (bool, error) {
	out, err := runCommand(ctx, "inspect", "--format", "{{.State.Status}}", name)
	if err != nil {
		if strings.Contains(strings.ToLower(out), "no such") {
			return false, nil
		}
		return false, fmt.Errorf("docker inspect failed: %w: %s", err, strings.TrimSpace(out))
	}
	return true, nil
}

// Run implements provisioning.ContainerRuntime.
func (r *Runtime) Run(ctx context.Context, spec provisioning.ContainerSpec) error {
	port := strconv.Itoa(spec.Port)
	args := []string{
		"run", "-d",
		"--name", spec.Name,
		"--restart", "unless-stopped",
		"-p", port + ":" + port,
		"-v", spec.ConfigPath + ":" + containerConfigPath + ":ro",
	}
	for _, key := range spec.KeyPaths {
		args = append(args, "-v", key+":"+containerKeysDir+"/"+filepath.Base(key)+":ro")
	}
	args = append(args, spec.Image)

	out, err := runCommand(ctx, args...)
	if err != nil {
		return fmt.Errorf("docker run failed: %w: %s", err, strings.TrimSpace(out))
	}
	return nil
}

// Start implements provisioning.ContainerRuntime.
func (r *Runtime) Start(ctx context.Context, name string) error {
	out, err := runCommand(ctx, "start", name)
	if err != nil {
		return fmt.Errorf("docker start failed: %w: %s", err, strings.TrimSpace(out))
	}
	return nil
}

// Stop implements provisioning.ContainerRuntime.
func (r *Runtime) Stop(ctx context.Context, name string) error {
	out, err := runCommand(ctx, "stop", name)
	if err != nil {
		return fmt.Errorf("docker stop failed: %w: %s", err, strings.TrimSpace(out))
	}
	return nil
}

// Restart implements provisioning.ContainerRuntime.
func (r *Runtime) Restart(ctx context.Context, name string) error {
	out, err := runCommand(ctx, "restart", name)
	if err != nil {
		return fmt.Errorf("docker restart failed: %w: %s", err, strings.TrimSpace(out))
	}
	return nil
}

// State implements provisioning.ContainerRuntime.
func (r *Runtime) State(ctx context.Context, name string) (string, error) {
	out, err := runCommand(ctx, "inspect", "--format", "{{.State.Status}}", name)
	if err != nil {
		return "", fmt.Errorf("docker inspect failed: %w: %s", err, strings.TrimSpace(out))
	}
	return strings.TrimSpace(out), nil
}

// Logs implements provisioning.ContainerRuntime. Output streams directly to
// the operator's terminal.
func (r *Runtime) Logs(ctx context.Context, name string, follow bool, tail int) error {
	args := []string{"logs"}
	if follow {
		args = append(args, "--follow")
	}
	if tail > 0 {
		args = append(args, "--tail", strconv.Itoa(tail))
	}
	args = append(args, name)

	cmd := exec.CommandContext(ctx, dockerBin, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("docker logs failed: %w", err)
	}
	return nil
}
