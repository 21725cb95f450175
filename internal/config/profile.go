package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// InstallProfile is the optional YAML file for non-interactive installs.
// Every field is optional; absent fields take the interactive defaults.
type InstallProfile struct {
	RPCURL            string `yaml:"rpcURL,omitempty"`
	Cluster           string `yaml:"cluster,omitempty"`
	Commitment        string `yaml:"commitment,omitempty"`
	ListenAddress     string `yaml:"listenAddress,omitempty"`
	HardwareClaim     string `yaml:"hardwareClaim,omitempty"`
	StartingEpoch     uint64 `yaml:"startingEpoch,omitempty"`
	EndingEpoch       uint64 `yaml:"endingEpoch,omitempty"`
	SkipResourceCheck bool   `yaml:"skipResourceCheck,omitempty"`
}

// LoadProfile reads and validates an install profile.
func LoadProfile(path string) (*InstallProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read install profile: %w", err)
	}

	profile := &InstallProfile{}
	if err := yaml.Unmarshal(data, profile); err != nil {
		return nil, fmt.Errorf("failed to parse install profile: %w", err)
	}
	profile.ApplyDefaults()
	return profile, nil
}

// ApplyDefaults fills absent fields with the interactive defaults.
func (p *InstallProfile) ApplyDefaults() {
	if p.RPCURL == "" {
		p.RPCURL = DefaultRPCURL
	}
	if p.Cluster == "" {
		p.Cluster = DefaultCluster
	}
	if p.Commitment == "" {
		p.Commitment = DefaultCommitment
	}
	if p.ListenAddress == "" {
		p.ListenAddress = DefaultListenAddress
	}
	if p.HardwareClaim == "" {
		p.HardwareClaim = DefaultHardwareClaim
	}
	if p.EndingEpoch == 0 {
		p.EndingEpoch = DefaultEndingEpoch
	}
}

// DefaultProfile returns a profile with all defaults applied.
func DefaultProfile() *InstallProfile {
	p := &InstallProfile{}
	p.ApplyDefaults()
	return p
}
