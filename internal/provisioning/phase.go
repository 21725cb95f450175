package provisioning

import (
	"fmt"
	"strings"

	"github.com/arclabs/arcnode/internal/workspace"
)

// Phase identifies one step of the installation pipeline. The set is closed:
// progress markers are derived from these values and never from free-form
// strings.
type Phase int

const (
	// PhaseDependencies installs the external tools the node requires.
	PhaseDependencies Phase = iota
	// PhaseKeygen generates the node and callback keypairs.
	PhaseKeygen
	// PhaseFunding funds the node keypair via airdrop.
	PhaseFunding
	// PhaseInit registers the node accounts on-chain.
	PhaseInit
	// PhaseConfig renders the node configuration file.
	PhaseConfig
	// PhaseDeploy pulls the node image and starts the container.
	PhaseDeploy
	// PhaseVerify checks that the deployed container is healthy.
	PhaseVerify

	phaseCount
)

var phaseNames = [phaseCount]string{
	PhaseDependencies: "dependencies",
	PhaseKeygen:       "keygen",
	PhaseFunding:      "funding",
	PhaseInit:         "init",
	PhaseConfig:       "config",
	PhaseDeploy:       "deploy",
	PhaseVerify:       "verify",
}

// Phases returns all pipeline phases in execution order.
func Phases() []Phase {
	phases := make([]Phase, phaseCount)
	for i := range phases {
		phases[i] = Phase(i)
	}
	return phases
}

// String returns the phase name used in progress markers and log output.
func (p Phase) String() string {
	if p < 0 || p >= phaseCount {
		return fmt.Sprintf("phase(%d)", int(p))
	}
	return phaseNames[p]
}

// Checkpointed reports whether a failure of this phase is recorded as a
// progress marker. Dependency installation is not: nothing stateful has
// happened yet, so a failed run starts over.
func (p Phase) Checkpointed() bool {
	return p != PhaseDependencies
}

// CompletedMarker returns the progress marker written after this phase
// succeeds.
func (p Phase) CompletedMarker() string {
	return p.String() + markerCompletedSuffix
}

// FailedMarker returns the progress marker written when this phase fails.
func (p Phase) FailedMarker() string {
	return p.String() + markerFailedSuffix
}

const (
	markerCompletedSuffix = "_completed"
	markerFailedSuffix    = "_failed"
)

// Checkpoint is a parsed progress marker: the last attempted phase and
// whether it failed.
type Checkpoint struct {
	Phase  Phase
	Failed bool
}

// ParseMarker parses a persisted progress marker. The start sentinel parses
// to nil (fresh install). Unknown markers are an error so that a corrupted
// progress file is surfaced instead of silently restarting.
func ParseMarker(marker string) (*Checkpoint, error) {
	if marker == "" || marker == workspace.ProgressStart {
		return nil, nil
	}

	var name string
	var failed bool
	switch {
	case strings.HasSuffix(marker, markerCompletedSuffix):
		name = strings.TrimSuffix(marker, markerCompletedSuffix)
	case strings.HasSuffix(marker, markerFailedSuffix):
		name = strings.TrimSuffix(marker, markerFailedSuffix)
		failed = true
	default:
		return nil, fmt.Errorf("unrecognized progress marker %q", marker)
	}

	for i, n := range phaseNames {
		if n == name {
			return &Checkpoint{Phase: Phase(i), Failed: failed}, nil
		}
	}
	return nil, fmt.Errorf("unrecognized phase in progress marker %q", marker)
}
