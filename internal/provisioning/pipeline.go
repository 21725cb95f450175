package provisioning

import (
	"fmt"
	"time"
)

// Pipeline executes installation steps strictly in declared order. Side
// effects are externally stateful (funded accounts, on-chain registrations,
// containers), so there is no reordering and no parallelism.
type Pipeline struct {
	Steps []Step
}

// NewPipeline creates a pipeline from the given steps.
func NewPipeline(steps ...Step) *Pipeline {
	return &Pipeline{Steps: steps}
}

// StepError reports a failed pipeline step along with the manual recovery
// commands for the operator.
type StepError struct {
	Phase    Phase
	Recovery []string
	Err      error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s step failed: %v", e.Phase, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Plan computes the index of the first step to execute for a persisted
// progress marker. A failed marker resumes at the failed step itself; a
// completed marker resumes at the step after it.
func (p *Pipeline) Plan(marker string) (int, error) {
	cp, err := ParseMarker(marker)
	if err != nil {
		return 0, err
	}
	if cp == nil {
		return 0, nil
	}

	for i, step := range p.Steps {
		if step.Phase() == cp.Phase {
			if cp.Failed {
				return i, nil
			}
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("progress marker %q does not match any pipeline step", marker)
}

// Run executes the steps from startAt onward. After each successful step a
// completion marker is persisted so a crash between steps resumes correctly.
// A failed step persists its failure marker (unless the phase is not
// checkpointed) and halts the run; there are no automatic retries. When the
// final step succeeds the progress marker is cleared while the environment
// config files are retained for later status/info invocations.
func (p *Pipeline) Run(ctx *Context, startAt int) error {
	if startAt >= len(p.Steps) {
		ctx.Observer.Printf("Nothing to do: all %d steps already completed", len(p.Steps))
		return ctx.Workspace.ClearProgress()
	}

	start := time.Now()
	ctx.Observer.Printf("Running installation steps %d-%d of %d...",
		startAt+1, len(p.Steps), len(p.Steps))

	for i := startAt; i < len(p.Steps); i++ {
		step := p.Steps[i]
		phase := step.Phase()
		stepStart := time.Now()

		LogStepStart(ctx.Observer, phase, i+1, len(p.Steps))

		if err := step.Run(ctx); err != nil {
			LogStepFailed(ctx.Observer, phase, err)

			if phase.Checkpointed() {
				marker := phase.FailedMarker()
				if saveErr := ctx.Workspace.SaveProgress(marker); saveErr != nil {
					return fmt.Errorf("%s step failed (%v) and checkpoint could not be saved: %w",
						phase, err, saveErr)
				}
				LogCheckpoint(ctx.Observer, marker)
			}

			return &StepError{Phase: phase, Recovery: step.Recovery(ctx), Err: err}
		}

		LogStepComplete(ctx.Observer, phase, time.Since(stepStart))

		if err := ctx.Workspace.SaveProgress(phase.CompletedMarker()); err != nil {
			return fmt.Errorf("failed to save progress after %s step: %w", phase, err)
		}
	}

	if err := ctx.Workspace.ClearProgress(); err != nil {
		return err
	}

	ctx.Observer.Printf("Installation completed in %v", time.Since(start).Round(time.Millisecond))
	return nil
}
