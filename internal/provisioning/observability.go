package provisioning

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
)

// Observer receives structured events from the pipeline and its steps.
type Observer interface {
	// Printf logs a free-form message.
	Printf(format string, v ...interface{})

	// Event emits a structured event.
	Event(event Event)
}

// Event represents a structured installation event.
type Event struct {
	Type      EventType
	Phase     string
	Message   string
	Timestamp time.Time
	Fields    map[string]string
}

// EventType represents the type of installation event.
type EventType string

const (
	// EventStepStarted indicates a pipeline step has started.
	EventStepStarted EventType = "step.started"
	// EventStepCompleted indicates a pipeline step completed successfully.
	EventStepCompleted EventType = "step.completed"
	// EventStepFailed indicates a pipeline step failed.
	EventStepFailed EventType = "step.failed"
	// EventStepSkipped indicates a step found its effect already present.
	EventStepSkipped EventType = "step.skipped"
	// EventCheckpoint indicates a progress marker was written.
	EventCheckpoint EventType = "checkpoint"
)

// ConsoleObserver implements Observer on top of a logr.Logger whose sink
// writes through the standard log package.
type ConsoleObserver struct {
	logger logr.Logger
}

// NewConsoleObserver creates a console-backed observer.
func NewConsoleObserver() *ConsoleObserver {
	return &ConsoleObserver{
		logger: funcr.New(func(prefix, args string) {
			if prefix != "" {
				log.Printf("%s: %s", prefix, args)
				return
			}
			log.Print(args)
		}, funcr.Options{}),
	}
}

// Printf implements Observer.
func (o *ConsoleObserver) Printf(format string, v ...interface{}) {
	o.logger.Info(fmt.Sprintf(format, v...))
}

// Event implements Observer.
func (o *ConsoleObserver) Event(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	kv := make([]interface{}, 0, 2*len(event.Fields)+4)
	kv = append(kv, "type", string(event.Type))
	if event.Phase != "" {
		kv = append(kv, "phase", event.Phase)
	}
	for k, v := range event.Fields {
		kv = append(kv, k, v)
	}
	o.logger.Info(event.Message, kv...)
}

// LogStepStart logs a step start event.
func LogStepStart(observer Observer, phase Phase, position, total int) {
	observer.Event(Event{
		Type:    EventStepStarted,
		Phase:   phase.String(),
		Message: fmt.Sprintf("starting (%d/%d)", position, total),
	})
}

// LogStepComplete logs a step completion event.
func LogStepComplete(observer Observer, phase Phase, duration time.Duration) {
	observer.Event(Event{
		Type:    EventStepCompleted,
		Phase:   phase.String(),
		Message: fmt.Sprintf("completed in %v", duration.Round(time.Millisecond)),
	})
}

// LogStepFailed logs a step failure event.
func LogStepFailed(observer Observer, phase Phase, err error) {
	observer.Event(Event{
		Type:    EventStepFailed,
		Phase:   phase.String(),
		Message: fmt.Sprintf("failed: %v", err),
	})
}

// LogStepSkipped logs that a step found its effect already in place.
func LogStepSkipped(observer Observer, phase Phase, reason string) {
	observer.Event(Event{
		Type:    EventStepSkipped,
		Phase:   phase.String(),
		Message: "already satisfied, skipped",
		Fields:  map[string]string{"reason": reason},
	})
}

// LogCheckpoint logs that a progress marker was persisted.
func LogCheckpoint(observer Observer, marker string) {
	observer.Event(Event{
		Type:    EventCheckpoint,
		Message: "progress saved",
		Fields:  map[string]string{"marker": marker},
	})
}

// FormatRecovery renders manual recovery commands for terminal output.
func FormatRecovery(phase Phase, commands []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The %s step failed. To recover manually, run:\n", phase)
	for _, cmd := range commands {
		fmt.Fprintf(&b, "  %s\n", cmd)
	}
	b.WriteString("Then re-run 'arcnode install' and choose resume.\n")
	return b.String()
}
