package showroom

import (
	"fmt"
	"io"
	"time"

	"github.com/phanxgames/unveil"
)

// DefaultFrame is the simulated frame length (60 TPS).
const DefaultFrame = time.Second / 60

// DefaultMaxFrames bounds a simulation that never settles.
const DefaultMaxFrames = 60 * 60

// TimelineEvent is one motion milestone observed during a simulation.
type TimelineEvent struct {
	At    time.Duration
	Type  unveil.EventType
	Node  string
	Value float64
}

// recorder is an EntityStore that keeps every event and forwards it.
type recorder struct {
	events []TimelineEvent
	next   unveil.EntityStore
}

func (r *recorder) EmitEvent(e unveil.MotionEvent) {
	r.events = append(r.events, TimelineEvent{At: e.Time, Type: e.Type, Node: e.Name, Value: e.Value})
	if r.next != nil {
		r.next.EmitEvent(e)
	}
}

// SimulateOptions configures Simulate. Zero fields take defaults.
type SimulateOptions struct {
	Frame     time.Duration
	MaxFrames int
	// Store receives events as well, for example an ECS bridge.
	Store unveil.EntityStore
}

// Simulate drives the scene headlessly with runner's script (which may be
// nil) until the script is done and no animation work is pending, and
// returns the motion events in the order they happened.
func Simulate(scene *unveil.Scene, runner *unveil.TestRunner, opts SimulateOptions) []TimelineEvent {
	if opts.Frame <= 0 {
		opts.Frame = DefaultFrame
	}
	if opts.MaxFrames <= 0 {
		opts.MaxFrames = DefaultMaxFrames
	}
	rec := &recorder{next: opts.Store}
	scene.SetEntityStore(rec)
	defer scene.SetEntityStore(opts.Store)
	if runner != nil {
		scene.SetTestRunner(runner)
		defer scene.SetTestRunner(nil)
	}

	// Frame zero lets observers see the initial viewport.
	scene.Step(0)
	for i := 0; i < opts.MaxFrames; i++ {
		scene.Tick(opts.Frame)
		if settled(scene, runner) {
			break
		}
	}
	logger := scene.Logger()
	logger.Debug().Int("events", len(rec.events)).Dur("at", scene.Now()).Msg("simulation settled")
	return rec.events
}

func settled(scene *unveil.Scene, runner *unveil.TestRunner) bool {
	if runner != nil && !runner.Done() {
		return false
	}
	if cam := scene.PrimaryCamera(); cam != nil && cam.Scrolling() {
		return false
	}
	return scene.Scheduler().Pending() == 0
}

// WriteTimeline prints one event per line.
func WriteTimeline(w io.Writer, events []TimelineEvent) error {
	for _, e := range events {
		if _, err := fmt.Fprintf(w, "%7dms  %-12s  %-28s  %g\n", e.At.Milliseconds(), e.Type, e.Node, e.Value); err != nil {
			return err
		}
	}
	return nil
}
