package unveil

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// debugLogger receives tree warnings from node operations, which have no
// Scene pointer. Set by Scene.SetDebugMode.
var debugLogger = zerolog.Nop()

// debugStats holds per-step timing and scheduler metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	stepTime     time.Duration
	observations int
	fired        int
	frames       int
	pending      int
}

// debugLog writes step stats at debug level.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	s.log.Debug().
		Uint64("frame", s.frameCount).
		Dur("step", stats.stepTime).
		Int("observations", stats.observations).
		Int("fired", stats.fired).
		Int("frames", stats.frames).
		Int("pending", stats.pending).
		Durs("timers_due", s.sched.timersDue()).
		Msg("step")
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Callers only invoke it in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("unveil debug: %s on disposed node %q (ID was %d)", op, n.Name, n.ID))
	}
}

// debugMaxTreeDepth is the depth past which debugCheckTreeDepth warns.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		debugLogger.Warn().
			Int("depth", depth).
			Int("limit", debugMaxTreeDepth).
			Str("node", n.Name).
			Msg("tree depth exceeds limit")
	}
}

// debugMaxChildCount is the child count past which debugCheckChildCount warns.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		debugLogger.Warn().
			Int("children", len(n.children)).
			Int("limit", debugMaxChildCount).
			Str("node", n.Name).
			Msg("child count exceeds limit")
	}
}
