package unveil

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action   string  `json:"action"`
	X        float64 `json:"x,omitempty"`
	Y        float64 `json:"y,omitempty"`
	DX       float64 `json:"dx,omitempty"`
	DY       float64 `json:"dy,omitempty"`
	Duration float32 `json:"duration,omitempty"`
	Frames   int     `json:"frames,omitempty"`
	Enabled  bool    `json:"enabled,omitempty"`
	Label    string  `json:"label,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences injected scrolls, waits and motion preference
// changes across frames for automated runs. Attach to a Scene via
// SetTestRunner.
//
// Actions:
//
//	{"action":"scroll","dx":0,"dy":300}
//	{"action":"scrollTo","x":0,"y":1200,"duration":0.5}
//	{"action":"wait","frames":30}
//	{"action":"reducedMotion","enabled":true}
//	{"action":"screenshot","label":"after-scroll"}
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
	motion    *MotionToggle
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Scene via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "scroll", "scrollTo", "wait", "reducedMotion", "screenshot":
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the scene. The runner's step method
// is called from Scene.Update before scroll input is processed each frame.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame. Called from Scene.Update.
func (r *TestRunner) step(s *Scene) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(s.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "scroll":
		s.InjectScroll(st.DX, st.DY)
	case "scrollTo":
		s.InjectScrollTo(st.X, st.Y, st.Duration)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "reducedMotion":
		r.setReducedMotion(s, st.Enabled)
	case "screenshot":
		s.Screenshot(st.Label)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}

// setReducedMotion flips the scene's preference, installing a MotionToggle
// if the scene's current source cannot be changed.
func (r *TestRunner) setReducedMotion(s *Scene, on bool) {
	if t, ok := s.motion.(*MotionToggle); ok {
		t.Set(on)
		return
	}
	if r.motion == nil {
		r.motion = NewMotionToggle(s.ReducedMotion())
		s.SetMotionPreference(r.motion)
	}
	r.motion.Set(on)
}
