package unveil

import (
	"math"
	"testing"
	"time"
)

// newTestScene returns a scene with an 800x600 camera looking at the page
// top.
func newTestScene() (*Scene, *Camera) {
	s := NewScene()
	cam := s.NewCamera(Rect{Width: 800, Height: 600})
	return s, cam
}

// addBox adds a w x h box at (x, y) under the scene root.
func addBox(s *Scene, name string, x, y, w, h float64) *Node {
	n := NewBox(name, w, h, ColorWhite)
	n.SetPosition(x, y)
	s.Root().AddChild(n)
	return n
}

func scrollTo(cam *Camera, top float64) {
	cam.ScrollTo(cam.X, top+cam.Viewport.Height/2, 0, nil)
}

func TestObserveFiresOnEnter(t *testing.T) {
	s, cam := newTestScene()
	n := addBox(s, "below", 0, 1000, 100, 100)

	var entries []Entry
	s.Observe(n, ObserveOptions{}, func(e Entry) { entries = append(entries, e) })

	s.Step(0)
	if len(entries) != 0 {
		t.Fatal("fired while off-screen")
	}

	scrollTo(cam, 500)
	s.Step(16 * time.Millisecond)
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	e := entries[0]
	if e.Node != n || e.Ratio != 1 {
		t.Errorf("entry = %+v", e)
	}
	if e.Time != 16*time.Millisecond {
		t.Errorf("entry time = %v, want 16ms", e.Time)
	}
}

func TestObserveOnlyNotInToIn(t *testing.T) {
	s, cam := newTestScene()
	n := addBox(s, "top", 0, 0, 100, 100)
	calls := 0
	s.Observe(n, ObserveOptions{}, func(Entry) { calls++ })

	s.Step(0)
	s.Step(0)
	s.Step(0)
	if calls != 1 {
		t.Fatalf("calls while staying in view = %d, want 1", calls)
	}

	scrollTo(cam, 2000)
	s.Step(0)
	scrollTo(cam, 0)
	s.Step(0)
	if calls != 2 {
		t.Errorf("calls after leaving and re-entering = %d, want 2", calls)
	}
}

func TestObserveOnce(t *testing.T) {
	s, cam := newTestScene()
	n := addBox(s, "top", 0, 0, 100, 100)
	calls := 0
	h := s.Observe(n, ObserveOptions{Once: true}, func(Entry) { calls++ })

	s.Step(0)
	if h.Active() {
		t.Error("once observation still active after firing")
	}
	scrollTo(cam, 2000)
	s.Step(0)
	scrollTo(cam, 0)
	s.Step(0)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	h.Remove()
	h.Remove()
}

func TestObserveThreshold(t *testing.T) {
	s, cam := newTestScene()
	// Bottom edge of the view sits at y=600; the box straddles it.
	n := addBox(s, "edge", 0, 550, 100, 100)
	var half, most int
	s.Observe(n, ObserveOptions{Threshold: 0.5}, func(Entry) { half++ })
	s.Observe(n, ObserveOptions{Threshold: 0.75}, func(Entry) { most++ })

	s.Step(0)
	if half != 1 || most != 0 {
		t.Fatalf("at 50%% visible: half=%d most=%d, want 1 0", half, most)
	}
	scrollTo(cam, 30)
	s.Step(0)
	if most != 1 {
		t.Errorf("at 80%% visible: most=%d, want 1", most)
	}
}

func TestObserveThresholdClamped(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-1, 0},
		{2, 1},
		{math.NaN(), 0},
		{0.3, 0.3},
	}
	for _, tt := range tests {
		if got := clampThreshold(tt.in); got != tt.want {
			t.Errorf("clampThreshold(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}

	s, _ := newTestScene()
	n := addBox(s, "full", 0, 0, 100, 100)
	fired := false
	s.Observe(n, ObserveOptions{Threshold: 5}, func(Entry) { fired = true })
	s.Step(0)
	if !fired {
		t.Error("threshold above 1 should clamp to 1 and fire when fully visible")
	}
}

func TestObserveRootMargin(t *testing.T) {
	s, _ := newTestScene()
	// Fully visible, but inside the bottom 50px.
	n := addBox(s, "low", 0, 560, 100, 30)
	var plain, shrunk int
	s.Observe(n, ObserveOptions{}, func(Entry) { plain++ })
	s.Observe(n, ObserveOptions{RootMargin: "0px 0px -50px 0px"}, func(Entry) { shrunk++ })
	s.Observe(n, ObserveOptions{RootMargin: "bogus"}, func(Entry) {})

	s.Step(0)
	if plain != 1 {
		t.Errorf("plain = %d, want 1", plain)
	}
	if shrunk != 0 {
		t.Errorf("shrunk margin fired for a node below the trimmed root")
	}
}

func TestObserveReducedMotionSynchronous(t *testing.T) {
	s, _ := newTestScene()
	s.SetMotionPreference(NewMotionToggle(true))
	n := addBox(s, "far", 0, 5000, 100, 100)

	fired := false
	h := s.Observe(n, ObserveOptions{}, func(e Entry) { fired = e.Ratio == 1 })
	if !fired {
		t.Error("reduced motion should run the callback synchronously")
	}
	if h.Active() {
		t.Error("reduced motion should not register an observation")
	}
}

func TestObserveNoViewportFailsOpen(t *testing.T) {
	s := NewScene()
	n := NewBox("x", 10, 10, ColorWhite)
	s.Root().AddChild(n)
	fired := false
	s.Observe(n, ObserveOptions{}, func(Entry) { fired = true })
	if !fired {
		t.Error("without a viewport the callback should run immediately")
	}
}

func TestObserveScreenSizeRoot(t *testing.T) {
	s := NewScene()
	s.SetScreenSize(640, 480)
	n := NewBox("x", 10, 10, ColorWhite)
	n.SetPosition(0, 1000)
	s.Root().AddChild(n)
	fired := false
	s.Observe(n, ObserveOptions{}, func(Entry) { fired = true })
	s.Step(0)
	if fired {
		t.Error("node below the screen should not fire")
	}
}

func TestObserveNilAndDisposed(t *testing.T) {
	s, _ := newTestScene()
	if h := s.Observe(nil, ObserveOptions{}, func(Entry) {}); h.Active() {
		t.Error("nil node registered")
	}
	n := addBox(s, "gone", 0, 0, 10, 10)
	n.Dispose()
	if h := s.Observe(n, ObserveOptions{}, func(Entry) {}); h.Active() {
		t.Error("disposed node registered")
	}
}

func TestObserveDisposedAfterRegister(t *testing.T) {
	s, _ := newTestScene()
	n := addBox(s, "later", 0, 5000, 10, 10)
	h := s.Observe(n, ObserveOptions{}, func(Entry) { t.Error("fired for disposed node") })
	n.Dispose()
	s.Step(0)
	if h.Active() {
		t.Error("observation of disposed node not dropped")
	}
	if s.observers.count() != 0 {
		t.Errorf("observers = %d, want 0", s.observers.count())
	}
}

func TestObserveUnattachedSkipped(t *testing.T) {
	s, _ := newTestScene()
	n := NewBox("loose", 10, 10, ColorWhite)
	calls := 0
	s.Observe(n, ObserveOptions{}, func(Entry) { calls++ })
	s.Step(0)
	if calls != 0 {
		t.Fatal("unattached node fired")
	}
	s.Root().AddChild(n)
	s.Step(0)
	if calls != 1 {
		t.Errorf("calls after attach = %d, want 1", calls)
	}
}

func TestObserveRegisteredInCallbackStartsNextStep(t *testing.T) {
	s, _ := newTestScene()
	a := addBox(s, "a", 0, 0, 10, 10)
	b := addBox(s, "b", 20, 0, 10, 10)
	bFired := 0
	s.Observe(a, ObserveOptions{Once: true}, func(Entry) {
		s.Observe(b, ObserveOptions{}, func(Entry) { bFired++ })
	})
	s.Step(0)
	if bFired != 0 {
		t.Fatal("observation added during evaluate fired in the same step")
	}
	s.Step(0)
	if bFired != 1 {
		t.Errorf("bFired = %d, want 1", bFired)
	}
}

func TestObserversSharePool(t *testing.T) {
	s, _ := newTestScene()
	for i := 0; i < 3; i++ {
		n := addBox(s, "", 0, 5000, 10, 10)
		s.Observe(n, ObserveOptions{Threshold: 0.2, RootMargin: "10px"}, func(Entry) {})
	}
	n := addBox(s, "", 0, 5000, 10, 10)
	s.Observe(n, ObserveOptions{Threshold: 0.3, RootMargin: "10px"}, func(Entry) {})
	if len(s.observers.pools) != 2 {
		t.Errorf("pools = %d, want 2", len(s.observers.pools))
	}
}

func TestIntersectionRatio(t *testing.T) {
	root := Rect{Width: 100, Height: 100}
	tests := []struct {
		b     Rect
		ratio float64
		hit   bool
	}{
		{Rect{X: 0, Y: 0, Width: 10, Height: 10}, 1, true},
		{Rect{X: 90, Y: 0, Width: 20, Height: 10}, 0.5, true},
		{Rect{X: 200, Y: 0, Width: 10, Height: 10}, 0, false},
		{Rect{X: 50, Y: 50}, 1, true},
	}
	for _, tt := range tests {
		r, hit := intersectionRatio(tt.b, root)
		if hit != tt.hit || math.Abs(r-tt.ratio) > 1e-9 {
			t.Errorf("intersectionRatio(%+v) = %v,%v want %v,%v", tt.b, r, hit, tt.ratio, tt.hit)
		}
	}
}
