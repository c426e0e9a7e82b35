package unveil

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestNewScene(t *testing.T) {
	s := NewScene()
	if s.root == nil {
		t.Fatal("root should not be nil")
	}
	if s.root.Name != "root" {
		t.Errorf("root.Name = %q, want %q", s.root.Name, "root")
	}
	if s.root.Type != NodeTypeContainer {
		t.Errorf("root.Type = %d, want NodeTypeContainer", s.root.Type)
	}
	if s.Now() != 0 {
		t.Errorf("Now = %v, want 0", s.Now())
	}
	if s.ReducedMotion() {
		t.Error("new scene should not prefer reduced motion")
	}
}

func TestSceneRoot(t *testing.T) {
	s := NewScene()
	if s.Root() != s.root {
		t.Error("Root() should return the internal root node")
	}
}

func TestSceneSetEntityStore(t *testing.T) {
	s := NewScene()
	s.SetEntityStore(nil) // should not panic
	if s.store != nil {
		t.Error("store should be nil")
	}
}

func TestSceneSetDebugMode(t *testing.T) {
	s := NewScene()
	s.SetDebugMode(true)
	if !s.debug {
		t.Error("debug should be true")
	}
	s.SetDebugMode(false)
	if s.debug {
		t.Error("debug should be false")
	}
}

func TestSceneStepOrder(t *testing.T) {
	s, _ := newTestScene()
	n := addBox(s, "n", 0, 0, 10, 10)
	var order []string
	s.Scheduler().After(10*time.Millisecond, func() { order = append(order, "timer") })
	n.OnUpdate = func(float64) { order = append(order, "update") }
	s.Observe(n, ObserveOptions{Once: true}, func(Entry) { order = append(order, "observe") })
	s.Scheduler().RequestFrame(func(time.Duration) { order = append(order, "frame") })

	s.Step(10 * time.Millisecond)
	want := []string{"timer", "update", "observe", "frame"}
	if diff := cmp.Diff(want, order); diff != "" {
		t.Errorf("step order (-want +got):\n%s", diff)
	}
}

func TestSceneStepUpdatesWorldBeforeObserving(t *testing.T) {
	s, _ := newTestScene()
	n := addBox(s, "mover", 0, 2000, 10, 10)
	fired := false
	s.Observe(n, ObserveOptions{}, func(Entry) { fired = true })
	n.OnUpdate = func(float64) { n.SetPosition(0, 10) }
	s.Step(0)
	if !fired {
		t.Error("observer should see the position set by OnUpdate in the same step")
	}
}

func TestSceneTickAppliesInjectedScroll(t *testing.T) {
	s, cam := newTestScene()
	s.InjectScroll(0, 250)
	s.Tick(16 * time.Millisecond)
	if cam.Y != 550 {
		t.Errorf("camera Y = %v, want 550", cam.Y)
	}
	if s.Now() != 16*time.Millisecond {
		t.Errorf("Now = %v, want 16ms", s.Now())
	}
}

func TestSceneRootBounds(t *testing.T) {
	s := NewScene()
	if _, ok := s.rootBounds(); ok {
		t.Error("no camera and no screen should report no viewport")
	}
	s.SetScreenSize(320, 240)
	if r, ok := s.rootBounds(); !ok || r != (Rect{Width: 320, Height: 240}) {
		t.Errorf("screen root = %+v,%v", r, ok)
	}
	s.NewCamera(Rect{Width: 800, Height: 600})
	if r, _ := s.rootBounds(); r.Width != 800 {
		t.Errorf("camera root width = %v, want 800", r.Width)
	}
}

func TestSceneSetMotionPreferenceReplacesSubscription(t *testing.T) {
	s, _ := newTestScene()
	old := NewMotionToggle(false)
	s.SetMotionPreference(old)
	n := addBox(s, "far", 0, 5000, 10, 10)
	r := s.RevealSingle(n, RevealOptions{})

	s.SetMotionPreference(NewMotionToggle(false))
	old.Set(true)
	if r.IsVisible() {
		t.Error("replaced preference should no longer finish animations")
	}
	if s.ReducedMotion() {
		t.Error("scene should read the new preference")
	}
}

func TestSceneEmitStampsTime(t *testing.T) {
	s := NewScene()
	log := &eventLog{}
	s.SetEntityStore(log)
	s.Step(250 * time.Millisecond)
	n := NewBox("n", 1, 1, ColorWhite)
	n.EntityID = 9
	s.emit(nodeEvent(EventEnter, n))
	e := log.events[0]
	if e.Time != 250*time.Millisecond || e.EntityID != 9 || e.NodeID != n.ID {
		t.Errorf("event = %+v", e)
	}
}
