package unveil

import (
	"math"
	"testing"
)

func TestInjectScroll(t *testing.T) {
	s, cam := newTestScene()
	s.InjectScroll(0, 100)
	s.InjectScroll(0, 50)
	if len(s.injectQueue) != 2 {
		t.Fatalf("expected 2 queued events, got %d", len(s.injectQueue))
	}

	// One event per frame.
	s.processScrollInput(false)
	if cam.Y != 400 {
		t.Errorf("Y after frame 1 = %v, want 400", cam.Y)
	}
	if len(s.injectQueue) != 1 {
		t.Fatalf("expected 1 remaining event, got %d", len(s.injectQueue))
	}
	s.processScrollInput(false)
	if cam.Y != 450 {
		t.Errorf("Y after frame 2 = %v, want 450", cam.Y)
	}
}

func TestInjectScrollToTopLeft(t *testing.T) {
	s, cam := newTestScene()
	s.InjectScrollTo(0, 1200, 0)
	s.processScrollInput(false)
	b := cam.VisibleBounds()
	if math.Abs(b.Y-1200) > 1e-9 || math.Abs(b.X) > 1e-9 {
		t.Errorf("visible origin = (%v,%v), want (0,1200)", b.X, b.Y)
	}
}

func TestInjectScrollToAnimated(t *testing.T) {
	s, cam := newTestScene()
	s.InjectScrollTo(0, 1000, 0.5)
	s.processScrollInput(false)
	if !cam.Scrolling() {
		t.Fatal("timed scrollTo should animate")
	}
	cam.update(0.6)
	if math.Abs(cam.Y-1300) > 0.01 {
		t.Errorf("Y = %v, want 1300", cam.Y)
	}
}

func TestInjectScrollZoomed(t *testing.T) {
	s, cam := newTestScene()
	cam.Zoom = 2
	s.InjectScrollTo(100, 100, 0)
	s.processScrollInput(false)
	if cam.X != 300 || cam.Y != 250 {
		t.Errorf("center = (%v,%v), want (300,250)", cam.X, cam.Y)
	}
}

func TestInjectScrollNoCameraDrops(t *testing.T) {
	s := NewScene()
	s.InjectScroll(0, 10)
	s.processScrollInput(false)
	if len(s.injectQueue) != 0 {
		t.Errorf("queue = %d, want 0 without a camera", len(s.injectQueue))
	}
}

func TestProcessInjectedScroll_EmptyQueue(t *testing.T) {
	s, cam := newTestScene()
	if s.processInjectedScroll(cam) {
		t.Error("empty queue should report no event consumed")
	}
}
