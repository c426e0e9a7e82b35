package unveil

import "github.com/hajimehoshi/ebiten/v2"

// defaultScrollSpeed is the world distance scrolled per wheel notch.
const defaultScrollSpeed = 60

// scrollEvent is a single injected scroll. Absolute events move the primary
// camera so the world point (x, y) sits at the top-left of its viewport.
type scrollEvent struct {
	dx, dy   float64
	x, y     float64
	absolute bool
	duration float32
}

// InjectScroll queues a relative scroll of the primary camera by (dx, dy)
// world units. The event is consumed on the next Update.
func (s *Scene) InjectScroll(dx, dy float64) {
	s.injectQueue = append(s.injectQueue, scrollEvent{dx: dx, dy: dy})
}

// InjectScrollTo queues a smooth scroll that brings world point (x, y) to
// the top-left of the primary camera's viewport over duration seconds.
func (s *Scene) InjectScrollTo(x, y float64, duration float32) {
	s.injectQueue = append(s.injectQueue, scrollEvent{x: x, y: y, absolute: true, duration: duration})
}

// processScrollInput applies one injected event, or the mouse wheel when the
// queue is empty and wheel is set, to the primary camera.
func (s *Scene) processScrollInput(wheel bool) {
	cam := s.PrimaryCamera()
	if cam == nil {
		s.injectQueue = s.injectQueue[:0]
		return
	}
	if s.processInjectedScroll(cam) {
		return
	}
	if !wheel || s.ScrollSpeed == 0 {
		return
	}
	wx, wy := ebiten.Wheel()
	if wx == 0 && wy == 0 {
		return
	}
	cam.ScrollBy(-wx*s.ScrollSpeed, -wy*s.ScrollSpeed)
}

// processInjectedScroll pops one event from the inject queue. Returns true
// if an event was consumed (wheel input should be skipped).
func (s *Scene) processInjectedScroll(cam *Camera) bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	if !evt.absolute {
		cam.ScrollBy(evt.dx, evt.dy)
		return true
	}
	cx := evt.x + cam.Viewport.Width/(2*cam.Zoom)
	cy := evt.y + cam.Viewport.Height/(2*cam.Zoom)
	cam.ScrollTo(cx, cy, evt.duration, nil)
	return true
}
