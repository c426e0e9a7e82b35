package unveil

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
)

// EntityStore is the interface for optional ECS integration.
// When set on a Scene, motion events are forwarded to the ECS.
type EntityStore interface {
	EmitEvent(event MotionEvent)
}

// MotionEvent describes a visibility or animation milestone.
type MotionEvent struct {
	Type     EventType
	NodeID   uint32
	EntityID uint32
	Name     string
	// Value carries the count-up target for count events and the applied
	// delay in milliseconds for reveal events.
	Value float64
	Delay time.Duration
	Time  time.Duration
}

type finisher struct {
	id uint32
	fn func()
}

// Scene is the top-level object that owns the node tree, cameras, the frame
// scheduler and visibility observers.
type Scene struct {
	root  *Node
	store EntityStore
	debug bool
	log   zerolog.Logger

	// ClearColor fills the screen before drawing when its alpha is non-zero.
	ClearColor Color

	// ScrollSpeed is the number of world units scrolled per mouse wheel notch.
	// Zero disables wheel scrolling.
	ScrollSpeed float64

	cameras []*Camera
	sched   *Scheduler

	observers observerSet

	motion    MotionPreference
	motionSub CallbackHandle
	finishers []finisher
	nextFin   uint32

	screenW, screenH int

	injectQueue []scrollEvent
	testRunner  *TestRunner
	updateFunc  func() error

	// ScreenshotDir is where Screenshot writes PNGs. Default "screenshots".
	ScreenshotDir   string
	screenshotQueue []string

	frameCount uint64
}

// NewScene creates a new scene with a pre-created root container.
func NewScene() *Scene {
	return &Scene{
		root:        NewContainer("root"),
		sched:       NewScheduler(),
		log:         zerolog.Nop(),
		ScrollSpeed: defaultScrollSpeed,
	}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// Scheduler returns the scene's frame scheduler.
func (s *Scene) Scheduler() *Scheduler {
	return s.sched
}

// Now returns the current scene time.
func (s *Scene) Now() time.Duration {
	return s.sched.Now()
}

// Update is called once per Ebitengine tick. It consumes wheel and injected
// scroll input, then advances the scene by one tick.
func (s *Scene) Update() error {
	s.tick(tickDuration(), true)
	if s.updateFunc != nil {
		return s.updateFunc()
	}
	return nil
}

// Tick is the headless counterpart of Update: it runs the attached test
// runner, applies injected scrolls and advances the scene by dt. Mouse
// wheel input and the update func are ignored.
func (s *Scene) Tick(dt time.Duration) {
	s.tick(dt, false)
}

func (s *Scene) tick(dt time.Duration, wheel bool) {
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processScrollInput(wheel)
	s.Step(dt)
	if !wheel {
		s.dropScreenshots()
	}
}

// tickDuration returns the duration of one Ebitengine tick.
func tickDuration() time.Duration {
	tps := ebiten.TPS()
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	return time.Second / time.Duration(tps)
}

// Step advances the scene by dt: fires due timers, runs node update hooks,
// refreshes world transforms and cameras, evaluates visibility observers and
// finally runs requested frames. Step is deterministic and needs no window,
// which makes it the entry point for tests and headless simulation.
func (s *Scene) Step(dt time.Duration) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.sched.Advance(dt)
	secs := dt.Seconds()

	updateNodes(s.root, secs)
	updateWorldTransform(s.root, identityTransform, 1.0, false)
	for _, cam := range s.cameras {
		cam.update(float32(secs))
	}

	fired := s.observers.evaluate(s)
	frames := s.sched.RunFrame()
	s.frameCount++

	if s.debug {
		s.debugLog(debugStats{
			stepTime:     time.Since(t0),
			observations: s.observers.count(),
			fired:        fired,
			frames:       frames,
			pending:      s.sched.Pending(),
		})
	}
}

// SetUpdateFunc sets a callback run at the end of every Update.
func (s *Scene) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// NewCamera creates a camera with the given viewport and adds it to the scene.
// The first camera is the visibility root.
func (s *Scene) NewCamera(viewport Rect) *Camera {
	cam := newCamera(viewport)
	s.cameras = append(s.cameras, cam)
	return cam
}

// RemoveCamera removes a camera from the scene.
func (s *Scene) RemoveCamera(cam *Camera) {
	for i, c := range s.cameras {
		if c == cam {
			s.cameras = append(s.cameras[:i], s.cameras[i+1:]...)
			return
		}
	}
}

// Cameras returns the scene's camera list. The returned slice MUST NOT be mutated.
func (s *Scene) Cameras() []*Camera {
	return s.cameras
}

// PrimaryCamera returns the first camera, or nil.
func (s *Scene) PrimaryCamera() *Camera {
	if len(s.cameras) == 0 {
		return nil
	}
	return s.cameras[0]
}

// SetScreenSize records the screen size. Without a camera, the screen is the
// visibility root.
func (s *Scene) SetScreenSize(w, h int) {
	s.screenW, s.screenH = w, h
}

// rootBounds returns the world-space rectangle observers intersect against.
// ok is false when nothing is known about the viewport yet.
func (s *Scene) rootBounds() (r Rect, ok bool) {
	if cam := s.PrimaryCamera(); cam != nil {
		return cam.VisibleBounds(), true
	}
	if s.screenW > 0 && s.screenH > 0 {
		return Rect{Width: float64(s.screenW), Height: float64(s.screenH)}, true
	}
	return Rect{}, false
}

// attached reports whether n is part of this scene's tree.
func (s *Scene) attached(n *Node) bool {
	for p := n; p != nil; p = p.Parent {
		if p == s.root {
			return true
		}
	}
	return false
}

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

// emit forwards an event to the entity store and the debug log.
func (s *Scene) emit(evt MotionEvent) {
	evt.Time = s.sched.Now()
	if s.store != nil {
		s.store.EmitEvent(evt)
	}
	if s.debug {
		s.log.Debug().
			Str("event", evt.Type.String()).
			Str("node", evt.Name).
			Float64("value", evt.Value).
			Dur("delay", evt.Delay).
			Dur("at", evt.Time).
			Msg("motion")
	}
}

func nodeEvent(t EventType, n *Node) MotionEvent {
	return MotionEvent{Type: t, NodeID: n.ID, EntityID: n.EntityID, Name: n.Name}
}

// SetLogger sets the logger used for diagnostics. The default discards.
func (s *Scene) SetLogger(l zerolog.Logger) {
	s.log = l
}

// Logger returns the scene's logger.
func (s *Scene) Logger() zerolog.Logger {
	return s.log
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth and child count warnings are logged, and
// per-step scheduler and observer stats are logged at debug level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
	if enabled {
		debugLogger = s.log
	}
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply. Only valid
// with a single Scene.
var globalDebug bool

// --- Motion preference ---

// SetMotionPreference sets the reduced-motion source. If p also implements
// MotionNotifier, switching to reduced motion finishes every pending
// animation immediately.
func (s *Scene) SetMotionPreference(p MotionPreference) {
	s.motionSub.Remove()
	s.motionSub = CallbackHandle{}
	s.motion = p
	if n, ok := p.(MotionNotifier); ok {
		s.motionSub = n.OnChange(func(reduced bool) {
			if reduced {
				s.finishPending()
			}
		})
	}
}

// ReducedMotion reports the current preference. False when no source is set.
func (s *Scene) ReducedMotion() bool {
	return s.motion != nil && s.motion.PrefersReducedMotion()
}

// addFinisher registers fn to run if reduced motion turns on while an
// animation is pending. The returned func unregisters it.
func (s *Scene) addFinisher(fn func()) func() {
	s.nextFin++
	id := s.nextFin
	s.finishers = append(s.finishers, finisher{id: id, fn: fn})
	return func() {
		for i := range s.finishers {
			if s.finishers[i].id == id {
				s.finishers = append(s.finishers[:i], s.finishers[i+1:]...)
				return
			}
		}
	}
}

func (s *Scene) finishPending() {
	pending := s.finishers
	s.finishers = nil
	for _, f := range pending {
		f.fn()
	}
	if s.debug {
		s.log.Debug().Int("finished", len(pending)).Msg("reduced motion enabled")
	}
}
