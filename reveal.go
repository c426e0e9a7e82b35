package unveil

import (
	"time"

	"github.com/tanema/gween/ease"
)

// Built-in animation names.
const (
	AnimFadeInUp          = "fadeInUp"
	AnimFadeInDown        = "fadeInDown"
	AnimFadeInLeft        = "fadeInLeft"
	AnimFadeInRight       = "fadeInRight"
	AnimFadeIn            = "fadeIn"
	AnimScaleIn           = "scaleIn"
	AnimRevealImageScale  = "revealImageScale"
	imageScaleFactor      = 1.1
	scaleInFactor         = 0.9
	minAnimationDuration  = time.Millisecond
	defaultRevealDuration = 700 * time.Millisecond
	defaultRevealDistance = 50.0
	defaultRevealMargin   = "0px 0px -50px 0px"
	defaultRevealThresh   = 0.1
)

// Default per-item offsets for sibling and wave stagger.
const (
	DefaultStaggerDelay = 100 * time.Millisecond
	DefaultWaveDelay    = 80 * time.Millisecond
)

// RevealDescriptor is the resolved animation applied to one node.
type RevealDescriptor struct {
	Animation string
	Delay     time.Duration
	Duration  time.Duration
	Distance  float64
	Easing    string
}

// Normalize returns a copy with Duration > 0, Delay >= 0 and empty names
// replaced by their defaults.
func (d RevealDescriptor) Normalize() RevealDescriptor {
	if d.Animation == "" {
		d.Animation = AnimFadeInUp
	}
	if d.Duration <= 0 {
		d.Duration = minAnimationDuration
	}
	if d.Delay < 0 {
		d.Delay = 0
	}
	if d.Easing == "" {
		d.Easing = EaseStandard
	}
	return d
}

// Animation computes the pose a node starts from before easing to rest.
type Animation interface {
	From(n *Node, rest Pose, distance float64) Pose
}

// AnimationFunc adapts a function to the Animation interface.
type AnimationFunc func(n *Node, rest Pose, distance float64) Pose

// From implements Animation.
func (f AnimationFunc) From(n *Node, rest Pose, distance float64) Pose {
	return f(n, rest, distance)
}

var animations = map[string]Animation{
	AnimFadeIn: AnimationFunc(func(_ *Node, rest Pose, _ float64) Pose {
		rest.Alpha = 0
		return rest
	}),
	AnimFadeInUp: AnimationFunc(func(_ *Node, rest Pose, d float64) Pose {
		rest.Y += d
		rest.Alpha = 0
		return rest
	}),
	AnimFadeInDown: AnimationFunc(func(_ *Node, rest Pose, d float64) Pose {
		rest.Y -= d
		rest.Alpha = 0
		return rest
	}),
	AnimFadeInLeft: AnimationFunc(func(_ *Node, rest Pose, d float64) Pose {
		rest.X -= d
		rest.Alpha = 0
		return rest
	}),
	AnimFadeInRight: AnimationFunc(func(_ *Node, rest Pose, d float64) Pose {
		rest.X += d
		rest.Alpha = 0
		return rest
	}),
	AnimScaleIn: AnimationFunc(func(n *Node, rest Pose, _ float64) Pose {
		p := scaledAboutCenter(n, rest, scaleInFactor)
		p.Alpha = 0
		return p
	}),
	AnimRevealImageScale: AnimationFunc(func(n *Node, rest Pose, _ float64) Pose {
		p := scaledAboutCenter(n, rest, imageScaleFactor)
		p.Alpha = 0
		return p
	}),
}

// scaledAboutCenter scales the rest pose by k keeping the layout box center
// fixed. Assumes no pivot and no rotation.
func scaledAboutCenter(n *Node, rest Pose, k float64) Pose {
	p := rest
	p.ScaleX = rest.ScaleX * k
	p.ScaleY = rest.ScaleY * k
	p.X = rest.X - n.Width*(p.ScaleX-rest.ScaleX)/2
	p.Y = rest.Y - n.Height*(p.ScaleY-rest.ScaleY)/2
	return p
}

// RegisterAnimation adds or replaces a named animation.
func RegisterAnimation(name string, a Animation) {
	animations[name] = a
}

func lookupAnimation(name string) Animation {
	if a, ok := animations[name]; ok {
		return a
	}
	return animations[AnimFadeInUp]
}

// RevealOptions configures an entrance animation. Zero fields take defaults:
// fadeInUp, 700ms, 50px, standard easing, threshold 0.1, root margin
// "0px 0px -50px 0px". A negative Threshold is clamped to 0, a negative
// Duration to the minimum duration.
type RevealOptions struct {
	Animation  string
	Duration   time.Duration
	Delay      time.Duration
	Distance   float64
	Easing     string
	Threshold  float64
	RootMargin string
	// Repeat replays the animation every time the node re-enters view.
	Repeat bool
}

func (o RevealOptions) descriptor() RevealDescriptor {
	d := RevealDescriptor{
		Animation: o.Animation,
		Delay:     o.Delay,
		Duration:  o.Duration,
		Distance:  o.Distance,
		Easing:    o.Easing,
	}
	if d.Duration == 0 {
		d.Duration = defaultRevealDuration
	}
	if d.Distance == 0 {
		d.Distance = defaultRevealDistance
	}
	return d.Normalize()
}

func (o RevealOptions) observe() ObserveOptions {
	t := o.Threshold
	if t == 0 {
		t = defaultRevealThresh
	}
	m := o.RootMargin
	if m == "" {
		m = defaultRevealMargin
	}
	return ObserveOptions{Threshold: t, RootMargin: m, Once: !o.Repeat}
}

// --- track: one node's animation lifecycle ---

type revealTrack struct {
	scene *Scene
	node  *Node
	desc  RevealDescriptor
	anim  Animation
	ease  ease.TweenFunc

	rest      Pose
	restAlpha float64
	hidden    bool
	posed     bool
	animating bool
	onDone    func()

	timer TimerHandle
	frame FrameHandle
	tween *TweenGroup
	last  time.Duration
}

func newRevealTrack(s *Scene, n *Node, d RevealDescriptor) *revealTrack {
	return &revealTrack{
		scene: s,
		node:  n,
		desc:  d,
		anim:  lookupAnimation(d.Animation),
		ease:  easingOr(d.Easing, ease.OutCubic),
	}
}

// hide saves the node's alpha and makes it transparent. The rest of the
// pose is left to layout until begin.
func (t *revealTrack) hide() {
	if t.hidden || t.node.IsDisposed() {
		return
	}
	t.restAlpha = t.node.Alpha
	t.hidden = true
	t.node.SetAlpha(0)
}

// start schedules the animation after the descriptor's delay.
func (t *revealTrack) start() {
	t.hide()
	if t.desc.Delay <= 0 {
		t.begin()
		return
	}
	t.timer = t.scene.sched.After(t.desc.Delay, t.begin)
}

func (t *revealTrack) begin() {
	t.timer = TimerHandle{}
	if t.node.IsDisposed() {
		t.hidden = false
		t.done()
		return
	}
	t.rest = PoseOf(t.node)
	t.rest.Alpha = t.restAlpha
	t.posed = true
	from := t.anim.From(t.node, t.rest, t.desc.Distance)
	from.Apply(t.node)
	t.tween = TweenPose(t.node, t.rest, float32(t.desc.Duration.Seconds()), t.ease)
	t.animating = true
	t.last = t.scene.Now()
	evt := nodeEvent(EventRevealStart, t.node)
	evt.Delay = t.desc.Delay
	evt.Value = float64(t.desc.Delay.Milliseconds())
	t.scene.emit(evt)
	t.frame = t.scene.sched.RequestFrame(t.tick)
}

func (t *revealTrack) tick(now time.Duration) {
	t.frame = FrameHandle{}
	if t.node.IsDisposed() {
		t.animating = false
		t.hidden = false
		t.posed = false
		t.done()
		return
	}
	dt := now - t.last
	t.last = now
	t.tween.Update(float32(dt.Seconds()))
	if !t.tween.Done {
		t.frame = t.scene.sched.RequestFrame(t.tick)
		return
	}
	// Snap to rest; float32 tween values can land a hair off.
	t.rest.Apply(t.node)
	t.hidden = false
	t.posed = false
	t.animating = false
	t.scene.emit(nodeEvent(EventRevealEnd, t.node))
	t.done()
}

func (t *revealTrack) done() {
	if t.onDone != nil {
		t.onDone()
	}
}

// cancel stops pending work without touching the node.
func (t *revealTrack) cancel() {
	t.timer.Cancel()
	t.timer = TimerHandle{}
	t.frame.Cancel()
	t.frame = FrameHandle{}
	t.animating = false
}

// finish cancels pending work and puts the node at rest. A node still
// waiting on its delay only gets its alpha back.
func (t *revealTrack) finish() {
	t.cancel()
	if t.hidden && !t.node.IsDisposed() {
		if t.posed {
			t.rest.Apply(t.node)
		} else {
			t.node.SetAlpha(t.restAlpha)
		}
	}
	t.hidden = false
	t.posed = false
}

// restart puts the node back at rest and replays.
func (t *revealTrack) restart() {
	t.finish()
	t.start()
}

// --- Reveal: single node ---

// Reveal is the state of a single-node entrance animation.
type Reveal struct {
	scene    *Scene
	track    *revealTrack
	once     bool
	visible  bool
	animated bool
	stopped  bool
	handle   ObserverHandle
	unfinish func()
}

// IsVisible reports whether the node has entered view (or reduced motion
// short-circuited the animation).
func (r *Reveal) IsVisible() bool { return r.visible }

// HasAnimated reports whether the animation has been triggered.
func (r *Reveal) HasAnimated() bool { return r.animated }

// Animating reports whether a tween is in flight or waiting on its delay.
func (r *Reveal) Animating() bool {
	if r.track == nil {
		return false
	}
	return r.track.animating || r.track.timer.id != 0
}

// Descriptor returns the resolved animation descriptor.
func (r *Reveal) Descriptor() RevealDescriptor {
	if r.track == nil {
		return RevealDescriptor{}
	}
	return r.track.desc
}

// Stop unregisters the observer, cancels timers and frames, and leaves the
// node at rest. Safe to call more than once.
func (r *Reveal) Stop() {
	if r.stopped {
		return
	}
	r.stopped = true
	r.handle.Remove()
	r.disarm()
	if r.track != nil {
		r.track.finish()
	}
}

// arm registers the reveal to be finished if reduced motion turns on while
// its node is hidden.
func (r *Reveal) arm() {
	if r.unfinish == nil {
		r.unfinish = r.scene.addFinisher(r.finishNow)
	}
}

func (r *Reveal) disarm() {
	if r.unfinish != nil {
		r.unfinish()
		r.unfinish = nil
	}
}

func (r *Reveal) trigger(Entry) {
	if r.stopped || (r.once && r.animated) {
		return
	}
	r.visible = true
	r.animated = true
	if r.scene.ReducedMotion() {
		r.finishNow()
		return
	}
	r.arm()
	if r.once {
		r.track.start()
		return
	}
	r.track.restart()
}

// finishNow completes immediately, used when reduced motion turns on.
func (r *Reveal) finishNow() {
	r.visible = true
	r.animated = true
	if r.once {
		r.handle.Remove()
	}
	r.disarm()
	r.track.finish()
}

// RevealSingle registers node for an entrance animation when it scrolls
// into view. The node is hidden until then. A nil node yields an inert
// Reveal. Under reduced motion both flags are true on return and nothing is
// scheduled.
func (s *Scene) RevealSingle(node *Node, opts RevealOptions) *Reveal {
	r := &Reveal{scene: s, once: !opts.Repeat}
	if node == nil || node.IsDisposed() {
		return r
	}
	r.track = newRevealTrack(s, node, opts.descriptor())
	if s.ReducedMotion() {
		r.visible = true
		r.animated = true
		return r
	}
	r.track.onDone = r.disarm
	r.track.hide()
	r.arm()
	r.handle = s.Observe(node, opts.observe(), r.trigger)
	return r
}

// StaggerOptions configures sibling stagger. Delay is the base delay; each
// subsequent item adds Stagger (default 100ms).
type StaggerOptions struct {
	RevealOptions
	Stagger   time.Duration
	Direction Direction
}

func (o StaggerOptions) step(def time.Duration) time.Duration {
	if o.Stagger == 0 {
		return def
	}
	if o.Stagger < 0 {
		return 0
	}
	return o.Stagger
}

// RevealItem reveals one node of an externally indexed collection with
// delay base + index*stagger.
func (s *Scene) RevealItem(node *Node, index int, opts StaggerOptions) *Reveal {
	ro := opts.RevealOptions
	ro.Delay = ItemDelay(index, opts.Delay, opts.step(DefaultStaggerDelay))
	return s.RevealSingle(node, ro)
}

// --- RevealGroup: container children ---

// RevealGroup is the state of a container whose children reveal together
// on one trigger with computed per-child delays.
type RevealGroup struct {
	scene     *Scene
	container *Node
	base      RevealDescriptor
	plan      func(n int) []time.Duration
	once      bool

	tracks   map[*Node]*revealTrack
	delays   []time.Duration
	visible  bool
	animated bool
	stopped  bool
	handle   ObserverHandle
	unfinish func()
}

// IsVisible reports whether the container has entered view.
func (g *RevealGroup) IsVisible() bool { return g.visible }

// HasAnimated reports whether the group has been triggered.
func (g *RevealGroup) HasAnimated() bool { return g.animated }

// Delays returns the per-child delays assigned at the last trigger, in
// document order.
func (g *RevealGroup) Delays() []time.Duration {
	return g.delays
}

// Animating reports whether any child is still waiting or tweening.
func (g *RevealGroup) Animating() bool {
	for _, t := range g.tracks {
		if t.animating || t.timer.id != 0 {
			return true
		}
	}
	return false
}

// Stop unregisters the observer and leaves every child at rest.
func (g *RevealGroup) Stop() {
	if g.stopped {
		return
	}
	g.stopped = true
	g.handle.Remove()
	g.disarm()
	for _, t := range g.tracks {
		t.finish()
	}
}

func (g *RevealGroup) arm() {
	if g.unfinish == nil {
		g.unfinish = g.scene.addFinisher(g.finishNow)
	}
}

func (g *RevealGroup) disarm() {
	if g.unfinish != nil {
		g.unfinish()
		g.unfinish = nil
	}
}

func (g *RevealGroup) pending() bool {
	for _, t := range g.tracks {
		if t.hidden {
			return true
		}
	}
	return false
}

// trackDone releases the finisher once no child is hidden.
func (g *RevealGroup) trackDone() {
	if !g.pending() {
		g.disarm()
	}
}

func (g *RevealGroup) hideChildren() {
	for _, c := range g.container.Children() {
		g.trackFor(c).hide()
	}
}

func (g *RevealGroup) trackFor(n *Node) *revealTrack {
	if t, ok := g.tracks[n]; ok {
		return t
	}
	t := newRevealTrack(g.scene, n, g.base)
	t.onDone = g.trackDone
	g.tracks[n] = t
	return t
}

func (g *RevealGroup) trigger(Entry) {
	if g.stopped || (g.once && g.animated) {
		return
	}
	g.visible = true
	g.animated = true
	if g.scene.ReducedMotion() {
		g.finishNow()
		return
	}

	// One snapshot of the children and one delay plan per trigger.
	children := append([]*Node(nil), g.container.Children()...)
	g.delays = g.plan(len(children))
	live := make(map[*Node]bool, len(children))
	for i, c := range children {
		live[c] = true
		t := g.trackFor(c)
		if !g.once {
			t.finish()
		}
		t.desc.Delay = g.delays[i]
		t.start()
	}
	// Children removed since registration must not stay hidden.
	for n, t := range g.tracks {
		if !live[n] {
			t.finish()
			delete(g.tracks, n)
		}
	}
	if g.pending() {
		g.arm()
	} else {
		g.disarm()
	}
}

func (g *RevealGroup) finishNow() {
	g.visible = true
	g.animated = true
	if g.once {
		g.handle.Remove()
	}
	g.disarm()
	for _, t := range g.tracks {
		t.finish()
	}
}

func (s *Scene) revealGroup(container *Node, opts RevealOptions, plan func(n int) []time.Duration) *RevealGroup {
	g := &RevealGroup{
		scene:     s,
		container: container,
		base:      opts.descriptor(),
		plan:      plan,
		once:      !opts.Repeat,
		tracks:    make(map[*Node]*revealTrack),
	}
	if container == nil || container.IsDisposed() {
		return g
	}
	if s.ReducedMotion() {
		g.visible = true
		g.animated = true
		return g
	}
	g.hideChildren()
	g.arm()
	g.handle = s.Observe(container, opts.observe(), g.trigger)
	return g
}

// RevealStagger reveals the container's direct children when the container
// enters view. Delays are Delay + index*Stagger, with index reversed for
// Backward. Children are enumerated once, at trigger time.
func (s *Scene) RevealStagger(container *Node, opts StaggerOptions) *RevealGroup {
	step := opts.step(DefaultStaggerDelay)
	base := opts.Delay
	dir := opts.Direction
	return s.revealGroup(container, opts.RevealOptions, func(n int) []time.Duration {
		return StaggerDelays(n, base, step, dir)
	})
}

// WaveOptions configures 2-D wave stagger. Columns overrides the inferred
// column count; FallbackColumns is used when the container has no grid
// layout (default 3).
type WaveOptions struct {
	RevealOptions
	Stagger         time.Duration
	Columns         int
	FallbackColumns int
}

// RevealWave reveals the container's children with delay
// Delay + (row+col)*Stagger, where rows and columns come from the
// container's grid layout.
func (s *Scene) RevealWave(container *Node, opts WaveOptions) *RevealGroup {
	step := opts.Stagger
	switch {
	case step == 0:
		step = DefaultWaveDelay
	case step < 0:
		step = 0
	}
	base := opts.Delay
	return s.revealGroup(container, opts.RevealOptions, func(n int) []time.Duration {
		cols := opts.Columns
		if cols <= 0 {
			cols = GridColumns(container, opts.FallbackColumns)
		}
		return WaveDelays(n, cols, base, step)
	})
}
