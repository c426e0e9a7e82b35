package unveil

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	defaultCountDuration = time.Second
	defaultCountThresh   = 0.5
	defaultCountMargin   = "0px"
	maxCountDecimals     = 10
)

// countEasings are evaluated in float64 so the displayed value does not pick
// up float32 rounding on the way to the snap.
var countEasings = map[string]func(t float64) float64{
	EaseOut: func(t float64) float64 {
		return 1 - (1-t)*(1-t)
	},
	EaseInOut: func(t float64) float64 {
		if t < 0.5 {
			return 2 * t * t
		}
		return -1 + (4-2*t)*t
	},
	EaseOutCubic: func(t float64) float64 {
		u := 1 - t
		return 1 - u*u*u
	},
	EaseLinear: func(t float64) float64 { return t },
}

// countEasing resolves name to a unit curve. Unknown names use ease-out.
func countEasing(name string) func(float64) float64 {
	if name == "" {
		return countEasings[EaseOut]
	}
	if fn, ok := countEasings[name]; ok {
		return fn
	}
	tf, err := ParseEasing(name)
	if err != nil {
		return countEasings[EaseOut]
	}
	return func(t float64) float64 { return Ease(tf, t) }
}

// CountUpOptions configures a count-up. Zero fields take defaults: 1000ms,
// ease-out, threshold 0.5, root margin "0px", stagger 100ms. A negative
// Threshold is clamped to 0; a non-positive Duration other than zero becomes
// 1ms.
type CountUpOptions struct {
	Duration  time.Duration
	Delay     time.Duration
	Easing    string
	Start     float64
	Decimals  int
	Threshold float64
	// RootMargin is CSS-style, see ObserveOptions.
	RootMargin string
	// IgnoreReducedMotion animates even when reduced motion is preferred.
	IgnoreReducedMotion bool
	// StaggerDelay is the per-item offset for CountUpStagger and CountUpGroup.
	StaggerDelay time.Duration

	// Prefix, Suffix and Separator decorate Text ("$", "+", ",").
	Prefix    string
	Suffix    string
	Separator string
	// Label, when it is a text node, has its content kept in sync with Text.
	Label *Node
}

func (o CountUpOptions) observe() ObserveOptions {
	t := o.Threshold
	if t == 0 {
		t = defaultCountThresh
	}
	m := o.RootMargin
	if m == "" {
		m = defaultCountMargin
	}
	return ObserveOptions{Threshold: t, RootMargin: m, Once: true}
}

func (o CountUpOptions) staggerStep() time.Duration {
	switch {
	case o.StaggerDelay == 0:
		return DefaultStaggerDelay
	case o.StaggerDelay < 0:
		return 0
	}
	return o.StaggerDelay
}

// CountUp animates a displayed number from Start to a target once, the
// first time its node becomes visible.
type CountUp struct {
	scene *Scene
	node  *Node

	target   float64
	start    float64
	decimals int
	duration time.Duration
	delay    time.Duration
	ease     func(float64) float64
	respect  bool

	prefix, suffix, sep string
	label               *Node

	display   float64
	visible   bool
	animating bool
	animated  bool
	stopped   bool

	t0       time.Duration
	timer    TimerHandle
	frame    FrameHandle
	handle   ObserverHandle
	unfinish func()
}

func newCountUp(s *Scene, node *Node, target float64, opts CountUpOptions) *CountUp {
	start := opts.Start
	if math.IsNaN(start) || math.IsInf(start, 0) {
		start = 0
	}
	if math.IsNaN(target) || math.IsInf(target, 0) {
		target = start
	}
	dur := opts.Duration
	switch {
	case dur == 0:
		dur = defaultCountDuration
	case dur < 0:
		dur = minAnimationDuration
	}
	delay := opts.Delay
	if delay < 0 {
		delay = 0
	}
	dec := opts.Decimals
	if dec < 0 {
		dec = 0
	}
	if dec > maxCountDecimals {
		dec = maxCountDecimals
	}
	c := &CountUp{
		scene:    s,
		node:     node,
		target:   target,
		start:    start,
		decimals: dec,
		duration: dur,
		delay:    delay,
		ease:     countEasing(opts.Easing),
		respect:  !opts.IgnoreReducedMotion,
		prefix:   opts.Prefix,
		suffix:   opts.Suffix,
		sep:      opts.Separator,
		label:    opts.Label,
	}
	c.setDisplay(roundTo(start, dec))
	return c
}

// DisplayValue returns the current displayed number.
func (c *CountUp) DisplayValue() float64 { return c.display }

// Target returns the (clamped) destination value.
func (c *CountUp) Target() float64 { return c.target }

// IsVisible reports whether the node has entered view.
func (c *CountUp) IsVisible() bool { return c.visible }

// IsAnimating reports whether the tick loop is running.
func (c *CountUp) IsAnimating() bool { return c.animating }

// HasAnimated reports whether the count has been triggered. It never
// reverts to false.
func (c *CountUp) HasAnimated() bool { return c.animated }

// Text returns the display value formatted with Decimals, Separator,
// Prefix and Suffix.
func (c *CountUp) Text() string {
	return c.prefix + formatNumber(c.display, c.decimals, c.sep) + c.suffix
}

// Stop cancels observation, delay and tick loop. The display keeps its last
// value. Safe to call more than once.
func (c *CountUp) Stop() {
	if c.stopped {
		return
	}
	c.stopped = true
	c.handle.Remove()
	c.cancel()
	if c.unfinish != nil {
		c.unfinish()
	}
}

func (c *CountUp) cancel() {
	c.timer.Cancel()
	c.timer = TimerHandle{}
	c.frame.Cancel()
	c.frame = FrameHandle{}
	c.animating = false
}

func (c *CountUp) setDisplay(v float64) {
	c.display = v
	if c.label != nil && c.label.TextBlock != nil && !c.label.IsDisposed() {
		c.label.SetText(c.Text())
	}
}

// trigger starts the count after its delay. First trigger wins.
func (c *CountUp) trigger(Entry) {
	if c.stopped || c.animated {
		return
	}
	c.visible = true
	c.animated = true
	if c.respect && c.scene.ReducedMotion() {
		c.finishNow()
		return
	}
	if c.delay <= 0 {
		c.begin()
		return
	}
	c.timer = c.scene.sched.After(c.delay, c.begin)
}

func (c *CountUp) begin() {
	c.timer = TimerHandle{}
	c.t0 = c.scene.Now()
	c.animating = true
	if c.node != nil {
		evt := nodeEvent(EventCountStart, c.node)
		evt.Value = c.target
		evt.Delay = c.delay
		c.scene.emit(evt)
	}
	c.frame = c.scene.sched.RequestFrame(c.tick)
}

func (c *CountUp) tick(now time.Duration) {
	c.frame = FrameHandle{}
	elapsed := now - c.t0
	progress := math.Min(float64(elapsed)/float64(c.duration), 1)
	if progress >= 1 {
		c.complete()
		return
	}
	eased := c.ease(progress)
	c.setDisplay(roundTo(c.start+(c.target-c.start)*eased, c.decimals))
	c.frame = c.scene.sched.RequestFrame(c.tick)
}

// complete snaps to the exact target.
func (c *CountUp) complete() {
	c.animating = false
	c.setDisplay(roundTo(c.target, c.decimals))
	if c.unfinish != nil {
		c.unfinish()
		c.unfinish = nil
	}
	if c.node != nil {
		evt := nodeEvent(EventCountEnd, c.node)
		evt.Value = c.target
		c.scene.emit(evt)
	}
}

// finishNow jumps to the target without ticking.
func (c *CountUp) finishNow() {
	c.handle.Remove()
	c.cancel()
	c.visible = true
	c.animated = true
	c.setDisplay(roundTo(c.target, c.decimals))
	if c.unfinish != nil {
		c.unfinish()
		c.unfinish = nil
	}
}

// CountUpInView counts from opts.Start to target the first time node is
// visible, after opts.Delay. Under reduced motion (unless ignored) the
// display is the target on return and nothing is scheduled. A nil node
// yields a counter that stays at Start.
func (s *Scene) CountUpInView(target float64, node *Node, opts CountUpOptions) *CountUp {
	c := newCountUp(s, node, target, opts)
	if c.respect && s.ReducedMotion() {
		c.finishNow()
		return c
	}
	if node == nil || node.IsDisposed() {
		return c
	}
	if c.respect {
		c.unfinish = s.addFinisher(c.finishNow)
	}
	c.handle = s.observe(node, opts.observe(), c.trigger, c.respect)
	return c
}

// CountUpStagger counts targets[itemIndex] when container becomes visible,
// starting Delay + itemIndex*StaggerDelay after the trigger. Each call
// observes the container on its own; use CountUpGroup to share one
// observation.
func (s *Scene) CountUpStagger(targets []float64, container *Node, itemIndex int, opts CountUpOptions) *CountUp {
	target := opts.Start
	if itemIndex >= 0 && itemIndex < len(targets) {
		target = targets[itemIndex]
	}
	opts.Delay = ItemDelay(itemIndex, opts.Delay, opts.staggerStep())
	return s.CountUpInView(target, container, opts)
}

// CounterGroup is a set of count-ups sharing one container observation.
type CounterGroup struct {
	counters []*CountUp
	handle   ObserverHandle
	stopped  bool
	unfinish func()
}

// Counters returns the group's counters in target order.
func (g *CounterGroup) Counters() []*CountUp {
	return g.counters
}

// Stop stops every counter and the shared observation.
func (g *CounterGroup) Stop() {
	if g.stopped {
		return
	}
	g.stopped = true
	g.handle.Remove()
	g.release()
	for _, c := range g.counters {
		c.Stop()
	}
}

// release drops the group finisher.
func (g *CounterGroup) release() {
	if g.unfinish != nil {
		g.unfinish()
		g.unfinish = nil
	}
}

// finishNow drops the shared observation; the counters finish themselves.
func (g *CounterGroup) finishNow() {
	g.handle.Remove()
	g.release()
}

// CountUpGroup creates one counter per target. All counters start from a
// single trigger on container, counter i after Delay + i*StaggerDelay.
// Labels, when given, are assigned to counters by index.
func (s *Scene) CountUpGroup(targets []float64, container *Node, opts CountUpOptions, labels ...*Node) *CounterGroup {
	g := &CounterGroup{counters: make([]*CountUp, len(targets))}
	step := opts.staggerStep()
	for i, t := range targets {
		o := opts
		o.Delay = ItemDelay(i, opts.Delay, step)
		o.Label = nil
		if i < len(labels) {
			o.Label = labels[i]
		}
		g.counters[i] = newCountUp(s, container, t, o)
	}
	respect := !opts.IgnoreReducedMotion
	if respect && s.ReducedMotion() {
		for _, c := range g.counters {
			c.finishNow()
		}
		return g
	}
	if container == nil || container.IsDisposed() || len(targets) == 0 {
		return g
	}
	if respect {
		for _, c := range g.counters {
			c.unfinish = s.addFinisher(c.finishNow)
		}
		g.unfinish = s.addFinisher(g.finishNow)
	}
	g.handle = s.observe(container, opts.observe(), func(e Entry) {
		g.release()
		for _, c := range g.counters {
			c.trigger(e)
		}
	}, respect)
	return g
}

// roundTo rounds v half away from zero to decimals places.
func roundTo(v float64, decimals int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	f, _ := decimal.NewFromFloat(v).Round(int32(decimals)).Float64()
	return f
}

// formatNumber renders v with fixed decimals and an optional thousands
// separator.
func formatNumber(v float64, decimals int, sep string) string {
	s := decimal.NewFromFloat(v).StringFixed(int32(decimals))
	if sep == "" {
		return s
	}
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, hasFrac := strings.Cut(s, ".")
	n, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return sign + s
	}
	// English groups by three with ","; swap in the caller's separator.
	out := strings.ReplaceAll(message.NewPrinter(language.English).Sprintf("%d", n), ",", sep)
	if hasFrac {
		out += "." + frac
	}
	return sign + out
}
