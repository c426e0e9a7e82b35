package unveil

import (
	"math"
	"time"
)

// ObserveOptions configures a visibility observation.
type ObserveOptions struct {
	// Threshold is the fraction of the node's area that must be visible.
	// Values outside [0,1] are clamped; 0 fires on any overlap.
	Threshold float64
	// RootMargin grows (positive) or shrinks (negative) the viewport before
	// intersecting, CSS-style: "0px 0px -50px 0px". Invalid strings are
	// treated as zero.
	RootMargin string
	// Once removes the observation after its first enter.
	Once bool
}

// Entry is delivered to an observer callback when its node enters view.
type Entry struct {
	Node   *Node
	Ratio  float64 // visible fraction of the node's area
	Bounds Rect    // node world bounds
	Root   Rect    // margin-adjusted root bounds
	Time   time.Duration
}

type observation struct {
	id           uint32
	node         *Node
	once         bool
	fn           func(Entry)
	intersecting bool
	removed      bool
}

type observerKey struct {
	threshold float64
	margin    string
}

// observerPool groups observations sharing threshold and margin so the root
// rectangle is computed once per group.
type observerPool struct {
	key       observerKey
	threshold float64
	margin    Margin
	entries   []*observation
}

type observerSet struct {
	pools  []*observerPool
	nextID uint32
}

// ObserverHandle unregisters an observation. The zero value is inert.
type ObserverHandle struct {
	obs *observation
}

// Remove stops the observation. Safe to call more than once and after a
// Once observation has fired.
func (h ObserverHandle) Remove() {
	if h.obs == nil {
		return
	}
	h.obs.removed = true
	h.obs.fn = nil
}

// Active reports whether the observation is still registered.
func (h ObserverHandle) Active() bool {
	return h.obs != nil && !h.obs.removed
}

// clampThreshold maps any float to [0,1]; NaN becomes 0.
func clampThreshold(t float64) float64 {
	return clamp01(t)
}

// Observe calls onEnter each time node goes from not intersecting to
// intersecting the primary camera's visible bounds (adjusted by RootMargin)
// by at least Threshold. Observation starts on the next Step.
//
// Degraded paths never leave content hidden:
//   - nil or disposed node: nothing is registered.
//   - reduced motion: onEnter runs synchronously, nothing is registered.
//   - no camera and no screen size: onEnter runs synchronously.
func (s *Scene) Observe(node *Node, opts ObserveOptions, onEnter func(Entry)) ObserverHandle {
	return s.observe(node, opts, onEnter, true)
}

// observe registers an observation. With honorReduced false the reduced
// motion short-circuit is skipped and the node is gated on visibility.
func (s *Scene) observe(node *Node, opts ObserveOptions, onEnter func(Entry), honorReduced bool) ObserverHandle {
	if node == nil || node.IsDisposed() || onEnter == nil {
		return ObserverHandle{}
	}
	if honorReduced && s.ReducedMotion() {
		onEnter(Entry{Node: node, Ratio: 1, Bounds: node.WorldBounds(), Time: s.Now()})
		return ObserverHandle{}
	}
	if _, ok := s.rootBounds(); !ok {
		s.log.Debug().Str("node", node.Name).Msg("no viewport; treating node as visible")
		onEnter(Entry{Node: node, Ratio: 1, Bounds: node.WorldBounds(), Time: s.Now()})
		return ObserverHandle{}
	}

	threshold := clampThreshold(opts.Threshold)
	margin, err := ParseMargin(opts.RootMargin)
	if err != nil {
		s.log.Debug().Err(err).Str("node", node.Name).Msg("invalid root margin; using 0px")
		margin = Margin{}
	}

	pool := s.observers.pool(observerKey{threshold: threshold, margin: margin.String()}, threshold, margin)
	s.observers.nextID++
	obs := &observation{id: s.observers.nextID, node: node, once: opts.Once, fn: onEnter}
	pool.entries = append(pool.entries, obs)
	return ObserverHandle{obs: obs}
}

func (set *observerSet) pool(key observerKey, threshold float64, margin Margin) *observerPool {
	for _, p := range set.pools {
		if p.key == key {
			return p
		}
	}
	p := &observerPool{key: key, threshold: threshold, margin: margin}
	set.pools = append(set.pools, p)
	return p
}

// count returns the number of live observations.
func (set *observerSet) count() int {
	n := 0
	for _, p := range set.pools {
		for _, o := range p.entries {
			if !o.removed {
				n++
			}
		}
	}
	return n
}

// evaluate checks every observation against the current root and fires
// enter transitions. Returns the number of callbacks fired.
func (set *observerSet) evaluate(s *Scene) int {
	root, ok := s.rootBounds()
	if !ok {
		return 0
	}
	now := s.Now()
	fired := 0
	for _, p := range set.pools {
		r := p.margin.Apply(root)
		// Callbacks may register new observations; those start next Step.
		n := len(p.entries)
		for i := 0; i < n; i++ {
			o := p.entries[i]
			if o.removed {
				continue
			}
			if o.node.IsDisposed() {
				o.removed = true
				continue
			}
			if !s.attached(o.node) {
				o.intersecting = false
				continue
			}
			b := o.node.WorldBounds()
			ratio, hit := intersectionRatio(b, r)
			in := hit && (p.threshold == 0 || ratio >= p.threshold-1e-9)
			if in && !o.intersecting {
				o.intersecting = true
				fn := o.fn
				if o.once {
					o.removed = true
					o.fn = nil
				}
				fired++
				s.emit(nodeEvent(EventEnter, o.node))
				fn(Entry{Node: o.node, Ratio: ratio, Bounds: b, Root: r, Time: now})
				continue
			}
			o.intersecting = in
		}
		p.entries = compactObservations(p.entries)
	}
	set.pools = compactPools(set.pools)
	return fired
}

// intersectionRatio returns the visible fraction of b inside root and whether
// they intersect at all. Zero-area boxes count as fully visible when their
// point lies inside root.
func intersectionRatio(b, root Rect) (float64, bool) {
	if !b.Intersects(root) {
		return 0, false
	}
	area := b.Area()
	if area <= 0 {
		return 1, true
	}
	ratio := b.Intersection(root).Area() / area
	return math.Min(ratio, 1), true
}

func compactObservations(s []*observation) []*observation {
	out := s[:0]
	for _, o := range s {
		if !o.removed {
			out = append(out, o)
		}
	}
	for i := len(out); i < len(s); i++ {
		s[i] = nil
	}
	return out
}

func compactPools(s []*observerPool) []*observerPool {
	out := s[:0]
	for _, p := range s {
		if len(p.entries) > 0 {
			out = append(out, p)
		}
	}
	for i := len(out); i < len(s); i++ {
		s[i] = nil
	}
	return out
}
