package unveil

import (
	"sort"
	"time"
)

// FrameFunc is called once per requested frame with the current scene time.
type FrameFunc func(now time.Duration)

type frameRequest struct {
	id uint32
	fn FrameFunc
}

type timerEntry struct {
	id  uint32
	due time.Duration
	seq uint32 // insertion order, breaks ties between equal due times
	fn  func()
}

// Scheduler is the scene's cooperative clock. Animation progress advances
// through next-frame callbacks and one-shot timers, both driven by Advance.
// It is not safe for concurrent use; everything runs on the game loop.
type Scheduler struct {
	now     time.Duration
	nextID  uint32
	frames  []frameRequest
	running []frameRequest // reused buffer for the frame being run
	timers  []timerEntry
	seq     uint32
}

// NewScheduler returns a scheduler starting at time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the current scene time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// FrameHandle cancels a pending frame request.
type FrameHandle struct {
	id    uint32
	sched *Scheduler
}

// Cancel removes the request if it has not run yet. Safe to call repeatedly.
func (h FrameHandle) Cancel() {
	if h.sched == nil || h.id == 0 {
		return
	}
	h.sched.frames = removeFrame(h.sched.frames, h.id)
	// A request may already have been moved to the running buffer this frame.
	for i := range h.sched.running {
		if h.sched.running[i].id == h.id {
			h.sched.running[i].fn = nil
		}
	}
}

// TimerHandle cancels a pending timer.
type TimerHandle struct {
	id    uint32
	sched *Scheduler
}

// Cancel removes the timer if it has not fired yet. Safe to call repeatedly.
func (h TimerHandle) Cancel() {
	if h.sched == nil || h.id == 0 {
		return
	}
	for i := range h.sched.timers {
		if h.sched.timers[i].id == h.id {
			h.sched.timers = append(h.sched.timers[:i], h.sched.timers[i+1:]...)
			return
		}
	}
}

// RequestFrame schedules fn to run on the next frame. Requests made while a
// frame is running are deferred to the following frame.
func (s *Scheduler) RequestFrame(fn FrameFunc) FrameHandle {
	s.nextID++
	s.frames = append(s.frames, frameRequest{id: s.nextID, fn: fn})
	return FrameHandle{id: s.nextID, sched: s}
}

// After schedules fn to run once d has elapsed. Negative durations are
// treated as zero, which fires on the next Advance.
func (s *Scheduler) After(d time.Duration, fn func()) TimerHandle {
	if d < 0 {
		d = 0
	}
	s.nextID++
	s.seq++
	s.timers = append(s.timers, timerEntry{id: s.nextID, due: s.now + d, seq: s.seq, fn: fn})
	return TimerHandle{id: s.nextID, sched: s}
}

// Pending returns the number of outstanding frame requests and timers.
func (s *Scheduler) Pending() int {
	return len(s.frames) + len(s.timers)
}

// Advance moves the clock forward by dt and fires every timer that becomes
// due, in due order, with Now equal to each timer's due time. Frame requests
// are not run; see RunFrame.
func (s *Scheduler) Advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	target := s.now + dt
	for {
		i := s.nextDue(target)
		if i < 0 {
			break
		}
		t := s.timers[i]
		s.timers = append(s.timers[:i], s.timers[i+1:]...)
		s.now = t.due
		t.fn()
	}
	s.now = target
}

// nextDue returns the index of the earliest timer due at or before target,
// or -1.
func (s *Scheduler) nextDue(target time.Duration) int {
	best := -1
	for i := range s.timers {
		t := &s.timers[i]
		if t.due > target {
			continue
		}
		if best < 0 || t.due < s.timers[best].due ||
			(t.due == s.timers[best].due && t.seq < s.timers[best].seq) {
			best = i
		}
	}
	return best
}

// RunFrame runs every frame request made before this call. Returns the
// number of callbacks run.
func (s *Scheduler) RunFrame() int {
	if len(s.frames) == 0 {
		return 0
	}
	s.running = append(s.running[:0], s.frames...)
	for i := range s.frames {
		s.frames[i] = frameRequest{}
	}
	s.frames = s.frames[:0]
	ran := 0
	for i := range s.running {
		fn := s.running[i].fn
		if fn == nil {
			continue
		}
		fn(s.now)
		ran++
	}
	for i := range s.running {
		s.running[i] = frameRequest{}
	}
	s.running = s.running[:0]
	return ran
}

// timersDue returns the due times of pending timers in ascending order.
// Used by debug logging.
func (s *Scheduler) timersDue() []time.Duration {
	out := make([]time.Duration, len(s.timers))
	for i, t := range s.timers {
		out[i] = t.due
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func removeFrame(s []frameRequest, id uint32) []frameRequest {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = frameRequest{}
			return s[:len(s)-1]
		}
	}
	return s
}
