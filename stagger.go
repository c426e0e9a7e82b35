package unveil

import "time"

// DefaultWaveColumns is the column count wave stagger assumes when the
// container has no grid layout.
const DefaultWaveColumns = 3

// Direction orders stagger delays across siblings.
type Direction uint8

const (
	Forward  Direction = iota // first child animates first
	Backward                  // last child animates first
)

// String returns "forward" or "backward".
func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// ParseDirection maps "forward"/"backward" to a Direction. Anything else is
// Forward.
func ParseDirection(s string) Direction {
	if s == "backward" {
		return Backward
	}
	return Forward
}

// ItemDelay returns base + index*step. Negative inputs are clamped to zero.
func ItemDelay(index int, base, step time.Duration) time.Duration {
	if index < 0 {
		index = 0
	}
	if base < 0 {
		base = 0
	}
	if step < 0 {
		step = 0
	}
	return base + time.Duration(index)*step
}

// StaggerDelays returns one delay per child in document order. Forward gives
// non-decreasing delays, Backward non-increasing ones.
func StaggerDelays(n int, base, step time.Duration, dir Direction) []time.Duration {
	if n <= 0 {
		return nil
	}
	out := make([]time.Duration, n)
	for i := range out {
		idx := i
		if dir == Backward {
			idx = n - 1 - i
		}
		out[i] = ItemDelay(idx, base, step)
	}
	return out
}

// WaveDelays returns one delay per child laid out row-major in columns
// columns: base + (row+col)*step. A non-positive column count uses
// DefaultWaveColumns.
func WaveDelays(n, columns int, base, step time.Duration) []time.Duration {
	if n <= 0 {
		return nil
	}
	if columns <= 0 {
		columns = DefaultWaveColumns
	}
	out := make([]time.Duration, n)
	for i := range out {
		row := i / columns
		col := i % columns
		out[i] = ItemDelay(row+col, base, step)
	}
	return out
}
