package unveil

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tanema/gween/ease"
)

// Easing names accepted by ParseEasing.
const (
	EaseLinear    = "linear"
	EaseCSS       = "ease"
	EaseIn        = "ease-in"
	EaseOut       = "ease-out"
	EaseInOut     = "ease-in-out"
	EaseOutCubic  = "ease-out-cubic"
	EaseStandard  = "cubic-bezier(0.4,0,0.2,1)"
	cubicBezierFn = "cubic-bezier("
)

// namedEasings maps names to gween curves. The count-up curves are exact:
//
//	ease-out       1-(1-t)^2           ease.OutQuad
//	ease-in-out    t<.5 ? 2t^2 : -1+(4-2t)t   ease.InOutQuad
//	ease-out-cubic 1-(1-t)^3           ease.OutCubic
var namedEasings = map[string]ease.TweenFunc{
	EaseLinear:   ease.Linear,
	EaseIn:       ease.InQuad,
	EaseOut:      ease.OutQuad,
	EaseInOut:    ease.InOutQuad,
	EaseOutCubic: ease.OutCubic,
	EaseCSS:      CubicBezier(0.25, 0.1, 0.25, 1),
}

// ParseEasing resolves a named curve or a "cubic-bezier(x1,y1,x2,y2)"
// expression. Whitespace and case are ignored.
func ParseEasing(s string) (ease.TweenFunc, error) {
	name := strings.ToLower(strings.Join(strings.Fields(s), ""))
	if fn, ok := namedEasings[name]; ok {
		return fn, nil
	}
	if strings.HasPrefix(name, cubicBezierFn) && strings.HasSuffix(name, ")") {
		args := strings.Split(name[len(cubicBezierFn):len(name)-1], ",")
		if len(args) != 4 {
			return nil, fmt.Errorf("unveil: cubic-bezier wants 4 arguments, got %d", len(args))
		}
		var p [4]float64
		for i, a := range args {
			v, err := strconv.ParseFloat(a, 64)
			if err != nil {
				return nil, fmt.Errorf("unveil: cubic-bezier argument %d: %w", i+1, err)
			}
			p[i] = v
		}
		if p[0] < 0 || p[0] > 1 || p[2] < 0 || p[2] > 1 {
			return nil, fmt.Errorf("unveil: cubic-bezier x values must be in [0,1]")
		}
		return CubicBezier(p[0], p[1], p[2], p[3]), nil
	}
	return nil, fmt.Errorf("unveil: unknown easing %q", s)
}

// easingOr returns the parsed curve for s, or fallback when s is empty or
// invalid.
func easingOr(s string, fallback ease.TweenFunc) ease.TweenFunc {
	if s == "" {
		return fallback
	}
	fn, err := ParseEasing(s)
	if err != nil {
		return fallback
	}
	return fn
}

// Ease evaluates fn at progress t in [0,1] and returns the eased fraction.
// t is clamped.
func Ease(fn ease.TweenFunc, t float64) float64 {
	t = clamp01(t)
	if fn == nil {
		return t
	}
	return float64(fn(float32(t), 0, 1, 1))
}

// CubicBezier returns a CSS-style cubic-bezier timing curve with control
// points (x1,y1) and (x2,y2). The curve is solved for x with Newton-Raphson
// and falls back to bisection, like browser implementations.
func CubicBezier(x1, y1, x2, y2 float64) ease.TweenFunc {
	cx := 3 * x1
	bx := 3*(x2-x1) - cx
	ax := 1 - cx - bx
	cy := 3 * y1
	by := 3*(y2-y1) - cy
	ay := 1 - cy - by

	sampleX := func(t float64) float64 { return ((ax*t+bx)*t + cx) * t }
	sampleY := func(t float64) float64 { return ((ay*t+by)*t + cy) * t }
	slopeX := func(t float64) float64 { return (3*ax*t+2*bx)*t + cx }

	solve := func(x float64) float64 {
		const eps = 1e-7
		t := x
		for i := 0; i < 8; i++ {
			dx := sampleX(t) - x
			if math.Abs(dx) < eps {
				return t
			}
			d := slopeX(t)
			if math.Abs(d) < 1e-6 {
				break
			}
			t -= dx / d
		}
		lo, hi := 0.0, 1.0
		t = x
		for lo < hi {
			v := sampleX(t)
			if math.Abs(v-x) < eps {
				return t
			}
			if x > v {
				lo = t
			} else {
				hi = t
			}
			t = (hi-lo)/2 + lo
			if hi-lo < eps {
				break
			}
		}
		return t
	}

	return func(t, b, c, d float32) float32 {
		if d <= 0 {
			return b + c
		}
		p := float64(t / d)
		switch {
		case p <= 0:
			return b
		case p >= 1:
			return b + c
		}
		return b + c*float32(sampleY(solve(p)))
	}
}
