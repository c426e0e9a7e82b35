package unveil

import (
	"fmt"
	"strconv"
	"strings"
)

// marginValue is one side of a root margin, either absolute or a percentage
// of the root's size along that axis.
type marginValue struct {
	v       float64
	percent bool
}

func (m marginValue) resolve(size float64) float64 {
	if m.percent {
		return size * m.v / 100
	}
	return m.v
}

// Margin is a parsed root margin: top, right, bottom, left.
type Margin struct {
	sides [4]marginValue
	src   string
}

// String returns the normalized source form.
func (m Margin) String() string {
	if m.src == "" {
		return "0px"
	}
	return m.src
}

// Apply grows (or, for negative values, shrinks) root by the margin.
// Percentages resolve against root's width for left/right and height for
// top/bottom.
func (m Margin) Apply(root Rect) Rect {
	top := m.sides[0].resolve(root.Height)
	right := m.sides[1].resolve(root.Width)
	bottom := m.sides[2].resolve(root.Height)
	left := m.sides[3].resolve(root.Width)
	return root.Expand(top, right, bottom, left)
}

// ParseMargin parses a CSS-style margin of one to four values, each in px or
// percent ("10px", "-50px 0px", "0px 0px -10% 0px"). A bare "0" is allowed.
// An empty string is a zero margin.
func ParseMargin(s string) (Margin, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return Margin{}, nil
	}
	if len(fields) > 4 {
		return Margin{}, fmt.Errorf("unveil: margin %q has %d values, want 1-4", s, len(fields))
	}
	vals := make([]marginValue, len(fields))
	for i, f := range fields {
		v, err := parseMarginValue(f)
		if err != nil {
			return Margin{}, fmt.Errorf("unveil: margin %q: %w", s, err)
		}
		vals[i] = v
	}

	var m Margin
	switch len(vals) {
	case 1:
		m.sides = [4]marginValue{vals[0], vals[0], vals[0], vals[0]}
	case 2:
		m.sides = [4]marginValue{vals[0], vals[1], vals[0], vals[1]}
	case 3:
		m.sides = [4]marginValue{vals[0], vals[1], vals[2], vals[1]}
	case 4:
		m.sides = [4]marginValue{vals[0], vals[1], vals[2], vals[3]}
	}
	m.src = strings.Join(fields, " ")
	return m, nil
}

func parseMarginValue(f string) (marginValue, error) {
	switch {
	case strings.HasSuffix(f, "px"):
		v, err := strconv.ParseFloat(strings.TrimSuffix(f, "px"), 64)
		if err != nil {
			return marginValue{}, err
		}
		return marginValue{v: v}, nil
	case strings.HasSuffix(f, "%"):
		v, err := strconv.ParseFloat(strings.TrimSuffix(f, "%"), 64)
		if err != nil {
			return marginValue{}, err
		}
		return marginValue{v: v, percent: true}, nil
	case f == "0":
		return marginValue{}, nil
	}
	return marginValue{}, fmt.Errorf("value %q must be in px or %%", f)
}
