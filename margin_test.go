package unveil

import "testing"

func TestParseMargin(t *testing.T) {
	root := Rect{X: 0, Y: 0, Width: 800, Height: 600}
	tests := []struct {
		in   string
		want Rect
	}{
		{"", root},
		{"0px", root},
		{"0", root},
		{"10px", Rect{X: -10, Y: -10, Width: 820, Height: 620}},
		{"0px 0px -50px 0px", Rect{X: 0, Y: 0, Width: 800, Height: 550}},
		{"-20px 10px", Rect{X: -10, Y: 20, Width: 820, Height: 560}},
		{"10px 0px 20px", Rect{X: 0, Y: -10, Width: 800, Height: 630}},
		{"0px 0px -10% 0px", Rect{X: 0, Y: 0, Width: 800, Height: 540}},
		{"0px 25% 0px 0px", Rect{X: 0, Y: 0, Width: 1000, Height: 600}},
	}
	for _, tt := range tests {
		m, err := ParseMargin(tt.in)
		if err != nil {
			t.Errorf("ParseMargin(%q): %v", tt.in, err)
			continue
		}
		if got := m.Apply(root); got != tt.want {
			t.Errorf("ParseMargin(%q).Apply = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseMarginErrors(t *testing.T) {
	for _, in := range []string{"10", "10em", "1px 2px 3px 4px 5px", "abcpx", "%"} {
		if _, err := ParseMargin(in); err == nil {
			t.Errorf("ParseMargin(%q) should fail", in)
		}
	}
}

func TestMarginString(t *testing.T) {
	var zero Margin
	if zero.String() != "0px" {
		t.Errorf("zero margin String = %q, want 0px", zero.String())
	}
	m, _ := ParseMargin("  0px   0px -50px 0px ")
	if m.String() != "0px 0px -50px 0px" {
		t.Errorf("String = %q", m.String())
	}
}
