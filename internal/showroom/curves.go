package showroom

import (
	"fmt"

	"github.com/phanxgames/unveil"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

const curveSamples = 100

// DefaultCurves are the easing curves plotted when none are named.
var DefaultCurves = []string{
	unveil.EaseLinear,
	unveil.EaseOut,
	unveil.EaseInOut,
	unveil.EaseOutCubic,
	unveil.EaseStandard,
}

// CurvePoints samples an easing curve at n+1 evenly spaced points in [0,1].
func CurvePoints(name string, n int) (plotter.XYs, error) {
	fn, err := unveil.ParseEasing(name)
	if err != nil {
		return nil, err
	}
	pts := make(plotter.XYs, n+1)
	for i := range pts {
		t := float64(i) / float64(n)
		pts[i].X = t
		pts[i].Y = unveil.Ease(fn, t)
	}
	return pts, nil
}

// WriteCurves plots the named easing curves to path. The image format
// follows the file extension (png, svg, pdf).
func WriteCurves(path string, names []string) error {
	if len(names) == 0 {
		names = DefaultCurves
	}
	p := plot.New()
	p.Title.Text = "Easing curves"
	p.X.Label.Text = "progress"
	p.Y.Label.Text = "value"
	p.X.Min, p.X.Max = 0, 1
	p.Add(plotter.NewGrid())

	lines := make([]any, 0, 2*len(names))
	for _, name := range names {
		pts, err := CurvePoints(name, curveSamples)
		if err != nil {
			return fmt.Errorf("showroom: curve %q: %w", name, err)
		}
		lines = append(lines, name, pts)
	}
	if err := plotutil.AddLines(p, lines...); err != nil {
		return fmt.Errorf("showroom: plot curves: %w", err)
	}
	p.Legend.Top = false
	p.Legend.Left = false

	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("showroom: save curves: %w", err)
	}
	return nil
}
