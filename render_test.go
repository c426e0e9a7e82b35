package unveil

import (
	"math"
	"testing"
)

func TestGeoMMatchesAffine(t *testing.T) {
	n := NewContainer("n")
	n.SetPosition(30, 40)
	n.SetScale(2, 3)
	n.SetRotation(math.Pi / 6)
	m := computeLocalTransform(n)
	g := geoM(m)

	for _, p := range [][2]float64{{0, 0}, {1, 0}, {5, 7}} {
		wx, wy := transformPoint(m, p[0], p[1])
		gx, gy := g.Apply(p[0], p[1])
		if math.Abs(wx-gx) > 1e-9 || math.Abs(wy-gy) > 1e-9 {
			t.Errorf("point %v: geoM=(%v,%v) affine=(%v,%v)", p, gx, gy, wx, wy)
		}
	}
}

func TestTextBlockRenderEmpty(t *testing.T) {
	tb := &TextBlock{}
	if tb.render() != nil {
		t.Error("unmeasured block should render nothing")
	}
	tb.release()
}
