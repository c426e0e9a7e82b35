package unveil

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// whitePixel is a 1x1 white image scaled and tinted to draw boxes.
// Created on first Draw so the package can be used without a graphics context.
var whitePixel *ebiten.Image

func ensureWhitePixel() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(ColorWhite.toRGBA())
	}
	return whitePixel
}

// Draw renders the scene to screen, once per camera. Without a camera the
// scene is drawn untransformed. World transforms are those of the last Step.
// Queued screenshots are captured after drawing.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.toRGBA())
	}
	defer s.flushScreenshots(screen)
	if len(s.cameras) == 0 {
		b := screen.Bounds()
		view := Rect{Width: float64(b.Dx()), Height: float64(b.Dy())}
		s.drawNode(screen, s.root, identityTransform, view, false)
		return
	}
	for _, cam := range s.cameras {
		dst := screen
		vp := cam.Viewport
		if vp.Width > 0 && vp.Height > 0 {
			r := image.Rect(int(vp.X), int(vp.Y), int(vp.X+vp.Width), int(vp.Y+vp.Height))
			dst = screen.SubImage(r).(*ebiten.Image)
		}
		view := cam.computeViewMatrix()
		s.drawNode(dst, s.root, view, cam.VisibleBounds(), cam.CullEnabled)
	}
}

// drawNode draws n and its subtree. Culling suppresses only n's own output;
// children are always visited because they may lie outside n's box.
func (s *Scene) drawNode(dst *ebiten.Image, n *Node, view [6]float64, bounds Rect, cull bool) {
	if !n.Visible {
		return
	}
	if n.Renderable && n.worldAlpha > 0 && !(cull && shouldCull(n, bounds)) {
		switch n.Type {
		case NodeTypeSprite:
			drawBox(dst, n, view)
		case NodeTypeText:
			drawText(dst, n, view)
		}
	}
	for _, c := range n.children {
		s.drawNode(dst, c, view, bounds, cull)
	}
}

func drawBox(dst *ebiten.Image, n *Node, view [6]float64) {
	if n.Width <= 0 || n.Height <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(n.Width, n.Height)
	op.GeoM.Concat(geoM(multiplyAffine(view, n.worldTransform)))
	a := n.Color.A * n.worldAlpha
	op.ColorScale.Scale(float32(n.Color.R*a), float32(n.Color.G*a), float32(n.Color.B*a), float32(a))
	dst.DrawImage(ensureWhitePixel(), op)
}

func drawText(dst *ebiten.Image, n *Node, view [6]float64) {
	img := n.TextBlock.render()
	if img == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM(multiplyAffine(view, n.worldTransform))
	a := n.Color.A * n.worldAlpha
	op.ColorScale.Scale(float32(n.Color.R*a), float32(n.Color.G*a), float32(n.Color.B*a), float32(a))
	dst.DrawImage(img, op)
}

// geoM converts an affine matrix [a, b, c, d, tx, ty] to an ebiten.GeoM.
func geoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}
