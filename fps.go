package unveil

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// NewFPSWidget creates a text node that displays the current FPS and TPS.
// The text refreshes every ~0.5 seconds from its OnUpdate hook; it is not
// attached to any scene.
func NewFPSWidget() *Node {
	node := NewText("fps_widget", "FPS: --\nTPS: --", nil)
	node.Color = Color{R: 1, G: 1, B: 1, A: 0.8}

	var lastUpdate float64
	node.OnUpdate = func(dt float64) {
		lastUpdate += dt
		if lastUpdate < 0.5 {
			return
		}
		lastUpdate = 0
		node.SetText(fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
	updateWorldTransform(node, identityTransform, 1, true)
	return node
}
