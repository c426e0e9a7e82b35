package unveil

import "github.com/hajimehoshi/ebiten/v2"

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
}

// game adapts a Scene to ebiten.Game.
type game struct {
	scene *Scene
	fps   *Node
}

func (g *game) Update() error {
	return g.scene.Update()
}

func (g *game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
	if g.fps != nil {
		drawText(screen, g.fps, identityTransform)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.scene.SetScreenSize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// Run opens a window and drives the scene with Ebitengine's game loop until
// the window closes or the scene's update func returns an error.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 800
	}
	if cfg.Height <= 0 {
		cfg.Height = 600
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	scene.SetScreenSize(cfg.Width, cfg.Height)

	g := &game{scene: scene}
	if cfg.ShowFPS {
		g.fps = NewFPSWidget()
		prev := scene.updateFunc
		scene.SetUpdateFunc(func() error {
			g.fps.OnUpdate(tickDuration().Seconds())
			if prev != nil {
				return prev()
			}
			return nil
		})
	}
	return ebiten.RunGame(g)
}
