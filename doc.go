// Package unveil is a scroll-driven reveal and count-up engine for
// [Ebitengine] scenes.
//
// Content lives in a retained-mode scene graph. Nodes start hidden and play
// an entrance animation the first time they scroll into the primary
// camera's view; numeric labels count up to their targets the same way.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	scene := unveil.NewScene()
//	scene.NewCamera(unveil.Rect{Width: 800, Height: 600})
//	// ... add nodes ...
//	unveil.Run(scene, unveil.RunConfig{
//		Title: "Landing", Width: 800, Height: 600,
//	})
//
// For full control, implement [ebiten.Game] yourself and call
// [Scene.Update] and [Scene.Draw] directly.
//
// # Time
//
// All animation runs on the scene's [Scheduler]. [Scene.Step] advances the
// clock by an explicit duration, which makes every animation reproducible
// without a window:
//
//	scene.Step(0)                      // observers fire for nodes in view
//	scene.Step(350 * time.Millisecond) // half-way through a 700ms reveal
//
// # Visibility
//
// [Scene.Observe] reports when a node's world bounds enter the camera's
// visible bounds, shrunk or grown by a CSS-style root margin, by at least a
// threshold fraction of the node's area.
//
// # Reveals
//
// [Scene.RevealSingle] animates one node. [Scene.RevealStagger] and
// [Scene.RevealWave] animate a container's children with per-child delays,
// in document order or diagonally across a grid. [Scene.RevealItem] is the
// index-driven variant for a single list item.
//
//	hero := unveil.NewBox("hero", 400, 200, unveil.ColorWhite)
//	scene.Root().AddChild(hero)
//	scene.RevealSingle(hero, unveil.RevealOptions{Animation: unveil.AnimFadeInUp})
//
// # Count-up
//
// [Scene.CountUpInView] animates a number from a start value to a target
// when a node becomes visible. [Scene.CountUpGroup] shares one trigger
// between several counters.
//
// # Reduced motion
//
// When the [MotionPreference] reports reduced motion, reveals show content
// immediately and count-ups display their target; nothing is scheduled.
// A [MotionNotifier] that flips to reduced mid-animation finishes pending
// work at once.
//
// Tweens run on [gween]; ECS integration is available through the
// [Donburi] adapter in unveil/ecs.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package unveil
