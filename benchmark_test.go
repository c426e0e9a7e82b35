package unveil

import (
	"testing"
	"time"
)

// buildPage stacks n observed boxes down a long page.
func buildPage(n int) *Scene {
	s := NewScene()
	s.NewCamera(Rect{Width: 1280, Height: 800})
	for i := 0; i < n; i++ {
		b := NewBox("", 200, 100, ColorWhite)
		b.SetPosition(float64(i%4)*220, float64(i/4)*140)
		s.Root().AddChild(b)
		s.Observe(b, ObserveOptions{Threshold: 0.1, RootMargin: "0px 0px -50px 0px"}, func(Entry) {})
	}
	return s
}

func BenchmarkStepObservers1k(b *testing.B) {
	s := buildPage(1000)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Step(16 * time.Millisecond)
	}
}

func BenchmarkStepScrolling1k(b *testing.B) {
	s := buildPage(1000)
	cam := s.PrimaryCamera()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cam.ScrollBy(0, 40)
		if cam.Y > 30000 {
			cam.ScrollTo(cam.X, 400, 0, nil)
		}
		s.Step(16 * time.Millisecond)
	}
}

func BenchmarkRevealStagger100(b *testing.B) {
	for i := 0; i < b.N; i++ {
		s := NewScene()
		s.NewCamera(Rect{Width: 1280, Height: 800})
		list := NewContainer("list")
		for j := 0; j < 100; j++ {
			list.AddChild(NewBox("", 100, 4, ColorWhite))
		}
		list.SetLayout(&GridLayout{Columns: 1})
		s.Root().AddChild(list)
		s.RevealStagger(list, StaggerOptions{Stagger: 10 * time.Millisecond})
		for f := 0; f < 120; f++ {
			s.Step(16 * time.Millisecond)
		}
	}
}

func BenchmarkSchedulerFrames(b *testing.B) {
	s := NewScheduler()
	var fn FrameFunc
	fn = func(time.Duration) { s.RequestFrame(fn) }
	for i := 0; i < 256; i++ {
		s.RequestFrame(fn)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.RunFrame()
	}
}
