package showroom

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/phanxgames/unveil"
)

const (
	defaultGalleryColumns = 3
	animCountUp           = "count-up"
)

// SectionPlan is the delay schedule a section will use once it enters view.
type SectionPlan struct {
	Index     int
	Kind      string
	Heading   string
	Animation string
	Delays    []time.Duration
}

// Plan computes each section's per-item delays without building a scene.
func Plan(p *Page) []SectionPlan {
	out := make([]SectionPlan, len(p.Sections))
	for i, s := range p.Sections {
		r := s.Reveal
		sp := SectionPlan{Index: i, Kind: s.Kind, Heading: s.Heading, Animation: animationFor(s)}
		switch s.Kind {
		case KindHero:
			sp.Delays = []time.Duration{unveil.ItemDelay(0, r.Delay, 0)}
		case KindStats:
			sp.Delays = itemDelays(len(s.Values), r.Delay, staggerOr(r.Stagger, unveil.DefaultStaggerDelay))
		case KindGallery:
			sp.Delays = unveil.WaveDelays(len(s.Items), galleryColumns(s), r.Delay, staggerOr(r.Stagger, unveil.DefaultWaveDelay))
		case KindList:
			sp.Delays = unveil.StaggerDelays(len(s.Items), r.Delay, staggerOr(r.Stagger, unveil.DefaultStaggerDelay), unveil.ParseDirection(r.Direction))
		case KindForm:
			sp.Delays = itemDelays(len(s.Fields()), r.Delay, staggerOr(r.Stagger, unveil.DefaultStaggerDelay))
		}
		out[i] = sp
	}
	return out
}

// WritePlan prints plans as an aligned table.
func WritePlan(w io.Writer, plans []SectionPlan) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tSECTION\tKIND\tANIMATION\tDELAYS (ms)")
	for _, sp := range plans {
		ms := make([]string, len(sp.Delays))
		for i, d := range sp.Delays {
			ms[i] = strconv.FormatInt(d.Milliseconds(), 10)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", sp.Index, sp.Heading, sp.Kind, sp.Animation, strings.Join(ms, " "))
	}
	return tw.Flush()
}

func itemDelays(n int, base, step time.Duration) []time.Duration {
	out := make([]time.Duration, n)
	for i := range out {
		out[i] = unveil.ItemDelay(i, base, step)
	}
	return out
}

// staggerOr mirrors the library's option handling: zero is the default,
// negative is no stagger.
func staggerOr(d, def time.Duration) time.Duration {
	switch {
	case d == 0:
		return def
	case d < 0:
		return 0
	}
	return d
}

func galleryColumns(s Section) int {
	if s.Reveal.Columns > 0 {
		return s.Reveal.Columns
	}
	return defaultGalleryColumns
}

func animationFor(s Section) string {
	if s.Kind == KindStats {
		return animCountUp
	}
	if s.Reveal.Animation != "" {
		return s.Reveal.Animation
	}
	if s.Kind == KindGallery {
		return unveil.AnimRevealImageScale
	}
	return unveil.AnimFadeInUp
}
