package showroom

import (
	"fmt"

	"github.com/phanxgames/unveil"
	"golang.org/x/image/font/gofont/gobold"
)

// Page geometry in world units.
const (
	pagePad       = 80.0
	sectionGap    = 160.0
	headingGap    = 24.0
	headingSize   = 28
	heroHeight    = 360.0
	statW, statH  = 240.0, 120.0
	tileW, tileH  = 240.0, 160.0
	rowH          = 56.0
	fieldW        = 480.0
	fieldH        = 48.0
	gridGap       = 24.0
	listGap       = 12.0
	formGroupGap  = 40.0
	labelInsetX   = 24.0
	labelInsetY   = 16.0
	heroTextInset = 48.0
)

var (
	colorBackground = unveil.Color{R: 0.07, G: 0.08, B: 0.11, A: 1}
	colorHero       = unveil.Color{R: 0.16, G: 0.32, B: 0.72, A: 1}
	colorCard       = unveil.Color{R: 0.15, G: 0.17, B: 0.23, A: 1}
	colorTile       = unveil.Color{R: 0.35, G: 0.55, B: 0.85, A: 1}
	colorField      = unveil.Color{R: 0.22, G: 0.24, B: 0.30, A: 1}
)

// Built is the result of Build: the scene nodes and the animation handles
// registered for them.
type Built struct {
	Page     *Page
	Sections []*unveil.Node
	Reveals  []*unveil.Reveal
	Groups   []*unveil.RevealGroup
	Counters []*unveil.CounterGroup
	// Motion is the page's reduced-motion switch, installed on the scene.
	Motion *unveil.MotionToggle
	// Height is the full page height in world units.
	Height float64
}

// Stop stops every registered animation.
func (b *Built) Stop() {
	for _, r := range b.Reveals {
		r.Stop()
	}
	for _, g := range b.Groups {
		g.Stop()
	}
	for _, c := range b.Counters {
		c.Stop()
	}
}

// Build lays the page's sections out top to bottom under the scene root and
// registers their animations. It installs a camera the size of the page
// viewport when the scene has none, bounded to the page.
func Build(scene *unveil.Scene, p *Page) (*Built, error) {
	headingFont, err := unveil.LoadFont(gobold.TTF, headingSize)
	if err != nil {
		return nil, fmt.Errorf("showroom: heading font: %w", err)
	}

	scene.ClearColor = colorBackground
	scene.SetScreenSize(p.Width, p.Height)
	cam := scene.PrimaryCamera()
	if cam == nil {
		cam = scene.NewCamera(unveil.Rect{Width: float64(p.Width), Height: float64(p.Height)})
	}

	b := &Built{Page: p, Motion: unveil.NewMotionToggle(p.ReducedMotion)}
	scene.SetMotionPreference(b.Motion)

	contentW := float64(p.Width) - 2*pagePad
	y := pagePad
	for i, s := range p.Sections {
		sec := unveil.NewContainer(fmt.Sprintf("section-%d-%s", i, s.Kind))
		sec.SetPosition(pagePad, y)
		scene.Root().AddChild(sec)
		b.Sections = append(b.Sections, sec)

		var body *unveil.Node
		if s.Kind == KindHero {
			body = b.hero(scene, sec, s, contentW, headingFont)
		} else {
			heading := unveil.NewText(sec.Name+"-heading", s.Heading, headingFont)
			sec.AddChild(heading)
			body = unveil.NewContainer(sec.Name + "-body")
			body.SetPosition(0, heading.Height+headingGap)
			switch s.Kind {
			case KindStats:
				b.stats(scene, body, s)
			case KindGallery:
				b.gallery(scene, body, s)
			case KindList:
				b.list(scene, body, s, contentW)
			case KindForm:
				b.form(scene, body, s)
			}
			sec.AddChild(body)
		}
		y += body.Y + body.Height + sectionGap
	}
	b.Height = y - sectionGap + pagePad

	bounds := b.Height
	if bounds < float64(p.Height) {
		bounds = float64(p.Height)
	}
	cam.SetBounds(unveil.Rect{Width: float64(p.Width), Height: bounds})
	cam.ClampToBounds()
	return b, nil
}

func revealOptions(r RevealConfig, anim string) unveil.RevealOptions {
	return unveil.RevealOptions{
		Animation: anim,
		Duration:  r.Duration,
		Delay:     r.Delay,
		Easing:    r.Easing,
	}
}

func (b *Built) hero(scene *unveil.Scene, sec *unveil.Node, s Section, w float64, font *unveil.Font) *unveil.Node {
	box := unveil.NewBox(sec.Name+"-banner", w, heroHeight, colorHero)
	title := unveil.NewText(sec.Name+"-title", s.Heading, font)
	title.SetPosition(heroTextInset, (heroHeight-title.Height)/2)
	box.AddChild(title)
	sec.AddChild(box)
	b.Reveals = append(b.Reveals, scene.RevealSingle(box, revealOptions(s.Reveal, animationFor(s))))
	return box
}

func (b *Built) stats(scene *unveil.Scene, body *unveil.Node, s Section) {
	body.SetLayout(&unveil.GridLayout{Columns: len(s.Values), CellWidth: statW, CellHeight: statH, GapX: gridGap})
	labels := make([]*unveil.Node, len(s.Values))
	for i := range s.Values {
		card := unveil.NewBox(fmt.Sprintf("%s-stat-%d", body.Name, i), statW, statH, colorCard)
		labels[i] = unveil.NewText(card.Name+"-value", "", nil)
		labels[i].SetPosition(labelInsetX, statH/2-labelInsetY)
		card.AddChild(labels[i])
		body.AddChild(card)
	}
	r := s.Reveal
	g := scene.CountUpGroup(s.Values, body, unveil.CountUpOptions{
		Duration:     r.Duration,
		Delay:        r.Delay,
		Easing:       r.Easing,
		Decimals:     s.Decimals,
		StaggerDelay: r.Stagger,
		Prefix:       s.Prefix,
		Suffix:       s.Suffix,
		Separator:    ",",
	}, labels...)
	b.Counters = append(b.Counters, g)
}

func (b *Built) gallery(scene *unveil.Scene, body *unveil.Node, s Section) {
	cols := galleryColumns(s)
	body.SetLayout(&unveil.GridLayout{Columns: cols, CellWidth: tileW, CellHeight: tileH, GapX: gridGap, GapY: gridGap})
	for i, item := range s.Items {
		tile := unveil.NewBox(fmt.Sprintf("%s-tile-%d", body.Name, i), tileW, tileH, colorTile)
		label := unveil.NewText(tile.Name+"-label", item, nil)
		label.SetPosition(labelInsetX, labelInsetY)
		tile.AddChild(label)
		body.AddChild(tile)
	}
	g := scene.RevealWave(body, unveil.WaveOptions{
		RevealOptions:   revealOptions(s.Reveal, animationFor(s)),
		Stagger:         s.Reveal.Stagger,
		FallbackColumns: cols,
	})
	b.Groups = append(b.Groups, g)
}

func (b *Built) list(scene *unveil.Scene, body *unveil.Node, s Section, w float64) {
	body.SetLayout(&unveil.GridLayout{Columns: 1, CellWidth: w, CellHeight: rowH, GapY: listGap})
	for i, item := range s.Items {
		row := unveil.NewBox(fmt.Sprintf("%s-row-%d", body.Name, i), w, rowH, colorCard)
		label := unveil.NewText(row.Name+"-label", item, nil)
		label.SetPosition(labelInsetX, labelInsetY)
		row.AddChild(label)
		body.AddChild(row)
	}
	g := scene.RevealStagger(body, unveil.StaggerOptions{
		RevealOptions: revealOptions(s.Reveal, animationFor(s)),
		Stagger:       s.Reveal.Stagger,
		Direction:     unveil.ParseDirection(s.Reveal.Direction),
	})
	b.Groups = append(b.Groups, g)
}

// form reveals fields one by one in document order across all groups, so a
// field's delay depends on its global index, not its index in its group.
func (b *Built) form(scene *unveil.Scene, body *unveil.Node, s Section) {
	groups := s.Groups
	if len(groups) == 0 {
		groups = [][]string{s.Items}
	}
	var fields []*unveil.Node
	for gi, names := range groups {
		group := unveil.NewContainer(fmt.Sprintf("%s-group-%d", body.Name, gi))
		group.SetLayout(&unveil.GridLayout{Columns: 1, CellWidth: fieldW, CellHeight: fieldH, GapY: listGap})
		for _, name := range names {
			field := unveil.NewBox(fmt.Sprintf("%s-field-%d", body.Name, len(fields)), fieldW, fieldH, colorField)
			label := unveil.NewText(field.Name+"-label", name, nil)
			label.SetPosition(labelInsetX, labelInsetY)
			field.AddChild(label)
			group.AddChild(field)
			fields = append(fields, field)
		}
		body.AddChild(group)
	}
	body.SetLayout(&unveil.GridLayout{Columns: len(groups), GapX: formGroupGap})

	opts := unveil.StaggerOptions{
		RevealOptions: revealOptions(s.Reveal, animationFor(s)),
		Stagger:       s.Reveal.Stagger,
	}
	for i, f := range fields {
		b.Reveals = append(b.Reveals, scene.RevealItem(f, i, opts))
	}
}
