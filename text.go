package unveil

import (
	"bytes"
	"fmt"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// DefaultFontSize is the size of the font returned by DefaultFont.
const DefaultFontSize = 16

// Font wraps Ebitengine's text/v2 for TrueType font measurement and rendering.
type Font struct {
	face *text.GoTextFace
	size float64
	lh   float64 // cached line height
}

// LoadFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadFont(ttfData []byte, size float64) (*Font, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("unveil: failed to parse TTF data: %w", err)
	}
	face := &text.GoTextFace{
		Source: source,
		Size:   size,
	}
	m := face.Metrics()
	return &Font{
		face: face,
		size: size,
		lh:   m.HAscent + m.HDescent + m.HLineGap,
	}, nil
}

var (
	defaultFont     *Font
	defaultFontOnce sync.Once
)

// DefaultFont returns Go Regular at DefaultFontSize. It is loaded on first use.
func DefaultFont() *Font {
	defaultFontOnce.Do(func() {
		f, err := LoadFont(goregular.TTF, DefaultFontSize)
		if err != nil {
			panic(err)
		}
		defaultFont = f
	})
	return defaultFont
}

// MeasureString returns the width and height of the rendered text.
func (f *Font) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *Font) LineHeight() float64 {
	return f.lh
}

// Size returns the font size in pixels.
func (f *Font) Size() float64 {
	return f.size
}

// TextBlock holds text content, formatting and the cached rendered image.
type TextBlock struct {
	Content string
	Font    *Font // nil uses DefaultFont
	Align   TextAlign
	Color   Color

	dirty     bool
	measuredW float64
	measuredH float64
	image     *ebiten.Image
}

func (tb *TextBlock) font() *Font {
	if tb.Font != nil {
		return tb.Font
	}
	return DefaultFont()
}

// SetText replaces a text node's content and resizes its layout box.
// No-op on non-text nodes.
func (n *Node) SetText(s string) {
	tb := n.TextBlock
	if tb == nil || tb.Content == s {
		return
	}
	tb.Content = s
	tb.dirty = true
	n.fitText()
}

// Text returns a text node's content, or "".
func (n *Node) Text() string {
	if n.TextBlock == nil {
		return ""
	}
	return n.TextBlock.Content
}

// fitText measures the content and sizes the node's layout box to it.
func (n *Node) fitText() {
	tb := n.TextBlock
	if tb == nil {
		return
	}
	tb.measuredW, tb.measuredH = tb.font().MeasureString(tb.Content)
	n.SetSize(tb.measuredW, tb.measuredH)
}

// render re-draws the cached image if the content changed. Returns nil for
// empty text.
func (tb *TextBlock) render() *ebiten.Image {
	if tb.measuredW == 0 || tb.measuredH == 0 {
		return nil
	}
	if !tb.dirty && tb.image != nil {
		return tb.image
	}
	tb.dirty = false

	w := int(math.Ceil(tb.measuredW)) + 1
	h := int(math.Ceil(tb.measuredH)) + 1
	if tb.image != nil {
		b := tb.image.Bounds()
		if b.Dx() != w || b.Dy() != h {
			tb.image.Deallocate()
			tb.image = ebiten.NewImage(w, h)
		} else {
			tb.image.Clear()
		}
	} else {
		tb.image = ebiten.NewImage(w, h)
	}

	f := tb.font()
	op := &text.DrawOptions{}
	op.ColorScale.Scale(
		float32(tb.Color.R),
		float32(tb.Color.G),
		float32(tb.Color.B),
		float32(tb.Color.A),
	)
	op.LineSpacing = f.lh
	switch tb.Align {
	case TextAlignCenter:
		op.PrimaryAlign = text.AlignCenter
		op.GeoM.Translate(tb.measuredW/2, 0)
	case TextAlignRight:
		op.PrimaryAlign = text.AlignEnd
		op.GeoM.Translate(tb.measuredW, 0)
	}
	text.Draw(tb.image, tb.Content, f.face, op)
	return tb.image
}

// release frees the cached image.
func (tb *TextBlock) release() {
	if tb.image != nil {
		tb.image.Deallocate()
		tb.image = nil
	}
}
