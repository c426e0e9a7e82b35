// Package showroom builds a scrolling brochure page out of unveil reveals
// and count-ups from a YAML description.
package showroom

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Section kinds.
const (
	KindHero    = "hero"
	KindStats   = "stats"
	KindGallery = "gallery"
	KindList    = "list"
	KindForm    = "form"
)

const (
	defaultWidth  = 1280
	defaultHeight = 800
)

// Page is the top-level page file.
type Page struct {
	Title         string    `yaml:"title"`
	Width         int       `yaml:"width"`
	Height        int       `yaml:"height"`
	ReducedMotion bool      `yaml:"reducedMotion"`
	Sections      []Section `yaml:"sections"`
}

// Section is one vertical band of the page.
type Section struct {
	Kind    string `yaml:"kind"`
	Heading string `yaml:"heading"`

	// Items are gallery tiles, list rows or, for a form without groups,
	// its fields.
	Items []string `yaml:"items"`
	// Groups split a form's fields across side-by-side containers.
	Groups [][]string `yaml:"groups"`

	// Stats only.
	Values   []float64 `yaml:"values"`
	Decimals int       `yaml:"decimals"`
	Prefix   string    `yaml:"prefix"`
	Suffix   string    `yaml:"suffix"`

	Reveal RevealConfig `yaml:"reveal"`
}

// RevealConfig holds the per-section animation knobs. Zero values take the
// unveil defaults.
type RevealConfig struct {
	Animation string        `yaml:"animation"`
	Duration  time.Duration `yaml:"duration"`
	Delay     time.Duration `yaml:"delay"`
	Stagger   time.Duration `yaml:"stagger"`
	Easing    string        `yaml:"easing"`
	Direction string        `yaml:"direction"`
	Columns   int           `yaml:"columns"`
}

// Fields returns a form's fields in document order across its groups.
func (s Section) Fields() []string {
	if len(s.Groups) == 0 {
		return s.Items
	}
	var out []string
	for _, g := range s.Groups {
		out = append(out, g...)
	}
	return out
}

// LoadPage reads and validates a page file.
func LoadPage(path string) (*Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("showroom: read page: %w", err)
	}
	return ParsePage(data)
}

// ParsePage decodes and validates a page from YAML.
func ParsePage(data []byte) (*Page, error) {
	var p Page
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("showroom: parse page: %w", err)
	}
	if p.Width <= 0 {
		p.Width = defaultWidth
	}
	if p.Height <= 0 {
		p.Height = defaultHeight
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

func (p *Page) validate() error {
	if len(p.Sections) == 0 {
		return fmt.Errorf("showroom: page has no sections")
	}
	for i, s := range p.Sections {
		switch s.Kind {
		case KindHero:
		case KindStats:
			if len(s.Values) == 0 {
				return fmt.Errorf("showroom: section %d (%s): stats need values", i, s.Heading)
			}
		case KindGallery, KindList:
			if len(s.Items) == 0 {
				return fmt.Errorf("showroom: section %d (%s): %s needs items", i, s.Heading, s.Kind)
			}
		case KindForm:
			if len(s.Fields()) == 0 {
				return fmt.Errorf("showroom: section %d (%s): form needs fields", i, s.Heading)
			}
		default:
			return fmt.Errorf("showroom: section %d: unknown kind %q", i, s.Kind)
		}
	}
	return nil
}
