// Package sheet assembles the render scope of a deck and renders the
// tabletop and print variants of its card sheet from one template.
package sheet

import (
	"fmt"
	"maps"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/arcanaland/cardsheet/internal/card"
	"github.com/arcanaland/cardsheet/internal/layout"
	"github.com/arcanaland/cardsheet/internal/sequence"
)

// Input is everything a scope is built from
type Input struct {
	DeckID      string // deck file name or path, e.g. "core.json"
	Definitions []card.Definition
	Types       card.TypeSet   // declared types; empty derives them from the definitions
	Variables   map[string]any // description substitution context, may be nil
	Columns     int
	CardWidth   float64
	CardHeight  float64
	Stylesheet  string
	SkipPNG     bool
	Config      map[string]any
}

// Identity names the deck inside templates
type Identity struct {
	Name string
}

// Is returns the deck's self-tag: its own name set true
func (i Identity) Is() map[string]bool {
	return map[string]bool{i.Name: true}
}

// Scope is the immutable data a sheet template renders against.
// Accessors return copies.
type Scope struct {
	cards     []card.Expanded
	types     card.TypeSet
	geometry  layout.Geometry
	sequences sequence.Sequences
	deck      Identity
	css       string
	skipPNG   bool
	palette   map[string]string
	config    map[string]any
}

// DeckName derives a deck's name from its identifier: the base name up to
// the first dot.
func DeckName(id string) string {
	base := filepath.Base(filepath.ToSlash(id))
	if i := strings.Index(base, "."); i >= 0 {
		base = base[:i]
	}
	return base
}

// Build validates the layout settings, expands the deck and freezes the
// result into a Scope.
func Build(in Input) (*Scope, error) {
	if err := layout.Validate(in.Columns, in.CardWidth, in.CardHeight); err != nil {
		return nil, err
	}

	types := in.Types
	expander := card.Expander{Types: types, Vars: in.Variables}
	cards, err := expander.Expand(in.Definitions)
	if err != nil {
		return nil, err
	}
	if types.Empty() {
		types = card.TypesOf(in.Definitions)
	}

	geometry, err := layout.Compute(len(cards), in.Columns, in.CardWidth, in.CardHeight)
	if err != nil {
		return nil, err
	}

	name := DeckName(in.DeckID)
	if name == "" || name == "." {
		return nil, fmt.Errorf("deck identifier %q yields no name", in.DeckID)
	}

	return &Scope{
		cards:     cards,
		types:     types,
		geometry:  geometry,
		sequences: sequence.Generate(),
		deck:      Identity{Name: name},
		css:       in.Stylesheet,
		skipPNG:   in.SkipPNG,
		palette:   Palette(types),
		config:    deepCopy(in.Config),
	}, nil
}

// Palette assigns every card type an evenly spaced colour
func Palette(types card.TypeSet) map[string]string {
	names := types.Types()
	out := make(map[string]string, len(names))
	for i, t := range names {
		hue := 360 * float64(i) / float64(len(names))
		out[t] = colorful.Hsv(hue, 0.45, 0.92).Hex()
	}
	return out
}

func (s *Scope) Cards() []card.Expanded { return append([]card.Expanded(nil), s.cards...) }

func (s *Scope) Geometry() layout.Geometry { return s.geometry }

func (s *Scope) Deck() Identity { return s.deck }

func (s *Scope) Stylesheet() string { return s.css }

func (s *Scope) Types() card.TypeSet { return s.types }

func (s *Scope) Palette() map[string]string { return maps.Clone(s.palette) }

func (s *Scope) PageEnders() []int { return append([]int(nil), s.sequences.PageEnders...) }

func (s *Scope) PointTokens() []int { return append([]int(nil), s.sequences.PointTokens...) }

// IndexChain returns [1..k] as generated when the scope was built
func (s *Scope) IndexChain(k int) []int {
	chain := s.sequences.Chain(k)
	if chain == nil {
		return nil
	}
	return append([]int(nil), chain...)
}

// Context returns the template context for one render pass. Every call
// builds fresh maps and slices, so no pass can affect another.
func (s *Scope) Context(forPrint bool) map[string]any {
	cards := make([]any, len(s.cards))
	for i, c := range s.cards {
		cards[i] = c.Map()
	}

	ctx := map[string]any{
		"cards":       cards,
		"rows":        s.geometry.Rows,
		"columns":     s.geometry.Columns,
		"cardWidth":   s.geometry.CardWidth,
		"cardHeight":  s.geometry.CardHeight,
		"pageWidth":   s.geometry.PageWidth,
		"pageHeight":  s.geometry.PageHeight,
		"pageEnders":  s.PageEnders(),
		"pointTokens": s.PointTokens(),
		"print":       forPrint,
		"skipPNG":     s.skipPNG,
		"css":         s.css,
		"palette":     s.Palette(),
		"config":      deepCopy(s.config),
		"deck": map[string]any{
			"name": s.deck.Name,
			"is":   s.deck.Is(),
		},
	}
	for k := 1; k <= sequence.MaxIndexChain; k++ {
		ctx[fmt.Sprintf("loop%d", k)] = s.IndexChain(k)
	}
	return ctx
}

func deepCopy(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		switch vv := v.(type) {
		case map[string]any:
			out[k] = deepCopy(vv)
		case []any:
			out[k] = append([]any(nil), vv...)
		default:
			out[k] = v
		}
	}
	return out
}
