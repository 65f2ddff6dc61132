package sheet

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/arcanaland/cardsheet/internal/card"
	"github.com/arcanaland/cardsheet/internal/layout"
)

func exampleInput() Input {
	return Input{
		DeckID: "core.json",
		Definitions: []card.Definition{
			{Type: "unit", Count: 2, Description: "Hello {{name}}"},
			{Type: "spell", Count: 1, Description: "Static"},
		},
		Variables:  map[string]any{"name": "Rex"},
		Columns:    10,
		CardWidth:  2.5,
		CardHeight: 3.5,
		Config:     map[string]any{"prefix": "tts_"},
	}
}

func TestBuild_EndToEnd(t *testing.T) {
	t.Parallel()

	s, err := Build(exampleInput())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	cards := s.Cards()
	if len(cards) != 3 {
		t.Fatalf("len(cards) = %d, want 3", len(cards))
	}
	g := s.Geometry()
	if g.Rows != 2 || g.PageWidth != 25 || g.PageHeight != 7 {
		t.Errorf("Geometry = %+v, want rows 2, 25x7", g)
	}

	wants := []struct {
		desc string
		is   map[string]bool
	}{
		{"Hello Rex", map[string]bool{"unit": true}},
		{"Hello Rex", map[string]bool{"unit": true}},
		{"Static", map[string]bool{"spell": true}},
	}
	for i, w := range wants {
		if cards[i].Description != w.desc {
			t.Errorf("cards[%d].Description = %q, want %q", i, cards[i].Description, w.desc)
		}
		if !reflect.DeepEqual(cards[i].Is(), w.is) {
			t.Errorf("cards[%d].Is() = %v, want %v", i, cards[i].Is(), w.is)
		}
	}

	if s.Deck().Name != "core" {
		t.Errorf("deck name = %q, want core", s.Deck().Name)
	}
	if got := s.Types().Types(); !reflect.DeepEqual(got, []string{"spell", "unit"}) {
		t.Errorf("Types() = %v", got)
	}
	if len(s.Palette()) != 2 {
		t.Errorf("Palette() = %v, want two entries", s.Palette())
	}
}

func TestBuild_ConfigurationCheckedFirst(t *testing.T) {
	t.Parallel()

	in := exampleInput()
	in.Columns = 0
	in.Definitions = append(in.Definitions, card.Definition{})

	_, err := Build(in)
	var cfgErr *layout.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("error = %v, want *layout.ConfigurationError", err)
	}
}

func TestBuild_PropagatesTypedErrors(t *testing.T) {
	t.Parallel()

	in := exampleInput()
	in.Variables = map[string]any{}
	_, err := Build(in)
	var subErr *card.SubstitutionError
	if !errors.As(err, &subErr) {
		t.Errorf("error = %v, want *card.SubstitutionError", err)
	}

	in = exampleInput()
	in.Types = card.NewTypeSet("unit")
	_, err = Build(in)
	var shapeErr *card.InputShapeError
	if !errors.As(err, &shapeErr) {
		t.Errorf("error = %v, want *card.InputShapeError", err)
	}
}

func TestBuild_EmptyDeck(t *testing.T) {
	t.Parallel()

	in := exampleInput()
	in.Definitions = nil
	s, err := Build(in)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if s.Geometry().Rows != 1 {
		t.Errorf("Rows = %d, want 1", s.Geometry().Rows)
	}
}

func TestDeckName(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"core.json":            "core",
		"core.v2.json":         "core",
		"decks/expansion.toml": "expansion",
		"plain":                "plain",
	}
	for id, want := range tests {
		if got := DeckName(id); got != want {
			t.Errorf("DeckName(%q) = %q, want %q", id, got, want)
		}
	}
}

func TestContext_Keys(t *testing.T) {
	t.Parallel()

	s, err := Build(exampleInput())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	ctx := s.Context(true)

	if ctx["print"] != true || s.Context(false)["print"] != false {
		t.Error("print flag not applied")
	}
	if got := ctx["loop5"]; !reflect.DeepEqual(got, []int{1, 2, 3, 4, 5}) {
		t.Errorf("loop5 = %v", got)
	}
	if got := ctx["loop40"].([]int); len(got) != 40 || got[39] != 40 {
		t.Errorf("loop40 = %v", got)
	}
	deck := ctx["deck"].(map[string]any)
	if !reflect.DeepEqual(deck["is"], map[string]bool{"core": true}) {
		t.Errorf("deck.is = %v", deck["is"])
	}
	if len(ctx["pointTokens"].([]int)) != 60 {
		t.Error("pointTokens length")
	}

	// Mutating one context must not leak into the next.
	ctx["pageEnders"].([]int)[0] = -1
	ctx["config"].(map[string]any)["prefix"] = "changed"
	next := s.Context(true)
	if next["pageEnders"].([]int)[0] != 9 {
		t.Error("pageEnders shared between contexts")
	}
	if next["config"].(map[string]any)["prefix"] != "tts_" {
		t.Error("config shared between contexts")
	}
}

const testTemplate = `{{#if print}}P{{else}}T{{/if}}|{{rows}}|{{#each cards}}{{description}}{{#if is.unit}}!{{/if}};{{/each}}|{{deck.name}}{{#if deck.is.core}}*{{/if}}|{{#each loop3}}{{this}}{{/each}}|{{config.prefix}}`

func TestRenderBoth(t *testing.T) {
	t.Parallel()

	tpl, err := Compile(testTemplate)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	s, err := Build(exampleInput())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	sheets, err := RenderBoth(tpl, s)
	if err != nil {
		t.Fatalf("RenderBoth() error = %v", err)
	}

	body := "|2|Hello Rex!;Hello Rex!;Static;|core*|123|tts_"
	if sheets.Tabletop != "T"+body {
		t.Errorf("Tabletop = %q", sheets.Tabletop)
	}
	if sheets.Print != "P"+body {
		t.Errorf("Print = %q", sheets.Print)
	}
}

func TestRenderBoth_Idempotent(t *testing.T) {
	t.Parallel()

	tpl, err := Compile(DefaultTemplate)
	if err != nil {
		t.Fatalf("Compile(DefaultTemplate) error = %v", err)
	}

	render := func() Sheets {
		s, err := Build(exampleInput())
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		sheets, err := RenderBoth(tpl, s)
		if err != nil {
			t.Fatalf("RenderBoth() error = %v", err)
		}
		return sheets
	}

	first, second := render(), render()
	if first != second {
		t.Error("identical inputs rendered different sheets")
	}
	if !strings.Contains(first.Print, `class="tokens"`) || strings.Contains(first.Tabletop, `class="tokens"`) {
		t.Error("token sheet should only appear in the print variant")
	}
	if strings.Count(first.Tabletop, `class="card card-unit"`) != 2 {
		t.Errorf("expected two unit cards in:\n%s", first.Tabletop)
	}
}

func TestCompile_Invalid(t *testing.T) {
	t.Parallel()

	if _, err := Compile("{{#each cards}}"); err == nil {
		t.Error("expected error for unclosed block")
	}
}

func TestIfPageEnder(t *testing.T) {
	t.Parallel()

	in := exampleInput()
	in.Definitions = []card.Definition{{Type: "unit", Count: 10}}
	s, err := Build(in)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	tests := []struct {
		name     string
		template string
		want     string
	}{
		{"marks positions 7 to 9", `{{#each cards}}{{#ifPageEnder ../pageEnders @index}}E{{else}}.{{/ifPageEnder}}{{/each}}`, "......EEE."},
		{"no list", `{{#each cards}}{{#ifPageEnder ../missing @index}}E{{else}}.{{/ifPageEnder}}{{/each}}`, ".........."},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tpl, err := Compile(tt.template)
			if err != nil {
				t.Fatalf("Compile() error = %v", err)
			}
			got, err := Render(tpl, s, true)
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}

	tpl, err := Compile(DefaultTemplate)
	if err != nil {
		t.Fatalf("Compile(DefaultTemplate) error = %v", err)
	}
	out, err := Render(tpl, s, true)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if n := strings.Count(out, `class="card card-unit page-ender"`); n != 3 {
		t.Errorf("default template marked %d page-ender cards, want 3", n)
	}
}
