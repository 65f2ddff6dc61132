package validator

import (
	"errors"
	"fmt"

	"github.com/aymerick/raymond"

	"github.com/arcanaland/cardsheet/internal/card"
	"github.com/arcanaland/cardsheet/internal/deck"
	"github.com/arcanaland/cardsheet/internal/sequence"
)

type ValidationResults struct {
	Errors   []string
	Warnings []string
}

type Validator struct {
	DeckPath  string
	Variables map[string]any // nil skips placeholder resolution checks
	Results   ValidationResults
}

func NewValidator(deckPath string, variables map[string]any) *Validator {
	return &Validator{
		DeckPath:  deckPath,
		Variables: variables,
		Results:   ValidationResults{},
	}
}

// Validate loads the deck and collects everything that would break or
// degrade a render. A deck that cannot be loaded at all is returned as an
// error.
func (v *Validator) Validate() (ValidationResults, error) {
	d, err := deck.LoadDeck(v.DeckPath)
	if err != nil {
		return v.Results, err
	}

	if len(d.Cards) == 0 {
		v.Results.Warnings = append(v.Results.Warnings, "deck has no cards")
		return v.Results, nil
	}

	v.validateCards(d)
	v.validateTypes(d)
	v.validateDescriptions(d)
	v.validateSize(d)

	return v.Results, nil
}

// validateCards checks counts and the fields every template shows
func (v *Validator) validateCards(d *deck.Deck) {
	for i, c := range d.Cards {
		if c.Count < 0 {
			v.Results.Errors = append(v.Results.Errors,
				fmt.Sprintf("card %d (%s): count must not be negative, got %d", i, c.Type, c.Count))
		}
		if _, ok := c.Fields["name"]; !ok {
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("card %d (%s): no name field", i, c.Type))
		}
	}
}

// validateTypes checks cards against the declared type list
func (v *Validator) validateTypes(d *deck.Deck) {
	if d.Types.Empty() {
		return
	}

	used := map[string]bool{}
	for i, c := range d.Cards {
		used[c.Type] = true
		if !d.Types.Contains(c.Type) {
			v.Results.Errors = append(v.Results.Errors,
				fmt.Sprintf("card %d: type %q is not declared in types", i, c.Type))
		}
	}

	for _, t := range d.Types.Types() {
		if !used[t] {
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("declared type %q has no cards", t))
		}
	}
}

// validateDescriptions checks that every description parses and, when a
// variable context is given, that it resolves
func (v *Validator) validateDescriptions(d *deck.Deck) {
	for i, c := range d.Cards {
		if c.Description == "" {
			continue
		}

		if _, err := raymond.Parse(c.Description); err != nil {
			v.Results.Errors = append(v.Results.Errors,
				fmt.Sprintf("card %d (%s): invalid description template: %v", i, c.Type, err))
			continue
		}

		if v.Variables == nil {
			if len(card.Placeholders(c.Description)) > 0 {
				v.Results.Warnings = append(v.Results.Warnings,
					fmt.Sprintf("card %d (%s): description has placeholders but no variables are configured", i, c.Type))
			}
			continue
		}

		_, err := card.Expand([]card.Definition{c}, v.Variables)
		var subErr *card.SubstitutionError
		if errors.As(err, &subErr) && subErr.Placeholder != "" {
			v.Results.Errors = append(v.Results.Errors,
				fmt.Sprintf("card %d (%s): unknown variable %q", i, c.Type, subErr.Placeholder))
		}
	}
}

// validateSize warns when the expanded deck runs past the page-ender window
func (v *Validator) validateSize(d *deck.Deck) {
	total := 0
	for _, c := range d.Cards {
		total += c.Copies()
	}

	last := 0
	for _, i := range sequence.PageEnders() {
		last = max(last, i)
	}
	if total > last {
		v.Results.Warnings = append(v.Results.Warnings,
			fmt.Sprintf("deck expands to %d cards; page-ender markers stop at card %d", total, last))
	}
}
