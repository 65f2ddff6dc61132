package validator

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arcanaland/cardsheet/internal/card"
)

func writeDeck(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func containsMessage(list []string, part string) bool {
	for _, s := range list {
		if strings.Contains(s, part) {
			return true
		}
	}
	return false
}

func TestValidate_CleanDeck(t *testing.T) {
	t.Parallel()

	path := writeDeck(t, "core.json", `[{"type": "unit", "name": "Knight", "description": "Hi {{who}}"}]`)
	results, err := NewValidator(path, map[string]any{"who": "Rex"}).Validate()
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if len(results.Errors) != 0 || len(results.Warnings) != 0 {
		t.Errorf("Validate() = %+v, want clean", results)
	}
}

func TestValidate_Findings(t *testing.T) {
	t.Parallel()

	body := `
types = ["unit", "spell", "relic"]

[[cards]]
type = "unit"
name = "Knight"
count = -1

[[cards]]
type = "trap"
name = "Pit"

[[cards]]
type = "spell"
description = "Deal {{damage}}"

[[cards]]
type = "spell"
name = "Broken"
description = "{{#if x}}"
`
	results, err := NewValidator(writeDeck(t, "core.toml", body), map[string]any{}).Validate()
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	for _, want := range []string{"count must not be negative", `type "trap" is not declared`, `unknown variable "damage"`, "invalid description template"} {
		if !containsMessage(results.Errors, want) {
			t.Errorf("Errors = %v, missing %q", results.Errors, want)
		}
	}
	for _, want := range []string{"card 2 (spell): no name field", `declared type "relic" has no cards`} {
		if !containsMessage(results.Warnings, want) {
			t.Errorf("Warnings = %v, missing %q", results.Warnings, want)
		}
	}
}

func TestValidate_PlaceholdersWithoutVariables(t *testing.T) {
	t.Parallel()

	path := writeDeck(t, "core.json", `[{"type": "unit", "name": "A", "description": "Hi {{who}}"}]`)
	results, err := NewValidator(path, nil).Validate()
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if !containsMessage(results.Warnings, "no variables are configured") {
		t.Errorf("Warnings = %v", results.Warnings)
	}
}

func TestValidate_LargeDeck(t *testing.T) {
	t.Parallel()

	path := writeDeck(t, "big.json", `[{"type": "unit", "name": "A", "count": 120}]`)
	results, err := NewValidator(path, nil).Validate()
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if !containsMessage(results.Warnings, "page-ender markers stop at card 99") {
		t.Errorf("Warnings = %v", results.Warnings)
	}
}

func TestValidate_Unloadable(t *testing.T) {
	t.Parallel()

	_, err := NewValidator(writeDeck(t, "core.json", `{"cards": "nope"}`), nil).Validate()
	var shapeErr *card.InputShapeError
	if !errors.As(err, &shapeErr) {
		t.Errorf("error = %v, want *card.InputShapeError", err)
	}
}
