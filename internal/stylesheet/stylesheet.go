// Package stylesheet loads the optional CSS injected into card sheets.
package stylesheet

import (
	"fmt"
	"os"

	"github.com/aymerick/douceur/parser"
)

// Load reads a CSS file. The text is injected into both sheets exactly as
// written, comments and all.
func Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("error reading stylesheet: %w", err)
	}
	return string(data), nil
}

// Check parses CSS text and reports the first syntax problem it finds.
// The parser does not know CSS Paged Media margin boxes, so a failure is
// advice for the user and never a reason to drop the stylesheet.
func Check(css string) error {
	if _, err := parser.Parse(css); err != nil {
		return fmt.Errorf("error parsing stylesheet: %w", err)
	}
	return nil
}
