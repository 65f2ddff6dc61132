package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/arcanaland/cardsheet/internal/layout"
)

// Options are the settings of one render run. A flag given on the command
// line wins over the options file, which wins over the defaults.
type Options struct {
	Prefix        string         `toml:"prefix"` // prepended to PDF and PNG names
	Columns       int            `toml:"columns"`
	CardWidth     float64        `toml:"card_width"`  // template CSS units
	CardHeight    float64        `toml:"card_height"` // template CSS units
	SkipPNG       bool           `toml:"skip_png"`
	Template      string         `toml:"template"` // empty uses the built-in template
	CSSFile       string         `toml:"css_file"`
	DecksDir      string         `toml:"decks_dir"`
	OutputHTMLDir string         `toml:"output_html_dir"`
	OutputPDFDir  string         `toml:"output_pdfs_dir"`
	OutputPNGDir  string         `toml:"output_pngs_dir"`
	MaxPNGWidth   int            `toml:"max_png_width"` // 0 keeps the converter's size
	Variables     map[string]any `toml:"variables"`     // description placeholders
}

// DefaultOptions returns the options used when nothing is configured
func DefaultOptions() Options {
	return Options{
		Columns:       layout.DefaultColumns,
		CardWidth:     layout.DefaultCardWidth,
		CardHeight:    layout.DefaultCardHeight,
		DecksDir:      ".",
		OutputHTMLDir: "out/html",
		OutputPDFDir:  "out/pdf",
		OutputPNGDir:  "out/png",
	}
}

// LoadOptions decodes an options file on top of the defaults
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()
	if _, err := toml.DecodeFile(path, &opts); err != nil {
		return Options{}, fmt.Errorf("error decoding options file %s: %w", path, err)
	}
	return opts, nil
}

// Map exposes the options to templates under their file keys
func (o Options) Map() map[string]any {
	vars := make(map[string]any, len(o.Variables))
	for k, v := range o.Variables {
		vars[k] = v
	}
	return map[string]any{
		"prefix":          o.Prefix,
		"columns":         o.Columns,
		"card_width":      o.CardWidth,
		"card_height":     o.CardHeight,
		"skip_png":        o.SkipPNG,
		"template":        o.Template,
		"css_file":        o.CSSFile,
		"decks_dir":       o.DecksDir,
		"output_html_dir": o.OutputHTMLDir,
		"output_pdfs_dir": o.OutputPDFDir,
		"output_pngs_dir": o.OutputPNGDir,
		"max_png_width":   o.MaxPNGWidth,
		"variables":       vars,
	}
}
