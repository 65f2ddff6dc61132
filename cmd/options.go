package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arcanaland/cardsheet/internal/card"
	"github.com/arcanaland/cardsheet/internal/config"
	"github.com/arcanaland/cardsheet/internal/deck"
	"github.com/arcanaland/cardsheet/internal/layout"
	"github.com/arcanaland/cardsheet/internal/sheet"
	"github.com/arcanaland/cardsheet/internal/stylesheet"
)

// addOptionFlags registers the render option flags shared by render and layout
func addOptionFlags(cmd *cobra.Command) {
	defaults := config.DefaultOptions()
	f := cmd.Flags()

	f.StringP("deck", "d", "", "Deck file, looked up in the decks directory or the deck library")
	f.StringP("config", "c", "", "Path to a TOML options file (or set CARDSHEET_CONFIG)")
	f.String("prefix", defaults.Prefix, "Prefix for PDF and PNG file names, handy for grouping Tabletop Simulator assets")
	f.Int("columns", defaults.Columns, "Number of cards per row")
	f.Float64("card-width", defaults.CardWidth, "Card width in the template's CSS units")
	f.Float64("card-height", defaults.CardHeight, "Card height in the template's CSS units")
	f.Bool("skip-png", defaults.SkipPNG, "Only write HTML, skip PDF and PNG conversion")
	f.String("template", defaults.Template, "Handlebars sheet template (default: built-in)")
	f.String("css", defaults.CSSFile, "Stylesheet injected into the template as css")
	f.String("decks-dir", defaults.DecksDir, "Directory deck files are read from")
	f.String("out-html", defaults.OutputHTMLDir, "Output directory for HTML sheets")
	f.String("out-pdf", defaults.OutputPDFDir, "Output directory for PDFs")
	f.String("out-png", defaults.OutputPNGDir, "Output directory for PNGs")
	f.Int("max-png-width", defaults.MaxPNGWidth, "Downscale PNGs wider than this many pixels (0 disables)")
}

// resolveOptions merges defaults, the options file, the environment and
// the flags the user actually set, in increasing priority.
func resolveOptions(cmd *cobra.Command) (config.Options, error) {
	env, err := config.LoadEnv()
	if err != nil {
		return config.Options{}, err
	}

	f := cmd.Flags()
	configPath, _ := f.GetString("config")
	if configPath == "" {
		configPath = env.ConfigFile
	}

	opts := config.DefaultOptions()
	if configPath != "" {
		logger.Info("Reading config", "path", configPath)
		opts, err = config.LoadOptions(configPath)
		if err != nil {
			return config.Options{}, err
		}
	} else {
		logger.Debug("No config file to load")
	}

	if env.DecksDir != "" {
		opts.DecksDir = env.DecksDir
	}
	if env.Template != "" {
		opts.Template = env.Template
	}

	if f.Changed("prefix") {
		opts.Prefix, _ = f.GetString("prefix")
	}
	if f.Changed("columns") {
		opts.Columns, _ = f.GetInt("columns")
	}
	if f.Changed("card-width") {
		opts.CardWidth, _ = f.GetFloat64("card-width")
	}
	if f.Changed("card-height") {
		opts.CardHeight, _ = f.GetFloat64("card-height")
	}
	if f.Changed("skip-png") {
		opts.SkipPNG, _ = f.GetBool("skip-png")
	}
	if f.Changed("template") {
		opts.Template, _ = f.GetString("template")
	}
	if f.Changed("css") {
		opts.CSSFile, _ = f.GetString("css")
	}
	if f.Changed("decks-dir") {
		opts.DecksDir, _ = f.GetString("decks-dir")
	}
	if f.Changed("out-html") {
		opts.OutputHTMLDir, _ = f.GetString("out-html")
	}
	if f.Changed("out-pdf") {
		opts.OutputPDFDir, _ = f.GetString("out-pdf")
	}
	if f.Changed("out-png") {
		opts.OutputPNGDir, _ = f.GetString("out-png")
	}
	if f.Changed("max-png-width") {
		opts.MaxPNGWidth, _ = f.GetInt("max-png-width")
	}

	return opts, nil
}

// resolveDeckPath finds the deck named by --deck, falling back to the
// default deck from the application config
func resolveDeckPath(cmd *cobra.Command, opts config.Options) (string, error) {
	deckFlag, _ := cmd.Flags().GetString("deck")
	if deckFlag == "" {
		defaultDeck, err := config.GetDefaultDeck()
		if err != nil {
			return "", fmt.Errorf("error getting default deck: %v", err)
		}
		if defaultDeck == "" {
			return "", errors.New("no deck specified (use --deck or 'cardsheet deck set-default')")
		}
		deckFlag = defaultDeck
	}

	deckPath := filepath.Join(opts.DecksDir, deckFlag)
	if _, err := os.Stat(deckPath); err == nil {
		return deckPath, nil
	}
	return config.GetDeckPath(deckFlag)
}

// buildScope loads the deck and stylesheet and builds the render scope
func buildScope(deckPath string, opts config.Options) (*sheet.Scope, error) {
	// Reject bad layout settings before touching the deck.
	if err := layout.Validate(opts.Columns, opts.CardWidth, opts.CardHeight); err != nil {
		return nil, err
	}

	logger.Info("Loading deck", "path", deckPath)
	d, err := deck.LoadDeck(deckPath)
	if err != nil {
		return nil, err
	}
	logger.Debug("Deck loaded", "definitions", len(d.Cards))

	var css string
	if opts.CSSFile != "" {
		css, err = stylesheet.Load(opts.CSSFile)
		if err != nil {
			return nil, err
		}
		if err := stylesheet.Check(css); err != nil {
			logger.Warn("Stylesheet did not parse, injecting it unchanged", "path", opts.CSSFile, "err", err)
		}
	}

	return sheet.Build(sheet.Input{
		DeckID:      d.ID,
		Definitions: d.Cards,
		Types:       d.Types,
		Variables:   opts.Variables,
		Columns:     opts.Columns,
		CardWidth:   opts.CardWidth,
		CardHeight:  opts.CardHeight,
		Stylesheet:  css,
		SkipPNG:     opts.SkipPNG,
		Config:      opts.Map(),
	})
}

// describe turns the engine's typed failures into targeted messages
func describe(err error) error {
	var shapeErr *card.InputShapeError
	var cfgErr *layout.ConfigurationError
	var subErr *card.SubstitutionError

	switch {
	case errors.As(err, &shapeErr):
		return fmt.Errorf("invalid deck: %w", err)
	case errors.As(err, &cfgErr):
		return fmt.Errorf("invalid layout configuration: %w", err)
	case errors.As(err, &subErr):
		return fmt.Errorf("description substitution failed: %w", err)
	default:
		return err
	}
}
