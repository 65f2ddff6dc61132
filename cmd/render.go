package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/cardsheet/internal/export"
	"github.com/arcanaland/cardsheet/internal/sheet"
)

// renderCmd represents the render command
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a deck into tabletop and print sheets",
	Long: `Render expands a deck file into two HTML sheets rendered from the same
Handlebars template: <deck>.html for virtual tabletops and <deck>_print.html
for printing. Unless --skip-png is set, the tabletop sheet is then rendered
to PDF with prince and stacked into a single PNG with ImageMagick.

Examples:
  cardsheet render --deck core.json
  cardsheet render --deck core.toml --columns 7 --skip-png
  cardsheet render -c options.toml --deck expansion.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := resolveOptions(cmd)
		if err != nil {
			return err
		}

		deckPath, err := resolveDeckPath(cmd, opts)
		if err != nil {
			return err
		}

		source := sheet.DefaultTemplate
		if opts.Template != "" {
			data, err := os.ReadFile(opts.Template)
			if err != nil {
				return fmt.Errorf("error reading template: %v", err)
			}
			source = string(data)
			logger.Info("Template file", "path", opts.Template)
		} else {
			logger.Info("Using default template")
		}

		tpl, err := sheet.Compile(source)
		if err != nil {
			return err
		}

		scope, err := buildScope(deckPath, opts)
		if err != nil {
			return describe(err)
		}

		sheets, err := sheet.RenderBoth(tpl, scope)
		if err != nil {
			return err
		}

		name := scope.Deck().Name
		paths, err := export.WriteHTML(opts.OutputHTMLDir, name, sheets)
		if err != nil {
			return err
		}

		fmt.Println("Num cards:", colorize.HiWhiteString("%d", len(scope.Cards())))
		fmt.Println("HTML TTS output:", colorize.CyanString("%s", paths.Tabletop))
		fmt.Println("HTML print output:", colorize.CyanString("%s", paths.Print))
		colorize.Green("Template compiled into html")

		if opts.SkipPNG {
			logger.Info("Skipping PDF and PNG creation")
			return nil
		}

		pdfPath := filepath.Join(opts.OutputPDFDir, opts.Prefix+name+".pdf")
		pngPath := filepath.Join(opts.OutputPNGDir, opts.Prefix+name+".png")

		converter := export.NewConverter(logger.WithPrefix("export"))
		if err := converter.PDF(cmd.Context(), paths.Tabletop, pdfPath); err != nil {
			return err
		}
		fmt.Println("PDF location:", colorize.CyanString("%s", pdfPath))

		if err := converter.PNG(cmd.Context(), pdfPath, pngPath); err != nil {
			return err
		}
		if scaled, err := export.Downscale(pngPath, opts.MaxPNGWidth); err != nil {
			return err
		} else if scaled {
			logger.Info("Downscaled PNG", "max_width", opts.MaxPNGWidth)
		}
		fmt.Println("PNG location:", colorize.CyanString("%s", pngPath))

		return nil
	},
}

func init() {
	RootCmd.AddCommand(renderCmd)
	addOptionFlags(renderCmd)
}
