// Package export persists rendered sheets and converts them to PDF and PNG
// with external tools.
package export

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/nfnt/resize"

	"github.com/arcanaland/cardsheet/internal/sheet"
)

// HTMLPaths are the files WriteHTML produced
type HTMLPaths struct {
	Tabletop string
	Print    string
}

// WriteHTML writes <name>.html and <name>_print.html into dir
func WriteHTML(dir, name string, sheets sheet.Sheets) (HTMLPaths, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return HTMLPaths{}, fmt.Errorf("error creating output directory: %w", err)
	}

	paths := HTMLPaths{
		Tabletop: filepath.Join(dir, name+".html"),
		Print:    filepath.Join(dir, name+"_print.html"),
	}
	if err := os.WriteFile(paths.Tabletop, []byte(sheets.Tabletop), 0644); err != nil {
		return HTMLPaths{}, fmt.Errorf("error writing tabletop sheet: %w", err)
	}
	if err := os.WriteFile(paths.Print, []byte(sheets.Print), 0644); err != nil {
		return HTMLPaths{}, fmt.Errorf("error writing print sheet: %w", err)
	}
	return paths, nil
}

// Converter runs the external PDF renderer and image converter
type Converter struct {
	Prince string // HTML to PDF renderer binary
	Magick string // ImageMagick binary
	logger *log.Logger
}

// NewConverter returns a converter using prince and magick from PATH
func NewConverter(logger *log.Logger) *Converter {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "export"})
	}
	return &Converter{Prince: "prince", Magick: "magick", logger: logger}
}

// PDF renders an HTML sheet to a PDF file
func (c *Converter) PDF(ctx context.Context, htmlPath, pdfPath string) error {
	if err := os.MkdirAll(filepath.Dir(pdfPath), 0755); err != nil {
		return fmt.Errorf("error creating PDF directory: %w", err)
	}
	return c.run(ctx, c.Prince, htmlPath, "-o", pdfPath)
}

// PNG stacks every page of a PDF vertically into one PNG
func (c *Converter) PNG(ctx context.Context, pdfPath, pngPath string) error {
	if _, err := os.Stat(pdfPath); err != nil {
		return fmt.Errorf("PDF not available for PNG conversion: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(pngPath), 0755); err != nil {
		return fmt.Errorf("error creating PNG directory: %w", err)
	}
	return c.run(ctx, c.Magick, "convert", pdfPath, "-append", pngPath)
}

func (c *Converter) run(ctx context.Context, name string, args ...string) error {
	c.logger.Debug("running", "cmd", name, "args", args)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = c.logger.StandardLog(log.StandardLogOptions{ForceLevel: log.InfoLevel}).Writer()
	cmd.Stderr = c.logger.StandardLog(log.StandardLogOptions{ForceLevel: log.WarnLevel}).Writer()

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s failed: %w", name, err)
	}
	return nil
}

// Downscale shrinks a PNG in place so it is at most maxWidth pixels wide,
// keeping its aspect ratio. It reports whether the file was rewritten.
func Downscale(path string, maxWidth int) (bool, error) {
	if maxWidth <= 0 {
		return false, nil
	}

	img, err := readPNG(path)
	if err != nil {
		return false, err
	}
	if img.Bounds().Dx() <= maxWidth {
		return false, nil
	}

	scaled := resize.Resize(uint(maxWidth), 0, img, resize.Lanczos3)

	out, err := os.Create(path)
	if err != nil {
		return false, fmt.Errorf("error rewriting PNG: %w", err)
	}
	defer out.Close()

	if err := png.Encode(out, scaled); err != nil {
		return false, fmt.Errorf("error encoding PNG: %w", err)
	}
	return true, nil
}

func readPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening PNG: %w", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("error decoding PNG: %w", err)
	}
	return img, nil
}
