package cmd

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/term"

	"github.com/arcanaland/cardsheet/internal/card"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [position]",
	Short: "Display one printed card of a deck",
	Long: `Show displays a card as it will be printed: after multiplicity expansion
and description substitution. Positions are 1-based indexes into the
expanded deck, the same numbering page-ender markers use.

Examples:
  cardsheet show --deck core.json 1
  cardsheet show -c options.toml --deck core.toml 12`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		position, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid position: %s", args[0])
		}

		opts, err := resolveOptions(cmd)
		if err != nil {
			return err
		}

		deckPath, err := resolveDeckPath(cmd, opts)
		if err != nil {
			return err
		}

		scope, err := buildScope(deckPath, opts)
		if err != nil {
			return describe(err)
		}

		cards := scope.Cards()
		if position < 1 || position > len(cards) {
			return fmt.Errorf("position %d out of range, deck has %d cards", position, len(cards))
		}

		displayCard(cards[position-1], position, scope.Deck().Name, scope.Palette())
		return nil
	},
}

func init() {
	RootCmd.AddCommand(showCmd)
	addOptionFlags(showCmd)
}

// wrapText wraps text to a specified width
func wrapText(text string, width int) []string {
	// Ensure width is reasonable
	if width < 10 {
		width = 40
	}

	var result []string
	var currentLine string
	words := strings.Fields(text)

	if len(words) == 0 {
		return []string{""}
	}

	for _, word := range words {
		if len(currentLine) == 0 {
			currentLine = word
		} else if len(currentLine)+1+len(word) <= width {
			currentLine += " " + word
		} else {
			result = append(result, currentLine)
			currentLine = word
		}
	}

	if currentLine != "" {
		result = append(result, currentLine)
	}

	return result
}

// typeSwatch renders a block in the card type's palette colour
func typeSwatch(hex string) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return "•"
	}
	r, g, b := c.RGB255()
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm■\x1b[0m", r, g, b)
}

// displayCard prints the card's fields, wrapping long text to the terminal
func displayCard(c card.Expanded, position int, deckName string, palette map[string]string) {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		width = 80
	}
	textWidth := width - 4

	label := colorize.CyanString
	fmt.Println()
	if name, ok := c.Field("name"); ok {
		fmt.Println("  " + label("Card: ") + colorize.HiWhiteString("%v", name))
	}
	fmt.Println("  " + label("Deck: ") + colorize.HiWhiteString("%s", deckName))
	fmt.Println("  " + label("Slot: ") + colorize.HiWhiteString("%d", position))

	swatch := "•"
	if hex, ok := palette[c.Type]; ok && !colorize.NoColor {
		swatch = typeSwatch(hex)
	}
	fmt.Println("  " + label("Type: ") + colorize.HiWhiteString("%s", c.Type) + " " + swatch)
	fmt.Println("  " + label("Copies: ") + colorize.HiWhiteString("%d", c.Count))

	fields := c.Map()
	var keys []string
	for k := range fields {
		switch k {
		case "name", "type", "count", "description", "is":
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Println("  " + label("%s: ", k) + fmt.Sprint(fields[k]))
	}

	if c.Description != "" {
		fmt.Println()
		fmt.Println("  " + label("Description:"))
		for _, line := range wrapText(c.Description, textWidth) {
			fmt.Println("  " + line)
		}
	}
	fmt.Println()
}
