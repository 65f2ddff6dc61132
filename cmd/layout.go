package cmd

import (
	"fmt"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
)

// layoutCmd represents the layout command
var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Show the sheet geometry a deck would render with",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
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

		g := scope.Geometry()
		label := colorize.New(colorize.FgCyan).SprintFunc()

		fmt.Println(label("Deck:   "), colorize.HiWhiteString("%s", scope.Deck().Name))
		fmt.Println(label("Cards:  "), len(scope.Cards()))
		fmt.Println(label("Types:  "), scope.Types().Types())
		fmt.Println(label("Grid:   "), fmt.Sprintf("%d columns x %d rows", g.Columns, g.Rows))
		fmt.Println(label("Card:   "), fmt.Sprintf("%g x %g", g.CardWidth, g.CardHeight))
		fmt.Println(label("Page:   "), fmt.Sprintf("%g x %g", g.PageWidth, g.PageHeight))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(layoutCmd)
	addOptionFlags(layoutCmd)
}
