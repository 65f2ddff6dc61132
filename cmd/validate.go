package cmd

import (
	"fmt"
	"os"

	"github.com/arcanaland/cardsheet/internal/config"
	"github.com/arcanaland/cardsheet/internal/validator"
	"github.com/spf13/cobra"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate a deck file",
	Long: `Validate checks that a deck file has the shape cardsheet renders:
a list of cards, each with a type, a sensible count and descriptions whose
placeholders resolve against the configured variables.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deckPath := args[0]

		// Check if path exists
		if _, err := os.Stat(deckPath); os.IsNotExist(err) {
			return fmt.Errorf("deck file not found: %s", deckPath)
		}

		var variables map[string]any
		if configPath, _ := cmd.Flags().GetString("config"); configPath != "" {
			opts, err := config.LoadOptions(configPath)
			if err != nil {
				return err
			}
			variables = opts.Variables
		}

		// Create validator and run validation
		v := validator.NewValidator(deckPath, variables)
		results, err := v.Validate()
		if err != nil {
			return describe(err)
		}

		// Display validation results
		fmt.Println("Validation Results:")
		fmt.Println("-------------------")

		if len(results.Errors) == 0 {
			fmt.Printf("✅ Deck '%s' is valid.\n", deckPath)
		} else {
			fmt.Printf("❌ Deck '%s' has %d validation errors:\n", deckPath, len(results.Errors))
			for i, err := range results.Errors {
				fmt.Printf("%d. %s\n", i+1, err)
			}
			return fmt.Errorf("validation failed")
		}

		if len(results.Warnings) > 0 {
			fmt.Println("\nWarnings:")
			for i, warn := range results.Warnings {
				fmt.Printf("%d. %s\n", i+1, warn)
			}
		}

		return nil
	},
}

func init() {
	validateCmd.Flags().StringP("config", "c", "", "Options file whose variables descriptions are checked against")
}
