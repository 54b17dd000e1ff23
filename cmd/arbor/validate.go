package main

import (
	"fmt"
	"os"

	"github.com/aretw0/arbor/internal/cli"
	"github.com/aretw0/arbor/internal/validator"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the outline for consistency",
	Long: `Loads the document, rejects structural errors (duplicate or empty ids,
unknown parents), and reports suspicious shapes like empty sections or
untitled entries.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(cmd, args); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Outline is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().Bool("strict", false, "Treat warnings as errors")
}

func runValidate(cmd *cobra.Command, args []string) error {
	dir, _ := cmd.Flags().GetString("dir")
	if !cmd.Flags().Changed("dir") && len(args) > 0 {
		dir = args[0]
	}
	strict, _ := cmd.Flags().GetBool("strict")

	// Loading already enforces the structural rules.
	engine, err := cli.OpenEngine(cmd.Context(), dir)
	if err != nil {
		return err
	}

	entries, err := engine.Outline(cmd.Context())
	if err != nil {
		return err
	}

	summary := validator.Summarize(entries)
	fmt.Printf("Entries: %d (roots %d, max depth %d)\n", summary.Entries, summary.Roots, summary.MaxDepth)

	warnings := validator.Check(entries)
	for _, w := range warnings {
		fmt.Println("Warning: " + w)
	}
	if strict && len(warnings) > 0 {
		return fmt.Errorf("%d warning(s) in strict mode", len(warnings))
	}

	return nil
}
