package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/arbor/internal/cli"
	"github.com/spf13/cobra"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the outline without opening it",
	Long: `Runs a prefix search over the flattened outline and prints the
matching entries together with the ancestors that give them context.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dirPath, _ := cmd.Flags().GetString("dir")
		jsonMode, _ := cmd.Flags().GetBool("json")
		query := strings.Join(args, " ")

		engine, err := cli.OpenEngine(cmd.Context(), dirPath)
		if err != nil {
			fmt.Printf("Error initializing arbor: %v\n", err)
			os.Exit(1)
		}

		entries, err := engine.Search(cmd.Context(), query)
		if err != nil {
			fmt.Printf("Error searching outline: %v\n", err)
			os.Exit(1)
		}

		if jsonMode {
			data, err := json.MarshalIndent(entries, "", "  ")
			if err != nil {
				fmt.Printf("Error marshaling entries: %v\n", err)
				os.Exit(1)
			}
			fmt.Println(string(data))
			return
		}

		if len(entries) == 0 {
			fmt.Println("No entries matched.")
			return
		}

		for _, e := range entries {
			label := e.Title
			if label == "" {
				label = e.ID
			}
			fmt.Printf("%s%s (%s)\n", strings.Repeat("  ", e.Depth), label, e.ID)
		}
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().Bool("json", false, "Print matches as JSON")
}
