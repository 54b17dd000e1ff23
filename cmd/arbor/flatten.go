package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/aretw0/arbor/internal/cli"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// flattenCmd represents the flatten command
var flattenCmd = &cobra.Command{
	Use:   "flatten",
	Short: "Export the outline as a flat document",
	Long: `Loads the nested document and prints its flattened rows as a
document with a top-level "entries" list. The output round-trips: Arbor
loads flat exports back into the same outline.`,
	Run: func(cmd *cobra.Command, args []string) {
		dirPath, _ := cmd.Flags().GetString("dir")
		if !cmd.Flags().Changed("dir") && len(args) > 0 {
			dirPath = args[0]
		}
		format, _ := cmd.Flags().GetString("format")
		maxDepth, _ := cmd.Flags().GetInt("depth")

		engine, err := cli.OpenEngine(cmd.Context(), dirPath)
		if err != nil {
			fmt.Printf("Error initializing arbor: %v\n", err)
			os.Exit(1)
		}

		entries, err := engine.Outline(cmd.Context())
		if err != nil {
			fmt.Printf("Error flattening outline: %v\n", err)
			os.Exit(1)
		}

		if maxDepth >= 0 {
			kept := make([]domain.Entry, 0, len(entries))
			for _, e := range entries {
				if e.Depth <= maxDepth {
					kept = append(kept, e)
				}
			}
			entries = kept
		}

		doc := map[string]any{"entries": entries}

		switch format {
		case "json":
			data, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				fmt.Printf("Error marshaling outline: %v\n", err)
				os.Exit(1)
			}
			fmt.Println(string(data))
		case "yaml":
			// Round-trip through JSON so the YAML keys match the JSON
			// field names the flat loader expects.
			raw, err := json.Marshal(doc)
			if err != nil {
				fmt.Printf("Error marshaling outline: %v\n", err)
				os.Exit(1)
			}
			var generic map[string]any
			if err := json.Unmarshal(raw, &generic); err != nil {
				fmt.Printf("Error marshaling outline: %v\n", err)
				os.Exit(1)
			}
			data, err := yaml.Marshal(generic)
			if err != nil {
				fmt.Printf("Error marshaling outline: %v\n", err)
				os.Exit(1)
			}
			fmt.Print(string(data))
		default:
			fmt.Printf("Unknown format: %s. Supported: json, yaml\n", format)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(flattenCmd)
	flattenCmd.Flags().String("format", "json", "Output format: 'json' or 'yaml'")
	flattenCmd.Flags().Int("depth", -1, "Only export entries down to this depth (-1 for all)")
}
