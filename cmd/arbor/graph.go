package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/aretw0/arbor/internal/cli"
	"github.com/aretw0/arbor/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the outline visualization",
	Long: `Inspects the outline and outputs a Mermaid diagram (graph TD)
representing its hierarchy. With --session, the saved browsing state is
overlaid: opened entries, the cursor, and the entries matching the
session's active filter.`,
	Run: func(cmd *cobra.Command, args []string) {
		dirPath, _ := cmd.Flags().GetString("dir")
		if !cmd.Flags().Changed("dir") && len(args) > 0 {
			dirPath = args[0]
		}
		sessionID, _ := cmd.Flags().GetString("session")

		engine, err := cli.OpenEngine(cmd.Context(), dirPath)
		if err != nil {
			fmt.Printf("Error initializing arbor: %v\n", err)
			os.Exit(1)
		}

		entries, err := engine.Outline(cmd.Context())
		if err != nil {
			fmt.Printf("Error inspecting outline: %v\n", err)
			os.Exit(1)
		}

		var overlay *graph.Overlay
		if sessionID != "" {
			store, err := getStore(cmd)
			if err != nil {
				fmt.Printf("Error opening session store: %v\n", err)
				os.Exit(1)
			}
			state, err := store.Load(cmd.Context(), sessionID)
			if err != nil {
				fmt.Printf("Error loading session '%s': %v\n", sessionID, err)
				os.Exit(1)
			}

			overlay = &graph.Overlay{CurrentID: state.CursorID}
			for id, open := range state.Expanded {
				if open {
					overlay.Visited = append(overlay.Visited, id)
				}
			}
			sort.Strings(overlay.Visited)

			if state.Query != "" {
				matches, err := engine.Search(cmd.Context(), state.Query)
				if err == nil {
					for _, m := range matches {
						overlay.Matched = append(overlay.Matched, m.ID)
					}
				}
			}
		}

		// Generate and print Mermaid graph
		fmt.Print(graph.GenerateMermaid(entries, overlay))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("session", "", "Overlay the saved state of this session")
}
