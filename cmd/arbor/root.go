package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "arbor",
	Short: "Arbor is a headless outline engine",
	Long: `Arbor flattens nested documents into navigable outlines.
It can browse them interactively, search them, serve them over HTTP,
or expose them to AI agents via MCP.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", ".", "Directory or document containing the outline")
}
