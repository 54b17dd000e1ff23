package main

import (
	"fmt"

	"github.com/aretw0/arbor"
	"github.com/spf13/cobra"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of Arbor",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("arbor version %s\n", arbor.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
