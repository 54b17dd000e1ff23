package main

import (
	"fmt"
	"os"

	"github.com/aretw0/arbor/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Browse the outline interactively",
	Long:  `Starts the Arbor engine in interactive mode with the outline from the current directory.`,
	Run: func(cmd *cobra.Command, args []string) {
		dirPath, _ := cmd.Flags().GetString("dir")
		if !cmd.Flags().Changed("dir") && len(args) > 0 {
			dirPath = args[0]
		}
		headless, _ := cmd.Flags().GetBool("headless")
		watchMode, _ := cmd.Flags().GetBool("watch")
		jsonMode, _ := cmd.Flags().GetBool("json")
		debug, _ := cmd.Flags().GetBool("debug")
		folded, _ := cmd.Flags().GetBool("folded")
		fresh, _ := cmd.Flags().GetBool("fresh")
		height, _ := cmd.Flags().GetInt("height")
		sessionID, _ := cmd.Flags().GetString("session")
		redisURL, _ := cmd.Flags().GetString("redis")

		err := cli.Execute(cli.RunOptions{
			DirPath:   dirPath,
			Headless:  headless,
			Watch:     watchMode,
			JSON:      jsonMode,
			Debug:     debug,
			Folded:    folded,
			Height:    height,
			SessionID: sessionID,
			Fresh:     fresh,
			RedisURL:  redisURL,
		})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("headless", false, "Run in headless mode (no prompts, strict IO)")
	runCmd.Flags().Bool("json", false, "Run in JSON mode (NDJSON input/output)")
	runCmd.Flags().BoolP("watch", "w", false, "Run in development mode with hot-reload")
	runCmd.Flags().Bool("debug", false, "Enable debug logging")
	runCmd.Flags().Bool("folded", false, "Start with every section folded")
	runCmd.Flags().Int("height", 0, "Viewport height in rows (0 detects the terminal)")
	runCmd.Flags().String("session", "", "Session ID for persistent browsing state")
	runCmd.Flags().Bool("fresh", false, "Discard saved state for the session before starting")
	runCmd.Flags().String("redis", "", "Redis URL for session storage (defaults to local files)")

	// Make 'run' the default if no command is provided
	rootCmd.Run = runCmd.Run
}
