package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/arbor/internal/cli"
	"github.com/aretw0/arbor/pkg/adapters/file"
	"github.com/aretw0/arbor/pkg/adapters/redis"
	"github.com/aretw0/arbor/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage persistent browsing sessions",
	Long:  `List, inspect, and remove persistent sessions stored in .arbor/sessions or Redis.`,
}

var sessionLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List all active sessions",
	Run: func(cmd *cobra.Command, args []string) {
		store := mustStore(cmd)
		sessions, err := store.List(cmd.Context())
		if err != nil {
			fmt.Printf("Error listing sessions: %v\n", err)
			os.Exit(1)
		}

		if len(sessions) == 0 {
			fmt.Println("No active sessions found.")
			return
		}

		fmt.Println("Active Sessions:")
		for _, s := range sessions {
			fmt.Println("- " + s)
		}
	},
}

var sessionInspectCmd = &cobra.Command{
	Use:   "inspect <session-id>",
	Short: "Inspect the state of a session",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		sessionID := args[0]
		store := mustStore(cmd)

		state, err := store.Load(cmd.Context(), sessionID)
		if err != nil {
			fmt.Printf("Error loading session '%s': %v\n", sessionID, err)
			os.Exit(1)
		}

		// Pretty print JSON
		data, err := json.MarshalIndent(state, "", "  ")
		if err != nil {
			fmt.Printf("Error marshaling state: %v\n", err)
			os.Exit(1)
		}

		fmt.Println(string(data))
	},
}

var sessionRmCmd = &cobra.Command{
	Use:   "rm <session-id>...",
	Short: "Remove one or more sessions",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store := mustStore(cmd)
		hasError := false

		for _, sessionID := range args {
			if err := store.Delete(cmd.Context(), sessionID); err != nil {
				fmt.Printf("Error removing '%s': %v\n", sessionID, err)
				hasError = true
			} else {
				fmt.Printf("Removed session '%s'\n", sessionID)
			}
		}

		if hasError {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.PersistentFlags().String("redis", "", "Redis URL to manage sessions in (defaults to local files)")
	sessionCmd.AddCommand(sessionLsCmd)
	sessionCmd.AddCommand(sessionInspectCmd)
	sessionCmd.AddCommand(sessionRmCmd)
}

// getStore picks the session store the other commands write to: Redis when
// a URL is given, otherwise <dir>/.arbor/sessions on disk. SecureStore
// applies the same encryption the run command uses, so inspect can still
// decrypt sealed sessions.
func getStore(cmd *cobra.Command) (ports.StateStore, error) {
	redisURL, _ := cmd.Flags().GetString("redis")
	if redisURL != "" {
		redisOpts, err := backend.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis URL: %w", err)
		}
		return cli.SecureStore(redis.NewFromClient(backend.NewClient(redisOpts)))
	}

	projectDir, _ := cmd.Flags().GetString("dir")
	if projectDir == "" {
		projectDir = "."
	}
	return cli.SecureStore(file.NewStore(filepath.Join(projectDir, ".arbor", "sessions")))
}

func mustStore(cmd *cobra.Command) ports.StateStore {
	store, err := getStore(cmd)
	if err != nil {
		fmt.Printf("Error opening session store: %v\n", err)
		os.Exit(1)
	}
	return store
}
