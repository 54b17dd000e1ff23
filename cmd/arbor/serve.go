package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/internal/cli"
	httpadapter "github.com/aretw0/arbor/pkg/adapters/http"
	"github.com/aretw0/arbor/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the stateless HTTP server",
	Long:  `Starts the Arbor engine in stateless server mode, exposing the outline as a JSON API over HTTP.`,
	Run: func(cmd *cobra.Command, args []string) {
		dir, _ := cmd.Flags().GetString("dir")
		port, _ := cmd.Flags().GetString("port")
		watchMode, _ := cmd.Flags().GetBool("watch")
		debug, _ := cmd.Flags().GetBool("debug")

		level := slog.LevelInfo
		if debug {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

		reg := prometheus.NewRegistry()
		metrics := observability.NewMetrics(reg)

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		engine, err := cli.OpenEngine(ctx, dir,
			arbor.WithLogger(logger),
			arbor.WithLifecycleHooks(metrics.Hooks()),
		)
		if err != nil {
			fmt.Printf("Error initializing arbor: %v\n", err)
			os.Exit(1)
		}

		if watchMode {
			go watchAndReload(ctx, engine, logger)
		}

		handler := httpadapter.NewHandler(engine,
			httpadapter.WithLogger(logger),
			httpadapter.WithVersion(arbor.Version),
			httpadapter.WithMetrics(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
		)

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting Arbor Server on %s\n", srv.Addr)
			fmt.Printf("Serving outline from: %s\n", dir)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			// Error when starting HTTP server.
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)
			cancel()

			// Give outstanding requests a deadline for completion.
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()

			// Asking listener to shut down and shed load.
			if err := srv.Shutdown(shutdownCtx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("Arbor Server stopped gracefully")
		}
	},
}

// watchAndReload reloads the outline whenever the source reports a change,
// so clients always read the current document without calling /reload.
func watchAndReload(ctx context.Context, engine *arbor.Engine, logger *slog.Logger) {
	events, err := engine.Watch(ctx)
	if err != nil {
		logger.Warn("watch unavailable", "error", err)
		return
	}
	for range events {
		if err := engine.Reload(ctx); err != nil {
			logger.Error("reload failed", "error", err)
		}
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().BoolP("watch", "w", false, "Reload the outline when the source changes")
	serveCmd.Flags().Bool("debug", false, "Enable debug logging")
}
