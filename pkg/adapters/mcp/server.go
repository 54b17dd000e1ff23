package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/ports"
	"github.com/aretw0/arbor/pkg/runner"
)

// SearchResponse is the structured payload of the search_outline tool.
type SearchResponse struct {
	Query   string         `json:"query" jsonschema_description:"The query that was run"`
	Entries []domain.Entry `json:"entries" jsonschema_description:"Matching entries with their ancestor context"`
	Total   int            `json:"total" jsonschema_description:"Number of entries returned"`
}

// StepResponse is the structured payload of the scroll_step tool.
type StepResponse struct {
	Scroll domain.Scroll `json:"scroll" jsonschema_description:"The scroll state after the step"`
	Moving bool          `json:"moving" jsonschema_description:"False once the glide has stopped or was blocked"`
}

// Server wraps the Arbor Engine and exposes it as an MCP Server.
type Server struct {
	engine    ports.Outliner
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine ports.Outliner) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("arbor-mcp", strings.TrimSpace(arbor.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)

	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		// Create a timeout context for the graceful shutdown
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		fmt.Println("\nShutdown signal received, shutting down server...")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slog.Debug("CORS Middleware", "method", r.Method, "path", r.URL.Path)
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With, Baggage, Sentry-Trace")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: get_outline
	s.mcpServer.AddTool(mcp.NewTool("get_outline",
		mcp.WithDescription("Get the flattened outline in preorder. Each entry carries parent_id, depth and child_count."),
		mcp.WithNumber("depth", mcp.Description("Cap the result at this depth (optional)")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		entries, err := s.engine.Outline(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("outline failed: %v", err)), nil
		}
		if depth, ok := request.GetArguments()["depth"].(float64); ok {
			capped := make([]domain.Entry, 0, len(entries))
			for _, e := range entries {
				if e.Depth <= int(depth) {
					capped = append(capped, e)
				}
			}
			entries = capped
		}
		jsonBytes, _ := json.Marshal(entries)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	// TOOL: search_outline
	searchTool := mcp.NewTool("search_outline",
		mcp.WithDescription("Filter the outline by a prefix-word query. Ancestors of nested matches stay in the result so context survives."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Space-separated words; every word must prefix-match somewhere in a title")),
		mcp.WithOutputSchema[SearchResponse](),
	)
	s.mcpServer.AddTool(searchTool, mcp.NewStructuredToolHandler(s.handleSearch))

	// TOOL: get_children
	s.mcpServer.AddTool(mcp.NewTool("get_children",
		mcp.WithDescription("Get the direct children of an entry, never deeper descendants."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Entry ID")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, _ := request.GetArguments()["id"].(string)
		entries, err := s.engine.Children(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("children failed: %v", err)), nil
		}
		jsonBytes, _ := json.Marshal(entries)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	// TOOL: scroll_step
	stepTool := mcp.NewTool("scroll_step",
		mcp.WithDescription("Advance a kinetic scroll by dt milliseconds. Bounds come from the outline; a blocked step reports moving=false."),
		mcp.WithNumber("offset", mcp.Description("Current offset in rows (default 0)")),
		mcp.WithNumber("velocity", mcp.Required(), mcp.Description("Velocity in rows per millisecond")),
		mcp.WithNumber("dt", mcp.Required(), mcp.Description("Elapsed time in milliseconds")),
		mcp.WithOutputSchema[StepResponse](),
	)
	s.mcpServer.AddTool(stepTool, mcp.NewStructuredToolHandler(s.handleStep))
}

// Handler methods for structured tools

func (s *Server) handleSearch(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SearchResponse, error) {
	query, _ := args["query"].(string)

	clean, err := runner.SanitizeInput(query)
	if err != nil {
		slog.Warn("MCP Search: Query rejected", "error", err, "size", len(query))
		return SearchResponse{}, fmt.Errorf("query rejected: %w", err)
	}

	entries, err := s.engine.Search(ctx, clean)
	if err != nil {
		return SearchResponse{}, fmt.Errorf("search failed: %w", err)
	}

	return SearchResponse{
		Query:   clean,
		Entries: entries,
		Total:   len(entries),
	}, nil
}

func (s *Server) handleStep(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (StepResponse, error) {
	offset, _ := args["offset"].(float64)
	velocity, _ := args["velocity"].(float64)
	dt, _ := args["dt"].(float64)

	next, moving := s.engine.Step(domain.Scroll{Offset: offset, Velocity: velocity}, dt)

	return StepResponse{
		Scroll: next,
		Moving: moving,
	}, nil
}

func (s *Server) registerResources() {
	// EXPOSE: arbor://outline
	s.mcpServer.AddResource(mcp.NewResource("arbor://outline", "Current Flattened Outline",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		entries, err := s.engine.Outline(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to read outline: %w", err)
		}
		jsonBytes, _ := json.Marshal(entries)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "arbor://outline",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
