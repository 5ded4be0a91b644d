package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/kwargs"
	"github.com/aretw0/kwargs/pkg/convert"
	"github.com/aretw0/kwargs/pkg/fixture"
	"github.com/aretw0/kwargs/pkg/observability"
	"github.com/aretw0/kwargs/pkg/value"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// CanonicalURI is the resource holding the canonical dict.
const CanonicalURI = "kwargs://canonical"

// Server exposes dict generation and echo as MCP tools.
type Server struct {
	mcpServer   *server.MCPServer
	metrics     *observability.Metrics
	convertOpts []convert.Option
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics records tool conversions.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// WithConvertOptions passes options to every conversion.
func WithConvertOptions(opts ...convert.Option) Option {
	return func(s *Server) { s.convertOpts = append(s.convertOpts, opts...) }
}

// NewServer creates a new MCP Server instance.
func NewServer(opts ...Option) *Server {
	s := &Server{
		mcpServer: server.NewMCPServer("kwargs-mcp", kwargs.Version),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
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

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		slog.Info("Shutdown signal received, shutting down MCP server")
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
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: generate_dict
	s.mcpServer.AddTool(mcp.NewTool("generate_dict",
		mcp.WithDescription("Return the canonical sample dict as JSON, keys in canonical order."),
	), s.handleGenerate)

	// TOOL: echo_dict
	s.mcpServer.AddTool(mcp.NewTool("echo_dict",
		mcp.WithDescription("Carry a dict across the conversion boundary and back. Returns it unchanged."),
		mcp.WithString("dict", mcp.Required(), mcp.Description("JSON document to echo")),
	), s.handleEcho)

	// TOOL: compare_dicts
	s.mcpServer.AddTool(mcp.NewTool("compare_dicts",
		mcp.WithDescription("Structurally compare two JSON documents and list the differences."),
		mcp.WithString("left", mcp.Required(), mcp.Description("First JSON document")),
		mcp.WithString("right", mcp.Required(), mcp.Description("Second JSON document")),
	), s.handleCompare)
}

func (s *Server) handleGenerate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()
	v, err := convert.FromHost(kwargs.GenerateDict())
	s.metrics.ObserveConversion("generate", start, err)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("generate failed: %v", err)), nil
	}
	return textResult(v)
}

func (s *Server) handleEcho(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := request.RequireString("dict")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	in, err := value.ParseJSON([]byte(raw))
	if err != nil {
		slog.Warn("MCP Echo: Invalid dict", "error", err, "size", len(raw))
		return mcp.NewToolResultError(fmt.Sprintf("invalid dict: %v", err)), nil
	}

	start := time.Now()
	out, err := s.echo(in)
	s.metrics.ObserveConversion("echo", start, err)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("echo failed: %v", err)), nil
	}
	return textResult(out)
}

func (s *Server) echo(in value.Value) (value.Value, error) {
	host, err := convert.ToHost(in, s.convertOpts...)
	if err != nil {
		return value.Null(), err
	}
	echoed, err := kwargs.EchoDict(host, s.convertOpts...)
	if err != nil {
		return value.Null(), err
	}
	return convert.FromHost(echoed, s.convertOpts...)
}

func (s *Server) handleCompare(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var docs [2]value.Value
	for i, key := range []string{"left", "right"} {
		raw, err := request.RequireString(key)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if docs[i], err = value.ParseJSON([]byte(raw)); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid %s: %v", key, err)), nil
		}
	}

	diffs := value.Diff(docs[0], docs[1])
	if len(diffs) == 0 {
		return mcp.NewToolResultText("equal"), nil
	}
	lines := value.NewSequence()
	for _, d := range diffs {
		lines.Append(value.String(d.String()))
	}
	return textResult(lines.Value())
}

func (s *Server) registerResources() {
	// EXPOSE: kwargs://canonical
	s.mcpServer.AddResource(mcp.NewResource(CanonicalURI, "Canonical Dict",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		data, err := fixture.Canonical().MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("failed to encode canonical dict: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      CanonicalURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	})
}

func textResult(v value.Value) (*mcp.CallToolResult, error) {
	data, err := v.MarshalJSON()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
