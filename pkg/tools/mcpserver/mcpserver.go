// Package mcpserver serves toolbox tools over MCP using the official Go SDK.
package mcpserver

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/germanamz/directive/pkg/tools/toolbox"
)

// MCPServer serves tools over the MCP protocol. Calls are dispatched through
// its ToolBox.
type MCPServer struct {
	server *mcp.Server
	tools  *toolbox.ToolBox
	log    *slog.Logger
}

// New creates an MCPServer with the given implementation name and version.
// A nil logger discards diagnostics.
func New(name, version string, log *slog.Logger) *MCPServer {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    name,
		Version: version,
	}, nil)

	return &MCPServer{server: server, tools: toolbox.New(), log: log}
}

// Register adds tools to the server. A tool with an existing name replaces
// the old one.
func (s *MCPServer) Register(tools ...toolbox.Tool) {
	for _, t := range tools {
		if _, exists := s.tools.Get(t.Name); exists {
			s.log.Warn("replacing tool", "tool", t.Name)
		}
		s.tools.Register(t)
		s.server.AddTool(toSDKTool(t), s.toSDKHandler(t.Name))
	}
}

// Serve reads requests from in and writes responses to out. It blocks until
// ctx is cancelled or the transport closes.
func (s *MCPServer) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	transport := &mcp.IOTransport{
		Reader: io.NopCloser(in),
		Writer: nopWriteCloser{out},
	}

	return s.run(ctx, transport)
}

// run starts the server with the given transport. Tests call it with
// in-memory transports.
func (s *MCPServer) run(ctx context.Context, transport mcp.Transport) error {
	names := make([]string, 0)
	for _, t := range s.tools.Tools() {
		names = append(names, t.Name)
	}

	s.log.Info("mcp server started", "tools", names)
	err := s.server.Run(ctx, transport)
	s.log.Info("mcp server stopped", "error", err)
	return err
}

func toSDKTool(t toolbox.Tool) *mcp.Tool {
	return &mcp.Tool{
		Name:        t.Name,
		Description: t.Description,
		InputSchema: t.InputSchema,
	}
}

func (s *MCPServer) toSDKHandler(name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.Params.Arguments
		if args == nil {
			args = json.RawMessage("{}")
		}

		s.log.Debug("tool call", "tool", name)

		result, err := s.tools.Call(ctx, name, args)
		if err != nil {
			s.log.Warn("tool call failed", "tool", name, "error", err)
			return &mcp.CallToolResult{
				Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
				IsError: true,
			}, nil
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: result}},
		}, nil
	}
}

// nopWriteCloser wraps an io.Writer as an io.WriteCloser with a no-op Close.
type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
