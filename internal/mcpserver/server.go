// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes study tip tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/edusosyal/hapbilgi/internal/index"
	"github.com/edusosyal/hapbilgi/internal/tips"
)

// Server wraps the MCP server with tip tools.
type Server struct {
	mcp *server.MCPServer
	svc *tips.Service
	idx index.TipIndex
}

// New creates a new MCP server with all tip tools registered. idx may be
// nil; search_tips then reports the index as unavailable.
func New(svc *tips.Service, idx index.TipIndex) *Server {
	s := &Server{svc: svc, idx: idx}

	s.mcp = server.NewMCPServer(
		"HapBilgi",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("create_tip",
		mcp.WithDescription("Turn an AI chat question/answer pair into a study tip. "+
			"Title, content excerpt, category, difficulty, and tags are derived "+
			"automatically; read the contract first via the get_tip_contract tool "+
			"or the hapbilgi://tip-format resource."),
		mcp.WithString("question", mcp.Required(), mcp.Description("The student's question text")),
		mcp.WithString("answer", mcp.Required(), mcp.Description("The AI assistant's answer text")),
	), s.createTip)

	s.mcp.AddTool(mcp.NewTool("list_recommended",
		mcp.WithDescription("List the newest locally stored study tips."),
		mcp.WithNumber("limit", mcp.Description("Maximum tips to return (default 10)")),
	), s.listRecommended)

	s.mcp.AddTool(mcp.NewTool("search_tips",
		mcp.WithDescription("Full-text search through stored tip titles and content."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchTips)

	s.mcp.AddTool(mcp.NewTool("get_tip",
		mcp.WithDescription("Read a single study tip by its local id."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Tip id (e.g. local_1756450000000)")),
	), s.getTip)

	s.mcp.AddTool(mcp.NewTool("reset_tips",
		mcp.WithDescription("Remove every locally stored study tip. Destructive and not reversible."),
		mcp.WithBoolean("confirm", mcp.Required(), mcp.Description("Must be true to proceed")),
	), s.resetTips)

	s.mcp.AddTool(mcp.NewTool("get_tip_contract",
		mcp.WithDescription("Returns the study tip format contract. "+
			"Call this before creating tips to understand how records are derived."),
	), s.getTipContract)

	// Resource: tip format contract.
	s.mcp.AddResource(
		mcp.NewResource("hapbilgi://tip-format", "Tip Format Contract",
			mcp.WithResourceDescription("Canonical study tip record shape and derivation rules."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readTipFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) createTip(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := req.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	answer, err := req.RequireString("answer")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	tip, err := s.svc.CreateFromQuestion(ctx, question, answer, nil)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(tip, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listRecommended(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := req.GetInt("limit", 0)
	list := s.svc.ListRecommended(ctx, limit)
	out, _ := json.MarshalIndent(list, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) searchTips(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if s.idx == nil {
		return mcp.NewToolResultError("search index not configured"), nil
	}
	results, err := s.idx.Search(query, 20)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getTip(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	tip, err := s.svc.Get(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
	}
	out, _ := json.MarshalIndent(tip, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) resetTips(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if !req.GetBool("confirm", false) {
		return mcp.NewToolResultError("refusing to reset without confirm=true"), nil
	}
	if err := s.svc.ResetAll(ctx); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("all local tips removed"), nil
}

func (s *Server) getTipContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(TipFormatContract), nil
}

func (s *Server) readTipFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "hapbilgi://tip-format",
			MIMEType: "text/markdown",
			Text:     TipFormatContract,
		},
	}, nil
}
