// Package mcp exposes the exporter over the Model Context Protocol so
// agent-driven capture scripts can list conversations, trigger exports,
// and resolve identities.
package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/jflowers/slackfeeder-sub000/internal/exporter"
	slackclient "github.com/jflowers/slackfeeder-sub000/internal/slack"
)

// errorWrappingHandler wraps a ToolHandler to provide enhanced error messages
type errorWrappingHandler struct {
	handler ToolHandler
	logger  *zap.Logger
}

func (h *errorWrappingHandler) ListConversations(ctx context.Context, req *mcp.CallToolRequest, input exporter.ListConversationsInput) (*mcp.CallToolResult, exporter.ListConversationsOutput, error) {
	result, output, err := h.handler.ListConversations(ctx, req, input)
	return result, output, slackclient.WrapError(h.logger, "list_conversations", err)
}

func (h *errorWrappingHandler) ExportOne(ctx context.Context, req *mcp.CallToolRequest, input exporter.ExportConversationInput) (*mcp.CallToolResult, exporter.ExportConversationOutput, error) {
	result, output, err := h.handler.ExportOne(ctx, req, input)
	return result, output, slackclient.WrapError(h.logger, "export_conversation", err)
}

func (h *errorWrappingHandler) ResolveUser(ctx context.Context, req *mcp.CallToolRequest, input exporter.ResolveUserInput) (*mcp.CallToolResult, exporter.ResolveUserOutput, error) {
	result, output, err := h.handler.ResolveUser(ctx, req, input)
	return result, output, slackclient.WrapError(h.logger, "resolve_user", err)
}

// ToolHandler defines the interface for exporter tool operations
//
//go:generate go tool mockgen -source=$GOFILE -destination=mcp_mocks.go -package=mcp
type ToolHandler interface {
	ListConversations(ctx context.Context, req *mcp.CallToolRequest, input exporter.ListConversationsInput) (*mcp.CallToolResult, exporter.ListConversationsOutput, error)
	ExportOne(ctx context.Context, req *mcp.CallToolRequest, input exporter.ExportConversationInput) (*mcp.CallToolResult, exporter.ExportConversationOutput, error)
	ResolveUser(ctx context.Context, req *mcp.CallToolRequest, input exporter.ResolveUserInput) (*mcp.CallToolResult, exporter.ResolveUserOutput, error)
}

// CreateServer creates an MCP server with all exporter tools registered
func CreateServer(logger *zap.Logger, handler ToolHandler) *mcp.Server {
	logger.Info("Starting MCP server")
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "slackfeeder",
			Version: "1.0.0",
		},
		nil,
	)

	// Wrap handler to provide enhanced error messages for auth failures
	wrappedHandler := &errorWrappingHandler{handler: handler, logger: logger}
	registerTools(server, wrappedHandler)
	logger.Info("Slackfeeder server initialized, starting transport")
	return server
}

// registerTools registers all exporter tools with the MCP server
func registerTools(server *mcp.Server, handler ToolHandler) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "slackfeeder_list_conversations",
		Description: "List conversations configured for export. Returns IDs, names, and export/share flags from the channels reference file.",
	}, handler.ListConversations)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "slackfeeder_export_conversation",
		Description: "Export one conversation's history: merge API pages with stored batch captures, render the transcript, and upload per-day documents. Accepts an optional date range.",
	}, handler.ExportOne)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "slackfeeder_resolve_user",
		Description: "Resolve a Slack user ID, email address, or display name to a person record using the layered resolver (reference file, then live directory).",
	}, handler.ResolveUser)
}
