package exporter

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jflowers/slackfeeder-sub000/internal/export"
	"github.com/jflowers/slackfeeder-sub000/internal/people"
)

// Tool input/output types for the MCP surface.

type ListConversationsInput struct {
	All bool `json:"all,omitempty" jsonschema:"Include conversations not enabled for export"`
}

type ConversationSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Export   bool   `json:"export"`
	Share    bool   `json:"share"`
	IsIM     bool   `json:"is_im,omitempty"`
	IsMPIM   bool   `json:"is_mpim,omitempty"`
	BatchDir string `json:"batch_dir,omitempty"`
}

type ListConversationsOutput struct {
	Conversations []ConversationSummary `json:"conversations"`
	Count         int                   `json:"count"`
}

type ExportConversationInput struct {
	Conversation string `json:"conversation" jsonschema:"Conversation ID or display name from the channels file"`
	StartDate    string `json:"start_date,omitempty" jsonschema:"Start of export range (YYYY-MM-DD, UTC)"`
	EndDate      string `json:"end_date,omitempty" jsonschema:"End of export range (YYYY-MM-DD, UTC, inclusive)"`
}

type ExportConversationOutput struct {
	Conversation string `json:"conversation"`
	Messages     int    `json:"messages"`
	Uploaded     int    `json:"uploaded"`
	UploadFailed int    `json:"upload_failed"`
	Shared       int    `json:"shared"`
	Skipped      bool   `json:"skipped"`
}

type ResolveUserInput struct {
	Identifier string `json:"identifier" jsonschema:"Slack user ID (e.g., U1234567890), email address, or display name"`
}

type ResolveUserOutput struct {
	SlackID     string `json:"slack_id,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	Email       string `json:"email,omitempty"`
	Resolved    bool   `json:"resolved"`
}

// ListConversations returns the configured conversation list.
func (e *Exporter) ListConversations(ctx context.Context, req *mcp.CallToolRequest, input ListConversationsInput) (*mcp.CallToolResult, ListConversationsOutput, error) {
	convs, err := e.loadConversations()
	if err != nil {
		return nil, ListConversationsOutput{}, err
	}
	if input.All {
		all, err := people.LoadConversationsAll(filepath.Join(e.opts.ConfigDir, "channels.json"), e.logger)
		if err == nil {
			convs = all
		}
	}

	out := ListConversationsOutput{}
	for _, c := range convs {
		out.Conversations = append(out.Conversations, ConversationSummary{
			ID:       c.ID,
			Name:     c.Title(),
			Export:   c.ShouldExport(),
			Share:    c.ShouldShare(),
			IsIM:     c.IsIM,
			IsMPIM:   c.IsMPIM,
			BatchDir: c.BatchDir,
		})
	}
	out.Count = len(out.Conversations)
	return nil, out, nil
}

// ExportOne runs the pipeline for a single conversation named by ID or
// display name.
func (e *Exporter) ExportOne(ctx context.Context, req *mcp.CallToolRequest, input ExportConversationInput) (*mcp.CallToolResult, ExportConversationOutput, error) {
	conv, err := e.findConversation(input.Conversation)
	if err != nil {
		return nil, ExportConversationOutput{}, err
	}

	startTS, err := export.ParseDate(input.StartDate, false)
	if err != nil {
		return nil, ExportConversationOutput{}, err
	}
	endTS, err := export.ParseDate(input.EndDate, true)
	if err != nil {
		return nil, ExportConversationOutput{}, err
	}

	stats := &export.Stats{}
	if err := e.ExportConversation(ctx, conv, startTS, endTS, stats); err != nil {
		return nil, ExportConversationOutput{}, err
	}

	return nil, ExportConversationOutput{
		Conversation: conv.Title(),
		Messages:     stats.TotalMessages,
		Uploaded:     stats.Uploaded,
		UploadFailed: stats.UploadFailed,
		Shared:       stats.Shared,
		Skipped:      stats.Skipped > 0,
	}, nil
}

// ResolveUser resolves an identifier through the layered resolver.
func (e *Exporter) ResolveUser(ctx context.Context, req *mcp.CallToolRequest, input ResolveUserInput) (*mcp.CallToolResult, ResolveUserOutput, error) {
	p, ok := e.resolver.Resolve(ctx, input.Identifier)
	if !ok {
		return nil, ResolveUserOutput{Resolved: false}, nil
	}
	return nil, ResolveUserOutput{
		SlackID:     p.SlackID,
		DisplayName: p.DisplayName,
		Email:       p.Email,
		Resolved:    true,
	}, nil
}

func (e *Exporter) findConversation(nameOrID string) (people.Conversation, error) {
	convs, err := people.LoadConversations(filepath.Join(e.opts.ConfigDir, "channels.json"), e.logger)
	if err != nil {
		return people.Conversation{}, err
	}
	browser, err := people.LoadBrowserExports(filepath.Join(e.opts.ConfigDir, "browser-export.json"), e.logger)
	if err != nil {
		return people.Conversation{}, err
	}
	convs = append(convs, browser...)

	for _, c := range convs {
		if c.ID == nameOrID || c.Title() == nameOrID {
			return c, nil
		}
	}
	return people.Conversation{}, fmt.Errorf("conversation %q is not enabled for export", nameOrID)
}
