// Copyright (c) 2021-2026 Rustam Gilyazov and Contributors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package mcp

// In this file: read-path MCP tool definitions and handler implementations.

import (
	"context"
	"errors"
	"fmt"
	"time"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"

	"github.com/rusq/teamsmcp/internal/convert"
	"github.com/rusq/teamsmcp/internal/graph"
)

// errNoGraph is returned by tool handlers when no Graph client is configured.
var errNoGraph = errors.New("no Graph client is configured")

const defPageSize = 50

// formatDescription documents the format parameter shared by all read tools.
const formatDescription = `Body format: "markdown" (default) converts the HTML body to Markdown, "raw" returns it exactly as Graph delivered it.`

// formatArg extracts and validates the format parameter.
func formatArg(req mcplib.CallToolRequest) (convert.Format, error) {
	s, ok := stringArg(req, "format")
	if !ok || s == "" {
		return convert.FormatMarkdown, nil
	}
	f := convert.Format(s)
	if !f.Valid() {
		return "", fmt.Errorf("invalid format %q: must be %q or %q", s, convert.FormatRaw, convert.FormatMarkdown)
	}
	return f, nil
}

// messageSummary is a JSON-serialisable view of a chat or channel message.
type messageSummary struct {
	ID          string           `json:"id"`
	Created     string           `json:"created,omitempty"`
	From        string           `json:"from,omitempty"`
	Type        string           `json:"type,omitempty"`
	Body        *string          `json:"body"`
	ContentType string           `json:"content_type,omitempty"`
	Attachments []attachmentRef  `json:"attachments,omitempty"`
	Mentions    []mentionSummary `json:"mentions,omitempty"`
	WebURL      string           `json:"web_url,omitempty"`
}

type attachmentRef struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
	URL  string `json:"url,omitempty"`
}

type mentionSummary struct {
	ID     int    `json:"id"`
	Text   string `json:"text"`
	UserID string `json:"user_id,omitempty"`
}

// newMessageSummary converts a Graph message for tool output, formatting the
// body per f.
func newMessageSummary(m *graph.ChatMessage, f convert.Format) messageSummary {
	s := messageSummary{
		ID:          m.ID,
		Type:        m.MessageType,
		ContentType: m.Body.ContentType,
		WebURL:      m.WebURL,
	}
	if !m.CreatedDateTime.IsZero() {
		s.Created = m.CreatedDateTime.Format(time.RFC3339)
	}
	if m.From != nil {
		if m.From.User != nil {
			s.From = m.From.User.DisplayName
		} else if m.From.Application != nil {
			s.From = m.From.Application.DisplayName
		}
	}
	content := m.Body.Content
	s.Body = convert.FormatContent(&content, f, convert.MentionsFromMessage(m.Mentions))
	for _, a := range m.Attachments {
		s.Attachments = append(s.Attachments, attachmentRef{ID: a.ID, Name: a.Name, URL: a.ContentURL})
	}
	for _, mm := range m.Mentions {
		s.Mentions = append(s.Mentions, mentionSummary{ID: mm.ID, Text: mm.MentionText, UserID: mm.UserID()})
	}
	return s
}

// messagePageSummary wraps a page of messages with its continuation link.
type messagePageSummary struct {
	Messages []messageSummary `json:"messages"`
	NextLink string           `json:"next_link,omitempty"`
}

func newMessagePageSummary(p *graph.MessagePage, f convert.Format) messagePageSummary {
	out := messagePageSummary{NextLink: p.NextLink}
	for i := range p.Messages {
		out.Messages = append(out.Messages, newMessageSummary(&p.Messages[i], f))
	}
	return out
}

// ─── list_chats ───────────────────────────────────────────────────────────────

func (s *Server) toolListChats() mcpsrv.ServerTool {
	tool := mcplib.NewTool("list_chats",
		mcplib.WithDescription("List the signed-in user's chats (one-on-one, group and meeting chats). Returns chat IDs, topics, types and web links, one page at a time."),
		mcplib.WithNumber("limit",
			mcplib.Description("Page size (default 50)."),
		),
		mcplib.WithString("next_link",
			mcplib.Description("Continuation link from a previous page; overrides limit."),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleListChats}
}

type chatSummary struct {
	ID      string `json:"id"`
	Topic   string `json:"topic,omitempty"`
	Type    string `json:"type,omitempty"`
	WebURL  string `json:"web_url,omitempty"`
	Updated string `json:"updated,omitempty"`
}

func (s *Server) handleListChats(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	gr := s.graph()
	if gr == nil {
		return resultErr(errNoGraph), nil
	}
	next, _ := stringArg(req, "next_link")
	page, err := gr.ListChats(ctx, graph.ListOptions{
		Limit:    intArg(req, "limit", defPageSize),
		NextLink: next,
	})
	if err != nil {
		return resultErr(fmt.Errorf("list_chats: %w", err)), nil
	}

	out := struct {
		Chats    []chatSummary `json:"chats"`
		NextLink string        `json:"next_link,omitempty"`
	}{NextLink: page.NextLink}
	for _, c := range page.Chats {
		cs := chatSummary{ID: c.ID, Topic: c.Topic, Type: c.ChatType, WebURL: c.WebURL}
		if !c.LastUpdatedTime.IsZero() {
			cs.Updated = c.LastUpdatedTime.Format(time.RFC3339)
		}
		out.Chats = append(out.Chats, cs)
	}

	result, err := resultJSON(out)
	if err != nil {
		return resultErr(fmt.Errorf("list_chats: serialise: %w", err)), nil
	}
	return result, nil
}

// ─── get_chat_messages ────────────────────────────────────────────────────────

func (s *Server) toolGetChatMessages() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_chat_messages",
		mcplib.WithDescription("Read messages from a chat, newest first. Bodies are converted to Markdown unless format is \"raw\"; @mentions render as \"@Display Name\" and attachments as {attachment:<id>} markers."),
		mcplib.WithString("chat_id",
			mcplib.Description("The chat to read."),
			mcplib.Required(),
		),
		mcplib.WithNumber("limit",
			mcplib.Description("Page size (default 50)."),
		),
		mcplib.WithString("next_link",
			mcplib.Description("Continuation link from a previous page; overrides limit."),
		),
		mcplib.WithString("format",
			mcplib.Description(formatDescription),
			mcplib.Enum(string(convert.FormatRaw), string(convert.FormatMarkdown)),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetChatMessages}
}

func (s *Server) handleGetChatMessages(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	gr := s.graph()
	if gr == nil {
		return resultErr(errNoGraph), nil
	}
	chatID, ok := stringArg(req, "chat_id")
	if !ok || chatID == "" {
		return resultErr(errors.New("get_chat_messages: chat_id is required")), nil
	}
	f, err := formatArg(req)
	if err != nil {
		return resultErr(fmt.Errorf("get_chat_messages: %w", err)), nil
	}
	next, _ := stringArg(req, "next_link")
	page, err := gr.ChatMessages(ctx, chatID, graph.ListOptions{
		Limit:    intArg(req, "limit", defPageSize),
		NextLink: next,
	})
	if err != nil {
		return resultErr(fmt.Errorf("get_chat_messages: %w", err)), nil
	}

	result, err := resultJSON(newMessagePageSummary(page, f))
	if err != nil {
		return resultErr(fmt.Errorf("get_chat_messages: serialise: %w", err)), nil
	}
	return result, nil
}

// ─── list_chat_members ────────────────────────────────────────────────────────

func (s *Server) toolListChatMembers() mcpsrv.ServerTool {
	tool := mcplib.NewTool("list_chat_members",
		mcplib.WithDescription("List the members of a chat with their user IDs, which the send tools accept in mention mappings."),
		mcplib.WithString("chat_id",
			mcplib.Description("The chat whose members to list."),
			mcplib.Required(),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleListChatMembers}
}

type memberSummary struct {
	UserID string   `json:"user_id,omitempty"`
	Name   string   `json:"name"`
	Email  string   `json:"email,omitempty"`
	Roles  []string `json:"roles,omitempty"`
}

func (s *Server) handleListChatMembers(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	gr := s.graph()
	if gr == nil {
		return resultErr(errNoGraph), nil
	}
	chatID, ok := stringArg(req, "chat_id")
	if !ok || chatID == "" {
		return resultErr(errors.New("list_chat_members: chat_id is required")), nil
	}
	members, err := gr.ListChatMembers(ctx, chatID)
	if err != nil {
		return resultErr(fmt.Errorf("list_chat_members: %w", err)), nil
	}
	summaries := make([]memberSummary, 0, len(members))
	for _, m := range members {
		summaries = append(summaries, memberSummary{UserID: m.UserID, Name: m.DisplayName, Email: m.Email, Roles: m.Roles})
	}
	result, err := resultJSON(summaries)
	if err != nil {
		return resultErr(fmt.Errorf("list_chat_members: serialise: %w", err)), nil
	}
	return result, nil
}

// ─── list_teams ───────────────────────────────────────────────────────────────

func (s *Server) toolListTeams() mcpsrv.ServerTool {
	tool := mcplib.NewTool("list_teams",
		mcplib.WithDescription("List the teams the signed-in user is a member of."),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleListTeams}
}

func (s *Server) handleListTeams(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	gr := s.graph()
	if gr == nil {
		return resultErr(errNoGraph), nil
	}
	teams, err := gr.JoinedTeams(ctx)
	if err != nil {
		return resultErr(fmt.Errorf("list_teams: %w", err)), nil
	}
	result, err := resultJSON(teams)
	if err != nil {
		return resultErr(fmt.Errorf("list_teams: serialise: %w", err)), nil
	}
	return result, nil
}

// ─── list_channels ────────────────────────────────────────────────────────────

func (s *Server) toolListChannels() mcpsrv.ServerTool {
	tool := mcplib.NewTool("list_channels",
		mcplib.WithDescription("List the channels of a team. Returns channel IDs, names and membership types."),
		mcplib.WithString("team_id",
			mcplib.Description("The team whose channels to list."),
			mcplib.Required(),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleListChannels}
}

func (s *Server) handleListChannels(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	gr := s.graph()
	if gr == nil {
		return resultErr(errNoGraph), nil
	}
	teamID, ok := stringArg(req, "team_id")
	if !ok || teamID == "" {
		return resultErr(errors.New("list_channels: team_id is required")), nil
	}
	channels, err := gr.ListChannels(ctx, teamID)
	if err != nil {
		return resultErr(fmt.Errorf("list_channels: %w", err)), nil
	}
	result, err := resultJSON(channels)
	if err != nil {
		return resultErr(fmt.Errorf("list_channels: serialise: %w", err)), nil
	}
	return result, nil
}

// ─── get_channel_messages ─────────────────────────────────────────────────────

func (s *Server) toolGetChannelMessages() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_channel_messages",
		mcplib.WithDescription("Read messages from a team channel, newest first. Bodies are formatted the same way as get_chat_messages."),
		mcplib.WithString("team_id",
			mcplib.Description("The team the channel belongs to."),
			mcplib.Required(),
		),
		mcplib.WithString("channel_id",
			mcplib.Description("The channel to read."),
			mcplib.Required(),
		),
		mcplib.WithNumber("limit",
			mcplib.Description("Page size (default 50)."),
		),
		mcplib.WithString("next_link",
			mcplib.Description("Continuation link from a previous page; overrides limit."),
		),
		mcplib.WithString("format",
			mcplib.Description(formatDescription),
			mcplib.Enum(string(convert.FormatRaw), string(convert.FormatMarkdown)),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetChannelMessages}
}

func (s *Server) handleGetChannelMessages(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	gr := s.graph()
	if gr == nil {
		return resultErr(errNoGraph), nil
	}
	teamID, ok := stringArg(req, "team_id")
	if !ok || teamID == "" {
		return resultErr(errors.New("get_channel_messages: team_id is required")), nil
	}
	channelID, ok := stringArg(req, "channel_id")
	if !ok || channelID == "" {
		return resultErr(errors.New("get_channel_messages: channel_id is required")), nil
	}
	f, err := formatArg(req)
	if err != nil {
		return resultErr(fmt.Errorf("get_channel_messages: %w", err)), nil
	}
	next, _ := stringArg(req, "next_link")
	page, err := gr.ChannelMessages(ctx, teamID, channelID, graph.ListOptions{
		Limit:    intArg(req, "limit", defPageSize),
		NextLink: next,
	})
	if err != nil {
		return resultErr(fmt.Errorf("get_channel_messages: %w", err)), nil
	}
	result, err := resultJSON(newMessagePageSummary(page, f))
	if err != nil {
		return resultErr(fmt.Errorf("get_channel_messages: serialise: %w", err)), nil
	}
	return result, nil
}

// ─── search_messages ──────────────────────────────────────────────────────────

func (s *Server) toolSearchMessages() mcpsrv.ServerTool {
	tool := mcplib.NewTool("search_messages",
		mcplib.WithDescription("Search the signed-in user's messages with a KQL query (e.g. \"from:alice budget\"). Returns matching messages with summaries."),
		mcplib.WithString("query",
			mcplib.Description("The KQL query string."),
			mcplib.Required(),
		),
		mcplib.WithNumber("limit",
			mcplib.Description("Maximum hits to return (default 25)."),
		),
		mcplib.WithString("format",
			mcplib.Description(formatDescription),
			mcplib.Enum(string(convert.FormatRaw), string(convert.FormatMarkdown)),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleSearchMessages}
}

func (s *Server) handleSearchMessages(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	gr := s.graph()
	if gr == nil {
		return resultErr(errNoGraph), nil
	}
	query, ok := stringArg(req, "query")
	if !ok || query == "" {
		return resultErr(errors.New("search_messages: query is required")), nil
	}
	f, err := formatArg(req)
	if err != nil {
		return resultErr(fmt.Errorf("search_messages: %w", err)), nil
	}
	hits, err := gr.SearchMessages(ctx, query, intArg(req, "limit", 25))
	if err != nil {
		return resultErr(fmt.Errorf("search_messages: %w", err)), nil
	}

	type hitSummary struct {
		Summary string         `json:"summary,omitempty"`
		Message messageSummary `json:"message"`
	}
	summaries := make([]hitSummary, 0, len(hits))
	for i := range hits {
		summaries = append(summaries, hitSummary{
			Summary: hits[i].Summary,
			Message: newMessageSummary(&hits[i].Message, f),
		})
	}
	result, err := resultJSON(summaries)
	if err != nil {
		return resultErr(fmt.Errorf("search_messages: serialise: %w", err)), nil
	}
	return result, nil
}

// ─── search_users ─────────────────────────────────────────────────────────────

func (s *Server) toolSearchUsers() mcpsrv.ServerTool {
	tool := mcplib.NewTool("search_users",
		mcplib.WithDescription("Search directory users by display name. Returns user IDs suitable for mention mappings in the send tools."),
		mcplib.WithString("query",
			mcplib.Description("Name fragment to search for."),
			mcplib.Required(),
		),
		mcplib.WithNumber("limit",
			mcplib.Description("Maximum users to return (default 25)."),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleSearchUsers}
}

func (s *Server) handleSearchUsers(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	gr := s.graph()
	if gr == nil {
		return resultErr(errNoGraph), nil
	}
	query, ok := stringArg(req, "query")
	if !ok || query == "" {
		return resultErr(errors.New("search_users: query is required")), nil
	}
	users, err := gr.SearchUsers(ctx, query, intArg(req, "limit", 25))
	if err != nil {
		return resultErr(fmt.Errorf("search_users: %w", err)), nil
	}
	result, err := resultJSON(users)
	if err != nil {
		return resultErr(fmt.Errorf("search_users: serialise: %w", err)), nil
	}
	return result, nil
}

// graph returns the configured Graph client, or nil.
func (s *Server) graph() Graph {
	return s.gr
}
