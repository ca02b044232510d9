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

// In this file: the write-path tools: sending messages and uploading files.

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"
	"golang.org/x/sync/errgroup"

	"github.com/rusq/teamsmcp/internal/convert"
	"github.com/rusq/teamsmcp/internal/graph"
)

// lookupConcurrency caps parallel directory lookups during mention
// resolution.
const lookupConcurrency = 4

const sendBodyDescription = `Message text in Markdown. To @mention someone, write a tag (e.g. "@alice") in the text and add a matching entry to mentions.`

const mentionsDescription = `Mention mappings: objects with "mention_tag" (the literal tag as it appears in the content) and "user_id" (the user to mention). Each occurrence of the tag is replaced with a proper Teams mention.`

const attachmentsDescription = `File attachments: objects as returned by upload_file ("attachmentId", "webUrl", "fileName").`

// mentionReq is one caller-supplied mention mapping before directory
// resolution.
type mentionReq struct {
	tag    string
	userID string
}

// mentionArgs decodes the mentions tool argument.
func mentionArgs(req mcplib.CallToolRequest) ([]mentionReq, error) {
	arr, ok := arrayArg(req, "mentions")
	if !ok {
		return nil, nil
	}
	out := make([]mentionReq, 0, len(arr))
	for i, v := range arr {
		m, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("mentions[%d]: expected an object", i)
		}
		tag, _ := m["mention_tag"].(string)
		userID, _ := m["user_id"].(string)
		if tag == "" || userID == "" {
			return nil, fmt.Errorf("mentions[%d]: mention_tag and user_id are required", i)
		}
		out = append(out, mentionReq{tag: tag, userID: userID})
	}
	return out, nil
}

// attachmentArgs decodes the attachments tool argument.  The accepted keys
// match the upload_file result so its output can be passed through directly.
func attachmentArgs(req mcplib.CallToolRequest) ([]graph.Attachment, error) {
	arr, ok := arrayArg(req, "attachments")
	if !ok {
		return nil, nil
	}
	out := make([]graph.Attachment, 0, len(arr))
	for i, v := range arr {
		m, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("attachments[%d]: expected an object", i)
		}
		up := graph.UploadResult{}
		up.AttachmentID, _ = m["attachmentId"].(string)
		up.WebURL, _ = m["webUrl"].(string)
		up.FileName, _ = m["fileName"].(string)
		if up.AttachmentID == "" || up.WebURL == "" {
			return nil, fmt.Errorf("attachments[%d]: attachmentId and webUrl are required", i)
		}
		out = append(out, convert.AttachmentRef(&up))
	}
	return out, nil
}

// resolveMentions resolves display names for the mention mappings via the
// directory.  Lookups run in parallel; the result preserves request order so
// mention ids are assigned deterministically.  A failed lookup falls back to
// the literal tag as the display name and is logged as a warning, never
// propagated: a half-resolved mention must not abort the send.
func (s *Server) resolveMentions(ctx context.Context, gr Graph, reqs []mentionReq) []convert.MentionMapping {
	if len(reqs) == 0 {
		return nil
	}
	mappings := make([]convert.MentionMapping, len(reqs))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(lookupConcurrency)
	for i, r := range reqs {
		eg.Go(func() error {
			m := convert.MentionMapping{Tag: r.tag, UserID: r.userID}
			u, err := gr.GetUser(ctx, r.userID)
			if err != nil {
				s.logger.WarnContext(ctx, "mcp: mention lookup failed, falling back to tag",
					"user_id", r.userID, "tag", r.tag, "error", err)
			} else {
				m.DisplayName = u.DisplayName
			}
			mappings[i] = m
			return nil
		})
	}
	_ = eg.Wait() // workers never return errors
	return mappings
}

// composeMessage builds the Graph send payload from Markdown content,
// resolved mentions and attachment references.
func composeMessage(content, contentType string, mappings []convert.MentionMapping, atts []graph.Attachment) *graph.SendMessage {
	body, mentions := convert.BuildBody(content, contentType, mappings)
	if len(atts) > 0 {
		// Attachment placeholders are markup: the body must be HTML to
		// carry them.
		if body.ContentType != graph.ContentTypeHTML {
			body = graph.ItemBody{ContentType: graph.ContentTypeHTML, Content: convert.ToHTML(body.Content)}
		}
		for _, a := range atts {
			body.Content += convert.AttachmentPlaceholder(a.ID)
		}
	}
	return &graph.SendMessage{Body: body, Mentions: mentions, Attachments: atts}
}

// sentSummary is the result of a successful send.
type sentSummary struct {
	ID          string `json:"id"`
	ContentType string `json:"content_type"`
	WebURL      string `json:"web_url,omitempty"`
}

// ─── send_chat_message ────────────────────────────────────────────────────────

func (s *Server) toolSendChatMessage() mcpsrv.ServerTool {
	tool := mcplib.NewTool("send_chat_message",
		mcplib.WithDescription("Send a message to a chat. "+sendBodyDescription),
		mcplib.WithString("chat_id",
			mcplib.Description("The chat to send to."),
			mcplib.Required(),
		),
		mcplib.WithString("content",
			mcplib.Description(sendBodyDescription),
			mcplib.Required(),
		),
		mcplib.WithString("content_type",
			mcplib.Description(`"text" (default) or "html". Mentions and attachments force html.`),
			mcplib.Enum(graph.ContentTypeText, graph.ContentTypeHTML),
		),
		mcplib.WithArray("mentions",
			mcplib.Description(mentionsDescription),
		),
		mcplib.WithArray("attachments",
			mcplib.Description(attachmentsDescription),
		),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleSendChatMessage}
}

func (s *Server) handleSendChatMessage(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	gr := s.graph()
	if gr == nil {
		return resultErr(errNoGraph), nil
	}
	chatID, ok := stringArg(req, "chat_id")
	if !ok || chatID == "" {
		return resultErr(errors.New("send_chat_message: chat_id is required")), nil
	}
	msg, err := s.buildSendMessage(ctx, gr, req)
	if err != nil {
		return resultErr(fmt.Errorf("send_chat_message: %w", err)), nil
	}
	sent, err := gr.SendChatMessage(ctx, chatID, msg)
	if err != nil {
		return resultErr(fmt.Errorf("send_chat_message: %w", err)), nil
	}
	result, err := resultJSON(sentSummary{ID: sent.ID, ContentType: msg.Body.ContentType, WebURL: sent.WebURL})
	if err != nil {
		return resultErr(fmt.Errorf("send_chat_message: serialise: %w", err)), nil
	}
	return result, nil
}

// ─── send_channel_message ─────────────────────────────────────────────────────

func (s *Server) toolSendChannelMessage() mcpsrv.ServerTool {
	tool := mcplib.NewTool("send_channel_message",
		mcplib.WithDescription("Send a message to a team channel. "+sendBodyDescription),
		mcplib.WithString("team_id",
			mcplib.Description("The team the channel belongs to."),
			mcplib.Required(),
		),
		mcplib.WithString("channel_id",
			mcplib.Description("The channel to send to."),
			mcplib.Required(),
		),
		mcplib.WithString("content",
			mcplib.Description(sendBodyDescription),
			mcplib.Required(),
		),
		mcplib.WithString("content_type",
			mcplib.Description(`"text" (default) or "html". Mentions and attachments force html.`),
			mcplib.Enum(graph.ContentTypeText, graph.ContentTypeHTML),
		),
		mcplib.WithArray("mentions",
			mcplib.Description(mentionsDescription),
		),
		mcplib.WithArray("attachments",
			mcplib.Description(attachmentsDescription),
		),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleSendChannelMessage}
}

func (s *Server) handleSendChannelMessage(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	gr := s.graph()
	if gr == nil {
		return resultErr(errNoGraph), nil
	}
	teamID, ok := stringArg(req, "team_id")
	if !ok || teamID == "" {
		return resultErr(errors.New("send_channel_message: team_id is required")), nil
	}
	channelID, ok := stringArg(req, "channel_id")
	if !ok || channelID == "" {
		return resultErr(errors.New("send_channel_message: channel_id is required")), nil
	}
	msg, err := s.buildSendMessage(ctx, gr, req)
	if err != nil {
		return resultErr(fmt.Errorf("send_channel_message: %w", err)), nil
	}
	sent, err := gr.SendChannelMessage(ctx, teamID, channelID, msg)
	if err != nil {
		return resultErr(fmt.Errorf("send_channel_message: %w", err)), nil
	}
	result, err := resultJSON(sentSummary{ID: sent.ID, ContentType: msg.Body.ContentType, WebURL: sent.WebURL})
	if err != nil {
		return resultErr(fmt.Errorf("send_channel_message: serialise: %w", err)), nil
	}
	return result, nil
}

// buildSendMessage assembles the outgoing payload shared by both send tools.
func (s *Server) buildSendMessage(ctx context.Context, gr Graph, req mcplib.CallToolRequest) (*graph.SendMessage, error) {
	content, ok := stringArg(req, "content")
	if !ok || content == "" {
		return nil, errors.New("content is required")
	}
	contentType, _ := stringArg(req, "content_type")
	if contentType == "" {
		contentType = graph.ContentTypeText
	}
	if contentType != graph.ContentTypeText && contentType != graph.ContentTypeHTML {
		return nil, fmt.Errorf("invalid content_type %q", contentType)
	}
	reqs, err := mentionArgs(req)
	if err != nil {
		return nil, err
	}
	atts, err := attachmentArgs(req)
	if err != nil {
		return nil, err
	}
	mappings := s.resolveMentions(ctx, gr, reqs)
	return composeMessage(content, contentType, mappings, atts), nil
}

// ─── upload_file ──────────────────────────────────────────────────────────────

func (s *Server) toolUploadFile() mcpsrv.ServerTool {
	tool := mcplib.NewTool("upload_file",
		mcplib.WithDescription("Upload a local file to the signed-in user's drive so it can be attached to a message. Returns the attachment reference the send tools accept."),
		mcplib.WithString("path",
			mcplib.Description("Filesystem path of the file to upload."),
			mcplib.Required(),
		),
		mcplib.WithString("name",
			mcplib.Description("Name for the uploaded file (defaults to the base name of path)."),
		),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleUploadFile}
}

func (s *Server) handleUploadFile(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	gr := s.graph()
	if gr == nil {
		return resultErr(errNoGraph), nil
	}
	path, ok := stringArg(req, "path")
	if !ok || path == "" {
		return resultErr(errors.New("upload_file: path is required")), nil
	}
	name, _ := stringArg(req, "name")
	if name == "" {
		name = filepath.Base(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return resultErr(fmt.Errorf("upload_file: %w", err)), nil
	}
	defer f.Close()
	fi, err := f.Stat()
	if err != nil {
		return resultErr(fmt.Errorf("upload_file: %w", err)), nil
	}

	s.logger.InfoContext(ctx, "mcp: upload_file: uploading", "path", path, "name", name, "size", fi.Size())
	up, err := gr.UploadFile(ctx, name, fi.Size(), f)
	if err != nil {
		return resultErr(fmt.Errorf("upload_file: %w", err)), nil
	}
	result, err := resultJSON(up)
	if err != nil {
		return resultErr(fmt.Errorf("upload_file: serialise: %w", err)), nil
	}
	return result, nil
}
