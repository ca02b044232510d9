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

package convert

// In this file: HTML to Markdown conversion and the format dispatch used by
// the message reading tools.

import (
	"strings"
	"sync"

	"github.com/JohannesKaufmann/dom"
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/strikethrough"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"golang.org/x/net/html"
)

// Format selects the representation of message bodies returned by the read
// tools.
type Format string

const (
	// FormatRaw returns the body exactly as Graph delivered it.
	FormatRaw Format = "raw"
	// FormatMarkdown converts HTML bodies to Markdown.
	FormatMarkdown Format = "markdown"
)

// Valid reports whether f is a recognized format value.
func (f Format) Valid() bool {
	return f == FormatRaw || f == FormatMarkdown
}

// systemEventSentinel is the self-closing marker Teams substitutes for
// synthetic system notifications (member joins, renames and the like).
const systemEventSentinel = "<systemEventMessage/>"

// mdConverter is the process-wide rule registry.  Built once, read-only
// afterwards, safe for concurrent conversions.
var mdConverter = sync.OnceValue(newMarkdownConverter)

func newMarkdownConverter() *converter.Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			strikethrough.NewStrikethroughPlugin(),
			table.NewTablePlugin(),
		),
	)
	conv.Register.RendererFor("at", converter.TagTypeInline, renderMentionSpan, converter.PriorityStandard)
	conv.Register.RendererFor("systemeventmessage", converter.TagTypeRemove, renderSystemEvent, converter.PriorityStandard)
	return conv
}

// renderMentionSpan renders an <at> span as "@" followed by the span text.
func renderMentionSpan(_ converter.Context, w converter.Writer, n *html.Node) converter.RenderStatus {
	text := strings.TrimSpace(dom.CollectText(n))
	if text == "" {
		return converter.RenderSuccess
	}
	_, _ = w.WriteString("@")
	_, _ = w.WriteString(text)
	return converter.RenderSuccess
}

// renderSystemEvent drops the element entirely.  Only the element is
// matched: prose that happens to mention the tag name is regular text and
// never reaches this renderer.
func renderSystemEvent(_ converter.Context, _ converter.Writer, _ *html.Node) converter.RenderStatus {
	return converter.RenderSuccess
}

// ToMarkdown converts a Graph HTML message body to Markdown.  The mention
// descriptors, when present, drive the reconciliation pass; without them
// only the separator repair applies.  Empty and whitespace-only input yields
// "".  The function never fails: unparseable markup degrades to best-effort
// output.
func ToMarkdown(htmlBody string, mentions []Mention) string {
	if strings.TrimSpace(htmlBody) == "" {
		return ""
	}
	// The sentinel check applies to the bare marker form only, never to
	// visible prose containing the word.
	if strings.TrimSpace(htmlBody) == systemEventSentinel {
		return ""
	}
	htmlBody = ReconcileMentions(htmlBody, mentions)
	htmlBody = rewriteAttachments(htmlBody)
	md, err := mdConverter().ConvertString(htmlBody)
	if err != nil {
		md = htmlBody
	}
	md = strings.ReplaceAll(md, " ", " ")
	return strings.TrimSpace(md)
}

// FormatContent is the single dispatch point for the read tools.  A nil
// content pointer is returned as is, preserving the absence-vs-empty
// distinction of the Graph payload.  FormatRaw returns the content verbatim,
// FormatMarkdown converts it.
func FormatContent(content *string, f Format, mentions []Mention) *string {
	if content == nil {
		return nil
	}
	if f != FormatMarkdown {
		return content
	}
	md := ToMarkdown(*content, mentions)
	return &md
}
