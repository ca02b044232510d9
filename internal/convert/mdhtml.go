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

// In this file: the outbound direction.  Markdown is rendered to HTML,
// sanitized, and mention spans are spliced in at the requested tags.

import (
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	"github.com/yuin/goldmark/extension"
	ghtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/rusq/teamsmcp/internal/graph"
)

// MentionMapping is an outbound mention request: replace occurrences of Tag
// in the authored text with a mention span for UserID.  DisplayName is
// resolved by the caller against the directory; when empty, Tag itself is
// used.
type MentionMapping struct {
	Tag         string
	UserID      string
	DisplayName string
}

var mdRenderer = sync.OnceValue(func() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(extension.GFM, emoji.Emoji),
		goldmark.WithRendererOptions(
			ghtml.WithHardWraps(),
			ghtml.WithXHTML(),
		),
	)
})

// sanitizer is the hard security boundary for outbound bodies: the HTML is
// sent to a third-party service and rendered by other clients, so only a
// safe formatting subset survives.  Mention spans and attachment
// placeholders are inserted after sanitization and need no allowance here.
var sanitizer = sync.OnceValue(func() *bluemonday.Policy {
	return bluemonday.UGCPolicy()
})

// ToHTML renders author Markdown to sanitized HTML.
func ToHTML(markdown string) string {
	var buf strings.Builder
	if err := mdRenderer().Convert([]byte(markdown), &buf); err != nil {
		slog.Debug("markdown render failed, sending text as is", "error", err)
		return strings.TrimSpace(sanitizer().Sanitize(markdown))
	}
	return strings.TrimSpace(sanitizer().Sanitize(buf.String()))
}

// InjectMentions replaces occurrences of each mapping's Tag within the text
// content of body with an <at> span, assigning sequential ids starting at
// zero, one id per mapping.  It returns the rewritten body and the mentions
// array the Graph send payload requires, in id order.  Mappings whose tag
// does not occur in the body contribute neither a span nor an array entry.
//
// The rewrite walks the parsed tree and touches text nodes only, so a tag
// appearing inside attribute values or markup is never corrupted.
func InjectMentions(body string, mappings []MentionMapping) (string, []graph.Mention) {
	if len(mappings) == 0 {
		return body, nil
	}
	ctxNode := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(body), ctxNode)
	if err != nil {
		return body, nil // best effort: leave the body untouched
	}
	root := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	for _, n := range nodes {
		root.AppendChild(n)
	}

	var out []graph.Mention
	for _, m := range mappings {
		if m.Tag == "" {
			continue
		}
		name := m.DisplayName
		if name == "" {
			name = m.Tag
		}
		id := len(out)
		if spliceAll(root, m.Tag, id, name) {
			out = append(out, graph.Mention{
				ID:          id,
				MentionText: name,
				Mentioned:   &graph.IdentitySet{User: &graph.Identity{ID: m.UserID, DisplayName: name}},
			})
		}
	}
	if len(out) == 0 {
		return body, nil
	}
	var b strings.Builder
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&b, c)
	}
	return b.String(), out
}

// spliceAll replaces every occurrence of tag in text nodes under n with an
// <at> span.  All occurrences of one mapping share one id; Teams accepts a
// span id referenced more than once as long as a mentions entry exists.
// Spans injected by earlier mappings are opaque: descending into them would
// nest a span inside a span when a tag is a substring of a display name.
func spliceAll(n *html.Node, tag string, id int, name string) bool {
	replaced := false
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		switch c.Type {
		case html.TextNode:
			if strings.Contains(c.Data, tag) {
				spliceText(n, c, tag, id, name)
				replaced = true
			}
		case html.ElementNode:
			if c.Data != "at" && spliceAll(c, tag, id, name) {
				replaced = true
			}
		}
		c = next
	}
	return replaced
}

// spliceText splits tn around each occurrence of tag, inserting mention
// spans in place.
func spliceText(parent, tn *html.Node, tag string, id int, name string) {
	rest := tn.Data
	var repl []*html.Node
	for {
		i := strings.Index(rest, tag)
		if i < 0 {
			break
		}
		if i > 0 {
			repl = append(repl, &html.Node{Type: html.TextNode, Data: rest[:i]})
		}
		repl = append(repl, mentionSpan(id, name))
		rest = rest[i+len(tag):]
	}
	if rest != "" {
		repl = append(repl, &html.Node{Type: html.TextNode, Data: rest})
	}
	for _, nn := range repl {
		parent.InsertBefore(nn, tn)
	}
	parent.RemoveChild(tn)
}

func mentionSpan(id int, name string) *html.Node {
	at := &html.Node{
		Type: html.ElementNode,
		Data: "at",
		Attr: []html.Attribute{{Key: "id", Val: strconv.Itoa(id)}},
	}
	at.AppendChild(&html.Node{Type: html.TextNode, Data: name})
	return at
}

// BuildBody assembles the outbound message body.  contentType is the
// caller's preference ("text" or "html"); a body that carries mention spans
// is forced to HTML because plain text cannot hold the markup.
func BuildBody(markdown, contentType string, mappings []MentionMapping) (graph.ItemBody, []graph.Mention) {
	if contentType != graph.ContentTypeHTML && len(mappings) == 0 {
		return graph.ItemBody{ContentType: graph.ContentTypeText, Content: markdown}, nil
	}
	body, mentions := InjectMentions(ToHTML(markdown), mappings)
	if len(mentions) == 0 && contentType != graph.ContentTypeHTML {
		// Nothing was injected after all; honour the requested plain text.
		return graph.ItemBody{ContentType: graph.ContentTypeText, Content: markdown}, nil
	}
	return graph.ItemBody{ContentType: graph.ContentTypeHTML, Content: body}, mentions
}
