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

// In this file: the mention reconciliation pass that runs before HTML to
// Markdown conversion.

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/rusq/teamsmcp/internal/graph"
)

// Mention is one mention descriptor: it ties the id attribute of an <at>
// span in the message HTML to the mentioned user.  Text is the literal text
// Graph assigned to that particular span, which for a multi-word display
// name is a single word.
type Mention struct {
	ID     int
	Text   string
	UserID string
}

// MentionsFromMessage builds descriptors from a Graph message's mentions
// array.
func MentionsFromMessage(mm []graph.Mention) []Mention {
	if len(mm) == 0 {
		return nil
	}
	out := make([]Mention, 0, len(mm))
	for _, m := range mm {
		out = append(out, Mention{ID: m.ID, Text: m.MentionText, UserID: m.UserID()})
	}
	return out
}

// atSpanRx matches a rendered mention span.  Graph emits them with a numeric
// id attribute and plain inline text.
var atSpanRx = regexp.MustCompile(`<at id="(\d+)">([^<]*)</at>`)

// span is one <at> occurrence located in the raw HTML.
type span struct {
	start, end int    // byte offsets of the whole element
	id         int    // the id attribute
	text       string // inline text content
	userID     string // resolved from the descriptors; "" if unknown
}

// ReconcileMentions rewrites html so that every logical mention is a single
// <at> span.  Adjacent spans are merged when they resolve to the same user
// and are separated by exactly one non-breaking space (the separator Graph
// uses when it fragments a name); the merged span keeps the first span's id
// and joins the member texts with ordinary spaces.  Independently of
// merging, a literal space is inserted between immediately adjacent spans of
// distinct mentions, which Teams sometimes emits with no separator at all.
//
// The function never fails: with no descriptors only the separator repair
// applies, and malformed markup passes through untouched.
func ReconcileMentions(html string, mentions []Mention) string {
	if len(mentions) > 0 {
		html = mergeSpans(html, mentions)
	}
	return repairSeparators(html)
}

// mergeSpans performs step one of reconciliation: joining fragmented
// same-user spans.
func mergeSpans(html string, mentions []Mention) string {
	locs := atSpanRx.FindAllStringSubmatchIndex(html, -1)
	if len(locs) < 2 {
		return html
	}
	byID := make(map[int]string, len(mentions))
	for _, m := range mentions {
		byID[m.ID] = m.UserID
	}
	spans := make([]span, 0, len(locs))
	for _, l := range locs {
		id, err := strconv.Atoi(html[l[2]:l[3]])
		if err != nil {
			continue // cannot happen with \d+, but stay total
		}
		spans = append(spans, span{
			start:  l[0],
			end:    l[1],
			id:     id,
			text:   html[l[4]:l[5]],
			userID: byID[id],
		})
	}

	var b strings.Builder
	b.Grow(len(html))
	prev := 0
	for i := 0; i < len(spans); {
		j := i
		for j+1 < len(spans) && mergeable(html, spans[j], spans[j+1]) {
			j++
		}
		b.WriteString(html[prev:spans[i].start])
		if j > i {
			texts := make([]string, 0, j-i+1)
			for _, s := range spans[i : j+1] {
				texts = append(texts, s.text)
			}
			// Per-span text is authoritative even though per-span width is
			// not, so the space-joined concatenation reconstructs the full
			// display name.
			fmt.Fprintf(&b, `<at id="%d">%s</at>`, spans[i].id, strings.Join(texts, " "))
		} else {
			b.WriteString(html[spans[i].start:spans[i].end])
		}
		prev = spans[j].end
		i = j + 1
	}
	b.WriteString(html[prev:])
	return b.String()
}

// mergeable reports whether b directly continues a: same known user, and the
// gap between the elements is exactly one non-breaking space.  Any other
// separator, including a plain space, keeps the spans apart.
func mergeable(html string, a, b span) bool {
	if a.userID == "" || a.userID != b.userID {
		return false
	}
	gap := html[a.end:b.start]
	return gap == "&nbsp;" || gap == " "
}

// repairSeparators inserts a space between back-to-back mention spans so
// that two distinct mentions do not fuse into one token downstream.
func repairSeparators(html string) string {
	return strings.ReplaceAll(html, "</at><at", "</at> <at")
}
