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

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rusq/teamsmcp/internal/graph"
)

func TestReconcileMentions(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		mentions []Mention
		want     string
	}{
		{
			name: "merges fragmented name separated by nbsp entity",
			html: `<p><at id="0">Brunno</at>&nbsp;<at id="1">Joyran</at> hello</p>`,
			mentions: []Mention{
				{ID: 0, Text: "Brunno", UserID: "u1"},
				{ID: 1, Text: "Joyran", UserID: "u1"},
			},
			want: `<p><at id="0">Brunno Joyran</at> hello</p>`,
		},
		{
			name: "merges on literal non-breaking space character",
			html: "<p><at id=\"0\">Brunno</at> <at id=\"1\">Joyran</at></p>",
			mentions: []Mention{
				{ID: 0, Text: "Brunno", UserID: "u1"},
				{ID: 1, Text: "Joyran", UserID: "u1"},
			},
			want: `<p><at id="0">Brunno Joyran</at></p>`,
		},
		{
			name: "merges a run of three spans",
			html: `<at id="0">Jose</at>&nbsp;<at id="1">Maria</at>&nbsp;<at id="2">Souza</at>`,
			mentions: []Mention{
				{ID: 0, Text: "Jose", UserID: "u1"},
				{ID: 1, Text: "Maria", UserID: "u1"},
				{ID: 2, Text: "Souza", UserID: "u1"},
			},
			want: `<at id="0">Jose Maria Souza</at>`,
		},
		{
			// A plain space may well be the same upstream defect, but the
			// documented behaviour merges on the non-breaking space only.
			name: "plain space between same user spans does not merge",
			html: `<at id="0">Brunno</at> <at id="1">Joyran</at>`,
			mentions: []Mention{
				{ID: 0, Text: "Brunno", UserID: "u1"},
				{ID: 1, Text: "Joyran", UserID: "u1"},
			},
			want: `<at id="0">Brunno</at> <at id="1">Joyran</at>`,
		},
		{
			name: "punctuation between same user spans does not merge",
			html: `<at id="0">Brunno</at>,&nbsp;<at id="1">Joyran</at>`,
			mentions: []Mention{
				{ID: 0, Text: "Brunno", UserID: "u1"},
				{ID: 1, Text: "Joyran", UserID: "u1"},
			},
			want: `<at id="0">Brunno</at>,&nbsp;<at id="1">Joyran</at>`,
		},
		{
			name: "different users never merge",
			html: `<at id="0">Alice</at>&nbsp;<at id="1">Bob</at>`,
			mentions: []Mention{
				{ID: 0, Text: "Alice", UserID: "u1"},
				{ID: 1, Text: "Bob", UserID: "u2"},
			},
			want: `<at id="0">Alice</at>&nbsp;<at id="1">Bob</at>`,
		},
		{
			name: "span without a descriptor entry never merges",
			html: `<at id="0">Alice</at>&nbsp;<at id="7">Smith</at>`,
			mentions: []Mention{
				{ID: 0, Text: "Alice", UserID: "u1"},
			},
			want: `<at id="0">Alice</at>&nbsp;<at id="7">Smith</at>`,
		},
		{
			name: "adjacent distinct mentions get a separator",
			html: `<at id="0">Alice</at><at id="1">Bob</at>`,
			mentions: []Mention{
				{ID: 0, Text: "Alice", UserID: "u1"},
				{ID: 1, Text: "Bob", UserID: "u2"},
			},
			want: `<at id="0">Alice</at> <at id="1">Bob</at>`,
		},
		{
			name: "separator repair runs without descriptors",
			html: `<at id="0">Alice</at><at id="1">Bob</at>`,
			want: `<at id="0">Alice</at> <at id="1">Bob</at>`,
		},
		{
			name: "single span is left untouched",
			html: `<p><at id="0">Alice</at></p>`,
			mentions: []Mention{
				{ID: 0, Text: "Alice", UserID: "u1"},
			},
			want: `<p><at id="0">Alice</at></p>`,
		},
		{
			name: "no spans is a passthrough",
			html: `<p>nothing here</p>`,
			mentions: []Mention{
				{ID: 0, Text: "Alice", UserID: "u1"},
			},
			want: `<p>nothing here</p>`,
		},
		{
			name: "merge followed by an unrelated span",
			html: `<at id="0">Jose</at>&nbsp;<at id="1">Maria</at> and <at id="2">Bob</at>`,
			mentions: []Mention{
				{ID: 0, Text: "Jose", UserID: "u1"},
				{ID: 1, Text: "Maria", UserID: "u1"},
				{ID: 2, Text: "Bob", UserID: "u2"},
			},
			want: `<at id="0">Jose Maria</at> and <at id="2">Bob</at>`,
		},
		{
			name: "malformed markup passes through",
			html: `<at id="0">unclosed`,
			mentions: []Mention{
				{ID: 0, Text: "unclosed", UserID: "u1"},
			},
			want: `<at id="0">unclosed`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReconcileMentions(tt.html, tt.mentions)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMentionsFromMessage(t *testing.T) {
	t.Run("nil in, nil out", func(t *testing.T) {
		assert.Nil(t, MentionsFromMessage(nil))
	})
	t.Run("converts the wire shape", func(t *testing.T) {
		got := MentionsFromMessage([]graph.Mention{
			{ID: 3, MentionText: "Alice", Mentioned: &graph.IdentitySet{User: &graph.Identity{ID: "u1"}}},
			{ID: 4, MentionText: "bot", Mentioned: &graph.IdentitySet{Application: &graph.Identity{ID: "app1"}}},
		})
		assert.Equal(t, []Mention{
			{ID: 3, Text: "Alice", UserID: "u1"},
			{ID: 4, Text: "bot", UserID: ""}, // not a user mention
		}, got)
	})
}
