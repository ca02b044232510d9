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

// In this file: attachment placeholder handling shared by both conversion
// directions.

import (
	"fmt"
	"regexp"

	"github.com/rusq/teamsmcp/internal/graph"
)

// attachmentRx matches the <attachment> placeholder element in either the
// self-closing or the empty-pair form, with an optional id attribute.
var attachmentRx = regexp.MustCompile(`<attachment(?:\s+id="([^"]*)")?\s*/?>(?:</attachment>)?`)

// rewriteAttachments replaces every attachment placeholder with an inline
// text marker before conversion.  The generic rule engine does not know the
// custom element and would drop it silently; a text marker survives any
// parse.
func rewriteAttachments(html string) string {
	return attachmentRx.ReplaceAllStringFunc(html, func(m string) string {
		sub := attachmentRx.FindStringSubmatch(m)
		if len(sub) > 1 && sub[1] != "" {
			return "{attachment:" + sub[1] + "}"
		}
		return "{attachment}"
	})
}

// AttachmentPlaceholder returns the placeholder element that marks the
// attachment's position in an outbound HTML body.
func AttachmentPlaceholder(id string) string {
	return fmt.Sprintf(`<attachment id=%q></attachment>`, id)
}

// AttachmentRef builds the message attachment entry for an uploaded file.
func AttachmentRef(up *graph.UploadResult) graph.Attachment {
	return graph.Attachment{
		ID:          up.AttachmentID,
		ContentType: graph.AttachmentReference,
		ContentURL:  up.WebURL,
		Name:        up.FileName,
	}
}
