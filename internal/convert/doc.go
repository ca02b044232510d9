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

// Package convert translates Teams message bodies between the HTML that
// Microsoft Graph speaks and the Markdown that language models read and
// write.
//
// Inbound (HTML → Markdown): Graph fragments multi-word @mentions into
// several adjacent <at> spans, one word each.  ReconcileMentions merges such
// runs back into one span using the message's mentions array as the
// side-channel, then ToMarkdown rewrites the repaired HTML with a rule engine
// that understands the three Teams-specific elements (<at>, <attachment>,
// <systemEventMessage>) on top of the generic Markdown rules.
//
// Outbound (Markdown → HTML): ToHTML renders and sanitizes the author's
// Markdown, and InjectMentions splices <at> spans with sequential ids at the
// requested mention tags, emitting the matching Graph mentions array.
//
// All functions are pure and never fail: malformed markup degrades to
// best-effort output.  Package-level converter state is built once and is
// read-only afterwards, so concurrent use needs no coordination.
package convert
