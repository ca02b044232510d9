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

package graph

// In this file: wire types mirroring the Microsoft Graph resource shapes that
// teamsmcp consumes.  Field sets are intentionally partial; Graph returns far
// more than we need.

import "time"

// ItemBody is the Graph itemBody resource: a message body with its declared
// content type ("text" or "html").
type ItemBody struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

// Body content types accepted by Graph.
const (
	ContentTypeText = "text"
	ContentTypeHTML = "html"
)

// Identity identifies a single principal.
type Identity struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName,omitempty"`
}

// IdentitySet is the Graph identitySet resource.  Only one of the fields is
// normally populated.
type IdentitySet struct {
	User        *Identity `json:"user,omitempty"`
	Application *Identity `json:"application,omitempty"`
}

// Mention is one entry of a chatMessage's mentions array.  The exact shape is
// part of the Graph API contract: the id must match the id attribute of an
// <at> span in the HTML body.
type Mention struct {
	ID          int          `json:"id"`
	MentionText string       `json:"mentionText"`
	Mentioned   *IdentitySet `json:"mentioned,omitempty"`
}

// UserID returns the mentioned user's id, or "" if the mention does not
// resolve to a user.
func (m Mention) UserID() string {
	if m.Mentioned == nil || m.Mentioned.User == nil {
		return ""
	}
	return m.Mentioned.User.ID
}

// Attachment is a chatMessage attachment reference.
type Attachment struct {
	ID           string `json:"id"`
	ContentType  string `json:"contentType,omitempty"`
	ContentURL   string `json:"contentUrl,omitempty"`
	Name         string `json:"name,omitempty"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

// AttachmentReference is the contentType of a file-reference attachment.
const AttachmentReference = "reference"

// ChatMessage is the Graph chatMessage resource.
type ChatMessage struct {
	ID              string       `json:"id"`
	ReplyToID       string       `json:"replyToId,omitempty"`
	MessageType     string       `json:"messageType,omitempty"`
	CreatedDateTime time.Time    `json:"createdDateTime,omitzero"`
	From            *IdentitySet `json:"from,omitempty"`
	Body            ItemBody     `json:"body"`
	Subject         string       `json:"subject,omitempty"`
	Attachments     []Attachment `json:"attachments,omitempty"`
	Mentions        []Mention    `json:"mentions,omitempty"`
	WebURL          string       `json:"webUrl,omitempty"`
}

// SendMessage is the request body for posting a chatMessage.
type SendMessage struct {
	Body        ItemBody     `json:"body"`
	Mentions    []Mention    `json:"mentions,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Chat is the Graph chat resource (oneOnOne, group or meeting chat).
type Chat struct {
	ID              string    `json:"id"`
	Topic           string    `json:"topic,omitempty"`
	ChatType        string    `json:"chatType,omitempty"`
	WebURL          string    `json:"webUrl,omitempty"`
	LastUpdatedTime time.Time `json:"lastUpdatedDateTime,omitzero"`
}

// Team is a joined team.
type Team struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Description string `json:"description,omitempty"`
}

// Channel is a channel within a team.
type Channel struct {
	ID             string `json:"id"`
	DisplayName    string `json:"displayName"`
	Description    string `json:"description,omitempty"`
	MembershipType string `json:"membershipType,omitempty"`
}

// User is a directory user.
type User struct {
	ID                string `json:"id"`
	DisplayName       string `json:"displayName"`
	Mail              string `json:"mail,omitempty"`
	UserPrincipalName string `json:"userPrincipalName,omitempty"`
	JobTitle          string `json:"jobTitle,omitempty"`
}

// ChatMember is a conversationMember of a chat.
type ChatMember struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"displayName"`
	UserID      string   `json:"userId,omitempty"`
	Email       string   `json:"email,omitempty"`
	Roles       []string `json:"roles,omitempty"`
}

// ChatPage is one page of the chat roster.  NextLink, when non-empty, is the
// opaque @odata.nextLink URL for the following page.
type ChatPage struct {
	Chats    []Chat
	NextLink string
}

// MessagePage is one page of chat or channel messages.
type MessagePage struct {
	Messages []ChatMessage
	NextLink string
}

// SearchHit is one hit of the Graph search API, reduced to the fields the
// tools surface.
type SearchHit struct {
	Summary string
	Message ChatMessage
}

// UploadResult describes a file uploaded to the drive, in the shape the
// message-composition step consumes.
type UploadResult struct {
	WebURL       string `json:"webUrl"`
	AttachmentID string `json:"attachmentId"`
	FileName     string `json:"fileName"`
	FileSize     int64  `json:"fileSize"`
	MimeType     string `json:"mimeType"`
}

// ListOptions control paging of list calls.
type ListOptions struct {
	// Limit is the page size ($top).  Zero means server default.
	Limit int
	// NextLink, when set, continues a previous page and takes precedence
	// over Limit.
	NextLink string
}
