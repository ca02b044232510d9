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

// In this file: the Teams/Graph operations (chats, channels, users, search).

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// page is the standard Graph collection envelope.
type page[T any] struct {
	NextLink string `json:"@odata.nextLink"`
	Value    []T    `json:"value"`
}

// Me returns the signed-in user.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var u User
	if err := c.get(ctx, "/me", nil, nil, &u); err != nil {
		return nil, fmt.Errorf("me: %w", err)
	}
	return &u, nil
}

// ListChats returns one page of the signed-in user's chats.
func (c *Client) ListChats(ctx context.Context, opt ListOptions) (*ChatPage, error) {
	var p page[Chat]
	path, q := "/me/chats", listValues(opt)
	if opt.NextLink != "" {
		path, q = opt.NextLink, nil
	}
	if err := c.get(ctx, path, q, nil, &p); err != nil {
		return nil, fmt.Errorf("list chats: %w", err)
	}
	return &ChatPage{Chats: p.Value, NextLink: p.NextLink}, nil
}

// ChatMessages returns one page of messages of the given chat, newest first.
func (c *Client) ChatMessages(ctx context.Context, chatID string, opt ListOptions) (*MessagePage, error) {
	var p page[ChatMessage]
	path, q := "/chats/"+url.PathEscape(chatID)+"/messages", listValues(opt)
	if opt.NextLink != "" {
		path, q = opt.NextLink, nil
	}
	if err := c.get(ctx, path, q, nil, &p); err != nil {
		return nil, fmt.Errorf("chat messages: %w", err)
	}
	return &MessagePage{Messages: p.Value, NextLink: p.NextLink}, nil
}

// GetChatMessage returns a single message of a chat.
func (c *Client) GetChatMessage(ctx context.Context, chatID, messageID string) (*ChatMessage, error) {
	var m ChatMessage
	path := "/chats/" + url.PathEscape(chatID) + "/messages/" + url.PathEscape(messageID)
	if err := c.get(ctx, path, nil, nil, &m); err != nil {
		return nil, fmt.Errorf("get chat message: %w", err)
	}
	return &m, nil
}

// SendChatMessage posts a message to a chat and returns the created message.
func (c *Client) SendChatMessage(ctx context.Context, chatID string, msg *SendMessage) (*ChatMessage, error) {
	var m ChatMessage
	if err := c.post(ctx, "/chats/"+url.PathEscape(chatID)+"/messages", msg, &m); err != nil {
		return nil, fmt.Errorf("send chat message: %w", err)
	}
	return &m, nil
}

// ListChatMembers returns all members of a chat.
func (c *Client) ListChatMembers(ctx context.Context, chatID string) ([]ChatMember, error) {
	var p page[ChatMember]
	if err := c.get(ctx, "/chats/"+url.PathEscape(chatID)+"/members", nil, nil, &p); err != nil {
		return nil, fmt.Errorf("list chat members: %w", err)
	}
	return p.Value, nil
}

// JoinedTeams returns the teams the signed-in user is a member of.
func (c *Client) JoinedTeams(ctx context.Context) ([]Team, error) {
	var p page[Team]
	if err := c.get(ctx, "/me/joinedTeams", nil, nil, &p); err != nil {
		return nil, fmt.Errorf("joined teams: %w", err)
	}
	return p.Value, nil
}

// ListChannels returns the channels of a team.
func (c *Client) ListChannels(ctx context.Context, teamID string) ([]Channel, error) {
	var p page[Channel]
	if err := c.get(ctx, "/teams/"+url.PathEscape(teamID)+"/channels", nil, nil, &p); err != nil {
		return nil, fmt.Errorf("list channels: %w", err)
	}
	return p.Value, nil
}

// ChannelMessages returns one page of messages of a channel.
func (c *Client) ChannelMessages(ctx context.Context, teamID, channelID string, opt ListOptions) (*MessagePage, error) {
	var p page[ChatMessage]
	path := "/teams/" + url.PathEscape(teamID) + "/channels/" + url.PathEscape(channelID) + "/messages"
	q := listValues(opt)
	if opt.NextLink != "" {
		path, q = opt.NextLink, nil
	}
	if err := c.get(ctx, path, q, nil, &p); err != nil {
		return nil, fmt.Errorf("channel messages: %w", err)
	}
	return &MessagePage{Messages: p.Value, NextLink: p.NextLink}, nil
}

// SendChannelMessage posts a message to a channel.
func (c *Client) SendChannelMessage(ctx context.Context, teamID, channelID string, msg *SendMessage) (*ChatMessage, error) {
	var m ChatMessage
	path := "/teams/" + url.PathEscape(teamID) + "/channels/" + url.PathEscape(channelID) + "/messages"
	if err := c.post(ctx, path, msg, &m); err != nil {
		return nil, fmt.Errorf("send channel message: %w", err)
	}
	return &m, nil
}

// GetUser looks up a directory user by id or userPrincipalName.
func (c *Client) GetUser(ctx context.Context, id string) (*User, error) {
	var u User
	if err := c.get(ctx, "/users/"+url.PathEscape(id), nil, nil, &u); err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	return &u, nil
}

// SearchUsers searches the directory by display name, mail or UPN.  The
// $search operator requires the eventual consistency header.
func (c *Client) SearchUsers(ctx context.Context, query string, limit int) ([]User, error) {
	q := url.Values{}
	q.Set("$search", fmt.Sprintf("%q", "displayName:"+query))
	if limit > 0 {
		q.Set("$top", strconv.Itoa(limit))
	}
	hdr := http.Header{"Consistencylevel": []string{"eventual"}}
	var p page[User]
	if err := c.get(ctx, "/users", q, hdr, &p); err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	return p.Value, nil
}

// search/query request and response shapes.  The response nesting is part of
// the Graph search API contract.
type searchRequest struct {
	Requests []searchQuery `json:"requests"`
}

type searchQuery struct {
	EntityTypes []string `json:"entityTypes"`
	Query       struct {
		QueryString string `json:"queryString"`
	} `json:"query"`
	From int `json:"from"`
	Size int `json:"size"`
}

type searchResponse struct {
	Value []struct {
		HitsContainers []struct {
			Hits []struct {
				Summary  string      `json:"summary"`
				Resource ChatMessage `json:"resource"`
			} `json:"hits"`
		} `json:"hitsContainers"`
	} `json:"value"`
}

// SearchMessages runs a KQL query over the user's messages via the Graph
// search API.
func (c *Client) SearchMessages(ctx context.Context, query string, limit int) ([]SearchHit, error) {
	if limit <= 0 {
		limit = 25
	}
	var req searchRequest
	sq := searchQuery{EntityTypes: []string{"chatMessage"}, Size: limit}
	sq.Query.QueryString = query
	req.Requests = []searchQuery{sq}

	var resp searchResponse
	if err := c.post(ctx, "/search/query", &req, &resp); err != nil {
		return nil, fmt.Errorf("search messages: %w", err)
	}
	var hits []SearchHit
	for _, v := range resp.Value {
		for _, hc := range v.HitsContainers {
			for _, h := range hc.Hits {
				hits = append(hits, SearchHit{Summary: h.Summary, Message: h.Resource})
			}
		}
	}
	return hits, nil
}
