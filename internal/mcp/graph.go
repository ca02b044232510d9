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

import (
	"context"
	"io"

	"github.com/rusq/teamsmcp/internal/graph"
)

//go:generate mockgen -destination=mock_graph/mock_graph.go -package=mock_graph . Graph

// Graph is the subset of the Graph client the tool handlers use.
type Graph interface {
	Me(ctx context.Context) (*graph.User, error)
	ListChats(ctx context.Context, opt graph.ListOptions) (*graph.ChatPage, error)
	ChatMessages(ctx context.Context, chatID string, opt graph.ListOptions) (*graph.MessagePage, error)
	SendChatMessage(ctx context.Context, chatID string, msg *graph.SendMessage) (*graph.ChatMessage, error)
	ListChatMembers(ctx context.Context, chatID string) ([]graph.ChatMember, error)
	JoinedTeams(ctx context.Context) ([]graph.Team, error)
	ListChannels(ctx context.Context, teamID string) ([]graph.Channel, error)
	ChannelMessages(ctx context.Context, teamID, channelID string, opt graph.ListOptions) (*graph.MessagePage, error)
	SendChannelMessage(ctx context.Context, teamID, channelID string, msg *graph.SendMessage) (*graph.ChatMessage, error)
	SearchMessages(ctx context.Context, query string, limit int) ([]graph.SearchHit, error)
	SearchUsers(ctx context.Context, query string, limit int) ([]graph.User, error)
	GetUser(ctx context.Context, id string) (*graph.User, error)
	UploadFile(ctx context.Context, name string, size int64, r io.Reader) (*graph.UploadResult, error)
}
