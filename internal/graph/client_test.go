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

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient starts a test server with the given handler and returns a
// client pointed at it.
func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.Client(), WithBaseURL(srv.URL))
}

func TestMe(t *testing.T) {
	cl := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/me", r.URL.Path)
		json.NewEncoder(w).Encode(User{ID: "u1", DisplayName: "Test User"})
	})
	u, err := cl.Me(t.Context())
	require.NoError(t, err)
	assert.Equal(t, &User{ID: "u1", DisplayName: "Test User"}, u)
}

func TestListChats(t *testing.T) {
	t.Run("first page", func(t *testing.T) {
		cl := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/me/chats", r.URL.Path)
			assert.Equal(t, "10", r.URL.Query().Get("$top"))
			json.NewEncoder(w).Encode(page[Chat]{
				NextLink: "https://graph.example.com/next",
				Value:    []Chat{{ID: "c1", Topic: "standup"}},
			})
		})
		p, err := cl.ListChats(t.Context(), ListOptions{Limit: 10})
		require.NoError(t, err)
		require.Len(t, p.Chats, 1)
		assert.Equal(t, "c1", p.Chats[0].ID)
		assert.Equal(t, "https://graph.example.com/next", p.NextLink)
	})
	t.Run("nextLink continuation hits the link verbatim", func(t *testing.T) {
		var gotPath string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			assert.Empty(t, r.URL.Query().Get("$top"))
			json.NewEncoder(w).Encode(page[Chat]{Value: []Chat{{ID: "c2"}}})
		}))
		defer srv.Close()
		cl := NewClient(srv.Client(), WithBaseURL("https://must-not-be-used.example.com"))
		p, err := cl.ListChats(t.Context(), ListOptions{Limit: 10, NextLink: srv.URL + "/continued"})
		require.NoError(t, err)
		assert.Equal(t, "/continued", gotPath)
		require.Len(t, p.Chats, 1)
		assert.Equal(t, "c2", p.Chats[0].ID)
	})
}

func TestChatMessages(t *testing.T) {
	cl := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chats/19:abc@thread.v2/messages", r.URL.Path)
		json.NewEncoder(w).Encode(page[ChatMessage]{Value: []ChatMessage{
			{ID: "m1", Body: ItemBody{ContentType: ContentTypeHTML, Content: "<p>hi</p>"}},
		}})
	})
	p, err := cl.ChatMessages(t.Context(), "19:abc@thread.v2", ListOptions{})
	require.NoError(t, err)
	require.Len(t, p.Messages, 1)
	assert.Equal(t, "<p>hi</p>", p.Messages[0].Body.Content)
}

func TestGetChatMessage(t *testing.T) {
	cl := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chats/c1/messages/m7", r.URL.Path)
		json.NewEncoder(w).Encode(ChatMessage{ID: "m7", Subject: "minutes"})
	})
	m, err := cl.GetChatMessage(t.Context(), "c1", "m7")
	require.NoError(t, err)
	assert.Equal(t, "m7", m.ID)
	assert.Equal(t, "minutes", m.Subject)
}

func TestSendChatMessage(t *testing.T) {
	cl := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chats/c1/messages", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var got SendMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, ContentTypeHTML, got.Body.ContentType)
		require.Len(t, got.Mentions, 1)
		assert.Equal(t, 0, got.Mentions[0].ID)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(ChatMessage{ID: "m9", Body: got.Body})
	})
	msg := &SendMessage{
		Body: ItemBody{ContentType: ContentTypeHTML, Content: `<p><at id="0">Alice</at> hi</p>`},
		Mentions: []Mention{{
			ID:          0,
			MentionText: "Alice",
			Mentioned:   &IdentitySet{User: &Identity{ID: "u1", DisplayName: "Alice"}},
		}},
	}
	m, err := cl.SendChatMessage(t.Context(), "c1", msg)
	require.NoError(t, err)
	assert.Equal(t, "m9", m.ID)
}

func TestAPIError(t *testing.T) {
	cl := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"code":"Forbidden","message":"Missing scope"}}`))
	})
	_, err := cl.Me(t.Context())
	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
	assert.Equal(t, "Forbidden", apiErr.Code)
	assert.Equal(t, "Missing scope", apiErr.Message)
}

func TestAPIError_undecodableBody(t *testing.T) {
	cl := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream says no"))
	})
	_, err := cl.Me(t.Context())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.NotEmpty(t, apiErr.Message) // falls back to the HTTP status line
}

func TestThrottleRetry(t *testing.T) {
	var calls int
	cl := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		json.NewEncoder(w).Encode(User{ID: "u1"})
	})
	u, err := cl.Me(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, 2, calls)
}

func TestThrottleRetry_onlyOnce(t *testing.T) {
	var calls int
	cl := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Retry-After", "0")
		w.WriteHeader(http.StatusTooManyRequests)
	})
	_, err := cl.Me(t.Context())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.Status)
	assert.Equal(t, 2, calls)
}

func TestSearchUsers(t *testing.T) {
	cl := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users", r.URL.Path)
		assert.Equal(t, `"displayName:bru"`, r.URL.Query().Get("$search"))
		assert.Equal(t, "eventual", r.Header.Get("Consistencylevel"))
		json.NewEncoder(w).Encode(page[User]{Value: []User{{ID: "u1", DisplayName: "Brunno"}}})
	})
	users, err := cl.SearchUsers(t.Context(), "bru", 5)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Brunno", users[0].DisplayName)
}

func TestSearchMessages(t *testing.T) {
	cl := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/query", r.URL.Path)
		var req searchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Requests, 1)
		assert.Equal(t, []string{"chatMessage"}, req.Requests[0].EntityTypes)
		assert.Equal(t, "deadline", req.Requests[0].Query.QueryString)
		assert.Equal(t, 25, req.Requests[0].Size) // default when limit <= 0
		w.Write([]byte(`{"value":[{"hitsContainers":[{"hits":[
			{"summary":"the <c>deadline</c> is","resource":{"id":"m1"}}
		]}]}]}`))
	})
	hits, err := cl.SearchMessages(t.Context(), "deadline", 0)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "m1", hits[0].Message.ID)
	assert.Contains(t, hits[0].Summary, "deadline")
}

func TestListChannels(t *testing.T) {
	cl := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/teams/t1/channels", r.URL.Path)
		json.NewEncoder(w).Encode(page[Channel]{Value: []Channel{
			{ID: "ch1", DisplayName: "General"},
		}})
	})
	chans, err := cl.ListChannels(t.Context(), "t1")
	require.NoError(t, err)
	require.Len(t, chans, 1)
	assert.Equal(t, "General", chans[0].DisplayName)
}

func TestRetryAfter(t *testing.T) {
	mkresp := func(v string) *http.Response {
		h := http.Header{}
		if v != "" {
			h.Set("Retry-After", v)
		}
		return &http.Response{Header: h}
	}
	assert.Equal(t, 5*time.Second, retryAfter(mkresp("5")))
	assert.Equal(t, time.Second, retryAfter(mkresp("")))
	assert.Equal(t, time.Second, retryAfter(mkresp("soon")))
}

func TestMentionUserID(t *testing.T) {
	assert.Empty(t, Mention{}.UserID())
	assert.Empty(t, Mention{Mentioned: &IdentitySet{}}.UserID())
	assert.Equal(t, "u1", Mention{Mentioned: &IdentitySet{User: &Identity{ID: "u1"}}}.UserID())
}

func TestAPIErrorMessage(t *testing.T) {
	err := &APIError{Status: 404, Code: "NotFound", Message: "gone"}
	assert.EqualError(t, err, "graph: gone (code=NotFound, status=404)")
	assert.True(t, errors.As(error(err), new(*APIError)))
}
