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

// Package graph provides a limited Microsoft Graph client covering the Teams
// operations that teamsmcp exposes.  It is deliberately thin request/response
// glue: authentication is out of scope, the caller supplies an *http.Client
// that already attaches credentials to every request.
package graph

// In this file: client construction, request plumbing, throttling and the
// Graph error envelope.

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://graph.microsoft.com/v1.0"

// defRate is a conservative request rate that stays well under the Teams
// service throttling limits.
const (
	defRate  = rate.Limit(15)
	defBurst = 4
)

// Client is a Microsoft Graph REST client.
type Client struct {
	cl      *http.Client
	baseURL string
	lim     *rate.Limiter
	lg      *slog.Logger
}

// Option configures the Client.
type Option func(*Client)

// WithBaseURL overrides the Graph endpoint.  Used by tests.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithLogger sets the logger.  A nil logger falls back to slog.Default().
func WithLogger(lg *slog.Logger) Option {
	return func(c *Client) {
		if lg != nil {
			c.lg = lg
		}
	}
}

// WithLimiter overrides the default request rate limiter.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Client) {
		if l != nil {
			c.lim = l
		}
	}
}

// NewClient returns a Graph client that issues requests through hc.  hc must
// already carry authorization (bearer token injection, refresh, etc. are the
// responsibility of the caller).
func NewClient(hc *http.Client, opt ...Option) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	c := &Client{
		cl:      hc,
		baseURL: defaultBaseURL,
		lim:     rate.NewLimiter(defRate, defBurst),
		lg:      slog.Default(),
	}
	for _, o := range opt {
		o(c)
	}
	return c
}

// APIError is the decoded Graph error envelope.
type APIError struct {
	Status  int    // HTTP status code
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("graph: %s (code=%s, status=%d)", e.Message, e.Code, e.Status)
}

type errorEnvelope struct {
	Error APIError `json:"error"`
}

// do sends the request after waiting for the limiter, retrying once on 429
// honouring Retry-After.  On non-2xx it returns *APIError.
func (c *Client) do(ctx context.Context, req *http.Request, v any) error {
	for attempt := 0; ; attempt++ {
		if err := c.lim.Wait(ctx); err != nil {
			return err
		}
		resp, err := c.cl.Do(req.WithContext(ctx))
		if err != nil {
			return fmt.Errorf("graph: %s %s: %w", req.Method, req.URL.Path, err)
		}
		if resp.StatusCode == http.StatusTooManyRequests && attempt == 0 {
			wait := retryAfter(resp)
			resp.Body.Close()
			c.lg.WarnContext(ctx, "graph: throttled, retrying", "path", req.URL.Path, "wait", wait)
			select {
			case <-time.After(wait):
				continue
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return parseResponse(resp, v)
	}
}

// retryAfter returns the server-requested backoff, or a one second default.
func retryAfter(resp *http.Response) time.Duration {
	if s := resp.Header.Get("Retry-After"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 0 {
			return time.Duration(n) * time.Second
		}
	}
	return time.Second
}

// parseResponse decodes the response body into v (when v is non-nil),
// translating non-2xx statuses into *APIError.  It always closes the body.
func parseResponse(resp *http.Response, v any) error {
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var env errorEnvelope
		if err := json.NewDecoder(resp.Body).Decode(&env); err != nil || env.Error.Message == "" {
			env.Error.Message = resp.Status
		}
		env.Error.Status = resp.StatusCode
		return &env.Error
	}
	if v == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

// get issues a GET to path (or, when path is a full URL such as an
// @odata.nextLink, to that URL verbatim) with the given query values.
func (c *Client) get(ctx context.Context, path string, q url.Values, hdr http.Header, v any) error {
	u := path
	if !strings.Contains(path, "://") {
		u = c.baseURL + path
		if len(q) > 0 {
			u += "?" + q.Encode()
		}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	for k, vv := range hdr {
		req.Header[k] = vv
	}
	return c.do(ctx, req, v)
}

// post issues a POST with a JSON body.
func (c *Client) post(ctx context.Context, path string, body, v any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("graph: marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(ctx, req, v)
}

// listValues builds the standard paging query values.
func listValues(opt ListOptions) url.Values {
	q := url.Values{}
	if opt.Limit > 0 {
		q.Set("$top", strconv.Itoa(opt.Limit))
	}
	return q
}
