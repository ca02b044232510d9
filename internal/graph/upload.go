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

// In this file: resumable file upload to the signed-in user's drive (the
// "Microsoft Teams Chat Files" folder), producing the UploadResult that the
// send tools attach to outgoing messages.

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"regexp"
	"strings"
)

// uploadChunkSize is 3.2 MiB: Graph requires ranges in multiples of 320 KiB,
// and recommends staying under 4 MiB per request.
const uploadChunkSize = 10 * 320 * 1024

// chatFilesFolder is where the Teams client stores files shared in chats.
const chatFilesFolder = "Microsoft Teams Chat Files"

type uploadSession struct {
	UploadURL string `json:"uploadUrl"`
}

// driveItem is the subset of the driveItem resource the upload consumes.
type driveItem struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	ETag   string `json:"eTag"`
	Size   int64  `json:"size"`
	WebURL string `json:"webUrl"`
	File   *struct {
		MimeType string `json:"mimeType"`
	} `json:"file"`
}

// etagGUID extracts the GUID from a driveItem eTag of the form
// "{GUID},version".  The GUID doubles as the message attachment id.
var etagGUID = regexp.MustCompile(`\{([0-9a-fA-F-]+)\}`)

// UploadFile uploads size bytes from r to the user's chat-files folder under
// the given name and returns the reference required to attach the file to a
// message.  The upload is chunked, so arbitrarily large files are fine.
func (c *Client) UploadFile(ctx context.Context, name string, size int64, r io.Reader) (*UploadResult, error) {
	if name == "" {
		return nil, fmt.Errorf("upload: file name is required")
	}
	sessPath := fmt.Sprintf("/me/drive/root:/%s/%s:/createUploadSession",
		url.PathEscape(chatFilesFolder), url.PathEscape(name))
	var sess uploadSession
	if err := c.post(ctx, sessPath, map[string]any{
		"item": map[string]any{"@microsoft.graph.conflictBehavior": "rename", "name": name},
	}, &sess); err != nil {
		return nil, fmt.Errorf("upload: create session: %w", err)
	}
	if sess.UploadURL == "" {
		return nil, fmt.Errorf("upload: no upload URL in session response")
	}

	item, err := c.putChunks(ctx, sess.UploadURL, size, r)
	if err != nil {
		return nil, err
	}

	res := &UploadResult{
		WebURL:       item.WebURL,
		AttachmentID: attachmentID(item.ETag),
		FileName:     item.Name,
		FileSize:     item.Size,
		MimeType:     mime.TypeByExtension(path.Ext(item.Name)),
	}
	if item.File != nil && item.File.MimeType != "" {
		res.MimeType = item.File.MimeType
	}
	return res, nil
}

// putChunks sends sequential Content-Range PUTs to the session URL.  The last
// chunk's response body is the created driveItem.
func (c *Client) putChunks(ctx context.Context, uploadURL string, size int64, r io.Reader) (*driveItem, error) {
	if size <= 0 {
		return nil, fmt.Errorf("upload: size must be positive, got %d", size)
	}
	buf := make([]byte, uploadChunkSize)
	var off int64
	for off < size {
		want := min(size-off, uploadChunkSize)
		n, err := io.ReadFull(r, buf[:want])
		if err == io.EOF {
			break
		}
		if err != nil && err != io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("upload: read chunk: %w", err)
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, bytes.NewReader(buf[:n]))
		if err != nil {
			return nil, err
		}
		req.ContentLength = int64(n)
		req.Header.Set("Content-Range", fmt.Sprintf("bytes %d-%d/%d", off, off+int64(n)-1, size))
		off += int64(n)

		var item driveItem
		if err := c.do(ctx, req, &item); err != nil {
			return nil, fmt.Errorf("upload: chunk at %d: %w", off-int64(n), err)
		}
		if off >= size {
			return &item, nil
		}
	}
	return nil, fmt.Errorf("upload: source exhausted at %d of %d bytes", off, size)
}

// attachmentID derives the attachment id from the driveItem eTag.  Falls back
// to the raw eTag if it does not carry a braced GUID.
func attachmentID(etag string) string {
	if m := etagGUID.FindStringSubmatch(etag); m != nil {
		return strings.ToLower(m[1])
	}
	return etag
}
