// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/poiesic/recapit/ai"
	"github.com/poiesic/recapit/core"
)

const (
	// DefaultPollInterval is the fixed delay between file state checks.
	// The service gives no retry-after hints, so there is nothing to back
	// off against.
	DefaultPollInterval = 5 * time.Second

	// DefaultPollMaxWait bounds how long a file may stay in PROCESSING.
	DefaultPollMaxWait = 5 * time.Minute

	// maxErrorBody caps how much of an HTTP error body ends up in error
	// messages and logs.
	maxErrorBody = 4096
)

// FileClient implements ai.FileStore against the resumable upload protocol.
type FileClient struct {
	host   string
	apiKey string
	httpc  *http.Client
	logger *slog.Logger
}

// newFileClient is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newFileClient(config *ai.Config, httpc *http.Client) (*FileClient, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if httpc == nil {
		httpc = &http.Client{Timeout: 2 * time.Minute}
	}

	return &FileClient{
		host:   config.Host,
		apiKey: config.APIKey,
		httpc:  httpc,
		logger: slog.Default().With("component", "gemini-files"),
	}, nil
}

// NewFileClient creates a file client using the provided configuration.
//
// Returns ai.FileStore interface to enforce abstraction.
func NewFileClient(config *ai.Config) (ai.FileStore, error) {
	return newFileClient(config, nil)
}

// InitiateUpload starts a resumable upload session and returns the session
// URL to transfer bytes to. Nothing is staged remotely until TransferUpload
// succeeds.
func (c *FileClient) InitiateUpload(ctx context.Context, size int64, mimeType, displayName string) (string, error) {
	body, err := json.Marshal(map[string]any{
		"file": map[string]any{"display_name": displayName},
	})
	if err != nil {
		return "", &UploadInitError{Err: err}
	}

	url := fmt.Sprintf("%s/upload/v1beta/files?key=%s", c.host, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", &UploadInitError{Err: err}
	}
	req.Header.Set("X-Goog-Upload-Protocol", "resumable")
	req.Header.Set("X-Goog-Upload-Command", "start")
	req.Header.Set("X-Goog-Upload-Header-Content-Length", strconv.FormatInt(size, 10))
	req.Header.Set("X-Goog-Upload-Header-Content-Type", mimeType)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", &UploadInitError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &UploadInitError{StatusCode: resp.StatusCode, Body: readErrorBody(resp.Body)}
	}

	sessionURL := resp.Header.Get("X-Goog-Upload-URL")
	if sessionURL == "" {
		return "", &UploadInitError{
			StatusCode: resp.StatusCode,
			Body:       "response missing X-Goog-Upload-URL header",
		}
	}

	c.logger.Debug("upload session started", "display_name", displayName, "size", size)
	return sessionURL, nil
}

// TransferUpload sends the full payload to an upload session in a single
// upload+finalize command at offset zero and returns the staged file handle.
func (c *FileClient) TransferUpload(ctx context.Context, sessionURL string, data []byte) (*ai.FileHandle, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sessionURL, bytes.NewReader(data))
	if err != nil {
		return nil, &UploadTransferError{Err: err}
	}
	req.ContentLength = int64(len(data))
	req.Header.Set("Content-Length", strconv.Itoa(len(data)))
	req.Header.Set("X-Goog-Upload-Offset", "0")
	req.Header.Set("X-Goog-Upload-Command", "upload, finalize")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, &UploadTransferError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &UploadTransferError{StatusCode: resp.StatusCode, Body: readErrorBody(resp.Body)}
	}

	var wrapper struct {
		File fileInfo `json:"file"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&wrapper); err != nil {
		return nil, &UploadTransferError{Err: fmt.Errorf("decoding finalize response: %w", err)}
	}

	handle := wrapper.File.toHandle()
	c.logger.Info("file staged", "name", handle.Name, "state", handle.State, "size", handle.SizeBytes)
	return handle, nil
}

// Upload stages data with a full two-phase session.
func (c *FileClient) Upload(ctx context.Context, data []byte, displayName, mimeType string) (*ai.FileHandle, error) {
	sessionURL, err := c.InitiateUpload(ctx, int64(len(data)), mimeType, displayName)
	if err != nil {
		return nil, err
	}
	return c.TransferUpload(ctx, sessionURL, data)
}

// GetFile fetches the current metadata of a staged file by its durable name.
func (c *FileClient) GetFile(ctx context.Context, name string) (*ai.FileHandle, error) {
	url := fmt.Sprintf("%s/v1beta/%s?key=%s", c.host, name, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("get file %s: HTTP %d: %s", name, resp.StatusCode, readErrorBody(resp.Body))
	}

	var info fileInfo
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&info); err != nil {
		return nil, fmt.Errorf("decoding file metadata: %w", err)
	}
	return info.toHandle(), nil
}

// WaitUntilActive polls the file state at a fixed interval until it is
// ACTIVE. FAILED aborts immediately with *ProcessingFailedError; exceeding
// maxWait yields *ProcessingTimeoutError. Transient fetch errors are logged
// and retried within the deadline. Unknown states count as still processing.
func (c *FileClient) WaitUntilActive(ctx context.Context, name string, interval, maxWait time.Duration) error {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if maxWait <= 0 {
		maxWait = DefaultPollMaxWait
	}
	start := time.Now()
	deadline := start.Add(maxWait)

	for {
		handle, err := c.GetFile(ctx, name)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.logger.Warn("file state check failed, retrying", "name", name, "err", err)
		case handle.State == string(core.FileStateActive):
			c.logger.Debug("file active", "name", name, "waited", time.Since(start))
			return nil
		case handle.State == string(core.FileStateFailed):
			return &ProcessingFailedError{Name: name}
		default:
			c.logger.Debug("file still processing", "name", name, "state", handle.State)
		}

		if time.Now().Add(interval).After(deadline) {
			return &ProcessingTimeoutError{Name: name, Waited: time.Since(start)}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
}

// Delete removes a staged file by its durable name.
func (c *FileClient) Delete(ctx context.Context, name string) error {
	url := fmt.Sprintf("%s/v1beta/%s?key=%s", c.host, name, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("delete file %s: HTTP %d: %s", name, resp.StatusCode, readErrorBody(resp.Body))
	}
	c.logger.Debug("file deleted", "name", name)
	return nil
}

// fileInfo is the wire shape of a file resource.
type fileInfo struct {
	Name      string `json:"name"`
	URI       string `json:"uri"`
	MIMEType  string `json:"mimeType"`
	SizeBytes string `json:"sizeBytes"`
	State     string `json:"state"`
}

func (f fileInfo) toHandle() *ai.FileHandle {
	size, _ := strconv.ParseInt(f.SizeBytes, 10, 64)
	return &ai.FileHandle{
		Name:      f.Name,
		URI:       f.URI,
		MIMEType:  f.MIMEType,
		SizeBytes: size,
		State:     f.State,
	}
}

func readErrorBody(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, maxErrorBody))
	return string(bytes.TrimSpace(b))
}
