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

// Package objectstore fetches source media from S3-compatible object storage.
package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// Downloader fetches source media objects.
type Downloader interface {
	// Download returns the object bytes and its content type.
	Download(ctx context.Context, key string) ([]byte, string, error)
}

// DownloadError indicates a source object could not be fetched.
type DownloadError struct {
	Key      string
	NotFound bool
	Err      error
}

func (e *DownloadError) Error() string {
	if e.NotFound {
		return fmt.Sprintf("source object %s does not exist", e.Key)
	}
	return fmt.Sprintf("downloading source object %s: %v", e.Key, e.Err)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}

// Config holds connection settings for an S3-compatible store.
type Config struct {
	AccessKey string
	SecretKey string
	Region    string
	Endpoint  string // empty for AWS S3 proper
	Bucket    string
}

// Client implements Downloader against S3-compatible object storage.
type Client struct {
	client *s3.Client
	bucket string
	logger *slog.Logger
}

var _ Downloader = (*Client)(nil)

// NewClient creates an object store client.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("objectstore: Bucket is required")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			// S3-compatible stores rarely support virtual-hosted buckets.
			o.UsePathStyle = true
		}
	})

	return &Client{
		client: client,
		bucket: cfg.Bucket,
		logger: slog.Default().With("component", "objectstore"),
	}, nil
}

// Download fetches an object and returns its bytes and content type.
// A missing object is reported as a *DownloadError with NotFound set;
// everything else is a transient transport failure.
func (c *Client) Download(ctx context.Context, key string) ([]byte, string, error) {
	out, err := c.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, "", &DownloadError{Key: key, NotFound: true, Err: err}
		}
		return nil, "", &DownloadError{Key: key, Err: err}
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, "", &DownloadError{Key: key, Err: err}
	}

	contentType := aws.ToString(out.ContentType)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.logger.Debug("object downloaded", "key", key, "bytes", len(data), "content_type", contentType)
	return data, contentType, nil
}
