// Copyright (c) 2026 Rolodex. All rights reserved.
// Author: dev@rolodex.app

/*
Package storage provides the object-storage backend for user-uploaded files.

It wraps the AWS SDK v2 S3 client so it works against AWS S3 as well as
S3-compatible services (MinIO, Cloudflare R2) via a custom endpoint.

# Architecture

This package belongs to the Infrastructure layer. Domain services depend on
small interfaces (e.g. an avatar uploader) and receive [*AvatarStore] through
constructor injection, keeping the SDK out of business logic.
*/
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Options configures the S3-backed store.
type Options struct {
	Bucket string
	Region string

	// Endpoint overrides the AWS endpoint for S3-compatible services.
	// Leave empty for real AWS S3.
	Endpoint string

	AccessKey string
	SecretKey string

	// PublicBaseURL is the root under which uploaded objects are publicly
	// reachable, e.g. "https://cdn.rolodex.app". Object keys are appended to it.
	PublicBaseURL string
}

// AvatarStore uploads profile pictures to an S3 bucket.
type AvatarStore struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

// NewAvatarStore builds the S3 client from static credentials.
func NewAvatarStore(ctx context.Context, opts Options) (*AvatarStore, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("storage: bucket name must not be empty")
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(opts.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			opts.AccessKey,
			opts.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			// Path-style addressing is required by most S3-compatible services.
			o.UsePathStyle = true
		}
	})

	return &AvatarStore{
		client:        client,
		bucket:        opts.Bucket,
		publicBaseURL: strings.TrimRight(opts.PublicBaseURL, "/"),
	}, nil
}

// UploadAvatar stores the avatar body under a per-user key and returns the
// public URL of the uploaded object.
//
// The key is derived from the username, so re-uploading replaces the previous
// avatar instead of accumulating stale objects.
func (store *AvatarStore) UploadAvatar(ctx context.Context, username string, body io.Reader, contentType string) (string, error) {
	key := "avatars/" + username

	_, err := store.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(store.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("storage: failed to upload avatar for %q: %w", username, err)
	}

	return store.publicBaseURL + "/" + key, nil
}
