// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package storage provides the S3-compatible upload sink for generated
// images. It wraps the AWS SDK v2 and is configured for path-style access
// so it works against CEPH, MinIO, and Supabase's S3 endpoint alike.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// unsafePathChars matches anything outside the safe subset allowed in
// storage keys.
var unsafePathChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// Client wraps an S3 client for generated-image uploads into one bucket.
type Client struct {
	s3        *s3.Client
	bucket    string
	endpoint  string
	publicURL string // optional CDN/direct URL for public files
}

// New creates an S3 storage client with path-style addressing. Returns
// (nil, nil) if endpoint or credentials are empty, allowing the app to
// start without storage (callers then use the data-URI fallback).
func New(endpoint, region, accessKey, secretKey, bucket, publicURL string) (*Client, error) {
	if endpoint == "" || accessKey == "" || secretKey == "" {
		return nil, nil
	}

	endpoint = strings.TrimRight(endpoint, "/")

	s3Client := s3.New(s3.Options{
		Region:       region,
		BaseEndpoint: aws.String(endpoint),
		Credentials:  credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		UsePathStyle: true,
	})

	return &Client{
		s3:        s3Client,
		bucket:    bucket,
		endpoint:  endpoint,
		publicURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

// SanitizePathPart strips a folder or file name down to the safe storage
// character subset. Spaces become underscores first so category names stay
// readable.
func SanitizePathPart(s string) string {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "_")
	return unsafePathChars.ReplaceAllString(s, "")
}

// UploadImage stores PNG data at folder/filename and returns the public
// URL. Re-uploading the same path replaces prior content (overwrite-allowed
// semantics), which keeps regeneration idempotent.
func (c *Client) UploadImage(ctx context.Context, data []byte, folder, filename string) (string, error) {
	key := SanitizePathPart(folder) + "/" + SanitizePathPart(filename)

	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String("image/png"),
		ACL:           s3types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("s3 upload %s/%s: %w", c.bucket, key, err)
	}

	return c.FileURL(key), nil
}

// FileURL returns the public URL for a stored key.
// Uses the configured public URL if set, otherwise builds a path-style URL.
func (c *Client) FileURL(key string) string {
	if c.publicURL != "" {
		return c.publicURL + "/" + key
	}
	return c.endpoint + "/" + c.bucket + "/" + key
}

// Bucket returns the configured bucket name.
func (c *Client) Bucket() string {
	return c.bucket
}
