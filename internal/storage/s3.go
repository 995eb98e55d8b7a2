// Package storage uploads files to S3-compatible object storage.
package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// UploadResult describes a stored object
type UploadResult struct {
	URL  string `json:"url"`
	Path string `json:"path"`
	Size int64  `json:"size"`
	Type string `json:"type"`
}

// ObjectStore is the capability handlers use to persist uploads
type ObjectStore interface {
	// Put stores body under a key derived from prefix and filename and
	// returns where it landed.
	Put(ctx context.Context, prefix, filename, contentType string, size int64, body io.Reader) (*UploadResult, error)
}

// S3Store stores uploads in an S3 bucket
type S3Store struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

// NewS3Store creates an S3-backed object store for the given bucket
func NewS3Store(ctx context.Context, region, bucket, publicBaseURL string) (*S3Store, error) {
	if bucket == "" {
		return nil, fmt.Errorf("no bucket configured")
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Printf("Object storage enabled: bucket=%s, region=%s", bucket, region)

	return &S3Store{
		client:        s3.NewFromConfig(cfg),
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}, nil
}

// Put stores body in the bucket. Keys get a random prefix so repeated
// uploads of the same filename never collide.
func (s *S3Store) Put(ctx context.Context, prefix, filename, contentType string, size int64, body io.Reader) (*UploadResult, error) {
	key := path.Join(prefix, uuid.New().String()+"-"+sanitizeFilename(filename))

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store object %s: %w", key, err)
	}

	url := s.publicBaseURL + "/" + key
	if s.publicBaseURL == "" {
		url = fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key)
	}

	return &UploadResult{
		URL:  url,
		Path: key,
		Size: size,
		Type: contentType,
	}, nil
}

// sanitizeFilename keeps object keys URL- and shell-friendly
func sanitizeFilename(name string) string {
	name = path.Base(name)
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	if b.Len() == 0 {
		return "file"
	}
	return b.String()
}
