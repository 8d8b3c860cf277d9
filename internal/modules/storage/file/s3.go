package file

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscreds "github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/snapocr/core/internal/config"
)

// S3Store uploads files to an S3-compatible bucket.
type S3Store struct {
	client *s3.Client
	opts   config.S3Options
}

func NewS3Store(opts config.S3Options) *S3Store {
	client := s3.NewFromConfig(aws.Config{
		Region: opts.Region,
		Credentials: awscreds.NewStaticCredentialsProvider(
			opts.AccessKeyID, opts.SecretAccessKey, "",
		),
	}, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
		o.UsePathStyle = opts.PathStyleAccess
	})
	return &S3Store{client: client, opts: opts}
}

// Put stores the object and returns its public URL.
func (s *S3Store) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.opts.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object %q: %w", key, err)
	}
	return s.publicURL(key), nil
}

func (s *S3Store) publicURL(key string) string {
	if s.opts.CustomDomain != "" {
		return strings.TrimSuffix(s.opts.CustomDomain, "/") + "/" + key
	}
	if s.opts.Endpoint != "" {
		base := strings.TrimSuffix(s.opts.Endpoint, "/")
		if s.opts.PathStyleAccess {
			return fmt.Sprintf("%s/%s/%s", base, s.opts.Bucket, key)
		}
		return fmt.Sprintf("%s/%s", base, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.opts.Bucket, s.opts.Region, key)
}
