package s3

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"evault/internal/storage"
)

// DefaultConfig provides default configuration values
var DefaultConfig = storage.Config{
	Backend: "s3",
	Bucket:  "evault-containers",
	Region:  "us-east-1",
	Prefix:  "containers/",
}

// NewClient creates a new S3-backed store with the given configuration
func NewClient(ctx context.Context, cfg aws.Config, bucket string, opts ...func(*storage.Config)) (*Store, error) {
	client := s3.NewFromConfig(cfg)

	// Verify bucket exists and is accessible
	_, err := client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to access bucket %s: %w", bucket, err)
	}

	config := DefaultConfig
	config.Bucket = bucket
	config.Region = cfg.Region
	for _, opt := range opts {
		opt(&config)
	}

	return New(client, config), nil
}

// WithPrefix sets the key prefix containers are stored under
func WithPrefix(prefix string) func(*storage.Config) {
	return func(c *storage.Config) {
		if prefix == "" {
			return
		}
		if !strings.HasSuffix(prefix, "/") {
			prefix += "/"
		}
		c.Prefix = prefix
	}
}
