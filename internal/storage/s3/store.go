package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"evault/internal/storage"
)

// Client is the subset of *s3.Client the store uses.
type Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

type Store struct {
	client Client
	config storage.Config
}

var _ storage.Store = (*Store)(nil)

func New(client Client, config storage.Config) *Store {
	return &Store{
		client: client,
		config: config,
	}
}

func (s *Store) Put(ctx context.Context, name string, blob []byte) error {
	if err := storage.ValidName(name); err != nil {
		return err
	}

	// A PutObject is atomic: the object is either fully visible or absent.
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.config.Bucket),
		Key:         aws.String(s.key(name)),
		Body:        bytes.NewReader(blob),
		ContentType: aws.String("application/octet-stream"),
	})
	if err != nil {
		return fmt.Errorf("failed to store container: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, name string) ([]byte, error) {
	if err := storage.ValidName(name); err != nil {
		return nil, storage.ErrNotFound
	}

	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.config.Bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get container: %w", err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read container: %w", err)
	}
	return data, nil
}

// ReadPrefix fetches the first n bytes with a ranged GET.
func (s *Store) ReadPrefix(ctx context.Context, name string, n int64) ([]byte, error) {
	if err := storage.ValidName(name); err != nil {
		return nil, storage.ErrNotFound
	}
	if n <= 0 {
		return []byte{}, nil
	}

	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.config.Bucket),
		Key:    aws.String(s.key(name)),
		Range:  aws.String(fmt.Sprintf("bytes=0-%d", n-1)),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get container: %w", err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(io.LimitReader(result.Body, n))
	if err != nil {
		return nil, fmt.Errorf("failed to read container: %w", err)
	}
	return data, nil
}

// Delete reports ErrNotFound for missing objects; S3 itself treats deleting a
// missing key as success, so existence is checked first.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := storage.ValidName(name); err != nil {
		return storage.ErrNotFound
	}

	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.config.Bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		if isNotFound(err) {
			return storage.ErrNotFound
		}
		return fmt.Errorf("failed to stat container: %w", err)
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.config.Bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		return fmt.Errorf("failed to delete container: %w", err)
	}
	return nil
}

func (s *Store) List(ctx context.Context) ([]storage.ObjectInfo, error) {
	var out []storage.ObjectInfo

	p := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.config.Bucket),
		Prefix: aws.String(s.config.Prefix),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list containers: %w", err)
		}
		for _, obj := range page.Contents {
			name := strings.TrimPrefix(aws.ToString(obj.Key), s.config.Prefix)
			if storage.ValidName(name) != nil {
				continue
			}
			out = append(out, storage.ObjectInfo{
				Name:    name,
				Size:    toInt64(obj.Size),
				ModTime: aws.ToTime(obj.LastModified),
			})
		}
	}

	storage.SortNewestFirst(out)
	return out, nil
}

func (s *Store) key(name string) string {
	return s.config.Prefix + name
}

func isNotFound(err error) bool {
	var nsk *types.NoSuchKey
	var nf *types.NotFound
	return errors.As(err, &nsk) || errors.As(err, &nf)
}

// toInt64 accepts both the pointer and value forms the SDK has used for
// object sizes.
func toInt64[T int64 | *int64](v T) int64 {
	switch x := any(v).(type) {
	case int64:
		return x
	case *int64:
		return aws.ToInt64(x)
	}
	return 0
}
