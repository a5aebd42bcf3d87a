package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"evault/internal/storage"
)

type fakeObject struct {
	data    []byte
	modTime time.Time
}

// fakeClient is an in-memory bucket.
type fakeClient struct {
	mu      sync.Mutex
	objects map[string]fakeObject
	now     time.Time
	putErr  error
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		objects: map[string]fakeObject{},
		now:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (f *fakeClient) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(time.Second)
	f.objects[aws.ToString(in.Key)] = fakeObject{data: data, modTime: f.now}
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeClient) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	obj, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	data := obj.data
	if r := aws.ToString(in.Range); r != "" {
		var start, end int
		if _, err := fmt.Sscanf(r, "bytes=%d-%d", &start, &end); err != nil {
			return nil, err
		}
		if end+1 < len(data) {
			data = data[start : end+1]
		}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeClient) HeadObject(ctx context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.objects[aws.ToString(in.Key)]; !ok {
		return nil, &types.NotFound{}
	}
	return &s3.HeadObjectOutput{}, nil
}

func (f *fakeClient) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func (f *fakeClient) ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	prefix := aws.ToString(in.Prefix)

	var keys []string
	for k := range f.objects {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	out := &s3.ListObjectsV2Output{}
	for _, k := range keys {
		obj := f.objects[k]
		o := types.Object{Key: aws.String(k), LastModified: aws.Time(obj.modTime)}
		setSize(&o.Size, int64(len(obj.data)))
		out.Contents = append(out.Contents, o)
	}
	return out, nil
}

func setSize[T int64 | *int64](dst *T, n int64) {
	switch x := any(dst).(type) {
	case *int64:
		*x = n
	case **int64:
		*x = &n
	}
}

func newTestStore(client Client) *Store {
	cfg := DefaultConfig
	WithPrefix("vault")(&cfg)
	return New(client, cfg)
}

func TestStore_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()
	s := newTestStore(client)

	if err := s.Put(ctx, "a.enc", []byte("blob")); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if _, ok := client.objects["vault/a.enc"]; !ok {
		t.Fatalf("object not stored under prefix: %v", client.objects)
	}

	got, err := s.Get(ctx, "a.enc")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != "blob" {
		t.Errorf("Get() = %q", got)
	}

	if err := s.Delete(ctx, "a.enc"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Get(ctx, "a.enc"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, "a.enc"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Delete() missing error = %v, want ErrNotFound", err)
	}
}

func TestStore_ReadPrefix(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(newFakeClient())
	if err := s.Put(ctx, "p.enc", []byte("0123456789")); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		n    int64
		want string
	}{
		{n: 4, want: "0123"},
		{n: 10, want: "0123456789"},
		{n: 64, want: "0123456789"},
	}
	for _, tt := range tests {
		got, err := s.ReadPrefix(ctx, "p.enc", tt.n)
		if err != nil {
			t.Fatalf("ReadPrefix(%d) error = %v", tt.n, err)
		}
		if string(got) != tt.want {
			t.Errorf("ReadPrefix(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}

	if _, err := s.ReadPrefix(ctx, "missing.enc", 4); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("ReadPrefix() missing error = %v, want ErrNotFound", err)
	}
}

func TestStore_List(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()
	s := newTestStore(client)

	for _, name := range []string{"first.enc", "second.enc", "third.enc"} {
		if err := s.Put(ctx, name, []byte(name)); err != nil {
			t.Fatal(err)
		}
	}
	// outside the prefix
	client.objects["other/x.enc"] = fakeObject{data: []byte("x"), modTime: time.Now()}

	got, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	want := []string{"third.enc", "second.enc", "first.enc"}
	if len(got) != len(want) {
		t.Fatalf("List() = %+v", got)
	}
	for i := range want {
		if got[i].Name != want[i] {
			t.Errorf("List()[%d] = %q, want %q", i, got[i].Name, want[i])
		}
	}
	if got[0].Size != int64(len("third.enc")) {
		t.Errorf("List()[0].Size = %d", got[0].Size)
	}
}

func TestStore_PutError(t *testing.T) {
	client := newFakeClient()
	client.putErr = errors.New("access denied")
	s := newTestStore(client)

	err := s.Put(context.Background(), "a.enc", []byte("x"))
	if err == nil || !errors.Is(err, client.putErr) {
		t.Errorf("Put() error = %v", err)
	}
}

func TestStore_InvalidName(t *testing.T) {
	s := newTestStore(newFakeClient())
	if err := s.Put(context.Background(), "../a.enc", []byte("x")); err == nil {
		t.Error("Put() accepted a path")
	}
	if _, err := s.Get(context.Background(), "a/b"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestWithPrefix(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", "containers/"},
		{"files", "files/"},
		{"files/", "files/"},
	}
	for _, tt := range tests {
		cfg := DefaultConfig
		WithPrefix(tt.in)(&cfg)
		if cfg.Prefix != tt.want {
			t.Errorf("WithPrefix(%q) prefix = %q, want %q", tt.in, cfg.Prefix, tt.want)
		}
	}
}
