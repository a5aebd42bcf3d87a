package mocks

import (
	"context"
	"sync"
	"time"

	"evault/internal/storage"
)

type MockStore struct {
	PutFunc        func(ctx context.Context, name string, blob []byte) error
	GetFunc        func(ctx context.Context, name string) ([]byte, error)
	ReadPrefixFunc func(ctx context.Context, name string, n int64) ([]byte, error)
	DeleteFunc     func(ctx context.Context, name string) error
	ListFunc       func(ctx context.Context) ([]storage.ObjectInfo, error)

	mu      sync.Mutex
	Objects map[string][]byte
	times   map[string]time.Time
	clock   time.Time
}

// NewMockStore returns a store backed by a map. Override the Func fields to
// inject failures.
func NewMockStore() *MockStore {
	m := &MockStore{
		Objects: map[string][]byte{},
		times:   map[string]time.Time{},
		clock:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	m.PutFunc = func(ctx context.Context, name string, blob []byte) error {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.clock = m.clock.Add(time.Second)
		m.Objects[name] = append([]byte(nil), blob...)
		m.times[name] = m.clock
		return nil
	}
	m.GetFunc = func(ctx context.Context, name string) ([]byte, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		b, ok := m.Objects[name]
		if !ok {
			return nil, storage.ErrNotFound
		}
		return append([]byte(nil), b...), nil
	}
	m.ReadPrefixFunc = func(ctx context.Context, name string, n int64) ([]byte, error) {
		b, err := m.GetFunc(ctx, name)
		if err != nil {
			return nil, err
		}
		if int64(len(b)) > n {
			b = b[:n]
		}
		return b, nil
	}
	m.DeleteFunc = func(ctx context.Context, name string) error {
		m.mu.Lock()
		defer m.mu.Unlock()
		if _, ok := m.Objects[name]; !ok {
			return storage.ErrNotFound
		}
		delete(m.Objects, name)
		delete(m.times, name)
		return nil
	}
	m.ListFunc = func(ctx context.Context) ([]storage.ObjectInfo, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		out := make([]storage.ObjectInfo, 0, len(m.Objects))
		for name, b := range m.Objects {
			out = append(out, storage.ObjectInfo{Name: name, Size: int64(len(b)), ModTime: m.times[name]})
		}
		storage.SortNewestFirst(out)
		return out, nil
	}
	return m
}

func (m *MockStore) Put(ctx context.Context, name string, blob []byte) error {
	return m.PutFunc(ctx, name, blob)
}

func (m *MockStore) Get(ctx context.Context, name string) ([]byte, error) {
	return m.GetFunc(ctx, name)
}

func (m *MockStore) ReadPrefix(ctx context.Context, name string, n int64) ([]byte, error) {
	return m.ReadPrefixFunc(ctx, name, n)
}

func (m *MockStore) Delete(ctx context.Context, name string) error {
	return m.DeleteFunc(ctx, name)
}

func (m *MockStore) List(ctx context.Context) ([]storage.ObjectInfo, error) {
	return m.ListFunc(ctx)
}
