package ttscache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/asampath/GoRAG/internal/config"
	"github.com/asampath/GoRAG/internal/data/redisStore"
)

// FileKV stores one file per key under a cache directory - the original
// audio-cache layout. Eviction is left to an external retention policy.
type FileKV struct {
	dir string
}

func NewFileKV(dir string) (*FileKV, error) {
	if dir == "" {
		root, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(root, config.AudioCacheDirName)
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, err
	}
	return &FileKV{dir: dir}, nil
}

func (f *FileKV) path(key string) string {
	return filepath.Join(f.dir, key+".bin")
}

func (f *FileKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	payload, err := os.ReadFile(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return payload, true, nil
}

func (f *FileKV) Put(ctx context.Context, key string, payload []byte) error {
	// write-then-rename so a concurrent reader never sees a torn file
	tmp, err := os.CreateTemp(f.dir, key+".tmp*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), f.path(key))
}

// MemoryKV is the in-process backend, used in tests and single-node setups.
type MemoryKV struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{entries: make(map[string][]byte)}
}

func (m *MemoryKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	payload, ok := m.entries[key]
	return payload, ok, nil
}

func (m *MemoryKV) Put(ctx context.Context, key string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = payload
	return nil
}

// RedisKV shares synthesized audio across instances through the redis store.
type RedisKV struct {
	store *redisStore.Store
}

func NewRedisKV(store *redisStore.Store) *RedisKV {
	return &RedisKV{store: store}
}

func (r *RedisKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	payload, err := r.store.GetBytes(ctx, key)
	if r.store.IsNil(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return payload, true, nil
}

func (r *RedisKV) Put(ctx context.Context, key string, payload []byte) error {
	return r.store.Set(ctx, key, payload, config.AudioCacheTTL)
}
