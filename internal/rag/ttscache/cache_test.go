package ttscache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/asampath/GoRAG/internal/data/redisStore"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countingProducer(calls *int32, payload []byte) Producer {
	return func(ctx context.Context) ([]byte, error) {
		atomic.AddInt32(calls, 1)
		return payload, nil
	}
}

func TestKey_Deterministic(t *testing.T) {
	a := Key("hello", map[string]string{"voice": "v1", "model": "m1"})
	b := Key("hello", map[string]string{"model": "m1", "voice": "v1"})
	assert.Equal(t, a, b, "map order must not change the key")

	c := Key("hello", map[string]string{"voice": "v2", "model": "m1"})
	assert.NotEqual(t, a, c, "different config must produce a different key")

	d := Key("goodbye", map[string]string{"voice": "v1", "model": "m1"})
	assert.NotEqual(t, a, d, "different content must produce a different key")
}

func TestGetOrCreate_ProducesOnceThenHits(t *testing.T) {
	cache := New(NewMemoryKV())
	ctx := context.Background()

	var calls int32
	cfg := map[string]string{"voice": "v1"}

	first, err := cache.GetOrCreate(ctx, "hello", cfg, countingProducer(&calls, []byte("audio-1")))
	require.NoError(t, err)
	second, err := cache.GetOrCreate(ctx, "hello", cfg, countingProducer(&calls, []byte("audio-1")))
	require.NoError(t, err)

	assert.Equal(t, []byte("audio-1"), first)
	assert.Equal(t, first, second)
	assert.EqualValues(t, 1, calls, "producer must run exactly once for one key")
}

func TestGetOrCreate_DifferentConfigProducesAgain(t *testing.T) {
	cache := New(NewMemoryKV())
	ctx := context.Background()

	var calls int32
	_, err := cache.GetOrCreate(ctx, "hello", map[string]string{"voice": "v1"}, countingProducer(&calls, []byte("a")))
	require.NoError(t, err)
	_, err = cache.GetOrCreate(ctx, "hello", map[string]string{"voice": "v2"}, countingProducer(&calls, []byte("b")))
	require.NoError(t, err)

	assert.EqualValues(t, 2, calls)
}

func TestGetOrCreate_FailedProductionNotCached(t *testing.T) {
	cache := New(NewMemoryKV())
	ctx := context.Background()

	_, err := cache.GetOrCreate(ctx, "hello", nil, func(ctx context.Context) ([]byte, error) {
		return nil, errors.New("synth down")
	})
	require.Error(t, err)

	var calls int32
	payload, err := cache.GetOrCreate(ctx, "hello", nil, countingProducer(&calls, []byte("ok")))
	require.NoError(t, err)
	assert.Equal(t, []byte("ok"), payload)
	assert.EqualValues(t, 1, calls, "failure must not poison the key")
}

func TestGetOrCreate_ConcurrentMissesCollapse(t *testing.T) {
	cache := New(NewMemoryKV())
	ctx := context.Background()

	var calls int32
	started := make(chan struct{})
	producer := func(ctx context.Context) ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		<-started // hold all callers in the same flight
		return []byte("audio"), nil
	}

	const goroutines = 20
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			payload, err := cache.GetOrCreate(ctx, "same-text", map[string]string{"voice": "v1"}, producer)
			assert.NoError(t, err)
			assert.Equal(t, []byte("audio"), payload)
		}()
	}
	close(started)
	wg.Wait()

	assert.EqualValues(t, 1, calls, "concurrent misses on one key must collapse")
}

func TestFileKV_Roundtrip(t *testing.T) {
	kv, err := NewFileKV(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, found, err := kv.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, kv.Put(ctx, "abc123", []byte{0x01, 0x02, 0xff}))
	payload, found, err := kv.Get(ctx, "abc123")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte{0x01, 0x02, 0xff}, payload)
}

func TestRedisKV_Roundtrip(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	kv := NewRedisKV(redisStore.NewTestStore(client))
	ctx := context.Background()

	_, found, err := kv.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, kv.Put(ctx, "abc123", []byte("mp3 bytes")))
	payload, found, err := kv.Get(ctx, "abc123")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("mp3 bytes"), payload)
}
