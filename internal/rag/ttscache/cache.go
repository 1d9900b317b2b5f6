package ttscache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/asampath/GoRAG/internal/metrics"
	"github.com/asampath/GoRAG/pkg/logger_i"
	"golang.org/x/sync/singleflight"
)

// KV is the pluggable storage behind the response cache. Entries are
// immutable: writes for one key always carry identical bytes, so backends
// never need compare-and-swap.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, payload []byte) error
}

// Producer generates the expensive artifact on a cache miss.
type Producer func(ctx context.Context) ([]byte, error)

// Cache memoizes derived artifacts by a deterministic content+config hash.
// Concurrent misses on one key collapse into a single production.
type Cache struct {
	kv     KV
	flight singleflight.Group
	logger *logger_i.Logger
}

func New(kv KV) *Cache {
	return &Cache{
		kv:     kv,
		logger: logger_i.NewLogger("ResponseCache"),
	}
}

// Key hashes content together with the canonicalized (sorted) config mapping.
// Identical inputs always produce the same key, regardless of map order.
func Key(content string, config map[string]string) string {
	h := sha256.New()
	h.Write([]byte(content))
	h.Write([]byte{0})

	keys := make([]string, 0, len(config))
	for k := range config {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(h, "%s=%s\n", strings.ToLower(k), config[k])
	}
	return hex.EncodeToString(h.Sum(nil))
}

// GetOrCreate returns the cached payload for (content, config), producing and
// persisting it on first use. The producer runs at most once per key per
// process; a failed production is not cached.
func (c *Cache) GetOrCreate(ctx context.Context, content string, config map[string]string, produce Producer) ([]byte, error) {
	key := Key(content, config)
	log := c.logger.With("key", key[:12])

	if payload, found, err := c.kv.Get(ctx, key); err == nil && found {
		log.Debug("cache hit")
		metrics.CountAudioCache("hit")
		return payload, nil
	}

	metrics.CountAudioCache("miss")
	result, err, _ := c.flight.Do(key, func() (interface{}, error) {
		// re-check inside the flight: a concurrent caller may have
		// produced and stored the payload while we were queued
		if payload, found, err := c.kv.Get(ctx, key); err == nil && found {
			return payload, nil
		}

		payload, err := produce(ctx)
		if err != nil {
			return nil, err
		}

		if err := c.kv.Put(ctx, key, payload); err != nil {
			// serve the artifact even if persisting it failed
			log.Error("persisting cache entry failed", "error", err)
		}
		return payload, nil
	})
	if err != nil {
		return nil, err
	}

	log.Debug("produced and cached")
	return result.([]byte), nil
}
