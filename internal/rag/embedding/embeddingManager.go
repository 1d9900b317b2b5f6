package embedding

import (
	"context"
	"fmt"
	"time"

	"github.com/asampath/GoRAG/internal/config"
	"github.com/asampath/GoRAG/internal/metrics"
	"github.com/asampath/GoRAG/pkg/logger_i"
)

// Embedder maps text onto fixed-length vectors. Implementations return errors;
// callers that must never crash on a bad input wrap them with WithFallback.
type Embedder interface {
	GetEmbedding(ctx context.Context, query string) ([]float32, error)
	BatchEmbedding(ctx context.Context, chunks []string) ([][]float32, error)
}

// fallbackEmbedder converts provider failures into the deterministic all-zero
// vector of the configured dimension, so indexing and retrieval never abort
// on a single bad input. One policy for every provider.
type fallbackEmbedder struct {
	inner     Embedder
	dimension int
	logger    *logger_i.Logger
}

func WithFallback(inner Embedder, dimension int) Embedder {
	return &fallbackEmbedder{
		inner:     inner,
		dimension: dimension,
		logger:    logger_i.NewLogger("embedding_fallback"),
	}
}

func (f *fallbackEmbedder) zeroVector() []float32 {
	return make([]float32, f.dimension)
}

func (f *fallbackEmbedder) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("embedding", time.Since(start)) }()
	vec, err := f.inner.GetEmbedding(ctx, query)
	if err != nil || len(vec) == 0 {
		f.logger.Error("embedding failed, substituting zero vector", "error", err)
		return f.zeroVector(), nil
	}
	return vec, nil
}

func (f *fallbackEmbedder) BatchEmbedding(ctx context.Context, chunks []string) ([][]float32, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("embedding", time.Since(start)) }()
	vecs, err := f.inner.BatchEmbedding(ctx, chunks)
	if err != nil || len(vecs) != len(chunks) {
		f.logger.Error("batch embedding failed, substituting zero vectors", "error", err, "chunks", len(chunks))
		out := make([][]float32, len(chunks))
		for i := range out {
			out[i] = f.zeroVector()
		}
		return out, nil
	}
	for i, v := range vecs {
		if len(v) == 0 {
			vecs[i] = f.zeroVector()
		}
	}
	return vecs, nil
}

// ProviderFactory builds the configured embedder implementation. Keeping the
// constructors injectable lets main wire real clients and tests wire fakes.
type ProviderFactory struct {
	NewGoogle func(ctx context.Context, model string, apiKey string) (Embedder, error)
	NewOpenAI func(apiKey string, model string) (Embedder, error)
}

// Select builds the provider named by config.EmbeddingProvider and wraps it in
// the shared zero-vector fallback policy.
func (pf ProviderFactory) Select(ctx context.Context) (Embedder, error) {
	var inner Embedder
	var err error

	switch provider := config.EmbeddingProvider(); provider {
	case "openai":
		key := config.OpenAIAPIKey()
		if key == "" {
			return nil, fmt.Errorf("embedding provider %q selected but OPENAI_API_KEY is not set", provider)
		}
		inner, err = pf.NewOpenAI(key, config.OpenAIEmbeddingModel)
	case "google":
		key := config.GeminiAPIKey()
		if key == "" {
			return nil, fmt.Errorf("embedding provider %q selected but GEMINI_API_KEY is not set", provider)
		}
		inner, err = pf.NewGoogle(ctx, config.GoogleEmbeddingModel, key)
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", provider)
	}

	if err != nil {
		return nil, err
	}
	return WithFallback(inner, int(config.EmbeddingOutputDimensionality)), nil
}
