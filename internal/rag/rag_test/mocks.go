package rag_test

import (
	"context"
	"sync"

	"github.com/asampath/GoRAG/internal/domain/commonModels"
	"github.com/asampath/GoRAG/internal/rag/tts"
)

// callRecorder tracks the order collaborators were hit in, so the fallback
// chain's sequencing can be asserted directly.
type callRecorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *callRecorder) record(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, name)
}

func (r *callRecorder) order() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

// MockVectorDB implements vectorDB.DataProcessor
type MockVectorDB struct {
	OnEnsureCollection func(ctx context.Context, name string) error
	OnDropCollection   func(ctx context.Context, name string) error
	OnUpsertBatch      func(ctx context.Context, name string, chunks []commonModels.DocChunk, vectors [][]float32) error
	OnQuery            func(ctx context.Context, name string, vector []float32, k int) ([]commonModels.RetrievalHit, error)
	OnCount            func(ctx context.Context, name string) (uint64, error)
}

func (m *MockVectorDB) EnsureCollection(ctx context.Context, name string) error {
	if m.OnEnsureCollection != nil {
		return m.OnEnsureCollection(ctx, name)
	}
	return nil
}

func (m *MockVectorDB) DropCollection(ctx context.Context, name string) error {
	if m.OnDropCollection != nil {
		return m.OnDropCollection(ctx, name)
	}
	return nil
}

func (m *MockVectorDB) UpsertBatch(ctx context.Context, name string, chunks []commonModels.DocChunk, vectors [][]float32) error {
	if m.OnUpsertBatch != nil {
		return m.OnUpsertBatch(ctx, name, chunks, vectors)
	}
	return nil
}

func (m *MockVectorDB) Query(ctx context.Context, name string, vector []float32, k int) ([]commonModels.RetrievalHit, error) {
	if m.OnQuery != nil {
		return m.OnQuery(ctx, name, vector, k)
	}
	return nil, nil
}

func (m *MockVectorDB) Count(ctx context.Context, name string) (uint64, error) {
	if m.OnCount != nil {
		return m.OnCount(ctx, name)
	}
	return 0, nil
}

type MockEmbedder struct {
	OnGetEmbedding   func(ctx context.Context, text string) ([]float32, error)
	OnBatchEmbedding func(ctx context.Context, chunks []string) ([][]float32, error)
}

func (m *MockEmbedder) GetEmbedding(ctx context.Context, text string) ([]float32, error) {
	if m.OnGetEmbedding != nil {
		return m.OnGetEmbedding(ctx, text)
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

func (m *MockEmbedder) BatchEmbedding(ctx context.Context, chunks []string) ([][]float32, error) {
	if m.OnBatchEmbedding != nil {
		return m.OnBatchEmbedding(ctx, chunks)
	}
	return make([][]float32, len(chunks)), nil
}

type MockLLM struct {
	OnGenerate func(ctx context.Context, prompt string) (string, error)
}

func (m *MockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	if m.OnGenerate != nil {
		return m.OnGenerate(ctx, prompt)
	}
	return "default answer", nil
}

type MockSearcher struct {
	OnSearch func(ctx context.Context, query string, k int) []string
}

func (m *MockSearcher) Search(ctx context.Context, query string, k int) []string {
	if m.OnSearch != nil {
		return m.OnSearch(ctx, query, k)
	}
	return nil
}

type MockSynth struct {
	OnSynthesize func(ctx context.Context, text string, voice tts.VoiceConfig) ([]byte, error)
}

func (m *MockSynth) Synthesize(ctx context.Context, text string, voice tts.VoiceConfig) ([]byte, error) {
	if m.OnSynthesize != nil {
		return m.OnSynthesize(ctx, text, voice)
	}
	return []byte("audio"), nil
}
