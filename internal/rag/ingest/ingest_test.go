package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/asampath/GoRAG/internal/domain/commonModels"
)

// --- Mocks for BatchIngest ---

type mockEmbedder struct {
	batchFunc func(ctx context.Context, chunks []string) ([][]float32, error)
}

func (m *mockEmbedder) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	return nil, nil
}
func (m *mockEmbedder) BatchEmbedding(ctx context.Context, chunks []string) ([][]float32, error) {
	return m.batchFunc(ctx, chunks)
}

type mockVectorDB struct {
	upsertFunc func(ctx context.Context, coll string, chunks []commonModels.DocChunk, vectors [][]float32) error
	countFunc  func(ctx context.Context, coll string) (uint64, error)
}

func (m *mockVectorDB) EnsureCollection(ctx context.Context, name string) error { return nil }
func (m *mockVectorDB) DropCollection(ctx context.Context, name string) error   { return nil }
func (m *mockVectorDB) Query(ctx context.Context, coll string, v []float32, k int) ([]commonModels.RetrievalHit, error) {
	return nil, nil
}
func (m *mockVectorDB) Count(ctx context.Context, coll string) (uint64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx, coll)
	}
	return 0, nil
}
func (m *mockVectorDB) UpsertBatch(ctx context.Context, coll string, chunks []commonModels.DocChunk, vectors [][]float32) error {
	return m.upsertFunc(ctx, coll, chunks, vectors)
}

// --- Unit Tests ---

func TestGetDocType(t *testing.T) {
	tests := []struct {
		path     string
		expected commonModels.DocType
	}{
		{"statement.pdf", commonModels.PDF},
		{"DOC.DOCX", commonModels.DOCX},
		{"notes.txt", commonModels.DOCX},
		{"image.png", commonModels.ERR},
	}

	for _, tt := range tests {
		if got := getDocType(tt.path); got != tt.expected {
			t.Errorf("getDocType(%s) = %v; want %v", tt.path, got, tt.expected)
		}
	}
}

func TestPrepareChunks_DeterministicIds(t *testing.T) {
	pages := []rawPage{
		{Number: 1, Content: "Page one content."},
		{Number: 2, Content: "Page two content."},
	}
	doc := commonModels.Document{Id: "doc-1", Source: commonModels.SourceUserDocument}

	chunks := PrepareChunks(pages, doc)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks (one per page), got %d", len(chunks))
	}

	if chunks[0].ChunkId != "doc-1_chunk_0" || chunks[1].ChunkId != "doc-1_chunk_1" {
		t.Errorf("chunk ids not deterministic: %q, %q", chunks[0].ChunkId, chunks[1].ChunkId)
	}
	if chunks[1].PageNum != 2 || chunks[1].Ordinal != 1 {
		t.Errorf("metadata mismatch in chunk 1: %+v", chunks[1])
	}
	for i, c := range chunks {
		if c.TotalChunks != 2 {
			t.Errorf("chunk %d TotalChunks = %d, want 2", i, c.TotalChunks)
		}
	}

	// Same input again yields the same ids: re-ingest overwrites.
	again := PrepareChunks(pages, doc)
	for i := range chunks {
		if chunks[i].ChunkId != again[i].ChunkId {
			t.Errorf("chunk id %d changed between runs", i)
		}
	}
}

func TestBatchIngest_SplitsIntoBatches(t *testing.T) {
	ctx := context.Background()
	chunks := make([]commonModels.DocChunk, 150) // 100 + 50
	for i := range chunks {
		chunks[i] = commonModels.DocChunk{Chunk: "test content"}
	}

	callCount := 0
	vDB := &mockVectorDB{
		upsertFunc: func(ctx context.Context, coll string, c []commonModels.DocChunk, v [][]float32) error {
			callCount++
			return nil
		},
	}
	emb := &mockEmbedder{
		batchFunc: func(ctx context.Context, ch []string) ([][]float32, error) {
			return make([][]float32, len(ch)), nil
		},
	}

	if err := BatchIngest(ctx, "user-documents", chunks, vDB, emb); err != nil {
		t.Fatalf("BatchIngest failed: %v", err)
	}
	if callCount != 2 {
		t.Errorf("expected 2 batches to be upserted, got %d", callCount)
	}
}

func TestBatchIngest_SkipsFailingBatch(t *testing.T) {
	chunks := make([]commonModels.DocChunk, 150)
	for i := range chunks {
		chunks[i] = commonModels.DocChunk{Chunk: "test content"}
	}

	call := 0
	vDB := &mockVectorDB{
		upsertFunc: func(ctx context.Context, coll string, c []commonModels.DocChunk, v [][]float32) error {
			call++
			if call == 1 {
				return errors.New("upsert failed")
			}
			return nil
		},
	}
	emb := &mockEmbedder{
		batchFunc: func(ctx context.Context, ch []string) ([][]float32, error) {
			return make([][]float32, len(ch)), nil
		},
	}

	// First batch fails but the second still lands, so the document is
	// partially indexed rather than aborted.
	if err := BatchIngest(context.Background(), "user-documents", chunks, vDB, emb); err != nil {
		t.Fatalf("expected partial success, got error: %v", err)
	}
	if call != 2 {
		t.Errorf("expected both batches attempted, got %d", call)
	}
}

func TestBatchIngest_AllBatchesFailing(t *testing.T) {
	vDB := &mockVectorDB{
		upsertFunc: func(ctx context.Context, coll string, c []commonModels.DocChunk, v [][]float32) error {
			return errors.New("upsert failed")
		},
	}
	emb := &mockEmbedder{
		batchFunc: func(ctx context.Context, ch []string) ([][]float32, error) {
			return make([][]float32, len(ch)), nil
		},
	}

	err := BatchIngest(context.Background(), "user-documents", []commonModels.DocChunk{{Chunk: "hi"}}, vDB, emb)
	if err == nil {
		t.Error("expected error when every batch fails, got nil")
	}
}
