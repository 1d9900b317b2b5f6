package vectorDB

import (
	"context"

	"github.com/asampath/GoRAG/internal/domain/commonModels"
)

// DataProcessor is the collection-store port. A collection is a named,
// independently queryable set of indexed chunks; upsert with an existing id
// overwrites.
type DataProcessor interface {
	EnsureCollection(ctx context.Context, collectionName string) error
	DropCollection(ctx context.Context, collectionName string) error

	UpsertBatch(ctx context.Context, collectionName string, chunks []commonModels.DocChunk, vectors [][]float32) error
	Query(ctx context.Context, collectionName string, vector []float32, k int) ([]commonModels.RetrievalHit, error)
	Count(ctx context.Context, collectionName string) (uint64, error)
}
