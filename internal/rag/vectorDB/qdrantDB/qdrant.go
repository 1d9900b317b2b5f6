package qdrantDB

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/asampath/GoRAG/internal/adapter/utils"
	"github.com/asampath/GoRAG/internal/config"
	"github.com/asampath/GoRAG/internal/domain/commonModels"
	"github.com/asampath/GoRAG/pkg/logger_i"
	"github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var dimension = uint64(config.EmbeddingOutputDimensionality)

type ClientHolder struct {
	client *qdrant.Client
	logger *logger_i.Logger
}

// NewClient connects to qdrant and makes sure both evidence-pool collections
// exist. Returns an error instead of a nil holder so main can decide whether
// to come up degraded.
func NewClient(ctx context.Context) (*ClientHolder, error) {
	logger := logger_i.NewLogger("Qdrant")

	host := os.Getenv("QDRANT_HOST")
	port, er := strconv.Atoi(os.Getenv("QDRANT_PORT"))
	if host == "" || er != nil {
		host = config.QdrantHost
		port = config.QdrantGrpcPort
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:     host,
		Port:     port,
		UseTLS:   config.QdrantUseTLS,
		PoolSize: uint(config.QdrantPoolSize),
	})
	if err != nil {
		logger.Error("could not instantiate: ", "error:", err)
		return nil, err
	}

	holder := &ClientHolder{client: client, logger: logger}

	for _, name := range []string{config.UserCollectionName, config.PolicyCollectionName} {
		if err := holder.EnsureCollection(ctx, name); err != nil {
			logger.Error("could not create collection: ", "collectionName", name, "error:", err)
			return nil, err
		}
	}

	go holder.closeOnDone(ctx)
	return holder, nil
}

func (db *ClientHolder) closeOnDone(ctx context.Context) {
	<-ctx.Done()
	db.logger.Info("Shutting down Qdrant")
	if err := db.client.Close(); err != nil {
		db.logger.Error("could not close Qdrant: ", "error:", err)
	}
}

func (db *ClientHolder) EnsureCollection(ctx context.Context, collectionName string) error {
	if collectionName == "" {
		return errors.New("empty collection name")
	}

	exists, err := db.client.CollectionExists(ctx, collectionName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	err = db.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     dimension,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if isAlreadyExists(err) {
		return nil
	}
	return err
}

func (db *ClientHolder) DropCollection(ctx context.Context, collectionName string) error {
	return db.client.DeleteCollection(ctx, collectionName)
}

func (db *ClientHolder) Count(ctx context.Context, collectionName string) (uint64, error) {
	count, err := db.client.Count(ctx, &qdrant.CountPoints{
		CollectionName: collectionName,
		Exact:          qdrant.PtrOf(false),
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (db *ClientHolder) Query(ctx context.Context, collectionName string, vector []float32, k int) ([]commonModels.RetrievalHit, error) {
	loggr := db.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))
	result, err := db.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: collectionName,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(uint64(k)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		loggr.Error("Error querying Qdrant: ", "collection", collectionName, "error:", err)
		return nil, err
	}

	hits := make([]commonModels.RetrievalHit, 0, len(result))
	for _, point := range result {
		payload := point.Payload
		hits = append(hits, commonModels.RetrievalHit{
			Text:   payload["content"].GetStringValue(),
			Score:  point.Score,
			Source: commonModels.SourceType(payload["source"].GetStringValue()),
			Provenance: commonModels.Provenance{
				Source:       commonModels.SourceType(payload["source"].GetStringValue()),
				DocumentId:   payload["source_doc_id"].GetStringValue(),
				FileName:     payload["doc_name"].GetStringValue(),
				Page:         int(payload["page_num"].GetIntegerValue()),
				ChunkOrdinal: int(payload["chunk_order"].GetIntegerValue()),
				TotalChunks:  int(payload["total_chunks"].GetIntegerValue()),
			},
		})
	}

	loggr.Debug("Query finished", "collection", collectionName, "hits", len(hits))
	return hits, nil
}

func (db *ClientHolder) UpsertBatch(ctx context.Context, collectionName string, chunks []commonModels.DocChunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("mismatch: got %d chunks but %d vectors", len(chunks), len(vectors))
	}

	qdrantPoints := make([]*qdrant.PointStruct, len(chunks))

	for i, chunk := range chunks {
		qdrantPoints[i] = &qdrant.PointStruct{
			// the deterministic chunk key becomes a stable UUID so
			// re-ingesting the same source overwrites the same points
			Id:      qdrant.NewID(utils.DeterministicUUID(chunk.ChunkId)),
			Vectors: qdrant.NewVectors(vectors[i]...),
			Payload: qdrant.NewValueMap(map[string]any{
				"content":       chunk.Chunk,
				"source":        string(chunk.Doc.Source),
				"page_num":      chunk.PageNum,
				"source_doc_id": chunk.Doc.Id,
				"doc_name":      chunk.Doc.Name,
				"chunk_order":   chunk.Ordinal,
				"total_chunks":  chunk.TotalChunks,
				"chunk_id":      chunk.ChunkId,
				"ingested_at":   chunk.Doc.LastIngestTimestamp.Unix(),
			}),
		}
	}

	_, err := db.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: collectionName,
		Points:         qdrantPoints,
		Wait:           qdrant.PtrOf(true),
	})

	if err != nil {
		return fmt.Errorf("qdrant upsert failed: %w", err)
	}

	return nil
}

func isAlreadyExists(err error) bool {
	if err == nil {
		return false
	}
	s, ok := status.FromError(err)
	return ok && s.Code() == codes.AlreadyExists
}
